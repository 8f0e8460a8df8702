package errors

import (
	"errors"
	"net/http"
)

// Error is the application error carried between store, service and
// handler layers.
type Error struct {
	Kind    Kind
	Message string
	// Wrapped underlying error.
	WrappedErr error
}

func (e *Error) Error() string {
	switch {
	case e.WrappedErr == nil:
		return e.Kind.String() + ": " + e.Message
	case e.Message == "":
		return e.Kind.String() + ": " + e.WrappedErr.Error()
	default:
		return e.Kind.String() + ": " + e.Message + ": " + e.WrappedErr.Error()
	}
}

func (e *Error) Unwrap() error {
	return e.WrappedErr
}

// Kind defines the kind or class of an error.
type Kind uint8

// Transport agnostic error "kinds"
const (
	Other        Kind = iota // Unclassified error
	Internal                 // Internal error
	Conflict                 // Conflict when an entity already exists
	Invalid                  // Invalid input, validation error etc
	NotFound                 // Entity does not exist
	Unauthorized             // Unauthorized access
	Forbidden                // Forbidden access
)

func (k Kind) String() string {
	switch k {
	case Other:
		return "unclassified error"
	case Internal:
		return "internal error"
	case Conflict:
		return "conflict"
	case Invalid:
		return "invalid input"
	case NotFound:
		return "entity not found"
	case Unauthorized:
		return "unauthorized"
	case Forbidden:
		return "forbidden"
	default:
		return "unknown error kind"
	}
}

// E builds an *Error from any mix of Kind, string message and wrapped error.
func E(args ...interface{}) error {
	e := &Error{}
	for _, arg := range args {
		switch arg := arg.(type) {
		case Kind:
			e.Kind = arg
		case error:
			e.WrappedErr = arg
		case string:
			e.Message = arg
		}
	}
	return e
}

// KindOf returns the kind of the outermost *Error in the chain, or Other.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		if e.Kind == Other && e.WrappedErr != nil {
			return KindOf(e.WrappedErr)
		}
		return e.Kind
	}
	return Other
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// HTTPStatus maps an error kind to the response status code.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case Invalid:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	case Unauthorized:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage is the text safe to show a client. Internal and
// unclassified errors collapse to the given fallback notice.
func PublicMessage(err error, fallback string) string {
	var e *Error
	if !errors.As(err, &e) {
		return fallback
	}
	switch KindOf(err) {
	case Invalid, NotFound, Conflict, Unauthorized, Forbidden:
		if e.Message != "" {
			return e.Message
		}
		return KindOf(err).String()
	default:
		return fallback
	}
}

func NewInternalServerError(msg string) error { return E(Internal, msg) }
func NewNotFoundError(msg string) error       { return E(NotFound, msg) }
func NewInvalidParamsError(msg string) error  { return E(Invalid, msg) }
func NewUnauthorizedError(msg string) error   { return E(Unauthorized, msg) }
func NewForbiddenError(msg string) error      { return E(Forbidden, msg) }
func NewConflictError(msg string) error       { return E(Conflict, msg) }

var (
	As  = errors.As
	Is  = errors.Is
	New = errors.New
)
