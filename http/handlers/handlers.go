package handlers

import (
	"context"
	"io"
	"net/http"
	"time"

	"wiredleaf-api/http/response"
	"wiredleaf-api/models"
	"wiredleaf-api/services"
	"wiredleaf-api/utils"
)

type Consultations interface {
	Create(ctx context.Context, req models.ConsultationRequest) (*models.Consultation, error)
	List(ctx context.Context, f utils.ListFilter) ([]models.Consultation, error)
	UpdateStatus(ctx context.Context, id, status string) (*models.Consultation, error)
	Approve(ctx context.Context, id string, req models.ApproveRequest) (*models.Meeting, error)
	Import(ctx context.Context, r io.Reader) (*services.ImportResult, error)
	Export(ctx context.Context, w io.Writer, after, before *time.Time) error
}

type Meetings interface {
	List(ctx context.Context, search string) ([]models.Meeting, error)
	Create(ctx context.Context, req models.MeetingRequest) (*models.Meeting, error)
	UpdateStatus(ctx context.Context, id, status string) (*models.Meeting, error)
}

type Users interface {
	List(ctx context.Context, search string) ([]models.UserWithStats, error)
	Consultations(ctx context.Context, userID string) ([]models.Consultation, error)
	Register(ctx context.Context, req models.ProfileRequest) (*models.Profile, error)
}

type Dashboard interface {
	Stats(ctx context.Context) (models.DashboardStats, error)
}

type Contact interface {
	Submit(ctx context.Context, req models.ContactRequest) (*models.ContactMessage, error)
}

type Auth interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
}

type DLQ interface {
	List(ctx context.Context, limit int) ([]models.DLQMessage, error)
	Stats(ctx context.Context) (models.DLQStats, error)
	Resolve(ctx context.Context, id, notes string) error
	Retry(ctx context.Context, id string) error
}

// Pinger reports database health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the services behind the HTTP API.
type Deps struct {
	Consultations Consultations
	Meetings      Meetings
	Users         Users
	Dashboard     Dashboard
	Contact       Contact
	Auth          Auth
	Notifier      services.NotificationSender
	DLQ           DLQ
	DB            Pinger
}

// Handler serves every API endpoint.
type Handler struct {
	consultations Consultations
	meetings      Meetings
	users         Users
	dashboard     Dashboard
	contact       Contact
	auth          Auth
	notifier      services.NotificationSender
	dlq           DLQ
	db            Pinger
}

func New(d Deps) *Handler {
	return &Handler{
		consultations: d.Consultations,
		meetings:      d.Meetings,
		users:         d.Users,
		dashboard:     d.Dashboard,
		contact:       d.Contact,
		auth:          d.Auth,
		notifier:      d.Notifier,
		dlq:           d.DLQ,
		db:            d.DB,
	}
}

// decode reads a JSON body and answers 400 itself on failure.
func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := utils.DecodeJSONRequest(w, r, v); err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

type statusRequest struct {
	Status string `json:"status"`
}

// Healthz reports liveness and database reachability.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if h.db != nil {
		if err := h.db.Ping(ctx); err != nil {
			response.FromError(w, err, "database unavailable")
			return
		}
	}
	response.SuccessResponse(w, http.StatusOK, "ok", nil)
}
