package store

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	apperrors "wiredleaf-api/errors"
)

// Store is the Postgres-backed repository for every table the service owns.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return apperrors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// expectOne turns a zero-row update into a NotFound error.
func expectOne(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return apperrors.E(apperrors.Internal, "rows affected", err)
	}
	if n == 0 {
		return apperrors.NewNotFoundError(what + " not found")
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}
