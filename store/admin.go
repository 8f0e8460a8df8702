package store

import (
	"context"
	"database/sql"

	apperrors "wiredleaf-api/errors"
	"wiredleaf-api/models"
)

func (s *Store) CreateAdmin(ctx context.Context, a *models.Admin) error {
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO admins (id, email, password_hash, name) VALUES ($1,$2,$3,$4) RETURNING created_at`,
		a.ID, a.Email, a.PasswordHash, a.Name,
	).Scan(&a.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflictError("admin already exists")
		}
		return apperrors.E(apperrors.Internal, "insert admin", err)
	}
	return nil
}

func (s *Store) AdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	a := &models.Admin{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, name, created_at FROM admins WHERE email = $1`, email,
	).Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Name, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError("admin not found")
	}
	if err != nil {
		return nil, apperrors.E(apperrors.Internal, "get admin", err)
	}
	return a, nil
}
