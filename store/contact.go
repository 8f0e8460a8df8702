package store

import (
	"context"

	apperrors "wiredleaf-api/errors"
	"wiredleaf-api/models"
)

func (s *Store) CreateContactMessage(ctx context.Context, m *models.ContactMessage) error {
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO contact_messages (id, name, email, phone, service, message)
		 VALUES ($1,$2,$3,$4,$5,$6) RETURNING created_at`,
		m.ID, m.Name, m.Email, m.Phone, m.Service, m.Message,
	).Scan(&m.CreatedAt)
	if err != nil {
		return apperrors.E(apperrors.Internal, "insert contact message", err)
	}
	return nil
}
