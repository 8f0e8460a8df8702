package store

import (
	"context"
	"database/sql"
	"time"

	apperrors "wiredleaf-api/errors"
	"wiredleaf-api/models"
)

const consultationColumns = `id, user_id, name, email, phone, service, message,
	preferred_date, preferred_time, status, created_at, updated_at`

func scanConsultation(row scanner) (models.Consultation, error) {
	var c models.Consultation
	err := row.Scan(
		&c.ID, &c.UserID, &c.Name, &c.Email, &c.Phone, &c.Service, &c.Message,
		&c.PreferredDate, &c.PreferredTime, &c.Status, &c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

func (s *Store) CreateConsultation(ctx context.Context, c *models.Consultation) error {
	return insertConsultation(ctx, s.db, c)
}

type rowQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func insertConsultation(ctx context.Context, q rowQuerier, c *models.Consultation) error {
	err := q.QueryRowContext(ctx,
		`INSERT INTO consultations (id, user_id, name, email, phone, service, message,
			preferred_date, preferred_time, status)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		 RETURNING created_at, updated_at`,
		c.ID, c.UserID, c.Name, c.Email, c.Phone, c.Service, c.Message,
		c.PreferredDate, c.PreferredTime, c.Status,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflictError("consultation already exists")
		}
		return apperrors.E(apperrors.Internal, "insert consultation", err)
	}
	return nil
}

// BulkCreateConsultations inserts every row in one transaction and
// returns the index and error of the first failing row.
func (s *Store) BulkCreateConsultations(ctx context.Context, cs []*models.Consultation) (int, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return -1, apperrors.E(apperrors.Internal, "begin import", err)
	}
	defer tx.Rollback()

	for i, c := range cs {
		if err := insertConsultation(ctx, tx, c); err != nil {
			return i, err
		}
	}
	if err := tx.Commit(); err != nil {
		return -1, apperrors.E(apperrors.Internal, "commit import", err)
	}
	return -1, nil
}

// ListConsultations returns every consultation, newest first.
func (s *Store) ListConsultations(ctx context.Context) ([]models.Consultation, error) {
	return s.queryConsultations(ctx,
		`SELECT `+consultationColumns+` FROM consultations ORDER BY created_at DESC`)
}

// ListConsultationsByUser returns a user's consultations, newest first.
func (s *Store) ListConsultationsByUser(ctx context.Context, userID string) ([]models.Consultation, error) {
	return s.queryConsultations(ctx,
		`SELECT `+consultationColumns+` FROM consultations WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

// ListConsultationsCreatedBetween is used by the export; nil bounds are open.
func (s *Store) ListConsultationsCreatedBetween(ctx context.Context, after, before *time.Time) ([]models.Consultation, error) {
	return s.queryConsultations(ctx,
		`SELECT `+consultationColumns+` FROM consultations
		 WHERE ($1::timestamptz IS NULL OR created_at >= $1)
		   AND ($2::timestamptz IS NULL OR created_at <= $2)
		 ORDER BY created_at DESC`, after, before)
}

func (s *Store) queryConsultations(ctx context.Context, query string, args ...any) ([]models.Consultation, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.E(apperrors.Internal, "query consultations", err)
	}
	defer rows.Close()

	out := []models.Consultation{}
	for rows.Next() {
		c, err := scanConsultation(rows)
		if err != nil {
			return nil, apperrors.E(apperrors.Internal, "scan consultation", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.E(apperrors.Internal, "iterate consultations", err)
	}
	return out, nil
}

func (s *Store) GetConsultation(ctx context.Context, id string) (*models.Consultation, error) {
	c, err := scanConsultation(s.db.QueryRowContext(ctx,
		`SELECT `+consultationColumns+` FROM consultations WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError("consultation not found")
	}
	if err != nil {
		return nil, apperrors.E(apperrors.Internal, "get consultation", err)
	}
	return &c, nil
}

// UpdateConsultationStatus is last-write-wins.
func (s *Store) UpdateConsultationStatus(ctx context.Context, id, status string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE consultations SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return apperrors.E(apperrors.Internal, "update consultation status", err)
	}
	return expectOne(res, "consultation")
}

// ApproveConsultation marks the consultation approved and inserts its
// meeting in the same transaction.
func (s *Store) ApproveConsultation(ctx context.Context, id string, m *models.Meeting) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.E(apperrors.Internal, "begin approve", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE consultations SET status = $1, updated_at = NOW() WHERE id = $2`,
		models.ConsultationApproved, id)
	if err != nil {
		return apperrors.E(apperrors.Internal, "approve consultation", err)
	}
	if err := expectOne(res, "consultation"); err != nil {
		return err
	}

	if err := insertMeeting(ctx, tx, m); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return apperrors.E(apperrors.Internal, "commit approve", err)
	}
	return nil
}
