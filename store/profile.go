package store

import (
	"context"
	"database/sql"

	apperrors "wiredleaf-api/errors"
	"wiredleaf-api/models"
)

// ListUsersWithStats returns profiles newest first together with their
// consultation count, meeting count (through consultations) and latest
// consultation time.
func (s *Store) ListUsersWithStats(ctx context.Context) ([]models.UserWithStats, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.id, p.user_id, p.full_name, p.email, p.phone, p.created_at, p.updated_at,
		       COUNT(DISTINCT c.id), COUNT(DISTINCT m.id), MAX(c.created_at)
		FROM profiles p
		LEFT JOIN consultations c ON c.user_id = p.user_id
		LEFT JOIN meetings m ON m.consultation_id = c.id
		GROUP BY p.id
		ORDER BY p.created_at DESC`)
	if err != nil {
		return nil, apperrors.E(apperrors.Internal, "query profiles", err)
	}
	defer rows.Close()

	out := []models.UserWithStats{}
	for rows.Next() {
		var u models.UserWithStats
		var last sql.NullTime
		if err := rows.Scan(
			&u.ID, &u.UserID, &u.FullName, &u.Email, &u.Phone, &u.CreatedAt, &u.UpdatedAt,
			&u.Stats.ConsultationsCount, &u.Stats.MeetingsCount, &last,
		); err != nil {
			return nil, apperrors.E(apperrors.Internal, "scan profile", err)
		}
		if last.Valid {
			u.Stats.LastConsultation = &last.Time
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.E(apperrors.Internal, "iterate profiles", err)
	}
	return out, nil
}

// UpsertProfile creates the profile for p.UserID or overwrites its contact fields.
func (s *Store) UpsertProfile(ctx context.Context, p *models.Profile) error {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO profiles (id, user_id, full_name, email, phone)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (user_id) DO UPDATE
		SET full_name = EXCLUDED.full_name, email = EXCLUDED.email,
		    phone = EXCLUDED.phone, updated_at = NOW()
		RETURNING id, created_at, updated_at`,
		p.ID, p.UserID, p.FullName, p.Email, p.Phone,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return apperrors.E(apperrors.Internal, "upsert profile", err)
	}
	return nil
}
