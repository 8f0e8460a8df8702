package store

import (
	"context"
	"database/sql"

	apperrors "wiredleaf-api/errors"
	"wiredleaf-api/models"
)

const meetingColumns = `id, title, description, start_time, end_time, meeting_link,
	status, consultation_id, created_at, updated_at`

func insertMeeting(ctx context.Context, q rowQuerier, m *models.Meeting) error {
	err := q.QueryRowContext(ctx,
		`INSERT INTO meetings (id, title, description, start_time, end_time, meeting_link, status, consultation_id)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		 RETURNING created_at, updated_at`,
		m.ID, m.Title, m.Description, m.StartTime, m.EndTime, m.MeetingLink, m.Status, m.ConsultationID,
	).Scan(&m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return apperrors.E(apperrors.Internal, "insert meeting", err)
	}
	return nil
}

func (s *Store) CreateMeeting(ctx context.Context, m *models.Meeting) error {
	return insertMeeting(ctx, s.db, m)
}

// ListMeetings returns every meeting ordered by start time, earliest first.
func (s *Store) ListMeetings(ctx context.Context) ([]models.Meeting, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+meetingColumns+` FROM meetings ORDER BY start_time ASC`)
	if err != nil {
		return nil, apperrors.E(apperrors.Internal, "query meetings", err)
	}
	defer rows.Close()

	out := []models.Meeting{}
	for rows.Next() {
		var m models.Meeting
		if err := rows.Scan(
			&m.ID, &m.Title, &m.Description, &m.StartTime, &m.EndTime, &m.MeetingLink,
			&m.Status, &m.ConsultationID, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, apperrors.E(apperrors.Internal, "scan meeting", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.E(apperrors.Internal, "iterate meetings", err)
	}
	return out, nil
}

func (s *Store) GetMeeting(ctx context.Context, id string) (*models.Meeting, error) {
	var m models.Meeting
	err := s.db.QueryRowContext(ctx,
		`SELECT `+meetingColumns+` FROM meetings WHERE id = $1`, id,
	).Scan(
		&m.ID, &m.Title, &m.Description, &m.StartTime, &m.EndTime, &m.MeetingLink,
		&m.Status, &m.ConsultationID, &m.CreatedAt, &m.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError("meeting not found")
	}
	if err != nil {
		return nil, apperrors.E(apperrors.Internal, "get meeting", err)
	}
	return &m, nil
}

func (s *Store) UpdateMeetingStatus(ctx context.Context, id, status string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE meetings SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return apperrors.E(apperrors.Internal, "update meeting status", err)
	}
	return expectOne(res, "meeting")
}
