package store

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"

	apperrors "wiredleaf-api/errors"
	"wiredleaf-api/models"
)

// StoreDLQMessage records a message the consumer gave up on. Non-JSON
// payloads are stored as a JSON string so the jsonb column accepts them.
func (s *Store) StoreDLQMessage(ctx context.Context, topic, key string, value []byte, errorMsg string) error {
	payload := value
	if !json.Valid(payload) {
		payload, _ = json.Marshal(string(value))
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO dlq_messages (message_id, topic, key, value, error_message)
		 VALUES ($1, $2, $3, $4::jsonb, $5)`,
		uuid.NewString(), topic, key, string(payload), errorMsg)
	if err != nil {
		return apperrors.E(apperrors.Internal, "store dlq message", err)
	}
	return nil
}

func (s *Store) ListDLQMessages(ctx context.Context, limit int) ([]models.DLQMessage, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT message_id, topic, COALESCE(key, ''), COALESCE(value::text, ''), error_message,
		       resolved, notes, created_at, resolved_at
		FROM dlq_messages
		WHERE resolved = FALSE
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, apperrors.E(apperrors.Internal, "query dlq", err)
	}
	defer rows.Close()

	out := []models.DLQMessage{}
	for rows.Next() {
		var m models.DLQMessage
		if err := rows.Scan(&m.MessageID, &m.Topic, &m.Key, &m.Value, &m.ErrorMessage,
			&m.Resolved, &m.Notes, &m.CreatedAt, &m.ResolvedAt); err != nil {
			return nil, apperrors.E(apperrors.Internal, "scan dlq", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.E(apperrors.Internal, "iterate dlq", err)
	}
	return out, nil
}

func (s *Store) GetDLQMessage(ctx context.Context, id string) (*models.DLQMessage, error) {
	var m models.DLQMessage
	err := s.db.QueryRowContext(ctx, `
		SELECT message_id, topic, COALESCE(key, ''), COALESCE(value::text, ''), error_message,
		       resolved, notes, created_at, resolved_at
		FROM dlq_messages WHERE message_id = $1`, id,
	).Scan(&m.MessageID, &m.Topic, &m.Key, &m.Value, &m.ErrorMessage,
		&m.Resolved, &m.Notes, &m.CreatedAt, &m.ResolvedAt)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError("dlq message not found")
	}
	if err != nil {
		return nil, apperrors.E(apperrors.Internal, "get dlq message", err)
	}
	return &m, nil
}

func (s *Store) ResolveDLQMessage(ctx context.Context, id, notes string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE dlq_messages SET resolved = TRUE, notes = $1, resolved_at = NOW()
		 WHERE message_id = $2 AND resolved = FALSE`, notes, id)
	if err != nil {
		return apperrors.E(apperrors.Internal, "resolve dlq message", err)
	}
	return expectOne(res, "dlq message")
}

func (s *Store) DLQStats(ctx context.Context) (models.DLQStats, error) {
	st := models.DLQStats{ByTopic: map[string]int{}}
	rows, err := s.db.QueryContext(ctx, `
		SELECT topic, COUNT(*), COUNT(*) FILTER (WHERE resolved = FALSE)
		FROM dlq_messages GROUP BY topic`)
	if err != nil {
		return st, apperrors.E(apperrors.Internal, "dlq stats", err)
	}
	defer rows.Close()

	for rows.Next() {
		var topic string
		var total, unresolved int
		if err := rows.Scan(&topic, &total, &unresolved); err != nil {
			return st, apperrors.E(apperrors.Internal, "scan dlq stats", err)
		}
		st.Total += total
		st.Unresolved += unresolved
		st.ByTopic[topic] = unresolved
	}
	if err := rows.Err(); err != nil {
		return st, apperrors.E(apperrors.Internal, "iterate dlq stats", err)
	}
	return st, nil
}
