package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	apperrors "wiredleaf-api/errors"
	"wiredleaf-api/logger"
	"wiredleaf-api/models"
)

const (
	defaultDLQLimit = 50
	maxDLQLimit     = 500
)

type DLQRepository interface {
	ListDLQMessages(ctx context.Context, limit int) ([]models.DLQMessage, error)
	GetDLQMessage(ctx context.Context, id string) (*models.DLQMessage, error)
	ResolveDLQMessage(ctx context.Context, id, notes string) error
	DLQStats(ctx context.Context) (models.DLQStats, error)
}

// DLQService lets admins inspect, retry and resolve messages the Kafka
// consumer gave up on. The publisher is nil when Kafka is disabled.
type DLQService struct {
	repo      DLQRepository
	publisher Publisher
}

func NewDLQService(repo DLQRepository, p Publisher) *DLQService {
	return &DLQService{repo: repo, publisher: p}
}

// List returns unresolved messages newest first. Non-positive limits use
// the default and large ones are capped.
func (s *DLQService) List(ctx context.Context, limit int) ([]models.DLQMessage, error) {
	switch {
	case limit <= 0:
		limit = defaultDLQLimit
	case limit > maxDLQLimit:
		limit = maxDLQLimit
	}
	return s.repo.ListDLQMessages(ctx, limit)
}

func (s *DLQService) Stats(ctx context.Context) (models.DLQStats, error) {
	return s.repo.DLQStats(ctx)
}

func (s *DLQService) Resolve(ctx context.Context, id, notes string) error {
	if err := checkID(id, "dlq message"); err != nil {
		return err
	}
	if strings.TrimSpace(notes) == "" {
		notes = "Manually resolved"
	}
	if err := s.repo.ResolveDLQMessage(ctx, id, notes); err != nil {
		return err
	}
	logger.Info("DLQ message %s resolved", id)
	return nil
}

// Retry republishes the stored value to its original topic and resolves
// the entry.
func (s *DLQService) Retry(ctx context.Context, id string) error {
	if err := checkID(id, "dlq message"); err != nil {
		return err
	}
	if s.publisher == nil {
		return apperrors.NewInvalidParamsError("message queue is not configured")
	}
	m, err := s.repo.GetDLQMessage(ctx, id)
	if err != nil {
		return err
	}
	if m.Resolved {
		return apperrors.NewConflictError("dlq message already resolved")
	}
	if !json.Valid([]byte(m.Value)) {
		return apperrors.NewInvalidParamsError("dlq message value is not valid JSON")
	}

	if err := s.publisher.Publish(ctx, m.Topic, m.Key, json.RawMessage(m.Value)); err != nil {
		return apperrors.E(apperrors.Internal, "republish dlq message", err)
	}
	return s.repo.ResolveDLQMessage(ctx, id, fmt.Sprintf("Retried to topic %s", m.Topic))
}
