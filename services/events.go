package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"wiredleaf-api/logger"
)

// Domain event names published on the events topic.
const (
	EventConsultationCreated       = "consultation.created"
	EventConsultationStatusChanged = "consultation.status_changed"
	EventMeetingCreated            = "meeting.created"
)

// DomainEvent is the envelope of every events-topic message.
type DomainEvent struct {
	Event     string    `json:"event"`
	EventID   string    `json:"event_id"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// Events publishes domain events best-effort in the background. A nil
// *Events is valid and drops everything.
type Events struct {
	publisher Publisher
	topic     string
	wg        sync.WaitGroup
}

func NewEvents(p Publisher, topic string) *Events {
	return &Events{publisher: p, topic: topic}
}

// Emit publishes the event without blocking the caller. Failure is
// logged and never affects the operation that raised it.
func (e *Events) Emit(ctx context.Context, name, key string, data any) {
	if e == nil || e.publisher == nil {
		return
	}
	event := DomainEvent{
		Event:     name,
		EventID:   uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Data:      data,
	}

	ctx = context.WithoutCancel(ctx)
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		if err := e.publisher.Publish(ctx, e.topic, key, event); err != nil {
			logger.Warn("failed to publish %s event for %s: %v", name, key, err)
			return
		}
		logger.Debug("Published %s event to Kafka topic '%s' for %s", name, e.topic, key)
	}()
}

// Wait blocks until in-flight events finish.
func (e *Events) Wait() {
	if e == nil {
		return
	}
	e.wg.Wait()
}
