package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"wiredleaf-api/logger"
	"wiredleaf-api/models"
)

// EmailSendEvent is the event name of queued emails.
const EmailSendEvent = "email.send"

// Publisher writes a JSON value to a Kafka topic.
type Publisher interface {
	Publish(ctx context.Context, topic, key string, value any) error
}

// EmailEvent is the payload of an email.send message.
type EmailEvent struct {
	Event string `json:"event"`
	models.Email
	Timestamp string `json:"timestamp"`
}

// QueueMailer publishes emails to Kafka instead of sending them. The
// email consumer picks them up and delivers through SMTP.
type QueueMailer struct {
	publisher Publisher
	topic     string
}

func NewQueueMailer(p Publisher, topic string) *QueueMailer {
	return &QueueMailer{publisher: p, topic: topic}
}

func (q *QueueMailer) Send(ctx context.Context, e models.Email) error {
	logger.Debug("Publishing email event to Kafka. Recipient: %s, Subject: %s", e.To, e.Subject)

	event := EmailEvent{
		Event:     EmailSendEvent,
		Email:     e,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if err := q.publisher.Publish(ctx, q.topic, "email-"+e.To, event); err != nil {
		return fmt.Errorf("failed to queue email: %w", err)
	}
	return nil
}

// EmailEventHandler decodes email.send events and delivers them with m.
func EmailEventHandler(m Mailer) func(ctx context.Context, payload []byte) error {
	return func(ctx context.Context, payload []byte) error {
		var event EmailEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			return fmt.Errorf("error unmarshaling email event: %w", err)
		}
		if event.To == "" {
			return fmt.Errorf("email event has no recipient")
		}
		return m.Send(ctx, event.Email)
	}
}
