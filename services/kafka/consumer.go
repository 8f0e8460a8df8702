package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"wiredleaf-api/logger"
)

// messageReader is the subset of *kafka.Reader the consumer needs.
type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// DeadLetterSink keeps messages that could not be handled.
type DeadLetterSink interface {
	StoreDLQMessage(ctx context.Context, topic, key string, value []byte, errorMsg string) error
}

// HandlerFunc processes the raw JSON value of one event.
type HandlerFunc func(ctx context.Context, payload []byte) error

type envelope struct {
	Event string `json:"event"`
}

// Consumer reads a topic in a consumer group and routes each message to
// the handler registered for its "event" field. Messages that fail are
// written to the dead-letter sink and committed.
type Consumer struct {
	reader   messageReader
	dlq      DeadLetterSink
	mu       sync.RWMutex
	handlers map[string]HandlerFunc
}

func NewConsumer(brokers []string, topic, groupID string, dlq DeadLetterSink) *Consumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:          brokers,
		Topic:            topic,
		GroupID:          groupID,
		StartOffset:      kafka.FirstOffset,
		MaxBytes:         10e6,
		SessionTimeout:   20 * time.Second,
		ReadBackoffMin:   100 * time.Millisecond,
		ReadBackoffMax:   1 * time.Second,
		QueueCapacity:    100,
		RebalanceTimeout: 60 * time.Second,
	})
	logger.Info("Kafka consumer initialized. Brokers=%v, Topic=%s, ConsumerGroup=%s", brokers, topic, groupID)
	return newConsumer(r, dlq)
}

func newConsumer(r messageReader, dlq DeadLetterSink) *Consumer {
	return &Consumer{reader: r, dlq: dlq, handlers: map[string]HandlerFunc{}}
}

// Handle registers fn for events named event.
func (c *Consumer) Handle(event string, fn HandlerFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[event] = fn
}

// Run blocks until ctx is cancelled or the reader is closed.
func (c *Consumer) Run(ctx context.Context) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, io.EOF) {
				return nil
			}
			logger.Warn("Kafka fetch failed: %v", err)
			if err := sleepCtx(ctx, time.Second); err != nil {
				return nil
			}
			continue
		}

		c.HandleMessage(ctx, msg)

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			logger.Error("Kafka commit failed for %s/%d@%d: %v", msg.Topic, msg.Partition, msg.Offset, err)
		}
	}
}

// HandleMessage processes one message and reports whether it succeeded.
// Failures are sent to the dead-letter sink.
func (c *Consumer) HandleMessage(ctx context.Context, msg kafka.Message) bool {
	var env envelope
	if err := json.Unmarshal(msg.Value, &env); err != nil {
		c.deadLetter(ctx, msg, "failed to unmarshal JSON: "+err.Error())
		return false
	}
	if env.Event == "" {
		c.deadLetter(ctx, msg, "message does not contain event type")
		return false
	}

	c.mu.RLock()
	fn, ok := c.handlers[env.Event]
	c.mu.RUnlock()
	if !ok {
		c.deadLetter(ctx, msg, "unknown event type: "+env.Event)
		return false
	}

	if err := fn(ctx, msg.Value); err != nil {
		c.deadLetter(ctx, msg, fmt.Sprintf("handler error: %v", err))
		return false
	}
	return true
}

func (c *Consumer) deadLetter(ctx context.Context, msg kafka.Message, reason string) {
	logger.Warn("Sending message to DLQ. Topic=%s Key=%s: %s", msg.Topic, msg.Key, reason)
	if c.dlq == nil {
		return
	}
	if err := c.dlq.StoreDLQMessage(ctx, msg.Topic, string(msg.Key), msg.Value, reason); err != nil {
		logger.Error("Failed to store DLQ message: %v", err)
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
