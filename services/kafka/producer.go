package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"wiredleaf-api/logger"
)

const publishAttempts = 3

// messageWriter is the subset of *kafka.Writer the producer needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer publishes JSON values with retry and exponential backoff.
type Producer struct {
	mu        sync.Mutex
	writer    messageWriter
	connected bool
	sleep     func(context.Context, time.Duration) error
}

// NewProducer returns a producer for the given brokers. Topics are set per
// message, so one producer serves every topic.
func NewProducer(brokers []string) *Producer {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.LeastBytes{},
		WriteTimeout:           10 * time.Second,
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}
	logger.Info("Kafka producer initialized. Brokers=%v", brokers)
	return newProducer(w)
}

func newProducer(w messageWriter) *Producer {
	return &Producer{writer: w, connected: true, sleep: sleepCtx}
}

// Publish marshals value to JSON and writes it to topic under key.
// json.RawMessage values are written as-is.
func (p *Producer) Publish(ctx context.Context, topic, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal kafka message: %w", err)
	}

	msg := kafka.Message{Topic: topic, Key: []byte(key), Value: payload}

	var lastErr error
	for attempt := 0; attempt < publishAttempts; attempt++ {
		writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := p.writer.WriteMessages(writeCtx, msg)
		cancel()

		if err == nil {
			p.setConnected(true)
			return nil
		}
		lastErr = err
		p.setConnected(false)

		if attempt < publishAttempts-1 {
			backoff := time.Duration(math.Pow(2, float64(attempt))) * time.Second
			logger.Warn("Kafka publish to %s attempt %d/%d failed, retrying in %v: %v", topic, attempt+1, publishAttempts, backoff, err)
			if err := p.sleep(ctx, backoff); err != nil {
				return err
			}
		}
	}

	logger.Error("Kafka publish to %s failed after %d attempts: %v", topic, publishAttempts, lastErr)
	return fmt.Errorf("publish to %s: %w", topic, lastErr)
}

func (p *Producer) setConnected(v bool) {
	p.mu.Lock()
	p.connected = v
	p.mu.Unlock()
}

// IsConnected reports whether the last write succeeded.
func (p *Producer) IsConnected() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.connected
}

func (p *Producer) Close() error {
	return p.writer.Close()
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
