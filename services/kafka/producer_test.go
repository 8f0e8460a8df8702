package kafka

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
)

type stubWriter struct {
	fails  int
	calls  int
	msgs   []kafka.Message
	closed bool
}

func (w *stubWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.calls++
	if w.calls <= w.fails {
		return errors.New("broker unavailable")
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *stubWriter) Close() error {
	w.closed = true
	return nil
}

func noSleep(_ context.Context, _ time.Duration) error { return nil }

func TestPublishMarshalsValue(t *testing.T) {
	w := &stubWriter{}
	p := newProducer(w)
	p.sleep = noSleep

	require.NoError(t, p.Publish(context.Background(), "emails", "email-a@x.io", map[string]string{"event": "email.send"}))
	require.Len(t, w.msgs, 1)
	require.Equal(t, "emails", w.msgs[0].Topic)
	require.Equal(t, "email-a@x.io", string(w.msgs[0].Key))
	require.JSONEq(t, `{"event":"email.send"}`, string(w.msgs[0].Value))
	require.True(t, p.IsConnected())
}

func TestPublishRetriesThenSucceeds(t *testing.T) {
	w := &stubWriter{fails: 2}
	p := newProducer(w)
	var waits []time.Duration
	p.sleep = func(_ context.Context, d time.Duration) error {
		waits = append(waits, d)
		return nil
	}

	require.NoError(t, p.Publish(context.Background(), "t", "k", 1))
	require.Equal(t, 3, w.calls)
	require.Equal(t, []time.Duration{time.Second, 2 * time.Second}, waits)
}

func TestPublishGivesUp(t *testing.T) {
	w := &stubWriter{fails: 10}
	p := newProducer(w)
	p.sleep = noSleep

	err := p.Publish(context.Background(), "t", "k", 1)
	require.ErrorContains(t, err, "broker unavailable")
	require.Equal(t, publishAttempts, w.calls)
	require.False(t, p.IsConnected())
}

func TestPublishStopsOnCancel(t *testing.T) {
	w := &stubWriter{fails: 10}
	p := newProducer(w)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := p.Publish(ctx, "t", "k", 1)
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 1, w.calls)
}

func TestClose(t *testing.T) {
	w := &stubWriter{}
	require.NoError(t, newProducer(w).Close())
	require.True(t, w.closed)
}
