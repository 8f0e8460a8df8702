package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEventsEmit(t *testing.T) {
	p := &stubPublisher{}
	e := NewEvents(p, "wiredleaf.events")

	ctx, cancel := context.WithCancel(context.Background())
	e.Emit(ctx, EventMeetingCreated, "m-1", map[string]string{"id": "m-1"})
	cancel()
	e.Wait()

	require.Len(t, p.msgs, 1)
	require.Equal(t, "wiredleaf.events", p.msgs[0].topic)
	require.Equal(t, "m-1", p.msgs[0].key)
	ev := p.msgs[0].value.(DomainEvent)
	require.Equal(t, EventMeetingCreated, ev.Event)
	require.NotEmpty(t, ev.EventID)
}

func TestEventsFailureIsSwallowed(t *testing.T) {
	e := NewEvents(&stubPublisher{err: errors.New("down")}, "t")
	e.Emit(context.Background(), EventConsultationCreated, "c-1", nil)
	e.Wait()
}

func TestNilEventsIsNoop(t *testing.T) {
	var e *Events
	e.Emit(context.Background(), EventConsultationCreated, "c-1", nil)
	e.Wait()
}
