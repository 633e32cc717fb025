package events_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sp1ral-dev/veridian/internal/events"
)

// bus en memoria para ejercitar el contrato sin Redis.
type memoryBus struct {
	published []events.Event
}

func (m *memoryBus) Publish(_ context.Context, action events.Action, key string) error {
	m.published = append(m.published, events.Event{Action: action, Key: key})
	return nil
}

// handler idempotente de referencia: mantiene el set de claves vivas.
type avatarSet struct {
	alive map[string]bool
}

func (s *avatarSet) handle(ev events.Event) {
	switch ev.Action {
	case events.ActionApproved:
		s.alive[ev.Key] = true
	case events.ActionDeleted:
		delete(s.alive, ev.Key)
	}
}

func TestPublisher_CapturesOrderPerKey(t *testing.T) {
	t.Parallel()
	bus := &memoryBus{}

	require.NoError(t, bus.Publish(context.Background(), events.ActionDeleted, "old.png"))
	require.NoError(t, bus.Publish(context.Background(), events.ActionApproved, "new.png"))

	require.Equal(t, []events.Event{
		{Action: events.ActionDeleted, Key: "old.png"},
		{Action: events.ActionApproved, Key: "new.png"},
	}, bus.published)
}

func TestDuplicateDeleteIsNoOp(t *testing.T) {
	t.Parallel()
	s := &avatarSet{alive: map[string]bool{"a.png": true, "b.png": true}}

	// entrega at-least-once: el mismo DELETE puede llegar dos veces
	s.handle(events.Event{Action: events.ActionDeleted, Key: "a.png"})
	s.handle(events.Event{Action: events.ActionDeleted, Key: "a.png"})

	require.Equal(t, map[string]bool{"b.png": true}, s.alive)
}
