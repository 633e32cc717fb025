package redisbus

import (
	"errors"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/sp1ral-dev/veridian/internal/events"
)

func TestDecode_ValidPayload(t *testing.T) {
	t.Parallel()
	msg := redis.XMessage{
		ID: "1-0",
		Values: map[string]any{
			"key":     "a.png",
			"payload": `{"action":"DELETED","key":"a.png"}`,
		},
	}
	ev, err := decode(msg)
	require.NoError(t, err)
	require.Equal(t, events.Event{Action: events.ActionDeleted, Key: "a.png"}, ev)
}

func TestDecode_MissingPayload(t *testing.T) {
	t.Parallel()
	_, err := decode(redis.XMessage{ID: "1-0", Values: map[string]any{"key": "a.png"}})
	require.Error(t, err)
}

func TestDecode_MalformedJSON(t *testing.T) {
	t.Parallel()
	_, err := decode(redis.XMessage{ID: "1-0", Values: map[string]any{"payload": "{"}})
	require.Error(t, err)
}

func TestIsBusyGroup(t *testing.T) {
	t.Parallel()
	require.True(t, isBusyGroup(errors.New("BUSYGROUP Consumer Group name already exists")))
	require.False(t, isBusyGroup(errors.New("ERR something else")))
	require.False(t, isBusyGroup(nil))
}
