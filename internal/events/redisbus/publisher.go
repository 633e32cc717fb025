// Package redisbus implementa el bus de avatares sobre Redis Streams.
//
// Cada evento se agrega con XADD al stream configurado; la clave del avatar
// viaja como campo propio de la entrada, de modo que un consumidor puede
// particionar/dedupe por clave. Los consumidores leen con consumer groups
// (XREADGROUP + XACK), lo que da entrega at-least-once.
package redisbus

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/sp1ral-dev/veridian/internal/events"
	"github.com/sp1ral-dev/veridian/internal/observability/metrics"
)

// DefaultStream es el stream de eventos de avatar.
const DefaultStream = "avatar.events"

// Publisher publica eventos con XADD.
type Publisher struct {
	rdb    redis.UniversalClient
	stream string
}

func NewPublisher(rdb redis.UniversalClient, stream string) *Publisher {
	if stream == "" {
		stream = DefaultStream
	}
	return &Publisher{rdb: rdb, stream: stream}
}

// Publish agrega el evento al stream. El payload JSON viaja en el campo
// "payload" y la clave se duplica en "key" para particionado del lado
// consumidor.
func (p *Publisher) Publish(ctx context.Context, action events.Action, key string) error {
	body, err := json.Marshal(events.Event{Action: action, Key: key})
	if err != nil {
		return fmt.Errorf("redisbus: serializando evento: %w", err)
	}
	err = p.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]any{
			"key":     key,
			"payload": body,
		},
	}).Err()
	metrics.AvatarEvent(string(action), err)
	if err != nil {
		return fmt.Errorf("redisbus: XADD %s: %w", p.stream, err)
	}
	return nil
}
