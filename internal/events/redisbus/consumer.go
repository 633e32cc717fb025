package redisbus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sp1ral-dev/veridian/internal/events"
	"github.com/sp1ral-dev/veridian/internal/observability/logger"
)

// Handler procesa un evento ya decodificado. Debe ser idempotente: el grupo
// puede re-entregar un evento no confirmado tras un crash.
type Handler func(ctx context.Context, ev events.Event) error

// Consumer lee el stream con un consumer group y confirma con XACK.
// Lo usan los tests y la herramienta local de smoke; el servicio en sí
// solo publica.
type Consumer struct {
	rdb      redis.UniversalClient
	stream   string
	group    string
	consumer string
	block    time.Duration
}

func NewConsumer(rdb redis.UniversalClient, stream, group, consumer string) *Consumer {
	if stream == "" {
		stream = DefaultStream
	}
	return &Consumer{
		rdb:      rdb,
		stream:   stream,
		group:    group,
		consumer: consumer,
		block:    2 * time.Second,
	}
}

// EnsureGroup crea el grupo si no existe (MKSTREAM crea el stream vacío).
func (c *Consumer) EnsureGroup(ctx context.Context) error {
	err := c.rdb.XGroupCreateMkStream(ctx, c.stream, c.group, "0").Err()
	if err != nil && !isBusyGroup(err) {
		return fmt.Errorf("redisbus: creando grupo %s: %w", c.group, err)
	}
	return nil
}

// Run consume hasta que el contexto se cancele. Un evento que el handler
// rechaza no se confirma y queda pendiente para re-entrega.
func (c *Consumer) Run(ctx context.Context, h Handler) error {
	log := logger.Named("redisbus").With(logger.String("group", c.group))
	for {
		res, err := c.rdb.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    c.group,
			Consumer: c.consumer,
			Streams:  []string{c.stream, ">"},
			Count:    16,
			Block:    c.block,
		}).Result()
		switch {
		case err == nil:
		case errors.Is(err, redis.Nil):
			continue
		case ctx.Err() != nil:
			return ctx.Err()
		default:
			return fmt.Errorf("redisbus: XREADGROUP: %w", err)
		}

		for _, stream := range res {
			for _, msg := range stream.Messages {
				ev, err := decode(msg)
				if err != nil {
					// entrada corrupta: se confirma para no envenenar el grupo
					log.Warn("evento descartado", logger.String("id", msg.ID), logger.Err(err))
					_ = c.rdb.XAck(ctx, c.stream, c.group, msg.ID).Err()
					continue
				}
				if err := h(ctx, ev); err != nil {
					log.Warn("handler rechazó evento", logger.String("id", msg.ID), logger.Err(err))
					continue
				}
				if err := c.rdb.XAck(ctx, c.stream, c.group, msg.ID).Err(); err != nil {
					log.Warn("XACK falló", logger.String("id", msg.ID), logger.Err(err))
				}
			}
		}
	}
}

func decode(msg redis.XMessage) (events.Event, error) {
	raw, ok := msg.Values["payload"].(string)
	if !ok {
		return events.Event{}, fmt.Errorf("entrada %s sin payload", msg.ID)
	}
	var ev events.Event
	if err := json.Unmarshal([]byte(raw), &ev); err != nil {
		return events.Event{}, fmt.Errorf("payload inválido en %s: %w", msg.ID, err)
	}
	return ev, nil
}

func isBusyGroup(err error) bool {
	return err != nil && len(err.Error()) >= 9 && err.Error()[:9] == "BUSYGROUP"
}
