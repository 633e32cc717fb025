// Package health implementa los chequeos de liveness/readiness.
package health

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	dto "github.com/sp1ral-dev/veridian/internal/http/dto/health"
)

// Service expone los chequeos de salud.
type Service interface {
	// Live siempre responde ok si el proceso está vivo.
	Live(ctx context.Context) dto.Status
	// Ready verifica las dependencias (Postgres, Redis).
	Ready(ctx context.Context) dto.Status
}

// Deps contiene las dependencias chequeables. Cualquiera puede ser nil
// (p.ej. Redis apagado en entornos de desarrollo).
type Deps struct {
	Pool  *pgxpool.Pool
	Redis redis.UniversalClient
}

type service struct {
	deps Deps
}

func New(deps Deps) Service {
	return &service{deps: deps}
}

func (s *service) Live(context.Context) dto.Status {
	return dto.Status{Status: "ok"}
}

func (s *service) Ready(ctx context.Context) dto.Status {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	checks := make(map[string]string)
	ok := true

	if s.deps.Pool != nil {
		if err := s.deps.Pool.Ping(ctx); err != nil {
			checks["postgres"] = err.Error()
			ok = false
		} else {
			checks["postgres"] = "ok"
		}
	}
	if s.deps.Redis != nil {
		if err := s.deps.Redis.Ping(ctx).Err(); err != nil {
			checks["redis"] = err.Error()
			ok = false
		} else {
			checks["redis"] = "ok"
		}
	}

	status := "ok"
	if !ok {
		status = "degraded"
	}
	return dto.Status{Status: status, Checks: checks}
}
