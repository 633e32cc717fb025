// Package metrics expone los contadores Prometheus de dominio.
//
// Se registran sobre el registry global en el init de promauto; el handler
// de /metrics sirve el gatherer global, así que acá no hay wiring extra.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	tokensIssued = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tokens_issued_total",
		Help: "Tokens emitidos por tipo",
	}, []string{"token_type"})

	avatarEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "avatar_events_published_total",
		Help: "Eventos de avatar publicados por acción y resultado",
	}, []string{"action", "result"})

	profileCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "profile_gateway_calls_total",
		Help: "Llamadas al servicio de perfiles por operación y resultado",
	}, []string{"op", "result"})
)

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// TokenIssued registra un token emitido.
func TokenIssued(tokenType string) {
	tokensIssued.WithLabelValues(tokenType).Inc()
}

// AvatarEvent registra el resultado de una publicación al bus de avatares.
func AvatarEvent(action string, err error) {
	avatarEvents.WithLabelValues(action, result(err)).Inc()
}

// ProfileCall registra una llamada al gateway de perfiles.
func ProfileCall(op string, err error) {
	profileCalls.WithLabelValues(op, result(err)).Inc()
}
