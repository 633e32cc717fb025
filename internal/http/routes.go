// Package http arma el router y el servidor HTTP del servicio.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	authctrl "github.com/sp1ral-dev/veridian/internal/http/controllers/auth"
	healthctrl "github.com/sp1ral-dev/veridian/internal/http/controllers/health"
	profilectrl "github.com/sp1ral-dev/veridian/internal/http/controllers/profile"
	httperrors "github.com/sp1ral-dev/veridian/internal/http/errors"
	"github.com/sp1ral-dev/veridian/internal/http/middlewares"
)

// RouterDeps agrupa los controllers y middlewares del router.
type RouterDeps struct {
	Auth    *authctrl.Controllers
	Profile *profilectrl.UpdateController
	Health  *healthctrl.Controller

	// Metrics es el handler de /metrics (nil lo deshabilita).
	Metrics http.Handler

	// RateLimit configura el límite por IP del edge.
	RateLimit middlewares.RateLimitConfig
}

// NewRouter arma el árbol de rutas con la cadena de middlewares estándar:
// request-id → logging → recover → rate-limit → métricas.
func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httperrors.WriteError(w, httperrors.ErrRouteNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httperrors.WriteError(w, httperrors.ErrMethodNotAllowed)
	})

	r.Route("/v1", func(v1 chi.Router) {
		v1.Route("/auth", func(a chi.Router) {
			a.Post("/register", d.Auth.Register.Register)
			a.Post("/login", d.Auth.Login.Login)
			a.Post("/refresh", d.Auth.Refresh.Refresh)
			a.Post("/logout", d.Auth.Logout.Logout)
			a.Post("/change-password", d.Auth.Password.ChangePassword)
			a.Get("/validate", d.Auth.Validate.Validate)
			a.Post("/oauth2/{provider}/success", d.Auth.OAuth2.Success)
		})
		v1.Put("/profile", d.Profile.Update)
	})

	r.Get("/healthz", d.Health.Live)
	r.Get("/readyz", d.Health.Ready)
	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics)
	}

	rate := d.RateLimit
	if len(rate.Whitelist) == 0 {
		rate.Whitelist = []string{"/healthz", "/readyz", "/metrics"}
	}

	return middlewares.Chain(WithMetrics(r),
		middlewares.WithRequestID(),
		middlewares.WithLogging(),
		middlewares.WithRecover(),
		middlewares.WithRateLimit(rate),
	)
}
