// Package health contiene los controllers de liveness/readiness.
package health

import (
	"net/http"

	"github.com/sp1ral-dev/veridian/internal/http/helpers"
	svc "github.com/sp1ral-dev/veridian/internal/http/services/health"
)

// Controller expone /healthz y /readyz.
type Controller struct {
	service svc.Service
}

func New(service svc.Service) *Controller {
	return &Controller{service: service}
}

// Live maneja GET /healthz
func (c *Controller) Live(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSON(w, http.StatusOK, c.service.Live(r.Context()))
}

// Ready maneja GET /readyz
func (c *Controller) Ready(w http.ResponseWriter, r *http.Request) {
	st := c.service.Ready(r.Context())
	status := http.StatusOK
	if st.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	helpers.WriteJSON(w, status, st)
}
