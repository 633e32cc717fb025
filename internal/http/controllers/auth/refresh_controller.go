package auth

import (
	"errors"
	"net/http"

	httperrors "github.com/sp1ral-dev/veridian/internal/http/errors"
	"github.com/sp1ral-dev/veridian/internal/http/helpers"
	svc "github.com/sp1ral-dev/veridian/internal/http/services/auth"
	"github.com/sp1ral-dev/veridian/internal/observability/logger"
)

// RefreshController maneja la rotación del access token.
type RefreshController struct {
	service svc.RefreshService
	cookies CookieSettings
}

// NewRefreshController crea el controller de refresh.
func NewRefreshController(service svc.RefreshService, cookies CookieSettings) *RefreshController {
	return &RefreshController{service: service, cookies: cookies}
}

// Refresh maneja POST /v1/auth/refresh.
// El refresh token viene exclusivamente de la cookie HttpOnly; no se
// acepta por body ni por header.
func (c *RefreshController) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("RefreshController.Refresh"))

	refreshToken := helpers.ReadRefreshCookie(r)

	result, err := c.service.Refresh(ctx, refreshToken)
	if err != nil {
		log.Debug("refresh failed", logger.Err(err))
		switch {
		case errors.Is(err, svc.ErrRefreshTokenMissing):
			httperrors.WriteError(w, httperrors.ErrRefreshTokenMissing)
		case errors.Is(err, svc.ErrInvalidRefreshToken):
			// cookie inválida: se limpia para cortar reintentos del cliente
			http.SetCookie(w, helpers.BuildRefreshDeletionCookie(c.cookies.Domain, c.cookies.SameSite, c.cookies.Secure))
			httperrors.WriteError(w, httperrors.ErrTokenInvalid)
		case errors.Is(err, svc.ErrUserDisabled):
			httperrors.WriteError(w, httperrors.ErrAccountDisabled)
		default:
			httperrors.WriteError(w, httperrors.ErrInternalServerError)
		}
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	helpers.WriteJSON(w, http.StatusOK, result.Response)
}
