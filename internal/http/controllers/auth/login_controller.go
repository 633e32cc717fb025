package auth

import (
	"errors"
	"net/http"

	dto "github.com/sp1ral-dev/veridian/internal/http/dto/auth"
	httperrors "github.com/sp1ral-dev/veridian/internal/http/errors"
	"github.com/sp1ral-dev/veridian/internal/http/helpers"
	svc "github.com/sp1ral-dev/veridian/internal/http/services/auth"
	"github.com/sp1ral-dev/veridian/internal/observability/logger"
)

// LoginController maneja el endpoint de login.
type LoginController struct {
	service svc.LoginService
	cookies CookieSettings
}

// NewLoginController crea el controller de login.
func NewLoginController(service svc.LoginService, cookies CookieSettings) *LoginController {
	return &LoginController{service: service, cookies: cookies}
}

// Login maneja POST /v1/auth/login
func (c *LoginController) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("LoginController.Login"))

	var req dto.LoginRequest
	if err := helpers.DecodeJSON(w, r, &req); err != nil {
		httperrors.WriteError(w, err)
		return
	}

	result, err := c.service.Login(ctx, req)
	if err != nil {
		log.Debug("login failed", logger.Err(err))
		writeLoginError(w, err)
		return
	}

	http.SetCookie(w, helpers.BuildRefreshCookie(
		result.RefreshToken, c.cookies.Domain, c.cookies.SameSite, c.cookies.Secure, c.cookies.TTL,
	))
	w.Header().Set("Cache-Control", "no-store")
	helpers.WriteJSON(w, http.StatusOK, result.Response)
}

func writeLoginError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, svc.ErrMissingFields):
		httperrors.WriteError(w, httperrors.ErrMissingFields.WithDetail("email y password son obligatorios"))
	case errors.Is(err, svc.ErrUserNotFound):
		httperrors.WriteError(w, httperrors.ErrUserNotFound)
	case errors.Is(err, svc.ErrUserDisabled):
		httperrors.WriteError(w, httperrors.ErrAccountDisabled)
	case errors.Is(err, svc.ErrInvalidCredentials):
		httperrors.WriteError(w, httperrors.ErrInvalidCredentials)
	case errors.Is(err, svc.ErrProfileUnavailable):
		httperrors.WriteError(w, httperrors.ErrProfileUnavailable)
	case errors.Is(err, svc.ErrTokenIssueFailed):
		httperrors.WriteError(w, httperrors.ErrInternalServerError.WithDetail("error al emitir tokens"))
	default:
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
	}
}
