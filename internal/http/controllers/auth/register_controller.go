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

// RegisterController maneja el endpoint de registro.
type RegisterController struct {
	service svc.RegisterService
	cookies CookieSettings
}

// NewRegisterController crea el controller de registro.
func NewRegisterController(service svc.RegisterService, cookies CookieSettings) *RegisterController {
	return &RegisterController{service: service, cookies: cookies}
}

// Register maneja POST /v1/auth/register
func (c *RegisterController) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("RegisterController.Register"))

	var req dto.RegisterRequest
	if err := helpers.DecodeJSON(w, r, &req); err != nil {
		httperrors.WriteError(w, err)
		return
	}

	result, err := c.service.Register(ctx, req)
	if err != nil {
		log.Debug("register failed", logger.Err(err))
		writeRegisterError(w, err)
		return
	}

	http.SetCookie(w, helpers.BuildRefreshCookie(
		result.RefreshToken, c.cookies.Domain, c.cookies.SameSite, c.cookies.Secure, c.cookies.TTL,
	))
	w.Header().Set("Cache-Control", "no-store")
	helpers.WriteJSON(w, http.StatusCreated, result.Response)
}

func writeRegisterError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, svc.ErrMissingFields):
		httperrors.WriteError(w, httperrors.ErrMissingFields.WithDetail("email, password y username son obligatorios"))
	case errors.Is(err, svc.ErrEmailTaken):
		httperrors.WriteError(w, httperrors.ErrEmailAlreadyInUse)
	case errors.Is(err, svc.ErrPasswordMismatch):
		httperrors.WriteError(w, httperrors.ErrPasswordMismatch)
	case errors.Is(err, svc.ErrPhoneRequired):
		httperrors.WriteError(w, httperrors.ErrPhoneRequired)
	case errors.Is(err, svc.ErrPhoneTaken):
		httperrors.WriteError(w, httperrors.ErrPhoneAlreadyInUse)
	case errors.Is(err, svc.ErrProfileUnavailable):
		httperrors.WriteError(w, httperrors.ErrProfileUnavailable)
	case errors.Is(err, svc.ErrTokenIssueFailed):
		httperrors.WriteError(w, httperrors.ErrInternalServerError.WithDetail("error al emitir tokens"))
	default:
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
	}
}
