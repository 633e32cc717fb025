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

// PasswordController maneja el cambio de contraseña.
type PasswordController struct {
	service svc.PasswordService
}

// NewPasswordController crea el controller de cambio de contraseña.
func NewPasswordController(service svc.PasswordService) *PasswordController {
	return &PasswordController{service: service}
}

// ChangePassword maneja POST /v1/auth/change-password
func (c *PasswordController) ChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("PasswordController.ChangePassword"))

	accessToken := helpers.BearerToken(r)
	if accessToken == "" {
		httperrors.WriteError(w, httperrors.ErrTokenMissing)
		return
	}

	var req dto.ChangePasswordRequest
	if err := helpers.DecodeJSON(w, r, &req); err != nil {
		httperrors.WriteError(w, err)
		return
	}

	if err := c.service.ChangePassword(ctx, accessToken, req); err != nil {
		log.Debug("change password failed", logger.Err(err))
		switch {
		case errors.Is(err, svc.ErrInvalidAccessToken):
			httperrors.WriteError(w, httperrors.ErrTokenInvalid)
		case errors.Is(err, svc.ErrPasswordMismatch):
			httperrors.WriteError(w, httperrors.ErrPasswordMismatch)
		case errors.Is(err, svc.ErrUserNotFound):
			httperrors.WriteError(w, httperrors.ErrUserNotFound)
		case errors.Is(err, svc.ErrInvalidCurrentPassword):
			httperrors.WriteError(w, httperrors.ErrInvalidCredentials.WithDetail("la contraseña actual no coincide"))
		default:
			httperrors.WriteError(w, httperrors.ErrInternalServerError)
		}
		return
	}

	helpers.WriteJSON(w, http.StatusOK, dto.MessageResponse{Message: "contraseña actualizada"})
}
