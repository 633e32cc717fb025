// Package profile contiene el controller del perfil.
package profile

import (
	"errors"
	"net/http"

	dto "github.com/sp1ral-dev/veridian/internal/http/dto/profile"
	httperrors "github.com/sp1ral-dev/veridian/internal/http/errors"
	"github.com/sp1ral-dev/veridian/internal/http/helpers"
	svc "github.com/sp1ral-dev/veridian/internal/http/services/profile"
	"github.com/sp1ral-dev/veridian/internal/observability/logger"
	profiledom "github.com/sp1ral-dev/veridian/internal/profile"
)

// UpdateController maneja la actualización del perfil propio.
type UpdateController struct {
	service svc.UpdateService
}

// NewUpdateController crea el controller de update de perfil.
func NewUpdateController(service svc.UpdateService) *UpdateController {
	return &UpdateController{service: service}
}

// Update maneja PUT /v1/profile
func (c *UpdateController) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("UpdateController.Update"))

	accessToken := helpers.BearerToken(r)
	if accessToken == "" {
		httperrors.WriteError(w, httperrors.ErrTokenMissing)
		return
	}

	var req dto.UpdateRequest
	if err := helpers.DecodeJSON(w, r, &req); err != nil {
		httperrors.WriteError(w, err)
		return
	}

	res, err := c.service.Update(ctx, accessToken, req)
	if err != nil {
		log.Debug("profile update failed", logger.Err(err))
		switch {
		case errors.Is(err, svc.ErrInvalidAccessToken):
			httperrors.WriteError(w, httperrors.ErrTokenInvalid)
		case errors.Is(err, svc.ErrMissingFields):
			httperrors.WriteError(w, httperrors.ErrMissingFields.WithDetail("username es obligatorio"))
		case errors.Is(err, profiledom.ErrNotFound):
			httperrors.WriteError(w, httperrors.ErrNotFound.WithDetail("el perfil no existe"))
		case errors.Is(err, profiledom.ErrUnavailable):
			httperrors.WriteError(w, httperrors.ErrProfileUnavailable)
		default:
			httperrors.WriteError(w, httperrors.ErrInternalServerError)
		}
		return
	}

	helpers.WriteJSON(w, http.StatusOK, res)
}
