package auth

import (
	"net/http"

	httperrors "github.com/sp1ral-dev/veridian/internal/http/errors"
	"github.com/sp1ral-dev/veridian/internal/http/helpers"
	svc "github.com/sp1ral-dev/veridian/internal/http/services/auth"
)

// ValidateController expone la validación de access tokens para otros
// servicios del sistema.
type ValidateController struct {
	service svc.ValidateService
}

// NewValidateController crea el controller de validación.
func NewValidateController(service svc.ValidateService) *ValidateController {
	return &ValidateController{service: service}
}

// Validate maneja GET /v1/auth/validate
func (c *ValidateController) Validate(w http.ResponseWriter, r *http.Request) {
	accessToken := helpers.BearerToken(r)
	if accessToken == "" {
		httperrors.WriteError(w, httperrors.ErrTokenMissing)
		return
	}

	res, err := c.service.Validate(r.Context(), accessToken)
	if err != nil {
		httperrors.WriteError(w, httperrors.ErrTokenInvalid)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, res)
}
