package auth

import (
	"context"

	dto "github.com/sp1ral-dev/veridian/internal/http/dto/auth"
	"github.com/sp1ral-dev/veridian/internal/observability/logger"
	"github.com/sp1ral-dev/veridian/internal/token"
)

// ValidateDeps contiene las dependencias del validate service.
type ValidateDeps struct {
	Tokens *token.Service
}

type validateService struct {
	deps ValidateDeps
}

// NewValidateService crea el servicio de validación de tokens.
// Lo usan otros servicios del sistema para chequear access tokens sin
// compartir la clave pública.
func NewValidateService(deps ValidateDeps) ValidateService {
	return &validateService{deps: deps}
}

func (s *validateService) Validate(ctx context.Context, accessToken string) (*dto.ValidateResponse, error) {
	if accessToken == "" {
		return nil, ErrInvalidAccessToken
	}
	claims, err := s.deps.Tokens.Verify(accessToken, token.KindAccess)
	if err != nil {
		logger.From(ctx).Debug("token validation failed",
			logger.Component("auth.validate"),
			logger.Err(err),
		)
		return nil, ErrInvalidAccessToken
	}
	return &dto.ValidateResponse{UserID: claims.UserID, Subject: claims.Subject}, nil
}
