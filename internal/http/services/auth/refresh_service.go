package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/sp1ral-dev/veridian/internal/domain/repository"
	dto "github.com/sp1ral-dev/veridian/internal/http/dto/auth"
	"github.com/sp1ral-dev/veridian/internal/observability/logger"
	"github.com/sp1ral-dev/veridian/internal/profile"
	"github.com/sp1ral-dev/veridian/internal/token"
)

// Errores de refresh
var (
	ErrRefreshTokenMissing = fmt.Errorf("refresh token missing")
	ErrInvalidRefreshToken = fmt.Errorf("invalid refresh token")
)

// RefreshDeps contiene las dependencias del refresh service.
type RefreshDeps struct {
	Repo     repository.IdentityRepository
	Tokens   *token.Service
	Profiles profile.Gateway
}

type refreshService struct {
	deps RefreshDeps
}

// NewRefreshService crea el servicio de refresh.
func NewRefreshService(deps RefreshDeps) RefreshService {
	return &refreshService{deps: deps}
}

func (s *refreshService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth.refresh"),
		logger.Op("Refresh"),
	)

	if refreshToken == "" {
		return nil, ErrRefreshTokenMissing
	}

	// Paso 1: Verificar el refresh token. Un access token acá es un
	// type mismatch y se rechaza igual que uno expirado o malformado:
	// hacia afuera todos colapsan en "inválido".
	claims, err := s.deps.Tokens.Verify(refreshToken, token.KindRefresh)
	if err != nil {
		log.Debug("refresh token rejected", logger.Err(err))
		return nil, ErrInvalidRefreshToken
	}

	// Paso 2: La identidad tiene que seguir existiendo y habilitada.
	identity, err := s.deps.Repo.GetByID(ctx, claims.UserID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrInvalidRefreshToken
		}
		log.Error("identity lookup failed", logger.Err(err))
		return nil, err
	}
	if !identity.Enabled {
		log.Info("user disabled", logger.UserID(identity.ID))
		return nil, ErrUserDisabled
	}

	log = log.With(logger.UserID(identity.ID))

	// Paso 3: Nuevo access token. El refresh token NO se rota: el mismo
	// sirve hasta su expiración.
	access, err := s.deps.Tokens.IssueAccessToken(identity.Email, identity.ID)
	if err != nil {
		log.Error("access token issue failed", logger.Err(err))
		return nil, ErrTokenIssueFailed
	}

	// Paso 4: Perfil best-effort. Un refresh no debería caerse porque el
	// servicio de perfiles esté degradado; la respuesta sale sin esos campos.
	info, perr := s.deps.Profiles.GetProfile(ctx, identity.ID)
	if perr != nil {
		if !errors.Is(perr, profile.ErrNotFound) {
			log.Warn("profile fetch failed", logger.Err(perr))
		}
		info = nil
	}

	log.Debug("access token rotated")

	return &AuthResult{
		Response: dto.AuthResponse{
			AccessToken: access,
			TokenType:   "Bearer",
			ExpiresIn:   int64(s.deps.Tokens.AccessTTL().Seconds()),
			User:        buildUserPayload(identity, info),
		},
	}, nil
}
