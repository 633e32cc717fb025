package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sp1ral-dev/veridian/internal/domain/repository"
	dto "github.com/sp1ral-dev/veridian/internal/http/dto/auth"
	"github.com/sp1ral-dev/veridian/internal/observability/logger"
	"github.com/sp1ral-dev/veridian/internal/profile"
	"github.com/sp1ral-dev/veridian/internal/security/password"
	"github.com/sp1ral-dev/veridian/internal/token"
)

// Errores de login
var (
	ErrUserNotFound       = fmt.Errorf("user not found")
	ErrUserDisabled       = fmt.Errorf("user disabled")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
)

// LoginDeps contiene las dependencias del login service.
type LoginDeps struct {
	Repo     repository.IdentityRepository
	Tokens   *token.Service
	Profiles profile.Gateway
}

type loginService struct {
	deps LoginDeps
}

// NewLoginService crea el servicio de login.
func NewLoginService(deps LoginDeps) LoginService {
	return &loginService{deps: deps}
}

func (s *loginService) Login(ctx context.Context, in dto.LoginRequest) (*AuthResult, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth.login"),
		logger.Op("Login"),
	)

	// Paso 0: Normalización
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	if in.Email == "" || in.Password == "" {
		return nil, ErrMissingFields
	}

	// Paso 1: Buscar identidad. Email inexistente corta acá: nunca se
	// llega a verificar contraseña ni a emitir tokens.
	identity, err := s.deps.Repo.GetByEmail(ctx, in.Email)
	if err != nil {
		if repository.IsNotFound(err) {
			log.Debug("user not found")
			return nil, ErrUserNotFound
		}
		log.Error("identity lookup failed", logger.Err(err))
		return nil, err
	}

	log = log.With(logger.UserID(identity.ID))

	// Paso 2: Estado de la cuenta.
	if !identity.Enabled {
		log.Info("user disabled")
		return nil, ErrUserDisabled
	}

	// Paso 3: Verificar contraseña. Cuentas solo federadas no tienen hash.
	if identity.PasswordHash == nil || *identity.PasswordHash == "" {
		log.Debug("no local password for identity")
		return nil, ErrInvalidCredentials
	}
	if !password.Verify(in.Password, *identity.PasswordHash) {
		log.Debug("password check failed")
		return nil, ErrInvalidCredentials
	}

	// Paso 4: Perfil para la respuesta combinada.
	info, err := s.deps.Profiles.GetProfile(ctx, identity.ID)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			// identidad sin perfil (no debería pasar fuera de migraciones);
			// la respuesta sale sin campos de perfil
			log.Warn("profile missing for identity")
			info = nil
		} else {
			log.Warn("profile fetch failed", logger.Err(err))
			return nil, ErrProfileUnavailable
		}
	}

	// Paso 5: Emitir par de tokens.
	access, err := s.deps.Tokens.IssueAccessToken(identity.Email, identity.ID)
	if err != nil {
		log.Error("access token issue failed", logger.Err(err))
		return nil, ErrTokenIssueFailed
	}
	refresh, err := s.deps.Tokens.IssueRefreshToken(identity.Email, identity.ID)
	if err != nil {
		log.Error("refresh token issue failed", logger.Err(err))
		return nil, ErrTokenIssueFailed
	}

	log.Info("login successful")

	return &AuthResult{
		Response: dto.AuthResponse{
			AccessToken: access,
			TokenType:   "Bearer",
			ExpiresIn:   int64(s.deps.Tokens.AccessTTL().Seconds()),
			User:        buildUserPayload(identity, info),
		},
		RefreshToken: refresh,
	}, nil
}
