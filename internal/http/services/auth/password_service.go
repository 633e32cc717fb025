package auth

import (
	"context"
	"fmt"

	"github.com/sp1ral-dev/veridian/internal/domain/repository"
	dto "github.com/sp1ral-dev/veridian/internal/http/dto/auth"
	"github.com/sp1ral-dev/veridian/internal/observability/logger"
	"github.com/sp1ral-dev/veridian/internal/security/password"
	"github.com/sp1ral-dev/veridian/internal/token"
)

// Errores de cambio de contraseña
var (
	ErrInvalidAccessToken     = fmt.Errorf("invalid access token")
	ErrInvalidCurrentPassword = fmt.Errorf("current password incorrect")
)

// PasswordDeps contiene las dependencias del password service.
type PasswordDeps struct {
	Repo   repository.IdentityRepository
	Tokens *token.Service
}

type passwordService struct {
	deps PasswordDeps
}

// NewPasswordService crea el servicio de cambio de contraseña.
func NewPasswordService(deps PasswordDeps) PasswordService {
	return &passwordService{deps: deps}
}

func (s *passwordService) ChangePassword(ctx context.Context, accessToken string, in dto.ChangePasswordRequest) error {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth.password"),
		logger.Op("ChangePassword"),
	)

	// Paso 1: El actor sale del access token, nunca del body.
	claims, err := s.deps.Tokens.Verify(accessToken, token.KindAccess)
	if err != nil {
		log.Debug("access token rejected", logger.Err(err))
		return ErrInvalidAccessToken
	}

	if in.NewPassword == "" || in.NewPassword != in.ConfirmPassword {
		return ErrPasswordMismatch
	}

	// Paso 2: Identidad del actor.
	identity, err := s.deps.Repo.GetByID(ctx, claims.UserID)
	if err != nil {
		if repository.IsNotFound(err) {
			return ErrUserNotFound
		}
		log.Error("identity lookup failed", logger.Err(err))
		return err
	}

	log = log.With(logger.UserID(identity.ID))

	// Paso 3: Verificar la contraseña actual. Cuentas solo federadas no
	// tienen contraseña local que cambiar.
	if identity.PasswordHash == nil || *identity.PasswordHash == "" {
		return ErrInvalidCurrentPassword
	}
	if !password.Verify(in.CurrentPassword, *identity.PasswordHash) {
		log.Debug("current password check failed")
		return ErrInvalidCurrentPassword
	}

	// Paso 4: Persistir el nuevo hash.
	hash, err := password.Hash(password.Default, in.NewPassword)
	if err != nil {
		log.Error("password hash failed", logger.Err(err))
		return err
	}
	if err := s.deps.Repo.UpdatePassword(ctx, identity.ID, hash); err != nil {
		if repository.IsNotFound(err) {
			return ErrUserNotFound
		}
		log.Error("password update failed", logger.Err(err))
		return err
	}

	log.Info("password changed")
	return nil
}
