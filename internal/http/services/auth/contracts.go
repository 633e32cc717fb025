// Package auth contiene contracts para servicios de autenticación.
package auth

import (
	"context"

	dto "github.com/sp1ral-dev/veridian/internal/http/dto/auth"
)

// AuthResult empaqueta la respuesta JSON y el refresh token que el
// controller coloca en la cookie HttpOnly. El refresh token nunca
// viaja en el body.
type AuthResult struct {
	Response     dto.AuthResponse
	RefreshToken string
}

// RegisterService define el alta de usuarios locales.
type RegisterService interface {
	// Register valida, crea identidad + perfil y emite el par de tokens.
	// Si el perfil remoto falla tras crear la identidad, la identidad se
	// revierte: no quedan escrituras parciales.
	Register(ctx context.Context, in dto.RegisterRequest) (*AuthResult, error)
}

// LoginService define el login con email/password.
type LoginService interface {
	Login(ctx context.Context, in dto.LoginRequest) (*AuthResult, error)
}

// RefreshService define la rotación del access token.
type RefreshService interface {
	// Refresh valida el refresh token (de la cookie) y emite un nuevo
	// access token. El refresh token NO se rota.
	Refresh(ctx context.Context, refreshToken string) (*AuthResult, error)
}

// PasswordService define el cambio de contraseña del usuario autenticado.
type PasswordService interface {
	ChangePassword(ctx context.Context, accessToken string, in dto.ChangePasswordRequest) error
}

// FederationService define la finalización del flujo OAuth2.
type FederationService interface {
	// Complete recibe los atributos crudos del proveedor, normaliza,
	// encuentra o crea la identidad federada y emite tokens propios.
	Complete(ctx context.Context, provider string, in dto.OAuth2SuccessRequest) (*AuthResult, error)
}

// ValidateService define la validación de access tokens de terceros.
type ValidateService interface {
	Validate(ctx context.Context, accessToken string) (*dto.ValidateResponse, error)
}
