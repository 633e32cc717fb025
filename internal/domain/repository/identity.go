// Package repository define los contratos de persistencia del dominio.
// El orquestador de auth depende de estas interfaces, nunca de pgx.
package repository

import (
	"context"
	"time"
)

// Provider indica el origen de la cuenta.
type Provider string

const (
	ProviderLocal  Provider = "LOCAL"
	ProviderGoogle Provider = "GOOGLE"
	ProviderGitHub Provider = "GITHUB"
)

// Role es el rol de la cuenta. Solo USER se usa en el core; ADMIN existe
// para el tooling de operación.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Identity es el registro canónico de autenticación de un usuario.
// El perfil (username, avatar, etc.) es propiedad del user-profile-service;
// acá solo credenciales y estado.
type Identity struct {
	ID string
	// Email único sin distinguir mayúsculas.
	Email string
	// PasswordHash es nil para cuentas solo federadas.
	PasswordHash *string
	Provider     Provider
	Role         Role
	// Las identidades no se borran físicamente: deshabilitar es un flag.
	Enabled   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IdentityRepository define las operaciones que el core necesita.
// La implementación es transaccional y autoritativa (una sola base);
// las preocupaciones de consistencia distribuida viven en el camino
// perfil/avatar, no acá.
type IdentityRepository interface {
	// ExistsByEmail informa si existe una identidad con ese email.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// GetByEmail busca por email, case-insensitive.
	// Retorna ErrNotFound si no existe.
	GetByEmail(ctx context.Context, email string) (*Identity, error)

	// GetByID busca por ID. Retorna ErrNotFound si no existe.
	GetByID(ctx context.Context, id string) (*Identity, error)

	// Create persiste una identidad nueva.
	// Retorna ErrConflict si el email ya está tomado.
	Create(ctx context.Context, identity *Identity) (*Identity, error)

	// UpdatePassword reemplaza el hash de contraseña.
	UpdatePassword(ctx context.Context, id, passwordHash string) error

	// Delete elimina la fila. Existe SOLO como compensación cuando la
	// creación del perfil remoto falla durante el registro; fuera de ese
	// camino las identidades nunca se borran.
	Delete(ctx context.Context, id string) error
}
