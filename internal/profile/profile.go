// Package profile define el contrato contra el user-profile-service.
//
// Es el camino SÍNCRONO del protocolo de consistencia: el perfil tiene que
// existir antes de devolver la respuesta de register/login, así que estas
// llamadas bloquean el request y no se reintentan automáticamente: un
// fallo transitorio sube como error de dependencia al caller.
package profile

import (
	"context"
	"errors"
)

var (
	// ErrNotFound indica que el perfil no existe en el servicio remoto.
	ErrNotFound = errors.New("profile: not found")

	// ErrUnavailable indica un fallo de RPC (timeout, conexión, interno).
	ErrUnavailable = errors.New("profile: service unavailable")
)

// GenderUnspecified es el sentinel para género desconocido (federación
// sin dato, registros sin el campo).
const GenderUnspecified int64 = 3

// Seed es el conjunto inicial de campos de perfil que se envía una sola
// vez al crear la cuenta. El registro resultante es propiedad del servicio
// remoto; acá no se guarda copia.
type Seed struct {
	Username    string
	PhoneNumber string
	DateOfBirth string // yyyy-MM-dd, vacío si se desconoce
	GenderID    int64
	AvatarKey   string
}

// Info es la vista del perfil que viaja en las respuestas de auth.
type Info struct {
	Username    string
	AvatarKey   string
	PhoneNumber string
	DateOfBirth string
	GenderID    int64
}

// UpdateResult es el resultado de un update de perfil. PreviousAvatarKey
// permite al caller publicar la limpieza del avatar reemplazado.
type UpdateResult struct {
	Username          string
	AvatarKey         string
	PreviousAvatarKey string
}

// Gateway es el cliente bloqueante contra el user-profile-service.
type Gateway interface {
	// CreateProfile crea el perfil para userID. Idempotente del lado
	// remoto: si ya existe, devuelve el existente.
	CreateProfile(ctx context.Context, userID string, seed Seed) (*Info, error)

	// GetProfile lee el perfil de userID.
	GetProfile(ctx context.Context, userID string) (*Info, error)

	// UpdateProfile reemplaza los campos editables del perfil.
	UpdateProfile(ctx context.Context, userID string, seed Seed) (*UpdateResult, error)

	// IsPhoneUnique informa si el teléfono NO está tomado por otro perfil.
	IsPhoneUnique(ctx context.Context, phone string) (bool, error)
}
