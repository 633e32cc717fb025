// Package profile contiene el servicio de actualización de perfil.
package profile

import (
	"context"
	"fmt"
	"time"

	"github.com/sp1ral-dev/veridian/internal/events"
	dto "github.com/sp1ral-dev/veridian/internal/http/dto/profile"
	"github.com/sp1ral-dev/veridian/internal/observability/logger"
	profiledom "github.com/sp1ral-dev/veridian/internal/profile"
	"github.com/sp1ral-dev/veridian/internal/token"
)

// Errores de update
var (
	ErrInvalidAccessToken = fmt.Errorf("invalid access token")
	ErrMissingFields      = fmt.Errorf("missing required fields")
)

// UpdateService define la actualización del perfil del usuario autenticado.
type UpdateService interface {
	Update(ctx context.Context, accessToken string, in dto.UpdateRequest) (*dto.UpdateResponse, error)
}

// UpdateDeps contiene las dependencias del update service.
type UpdateDeps struct {
	Tokens   *token.Service
	Profiles profiledom.Gateway
	Bus      events.Publisher

	// PublishTimeout acota la publicación detached; con cero se usa 5s.
	PublishTimeout time.Duration
}

type updateService struct {
	deps UpdateDeps
}

// NewUpdateService crea el servicio de actualización de perfil.
func NewUpdateService(deps UpdateDeps) UpdateService {
	if deps.PublishTimeout <= 0 {
		deps.PublishTimeout = 5 * time.Second
	}
	return &updateService{deps: deps}
}

func (s *updateService) Update(ctx context.Context, accessToken string, in dto.UpdateRequest) (*dto.UpdateResponse, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("profile.update"),
		logger.Op("Update"),
	)

	// Paso 1: Actor desde el access token.
	claims, err := s.deps.Tokens.Verify(accessToken, token.KindAccess)
	if err != nil {
		log.Debug("access token rejected", logger.Err(err))
		return nil, ErrInvalidAccessToken
	}
	if in.Username == "" {
		return nil, ErrMissingFields
	}

	log = log.With(logger.UserID(claims.UserID))

	// Paso 2: Update síncrono contra el servicio de perfiles.
	seed := profiledom.Seed{
		Username:    in.Username,
		PhoneNumber: in.PhoneNumber,
		DateOfBirth: in.DateOfBirth,
		GenderID:    in.GenderID,
		AvatarKey:   in.AvatarKey,
	}
	if seed.GenderID <= 0 {
		seed.GenderID = profiledom.GenderUnspecified
	}
	res, err := s.deps.Profiles.UpdateProfile(ctx, claims.UserID, seed)
	if err != nil {
		log.Warn("profile update failed", logger.Err(err))
		return nil, err
	}

	// Paso 3: Eventos de avatar DESPUÉS de que el update quedó aplicado.
	// Son fire-and-forget: un Redis lento o caído nunca bloquea ni voltea
	// la respuesta, solo se loggea.
	s.publishAvatarEvents(res)

	log.Info("profile updated")
	return &dto.UpdateResponse{Username: res.Username, AvatarKey: res.AvatarKey}, nil
}

// publishAvatarEvents publica en un goroutine desacoplado del request, con
// su propio deadline. Protegido contra panics del cliente del bus.
func (s *updateService) publishAvatarEvents(res *profiledom.UpdateResult) {
	oldKey := res.PreviousAvatarKey
	newKey := res.AvatarKey
	if s.deps.Bus == nil || (oldKey == "" && newKey == "") {
		return
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.L().Error("avatar event publish panicked",
					logger.Component("profile.update"),
					logger.Any("panic", r),
				)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), s.deps.PublishTimeout)
		defer cancel()

		// el avatar reemplazado se marca para limpieza
		if oldKey != "" && oldKey != newKey {
			if err := s.deps.Bus.Publish(ctx, events.ActionDeleted, oldKey); err != nil {
				logger.L().Warn("avatar delete event failed",
					logger.Component("profile.update"),
					logger.Action(string(events.ActionDeleted)),
					logger.Key(oldKey),
					logger.Err(err),
				)
			}
		}
		if newKey != "" && newKey != oldKey {
			if err := s.deps.Bus.Publish(ctx, events.ActionApproved, newKey); err != nil {
				logger.L().Warn("avatar approve event failed",
					logger.Component("profile.update"),
					logger.Action(string(events.ActionApproved)),
					logger.Key(newKey),
					logger.Err(err),
				)
			}
		}
	}()
}
