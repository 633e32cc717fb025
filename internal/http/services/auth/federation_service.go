package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/sp1ral-dev/veridian/internal/domain/repository"
	"github.com/sp1ral-dev/veridian/internal/federation"
	dto "github.com/sp1ral-dev/veridian/internal/http/dto/auth"
	"github.com/sp1ral-dev/veridian/internal/observability/logger"
	"github.com/sp1ral-dev/veridian/internal/profile"
	"github.com/sp1ral-dev/veridian/internal/token"
)

// Errores de federación
var (
	ErrEmailMissing = fmt.Errorf("provider did not supply an email")
)

// FederationDeps contiene las dependencias del federation service.
type FederationDeps struct {
	Repo     repository.IdentityRepository
	Tokens   *token.Service
	Profiles profile.Gateway
	Registry *federation.Registry
}

type federationService struct {
	deps FederationDeps
}

// NewFederationService crea el servicio de finalización OAuth2.
func NewFederationService(deps FederationDeps) FederationService {
	return &federationService{deps: deps}
}

func (s *federationService) Complete(ctx context.Context, provider string, in dto.OAuth2SuccessRequest) (*AuthResult, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth.federation"),
		logger.Op("Complete"),
		logger.Provider(provider),
	)

	// Paso 1: Normalizar los atributos del proveedor. Proveedor no
	// registrado cae al normalizador default, nunca es error.
	norm := s.deps.Registry.Lookup(provider)
	attrs, err := norm.Enrich(ctx, in.Attributes, in.ProviderAccessToken)
	if err != nil {
		log.Warn("attribute enrichment failed", logger.Err(err))
		return nil, ErrEmailMissing
	}

	email := strings.TrimSpace(strings.ToLower(federation.StringAttr(attrs, "email")))
	if email == "" {
		log.Debug("no email in provider attributes")
		return nil, ErrEmailMissing
	}

	// Paso 2: Encontrar o crear la identidad federada.
	identity, err := s.deps.Repo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if !identity.Enabled {
			log.Info("user disabled", logger.UserID(identity.ID))
			return nil, ErrUserDisabled
		}
	case repository.IsNotFound(err):
		identity, err = s.provisionIdentity(ctx, provider, email, norm, attrs)
		if err != nil {
			return nil, err
		}
	default:
		log.Error("identity lookup failed", logger.Err(err))
		return nil, err
	}

	log = log.With(logger.UserID(identity.ID))

	// Paso 3: Perfil best-effort para la respuesta combinada.
	info, perr := s.deps.Profiles.GetProfile(ctx, identity.ID)
	if perr != nil {
		if !errors.Is(perr, profile.ErrNotFound) {
			log.Warn("profile fetch failed", logger.Err(perr))
		}
		info = nil
	}

	// Paso 4: Emitir tokens propios. Los tokens del proveedor no se
	// guardan ni se reexponen.
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

	log.Info("federated login completed")

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

// provisionIdentity crea la identidad federada (sin contraseña local) y
// siembra el perfil remoto best-effort: si el servicio de perfiles está
// caído el login federado igual sale, el perfil se crea en el próximo
// acceso porque CreateProfile es idempotente del lado remoto.
func (s *federationService) provisionIdentity(ctx context.Context, provider, email string, norm federation.Normalizer, attrs map[string]any) (*repository.Identity, error) {
	identity := &repository.Identity{
		ID:       uuid.NewString(),
		Email:    email,
		Provider: mapProvider(provider),
		Role:     repository.RoleUser,
		Enabled:  true,
	}
	created, err := s.deps.Repo.Create(ctx, identity)
	if err != nil {
		if repository.IsConflict(err) {
			// carrera con otro callback del mismo usuario
			return s.deps.Repo.GetByEmail(ctx, email)
		}
		return nil, err
	}

	seed := norm.ExtractSeed(attrs)
	if seed.GenderID <= 0 {
		seed.GenderID = profile.GenderUnspecified
	}
	if _, perr := s.deps.Profiles.CreateProfile(ctx, created.ID, seed); perr != nil {
		logger.From(ctx).Warn("federated profile seed failed",
			logger.Component("auth.federation"),
			logger.UserID(created.ID),
			logger.Err(perr),
		)
	}
	return created, nil
}

func mapProvider(provider string) repository.Provider {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "google":
		return repository.ProviderGoogle
	case "github":
		return repository.ProviderGitHub
	default:
		return repository.ProviderLocal
	}
}
