package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/sp1ral-dev/veridian/internal/domain/repository"
	dto "github.com/sp1ral-dev/veridian/internal/http/dto/auth"
	"github.com/sp1ral-dev/veridian/internal/observability/logger"
	"github.com/sp1ral-dev/veridian/internal/profile"
	"github.com/sp1ral-dev/veridian/internal/security/password"
	"github.com/sp1ral-dev/veridian/internal/token"
)

// Errores de registro
var (
	ErrMissingFields      = fmt.Errorf("missing required fields")
	ErrEmailTaken         = fmt.Errorf("email already in use")
	ErrPasswordMismatch   = fmt.Errorf("passwords do not match")
	ErrPhoneRequired      = fmt.Errorf("phone number required")
	ErrPhoneTaken         = fmt.Errorf("phone number already in use")
	ErrProfileUnavailable = fmt.Errorf("profile service unavailable")
	ErrTokenIssueFailed   = fmt.Errorf("failed to issue token")
)

// RegisterDeps contiene las dependencias del register service.
type RegisterDeps struct {
	Repo     repository.IdentityRepository
	Tokens   *token.Service
	Profiles profile.Gateway
}

type registerService struct {
	deps RegisterDeps
}

// NewRegisterService crea el servicio de registro.
func NewRegisterService(deps RegisterDeps) RegisterService {
	return &registerService{deps: deps}
}

func (s *registerService) Register(ctx context.Context, in dto.RegisterRequest) (*AuthResult, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth.register"),
		logger.Op("Register"),
	)

	// Paso 0: Normalización
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.Username = strings.TrimSpace(in.Username)
	in.PhoneNumber = strings.TrimSpace(in.PhoneNumber)

	if in.Email == "" || in.Password == "" || in.Username == "" {
		return nil, ErrMissingFields
	}

	// Paso 1: Validaciones baratas antes de tocar dependencias remotas.
	// El orden importa: primero email, después contraseñas, después teléfono.
	exists, err := s.deps.Repo.ExistsByEmail(ctx, in.Email)
	if err != nil {
		log.Error("email lookup failed", logger.Err(err))
		return nil, err
	}
	if exists {
		log.Debug("email already registered", logger.Email(in.Email))
		return nil, ErrEmailTaken
	}

	if in.Password != in.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	if in.PhoneNumber == "" {
		return nil, ErrPhoneRequired
	}

	// Paso 2: Unicidad de teléfono contra el servicio de perfiles (síncrono).
	unique, err := s.deps.Profiles.IsPhoneUnique(ctx, in.PhoneNumber)
	if err != nil {
		log.Warn("phone uniqueness check failed", logger.Err(err))
		return nil, ErrProfileUnavailable
	}
	if !unique {
		return nil, ErrPhoneTaken
	}

	// Paso 3: Hash de contraseña e identidad local.
	hash, err := password.Hash(password.Default, in.Password)
	if err != nil {
		log.Error("password hash failed", logger.Err(err))
		return nil, err
	}

	identity := &repository.Identity{
		ID:           uuid.NewString(),
		Email:        in.Email,
		PasswordHash: &hash,
		Provider:     repository.ProviderLocal,
		Role:         repository.RoleUser,
		Enabled:      true,
	}
	created, err := s.deps.Repo.Create(ctx, identity)
	if err != nil {
		if repository.IsConflict(err) {
			// carrera entre el check y el insert
			return nil, ErrEmailTaken
		}
		log.Error("identity create failed", logger.Err(err))
		return nil, err
	}

	log = log.With(logger.UserID(created.ID))

	// Paso 4: Crear el perfil remoto. Si falla, compensamos borrando la
	// identidad recién creada: el registro es todo-o-nada.
	seed := profile.Seed{
		Username:    in.Username,
		PhoneNumber: in.PhoneNumber,
		DateOfBirth: in.DateOfBirth,
		GenderID:    genderOrDefault(in.GenderID),
		AvatarKey:   in.AvatarKey,
	}
	info, err := s.deps.Profiles.CreateProfile(ctx, created.ID, seed)
	if err != nil {
		log.Warn("profile create failed, rolling back identity", logger.Err(err))
		if derr := s.deps.Repo.Delete(ctx, created.ID); derr != nil {
			log.Error("identity rollback failed", logger.Err(derr))
		}
		return nil, ErrProfileUnavailable
	}

	// Paso 5: Emitir par de tokens.
	access, err := s.deps.Tokens.IssueAccessToken(created.Email, created.ID)
	if err != nil {
		log.Error("access token issue failed", logger.Err(err))
		return nil, ErrTokenIssueFailed
	}
	refresh, err := s.deps.Tokens.IssueRefreshToken(created.Email, created.ID)
	if err != nil {
		log.Error("refresh token issue failed", logger.Err(err))
		return nil, ErrTokenIssueFailed
	}

	log.Info("user registered")

	return &AuthResult{
		Response: dto.AuthResponse{
			AccessToken: access,
			TokenType:   "Bearer",
			ExpiresIn:   int64(s.deps.Tokens.AccessTTL().Seconds()),
			User:        buildUserPayload(created, info),
		},
		RefreshToken: refresh,
	}, nil
}

func genderOrDefault(id int64) int64 {
	if id <= 0 {
		return profile.GenderUnspecified
	}
	return id
}

// buildUserPayload arma la vista combinada identidad + perfil.
// info puede ser nil en flujos donde el perfil es best-effort.
func buildUserPayload(id *repository.Identity, info *profile.Info) dto.UserPayload {
	p := dto.UserPayload{
		UserID:   id.ID,
		Email:    id.Email,
		Role:     string(id.Role),
		Provider: string(id.Provider),
	}
	if info != nil {
		p.Username = info.Username
		p.AvatarKey = info.AvatarKey
		p.PhoneNumber = info.PhoneNumber
		p.DateOfBirth = info.DateOfBirth
		p.GenderID = info.GenderID
	}
	return p
}
