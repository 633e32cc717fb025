package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sp1ral-dev/veridian/internal/domain/repository"
	"github.com/sp1ral-dev/veridian/internal/federation"
	"github.com/sp1ral-dev/veridian/internal/federation/google"
	dto "github.com/sp1ral-dev/veridian/internal/http/dto/auth"
	"github.com/sp1ral-dev/veridian/internal/profile"
)

func newFederationSvc(t *testing.T, repo *fakeRepo, gw *fakeGateway) FederationService {
	t.Helper()
	reg := federation.NewRegistry(nil)
	reg.Register(google.ProviderKey, google.New())
	return NewFederationService(FederationDeps{
		Repo:     repo,
		Tokens:   newTestTokens(t),
		Profiles: gw,
		Registry: reg,
	})
}

func googleAttrs() map[string]any {
	return map[string]any{
		"sub":     "g-123",
		"email":   "jane@example.com",
		"name":    "Jane Doe",
		"picture": "https://lh3/jane.jpg",
	}
}

func TestFederation_FirstLoginProvisionsIdentity(t *testing.T) {
	repo := newFakeRepo()
	gw := newFakeGateway()
	svc := newFederationSvc(t, repo, gw)

	res, err := svc.Complete(context.Background(), "google", dto.OAuth2SuccessRequest{Attributes: googleAttrs()})
	require.NoError(t, err)
	require.NotEmpty(t, res.Response.AccessToken)
	require.NotEmpty(t, res.RefreshToken)
	require.Equal(t, "GOOGLE", res.Response.User.Provider)

	// identidad creada sin contraseña local
	stored, err := repo.GetByEmail(context.Background(), "jane@example.com")
	require.NoError(t, err)
	require.Nil(t, stored.PasswordHash)
	require.Equal(t, repository.ProviderGoogle, stored.Provider)

	// perfil sembrado con el seed del normalizador
	require.Equal(t, 1, gw.createHits)
	require.Equal(t, "Jane Doe", gw.profiles[stored.ID].Username)
	require.Equal(t, "https://lh3/jane.jpg", gw.profiles[stored.ID].AvatarKey)
}

func TestFederation_ExistingIdentityIsReused(t *testing.T) {
	repo := newFakeRepo()
	gw := newFakeGateway()
	existing := &repository.Identity{ID: "u-9", Email: "jane@example.com", Provider: repository.ProviderGoogle, Enabled: true}
	repo.put(existing)
	gw.profiles["u-9"] = &profile.Info{Username: "jane"}
	svc := newFederationSvc(t, repo, gw)

	res, err := svc.Complete(context.Background(), "google", dto.OAuth2SuccessRequest{Attributes: googleAttrs()})
	require.NoError(t, err)
	require.Equal(t, "u-9", res.Response.User.UserID)
	require.Zero(t, repo.creates)
	require.Zero(t, gw.createHits)
}

func TestFederation_MissingEmail(t *testing.T) {
	svc := newFederationSvc(t, newFakeRepo(), newFakeGateway())

	_, err := svc.Complete(context.Background(), "google", dto.OAuth2SuccessRequest{
		Attributes: map[string]any{"sub": "g-123", "name": "Jane"},
	})
	require.ErrorIs(t, err, ErrEmailMissing)
}

func TestFederation_UnknownProviderFallsBack(t *testing.T) {
	repo := newFakeRepo()
	gw := newFakeGateway()
	svc := newFederationSvc(t, repo, gw)

	res, err := svc.Complete(context.Background(), "gitlab", dto.OAuth2SuccessRequest{
		Attributes: map[string]any{"email": "dev@example.com"},
	})
	require.NoError(t, err)
	// proveedor no mapeado queda como LOCAL con username de la parte local
	require.Equal(t, "LOCAL", res.Response.User.Provider)
	stored, _ := repo.GetByEmail(context.Background(), "dev@example.com")
	require.Equal(t, "dev", gw.profiles[stored.ID].Username)
}

func TestFederation_ProfileSeedFailureIsNotFatal(t *testing.T) {
	repo := newFakeRepo()
	gw := newFakeGateway()
	gw.createErr = profile.ErrUnavailable
	svc := newFederationSvc(t, repo, gw)

	res, err := svc.Complete(context.Background(), "google", dto.OAuth2SuccessRequest{Attributes: googleAttrs()})
	require.NoError(t, err)
	require.NotEmpty(t, res.Response.AccessToken)
	// la identidad queda, el perfil se creará en el próximo acceso
	_, err = repo.GetByEmail(context.Background(), "jane@example.com")
	require.NoError(t, err)
}

func TestFederation_DisabledIdentity(t *testing.T) {
	repo := newFakeRepo()
	repo.put(&repository.Identity{ID: "u-9", Email: "jane@example.com", Provider: repository.ProviderGoogle, Enabled: false})
	svc := newFederationSvc(t, repo, newFakeGateway())

	_, err := svc.Complete(context.Background(), "google", dto.OAuth2SuccessRequest{Attributes: googleAttrs()})
	require.ErrorIs(t, err, ErrUserDisabled)
}
