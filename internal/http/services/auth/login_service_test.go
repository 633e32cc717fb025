package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sp1ral-dev/veridian/internal/domain/repository"
	dto "github.com/sp1ral-dev/veridian/internal/http/dto/auth"
	"github.com/sp1ral-dev/veridian/internal/profile"
	"github.com/sp1ral-dev/veridian/internal/security/password"
)

func seedLocalUser(t *testing.T, repo *fakeRepo, gw *fakeGateway) *repository.Identity {
	t.Helper()
	hash, err := password.Hash(password.Default, "s3cretpass")
	require.NoError(t, err)
	id := &repository.Identity{
		ID:           "user-1",
		Email:        "john@example.com",
		PasswordHash: &hash,
		Provider:     repository.ProviderLocal,
		Role:         repository.RoleUser,
		Enabled:      true,
	}
	repo.put(id)
	gw.profiles[id.ID] = &profile.Info{Username: "john_doe", AvatarKey: "a.png", PhoneNumber: "+549112233"}
	return id
}

func TestLogin_HappyPath(t *testing.T) {
	repo := newFakeRepo()
	gw := newFakeGateway()
	seedLocalUser(t, repo, gw)
	svc := NewLoginService(LoginDeps{Repo: repo, Tokens: newTestTokens(t), Profiles: gw})

	res, err := svc.Login(context.Background(), dto.LoginRequest{Email: "John@Example.com", Password: "s3cretpass"})
	require.NoError(t, err)
	require.NotEmpty(t, res.Response.AccessToken)
	require.NotEmpty(t, res.RefreshToken)
	require.Equal(t, "john_doe", res.Response.User.Username)
	require.Equal(t, "user-1", res.Response.User.UserID)
}

func TestLogin_UnknownEmail_NeverTouchesTokens(t *testing.T) {
	repo := newFakeRepo()
	// Tokens nil: si el servicio intentara emitir, el test explota.
	svc := NewLoginService(LoginDeps{Repo: repo, Tokens: nil, Profiles: newFakeGateway()})

	_, err := svc.Login(context.Background(), dto.LoginRequest{Email: "nadie@example.com", Password: "x"})
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := newFakeRepo()
	gw := newFakeGateway()
	seedLocalUser(t, repo, gw)
	svc := NewLoginService(LoginDeps{Repo: repo, Tokens: newTestTokens(t), Profiles: gw})

	_, err := svc.Login(context.Background(), dto.LoginRequest{Email: "john@example.com", Password: "incorrecta"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_DisabledUser(t *testing.T) {
	repo := newFakeRepo()
	gw := newFakeGateway()
	id := seedLocalUser(t, repo, gw)
	id.Enabled = false
	svc := NewLoginService(LoginDeps{Repo: repo, Tokens: newTestTokens(t), Profiles: gw})

	_, err := svc.Login(context.Background(), dto.LoginRequest{Email: "john@example.com", Password: "s3cretpass"})
	require.ErrorIs(t, err, ErrUserDisabled)
}

func TestLogin_FederatedOnlyAccount(t *testing.T) {
	repo := newFakeRepo()
	repo.put(&repository.Identity{ID: "u2", Email: "fed@example.com", Provider: repository.ProviderGoogle, Enabled: true})
	svc := NewLoginService(LoginDeps{Repo: repo, Tokens: newTestTokens(t), Profiles: newFakeGateway()})

	_, err := svc.Login(context.Background(), dto.LoginRequest{Email: "fed@example.com", Password: "loquesea"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}
