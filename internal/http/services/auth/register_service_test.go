package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sp1ral-dev/veridian/internal/domain/repository"
	dto "github.com/sp1ral-dev/veridian/internal/http/dto/auth"
	"github.com/sp1ral-dev/veridian/internal/profile"
	"github.com/sp1ral-dev/veridian/internal/token"
)

func validRegister() dto.RegisterRequest {
	return dto.RegisterRequest{
		Email:           "john@example.com",
		Password:        "s3cretpass",
		ConfirmPassword: "s3cretpass",
		Username:        "john_doe",
		PhoneNumber:     "+5491122334455",
		AvatarKey:       "a.png",
	}
}

func TestRegister_HappyPath(t *testing.T) {
	repo := newFakeRepo()
	gw := newFakeGateway()
	tokens := newTestTokens(t)
	svc := NewRegisterService(RegisterDeps{Repo: repo, Tokens: tokens, Profiles: gw})

	res, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)

	require.Equal(t, "Bearer", res.Response.TokenType)
	require.NotEmpty(t, res.Response.AccessToken)
	require.NotEmpty(t, res.RefreshToken)
	require.Equal(t, "john_doe", res.Response.User.Username)
	require.Equal(t, "a.png", res.Response.User.AvatarKey)
	require.Equal(t, "john@example.com", res.Response.User.Email)
	require.Equal(t, "LOCAL", res.Response.User.Provider)

	// tokens verificables con la misma clave y con el tipo correcto
	claims, err := tokens.Verify(res.Response.AccessToken, token.KindAccess)
	require.NoError(t, err)
	require.Equal(t, res.Response.User.UserID, claims.UserID)
	_, err = tokens.Verify(res.RefreshToken, token.KindRefresh)
	require.NoError(t, err)

	// identidad persistida con contraseña hasheada, nunca en claro
	stored, err := repo.GetByEmail(context.Background(), "john@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored.PasswordHash)
	require.NotContains(t, *stored.PasswordHash, "s3cretpass")
}

func TestRegister_DuplicateEmail_NoRemoteCalls(t *testing.T) {
	repo := newFakeRepo()
	repo.put(&repository.Identity{ID: "u1", Email: "john@example.com", Provider: repository.ProviderLocal, Enabled: true})
	gw := newFakeGateway()
	svc := NewRegisterService(RegisterDeps{Repo: repo, Tokens: newTestTokens(t), Profiles: gw})

	_, err := svc.Register(context.Background(), validRegister())
	require.ErrorIs(t, err, ErrEmailTaken)
	require.Zero(t, gw.uniqueHits, "no debería consultar el servicio remoto")
	require.Zero(t, repo.creates)
}

func TestRegister_PasswordMismatch_BeforePhoneChecks(t *testing.T) {
	repo := newFakeRepo()
	gw := newFakeGateway()
	svc := NewRegisterService(RegisterDeps{Repo: repo, Tokens: newTestTokens(t), Profiles: gw})

	in := validRegister()
	in.ConfirmPassword = "otra-cosa"
	_, err := svc.Register(context.Background(), in)
	require.ErrorIs(t, err, ErrPasswordMismatch)
	require.Zero(t, gw.uniqueHits)
}

func TestRegister_EmptyPhone(t *testing.T) {
	svc := NewRegisterService(RegisterDeps{Repo: newFakeRepo(), Tokens: newTestTokens(t), Profiles: newFakeGateway()})

	in := validRegister()
	in.PhoneNumber = "   "
	_, err := svc.Register(context.Background(), in)
	require.ErrorIs(t, err, ErrPhoneRequired)
}

func TestRegister_PhoneTaken_NoIdentityCreated(t *testing.T) {
	repo := newFakeRepo()
	gw := newFakeGateway()
	gw.phones["+5491122334455"] = true
	svc := NewRegisterService(RegisterDeps{Repo: repo, Tokens: newTestTokens(t), Profiles: gw})

	_, err := svc.Register(context.Background(), validRegister())
	require.ErrorIs(t, err, ErrPhoneTaken)
	require.Zero(t, repo.creates)
}

func TestRegister_ProfileFailure_RollsBackIdentity(t *testing.T) {
	repo := newFakeRepo()
	gw := newFakeGateway()
	gw.createErr = profile.ErrUnavailable
	svc := NewRegisterService(RegisterDeps{Repo: repo, Tokens: newTestTokens(t), Profiles: gw})

	_, err := svc.Register(context.Background(), validRegister())
	require.ErrorIs(t, err, ErrProfileUnavailable)

	// sin escrituras parciales: la identidad creada se compensó
	require.Len(t, repo.deletes, 1)
	_, err = repo.GetByEmail(context.Background(), "john@example.com")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestRegister_PhoneCheckUnavailable(t *testing.T) {
	gw := newFakeGateway()
	gw.uniqueErr = profile.ErrUnavailable
	svc := NewRegisterService(RegisterDeps{Repo: newFakeRepo(), Tokens: newTestTokens(t), Profiles: gw})

	_, err := svc.Register(context.Background(), validRegister())
	require.ErrorIs(t, err, ErrProfileUnavailable)
}
