package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	dto "github.com/sp1ral-dev/veridian/internal/http/dto/auth"
	"github.com/sp1ral-dev/veridian/internal/security/password"
)

func TestChangePassword_HappyPath(t *testing.T) {
	repo := newFakeRepo()
	gw := newFakeGateway()
	id := seedLocalUser(t, repo, gw)
	tokens := newTestTokens(t)
	svc := NewPasswordService(PasswordDeps{Repo: repo, Tokens: tokens})

	access, err := tokens.IssueAccessToken(id.Email, id.ID)
	require.NoError(t, err)

	err = svc.ChangePassword(context.Background(), access, dto.ChangePasswordRequest{
		CurrentPassword: "s3cretpass",
		NewPassword:     "nuev4clave",
		ConfirmPassword: "nuev4clave",
	})
	require.NoError(t, err)

	stored, err := repo.GetByID(context.Background(), id.ID)
	require.NoError(t, err)
	require.True(t, password.Verify("nuev4clave", *stored.PasswordHash))
	require.False(t, password.Verify("s3cretpass", *stored.PasswordHash))
}

func TestChangePassword_WrongCurrent(t *testing.T) {
	repo := newFakeRepo()
	gw := newFakeGateway()
	id := seedLocalUser(t, repo, gw)
	tokens := newTestTokens(t)
	svc := NewPasswordService(PasswordDeps{Repo: repo, Tokens: tokens})

	access, _ := tokens.IssueAccessToken(id.Email, id.ID)
	err := svc.ChangePassword(context.Background(), access, dto.ChangePasswordRequest{
		CurrentPassword: "incorrecta",
		NewPassword:     "nuev4clave",
		ConfirmPassword: "nuev4clave",
	})
	require.ErrorIs(t, err, ErrInvalidCurrentPassword)
}

func TestChangePassword_MismatchedConfirm(t *testing.T) {
	repo := newFakeRepo()
	gw := newFakeGateway()
	id := seedLocalUser(t, repo, gw)
	tokens := newTestTokens(t)
	svc := NewPasswordService(PasswordDeps{Repo: repo, Tokens: tokens})

	access, _ := tokens.IssueAccessToken(id.Email, id.ID)
	err := svc.ChangePassword(context.Background(), access, dto.ChangePasswordRequest{
		CurrentPassword: "s3cretpass",
		NewPassword:     "una",
		ConfirmPassword: "otra",
	})
	require.ErrorIs(t, err, ErrPasswordMismatch)
}

func TestChangePassword_RejectsRefreshToken(t *testing.T) {
	repo := newFakeRepo()
	gw := newFakeGateway()
	id := seedLocalUser(t, repo, gw)
	tokens := newTestTokens(t)
	svc := NewPasswordService(PasswordDeps{Repo: repo, Tokens: tokens})

	refresh, _ := tokens.IssueRefreshToken(id.Email, id.ID)
	err := svc.ChangePassword(context.Background(), refresh, dto.ChangePasswordRequest{
		CurrentPassword: "s3cretpass",
		NewPassword:     "nuev4clave",
		ConfirmPassword: "nuev4clave",
	})
	require.ErrorIs(t, err, ErrInvalidAccessToken)
}
