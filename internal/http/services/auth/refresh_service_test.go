package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sp1ral-dev/veridian/internal/token"
)

func TestRefresh_HappyPath(t *testing.T) {
	repo := newFakeRepo()
	gw := newFakeGateway()
	id := seedLocalUser(t, repo, gw)
	tokens := newTestTokens(t)
	svc := NewRefreshService(RefreshDeps{Repo: repo, Tokens: tokens, Profiles: gw})

	refresh, err := tokens.IssueRefreshToken(id.Email, id.ID)
	require.NoError(t, err)

	res, err := svc.Refresh(context.Background(), refresh)
	require.NoError(t, err)
	require.NotEmpty(t, res.Response.AccessToken)
	// el refresh token no se rota
	require.Empty(t, res.RefreshToken)
	require.Equal(t, "john_doe", res.Response.User.Username)

	claims, err := tokens.Verify(res.Response.AccessToken, token.KindAccess)
	require.NoError(t, err)
	require.Equal(t, id.ID, claims.UserID)
}

func TestRefresh_MissingToken(t *testing.T) {
	svc := NewRefreshService(RefreshDeps{Repo: newFakeRepo(), Tokens: newTestTokens(t), Profiles: newFakeGateway()})

	_, err := svc.Refresh(context.Background(), "")
	require.ErrorIs(t, err, ErrRefreshTokenMissing)
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	repo := newFakeRepo()
	gw := newFakeGateway()
	id := seedLocalUser(t, repo, gw)
	tokens := newTestTokens(t)
	svc := NewRefreshService(RefreshDeps{Repo: repo, Tokens: tokens, Profiles: gw})

	access, err := tokens.IssueAccessToken(id.Email, id.ID)
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), access)
	require.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestRefresh_GarbageToken(t *testing.T) {
	svc := NewRefreshService(RefreshDeps{Repo: newFakeRepo(), Tokens: newTestTokens(t), Profiles: newFakeGateway()})

	_, err := svc.Refresh(context.Background(), "ni.siquiera.jwt")
	require.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestRefresh_DeletedIdentity(t *testing.T) {
	repo := newFakeRepo()
	tokens := newTestTokens(t)
	svc := NewRefreshService(RefreshDeps{Repo: repo, Tokens: tokens, Profiles: newFakeGateway()})

	refresh, err := tokens.IssueRefreshToken("ghost@example.com", "ghost-id")
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), refresh)
	require.ErrorIs(t, err, ErrInvalidRefreshToken)
}
