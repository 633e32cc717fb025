package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidate_AccessTokenOK(t *testing.T) {
	tokens := newTestTokens(t)
	svc := NewValidateService(ValidateDeps{Tokens: tokens})

	access, err := tokens.IssueAccessToken("john@example.com", "user-1")
	require.NoError(t, err)

	res, err := svc.Validate(context.Background(), access)
	require.NoError(t, err)
	require.Equal(t, "user-1", res.UserID)
	require.Equal(t, "john@example.com", res.Subject)
}

func TestValidate_RejectsRefreshToken(t *testing.T) {
	tokens := newTestTokens(t)
	svc := NewValidateService(ValidateDeps{Tokens: tokens})

	refresh, err := tokens.IssueRefreshToken("john@example.com", "user-1")
	require.NoError(t, err)

	_, err = svc.Validate(context.Background(), refresh)
	require.ErrorIs(t, err, ErrInvalidAccessToken)
}

func TestValidate_EmptyAndGarbage(t *testing.T) {
	svc := NewValidateService(ValidateDeps{Tokens: newTestTokens(t)})

	_, err := svc.Validate(context.Background(), "")
	require.ErrorIs(t, err, ErrInvalidAccessToken)

	_, err = svc.Validate(context.Background(), "no-es-un-jwt")
	require.ErrorIs(t, err, ErrInvalidAccessToken)
}
