package token

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sp1ral-dev/veridian/internal/security/keys"
)

func newTestService(t *testing.T, accessTTL, refreshTTL time.Duration) *Service {
	t.Helper()
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return New(&keys.KeyPair{Private: priv, Public: &priv.PublicKey}, accessTTL, refreshTTL)
}

func TestIssueVerify_RoundTrip(t *testing.T) {
	t.Parallel()
	svc := newTestService(t, 15*time.Minute, 7*24*time.Hour)

	raw, err := svc.IssueAccessToken("user@example.com", "123")
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	c, err := svc.Verify(raw, KindAccess)
	require.NoError(t, err)
	require.Equal(t, "user@example.com", c.Subject)
	require.Equal(t, "123", c.UserID)
	require.Equal(t, KindAccess, c.Kind)
}

func TestIssue_EmptySubjectOrUserID(t *testing.T) {
	t.Parallel()
	svc := newTestService(t, time.Minute, time.Hour)

	_, err := svc.IssueAccessToken("", "123")
	require.ErrorIs(t, err, ErrInvalidSubject)

	_, err = svc.IssueAccessToken("user@example.com", "  ")
	require.ErrorIs(t, err, ErrInvalidSubject)

	_, err = svc.IssueRefreshToken("", "")
	require.ErrorIs(t, err, ErrInvalidSubject)
}

func TestVerify_TypeConfusionRejected(t *testing.T) {
	t.Parallel()
	svc := newTestService(t, time.Minute, time.Hour)

	access, err := svc.IssueAccessToken("user@example.com", "123")
	require.NoError(t, err)
	refresh, err := svc.IssueRefreshToken("user@example.com", "123")
	require.NoError(t, err)

	// un access jamás pasa como refresh, y al revés
	_, err = svc.Verify(access, KindRefresh)
	require.ErrorIs(t, err, ErrTokenTypeMismatch)
	_, err = svc.Verify(refresh, KindAccess)
	require.ErrorIs(t, err, ErrTokenTypeMismatch)
}

func TestVerify_Expiry(t *testing.T) {
	t.Parallel()
	svc := newTestService(t, time.Hour, time.Hour)

	// escenario concreto: TTL de 2s, verifica ya, falla después
	raw, err := svc.Issue(KindAccess, "user@example.com", "123", 2*time.Second)
	require.NoError(t, err)

	c, err := svc.Verify(raw, KindAccess)
	require.NoError(t, err)
	require.Equal(t, "123", c.UserID)

	time.Sleep(2100 * time.Millisecond)

	_, err = svc.Verify(raw, KindAccess)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()
	svc := newTestService(t, time.Minute, time.Hour)

	_, err := svc.Verify("garbage.token.here", KindAccess)
	require.ErrorIs(t, err, ErrTokenMalformed)

	// firmado por otra clave
	other := newTestService(t, time.Minute, time.Hour)
	foreign, err := other.IssueAccessToken("user@example.com", "123")
	require.NoError(t, err)
	_, err = svc.Verify(foreign, KindAccess)
	require.ErrorIs(t, err, ErrTokenMalformed)
}

func TestRotateAccessToken(t *testing.T) {
	t.Parallel()
	svc := newTestService(t, time.Minute, time.Hour)

	refresh, err := svc.IssueRefreshToken("user@example.com", "123")
	require.NoError(t, err)

	access, err := svc.RotateAccessToken(refresh)
	require.NoError(t, err)

	c, err := svc.Verify(access, KindAccess)
	require.NoError(t, err)
	require.Equal(t, "user@example.com", c.Subject)
	require.Equal(t, "123", c.UserID)
}

func TestRotateAccessToken_RejectsAccessAndExpired(t *testing.T) {
	t.Parallel()
	svc := newTestService(t, time.Minute, time.Hour)

	access, err := svc.IssueAccessToken("user@example.com", "123")
	require.NoError(t, err)
	_, err = svc.RotateAccessToken(access)
	require.ErrorIs(t, err, ErrTokenTypeMismatch)

	expired, err := svc.Issue(KindRefresh, "user@example.com", "123", -time.Second)
	require.NoError(t, err)
	_, err = svc.RotateAccessToken(expired)
	require.ErrorIs(t, err, ErrTokenExpired)
}
