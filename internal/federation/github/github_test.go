package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnrich_ResolvesPrimaryVerifiedEmail(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		require.Equal(t, "Bearer gh-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"email":"old@example.com","primary":false,"verified":true},
			{"email":"octo@example.com","primary":true,"verified":true}
		]`))
	}))
	defer srv.Close()

	n := New()
	n.endpoint = srv.URL

	raw := map[string]any{"login": "octocat", "avatar_url": "https://a/octo.png"}
	attrs, err := n.Enrich(context.Background(), raw, "gh-token")
	require.NoError(t, err)
	require.Equal(t, "octo@example.com", attrs["email"])

	// segunda llamada para el mismo login sale del cache
	_, err = n.Enrich(context.Background(), raw, "gh-token")
	require.NoError(t, err)
	require.Equal(t, int32(1), calls.Load())
}

func TestEnrich_EmailAlreadyPresent(t *testing.T) {
	t.Parallel()
	n := New()
	n.endpoint = "http://127.0.0.1:0" // nunca debería llamarse

	attrs, err := n.Enrich(context.Background(), map[string]any{"email": "set@example.com"}, "tok")
	require.NoError(t, err)
	require.Equal(t, "set@example.com", attrs["email"])
}

func TestExtractSeed_MapsGitHubFields(t *testing.T) {
	t.Parallel()
	n := New()

	seed := n.ExtractSeed(map[string]any{
		"login":      "octocat",
		"avatar_url": "https://a/octo.png",
	})
	require.Equal(t, "octocat", seed.Username)
	require.Equal(t, "https://a/octo.png", seed.AvatarKey)
	require.Empty(t, seed.PhoneNumber)
	require.Empty(t, seed.DateOfBirth)
}

func TestEnrich_UpstreamError(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	n := New()
	n.endpoint = srv.URL

	_, err := n.Enrich(context.Background(), map[string]any{"login": "x"}, "tok")
	require.Error(t, err)
}
