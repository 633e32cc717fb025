package google

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sp1ral-dev/veridian/internal/profile"
)

func TestExtractSeed_MapsGoogleFields(t *testing.T) {
	t.Parallel()
	n := New()

	seed := n.ExtractSeed(map[string]any{
		"sub":     "1122334455",
		"name":    "Jane Doe",
		"email":   "jane@example.com",
		"picture": "https://lh3/photo.jpg",
	})
	require.Equal(t, "Jane Doe", seed.Username)
	require.Equal(t, "https://lh3/photo.jpg", seed.AvatarKey)
	require.Equal(t, profile.GenderUnspecified, seed.GenderID)
}

func TestEnrich_Passthrough(t *testing.T) {
	t.Parallel()
	n := New()

	raw := map[string]any{"email": "jane@example.com"}
	attrs, err := n.Enrich(context.Background(), raw, "tok")
	require.NoError(t, err)
	require.Equal(t, raw, attrs)
	require.Equal(t, "sub", n.NameKey())
}
