package federation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sp1ral-dev/veridian/internal/profile"
)

type fakeNormalizer struct{ key string }

func (f fakeNormalizer) Enrich(_ context.Context, raw map[string]any, _ string) (map[string]any, error) {
	return raw, nil
}
func (f fakeNormalizer) ExtractSeed(map[string]any) profile.Seed {
	return profile.Seed{Username: f.key}
}
func (f fakeNormalizer) NameKey() string { return f.key }

func TestRegistry_LookupAndFallback(t *testing.T) {
	t.Parallel()
	reg := NewRegistry(nil)
	reg.Register("Google", fakeNormalizer{key: "google"})

	// case-insensitive
	require.Equal(t, "google", reg.Lookup("GOOGLE").NameKey())
	require.Equal(t, "google", reg.Lookup("google").NameKey())

	// proveedor desconocido → default
	n := reg.Lookup("gitlab")
	require.IsType(t, DefaultNormalizer{}, n)
}

func TestDefaultNormalizer_SeedFromEmail(t *testing.T) {
	t.Parallel()
	var d DefaultNormalizer

	seed := d.ExtractSeed(map[string]any{"email": "jane.doe@example.com"})
	require.Equal(t, "jane.doe", seed.Username)
	require.Equal(t, profile.GenderUnspecified, seed.GenderID)
	require.Empty(t, seed.PhoneNumber)
	require.Empty(t, seed.DateOfBirth)
	require.Empty(t, seed.AvatarKey)
}

func TestDefaultNormalizer_PrefersName(t *testing.T) {
	t.Parallel()
	var d DefaultNormalizer

	seed := d.ExtractSeed(map[string]any{"name": "Jane Doe", "email": "jane@example.com"})
	require.Equal(t, "Jane Doe", seed.Username)
}
