// Package google normaliza el perfil OIDC de Google.
// Google ya entrega email verificado en el payload base, así que no hay
// enriquecimiento: solo mapeo de campos.
package google

import (
	"context"

	"github.com/sp1ral-dev/veridian/internal/federation"
	"github.com/sp1ral-dev/veridian/internal/profile"
)

const ProviderKey = "google"

type Normalizer struct{}

func New() Normalizer { return Normalizer{} }

func (Normalizer) Enrich(_ context.Context, raw map[string]any, _ string) (map[string]any, error) {
	return raw, nil
}

func (Normalizer) ExtractSeed(attrs map[string]any) profile.Seed {
	return profile.Seed{
		Username:    federation.StringAttr(attrs, "name"),
		PhoneNumber: "",
		DateOfBirth: "",
		GenderID:    profile.GenderUnspecified,
		AvatarKey:   federation.StringAttr(attrs, "picture"),
	}
}

func (Normalizer) NameKey() string { return "sub" }
