// Package federation normaliza identidades de terceros a una forma canónica.
//
// Cada proveedor OAuth2 devuelve el perfil con nombres de campo propios y
// a veces incompleto (GitHub puede no exponer el email en el payload base).
// Un Normalizer por proveedor cierra esa brecha: Enrich completa atributos
// con llamadas extra al proveedor y ExtractSeed los mapea al Seed canónico
// del perfil. La selección es por clave con fallback a un default: un mapa
// plano de implementaciones, sin jerarquías.
package federation

import (
	"context"
	"strings"

	"github.com/sp1ral-dev/veridian/internal/profile"
)

// Normalizer es la estrategia por proveedor.
type Normalizer interface {
	// Enrich completa los atributos crudos del proveedor. Puede requerir
	// llamadas adicionales (p.ej. resolver el email primario verificado);
	// accessToken es el token del proveedor para esas llamadas.
	Enrich(ctx context.Context, raw map[string]any, accessToken string) (map[string]any, error)

	// ExtractSeed mapea atributos (ya enriquecidos) al seed canónico,
	// aplicando defaults: género desconocido → sentinel, string vacío
	// para teléfono/fecha desconocidos.
	ExtractSeed(attrs map[string]any) profile.Seed

	// NameKey es el atributo que el proveedor usa como nombre principal.
	NameKey() string
}

// Registry mapea clave de proveedor → Normalizer, con fallback.
type Registry struct {
	byKey    map[string]Normalizer
	fallback Normalizer
}

// NewRegistry crea el registry con el fallback dado.
// Si fallback es nil se usa el normalizador default.
func NewRegistry(fallback Normalizer) *Registry {
	if fallback == nil {
		fallback = DefaultNormalizer{}
	}
	return &Registry{byKey: make(map[string]Normalizer), fallback: fallback}
}

// Register asocia una clave (case-insensitive) a un normalizador.
// Se llama al arranque, no es concurrente-seguro con Lookup en caliente.
func (r *Registry) Register(key string, n Normalizer) {
	r.byKey[strings.ToLower(strings.TrimSpace(key))] = n
}

// Lookup devuelve el normalizador del proveedor o el fallback.
func (r *Registry) Lookup(key string) Normalizer {
	if n, ok := r.byKey[strings.ToLower(strings.TrimSpace(key))]; ok {
		return n
	}
	return r.fallback
}

// Keys lista los proveedores registrados (para diagnóstico).
func (r *Registry) Keys() []string {
	out := make([]string, 0, len(r.byKey))
	for k := range r.byKey {
		out = append(out, k)
	}
	return out
}

// DefaultNormalizer es el fallback: passthrough sin enriquecer, username
// derivado de la parte local del email.
type DefaultNormalizer struct{}

func (DefaultNormalizer) Enrich(_ context.Context, raw map[string]any, _ string) (map[string]any, error) {
	return raw, nil
}

func (DefaultNormalizer) ExtractSeed(attrs map[string]any) profile.Seed {
	username := StringAttr(attrs, "name")
	if username == "" {
		if email := StringAttr(attrs, "email"); email != "" {
			if i := strings.Index(email, "@"); i > 0 {
				username = email[:i]
			}
		}
	}
	return profile.Seed{
		Username:    username,
		PhoneNumber: "",
		DateOfBirth: "",
		GenderID:    profile.GenderUnspecified,
		AvatarKey:   "",
	}
}

func (DefaultNormalizer) NameKey() string { return "email" }

// StringAttr lee un atributo string, tolerando ausencia y tipos ajenos.
func StringAttr(attrs map[string]any, key string) string {
	if v, ok := attrs[key].(string); ok {
		return v
	}
	return ""
}
