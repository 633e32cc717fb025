// Package github normaliza el perfil OAuth 2.0 de GitHub.
//
// A diferencia de Google, GitHub puede no incluir el email en el perfil
// base (usuarios con email privado): Enrich lo resuelve con una llamada a
// /user/emails buscando el primario verificado. El resultado se memoiza
// en un cache TTL en proceso para no golpear la API en callbacks repetidos.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/sp1ral-dev/veridian/internal/federation"
	"github.com/sp1ral-dev/veridian/internal/profile"
)

const (
	ProviderKey   = "github"
	emailEndpoint = "https://api.github.com/user/emails"
)

type Normalizer struct {
	http   *http.Client
	emails *gocache.Cache

	// endpoint es sobreescribible en tests.
	endpoint string
}

func New() *Normalizer {
	return &Normalizer{
		http:     &http.Client{Timeout: 10 * time.Second},
		emails:   gocache.New(15*time.Minute, 30*time.Minute),
		endpoint: emailEndpoint,
	}
}

type emailEntry struct {
	Email    string `json:"email"`
	Primary  bool   `json:"primary"`
	Verified bool   `json:"verified"`
}

// Enrich completa el atributo email si falta, resolviendo el primario
// verificado contra la API de GitHub.
func (n *Normalizer) Enrich(ctx context.Context, raw map[string]any, accessToken string) (map[string]any, error) {
	attrs := make(map[string]any, len(raw)+1)
	for k, v := range raw {
		attrs[k] = v
	}

	if federation.StringAttr(attrs, "email") != "" || accessToken == "" {
		return attrs, nil
	}

	// cache por login para callbacks repetidos del mismo usuario
	cacheKey := federation.StringAttr(attrs, "login")
	if cacheKey != "" {
		if v, ok := n.emails.Get(cacheKey); ok {
			attrs["email"] = v.(string)
			return attrs, nil
		}
	}

	email, err := n.fetchPrimaryEmail(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	if email != "" {
		attrs["email"] = email
		if cacheKey != "" {
			n.emails.SetDefault(cacheKey, email)
		}
	}
	return attrs, nil
}

func (n *Normalizer) fetchPrimaryEmail(ctx context.Context, accessToken string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.endpoint, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := n.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("github: consultando emails: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("github: /user/emails status %d", resp.StatusCode)
	}

	var entries []emailEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return "", fmt.Errorf("github: decodificando emails: %w", err)
	}
	for _, e := range entries {
		if e.Primary && e.Verified {
			return e.Email, nil
		}
	}
	return "", nil
}

func (n *Normalizer) ExtractSeed(attrs map[string]any) profile.Seed {
	return profile.Seed{
		Username:    federation.StringAttr(attrs, "login"),
		PhoneNumber: "",
		DateOfBirth: "",
		GenderID:    profile.GenderUnspecified,
		AvatarKey:   federation.StringAttr(attrs, "avatar_url"),
	}
}

func (n *Normalizer) NameKey() string { return "login" }
