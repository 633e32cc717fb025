package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

const minimalYAML = `
storage:
  dsn: "postgres://u:p@localhost:5432/db"
keys:
  private_pem_path: ./priv.pem
  public_pem_path: ./pub.pem
profile:
  target: "localhost:9090"
`

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalYAML))
	require.NoError(t, err)

	require.Equal(t, ":8080", cfg.Server.Addr)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, 15*time.Minute, cfg.AccessTTLDur())
	require.Equal(t, 168*time.Hour, cfg.RefreshTTLDur())
	require.Equal(t, "lax", cfg.Cookie.SameSite)
	require.Equal(t, "avatar.events", cfg.Events.Stream)
	require.Equal(t, "json", cfg.Federation.Completion)
}

func TestLoad_InvalidDuration(t *testing.T) {
	_, err := Load(writeConfig(t, minimalYAML+`
jwt:
  access_ttl: "quince minutos"
`))
	require.Error(t, err)
}

func TestLoad_RedirectRequiresURL(t *testing.T) {
	_, err := Load(writeConfig(t, minimalYAML+`
federation:
  completion: redirect
`))
	require.Error(t, err)

	cfg, err := Load(writeConfig(t, minimalYAML+`
federation:
  completion: redirect
  redirect_url: "https://app.example.com/oauth2/done"
`))
	require.NoError(t, err)
	require.Equal(t, "redirect", cfg.Federation.Completion)
}

func TestLoad_KeysRequired(t *testing.T) {
	_, err := Load(writeConfig(t, `
storage:
  dsn: "postgres://u:p@localhost:5432/db"
profile:
  target: "localhost:9090"
`))
	require.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("STORAGE_DSN", "postgres://env:env@db:5432/veridian")
	t.Setenv("JWT_ACCESS_TTL", "5m")

	cfg, err := Load(writeConfig(t, minimalYAML))
	require.NoError(t, err)
	require.Equal(t, "postgres://env:env@db:5432/veridian", cfg.Storage.DSN)
	require.Equal(t, 5*time.Minute, cfg.AccessTTLDur())
}

func TestLoad_ProdForcesSecureCookie(t *testing.T) {
	t.Setenv("APP_ENV", "prod")

	cfg, err := Load(writeConfig(t, minimalYAML+`
cookie:
  secure: false
`))
	require.NoError(t, err)
	require.True(t, cfg.Cookie.Secure)
}
