// Package config carga la configuración del servicio desde YAML con
// overrides por variables de entorno. El YAML es la base versionable;
// los env vars mandan en despliegues (secrets, DSNs, endpoints).
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		// dev | staging | prod
		Env  string `yaml:"env"`
		Name string `yaml:"name"`
	} `yaml:"app"`

	Server struct {
		Addr         string `yaml:"addr"`
		ReadTimeout  string `yaml:"read_timeout"`
		WriteTimeout string `yaml:"write_timeout"`
	} `yaml:"server"`

	Log struct {
		Level string `yaml:"level"` // debug | info | warn | error
	} `yaml:"log"`

	Storage struct {
		DSN      string `yaml:"dsn"`
		Postgres struct {
			MaxConns        int    `yaml:"max_conns"`
			ConnMaxLifetime string `yaml:"conn_max_lifetime"`
		} `yaml:"postgres"`
	} `yaml:"storage"`

	JWT struct {
		AccessTTL  string `yaml:"access_ttl"`
		RefreshTTL string `yaml:"refresh_ttl"`
	} `yaml:"jwt"`

	// Material de firma. O bien dos PEM sueltos, o un documento JSON
	// {"privateKey": "...", "publicKey": "..."} (formato del secret store).
	Keys struct {
		PrivatePEMPath string `yaml:"private_pem_path"`
		PublicPEMPath  string `yaml:"public_pem_path"`
		SecretJSONPath string `yaml:"secret_json_path"`
	} `yaml:"keys"`

	Cookie struct {
		Domain   string `yaml:"domain"`
		SameSite string `yaml:"samesite"` // lax | strict | none
		Secure   bool   `yaml:"secure"`
	} `yaml:"cookie"`

	Profile struct {
		// host:port del user-profile-service (gRPC)
		Target      string `yaml:"target"`
		CallTimeout string `yaml:"call_timeout"`
	} `yaml:"profile"`

	Events struct {
		RedisAddr string `yaml:"redis_addr"`
		RedisDB   int    `yaml:"redis_db"`
		Stream    string `yaml:"stream"`
		// Timeout propio del publish asíncrono, independiente del request.
		PublishTimeout string `yaml:"publish_timeout"`
	} `yaml:"events"`

	Rate struct {
		Enabled bool    `yaml:"enabled"`
		RPS     float64 `yaml:"rps"`
		Burst   int     `yaml:"burst"`
	} `yaml:"rate"`

	// ───────── Proveedores de login federado ─────────
	Federation struct {
		// json | redirect: cómo completa el flujo OAuth2 (API vs browser UX)
		Completion  string `yaml:"completion"`
		RedirectURL string `yaml:"redirect_url"` // destino del 302 cuando completion=redirect
		Google      struct {
			Enabled bool `yaml:"enabled"`
		} `yaml:"google"`
		GitHub struct {
			Enabled bool `yaml:"enabled"`
		} `yaml:"github"`
	} `yaml:"federation"`
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	// sane defaults
	if c.App.Name == "" {
		c.App.Name = "veridian"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.ReadTimeout == "" {
		c.Server.ReadTimeout = "10s"
	}
	if c.Server.WriteTimeout == "" {
		c.Server.WriteTimeout = "30s"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.JWT.AccessTTL == "" {
		c.JWT.AccessTTL = "15m"
	}
	if c.JWT.RefreshTTL == "" {
		c.JWT.RefreshTTL = "168h" // 7d
	}
	if c.Cookie.SameSite == "" {
		c.Cookie.SameSite = "lax"
	}
	if c.Profile.CallTimeout == "" {
		c.Profile.CallTimeout = "5s"
	}
	if c.Events.Stream == "" {
		c.Events.Stream = "avatar.events"
	}
	if c.Events.PublishTimeout == "" {
		c.Events.PublishTimeout = "3s"
	}
	if c.Rate.RPS == 0 {
		c.Rate.RPS = 10
	}
	if c.Rate.Burst == 0 {
		c.Rate.Burst = 20
	}
	if c.Federation.Completion == "" {
		c.Federation.Completion = "json"
	}

	// validar duraciones string al cargar, no en el hot path
	for _, d := range []string{
		c.Server.ReadTimeout, c.Server.WriteTimeout,
		c.JWT.AccessTTL, c.JWT.RefreshTTL,
		c.Profile.CallTimeout, c.Events.PublishTimeout,
	} {
		if _, err := time.ParseDuration(d); err != nil {
			return nil, fmt.Errorf("config: duración inválida %q: %w", d, err)
		}
	}
	if c.Storage.Postgres.ConnMaxLifetime != "" {
		if _, err := time.ParseDuration(c.Storage.Postgres.ConnMaxLifetime); err != nil {
			return nil, err
		}
	}

	c.applyEnvOverrides()

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate chequea invariantes que no pueden esperar al runtime.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Federation.Completion) {
	case "json", "redirect":
	default:
		return fmt.Errorf("config: federation.completion debe ser json o redirect, no %q", c.Federation.Completion)
	}
	if strings.EqualFold(c.Federation.Completion, "redirect") && strings.TrimSpace(c.Federation.RedirectURL) == "" {
		return fmt.Errorf("config: federation.redirect_url es obligatorio con completion=redirect")
	}
	if c.Keys.SecretJSONPath == "" && (c.Keys.PrivatePEMPath == "" || c.Keys.PublicPEMPath == "") {
		return fmt.Errorf("config: keys requiere secret_json_path o el par private/public PEM")
	}
	return nil
}

// AccessTTLDur y compañía: las duraciones ya fueron validadas en Load.
func (c *Config) ReadTimeoutDur() time.Duration   { return mustDur(c.Server.ReadTimeout) }
func (c *Config) WriteTimeoutDur() time.Duration  { return mustDur(c.Server.WriteTimeout) }
func (c *Config) AccessTTLDur() time.Duration     { return mustDur(c.JWT.AccessTTL) }
func (c *Config) RefreshTTLDur() time.Duration    { return mustDur(c.JWT.RefreshTTL) }
func (c *Config) ProfileTimeoutDur() time.Duration { return mustDur(c.Profile.CallTimeout) }

// ConnMaxLifetimeDur devuelve cero si no se configuró.
func (c *Config) ConnMaxLifetimeDur() time.Duration {
	if c.Storage.Postgres.ConnMaxLifetime == "" {
		return 0
	}
	return mustDur(c.Storage.Postgres.ConnMaxLifetime)
}
func (c *Config) PublishTimeoutDur() time.Duration { return mustDur(c.Events.PublishTimeout) }

func mustDur(s string) time.Duration {
	d, _ := time.ParseDuration(s)
	return d
}

// ---- Overrides por env ----

func (c *Config) applyEnvOverrides() {
	if v, ok := getEnvStr("APP_ENV"); ok {
		c.App.Env = v
	}
	if v, ok := getEnvStr("LOG_LEVEL"); ok {
		c.Log.Level = v
	}
	if v, ok := getEnvStr("SERVER_ADDR"); ok {
		c.Server.Addr = v
	}
	if v, ok := getEnvStr("STORAGE_DSN"); ok {
		c.Storage.DSN = v
	}
	if v, ok := getEnvStr("JWT_ACCESS_TTL"); ok {
		if _, err := time.ParseDuration(v); err == nil {
			c.JWT.AccessTTL = v
		}
	}
	if v, ok := getEnvStr("JWT_REFRESH_TTL"); ok {
		if _, err := time.ParseDuration(v); err == nil {
			c.JWT.RefreshTTL = v
		}
	}
	if v, ok := getEnvStr("KEYS_PRIVATE_PEM"); ok {
		c.Keys.PrivatePEMPath = v
	}
	if v, ok := getEnvStr("KEYS_PUBLIC_PEM"); ok {
		c.Keys.PublicPEMPath = v
	}
	if v, ok := getEnvStr("KEYS_SECRET_JSON"); ok {
		c.Keys.SecretJSONPath = v
	}
	if v, ok := getEnvBool("COOKIE_SECURE"); ok {
		c.Cookie.Secure = v
	}
	if v, ok := getEnvStr("PROFILE_TARGET"); ok {
		c.Profile.Target = v
	}
	if v, ok := getEnvStr("EVENTS_REDIS_ADDR"); ok {
		c.Events.RedisAddr = v
	}
	if v, ok := getEnvInt("EVENTS_REDIS_DB"); ok {
		c.Events.RedisDB = v
	}
	if v, ok := getEnvStr("FEDERATION_COMPLETION"); ok {
		c.Federation.Completion = v
	}
	if v, ok := getEnvStr("FEDERATION_REDIRECT_URL"); ok {
		c.Federation.RedirectURL = v
	}

	// Guardia: en prod la cookie de refresh viaja solo por https.
	if strings.EqualFold(c.App.Env, "prod") {
		c.Cookie.Secure = true
	}
}

// ---- Helpers env ----

func getEnvStr(key string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(key))
	return v, v != ""
}

func getEnvInt(key string) (int, bool) {
	if s, ok := getEnvStr(key); ok {
		if i, err := strconv.Atoi(s); err == nil {
			return i, true
		}
	}
	return 0, false
}

func getEnvBool(key string) (bool, bool) {
	if s, ok := getEnvStr(key); ok {
		if b, err := strconv.ParseBool(s); err == nil {
			return b, true
		}
	}
	return false, false
}
