// Comando veridian levanta el servicio de identidad.
//
// El arranque es fail-fast: sin material de firma o sin base de datos el
// proceso no sirve ni un request. Redis, en cambio, es best-effort: el bus
// de avatares degrada a publicaciones fallidas (loggeadas) sin voltear el
// servicio.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/sp1ral-dev/veridian/internal/config"
	"github.com/sp1ral-dev/veridian/internal/events/redisbus"
	"github.com/sp1ral-dev/veridian/internal/federation"
	fedgithub "github.com/sp1ral-dev/veridian/internal/federation/github"
	fedgoogle "github.com/sp1ral-dev/veridian/internal/federation/google"
	httpserver "github.com/sp1ral-dev/veridian/internal/http"
	authctrl "github.com/sp1ral-dev/veridian/internal/http/controllers/auth"
	healthctrl "github.com/sp1ral-dev/veridian/internal/http/controllers/health"
	profilectrl "github.com/sp1ral-dev/veridian/internal/http/controllers/profile"
	"github.com/sp1ral-dev/veridian/internal/http/middlewares"
	authsvc "github.com/sp1ral-dev/veridian/internal/http/services/auth"
	healthsvc "github.com/sp1ral-dev/veridian/internal/http/services/health"
	profilesvc "github.com/sp1ral-dev/veridian/internal/http/services/profile"
	"github.com/sp1ral-dev/veridian/internal/observability/logger"
	"github.com/sp1ral-dev/veridian/internal/profile/remote"
	"github.com/sp1ral-dev/veridian/internal/security/keys"
	"github.com/sp1ral-dev/veridian/internal/store/pg"
	"github.com/sp1ral-dev/veridian/internal/token"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "ruta al config YAML")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("sin .env, siguiendo con el entorno del sistema: %v", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger.Init(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})
	defer func() { _ = logger.Sync() }()
	lg := logger.L().With(logger.Component("main"))

	// Paso 1: Material de firma. Sin claves no hay servicio.
	kp, err := keys.Load(keys.Source{
		PrivatePEMPath: cfg.Keys.PrivatePEMPath,
		PublicPEMPath:  cfg.Keys.PublicPEMPath,
		SecretJSONPath: cfg.Keys.SecretJSONPath,
	})
	if err != nil {
		lg.Fatal("signing keys unavailable", logger.Err(err))
	}
	tokens := token.New(kp, cfg.AccessTTLDur(), cfg.RefreshTTLDur())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Paso 2: Postgres (autoritativo, fail-fast).
	poolCfg, err := pgxpool.ParseConfig(cfg.Storage.DSN)
	if err != nil {
		lg.Fatal("postgres dsn", logger.Err(err))
	}
	if n := cfg.Storage.Postgres.MaxConns; n > 0 {
		poolCfg.MaxConns = int32(n)
	}
	if d := cfg.ConnMaxLifetimeDur(); d > 0 {
		poolCfg.MaxConnLifetime = d
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		lg.Fatal("postgres pool", logger.Err(err))
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		lg.Fatal("postgres unreachable", logger.Err(err))
	}
	repo := pg.NewIdentityRepo(pool)

	// Paso 3: gRPC hacia el user-profile-service (síncrono, sin retries).
	gateway, err := remote.Dial(cfg.Profile.Target, cfg.ProfileTimeoutDur())
	if err != nil {
		lg.Fatal("profile gateway dial", logger.Err(err))
	}
	defer func() { _ = gateway.Close() }()

	// Paso 4: Redis Streams para eventos de avatar (best-effort).
	var rdb redis.UniversalClient
	var bus *redisbus.Publisher
	if cfg.Events.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.Events.RedisAddr, DB: cfg.Events.RedisDB})
		defer func() { _ = rdb.Close() }()
		bus = redisbus.NewPublisher(rdb, cfg.Events.Stream)
	} else {
		lg.Warn("event bus disabled: no redis address configured")
	}

	// Paso 5: Normalizadores de federación.
	registry := federation.NewRegistry(nil)
	if cfg.Federation.Google.Enabled {
		registry.Register(fedgoogle.ProviderKey, fedgoogle.New())
	}
	if cfg.Federation.GitHub.Enabled {
		registry.Register(fedgithub.ProviderKey, fedgithub.New())
	}
	lg.Info("federation providers registered", logger.Any("providers", registry.Keys()))

	// Paso 6: Servicios y controllers.
	cookieSettings := authctrl.CookieSettings{
		Domain:   cfg.Cookie.Domain,
		SameSite: cfg.Cookie.SameSite,
		Secure:   cfg.Cookie.Secure,
		TTL:      cfg.RefreshTTLDur(),
	}
	updateDeps := profilesvc.UpdateDeps{
		Tokens:         tokens,
		Profiles:       gateway,
		PublishTimeout: cfg.PublishTimeoutDur(),
	}
	if bus != nil {
		updateDeps.Bus = bus
	}

	controllers := authctrl.New(authctrl.Deps{
		Register: authsvc.NewRegisterService(authsvc.RegisterDeps{Repo: repo, Tokens: tokens, Profiles: gateway}),
		Login:    authsvc.NewLoginService(authsvc.LoginDeps{Repo: repo, Tokens: tokens, Profiles: gateway}),
		Refresh:  authsvc.NewRefreshService(authsvc.RefreshDeps{Repo: repo, Tokens: tokens, Profiles: gateway}),
		Password: authsvc.NewPasswordService(authsvc.PasswordDeps{Repo: repo, Tokens: tokens}),
		OAuth2: authsvc.NewFederationService(authsvc.FederationDeps{
			Repo: repo, Tokens: tokens, Profiles: gateway, Registry: registry,
		}),
		Validate:       authsvc.NewValidateService(authsvc.ValidateDeps{Tokens: tokens}),
		Cookies:        cookieSettings,
		Completion:     authctrl.CompletionMode(cfg.Federation.Completion),
		RedirectTarget: cfg.Federation.RedirectURL,
	})
	profileController := profilectrl.NewUpdateController(profilesvc.NewUpdateService(updateDeps))
	healthController := healthctrl.New(healthsvc.New(healthsvc.Deps{Pool: pool, Redis: rdb}))

	// Paso 7: Métricas y router.
	metricsHandler, err := httpserver.RegisterMetrics(httpserver.MetricsConfig{
		Pool: func() *pgxpool.Pool { return pool },
	})
	if err != nil {
		lg.Fatal("metrics registration", logger.Err(err))
	}

	var rateCfg middlewares.RateLimitConfig
	if cfg.Rate.Enabled {
		rateCfg = middlewares.RateLimitConfig{RPS: cfg.Rate.RPS, Burst: cfg.Rate.Burst}
	}

	router := httpserver.NewRouter(httpserver.RouterDeps{
		Auth:      controllers,
		Profile:   profileController,
		Health:    healthController,
		Metrics:   metricsHandler,
		RateLimit: rateCfg,
	})
	srv := httpserver.NewServer(cfg.Server.Addr, router, cfg.ReadTimeoutDur(), cfg.WriteTimeoutDur())

	// Paso 8: Servir hasta señal; apagado ordenado con deadline.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		lg.Error("server exited with error", logger.Err(err))
		os.Exit(1)
	}
	lg.Info("server stopped")
}
