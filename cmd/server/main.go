package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/taexpense/auth-service/modules/authapi"
	"github.com/taexpense/auth-service/pkg/config"
	"github.com/taexpense/auth-service/pkg/httpserver"
	"github.com/taexpense/auth-service/pkg/jwt"
	"github.com/taexpense/auth-service/pkg/logger"
	"github.com/taexpense/auth-service/pkg/mailer"
	"github.com/taexpense/auth-service/pkg/pg"
	"github.com/taexpense/auth-service/svc/auth"
	"github.com/taexpense/auth-service/svc/auth/postgres"
)

type appConfig struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"auth-service"`

	// StateSecret signs the OAuth anti-forgery state parameter. Falls back
	// to the JWT secret when unset.
	StateSecret string `env:"OAUTH_STATE_SECRET"`
}

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	var appCfg appConfig
	config.MustLoad(&appCfg)

	log := logger.New(logger.WithEnvironment(appCfg.Environment, appCfg.ServiceName))
	logger.SetAsDefault(log)

	var pgCfg pg.Config
	config.MustLoad(&pgCfg)

	pool, err := pg.Connect(ctx, pgCfg)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, pgCfg, log); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	var jwtCfg jwt.Config
	config.MustLoad(&jwtCfg)
	if jwtCfg.IsInsecureDefault() {
		log.WarnContext(ctx, "AUTH_JWT_SECRET is the built-in default, set a real secret before exposing this service")
	}
	tokens, err := jwt.NewFromConfig(jwtCfg)
	if err != nil {
		return fmt.Errorf("init token service: %w", err)
	}

	stateSecret := appCfg.StateSecret
	if stateSecret == "" {
		stateSecret = jwtCfg.Secret
	}

	sender := newEmailSender(ctx, log)
	store := postgres.NewUserStore(pool)
	hasher := auth.NewPasswordHasher()

	var googleCfg auth.GoogleConfig
	config.MustLoad(&googleCfg)
	var facebookCfg auth.FacebookConfig
	config.MustLoad(&facebookCfg)

	providers := []auth.OAuthProvider{}
	if p := auth.NewGoogleProvider(googleCfg); p != nil {
		providers = append(providers, p)
	} else {
		log.InfoContext(ctx, "google oauth disabled, credentials not configured")
	}
	if p := auth.NewFacebookProvider(facebookCfg); p != nil {
		providers = append(providers, p)
	} else {
		log.InfoContext(ctx, "facebook oauth disabled, credentials not configured")
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(corsPermissive)

	r.Get("/health", httpserver.HealthCheckHandler(ctx, log, pg.Healthcheck(pool)))

	r.Mount("/auth", authapi.Router(authapi.RouterOptions{
		Password: auth.NewPasswordService(store, hasher, tokens, auth.WithPasswordLogger(log)),
		OAuth: auth.NewOAuthService(store, tokens, stateSecret, providers,
			auth.WithOAuthLogger(log)),
		OTP:    auth.NewOTPService(store, hasher, tokens, sender, auth.WithOTPLogger(log)),
		Logger: log,
	}))

	var httpCfg httpserver.Config
	config.MustLoad(&httpCfg)

	srv := httpserver.NewFromConfig(httpCfg, httpserver.WithLogger(log))
	log.InfoContext(ctx, "starting http server", slog.String("addr", httpCfg.Addr))
	return srv.Run(ctx, r)
}

// corsPermissive lets the browser client call the API from any origin. The
// API carries no cookies, so a wildcard origin leaks nothing.
func corsPermissive(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// newEmailSender returns the Postmark transport when tokens are configured,
// otherwise a log-only sender so local environments work without an account.
func newEmailSender(ctx context.Context, log *slog.Logger) mailer.EmailSender {
	var cfg mailer.Config
	config.MustLoad(&cfg)

	if !cfg.Configured() {
		log.InfoContext(ctx, "postmark not configured, emails are logged instead of delivered")
		return mailer.NewLogSender(log)
	}

	sender, err := mailer.NewPostmarkClient(cfg)
	if err != nil {
		log.ErrorContext(ctx, "postmark init failed, falling back to log sender", logger.Error(err))
		return mailer.NewLogSender(log)
	}
	return sender
}
