// Package server assembles the dog catalog service: it opens the store
// selected by the configuration, runs migrations, optionally seeds the
// catalog, picks the access policy and serves HTTP until a shutdown signal.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/dogcatalog/internal/logging"
	"github.com/dmitrijs2005/dogcatalog/internal/server/access"
	"github.com/dmitrijs2005/dogcatalog/internal/server/auth"
	"github.com/dmitrijs2005/dogcatalog/internal/server/config"
	"github.com/dmitrijs2005/dogcatalog/internal/server/httpapi"
	"github.com/dmitrijs2005/dogcatalog/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/dogcatalog/internal/server/services"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	http   *httpapi.Server
}

// NewApp connects to storage and builds every service. Failures here are
// boot failures; the caller is expected to exit.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)
	return newApp(ctx, c, logger)
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	rm, db, err := repomanager.Open(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	dogService := services.NewDogService(db, rm)
	if c.SeedCatalog {
		n, err := dogService.Seed(ctx, services.DefaultCatalog)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("seed error: %w", err)
		}
		logger.Info(ctx, "Catalog seeded", "added", n)
	}

	tokens, err := auth.NewTokenService([]byte(c.SecretKey), c.TokenValidity)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	userService := services.NewUserService(db, rm, auth.NewBcryptHasher(c.BcryptCost), tokens)

	policy, policyName := selectPolicy(c, tokens)

	var images httpapi.ImageResolver
	if c.S3Enabled() {
		images = services.NewImageService(c)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	srv, err := httpapi.NewServer(httpapi.Params{
		Address:                c.ListenAddr,
		Logger:                 logger,
		Users:                  userService,
		Dogs:                   dogService,
		Images:                 images,
		Policy:                 policy,
		PolicyName:             policyName,
		ShutdownTimeout:        c.ShutdownTimeout,
		RegisterConflictStatus: c.RegisterConflictStatus,
		Registry:               reg,
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Info(ctx, "App configured",
		"backend", rm.Backend(), "auth_mode", c.AuthMode, "images", c.S3Enabled())

	return &App{config: c, logger: logger, db: db, http: srv}, nil
}

func selectPolicy(c *config.Config, tokens *auth.TokenService) (access.Policy, string) {
	if c.AuthMode == config.AuthModeAPIKey {
		return access.NewSharedSecretPolicy(c.APIKey), access.MethodSharedSecret
	}
	return access.NewBearerPolicy(tokens), access.MethodBearer
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case <-sigs:
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// shuts down and closes the database.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(ctx, cancelFunc)

	var (
		wg     sync.WaitGroup
		runErr error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.http.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			runErr = err
			cancelFunc()
		}
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
	return runErr
}
