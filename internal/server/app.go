// Package server initializes and runs the marketplace auth server. It
// opens the database, applies migrations, wires repositories into the
// services and starts the HTTP endpoint with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/trademart/marketplace/internal/logging"
	"github.com/trademart/marketplace/internal/server/config"
	"github.com/trademart/marketplace/internal/server/httpapi"
	"github.com/trademart/marketplace/internal/server/metrics"
	"github.com/trademart/marketplace/internal/server/notify"
	"github.com/trademart/marketplace/internal/server/repositories/otpcodes"
	"github.com/trademart/marketplace/internal/server/repositories/repomanager"
	"github.com/trademart/marketplace/internal/server/services"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	service *services.AuthService
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	otpRepo, err := newOtpRepository(cfg, db, rm)
	if err != nil {
		return nil, err
	}

	resolver := services.NewResolver(rm.Customers(db), rm.Vendors(db), rm.Admins(db), logger)
	ledger := services.NewOtpLedger(otpRepo, cfg.OtpValidityDuration, logger)
	dispatcher := notify.NewConsoleDispatcher(logger)

	service := services.NewAuthService(
		resolver,
		ledger,
		dispatcher,
		metrics.New(prometheus.DefaultRegisterer),
		logger,
		[]byte(cfg.SecretKey),
		cfg.AccessTokenValidityDuration,
		cfg.AdminAccessCode,
	)

	return &App{config: cfg, logger: logger, db: db, service: service}, nil
}

func newOtpRepository(cfg *config.Config, db *sql.DB, rm repomanager.RepositoryManager) (otpcodes.Repository, error) {
	switch cfg.OtpBackend {
	case config.OtpBackendRedis:
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("redis init error: %w", err)
		}
		return otpcodes.NewRedisRepository(redis.NewClient(opts)), nil
	case config.OtpBackendPostgres:
		return rm.OtpCodes(db), nil
	}
	return nil, fmt.Errorf("unknown otp backend: %q", cfg.OtpBackend)
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	handlers := httpapi.NewHandlers(app.service, app.logger)
	router := httpapi.NewRouter(handlers, []byte(app.config.SecretKey), app.logger)
	srv := httpapi.NewServer(app.config.EndpointAddrHTTP, router, app.logger)

	if err := srv.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "closing db", "error", err)
	}
}
