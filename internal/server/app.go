// Package server assembles the vidtube server: database and migrations, media
// storage, services, the REST API and the gRPC health endpoint, and runs them
// until the process is signalled.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/vidtube/internal/logging"
	"github.com/dmitrijs2005/vidtube/internal/server/auth"
	"github.com/dmitrijs2005/vidtube/internal/server/config"
	"github.com/dmitrijs2005/vidtube/internal/server/media"
	"github.com/dmitrijs2005/vidtube/internal/server/metrics"
	"github.com/dmitrijs2005/vidtube/internal/server/ratelimit"
	"github.com/dmitrijs2005/vidtube/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/vidtube/internal/server/rest"
	"github.com/dmitrijs2005/vidtube/internal/server/services"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/vidtube/internal/server/grpc"
)

// Seams for tests.
var (
	openDB = func(dsn string) (*sql.DB, error) {
		return sql.Open("pgx", dsn)
	}
	newRepoManager = repomanager.NewPostgresRepositoryManager
	newMediaStore  = func(ctx context.Context, c *config.Config) (media.Store, error) {
		return media.NewS3Store(ctx, c)
	}
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	redis  *redis.Client
	http   *rest.HTTPServer
	grpc   *gs.GRPCServer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	db, err := openDB(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := newRepoManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	store, err := newMediaStore(ctx, c)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("media store init error: %w", err)
	}

	m := metrics.New()
	tokens := auth.NewTokenIssuer(c.AccessTokenSecret, c.RefreshTokenSecret, c.AccessTokenValidityDuration, c.RefreshTokenValidityDuration)
	deps := services.Deps{
		DB:          db,
		RepoManager: rm,
		Tokens:      tokens,
		Hasher:      auth.NewBcryptHasher(c.BcryptCost),
		Media:       store,
		Metrics:     m,
		Logger:      logger,
	}

	app := &App{config: c, logger: logger, db: db}

	var limiter fiber.Handler
	if c.RedisAddr != "" {
		app.redis = redis.NewClient(&redis.Options{Addr: c.RedisAddr, Password: c.RedisPassword})
		counter := ratelimit.NewRedisCounter(app.redis, "vidtube:ratelimit:")
		limiter = ratelimit.NewLimiter(counter, c.LoginRateLimit, c.LoginRateWindow, logger).Handler()
	} else {
		logger.Warn(ctx, "redis address is empty, login rate limiting disabled")
	}

	router := rest.NewRouter(rest.NewServices(deps), tokens, rest.Options{
		CORSOrigin:  c.CORSOrigin,
		BodyLimit:   c.MaxUploadBytes,
		AuthLimiter: limiter,
		Metrics:     m,
	}, logger)

	app.http = rest.NewHTTPServer(c.HTTPAddr, router, logger)
	app.grpc = gs.NewGRPCServer(c.GRPCAddr, db, c.HealthCheckInterval, logger)

	return app, nil
}

// Run serves HTTP and gRPC until ctx is cancelled, the process receives
// SIGINT, SIGTERM or SIGQUIT, or either server fails.
func (app *App) Run(ctx context.Context) error {

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	app.logger.Info(ctx, "Starting app...")

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return app.http.Run(ctx) })
	g.Go(func() error { return app.grpc.Run(ctx) })

	err := g.Wait()
	app.close()
	return err
}

func (app *App) close() {
	ctx := context.Background()
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Warn(ctx, "redis close failed", "error", err)
		}
	}
	if err := app.db.Close(); err != nil {
		app.logger.Warn(ctx, "db close failed", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
