package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/upb/casting-agency/config"
	"github.com/upb/casting-agency/handlers"
	"github.com/upb/casting-agency/jwks"
	"github.com/upb/casting-agency/middleware"
	"github.com/upb/casting-agency/repositories"
	"github.com/upb/casting-agency/repositories/postgres"
	"github.com/upb/casting-agency/services"
	"github.com/upb/casting-agency/verifier"
	"go.uber.org/zap"
)

// Dependencies holds all application dependencies.
// This is the central wiring point for dependency injection.
type Dependencies struct {
	// Infrastructure
	Config *config.Config
	DB     *postgres.DB
	Redis  *redis.Client
	Logger *zap.Logger

	// Repository Factory
	RepoFactory *postgres.RepositoryFactory

	// Repositories
	Actors    repositories.ActorRepository
	Movies    repositories.MovieRepository
	TxManager repositories.TransactionManager

	// Auth
	KeyProvider    *jwks.Provider // nil when auth is not configured
	Verifier       middleware.TokenVerifier
	AuthMiddleware *middleware.AuthMiddleware

	// Services
	ActorService *services.ActorService
	MovieService *services.MovieService

	// Handlers
	ActorHandler  *handlers.ActorHandler
	MovieHandler  *handlers.MovieHandler
	HealthHandler *handlers.HealthHandler
}

// NewDependencies opens the database and wires up all application dependencies
func NewDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	factory, err := postgres.NewRepositoryFactory(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	deps, err := newDependencies(ctx, cfg, factory, logger)
	if err != nil {
		_ = factory.Close()
		return nil, err
	}
	return deps, nil
}

// NewDependenciesFromDB wires up all dependencies around an existing pool
func NewDependenciesFromDB(ctx context.Context, cfg *config.Config, db *postgres.DB, logger *zap.Logger) (*Dependencies, error) {
	return newDependencies(ctx, cfg, postgres.NewRepositoryFactoryFromDB(db, logger), logger)
}

func newDependencies(ctx context.Context, cfg *config.Config, factory *postgres.RepositoryFactory, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config:      cfg,
		Logger:      logger,
		RepoFactory: factory,
		DB:          factory.GetDB(),
	}

	if cfg.Database.InitSchema {
		if err := factory.InitSchema(ctx); err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
	}

	deps.initRepositories()

	if err := deps.initRedis(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	if err := deps.initAuth(ctx); err != nil {
		deps.closeRedis()
		return nil, fmt.Errorf("failed to initialize auth: %w", err)
	}

	deps.initServices()
	deps.initHandlers()

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

// initRepositories initializes all repository instances
func (d *Dependencies) initRepositories() {
	repos := d.RepoFactory.NewRepositories()

	d.Actors = repos.Actors
	d.Movies = repos.Movies
	d.TxManager = d.RepoFactory.GetTransactionManager()

	d.Logger.Info("repositories initialized")
}

// initRedis connects the shared JWKS cache when enabled
func (d *Dependencies) initRedis(ctx context.Context) error {
	rc := d.Config.Redis
	if !rc.Enabled {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     rc.Addr,
		Password: rc.Password,
		DB:       rc.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("redis ping failed: %w", err)
	}

	d.Redis = client
	d.Logger.Info("redis connection established", zap.String("addr", rc.Addr))
	return nil
}

// initAuth builds the key-set provider, the verifier and the guard
func (d *Dependencies) initAuth(ctx context.Context) error {
	cfg := d.Config
	if !cfg.IsAuthConfigured() {
		d.Logger.Warn("auth not configured, protected routes reject every request")
		d.Verifier = verifier.RejectAll{}
		d.AuthMiddleware = middleware.NewAuthMiddleware(d.Verifier, d.Logger)
		return nil
	}

	var cache jwks.Cache
	if d.Redis != nil {
		cache = jwks.NewRedisCache(d.Redis)
	}
	provider := jwks.NewProvider(jwks.Config{
		URL:         cfg.Auth.JWKSURL,
		HTTPTimeout: cfg.Auth.HTTPTimeout,
		Cache:       cache,
		CacheTTL:    cfg.Redis.CacheTTL,
	}, d.Logger)

	v, err := verifier.New(verifier.Config{
		Issuer:     cfg.Auth.Issuer,
		Audience:   cfg.Auth.Audience,
		Algorithms: cfg.Auth.Algorithms,
		Leeway:     cfg.Auth.Leeway,
	}, provider)
	if err != nil {
		return err
	}

	// A failed first load is not fatal: readiness stays false and the
	// background refresh keeps trying.
	if err := provider.Load(ctx); err != nil {
		d.Logger.Warn("initial key set load failed",
			zap.String("jwks_url", cfg.Auth.JWKSURL),
			zap.Error(err))
	}

	d.KeyProvider = provider
	d.Verifier = v
	d.AuthMiddleware = middleware.NewAuthMiddleware(v, d.Logger)
	d.Logger.Info("token verifier initialized",
		zap.String("issuer", cfg.Auth.Issuer),
		zap.String("audience", cfg.Auth.Audience))
	return nil
}

func (d *Dependencies) initServices() {
	d.ActorService = services.NewActorService(d.Actors, d.TxManager, d.Logger)
	d.MovieService = services.NewMovieService(d.Movies, d.TxManager, d.Logger)
}

func (d *Dependencies) initHandlers() {
	d.ActorHandler = handlers.NewActorHandler(d.ActorService, d.Logger)
	d.MovieHandler = handlers.NewMovieHandler(d.MovieService, d.Logger)

	var keys handlers.KeySetStatus
	if d.KeyProvider != nil {
		keys = d.KeyProvider
	}
	d.HealthHandler = handlers.NewHealthHandler(d.DB.DB, keys, d.Logger)
}

// RunKeyRefresh refreshes the trusted key set until ctx is cancelled.
// It returns immediately when auth is not configured.
func (d *Dependencies) RunKeyRefresh(ctx context.Context) {
	if d.KeyProvider == nil || d.Config.Auth.RefreshInterval <= 0 {
		return
	}
	d.KeyProvider.Run(ctx, d.Config.Auth.RefreshInterval)
}

func (d *Dependencies) closeRedis() {
	if d.Redis != nil {
		_ = d.Redis.Close()
		d.Redis = nil
	}
}

// Close gracefully shuts down all dependencies
func (d *Dependencies) Close(ctx context.Context) error {
	d.Logger.Info("shutting down dependencies")

	var errs []error

	if d.Redis != nil {
		if err := d.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close redis: %w", err))
		}
		d.Redis = nil
	}

	// Close database connection
	if d.RepoFactory != nil {
		if err := d.RepoFactory.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		} else {
			d.Logger.Info("database connection closed")
		}
		d.RepoFactory = nil
	}

	// Sync logger
	_ = d.Logger.Sync()

	if len(errs) > 0 {
		return fmt.Errorf("errors during shutdown: %w", errors.Join(errs...))
	}

	return nil
}
