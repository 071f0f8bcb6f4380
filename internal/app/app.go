// Package app assembles the catalog, engine and cache from configuration.
// Both the HTTP server and the CLI start through it.
package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"travelrec/internal/cache"
	"travelrec/internal/catalog"
	"travelrec/internal/config"
	"travelrec/internal/model"
	"travelrec/internal/repository"
	"travelrec/internal/service"
)

// Engine is the assembled evaluator plus what it was built from
type Engine struct {
	Evaluator service.Evaluator
	// Service is nil when the catalog is unavailable or the engine runs out
	// of process
	Service  *service.RecommendationService
	Snapshot *catalog.Snapshot

	closers []func() error
}

// Close releases the cache connection, if any
func (e *Engine) Close() error {
	var first error
	for _, c := range e.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// LoadSnapshot reads the catalog from the configured source. Errors wrap
// catalog.ErrUnavailable.
func LoadSnapshot(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*catalog.Snapshot, error) {
	var src catalog.Source

	switch cfg.Catalog.Source {
	case "csv":
		src = catalog.NewCSVSource(cfg.Catalog.Dir)
	case repository.DriverPostgres, repository.DriverSQLite:
		dsn := cfg.Catalog.SQLitePath
		if cfg.Catalog.Source == repository.DriverPostgres {
			dsn = cfg.GetPostgreSQLDSN()
		}
		repo, err := repository.NewCatalogRepository(
			cfg.Catalog.Source,
			dsn,
			cfg.PostgreSQL.MaxConnections,
			cfg.PostgreSQL.MaxIdleConnections,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", catalog.ErrUnavailable, err)
		}
		// the snapshot is read once; the connection is not kept
		defer repo.Close()
		src = repo
	default:
		return nil, fmt.Errorf("%w: unsupported source %q", catalog.ErrUnavailable, cfg.Catalog.Source)
	}

	snap, err := catalog.Load(ctx, src)
	if err != nil {
		return nil, err
	}

	counts := snap.Counts()
	logger.Info().
		Str("source", cfg.Catalog.Source).
		Str("version", snap.Version()).
		Int("restaurants", counts[model.CategoryRestaurant]).
		Int("hotels", counts[model.CategoryHotel]).
		Int("vehicles", counts[model.CategoryVehicle]).
		Msg("✅ Catalog loaded")
	return snap, nil
}

// NewInProcessEngine loads the catalog and builds the in-process engine. A
// catalog failure is not returned: the engine then answers every query
// with success=false. Only a bad vocabulary file is fatal.
func NewInProcessEngine(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*Engine, error) {
	vocab, err := service.LoadVocabulary(cfg.Engine.VocabularyFile)
	if err != nil {
		return nil, err
	}

	snap, err := LoadSnapshot(ctx, cfg, logger)
	if err != nil {
		logger.Error().Err(err).Msg("Catalog unavailable, every query will fail")
		return &Engine{Evaluator: service.UnavailableService{Err: err}}, nil
	}

	svc, err := service.NewRecommendationService(snap, vocab, cfg.Engine, logger)
	if err != nil {
		return nil, err
	}
	return &Engine{Evaluator: svc, Service: svc, Snapshot: snap}, nil
}

// NewServerEngine builds the evaluator the HTTP server uses: in-process or
// subprocess per ENGINE_MODE, wrapped in the configured result cache.
func NewServerEngine(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*Engine, error) {
	var engine *Engine

	switch cfg.Server.EngineMode {
	case "subprocess":
		args := []string{"--source", cfg.Catalog.Source, "--data-dir", cfg.Catalog.Dir, "--log-level", cfg.Logging.Level}
		if cfg.Engine.VocabularyFile != "" {
			args = append(args, "--vocabulary", cfg.Engine.VocabularyFile)
		}
		engine = &Engine{
			Evaluator: service.NewSubprocessEvaluator(cfg.Server.EngineBinary, args, cfg.Server.SubprocessTimeout, logger),
		}
		logger.Info().Str("binary", cfg.Server.EngineBinary).Msg("✅ Using subprocess engine")
	default:
		var err error
		engine, err = NewInProcessEngine(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
	}

	// failures are never cached, so the unavailable engine is left bare
	if engine.Service == nil && cfg.Server.EngineMode != "subprocess" {
		return engine, nil
	}

	client, err := NewCacheClient(ctx, cfg.Cache)
	if err != nil {
		logger.Warn().Err(err).Msg("⚠️  Result cache disabled")
		return engine, nil
	}
	if client == nil {
		return engine, nil
	}

	version := "subprocess"
	if engine.Snapshot != nil {
		version = engine.Snapshot.Version()
	}
	engine.Evaluator = service.NewCachedEvaluator(engine.Evaluator, client, version, cfg.Cache.TTL, logger)
	engine.closers = append(engine.closers, client.Close)
	logger.Info().Str("driver", cfg.Cache.Driver).Dur("ttl", cfg.Cache.TTL).Msg("✅ Result cache enabled")
	return engine, nil
}

// NewCacheClient returns the configured cache client, or nil for "none"
func NewCacheClient(ctx context.Context, cfg config.CacheConfig) (cache.Client, error) {
	switch cfg.Driver {
	case "memory":
		return cache.NewMemoryClient(0), nil
	case "redis":
		client, err := cache.NewRedisClient(ctx, cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.RedisPrefix,
		})
		if err != nil {
			return nil, err
		}
		return client, nil
	}
	return nil, nil
}
