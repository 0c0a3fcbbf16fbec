package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/kailas-cloud/ratonica/internal/cache"
	"github.com/kailas-cloud/ratonica/internal/config"
	"github.com/kailas-cloud/ratonica/internal/db"
	dbRedis "github.com/kailas-cloud/ratonica/internal/db/redis"
	"github.com/kailas-cloud/ratonica/internal/domain"
	"github.com/kailas-cloud/ratonica/internal/domain/platform"
	"github.com/kailas-cloud/ratonica/internal/domain/product"
	logpkg "github.com/kailas-cloud/ratonica/internal/logger"
	"github.com/kailas-cloud/ratonica/internal/metrics"
	"github.com/kailas-cloud/ratonica/internal/repository/analysiscache"
	"github.com/kailas-cloud/ratonica/internal/repository/catalog"
	repohist "github.com/kailas-cloud/ratonica/internal/repository/history"
	chiTransport "github.com/kailas-cloud/ratonica/internal/transport/chi"
	openaiVision "github.com/kailas-cloud/ratonica/internal/transport/openai"
	"github.com/kailas-cloud/ratonica/internal/transport/stub"
	analysisuc "github.com/kailas-cloud/ratonica/internal/usecase/analysis"
	healthuc "github.com/kailas-cloud/ratonica/internal/usecase/health"
	historyuc "github.com/kailas-cloud/ratonica/internal/usecase/history"
	productuc "github.com/kailas-cloud/ratonica/internal/usecase/product"
	searchuc "github.com/kailas-cloud/ratonica/internal/usecase/search"
	"github.com/kailas-cloud/ratonica/internal/version"
)

func serveAction(ctx context.Context, cmd *cli.Command) error {
	if err := config.LoadDotEnv(cmd.String("dotenv")); err != nil {
		return err
	}

	// ENV may come from the dotenv file.
	env := cmd.String("env")
	if !cmd.IsSet("env") {
		env = config.GetEnv()
	}

	var (
		cfg config.Config
		err error
	)
	if path := cmd.String("config"); path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.Load(env)
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, closeLog, err := logpkg.NewLoggerWithFile(env, logpkg.FileConfig{
		Path:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
		Compress:   cfg.Logging.Compress,
	}, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = closeLog() }()
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting ratonica API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.String("vision_provider", cfg.Vision.Provider),
	)

	store, err := openStore(ctx, &cfg.Database)
	if err != nil {
		logger.Error("Database not ready", zap.Error(err))
		return err
	}
	if store != nil {
		defer store.Close()
		logger.Info("Connected to database")
	}

	// Register search metrics explicitly (no init())
	metrics.RegisterSearchMetrics()

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      newRouter(&cfg, store, logger),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		logger.Info("Received shutdown signal")
	case err := <-errCh:
		if err != nil {
			logger.Error("HTTP server error", zap.Error(err))
			return fmt.Errorf("http server: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("Server stopped gracefully")
	return nil
}

// openStore connects to Redis/Valkey. The memory driver has no store and returns nil.
func openStore(ctx context.Context, cfg *config.DatabaseConfig) (db.Store, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return nil, nil
	case config.DriverRedis, config.DriverValkey:
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}

	s, err := dbRedis.NewStore(dbRedis.Config{
		URI:      cfg.URI,
		Addrs:    cfg.Addrs,
		Password: cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s store: %w", cfg.Driver, err)
	}
	if err := s.WaitForReady(ctx, time.Duration(cfg.ReadinessTimeout)*time.Second); err != nil {
		s.Close()
		return nil, fmt.Errorf("database not ready: %w", err)
	}
	return s, nil
}

// newRouter is the composition root: it wires repositories, use cases and
// the HTTP server. A nil store keeps history in memory.
func newRouter(cfg *config.Config, store db.Store, logger *zap.Logger) http.Handler {
	registry := platform.NewRegistry(platformConfigs(cfg.Platforms))
	affiliate := platform.Affiliate{
		Enabled:    cfg.Affiliate.IsEnabled(),
		ParamName:  cfg.Affiliate.ParamName,
		ParamValue: cfg.Affiliate.ParamValue,
	}

	seed := cfg.Search.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	ids := repohist.NewUUIDGenerator(rand.New(rand.NewSource(seed))) //nolint:gosec // ids only need to be unique

	var (
		repo   historyuc.Repository
		pinger healthuc.DBPinger
	)
	if store != nil {
		repo = repohist.New(store, ids, cfg.Database.KeyPrefix)
		pinger = store
	} else {
		repo = repohist.NewMemory(ids)
	}

	analyzer, vision := buildAnalyzer(&cfg.Vision, cfg.Search.AnalyzeDelay(), store, cfg.Database.KeyPrefix, logger)

	cat := catalog.New(registry, cfg.Search.SearchDelay())
	searchSvc := searchuc.New(cat, analyzer)
	if cfg.Search.Rescore {
		searchSvc = searchSvc.WithScorer(searchuc.NewRandomScorer(rand.New(rand.NewSource(seed + 1)))) //nolint:gosec // mock scores
	}
	historySvc := historyuc.New(repo, cfg.Search.HistoryLimit)
	productSvc := productuc.New(cat, registry, affiliate)
	healthSvc := healthuc.New(pinger, vision)

	server := chiTransport.NewServer(searchSvc, historySvc, productSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(metrics.Middleware())
	chiTransport.HandlerWithOptions(server, chiTransport.ChiServerOptions{
		BaseRouter:       r,
		ErrorHandlerFunc: chiTransport.InvalidParamsHandler,
	})
	return r
}

// buildAnalyzer assembles the decorator chain: provider -> Cached -> Instrumented.
// The returned checker is nil for the stub, which cannot fail.
func buildAnalyzer(
	cfg *config.VisionConfig,
	stubDelay time.Duration,
	store db.Store,
	keyPrefix string,
	logger *zap.Logger,
) (domain.Analyzer, healthuc.VisionChecker) {
	var base domain.Analyzer
	switch cfg.Provider {
	case config.VisionOpenAI:
		base = openaiVision.NewVisionAnalyzer(&openaiVision.Config{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
			Prompt:  cfg.Prompt,
			Logger:  logger,
		})
	default:
		base = stub.NewAnalyzer(stubDelay)
	}

	analyzer := base
	if cfg.CacheTTLSec > 0 {
		ttl := time.Duration(cfg.CacheTTLSec) * time.Second
		if store != nil {
			analyzer = analysiscache.New(base, store, keyPrefix, ttl, metrics.AnalysisCacheTotal, logger)
		} else {
			analyzer = analysiscache.New(base, cache.NewLRU(cfg.CacheSize, ttl), keyPrefix, ttl, metrics.AnalysisCacheTotal, logger)
		}
	}

	instrumented := analysisuc.NewInstrumentedAnalyzer(analyzer, cfg.Provider, logger)
	if cfg.Provider == config.VisionStub {
		return instrumented, nil
	}
	return instrumented, instrumented
}

func platformConfigs(ps []config.PlatformConfig) []platform.Config {
	out := make([]platform.Config, len(ps))
	for i, p := range ps {
		out[i] = platform.Config{
			Name:     product.Platform(p.Name),
			Enabled:  p.Enabled,
			LogoPath: p.LogoPath,
			BaseURL:  p.BaseURL,
		}
	}
	return out
}
