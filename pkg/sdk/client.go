package ratonica

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/kailas-cloud/ratonica/internal/db"
	dbRedis "github.com/kailas-cloud/ratonica/internal/db/redis"
	"github.com/kailas-cloud/ratonica/internal/domain"
	"github.com/kailas-cloud/ratonica/internal/domain/search/query"
	"github.com/kailas-cloud/ratonica/internal/domain/search/result"
	"github.com/kailas-cloud/ratonica/internal/repository/catalog"
	repohist "github.com/kailas-cloud/ratonica/internal/repository/history"
	"github.com/kailas-cloud/ratonica/internal/transport/stub"
	healthuc "github.com/kailas-cloud/ratonica/internal/usecase/health"
	historyuc "github.com/kailas-cloud/ratonica/internal/usecase/history"
	searchuc "github.com/kailas-cloud/ratonica/internal/usecase/search"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultSearchDelay      = 2 * time.Second
)

// Внутренние интерфейсы для подмены в тестах.
type searchUseCase interface {
	Search(ctx context.Context, q query.Query) (result.Result, error)
}

type historyUseCase interface {
	Save(ctx context.Context, r result.Result) (string, error)
	Get(ctx context.Context, id string) (result.Result, error)
	List(ctx context.Context, limit int) ([]result.Result, error)
}

// Client is the ratonica SDK entry point.
type Client struct {
	store      db.Store
	searchSvc  searchUseCase
	historySvc historyUseCase
	healthSvc  healthUseCase
	obs        *observer
}

// New creates a Client. With WithRedis, WithRedisURI or WithValkey it
// connects to the store and waits for it using ctx; otherwise history is
// kept in memory.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}

	if store != nil {
		if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
			store.Close()
			return nil, fmt.Errorf("ratonica: database not ready: %w", err)
		}
	}

	return wireClient(store, cfg, obs), nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case "":
		return nil, nil
	case "valkey", "redis":
		if cfg.uri == "" && len(cfg.addrs) == 0 {
			return nil, errors.New("ratonica: database address required")
		}
		s, err := dbRedis.NewStore(dbRedis.Config{
			URI:      cfg.uri,
			Addrs:    cfg.addrs,
			Password: cfg.password,
		})
		if err != nil {
			return nil, fmt.Errorf("ratonica: create %s store: %w", cfg.driver, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("ratonica: unknown driver %q", cfg.driver)
	}
}

func wireClient(store db.Store, cfg *clientConfig, obs *observer) *Client {
	seed := cfg.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	ids := repohist.NewUUIDGenerator(rand.New(rand.NewSource(seed))) //nolint:gosec // ids only need to be unique

	var (
		repo   historyuc.Repository
		pinger healthuc.DBPinger
	)
	if store != nil {
		repo = repohist.New(store, ids, cfg.keyPrefix)
		pinger = store
	} else {
		repo = repohist.NewMemory(ids)
	}

	var analyzer domain.Analyzer = stub.NewAnalyzer(durationOr(cfg.analyzeDelay, stub.DefaultDelay))
	if cfg.analyzer != nil {
		analyzer = cfg.analyzer
	}
	var vision healthuc.VisionChecker
	if hc, ok := analyzer.(domain.HealthChecker); ok {
		vision = hc
	}

	searchSvc := searchuc.New(catalog.New(nil, durationOr(cfg.searchDelay, defaultSearchDelay)), analyzer)
	if cfg.rescore {
		searchSvc = searchSvc.WithScorer(searchuc.NewRandomScorer(rand.New(rand.NewSource(seed + 1)))) //nolint:gosec // mock scores
	}

	return &Client{
		store:      store,
		searchSvc:  searchSvc,
		historySvc: historyuc.New(repo, historyuc.DefaultLimit),
		healthSvc:  healthuc.New(pinger, vision),
		obs:        obs,
	}
}

func durationOr(d *time.Duration, def time.Duration) time.Duration {
	if d == nil {
		return def
	}
	return max(*d, 0)
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity. It always succeeds for in-memory history.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if c.store == nil {
		return nil
	}
	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Search runs a similarity search. Image queries are described by the
// analyzer first. The result is not saved; pass it to SaveSearch.
func (c *Client) Search(ctx context.Context, typ QueryType, content string) (res SearchResult, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search", start, err) }()

	q, err := query.New(query.Type(typ), content)
	if err != nil {
		return SearchResult{}, fmt.Errorf("%w: %w", ErrInvalidQuery, err)
	}

	r, err := c.searchSvc.Search(ctx, q)
	if err != nil {
		return SearchResult{}, fmt.Errorf("search: %w", err)
	}
	return fromResult(&r), nil
}

// SaveSearch stores a search result and returns its id.
func (c *Client) SaveSearch(ctx context.Context, r SearchResult) (id string, err error) {
	start := time.Now()
	defer func() { c.obs.observe("save_search", start, err) }()

	id, err = c.historySvc.Save(ctx, toResult(&r))
	if err != nil {
		return "", fmt.Errorf("save search: %w", err)
	}
	return id, nil
}

// GetSearch returns a saved search by id.
func (c *Client) GetSearch(ctx context.Context, id string) (res SearchResult, err error) {
	start := time.Now()
	defer func() { c.obs.observe("get_search", start, err) }()

	r, err := c.historySvc.Get(ctx, id)
	if err != nil {
		return SearchResult{}, fmt.Errorf("get search %s: %w", id, err)
	}
	return fromResult(&r), nil
}

// RecentSearches returns up to limit saved searches, oldest first.
// A non-positive limit uses the default of 10.
func (c *Client) RecentSearches(ctx context.Context, limit int) (res []SearchResult, err error) {
	start := time.Now()
	defer func() { c.obs.observe("recent_searches", start, err) }()

	rs, err := c.historySvc.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("recent searches: %w", err)
	}
	out := make([]SearchResult, len(rs))
	for i := range rs {
		out[i] = fromResult(&rs[i])
	}
	return out, nil
}
