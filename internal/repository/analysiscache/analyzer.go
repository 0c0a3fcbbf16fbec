package analysiscache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/kailas-cloud/ratonica/internal/db"
	"github.com/kailas-cloud/ratonica/internal/domain"
)

const cacheKeySuffix = "analysis_cache:"

// sharedCallTimeout bounds an upstream call that no longer belongs to a single caller.
const sharedCallTimeout = 30 * time.Second

// store is the consumer interface for the analysis cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CachedAnalyzer caches image analysis results in a key-value store.
// Concurrent misses for the same payload share one upstream call.
type CachedAnalyzer struct {
	inner      domain.Analyzer
	store      store
	keyPrefix  string
	ttl        time.Duration
	group      singleflight.Group
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator. Keys live under {prefix}analysis_cache:;
// an empty prefix means domain.KeyPrefix.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	inner domain.Analyzer,
	s store,
	prefix string,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedAnalyzer {
	if prefix == "" {
		prefix = domain.KeyPrefix
	}
	return &CachedAnalyzer{
		inner:      inner,
		store:      s,
		keyPrefix:  prefix + cacheKeySuffix,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Analyze returns a cached description or calls the inner analyzer.
func (c *CachedAnalyzer) Analyze(ctx context.Context, payload string) (string, error) {
	key := c.cacheKey(payload)

	if text, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return text, nil
	}

	c.incCache("miss")

	// The shared call outlives any one caller: a caller that goes away must
	// not fail the others waiting on the same payload.
	ch := c.group.DoChan(key, func() (any, error) {
		callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedCallTimeout)
		defer cancel()

		text, err := c.inner.Analyze(callCtx, payload)
		if err != nil {
			return "", err
		}
		c.putToCache(callCtx, key, text)
		return text, nil
	})

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("analyze image: %w", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return "", fmt.Errorf("analyze image: %w", res.Err)
		}
		return res.Val.(string), nil
	}
}

// HealthCheck delegates to the inner analyzer when it supports health checks.
func (c *CachedAnalyzer) HealthCheck(ctx context.Context) error {
	if hc, ok := c.inner.(domain.HealthChecker); ok {
		return hc.HealthCheck(ctx)
	}
	return nil
}

func (c *CachedAnalyzer) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func (c *CachedAnalyzer) cacheKey(payload string) string {
	h := sha256.Sum256([]byte(payload))
	return c.keyPrefix + hex.EncodeToString(h[:])
}

func (c *CachedAnalyzer) getFromCache(ctx context.Context, key string) (string, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached analysis", zap.String("key", key), zap.Error(err))
		}
		return "", false
	}
	if len(data) == 0 {
		return "", false
	}
	return string(data), true
}

func (c *CachedAnalyzer) putToCache(ctx context.Context, key, text string) {
	if err := c.store.SetWithTTL(ctx, key, []byte(text), c.ttl); err != nil {
		c.logger.Warn("Failed to cache analysis", zap.String("key", key), zap.Error(err))
	}
}
