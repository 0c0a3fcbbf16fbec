package ratonica

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	driver    string // "", "valkey" or "redis"; empty keeps history in memory
	uri       string
	addrs     []string
	password  string
	keyPrefix string

	analyzer     Analyzer
	analyzeDelay *time.Duration
	searchDelay  *time.Duration
	seed         int64
	rescore      bool

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithValkey stores history in a Valkey instance.
func WithValkey(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "valkey"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithRedis stores history in a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "redis"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithRedisURI stores history in Redis addressed by a redis:// URI.
func WithRedisURI(uri string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "redis"
		c.uri = uri
	})
}

// WithKeyPrefix sets the prefix for all keys written to Redis/Valkey.
// Default: "ratonica:".
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithAnalyzer sets the image analyzer used for image queries.
func WithAnalyzer(a Analyzer) Option {
	return optionFunc(func(c *clientConfig) {
		c.analyzer = a
	})
}

// WithDelays overrides the simulated latencies of the stub analyzer and
// the mock catalog. Zero disables a delay.
// Defaults: 1.5s analyze, 2s search.
func WithDelays(analyze, search time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.analyzeDelay = &analyze
		c.searchDelay = &search
	})
}

// WithSeed makes search ids and rescored similarity reproducible.
func WithSeed(seed int64) Option {
	return optionFunc(func(c *clientConfig) {
		c.seed = seed
	})
}

// WithRescore replaces fixture similarity scores with random ones in [60, 100).
func WithRescore() Option {
	return optionFunc(func(c *clientConfig) {
		c.rescore = true
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
