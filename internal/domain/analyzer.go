package domain

import "context"

// Analyzer turns an image payload (usually a base64 data URL) into a text query term.
type Analyzer interface {
	Analyze(ctx context.Context, payload string) (string, error)
}

// HealthChecker verifies external provider availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// KeyPrefix is the default prefix for all keys written to the key-value store.
const KeyPrefix = "ratonica:"
