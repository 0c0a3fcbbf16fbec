package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// VisionChecker checks image analysis provider availability.
type VisionChecker interface {
	HealthCheck(ctx context.Context) error
}
