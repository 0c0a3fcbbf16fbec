package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates the vision provider is failing; text and url searches still work.
	Degraded Status = "degraded"
	// Unhealthy indicates the history store is unreachable.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	db     DBPinger
	vision VisionChecker
}

// New creates a Service. Both checkers can be nil: the in-memory history
// has nothing to ping and the stub analyzer cannot fail.
func New(db DBPinger, vision VisionChecker) *Service {
	return &Service{db: db, vision: vision}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)
	status := Healthy

	if s.vision != nil {
		if err := s.vision.HealthCheck(ctx); err != nil {
			checks["vision"] = CheckError
			status = Degraded
		} else {
			checks["vision"] = CheckOK
		}
	}

	if s.db != nil {
		if err := s.db.Ping(ctx); err != nil {
			checks["database"] = CheckError
			status = Unhealthy
		} else {
			checks["database"] = CheckOK
		}
	}

	return Report{Status: status, Checks: checks}
}
