package analysis

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/ratonica/internal/domain"
	"github.com/kailas-cloud/ratonica/internal/metrics"
)

// InstrumentedAnalyzer wraps an Analyzer with logging and request metrics.
type InstrumentedAnalyzer struct {
	inner    domain.Analyzer
	provider string
	logger   *zap.Logger
}

// NewInstrumentedAnalyzer wraps an analyzer with observability.
func NewInstrumentedAnalyzer(inner domain.Analyzer, provider string, logger *zap.Logger) *InstrumentedAnalyzer {
	return &InstrumentedAnalyzer{inner: inner, provider: provider, logger: logger}
}

// Analyze delegates to the inner analyzer and records the outcome.
func (a *InstrumentedAnalyzer) Analyze(ctx context.Context, payload string) (string, error) {
	start := time.Now()

	text, err := a.inner.Analyze(ctx, payload)

	duration := time.Since(start)
	metrics.AnalysisDuration.WithLabelValues(a.provider).Observe(duration.Seconds())

	if err != nil {
		metrics.AnalysisRequestsTotal.WithLabelValues(a.provider, "error").Inc()
		a.logger.Error("Image analysis failed",
			zap.String("provider", a.provider),
			zap.Duration("duration", duration),
			zap.Int("payload_bytes", len(payload)),
			zap.Error(err),
		)
		return "", err
	}

	metrics.AnalysisRequestsTotal.WithLabelValues(a.provider, "success").Inc()
	a.logger.Debug("Image analysis completed",
		zap.String("provider", a.provider),
		zap.Duration("duration", duration),
		zap.Int("payload_bytes", len(payload)),
		zap.String("term", text),
	)
	return text, nil
}

// HealthCheck delegates to the inner analyzer when it supports health checks.
func (a *InstrumentedAnalyzer) HealthCheck(ctx context.Context) error {
	if hc, ok := a.inner.(domain.HealthChecker); ok {
		return hc.HealthCheck(ctx)
	}
	return nil
}
