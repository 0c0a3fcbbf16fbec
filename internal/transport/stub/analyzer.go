// Package stub provides a canned image analyzer for development and tests.
package stub

import (
	"context"
	"time"
)

// DefaultDescription is what the stub "sees" in every image.
const DefaultDescription = "vintage denim jacket with embroidery"

// DefaultDelay imitates the latency of a real vision model.
const DefaultDelay = 1500 * time.Millisecond

// Analyzer returns a fixed description after a delay. It never looks at the payload.
type Analyzer struct {
	delay       time.Duration
	description string
}

// NewAnalyzer creates a stub analyzer answering DefaultDescription after delay.
func NewAnalyzer(delay time.Duration) *Analyzer {
	return &Analyzer{delay: delay, description: DefaultDescription}
}

// Analyze implements domain.Analyzer. It only fails when ctx ends first.
func (a *Analyzer) Analyze(ctx context.Context, _ string) (string, error) {
	if a.delay > 0 {
		t := time.NewTimer(a.delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-t.C:
		}
	}
	return a.description, nil
}
