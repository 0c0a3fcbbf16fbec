package ratonica

import "context"

// Analyzer turns an image payload (a base64 data URL or a plain URL)
// into a short text description used as the search term.
type Analyzer interface {
	Analyze(ctx context.Context, payload string) (string, error)
}
