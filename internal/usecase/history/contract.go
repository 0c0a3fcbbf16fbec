package history

import (
	"context"

	"github.com/kailas-cloud/ratonica/internal/domain/search/result"
)

// Repository defines the storage contract for saved searches.
type Repository interface {
	// Save assigns a new id to a copy of the result, stores it and returns the id.
	Save(ctx context.Context, r result.Result) (string, error)
	Get(ctx context.Context, id string) (result.Result, error)
	// Recent returns up to limit saved results in insertion order.
	Recent(ctx context.Context, limit int) ([]result.Result, error)
}
