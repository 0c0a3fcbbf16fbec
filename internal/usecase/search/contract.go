package search

import (
	"context"

	"github.com/kailas-cloud/ratonica/internal/domain/product"
	"github.com/kailas-cloud/ratonica/internal/domain/search/query"
)

// Catalog finds marketplace listings for a query.
type Catalog interface {
	Search(ctx context.Context, q query.Query) ([]product.Product, error)
}

// Analyzer turns an image payload into a text search term.
type Analyzer interface {
	Analyze(ctx context.Context, payload string) (string, error)
}

// Scorer produces a similarity score for a listing.
type Scorer interface {
	Score() int
}
