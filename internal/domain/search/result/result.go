package result

import (
	"time"

	"github.com/kailas-cloud/ratonica/internal/domain/product"
	"github.com/kailas-cloud/ratonica/internal/domain/search/query"
)

// Result is the outcome of one search: the query, the ranked products and when it ran.
// ID is empty until the history store saves the result.
type Result struct {
	ID        string
	Query     query.Query
	Products  []product.Product
	Timestamp time.Time
}

// New creates an unsaved search result.
func New(q query.Query, products []product.Product, ts time.Time) Result {
	return Result{Query: q, Products: products, Timestamp: ts}
}

// WithID returns a copy of the result carrying the given id.
// The product slice is copied so the stored result does not alias the caller's.
func (r Result) WithID(id string) Result {
	products := make([]product.Product, len(r.Products))
	copy(products, r.Products)
	r.ID = id
	r.Products = products
	return r
}

// ProductCount returns the number of products in the result.
func (r *Result) ProductCount() int { return len(r.Products) }
