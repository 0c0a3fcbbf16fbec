package product

import (
	"context"

	domprod "github.com/kailas-cloud/ratonica/internal/domain/product"
)

// Catalog looks up single listings.
type Catalog interface {
	Lookup(ctx context.Context, id string) (domprod.Product, error)
}
