package filter

import (
	"fmt"
	"sort"

	"github.com/kailas-cloud/ratonica/internal/domain/product"
)

// Options narrows a product list down to what the user wants to see.
// Nil bounds and empty sets match everything.
type Options struct {
	minPrice      *float64
	maxPrice      *float64
	minSimilarity *float64
	platforms     map[product.Platform]struct{}
	conditions    map[product.Condition]struct{}
}

// New validates and creates filter Options.
func New(
	minPrice, maxPrice, minSimilarity *float64,
	platforms []product.Platform, conditions []product.Condition,
) (Options, error) {
	if minPrice != nil && *minPrice < 0 {
		return Options{}, fmt.Errorf("minPrice must be >= 0, got %v", *minPrice)
	}
	if maxPrice != nil && *maxPrice < 0 {
		return Options{}, fmt.Errorf("maxPrice must be >= 0, got %v", *maxPrice)
	}
	if minPrice != nil && maxPrice != nil && *minPrice > *maxPrice {
		return Options{}, fmt.Errorf("minPrice %v is greater than maxPrice %v", *minPrice, *maxPrice)
	}
	if minSimilarity != nil && (*minSimilarity < 0 || *minSimilarity > 100) {
		return Options{}, fmt.Errorf("minSimilarity must be in [0,100], got %v", *minSimilarity)
	}

	opts := Options{minPrice: minPrice, maxPrice: maxPrice, minSimilarity: minSimilarity}
	if len(platforms) > 0 {
		opts.platforms = make(map[product.Platform]struct{}, len(platforms))
		for _, p := range platforms {
			if !p.IsValid() {
				return Options{}, fmt.Errorf("unknown platform %q", p)
			}
			opts.platforms[p] = struct{}{}
		}
	}
	if len(conditions) > 0 {
		opts.conditions = make(map[product.Condition]struct{}, len(conditions))
		for _, c := range conditions {
			if !c.IsValid() {
				return Options{}, fmt.Errorf("unknown condition %q", c)
			}
			opts.conditions[c] = struct{}{}
		}
	}
	return opts, nil
}

// IsEmpty reports whether the options match every product.
func (o Options) IsEmpty() bool {
	return o.minPrice == nil && o.maxPrice == nil && o.minSimilarity == nil &&
		len(o.platforms) == 0 && len(o.conditions) == 0
}

// Matches reports whether a single product passes every set option.
func (o Options) Matches(p *product.Product) bool {
	if o.minPrice != nil && p.Price < *o.minPrice {
		return false
	}
	if o.maxPrice != nil && p.Price > *o.maxPrice {
		return false
	}
	if o.minSimilarity != nil && p.Score() < *o.minSimilarity {
		return false
	}
	if len(o.platforms) > 0 {
		if _, ok := o.platforms[p.Platform]; !ok {
			return false
		}
	}
	if len(o.conditions) > 0 {
		if _, ok := o.conditions[p.Condition]; !ok {
			return false
		}
	}
	return true
}

// Apply returns the matching products ordered by similarity score, highest first.
// The input slice is not modified.
func (o Options) Apply(products []product.Product) []product.Product {
	out := make([]product.Product, 0, len(products))
	for i := range products {
		if o.Matches(&products[i]) {
			out = append(out, products[i])
		}
	}
	SortByScore(out)
	return out
}

// SortByScore orders products by similarity score descending, keeping ties in place.
func SortByScore(products []product.Product) {
	sort.SliceStable(products, func(i, j int) bool {
		return products[i].Score() > products[j].Score()
	})
}
