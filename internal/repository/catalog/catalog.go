package catalog

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/ratonica/internal/domain"
	"github.com/kailas-cloud/ratonica/internal/domain/platform"
	"github.com/kailas-cloud/ratonica/internal/domain/product"
	"github.com/kailas-cloud/ratonica/internal/domain/search/filter"
	"github.com/kailas-cloud/ratonica/internal/domain/search/query"
)

// Catalog is the mock marketplace backend. Every query matches the same
// fixture listings; the delay stands in for marketplace latency.
type Catalog struct {
	registry   *platform.Registry
	delay      time.Duration
	byPlatform map[product.Platform][]product.Product
	order      []product.Platform
}

// New creates a catalog over the fixture listings.
// A nil registry keeps listings from every platform.
func New(registry *platform.Registry, delay time.Duration) *Catalog {
	return NewWithProducts(registry, delay, Fixtures())
}

// NewWithProducts creates a catalog over arbitrary listings.
func NewWithProducts(registry *platform.Registry, delay time.Duration, products []product.Product) *Catalog {
	c := &Catalog{
		registry:   registry,
		delay:      delay,
		byPlatform: make(map[product.Platform][]product.Product),
	}
	for _, p := range products {
		if _, ok := c.byPlatform[p.Platform]; !ok {
			c.order = append(c.order, p.Platform)
		}
		c.byPlatform[p.Platform] = append(c.byPlatform[p.Platform], p)
	}
	return c
}

// Search waits for the configured delay, queries every enabled platform
// concurrently and merges the listings by descending similarity score.
// The query content is ignored.
func (c *Catalog) Search(ctx context.Context, _ query.Query) ([]product.Product, error) {
	if err := sleep(ctx, c.delay); err != nil {
		return nil, err
	}

	slots := make([][]product.Product, len(c.order))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range c.order {
		if !c.enabled(name) {
			continue
		}
		g.Go(func() error {
			listings, err := c.searchPlatform(gctx, name)
			if err != nil {
				return fmt.Errorf("search %s: %w", name, err)
			}
			slots[i] = listings
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := make([]product.Product, 0, len(c.order)*2)
	for _, s := range slots {
		merged = append(merged, s...)
	}
	filter.SortByScore(merged)
	return merged, nil
}

// Lookup returns a single listing by id.
func (c *Catalog) Lookup(_ context.Context, id string) (product.Product, error) {
	for _, name := range c.order {
		for _, p := range c.byPlatform[name] {
			if p.ID == id {
				return p, nil
			}
		}
	}
	return product.Product{}, domain.ErrProductNotFound
}

func (c *Catalog) searchPlatform(ctx context.Context, name product.Platform) ([]product.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	src := c.byPlatform[name]
	out := make([]product.Product, len(src))
	copy(out, src)
	return out, nil
}

func (c *Catalog) enabled(name product.Platform) bool {
	return c.registry == nil || c.registry.IsEnabled(name)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
