package product

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/ratonica/internal/domain/platform"
	domprod "github.com/kailas-cloud/ratonica/internal/domain/product"
)

// Detail is a listing decorated for display.
type Detail struct {
	Product        domprod.Product
	AffiliateURL   string
	PlatformLogo   string
	ConditionLabel string
	MatchLabel     string
}

// Service builds listing detail views.
type Service struct {
	catalog   Catalog
	registry  *platform.Registry
	affiliate platform.Affiliate
}

// New creates a product service.
func New(catalog Catalog, registry *platform.Registry, affiliate platform.Affiliate) *Service {
	return &Service{catalog: catalog, registry: registry, affiliate: affiliate}
}

// Get returns the listing with its affiliate link, logo and labels.
func (s *Service) Get(ctx context.Context, id string) (Detail, error) {
	p, err := s.catalog.Lookup(ctx, id)
	if err != nil {
		return Detail{}, fmt.Errorf("lookup product %s: %w", id, err)
	}
	return s.Decorate(p), nil
}

// Decorate computes display fields for a listing.
func (s *Service) Decorate(p domprod.Product) Detail {
	d := Detail{
		Product:      p,
		AffiliateURL: s.affiliate.Link(p.ProductURL),
		PlatformLogo: s.registry.Logo(p.Platform),
		MatchLabel:   domprod.MatchLabel(p.Score()),
	}
	if p.Condition != "" {
		d.ConditionLabel = p.Condition.Label()
	}
	return d
}

// Platforms returns the enabled marketplaces.
func (s *Service) Platforms() []platform.Config {
	return s.registry.Enabled()
}
