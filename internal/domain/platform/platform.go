package platform

import (
	"net/url"
	"strings"

	"github.com/kailas-cloud/ratonica/internal/domain/product"
)

// DefaultLogo is served for platforms without a configured logo.
const DefaultLogo = "/logos/default.svg"

// Config describes one supported marketplace.
type Config struct {
	Name     product.Platform
	Enabled  bool
	LogoPath string
	BaseURL  string
}

// Registry holds the configured marketplaces in declaration order.
type Registry struct {
	platforms []Config
}

// NewRegistry creates a registry from platform configs.
func NewRegistry(platforms []Config) *Registry {
	ps := make([]Config, len(platforms))
	copy(ps, platforms)
	return &Registry{platforms: ps}
}

// DefaultConfigs returns the five supported marketplaces, all enabled.
func DefaultConfigs() []Config {
	return []Config{
		{Name: product.Vinted, Enabled: true, LogoPath: "/logos/vinted.svg", BaseURL: "https://www.vinted.com"},
		{Name: product.Etsy, Enabled: true, LogoPath: "/logos/etsy.svg", BaseURL: "https://www.etsy.com"},
		{Name: product.Depop, Enabled: true, LogoPath: "/logos/depop.svg", BaseURL: "https://www.depop.com"},
		{Name: product.Ebay, Enabled: true, LogoPath: "/logos/ebay.svg", BaseURL: "https://www.ebay.com"},
		{
			Name: product.Vestiaire, Enabled: true, LogoPath: "/logos/vestiaire.svg",
			BaseURL: "https://www.vestiairecollective.com",
		},
	}
}

// All returns every configured platform.
func (r *Registry) All() []Config {
	out := make([]Config, len(r.platforms))
	copy(out, r.platforms)
	return out
}

// Enabled returns the enabled platforms.
func (r *Registry) Enabled() []Config {
	out := make([]Config, 0, len(r.platforms))
	for _, p := range r.platforms {
		if p.Enabled {
			out = append(out, p)
		}
	}
	return out
}

// IsEnabled reports whether listings from the platform should be shown.
// Platforms missing from the registry are treated as disabled.
func (r *Registry) IsEnabled(name product.Platform) bool {
	for _, p := range r.platforms {
		if p.Name == name {
			return p.Enabled
		}
	}
	return false
}

// Logo returns the logo path for a platform, falling back to DefaultLogo.
func (r *Registry) Logo(name product.Platform) string {
	for _, p := range r.platforms {
		if p.Name == name && p.LogoPath != "" {
			return p.LogoPath
		}
	}
	return DefaultLogo
}

// Affiliate holds the referral tracking parameter appended to outbound product links.
type Affiliate struct {
	Enabled    bool
	ParamName  string
	ParamValue string
}

// Link returns the product URL with the affiliate parameter appended.
// The URL is returned unchanged when affiliate tracking is disabled.
func (a Affiliate) Link(productURL string) string {
	if !a.Enabled || a.ParamName == "" {
		return productURL
	}
	sep := "?"
	if strings.Contains(productURL, "?") {
		sep = "&"
	}
	return productURL + sep + url.QueryEscape(a.ParamName) + "=" + url.QueryEscape(a.ParamValue)
}
