package product

import "fmt"

// Platform is a marketplace a listing originates from.
type Platform string

// Supported platforms.
const (
	Vinted    Platform = "vinted"
	Etsy      Platform = "etsy"
	Depop     Platform = "depop"
	Ebay      Platform = "ebay"
	Vestiaire Platform = "vestiaire"
	Other     Platform = "other"
)

// IsValid checks if the platform is one of the supported values.
func (p Platform) IsValid() bool {
	switch p {
	case Vinted, Etsy, Depop, Ebay, Vestiaire, Other:
		return true
	}
	return false
}

// Condition is the wear state of a listed item.
type Condition string

// Item conditions.
const (
	New     Condition = "new"
	LikeNew Condition = "like_new"
	Good    Condition = "good"
	Fair    Condition = "fair"
	Poor    Condition = "poor"
)

// IsValid checks if the condition is one of the supported values.
func (c Condition) IsValid() bool {
	switch c {
	case New, LikeNew, Good, Fair, Poor:
		return true
	}
	return false
}

// Label returns a human-readable condition name.
func (c Condition) Label() string {
	switch c {
	case New:
		return "New"
	case LikeNew:
		return "Like New"
	case Good:
		return "Good"
	case Fair:
		return "Fair"
	case Poor:
		return "Poor"
	}
	return "Unknown"
}

// Product is a single marketplace listing.
// Brand, Description and Condition are optional (zero value = absent).
type Product struct {
	ID              string
	Title           string
	Brand           string
	Description     string
	Price           float64
	Currency        string
	ImageURL        string
	ProductURL      string
	Platform        Platform
	Condition       Condition
	SimilarityScore *float64
}

// Score returns the similarity score, or 0 when the product has none.
func (p *Product) Score() float64 {
	if p.SimilarityScore == nil {
		return 0
	}
	return *p.SimilarityScore
}

// WithScore returns a copy of the product with the similarity score replaced.
func (p Product) WithScore(score float64) Product {
	p.SimilarityScore = &score
	return p
}

// Validate checks the product invariants that callers rely on.
func (p *Product) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("product id is required")
	}
	if p.Price < 0 {
		return fmt.Errorf("product %s: price must be >= 0, got %v", p.ID, p.Price)
	}
	if p.SimilarityScore != nil && (*p.SimilarityScore < 0 || *p.SimilarityScore > 100) {
		return fmt.Errorf("product %s: similarity score must be in [0,100], got %v", p.ID, *p.SimilarityScore)
	}
	return nil
}

// MatchLabel describes how close a similarity score is to the search input.
func MatchLabel(score float64) string {
	switch {
	case score >= 90:
		return "Perfect Match"
	case score >= 75:
		return "Great Match"
	case score >= 60:
		return "Good Match"
	}
	return "Fair Match"
}

// UniqueIDs reports whether every product id in the list is distinct.
func UniqueIDs(products []Product) bool {
	seen := make(map[string]struct{}, len(products))
	for i := range products {
		if _, ok := seen[products[i].ID]; ok {
			return false
		}
		seen[products[i].ID] = struct{}{}
	}
	return true
}
