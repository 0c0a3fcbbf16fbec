package ratonica

import (
	"time"

	domprod "github.com/kailas-cloud/ratonica/internal/domain/product"
	"github.com/kailas-cloud/ratonica/internal/domain/search/query"
	"github.com/kailas-cloud/ratonica/internal/domain/search/result"
)

// QueryType is the kind of search input.
type QueryType string

// Search input types.
const (
	QueryImage QueryType = "image"
	QueryURL   QueryType = "url"
	QueryText  QueryType = "text"
)

// Query is what the user searched with.
type Query struct {
	Type    QueryType `json:"type"`
	Content string    `json:"content"`
}

// Product is a marketplace listing.
// Brand, Description, Condition and SimilarityScore are optional.
type Product struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Brand           string   `json:"brand,omitempty"`
	Description     string   `json:"description,omitempty"`
	Price           float64  `json:"price"`
	Currency        string   `json:"currency"`
	ImageURL        string   `json:"imageUrl"`
	ProductURL      string   `json:"productUrl"`
	Platform        string   `json:"platform"`
	Condition       string   `json:"condition,omitempty"`
	SimilarityScore *float64 `json:"similarityScore,omitempty"`
}

// SearchResult is one search outcome. ID is empty until the result is saved.
type SearchResult struct {
	ID        string    `json:"id,omitempty"`
	Query     Query     `json:"query"`
	Products  []Product `json:"products"`
	Timestamp time.Time `json:"timestamp"`
}

func fromResult(r *result.Result) SearchResult {
	products := make([]Product, len(r.Products))
	for i := range r.Products {
		products[i] = fromProduct(&r.Products[i])
	}
	return SearchResult{
		ID: r.ID,
		Query: Query{
			Type:    QueryType(r.Query.Type()),
			Content: r.Query.Content(),
		},
		Products:  products,
		Timestamp: r.Timestamp,
	}
}

func fromProduct(p *domprod.Product) Product {
	out := Product{
		ID:          p.ID,
		Title:       p.Title,
		Brand:       p.Brand,
		Description: p.Description,
		Price:       p.Price,
		Currency:    p.Currency,
		ImageURL:    p.ImageURL,
		ProductURL:  p.ProductURL,
		Platform:    string(p.Platform),
		Condition:   string(p.Condition),
	}
	if p.SimilarityScore != nil {
		s := *p.SimilarityScore
		out.SimilarityScore = &s
	}
	return out
}

func toResult(r *SearchResult) result.Result {
	var products []domprod.Product
	if r.Products != nil {
		products = make([]domprod.Product, len(r.Products))
		for i := range r.Products {
			products[i] = toProduct(&r.Products[i])
		}
	}
	q := query.Reconstruct(query.Type(r.Query.Type), r.Query.Content)
	return result.New(q, products, r.Timestamp)
}

func toProduct(p *Product) domprod.Product {
	out := domprod.Product{
		ID:          p.ID,
		Title:       p.Title,
		Brand:       p.Brand,
		Description: p.Description,
		Price:       p.Price,
		Currency:    p.Currency,
		ImageURL:    p.ImageURL,
		ProductURL:  p.ProductURL,
		Platform:    domprod.Platform(p.Platform),
		Condition:   domprod.Condition(p.Condition),
	}
	if p.SimilarityScore != nil {
		s := *p.SimilarityScore
		out.SimilarityScore = &s
	}
	return out
}
