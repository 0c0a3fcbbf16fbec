package chi

import (
	"time"

	"github.com/kailas-cloud/ratonica/internal/domain/platform"
	"github.com/kailas-cloud/ratonica/internal/domain/product"
	"github.com/kailas-cloud/ratonica/internal/domain/search/query"
	"github.com/kailas-cloud/ratonica/internal/domain/search/result"
	productuc "github.com/kailas-cloud/ratonica/internal/usecase/product"
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// QueryDTO is the wire form of a search query.
type QueryDTO struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// ProductDTO is the wire form of a listing.
type ProductDTO struct {
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

// SearchResultDTO is the wire form of a search result.
type SearchResultDTO struct {
	ID        string       `json:"id,omitempty"`
	Query     QueryDTO     `json:"query"`
	Products  []ProductDTO `json:"products"`
	Timestamp time.Time    `json:"timestamp"`
}

// SaveSearchRequest is the POST /history body. Pointers tell absent fields from empty ones.
type SaveSearchRequest struct {
	Query     *QueryDTO     `json:"query"`
	Products  *[]ProductDTO `json:"products"`
	Timestamp *time.Time    `json:"timestamp"`
}

// SaveSearchResponse is returned after a search is stored.
type SaveSearchResponse struct {
	SearchID string `json:"searchId"`
}

// HistoryItemDTO is one entry of the GET /history listing.
type HistoryItemDTO struct {
	ID          string       `json:"id"`
	Query       QueryDTO     `json:"query"`
	Products    []ProductDTO `json:"products"`
	Timestamp   time.Time    `json:"timestamp"`
	ResultCount int          `json:"resultCount"`
}

// ProductDetailDTO is a listing with display fields.
type ProductDetailDTO struct {
	ProductDTO
	AffiliateURL   string `json:"affiliateUrl"`
	PlatformLogo   string `json:"platformLogo"`
	ConditionLabel string `json:"conditionLabel,omitempty"`
	MatchLabel     string `json:"matchLabel"`
}

// PlatformDTO describes one marketplace.
type PlatformDTO struct {
	Name     string `json:"name"`
	LogoPath string `json:"logoPath"`
	BaseURL  string `json:"baseUrl"`
}

// HealthResponse reports component health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func queryToDTO(q query.Query) QueryDTO {
	return QueryDTO{Type: string(q.Type()), Content: q.Content()}
}

func productToDTO(p *product.Product) ProductDTO {
	return ProductDTO{
		ID:              p.ID,
		Title:           p.Title,
		Brand:           p.Brand,
		Description:     p.Description,
		Price:           p.Price,
		Currency:        p.Currency,
		ImageURL:        p.ImageURL,
		ProductURL:      p.ProductURL,
		Platform:        string(p.Platform),
		Condition:       string(p.Condition),
		SimilarityScore: p.SimilarityScore,
	}
}

func productFromDTO(d *ProductDTO) product.Product {
	return product.Product{
		ID:              d.ID,
		Title:           d.Title,
		Brand:           d.Brand,
		Description:     d.Description,
		Price:           d.Price,
		Currency:        d.Currency,
		ImageURL:        d.ImageURL,
		ProductURL:      d.ProductURL,
		Platform:        product.Platform(d.Platform),
		Condition:       product.Condition(d.Condition),
		SimilarityScore: d.SimilarityScore,
	}
}

func productsToDTO(ps []product.Product) []ProductDTO {
	out := make([]ProductDTO, len(ps))
	for i := range ps {
		out[i] = productToDTO(&ps[i])
	}
	return out
}

func resultToDTO(r *result.Result) SearchResultDTO {
	return SearchResultDTO{
		ID:        r.ID,
		Query:     queryToDTO(r.Query),
		Products:  productsToDTO(r.Products),
		Timestamp: r.Timestamp,
	}
}

func historyItemToDTO(r *result.Result) HistoryItemDTO {
	return HistoryItemDTO{
		ID:          r.ID,
		Query:       queryToDTO(r.Query),
		Products:    productsToDTO(r.Products),
		Timestamp:   r.Timestamp,
		ResultCount: r.ProductCount(),
	}
}

// resultFromSaveRequest converts a validated POST /history body.
func resultFromSaveRequest(req *SaveSearchRequest, now time.Time) result.Result {
	products := make([]product.Product, len(*req.Products))
	for i := range *req.Products {
		products[i] = productFromDTO(&(*req.Products)[i])
	}
	ts := now
	if req.Timestamp != nil && !req.Timestamp.IsZero() {
		ts = *req.Timestamp
	}
	return result.New(query.Reconstruct(query.Type(req.Query.Type), req.Query.Content), products, ts)
}

func detailToDTO(d *productuc.Detail) ProductDetailDTO {
	return ProductDetailDTO{
		ProductDTO:     productToDTO(&d.Product),
		AffiliateURL:   d.AffiliateURL,
		PlatformLogo:   d.PlatformLogo,
		ConditionLabel: d.ConditionLabel,
		MatchLabel:     d.MatchLabel,
	}
}

func platformToDTO(c platform.Config) PlatformDTO {
	return PlatformDTO{Name: string(c.Name), LogoPath: c.LogoPath, BaseURL: c.BaseURL}
}
