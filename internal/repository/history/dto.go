package history

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/kailas-cloud/ratonica/internal/domain/product"
	"github.com/kailas-cloud/ratonica/internal/domain/search/query"
	"github.com/kailas-cloud/ratonica/internal/domain/search/result"
)

type queryDTO struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

type productDTO struct {
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

// resultDTO is the JSON document stored per saved search.
type resultDTO struct {
	ID        string       `json:"id"`
	Query     queryDTO     `json:"query"`
	Products  []productDTO `json:"products"`
	Timestamp time.Time    `json:"timestamp"`
}

func marshalResult(r *result.Result) ([]byte, error) {
	dto := resultDTO{
		ID:        r.ID,
		Query:     queryDTO{Type: string(r.Query.Type()), Content: r.Query.Content()},
		Products:  make([]productDTO, len(r.Products)),
		Timestamp: r.Timestamp,
	}
	for i := range r.Products {
		p := &r.Products[i]
		dto.Products[i] = productDTO{
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

	data, err := json.Marshal(dto)
	if err != nil {
		return nil, fmt.Errorf("marshal search result: %w", err)
	}
	return data, nil
}

func unmarshalResult(data []byte) (result.Result, error) {
	var dto resultDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return result.Result{}, fmt.Errorf("unmarshal search result: %w", err)
	}

	products := make([]product.Product, len(dto.Products))
	for i, p := range dto.Products {
		products[i] = product.Product{
			ID:              p.ID,
			Title:           p.Title,
			Brand:           p.Brand,
			Description:     p.Description,
			Price:           p.Price,
			Currency:        p.Currency,
			ImageURL:        p.ImageURL,
			ProductURL:      p.ProductURL,
			Platform:        product.Platform(p.Platform),
			Condition:       product.Condition(p.Condition),
			SimilarityScore: p.SimilarityScore,
		}
	}

	r := result.New(
		query.Reconstruct(query.Type(dto.Query.Type), dto.Query.Content),
		products,
		dto.Timestamp,
	)
	r.ID = dto.ID
	return r, nil
}
