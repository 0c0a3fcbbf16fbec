package search

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/ratonica/internal/domain"
	"github.com/kailas-cloud/ratonica/internal/domain/search/filter"
	"github.com/kailas-cloud/ratonica/internal/domain/search/query"
	"github.com/kailas-cloud/ratonica/internal/domain/search/result"
	"github.com/kailas-cloud/ratonica/internal/metrics"
)

// Service runs product searches, analyzing image queries first.
type Service struct {
	catalog  Catalog
	analyzer Analyzer
	scorer   Scorer
	now      func() time.Time
}

// New creates a search service.
func New(catalog Catalog, analyzer Analyzer) *Service {
	return &Service{catalog: catalog, analyzer: analyzer, now: time.Now}
}

// WithScorer enables rescoring: every listing gets a fresh score and the list is re-sorted.
func (s *Service) WithScorer(sc Scorer) *Service {
	s.scorer = sc
	return s
}

// WithClock overrides the timestamp source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Search validates the query, replaces image payloads with their analyzed
// description and searches the catalog. The returned result keeps the
// original query type with the analyzed content.
func (s *Service) Search(ctx context.Context, q query.Query) (result.Result, error) {
	if _, err := query.New(q.Type(), q.Content()); err != nil {
		return result.Result{}, fmt.Errorf("%w: %w", domain.ErrInvalidQuery, err)
	}

	if q.IsImage() {
		term, err := s.AnalyzeImage(ctx, q.Content())
		if err != nil {
			metrics.SearchesTotal.WithLabelValues(string(q.Type()), "error").Inc()
			return result.Result{}, err
		}
		q = q.WithContent(term)
	}

	res, err := s.SearchProducts(ctx, q)
	if err != nil {
		metrics.SearchesTotal.WithLabelValues(string(q.Type()), "error").Inc()
		return result.Result{}, err
	}
	metrics.SearchesTotal.WithLabelValues(string(q.Type()), "success").Inc()
	return res, nil
}

// AnalyzeImage describes an image payload as a text search term.
func (s *Service) AnalyzeImage(ctx context.Context, payload string) (string, error) {
	term, err := s.analyzer.Analyze(ctx, payload)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrVisionProviderError, err)
	}
	return term, nil
}

// SearchProducts queries the catalog and stamps the result with the current time.
func (s *Service) SearchProducts(ctx context.Context, q query.Query) (result.Result, error) {
	products, err := s.catalog.Search(ctx, q)
	if err != nil {
		return result.Result{}, fmt.Errorf("search catalog: %w", err)
	}

	if s.scorer != nil {
		for i := range products {
			products[i] = products[i].WithScore(float64(s.scorer.Score()))
		}
		filter.SortByScore(products)
	}

	return result.New(q, products, s.now()), nil
}
