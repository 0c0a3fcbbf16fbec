package history

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/ratonica/internal/domain"
	domhist "github.com/kailas-cloud/ratonica/internal/domain/history"
	"github.com/kailas-cloud/ratonica/internal/domain/search/filter"
	"github.com/kailas-cloud/ratonica/internal/domain/search/result"
	"github.com/kailas-cloud/ratonica/internal/metrics"
)

// DefaultLimit is the number of searches listed when the caller gives no limit.
const DefaultLimit = 10

// Service manages the search history.
type Service struct {
	repo         Repository
	defaultLimit int
}

// New creates a history service. A non-positive defaultLimit falls back to DefaultLimit.
func New(repo Repository, defaultLimit int) *Service {
	if defaultLimit <= 0 {
		defaultLimit = DefaultLimit
	}
	return &Service{repo: repo, defaultLimit: defaultLimit}
}

// Save stores a search result and returns its new id.
func (s *Service) Save(ctx context.Context, r result.Result) (string, error) {
	if r.Products == nil {
		return "", fmt.Errorf("%w: products are required", domain.ErrInvalidResult)
	}

	id, err := s.repo.Save(ctx, r)
	if err != nil {
		return "", fmt.Errorf("save search: %w", err)
	}
	metrics.SavedSearchesTotal.Inc()
	return id, nil
}

// Get returns one saved search.
func (s *Service) Get(ctx context.Context, id string) (result.Result, error) {
	if id == "" {
		return result.Result{}, domain.ErrSearchNotFound
	}
	r, err := s.repo.Get(ctx, id)
	if err != nil {
		return result.Result{}, fmt.Errorf("get search %s: %w", id, err)
	}
	return r, nil
}

// GetFiltered returns one saved search with its products narrowed and ordered by opts.
func (s *Service) GetFiltered(ctx context.Context, id string, opts filter.Options) (result.Result, error) {
	r, err := s.Get(ctx, id)
	if err != nil {
		return result.Result{}, err
	}
	if !opts.IsEmpty() {
		r.Products = opts.Apply(r.Products)
	}
	return r, nil
}

// List returns up to limit saved searches with their products.
func (s *Service) List(ctx context.Context, limit int) ([]result.Result, error) {
	if limit <= 0 {
		limit = s.defaultLimit
	}
	rs, err := s.repo.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list searches: %w", err)
	}
	return rs, nil
}

// Recent returns up to limit history entries.
func (s *Service) Recent(ctx context.Context, limit int) ([]domhist.Entry, error) {
	rs, err := s.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	return domhist.FromResults(rs), nil
}
