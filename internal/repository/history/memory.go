package history

import (
	"context"
	"sync"

	"github.com/kailas-cloud/ratonica/internal/domain"
	"github.com/kailas-cloud/ratonica/internal/domain/search/result"
)

// Memory keeps saved searches in process memory, in insertion order.
// Contents are lost when the process exits.
type Memory struct {
	mu      sync.RWMutex
	results []result.Result
	byID    map[string]int
	ids     IDGenerator
}

// NewMemory creates an empty in-memory history repository.
func NewMemory(ids IDGenerator) *Memory {
	return &Memory{
		byID: make(map[string]int),
		ids:  ids,
	}
}

// Save assigns a new id to a copy of r and appends it.
func (m *Memory) Save(_ context.Context, r result.Result) (string, error) {
	id, err := m.ids.NewID()
	if err != nil {
		return "", err
	}
	stored := r.WithID(id)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.byID[id] = len(m.results)
	m.results = append(m.results, stored)
	return id, nil
}

// Get returns the saved search with the given id.
func (m *Memory) Get(_ context.Context, id string) (result.Result, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i, ok := m.byID[id]
	if !ok {
		return result.Result{}, domain.ErrSearchNotFound
	}
	return m.results[i].WithID(id), nil
}

// Recent returns up to limit searches from the front of the store, oldest first.
func (m *Memory) Recent(_ context.Context, limit int) ([]result.Result, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := min(max(limit, 0), len(m.results))
	out := make([]result.Result, n)
	for i := range n {
		out[i] = m.results[i].WithID(m.results[i].ID)
	}
	return out, nil
}

// Len returns the number of saved searches.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.results)
}
