package history

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/kailas-cloud/ratonica/internal/db"
	"github.com/kailas-cloud/ratonica/internal/domain/product"
	"github.com/kailas-cloud/ratonica/internal/domain/search/query"
	"github.com/kailas-cloud/ratonica/internal/domain/search/result"
)

// seqIDs hands out "id-1", "id-2", ... in order.
type seqIDs struct {
	mu sync.Mutex
	n  int
}

func (s *seqIDs) NewID() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("id-%d", s.n), nil
}

type failingIDs struct{}

func (failingIDs) NewID() (string, error) { return "", fmt.Errorf("entropy exhausted") }

// mockStore implements the consumer interface for tests.
// By default it behaves like an empty key-value store.
type mockStore struct {
	mu       sync.Mutex
	kv       map[string][]byte
	lists    map[string][]string
	getFn    func(ctx context.Context, key string) ([]byte, error)
	setFn    func(ctx context.Context, key string, value []byte) error
	delFn    func(ctx context.Context, keys ...string) error
	rpushFn  func(ctx context.Context, key string, values ...string) error
	lrangeFn func(ctx context.Context, key string, start, stop int64) ([]string, error)
}

func newMockStore() *mockStore {
	return &mockStore{kv: map[string][]byte{}, lists: map[string][]string{}}
}

func (m *mockStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.kv[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (m *mockStore) GetMulti(ctx context.Context, keys []string) ([][]byte, error) {
	out := make([][]byte, len(keys))
	for i, k := range keys {
		v, err := m.Get(ctx, k)
		if err != nil {
			continue
		}
		out[i] = v
	}
	return out, nil
}

func (m *mockStore) Set(ctx context.Context, key string, value []byte) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.kv[key] = value
	return nil
}

func (m *mockStore) Del(ctx context.Context, keys ...string) error {
	if m.delFn != nil {
		return m.delFn(ctx, keys...)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.kv, k)
	}
	return nil
}

func (m *mockStore) RPush(ctx context.Context, key string, values ...string) error {
	if m.rpushFn != nil {
		return m.rpushFn(ctx, key, values...)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lists[key] = append(m.lists[key], values...)
	return nil
}

func (m *mockStore) LRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	if m.lrangeFn != nil {
		return m.lrangeFn(ctx, key, start, stop)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	l := m.lists[key]
	if start >= int64(len(l)) {
		return []string{}, nil
	}
	end := min(stop+1, int64(len(l)))
	return append([]string(nil), l[start:end]...), nil
}

func testResult(t *testing.T, content string) result.Result {
	t.Helper()
	q, err := query.New(query.Text, content)
	if err != nil {
		t.Fatalf("query.New: %v", err)
	}
	score := 92.0
	return result.New(q, []product.Product{
		{
			ID:              "1",
			Title:           "Vintage Levi's Denim Jacket",
			Brand:           "Levi's",
			Price:           89.99,
			Currency:        "USD",
			ImageURL:        "https://images.example.com/1.jpg",
			ProductURL:      "https://www.etsy.com/listing/123456",
			Platform:        product.Etsy,
			Condition:       product.Good,
			SimilarityScore: &score,
		},
		{
			ID:         "4",
			Title:      "Rare 70s Denim Jacket",
			Price:      150,
			Currency:   "USD",
			ImageURL:   "https://images.example.com/4.jpg",
			ProductURL: "https://www.ebay.com/itm/123456",
			Platform:   product.Ebay,
		},
	}, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
}
