package history

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/ratonica/internal/db"
	"github.com/kailas-cloud/ratonica/internal/domain"
	"github.com/kailas-cloud/ratonica/internal/domain/search/result"
)

// store is the consumer interface for the key-value history (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	GetMulti(ctx context.Context, keys []string) ([][]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Del(ctx context.Context, keys ...string) error
	RPush(ctx context.Context, key string, values ...string) error
	LRange(ctx context.Context, key string, start, stop int64) ([]string, error)
}

// Repo persists saved searches in Redis/Valkey.
// Each result is a JSON string at {prefix}search:{id}; insertion order lives
// in the list {prefix}search:ids.
type Repo struct {
	store  store
	ids    IDGenerator
	prefix string
}

// New creates a key-value history repository. An empty prefix falls back to domain.KeyPrefix.
func New(s store, ids IDGenerator, prefix string) *Repo {
	if prefix == "" {
		prefix = domain.KeyPrefix
	}
	return &Repo{store: s, ids: ids, prefix: prefix}
}

// Save writes the result document, then appends its id to the order list.
// If the append fails the document is removed again, so Get never finds a
// search that Recent cannot list.
func (r *Repo) Save(ctx context.Context, res result.Result) (string, error) {
	id, err := r.ids.NewID()
	if err != nil {
		return "", err
	}
	stored := res.WithID(id)

	data, err := marshalResult(&stored)
	if err != nil {
		return "", err
	}
	if err := r.store.Set(ctx, r.resultKey(id), data); err != nil {
		return "", fmt.Errorf("store search %s: %w", id, err)
	}
	if err := r.store.RPush(ctx, r.orderKey(), id); err != nil {
		if delErr := r.store.Del(context.WithoutCancel(ctx), r.resultKey(id)); delErr != nil {
			return "", errors.Join(
				fmt.Errorf("append search %s: %w", id, err),
				fmt.Errorf("roll back search %s: %w", id, delErr),
			)
		}
		return "", fmt.Errorf("append search %s: %w", id, err)
	}
	return id, nil
}

// Get loads one saved search.
func (r *Repo) Get(ctx context.Context, id string) (result.Result, error) {
	data, err := r.store.Get(ctx, r.resultKey(id))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return result.Result{}, domain.ErrSearchNotFound
		}
		return result.Result{}, fmt.Errorf("get search %s: %w", id, err)
	}
	return unmarshalResult(data)
}

// Recent returns up to limit searches from the front of the order list.
// Ids whose document is missing are skipped.
func (r *Repo) Recent(ctx context.Context, limit int) ([]result.Result, error) {
	if limit <= 0 {
		return []result.Result{}, nil
	}

	ids, err := r.store.LRange(ctx, r.orderKey(), 0, int64(limit-1))
	if err != nil {
		return nil, fmt.Errorf("list search ids: %w", err)
	}
	if len(ids) == 0 {
		return []result.Result{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.resultKey(id)
	}
	docs, err := r.store.GetMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("load searches: %w", err)
	}

	out := make([]result.Result, 0, len(docs))
	for _, data := range docs {
		if data == nil {
			continue
		}
		res, err := unmarshalResult(data)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, nil
}

func (r *Repo) resultKey(id string) string {
	return r.prefix + "search:" + id
}

func (r *Repo) orderKey() string {
	return r.prefix + "search:ids"
}
