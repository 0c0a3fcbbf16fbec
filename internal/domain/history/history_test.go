package history

import (
	"testing"
	"time"

	"github.com/kailas-cloud/ratonica/internal/domain/product"
	"github.com/kailas-cloud/ratonica/internal/domain/search/query"
	"github.com/kailas-cloud/ratonica/internal/domain/search/result"
)

func TestFromResult(t *testing.T) {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	r := result.New(query.Reconstruct(query.URL, "https://etsy.com/x"),
		[]product.Product{{ID: "1"}, {ID: "2"}, {ID: "3"}}, ts).WithID("s1")

	e := FromResult(&r)
	if e.ID != "s1" {
		t.Errorf("ID = %q", e.ID)
	}
	if e.Query.Content() != "https://etsy.com/x" {
		t.Errorf("Query = %+v", e.Query)
	}
	if e.ResultCount != 3 {
		t.Errorf("ResultCount = %d, want 3", e.ResultCount)
	}
	if !e.Timestamp.Equal(ts) {
		t.Errorf("Timestamp = %v", e.Timestamp)
	}
}

func TestFromResults_KeepsOrder(t *testing.T) {
	rs := []result.Result{
		{ID: "a"}, {ID: "b", Products: []product.Product{{ID: "1"}}},
	}
	entries := FromResults(rs)
	if len(entries) != 2 || entries[0].ID != "a" || entries[1].ID != "b" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
	if entries[1].ResultCount != 1 {
		t.Errorf("ResultCount = %d", entries[1].ResultCount)
	}
}
