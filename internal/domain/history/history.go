package history

import (
	"time"

	"github.com/kailas-cloud/ratonica/internal/domain/search/query"
	"github.com/kailas-cloud/ratonica/internal/domain/search/result"
)

// Entry is a lightweight summary of a saved search, used for "recent searches" listings.
type Entry struct {
	ID          string
	Query       query.Query
	Timestamp   time.Time
	ResultCount int
}

// FromResult projects a saved result into a history entry.
func FromResult(r *result.Result) Entry {
	return Entry{
		ID:          r.ID,
		Query:       r.Query,
		Timestamp:   r.Timestamp,
		ResultCount: r.ProductCount(),
	}
}

// FromResults projects every result in order.
func FromResults(rs []result.Result) []Entry {
	entries := make([]Entry, len(rs))
	for i := range rs {
		entries[i] = FromResult(&rs[i])
	}
	return entries
}
