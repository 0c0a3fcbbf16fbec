package history

import (
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
)

// IDGenerator produces opaque identifiers for saved searches.
type IDGenerator interface {
	NewID() (string, error)
}

// UUIDGenerator issues random (v4) UUIDs.
// With a nil reader it draws from crypto/rand; a seeded reader makes ids reproducible.
type UUIDGenerator struct {
	mu sync.Mutex
	r  io.Reader
}

// NewUUIDGenerator creates a generator reading randomness from r.
func NewUUIDGenerator(r io.Reader) *UUIDGenerator {
	return &UUIDGenerator{r: r}
}

// NewID returns a fresh UUID string.
func (g *UUIDGenerator) NewID() (string, error) {
	if g.r == nil {
		id, err := uuid.NewRandom()
		if err != nil {
			return "", fmt.Errorf("generate id: %w", err)
		}
		return id.String(), nil
	}

	// math/rand readers are not safe for concurrent use.
	g.mu.Lock()
	defer g.mu.Unlock()

	id, err := uuid.NewRandomFromReader(g.r)
	if err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return id.String(), nil
}
