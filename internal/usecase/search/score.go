package search

import (
	"math/rand"
	"sync"
)

// Scores produced by RandomScorer fall in [MinScore, MaxScore).
const (
	MinScore = 60
	MaxScore = 100
)

// RandomScorer returns pseudo-random similarity scores. It is a placeholder
// for a real scoring model and is only used when rescoring is enabled.
type RandomScorer struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRandomScorer creates a scorer drawing from rnd.
func NewRandomScorer(rnd *rand.Rand) *RandomScorer {
	return &RandomScorer{rnd: rnd}
}

// Score returns an integer in [MinScore, MaxScore).
func (s *RandomScorer) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return MinScore + s.rnd.Intn(MaxScore-MinScore)
}
