package callflow

import (
	"math/rand"
	"sync"
	"time"
)

// TemplateSelector picks one phrasing out of a bucket of interchangeable
// candidates. Production uses uniform random choice to avoid repetitive
// scripted sound; tests inject a deterministic implementation.
type TemplateSelector interface {
	Choose(candidates []string) string
}

type randomSelector struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomSelector returns a selector seeded from the clock.
func NewRandomSelector() TemplateSelector {
	return NewSeededSelector(time.Now().UnixNano())
}

// NewSeededSelector returns a selector with a fixed seed so a call replay
// produces an identical reply sequence.
func NewSeededSelector(seed int64) TemplateSelector {
	return &randomSelector{rng: rand.New(rand.NewSource(seed))}
}

func (s *randomSelector) Choose(candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return candidates[s.rng.Intn(len(candidates))]
}

// FirstSelector always picks the first candidate. Used in tests and as a
// conservative fallback when no selector is supplied.
type FirstSelector struct{}

func (FirstSelector) Choose(candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}
	return candidates[0]
}
