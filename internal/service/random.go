package service

import (
	"math/rand"
	"sync"
	"time"
)

// RandomSource picks quiz candidates. Intn returns a value in [0, n).
type RandomSource interface {
	Intn(n int) int
}

type lockedRandomSource struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRandomSource returns a goroutine-safe source. A zero seed uses the clock.
func NewRandomSource(seed int64) RandomSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &lockedRandomSource{rnd: rand.New(rand.NewSource(seed))}
}

func (s *lockedRandomSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Intn(n)
}
