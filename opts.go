package formula

import (
	"math/rand/v2"
	"sync"
)

// Source is a source of uniformly distributed random numbers in [0, 1), used
// by the random function. *rand.Rand from math/rand and math/rand/v2 both
// implement Source. An Evaluator may call Float64 from several goroutines at
// once if it is used concurrently, so the Source must allow that.
type Source interface {
	Float64() float64
}

// Option is an option used when creating an Evaluator.
type Option interface {
	evalOption(*Evaluator)
}

type (
	randopt struct {
		src Source
	}
	seedopt uint64
)

func (o randopt) evalOption(e *Evaluator) {
	e.rand = o.src
}

func (o seedopt) evalOption(e *Evaluator) {
	e.rand = &lockedSource{r: rand.New(rand.NewPCG(uint64(o), uint64(o)))}
}

// WithRand sets the source of random numbers. A nil src selects the default,
// which draws from the runtime's goroutine-safe generator.
func WithRand(src Source) Option {
	return randopt{src}
}

// WithSeed sets a deterministic source of random numbers. Two Evaluators
// created with the same seed produce the same sequence of random values.
func WithSeed(seed uint64) Option {
	return seedopt(seed)
}

// runtimeSource draws from the top-level functions of math/rand/v2.
type runtimeSource struct{}

func (runtimeSource) Float64() float64 {
	return rand.Float64()
}

// lockedSource serializes access to a generator that is not safe for
// concurrent use.
type lockedSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (s *lockedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Float64()
}
