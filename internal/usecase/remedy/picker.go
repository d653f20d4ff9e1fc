package remedy

import (
	"math/rand/v2"
	"sync"
)

// PickerFunc adapts a function to Picker.
type PickerFunc func(n int) int

// Pick calls f.
func (f PickerFunc) Pick(n int) int { return f(n) }

// RandomPicker picks uniformly using the runtime-seeded global source.
type RandomPicker struct{}

// Pick returns a uniform index in [0, n).
func (RandomPicker) Pick(n int) int { return rand.IntN(n) } //nolint:gosec // not security sensitive

// SeededPicker is a reproducible uniform picker, safe for concurrent use.
type SeededPicker struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeededPicker creates a picker driven by a PCG source with the given seed.
func NewSeededPicker(seed uint64) *SeededPicker {
	return &SeededPicker{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))} //nolint:gosec // reproducible on purpose
}

// Pick returns a uniform index in [0, n).
func (p *SeededPicker) Pick(n int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rng.IntN(n)
}
