// Package random provides the seeded generator used to initialise network weights.
//
// The stream is a 48-bit linear congruential generator, so a seed always
// produces the same weights across runs and platforms.
package random

import (
	"sync"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultSeed seeds the process-wide Source returned by Default.
const DefaultSeed int64 = 123456789

const (
	multiplier = 0x5DEECE66D
	addend     = 0xB
	mask       = (1 << 48) - 1
)

// lcg implements rand.Source. Uint64 yields 53 significant bits so that
// rand.Float64 maps each value to [0, 1) without discarding entropy.
type lcg struct {
	state uint64
}

var _ rand.Source = (*lcg)(nil)

// Seed resets the generator state.
func (g *lcg) Seed(seed uint64) {
	g.state = (seed ^ multiplier) & mask
}

func (g *lcg) next(bits uint) uint64 {
	g.state = (g.state*multiplier + addend) & mask
	return g.state >> (48 - bits)
}

// Uint64 returns the next 53-bit value of the stream.
func (g *lcg) Uint64() uint64 {
	return g.next(26)<<27 + g.next(27)
}

// Source draws uniform float64 values from a seeded stream.
// A Source is not safe for concurrent use.
type Source struct {
	gen  *lcg
	seed int64
}

// New creates a Source seeded with seed.
func New(seed int64) *Source {
	g := &lcg{}
	g.Seed(uint64(seed))
	return &Source{gen: g, seed: seed}
}

// Seed returns the seed the Source was created with.
func (s *Source) Seed() int64 {
	return s.seed
}

// Reset rewinds the Source to the start of its stream.
func (s *Source) Reset() {
	s.gen.Seed(uint64(s.seed))
}

// Float64 returns min + (max-min)*u with u uniform in [0, 1).
// Note the argument order: passing max < min inverts the interval.
func (s *Source) Float64(max, min float64) float64 {
	return distuv.Uniform{Min: min, Max: max, Src: s.gen}.Rand()
}

// Fill sets every element of dst to a draw from Float64(max, min), in order.
func (s *Source) Fill(dst []float64, max, min float64) {
	u := distuv.Uniform{Min: min, Max: max, Src: s.gen}
	for i := range dst {
		dst[i] = u.Rand()
	}
}

var (
	defaultMu  sync.Mutex
	defaultSrc *Source
)

// Default returns the process-wide Source, seeded once with DefaultSeed.
func Default() *Source {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultSrc == nil {
		defaultSrc = New(DefaultSeed)
	}
	return defaultSrc
}

// ResetDefault rewinds the process-wide Source so the next run replays the
// same stream. References obtained from Default stay valid.
func ResetDefault() {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultSrc == nil {
		defaultSrc = New(DefaultSeed)
		return
	}
	defaultSrc.Reset()
}
