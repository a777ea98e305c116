package scramble

import "math/rand/v2"

const (
	// DefaultRevealWindow bounds the frame at which a slot starts scrambling: [0, 40)
	DefaultRevealWindow = 40
	// DefaultLockSpan bounds the scrambling duration of a slot: [0, 40)
	DefaultLockSpan = 40
	// DefaultChangeChance is the per-frame probability a scrambling slot draws a new glyph
	DefaultChangeChance = 0.28
	// DefaultGlyphs is the placeholder alphabet; the underscore run biases draws toward blanks
	DefaultGlyphs = `!<>-_\/[]{}—=+*^?#________`
)

// Rand is the random source used for slot timing and glyph draws
// *rand.Rand from math/rand/v2 satisfies it
type Rand interface {
	IntN(n int) int
	Float64() float64
}

// globalRand draws from the unseeded math/rand/v2 top-level source
type globalRand struct{}

func (globalRand) IntN(n int) int   { return rand.IntN(n) }
func (globalRand) Float64() float64 { return rand.Float64() }

// Options tunes an Animator
// Start from DefaultOptions; zero windows, empty Glyphs and nil Rand are replaced by defaults,
// ChangeChance is used as given
type Options struct {
	RevealWindow int
	LockSpan     int
	ChangeChance float64
	Glyphs       string
	Rand         Rand
}

// DefaultOptions returns the stock timing and alphabet with an unseeded random source
func DefaultOptions() Options {
	return Options{
		RevealWindow: DefaultRevealWindow,
		LockSpan:     DefaultLockSpan,
		ChangeChance: DefaultChangeChance,
		Glyphs:       DefaultGlyphs,
		Rand:         globalRand{},
	}
}

func (o Options) normalized() Options {
	if o.RevealWindow <= 0 {
		o.RevealWindow = DefaultRevealWindow
	}
	if o.LockSpan <= 0 {
		o.LockSpan = DefaultLockSpan
	}
	if o.Glyphs == "" {
		o.Glyphs = DefaultGlyphs
	}
	if o.Rand == nil {
		o.Rand = globalRand{}
	}
	return o
}
