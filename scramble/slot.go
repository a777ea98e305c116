package scramble

import "github.com/rivo/uniseg"

// Slot is the animation state of one character position
type Slot struct {
	From   string // character shown before Reveal, empty past the end of the source
	To     string // character shown from Lock on, empty past the end of the target
	Reveal int    // frame at which scrambling begins
	Lock   int    // frame at which To becomes final, never below Reveal

	glyph string // last drawn placeholder, empty until the slot first scrambles
}

// Glyph returns the placeholder last drawn for the slot
func (s Slot) Glyph() string {
	return s.glyph
}

// Segment splits text into grapheme clusters, one per slot position
// Concatenating the result reproduces text byte for byte
func Segment(text string) []string {
	out := make([]string, 0, len(text))
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// BuildSlots creates one slot per position of the longer of source and target
// Reveal and the Reveal-to-Lock span are drawn independently per slot
func BuildSlots(source, target string, opts Options) []Slot {
	opts = opts.normalized()
	return buildSlots(Segment(source), Segment(target), opts)
}

func buildSlots(from, to []string, opts Options) []Slot {
	n := max(len(from), len(to))
	slots := make([]Slot, n)
	for i := range slots {
		s := &slots[i]
		if i < len(from) {
			s.From = from[i]
		}
		if i < len(to) {
			s.To = to[i]
		}
		s.Reveal = opts.Rand.IntN(opts.RevealWindow)
		s.Lock = s.Reveal + opts.Rand.IntN(opts.LockSpan)
	}
	return slots
}
