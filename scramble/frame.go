package scramble

import "strings"

const (
	// DefaultMarkupOpen and DefaultMarkupClose wrap scrambling cells in Frame.Markup
	DefaultMarkupOpen  = `<span class="dud">`
	DefaultMarkupClose = `</span>`
)

// Cell is the rendered output of one slot
type Cell struct {
	Text       string
	Scrambling bool
}

// Frame is the full surface content for one animation frame, in slot order
type Frame []Cell

// String returns the plain text a reader of the surface sees, placeholders included
func (f Frame) String() string {
	var b strings.Builder
	for _, c := range f {
		b.WriteString(c.Text)
	}
	return b.String()
}

// Markup returns the frame with every scrambling cell wrapped in openTag and closeTag
func (f Frame) Markup(openTag, closeTag string) string {
	var b strings.Builder
	for _, c := range f {
		if c.Scrambling {
			b.WriteString(openTag)
			b.WriteString(c.Text)
			b.WriteString(closeTag)
			continue
		}
		b.WriteString(c.Text)
	}
	return b.String()
}

// Scrambling returns the number of cells currently showing a placeholder
func (f Frame) Scrambling() int {
	n := 0
	for _, c := range f {
		if c.Scrambling {
			n++
		}
	}
	return n
}

// renderSlots applies the per-frame rule to every slot and returns the frame and the locked count
// Scrambling slots redraw their placeholder with probability chance, or always when none was drawn yet
func renderSlots(slots []Slot, frame int, chance float64, glyphs []string, rng Rand) (Frame, int) {
	out := make(Frame, len(slots))
	locked := 0
	for i := range slots {
		s := &slots[i]
		switch {
		case frame >= s.Lock:
			locked++
			out[i] = Cell{Text: s.To}
		case frame >= s.Reveal:
			if s.glyph == "" || rng.Float64() < chance {
				s.glyph = glyphs[rng.IntN(len(glyphs))]
			}
			out[i] = Cell{Text: s.glyph, Scrambling: true}
		default:
			out[i] = Cell{Text: s.From}
		}
	}
	return out, locked
}
