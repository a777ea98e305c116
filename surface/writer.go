package surface

import (
	"fmt"
	"io"
	"sync"

	"github.com/lixenwraith/scramble/scramble"
)

// Writer emits every frame as one markup line prefixed with the surface name
// Scrambling cells are wrapped in OpenTag and CloseTag
type Writer struct {
	mu sync.Mutex
	w  io.Writer

	Name     string
	OpenTag  string
	CloseTag string

	text string
	err  error
}

// NewWriter creates a line writer surface using the default scramble markers
func NewWriter(w io.Writer, name, initial string) *Writer {
	return &Writer{
		w:        w,
		Name:     name,
		OpenTag:  scramble.DefaultMarkupOpen,
		CloseTag: scramble.DefaultMarkupClose,
		text:     initial,
	}
}

// Text implements scramble.Surface
func (sw *Writer) Text() string {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	return sw.text
}

// Render implements scramble.Surface
// Write errors are kept and reported by Err; rendering continues so the animation still settles
func (sw *Writer) Render(f scramble.Frame) {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	sw.text = f.String()
	if _, err := fmt.Fprintf(sw.w, "%s: %s\n", sw.Name, f.Markup(sw.OpenTag, sw.CloseTag)); err != nil && sw.err == nil {
		sw.err = fmt.Errorf("surface %s: %w", sw.Name, err)
	}
}

// Err returns the first write error
func (sw *Writer) Err() error {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	return sw.err
}
