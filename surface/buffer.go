// Package surface provides render sinks for scramble animators
package surface

import (
	"sync"

	"github.com/lixenwraith/scramble/scramble"
)

// Buffer is an in-memory surface that records every frame
type Buffer struct {
	mu     sync.Mutex
	text   string
	frames []scramble.Frame
}

// NewBuffer creates a buffer displaying initial
func NewBuffer(initial string) *Buffer {
	return &Buffer{text: initial}
}

// Text implements scramble.Surface
func (b *Buffer) Text() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.text
}

// Render implements scramble.Surface
func (b *Buffer) Render(f scramble.Frame) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.frames = append(b.frames, f)
	b.text = f.String()
}

// Frames returns a copy of the recorded frames
func (b *Buffer) Frames() []scramble.Frame {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]scramble.Frame, len(b.frames))
	copy(out, b.frames)
	return out
}

// Last returns the most recent frame, nil if nothing was rendered
func (b *Buffer) Last() scramble.Frame {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.frames) == 0 {
		return nil
	}
	return b.frames[len(b.frames)-1]
}

// Reset drops the recorded frames and displays text
func (b *Buffer) Reset(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.frames = nil
	b.text = text
}
