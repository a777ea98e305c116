package surface

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/scramble/scramble"
)

type cellPos struct {
	x, y int
}

// Term renders frames into a region of a tcell screen
// Cells flow left to right from (X, Y) and wrap at Width columns; Width <= 0 disables wrapping
// Render only writes cells, flushing with Show is left to the caller
type Term struct {
	screen tcell.Screen

	X, Y  int
	Width int

	Plain    tcell.Style
	Scramble tcell.Style

	text string
	last scramble.Frame
	used []cellPos
}

// NewTerm creates a terminal surface displaying initial at (x, y)
func NewTerm(screen tcell.Screen, x, y, width int, initial string) *Term {
	return &Term{
		screen:   screen,
		X:        x,
		Y:        y,
		Width:    width,
		Plain:    tcell.StyleDefault,
		Scramble: tcell.StyleDefault.Dim(true),
		text:     initial,
	}
}

// Text implements scramble.Surface
func (t *Term) Text() string {
	return t.text
}

// Render implements scramble.Surface
func (t *Term) Render(f scramble.Frame) {
	t.last = f
	t.text = f.String()
	t.draw()
}

// Redraw repaints the last frame, used after a screen clear or resize
func (t *Term) Redraw() {
	t.used = t.used[:0]
	t.draw()
}

// Move relocates the region; the old cells are blanked on the next draw
func (t *Term) Move(x, y, width int) {
	t.X, t.Y, t.Width = x, y, width
	t.draw()
}

// Lines returns the number of rows the current content occupies
func (t *Term) Lines() int {
	rows := 0
	for _, p := range t.used {
		rows = max(rows, p.y-t.Y+1)
	}
	return rows
}

func (t *Term) draw() {
	// Blank whatever the previous draw covered
	for _, p := range t.used {
		t.screen.SetContent(p.x, p.y, ' ', nil, t.Plain)
	}
	t.used = t.used[:0]

	if t.last == nil {
		t.drawPlain(t.text)
		return
	}

	col, row := 0, 0
	for _, c := range t.last {
		style := t.Plain
		if c.Scrambling {
			style = t.Scramble
		}
		col, row = t.put(c.Text, col, row, style)
	}
}

// drawPlain renders text that has not been through an animator yet
func (t *Term) drawPlain(text string) {
	col, row := 0, 0
	for _, g := range scramble.Segment(text) {
		col, row = t.put(g, col, row, t.Plain)
	}
}

// put writes one grapheme cluster and returns the next cursor position
func (t *Term) put(g string, col, row int, style tcell.Style) (int, int) {
	if g == "" {
		return col, row
	}
	if g == "\n" {
		return 0, row + 1
	}

	w := runewidth.StringWidth(g)
	if w == 0 {
		w = 1
	}
	if t.Width > 0 && col > 0 && col+w > t.Width {
		col = 0
		row++
	}

	runes := []rune(g)
	t.screen.SetContent(t.X+col, t.Y+row, runes[0], runes[1:], style)
	for k := range w {
		t.used = append(t.used, cellPos{x: t.X + col + k, y: t.Y + row})
	}
	return col + w, row
}
