package surface

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/scramble/scramble"
)

func newSimScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("simulation screen init: %v", err)
	}
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

func rowText(s tcell.Screen, y, from, to int) string {
	var b strings.Builder
	for x := from; x < to; x++ {
		r, _, _, _ := s.GetContent(x, y)
		b.WriteRune(r)
	}
	return b.String()
}

func isDim(s tcell.Screen, x, y int) bool {
	_, _, style, _ := s.GetContent(x, y)
	_, _, attrs := style.Decompose()
	return attrs&tcell.AttrDim != 0
}

func TestBufferRecordsFrames(t *testing.T) {
	b := NewBuffer("init")
	if b.Text() != "init" || b.Last() != nil {
		t.Fatalf("fresh buffer = (%q, %v)", b.Text(), b.Last())
	}

	b.Render(scramble.Frame{{Text: "a"}, {Text: "#", Scrambling: true}})
	b.Render(scramble.Frame{{Text: "a"}, {Text: "b"}})

	if b.Text() != "ab" {
		t.Errorf("text = %q, want ab", b.Text())
	}
	if n := len(b.Frames()); n != 2 {
		t.Errorf("frames = %d, want 2", n)
	}
	if b.Last().String() != "ab" {
		t.Errorf("last = %q", b.Last().String())
	}

	b.Reset("x")
	if b.Text() != "x" || len(b.Frames()) != 0 {
		t.Errorf("after reset = (%q, %d frames)", b.Text(), len(b.Frames()))
	}
}

func TestTermRenderStyles(t *testing.T) {
	s := newSimScreen(t, 20, 4)
	term := NewTerm(s, 2, 1, 0, "")

	term.Render(scramble.Frame{{Text: "H"}, {Text: "<", Scrambling: true}, {Text: "y"}})
	s.Show()

	if got := rowText(s, 1, 2, 5); got != "H<y" {
		t.Errorf("row = %q, want H<y", got)
	}
	if isDim(s, 2, 1) {
		t.Error("settled cell rendered with scramble style")
	}
	if !isDim(s, 3, 1) {
		t.Error("scrambling cell not rendered with scramble style")
	}
	if term.Text() != "H<y" {
		t.Errorf("text = %q", term.Text())
	}
}

func TestTermShrinkBlanksOldCells(t *testing.T) {
	s := newSimScreen(t, 20, 4)
	term := NewTerm(s, 0, 0, 0, "")

	term.Render(scramble.Frame{{Text: "H"}, {Text: "e"}, {Text: "l"}, {Text: "l"}, {Text: "o"}})
	term.Render(scramble.Frame{{Text: "H"}, {Text: "i"}, {Text: ""}, {Text: ""}, {Text: ""}})
	s.Show()

	if got := rowText(s, 0, 0, 5); got != "Hi   " {
		t.Errorf("row = %q, want %q", got, "Hi   ")
	}
}

func TestTermWrapsAtWidth(t *testing.T) {
	s := newSimScreen(t, 20, 4)
	term := NewTerm(s, 1, 0, 4, "")

	var frame scramble.Frame
	for _, g := range scramble.Segment("abcdefghij") {
		frame = append(frame, scramble.Cell{Text: g})
	}
	term.Render(frame)
	s.Show()

	want := []string{"abcd", "efgh", "ij  "}
	for row, w := range want {
		if got := rowText(s, row, 1, 5); got != w {
			t.Errorf("row %d = %q, want %q", row, got, w)
		}
	}
	if term.Lines() != 3 {
		t.Errorf("lines = %d, want 3", term.Lines())
	}
}

func TestTermWideCharacters(t *testing.T) {
	s := newSimScreen(t, 20, 4)
	term := NewTerm(s, 0, 0, 3, "")

	term.Render(scramble.Frame{{Text: "a"}, {Text: "界"}, {Text: "b"}})
	s.Show()

	if r, _, _, _ := s.GetContent(1, 0); r != '界' {
		t.Errorf("wide rune at col 1 = %q", r)
	}
	// "b" no longer fits on the first row (1 + 2 + 1 > 3)
	if r, _, _, _ := s.GetContent(0, 1); r != 'b' {
		t.Errorf("wrapped rune = %q, want b", r)
	}
}

func TestTermRedrawAndMove(t *testing.T) {
	s := newSimScreen(t, 20, 4)
	term := NewTerm(s, 0, 0, 0, "intro")

	term.Redraw()
	s.Show()
	if got := rowText(s, 0, 0, 5); got != "intro" {
		t.Errorf("initial draw = %q", got)
	}

	term.Move(3, 2, 0)
	s.Show()
	if got := rowText(s, 0, 0, 5); got != "     " {
		t.Errorf("old row after move = %q, want blank", got)
	}
	if got := rowText(s, 2, 3, 8); got != "intro" {
		t.Errorf("moved row = %q", got)
	}

	s.Clear()
	term.Redraw()
	s.Show()
	if got := rowText(s, 2, 3, 8); got != "intro" {
		t.Errorf("row after clear and redraw = %q", got)
	}
}

// TestTermDrivenByAnimator runs a full transition onto a simulation screen
func TestTermDrivenByAnimator(t *testing.T) {
	s := newSimScreen(t, 40, 4)
	term := NewTerm(s, 0, 0, 0, "Hello")

	sched := &immediateScheduler{}
	anim := scramble.NewAnimator(term, sched, scramble.DefaultOptions())
	task := anim.Start("Hi")
	sched.drain()
	s.Show()

	if task.State() != scramble.StateSettled {
		t.Fatalf("state = %v", task.State())
	}
	if got := rowText(s, 0, 0, 5); got != "Hi   " {
		t.Errorf("row = %q, want %q", got, "Hi   ")
	}
}

func TestWriterMarkup(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, "title", "")

	w.Render(scramble.Frame{{Text: "G"}, {Text: "#", Scrambling: true}})
	w.Render(scramble.Frame{{Text: "G"}, {Text: "o"}})

	want := "title: G<span class=\"dud\">#</span>\ntitle: Go\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
	if w.Text() != "Go" {
		t.Errorf("text = %q", w.Text())
	}
	if w.Err() != nil {
		t.Errorf("err = %v", w.Err())
	}
}

type failingWriter struct{}

var errBroken = errors.New("broken pipe")

func (failingWriter) Write([]byte) (int, error) { return 0, errBroken }

func TestWriterKeepsFirstError(t *testing.T) {
	w := NewWriter(failingWriter{}, "sub", "")
	w.Render(scramble.Frame{{Text: "a"}})
	w.Render(scramble.Frame{{Text: "b"}})

	if !errors.Is(w.Err(), errBroken) {
		t.Errorf("err = %v, want wrapped errBroken", w.Err())
	}
	if w.Text() != "b" {
		t.Errorf("text = %q, rendering should continue after errors", w.Text())
	}
}
