package sequence

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/lixenwraith/scramble/frameclock"
	"github.com/lixenwraith/scramble/scramble"
	"github.com/lixenwraith/scramble/surface"
)

const tick = 16 * time.Millisecond

type harness struct {
	tp   *frameclock.MockTimeProvider
	loop *frameclock.Loop
}

func newHarness() *harness {
	tp := frameclock.NewMockTimeProvider(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	return &harness{tp: tp, loop: frameclock.NewLoop(tick, tp)}
}

// run advances mock time by one tick before each of n loop ticks
func (h *harness) run(n int) {
	for range n {
		h.tp.Advance(tick)
		h.loop.Tick()
	}
}

func (h *harness) animator(buf *surface.Buffer, seed uint64) *scramble.Animator {
	opts := scramble.DefaultOptions()
	opts.Rand = rand.New(rand.NewPCG(seed, seed+1))
	return scramble.NewAnimator(buf, h.loop, opts)
}

func isClosed(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}

// TestTwoSurfaceIntroTiming checks the second surface waits for its own start delay
func TestTwoSurfaceIntroTiming(t *testing.T) {
	h := newHarness()

	titleBuf := surface.NewBuffer("")
	subBuf := surface.NewBuffer("")

	title := NewChain("title", h.animator(titleBuf, 1), []string{"Exploring the Multiscale Interactome"})
	sub := NewChain("subtitle", h.animator(subBuf, 2), []string{"Visualize and explore the hidden connections"})
	sub.StartDelay = 1500 * time.Millisecond

	d := NewDirector(h.loop, title, sub)
	d.Start()

	h.loop.Tick()
	if len(titleBuf.Frames()) != 1 {
		t.Fatalf("title frames after first tick = %d, want 1", len(titleBuf.Frames()))
	}

	// 1488ms of loop time: still before the subtitle deadline
	h.run(93)
	if n := len(subBuf.Frames()); n != 0 {
		t.Fatalf("subtitle rendered %d frames before its start delay", n)
	}

	h.run(1)
	if n := len(subBuf.Frames()); n == 0 {
		t.Fatal("subtitle did not start after its start delay")
	}

	h.run(200)
	if titleBuf.Text() != "Exploring the Multiscale Interactome" {
		t.Errorf("title = %q", titleBuf.Text())
	}
	if subBuf.Text() != "Visualize and explore the hidden connections" {
		t.Errorf("subtitle = %q", subBuf.Text())
	}

	select {
	case <-d.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("director not done after both chains settled")
	}
}

// TestChainPhraseDelay checks the next phrase waits PhraseDelay after the previous settles
func TestChainPhraseDelay(t *testing.T) {
	h := newHarness()
	buf := surface.NewBuffer("")
	anim := h.animator(buf, 3)

	c := NewChain("main", anim, []string{"one", "two"})
	var settled []string
	c.OnSettled = func(phrase string) { settled = append(settled, phrase) }
	c.Start(h.loop)

	h.run(1)
	first := anim.Current()
	for first.State() == scramble.StateRunning {
		h.run(1)
	}
	if buf.Text() != "one" {
		t.Fatalf("text after first settle = %q", buf.Text())
	}
	if c.Settled() != 1 {
		t.Errorf("settled = %d, want 1", c.Settled())
	}

	// 784ms after settle: the second phrase has not started
	h.run(49)
	if anim.Current() != first {
		t.Fatal("second phrase started before the phrase delay elapsed")
	}
	h.run(1)
	if anim.Current() == first {
		t.Fatal("second phrase did not start after the phrase delay")
	}
	if anim.Current().Source() != "one" {
		t.Errorf("second source = %q, want one", anim.Current().Source())
	}

	h.run(100)
	if buf.Text() != "two" {
		t.Errorf("final text = %q, want two", buf.Text())
	}
	if c.Settled() != 2 {
		t.Errorf("settled = %d, want 2", c.Settled())
	}
	if !isClosed(c.Done()) {
		t.Error("chain not done after last phrase")
	}
	if len(settled) != 2 || settled[0] != "one" || settled[1] != "two" {
		t.Errorf("settle hook saw %v, want [one two]", settled)
	}

	// No further phrases are scheduled once the list is exhausted
	h.run(100)
	if anim.Stats().TasksStarted != 2 {
		t.Errorf("tasks started = %d, want 2", anim.Stats().TasksStarted)
	}
	if frames, timers := h.loop.Pending(); frames != 0 || timers != 0 {
		t.Errorf("pending = (%d, %d), want idle loop", frames, timers)
	}
}

// TestChainLoop checks a looping chain cycles and never reports done
func TestChainLoop(t *testing.T) {
	h := newHarness()
	buf := surface.NewBuffer("")
	anim := h.animator(buf, 4)

	c := NewChain("loop", anim, []string{"a", "b"})
	c.Loop = true
	c.PhraseDelay = 100 * time.Millisecond
	c.Start(h.loop)

	h.run(1000)

	if c.Settled() < 4 {
		t.Errorf("settled = %d, want several cycles", c.Settled())
	}
	if isClosed(c.Done()) {
		t.Error("looping chain reported done")
	}

	c.Stop()
	started := anim.Stats().TasksStarted
	h.run(500)
	if anim.Stats().TasksStarted != started {
		t.Error("chain kept starting phrases after Stop")
	}
}

// TestDirectorRestart checks a restart abandons the old run and replays from the first phrase
func TestDirectorRestart(t *testing.T) {
	h := newHarness()
	buf := surface.NewBuffer("")
	anim := h.animator(buf, 5)

	c := NewChain("main", anim, []string{"first", "second"})
	d := NewDirector(h.loop, c)
	d.Start()
	oldDone := d.Done()

	h.run(3)
	inFlight := anim.Current()

	d.Restart()
	h.run(1)

	if inFlight.State() != scramble.StateSuperseded {
		t.Errorf("in-flight task state = %v, want Superseded", inFlight.State())
	}
	if anim.Current().Target() != "first" {
		t.Errorf("restart target = %q, want first", anim.Current().Target())
	}

	h.run(400)
	if buf.Text() != "second" {
		t.Errorf("final text = %q, want second", buf.Text())
	}
	if c.Settled() != 2 {
		t.Errorf("settled = %d, want 2 in the restarted run", c.Settled())
	}

	select {
	case <-d.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("restarted run not done")
	}
	if isClosed(oldDone) {
		t.Error("done channel of the abandoned run was closed")
	}
}

func TestChainWithoutPhrases(t *testing.T) {
	h := newHarness()
	c := NewChain("empty", h.animator(surface.NewBuffer(""), 6), nil)
	c.Start(h.loop)

	if !isClosed(c.Done()) {
		t.Error("empty chain should be done immediately")
	}
	if _, timers := h.loop.Pending(); timers != 0 {
		t.Errorf("empty chain scheduled %d timers", timers)
	}
}

func TestChainCopiesPhrases(t *testing.T) {
	h := newHarness()
	phrases := []string{"x"}
	c := NewChain("copy", h.animator(surface.NewBuffer(""), 7), phrases)
	phrases[0] = "mutated"

	if got := c.Phrases(); got[0] != "x" {
		t.Errorf("phrases = %v, chain must not alias the caller's slice", got)
	}
}
