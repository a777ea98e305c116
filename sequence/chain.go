// Package sequence orchestrates phrase chains on top of scramble animators
package sequence

import (
	"log"
	"time"

	"github.com/lixenwraith/scramble/frameclock"
	"github.com/lixenwraith/scramble/scramble"
)

// DefaultPhraseDelay is the pause between a phrase settling and the next one starting
const DefaultPhraseDelay = 800 * time.Millisecond

// Timers schedules delayed callbacks on the animation goroutine, frameclock.Loop implements it
type Timers interface {
	After(d time.Duration, fn func()) frameclock.TimerID
	CancelTimer(id frameclock.TimerID)
}

// Chain plays an ordered phrase list on one animator
// The first phrase starts after StartDelay; each following phrase starts PhraseDelay after
// the previous one settles. With Loop set the list repeats until Stop.
// All methods except Done must run on the timers' goroutine.
type Chain struct {
	Name        string
	StartDelay  time.Duration
	PhraseDelay time.Duration
	Loop        bool

	// OnSettled runs after each phrase settles, before the next one is scheduled
	OnSettled func(phrase string)

	anim    *scramble.Animator
	phrases []string

	timers  Timers
	timer   frameclock.TimerID
	gen     uint64
	next    int
	done    chan struct{}
	settled int
}

// NewChain creates a chain for anim with the default phrase delay
func NewChain(name string, anim *scramble.Animator, phrases []string) *Chain {
	return &Chain{
		Name:        name,
		PhraseDelay: DefaultPhraseDelay,
		anim:        anim,
		phrases:     append([]string(nil), phrases...),
		done:        make(chan struct{}),
	}
}

// Animator returns the animator the chain drives
func (c *Chain) Animator() *scramble.Animator {
	return c.anim
}

// Phrases returns a copy of the phrase list
func (c *Chain) Phrases() []string {
	return append([]string(nil), c.phrases...)
}

// Settled returns how many phrases settled in the current run
func (c *Chain) Settled() int {
	return c.settled
}

// Done is closed when the final phrase of the current run settles; never for a looping chain
func (c *Chain) Done() <-chan struct{} {
	return c.done
}

// Start begins a new run, abandoning any pending step of a previous run
func (c *Chain) Start(timers Timers) {
	c.Stop()

	c.timers = timers
	c.next = 0
	c.settled = 0
	c.done = make(chan struct{})

	gen := c.gen
	if len(c.phrases) == 0 {
		close(c.done)
		return
	}
	c.timer = timers.After(c.StartDelay, func() { c.advance(gen) })
}

// Stop cancels the pending step; a running transition finishes on its own but triggers nothing
func (c *Chain) Stop() {
	c.gen++
	if c.timers != nil && c.timer != 0 {
		c.timers.CancelTimer(c.timer)
	}
	c.timer = 0
}

func (c *Chain) advance(gen uint64) {
	if gen != c.gen {
		return
	}
	c.timer = 0

	if c.next >= len(c.phrases) {
		c.next = 0
	}
	phrase := c.phrases[c.next]
	c.next++

	log.Printf("[sequence] %s: phrase %d/%d", c.Name, c.next, len(c.phrases))
	task := c.anim.Start(phrase)
	task.Completion().Then(func() { c.onSettled(gen, phrase) })
}

func (c *Chain) onSettled(gen uint64, phrase string) {
	if gen != c.gen {
		return
	}
	c.settled++
	if c.OnSettled != nil {
		c.OnSettled(phrase)
	}

	if c.next >= len(c.phrases) && !c.Loop {
		log.Printf("[sequence] %s: complete", c.Name)
		close(c.done)
		return
	}
	c.timer = c.timers.After(c.PhraseDelay, func() { c.advance(gen) })
}
