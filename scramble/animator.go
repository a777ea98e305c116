package scramble

import (
	"sync/atomic"
	"time"

	"github.com/lixenwraith/scramble/frameclock"
)

// Surface is the destination of rendered frames
type Surface interface {
	// Text returns the currently displayed plain text
	Text() string
	// Render overwrites the displayed content with frame
	Render(frame Frame)
}

// Scheduler delivers per-frame callbacks, frameclock.Loop implements it
type Scheduler interface {
	RequestFrame(fn func(now time.Time)) frameclock.FrameID
	CancelFrame(id frameclock.FrameID)
}

// Stats counts animator activity
type Stats struct {
	FramesRendered  int64
	TasksStarted    int64
	TasksSettled    int64
	TasksSuperseded int64
}

// Animator drives scramble transitions on one surface, at most one task at a time
// Start and the frame callbacks must run on the scheduler goroutine
type Animator struct {
	surface Surface
	sched   Scheduler
	opts    Options
	glyphs  []string

	current *Task

	framesRendered  atomic.Int64
	tasksStarted    atomic.Int64
	tasksSettled    atomic.Int64
	tasksSuperseded atomic.Int64
}

// NewAnimator creates an animator for surface scheduled on sched
func NewAnimator(surface Surface, sched Scheduler, opts Options) *Animator {
	opts = opts.normalized()
	return &Animator{
		surface: surface,
		sched:   sched,
		opts:    opts,
		glyphs:  Segment(opts.Glyphs),
	}
}

// Surface returns the animated surface
func (a *Animator) Surface() Surface {
	return a.surface
}

// Current returns the most recently started task, nil before the first Start
func (a *Animator) Current() *Task {
	return a.current
}

// Start begins a transition from the surface's current text to target
// A running task on this animator is superseded first: its pending frame is canceled
// and its continuations are dropped. Frame 0 renders before Start returns.
func (a *Animator) Start(target string) *Task {
	if prev := a.current; prev != nil && prev.state == StateRunning {
		a.sched.CancelFrame(prev.pending)
		prev.supersede()
		a.tasksSuperseded.Add(1)
	}

	source := a.surface.Text()
	t := newTask(source, target, buildSlots(Segment(source), Segment(target), a.opts))
	a.current = t
	a.tasksStarted.Add(1)

	a.step(t)
	return t
}

// step renders one frame of t and either settles it or requests the next frame
func (a *Animator) step(t *Task) {
	if t.state != StateRunning {
		return
	}

	frame, complete := t.render(a.opts.ChangeChance, a.glyphs, a.opts.Rand)
	a.surface.Render(frame)
	a.framesRendered.Add(1)

	if complete {
		a.tasksSettled.Add(1)
		t.settle()
		return
	}

	t.pending = a.sched.RequestFrame(func(time.Time) { a.step(t) })
	t.frame++
}

// Stats returns a snapshot of the counters
func (a *Animator) Stats() Stats {
	return Stats{
		FramesRendered:  a.framesRendered.Load(),
		TasksStarted:    a.tasksStarted.Load(),
		TasksSettled:    a.tasksSettled.Load(),
		TasksSuperseded: a.tasksSuperseded.Load(),
	}
}
