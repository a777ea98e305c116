package scramble

import "github.com/lixenwraith/scramble/frameclock"

// State is the lifecycle position of a task
type State uint8

const (
	StateRunning State = iota
	StateSettled
	StateSuperseded
)

// String implements fmt.Stringer
func (s State) String() string {
	switch s {
	case StateRunning:
		return "Running"
	case StateSettled:
		return "Settled"
	case StateSuperseded:
		return "Superseded"
	default:
		return "Unknown"
	}
}

// Task is one transition of one surface
// Source and target are fixed at creation; slots and frame advance only on the scheduler goroutine
type Task struct {
	source string
	target string
	slots  []Slot
	frame  int
	state  State

	pending frameclock.FrameID
	last    Frame
	done    *Completion
}

func newTask(source, target string, slots []Slot) *Task {
	return &Task{
		source: source,
		target: target,
		slots:  slots,
		state:  StateRunning,
		done:   newCompletion(),
	}
}

// Source returns the surface text captured when the task started
func (t *Task) Source() string { return t.source }

// Target returns the text the task reveals
func (t *Task) Target() string { return t.target }

// Frame returns the index of the frame the task renders next, or rendered last once settled
func (t *Task) Frame() int { return t.frame }

// State returns the lifecycle state
func (t *Task) State() State { return t.state }

// Completion returns the one-shot settle notification
func (t *Task) Completion() *Completion { return t.done }

// LastFrame returns the most recently rendered frame
func (t *Task) LastFrame() Frame { return t.last }

// Slots returns a copy of the slot states
func (t *Task) Slots() []Slot {
	out := make([]Slot, len(t.slots))
	copy(out, t.slots)
	return out
}

// render draws the current frame and reports whether every slot is locked
func (t *Task) render(chance float64, glyphs []string, rng Rand) (Frame, bool) {
	frame, locked := renderSlots(t.slots, t.frame, chance, glyphs, rng)
	t.last = frame
	return frame, locked == len(t.slots)
}

func (t *Task) settle() {
	t.state = StateSettled
	t.done.resolve()
}

func (t *Task) supersede() {
	t.state = StateSuperseded
	t.done.abandon()
}
