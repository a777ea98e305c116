package frameclock

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultFrameInterval approximates one display refresh
const DefaultFrameInterval = 16 * time.Millisecond

// FrameID identifies a pending frame request
type FrameID uint64

// TimerID identifies a pending timer
type TimerID uint64

type timer struct {
	id       TimerID
	deadline time.Time
	fn       func()
}

// Loop is a single-threaded cooperative scheduler
// Frame requests behave like a display refresh callback: each fires once, on the next Tick
// Timers fire on the first Tick at or past their deadline in loop time
// Every callback runs on the goroutine driving Tick or Run
type Loop struct {
	mu       sync.Mutex
	clock    *PausableClock
	interval time.Duration

	nextFrameID FrameID
	frames      map[FrameID]func(time.Time)
	frameOrder  []FrameID

	nextTimerID TimerID
	timers      map[TimerID]*timer

	onTick []func(time.Time)

	frameCount atomic.Uint64
}

// NewLoop creates a loop ticking every interval against source
// A nil source uses the monotonic system clock, a non-positive interval uses DefaultFrameInterval
func NewLoop(interval time.Duration, source TimeProvider) *Loop {
	if source == nil {
		source = NewMonotonicTimeProvider()
	}
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &Loop{
		clock:    NewPausableClock(source),
		interval: interval,
		frames:   make(map[FrameID]func(time.Time)),
		timers:   make(map[TimerID]*timer),
	}
}

// Interval returns the tick period used by Run
func (l *Loop) Interval() time.Duration {
	return l.interval
}

// Now returns loop time, which excludes paused spans
func (l *Loop) Now() time.Time {
	return l.clock.Now()
}

// RequestFrame schedules fn for the next Tick
func (l *Loop) RequestFrame(fn func(now time.Time)) FrameID {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.nextFrameID++
	id := l.nextFrameID
	l.frames[id] = fn
	l.frameOrder = append(l.frameOrder, id)
	return id
}

// CancelFrame drops a pending frame request; unknown or already fired ids are ignored
func (l *Loop) CancelFrame(id FrameID) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.frames, id)
}

// After schedules fn to run once loop time has advanced by d
func (l *Loop) After(d time.Duration, fn func()) TimerID {
	deadline := l.clock.Now().Add(d)

	l.mu.Lock()
	defer l.mu.Unlock()

	l.nextTimerID++
	id := l.nextTimerID
	l.timers[id] = &timer{id: id, deadline: deadline, fn: fn}
	return id
}

// Post runs fn on the loop goroutine during the next Tick
// Safe to call from any goroutine
func (l *Loop) Post(fn func()) TimerID {
	return l.After(0, fn)
}

// CancelTimer drops a pending timer; unknown or already fired ids are ignored
func (l *Loop) CancelTimer(id TimerID) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.timers, id)
}

// OnTick registers a hook run at the end of every unpaused Tick
func (l *Loop) OnTick(fn func(now time.Time)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onTick = append(l.onTick, fn)
}

// Pause freezes loop time; Tick becomes a no-op until Resume
func (l *Loop) Pause() {
	l.clock.Pause()
}

// Resume continues loop time from where it was paused
func (l *Loop) Resume() {
	l.clock.Resume()
}

// Paused reports whether the loop is paused
func (l *Loop) Paused() bool {
	return l.clock.IsPaused()
}

// FrameCount returns the number of unpaused ticks executed
func (l *Loop) FrameCount() uint64 {
	return l.frameCount.Load()
}

// Pending returns the number of outstanding frame requests and timers
func (l *Loop) Pending() (frames, timers int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.frames), len(l.timers)
}

// Tick executes one frame step: due timers first, then the frame requests queued before this tick
// Anything scheduled by a callback waits for a later Tick
func (l *Loop) Tick() {
	if l.clock.IsPaused() {
		return
	}
	now := l.clock.Now()

	l.mu.Lock()
	var due []*timer
	for _, t := range l.timers {
		if !t.deadline.After(now) {
			due = append(due, t)
		}
	}
	batch := l.frameOrder
	l.frameOrder = nil
	hooks := l.onTick
	l.mu.Unlock()

	slices.SortFunc(due, func(a, b *timer) int {
		if c := a.deadline.Compare(b.deadline); c != 0 {
			return c
		}
		return cmp.Compare(a.id, b.id)
	})

	for _, t := range due {
		// A callback earlier in this tick may have canceled it
		if !l.takeTimer(t.id) {
			continue
		}
		t.fn()
	}

	for _, id := range batch {
		fn, ok := l.takeFrame(id)
		if !ok {
			continue
		}
		fn(now)
	}

	l.frameCount.Add(1)

	for _, hook := range hooks {
		hook(now)
	}
}

func (l *Loop) takeTimer(id TimerID) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.timers[id]; !ok {
		return false
	}
	delete(l.timers, id)
	return true
}

func (l *Loop) takeFrame(id FrameID) (func(time.Time), bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn, ok := l.frames[id]
	if ok {
		delete(l.frames, id)
	}
	return fn, ok
}

// Run drives Tick at the loop interval until ctx is done
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			l.Tick()
		}
	}
}
