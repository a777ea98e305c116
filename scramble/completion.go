package scramble

import (
	"context"
	"errors"
	"sync"
)

// ErrSuperseded reports that a task was replaced by a newer transition on the same surface
var ErrSuperseded = errors.New("scramble: task superseded by a newer transition")

type completionState uint8

const (
	completionPending completionState = iota
	completionSettled
	completionAbandoned
)

// Completion is the one-shot notification of a task
// Continuations registered with Then run exactly once, on settle, and never for an abandoned task
// Done and Wait observe both outcomes so a waiting goroutine is always released
type Completion struct {
	mu    sync.Mutex
	state completionState
	err   error
	conts []func()
	done  chan struct{}
}

func newCompletion() *Completion {
	return &Completion{done: make(chan struct{})}
}

// Then registers fn to run when the task settles
// Runs fn immediately if already settled; drops it if the task was abandoned
func (c *Completion) Then(fn func()) {
	c.mu.Lock()
	switch c.state {
	case completionSettled:
		c.mu.Unlock()
		fn()
		return
	case completionAbandoned:
		c.mu.Unlock()
		return
	}
	c.conts = append(c.conts, fn)
	c.mu.Unlock()
}

// Settled reports whether the task reached its target
func (c *Completion) Settled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == completionSettled
}

// Done is closed when the task settles or is abandoned
func (c *Completion) Done() <-chan struct{} {
	return c.done
}

// Err returns nil while pending or after settle, ErrSuperseded after abandonment
func (c *Completion) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Wait blocks until the task settles or is abandoned, or ctx is done
func (c *Completion) Wait(ctx context.Context) error {
	select {
	case <-c.done:
		return c.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// resolve fires the continuations; false if already resolved or abandoned
func (c *Completion) resolve() bool {
	c.mu.Lock()
	if c.state != completionPending {
		c.mu.Unlock()
		return false
	}
	c.state = completionSettled
	conts := c.conts
	c.conts = nil
	close(c.done)
	c.mu.Unlock()

	for _, fn := range conts {
		fn()
	}
	return true
}

// abandon releases waiters with ErrSuperseded and discards the continuations
func (c *Completion) abandon() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != completionPending {
		return false
	}
	c.state = completionAbandoned
	c.err = ErrSuperseded
	c.conts = nil
	close(c.done)
	return true
}
