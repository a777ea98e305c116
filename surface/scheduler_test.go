package surface

import (
	"time"

	"github.com/lixenwraith/scramble/frameclock"
)

// immediateScheduler queues frame requests and runs them on drain
type immediateScheduler struct {
	next    frameclock.FrameID
	pending map[frameclock.FrameID]func(time.Time)
}

func (s *immediateScheduler) RequestFrame(fn func(time.Time)) frameclock.FrameID {
	if s.pending == nil {
		s.pending = make(map[frameclock.FrameID]func(time.Time))
	}
	s.next++
	s.pending[s.next] = fn
	return s.next
}

func (s *immediateScheduler) CancelFrame(id frameclock.FrameID) {
	delete(s.pending, id)
}

func (s *immediateScheduler) drain() {
	for len(s.pending) > 0 {
		for id, fn := range s.pending {
			delete(s.pending, id)
			fn(time.Time{})
		}
	}
}
