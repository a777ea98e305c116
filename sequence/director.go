package sequence

import "github.com/lixenwraith/scramble/core"

// Director starts a set of independent chains together
type Director struct {
	timers Timers
	chains []*Chain
	done   chan struct{}
	stop   chan struct{}
}

// NewDirector creates a director scheduling its chains on timers
func NewDirector(timers Timers, chains ...*Chain) *Director {
	return &Director{
		timers: timers,
		chains: chains,
		done:   make(chan struct{}),
	}
}

// Chains returns the managed chains
func (d *Director) Chains() []*Chain {
	return d.chains
}

// Start begins every chain; each applies its own start delay
func (d *Director) Start() {
	dones := make([]<-chan struct{}, len(d.chains))
	for i, c := range d.chains {
		c.Start(d.timers)
		dones[i] = c.Done()
	}

	done := make(chan struct{})
	stop := make(chan struct{})
	d.done = done
	d.stop = stop

	core.Go(func() {
		for _, ch := range dones {
			select {
			case <-ch:
			case <-stop:
				return
			}
		}
		close(done)
	})
}

// Restart stops pending steps and starts every chain from its first phrase
func (d *Director) Restart() {
	d.Stop()
	d.Start()
}

// Stop cancels every chain's pending step
// The Done channel of the stopped run is never closed
func (d *Director) Stop() {
	for _, c := range d.chains {
		c.Stop()
	}
	if d.stop != nil {
		close(d.stop)
		d.stop = nil
	}
}

// Done is closed once every chain of the current run is done
func (d *Director) Done() <-chan struct{} {
	return d.done
}
