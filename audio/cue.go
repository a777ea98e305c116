// Package audio plays short cues when scramble transitions settle
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate  = beep.SampleRate(48000)
	cueDuration = 120 * time.Millisecond
)

// CuePlayer plays the settle cue through a shared mixer
// Every method is a no-op until Init succeeds, so the intro runs silently without a sound device
type CuePlayer struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	freq        float64
	volume      float64
	initialized bool
	played      int
}

// NewCuePlayer creates a player for a cue starting at freq with peak amplitude volume
func NewCuePlayer(freq, volume float64) *CuePlayer {
	return &CuePlayer{
		mixer:  &beep.Mixer{},
		freq:   freq,
		volume: volume,
	}
}

// Init opens the speaker and attaches the mixer
func (p *CuePlayer) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// PlaySettle queues one cue
func (p *CuePlayer) PlaySettle() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	speaker.Lock()
	p.enqueue()
	speaker.Unlock()
}

// enqueue adds a cue to the mixer, caller holds p.mu
func (p *CuePlayer) enqueue() {
	p.mixer.Add(NewChirp(sampleRate, p.freq, p.volume, cueDuration))
	p.played++
}

// Played returns the number of cues queued since creation
func (p *CuePlayer) Played() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.played
}

// Close stops playback and releases the speaker
func (p *CuePlayer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.initialized = false
}
