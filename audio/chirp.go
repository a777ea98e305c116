package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// Chirp is a short upward sine sweep with an exponential decay
// It streams exactly its duration worth of samples, then reports drained
type Chirp struct {
	sr      beep.SampleRate
	freq    float64
	volume  float64
	pos     int
	samples int
	phase   float64
}

// NewChirp creates a chirp starting at freq and rising half an octave over d
func NewChirp(sr beep.SampleRate, freq, volume float64, d time.Duration) *Chirp {
	return &Chirp{
		sr:      sr,
		freq:    freq,
		volume:  volume,
		samples: sr.N(d),
	}
}

// Stream implements beep.Streamer
func (c *Chirp) Stream(samples [][2]float64) (n int, ok bool) {
	if c.pos >= c.samples {
		return 0, false
	}

	for i := range samples {
		if c.pos >= c.samples {
			return i, true
		}
		progress := float64(c.pos) / float64(c.samples)
		freq := c.freq * (1 + 0.5*progress)
		c.phase += 2 * math.Pi * freq / float64(c.sr)

		v := c.volume * math.Exp(-5*progress) * math.Sin(c.phase)
		samples[i][0] = v
		samples[i][1] = v
		c.pos++
	}
	return len(samples), true
}

// Err implements beep.Streamer
func (c *Chirp) Err() error {
	return nil
}
