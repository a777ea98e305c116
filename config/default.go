package config

import (
	"time"

	"github.com/lixenwraith/scramble/scramble"
)

const (
	DefaultFrameInterval = 16 * time.Millisecond
	DefaultPhraseDelay   = 800 * time.Millisecond
	DefaultCueFrequency  = 660.0
	DefaultCueVolume     = 0.3
)

// Default returns the stock two-line intro
func Default() *Config {
	chance := scramble.DefaultChangeChance
	enabled := true
	return &Config{
		Frame: FrameConfig{Interval: DefaultFrameInterval},
		Scramble: ScrambleConfig{
			RevealWindow: scramble.DefaultRevealWindow,
			LockSpan:     scramble.DefaultLockSpan,
			ChangeChance: &chance,
			Glyphs:       scramble.DefaultGlyphs,
		},
		Audio: AudioConfig{
			Enabled:   &enabled,
			Frequency: DefaultCueFrequency,
			Volume:    DefaultCueVolume,
		},
		Surfaces: []SurfaceConfig{
			{
				Name:          "title",
				X:             2,
				Y:             1,
				Width:         76,
				Phrases:       []string{"Exploring the Multiscale Interactome"},
				PhraseDelay:   DefaultPhraseDelay,
				Color:         "#dd614a",
				ScrambleColor: "#73a580",
			},
			{
				Name:          "subtitle",
				X:             2,
				Y:             3,
				Width:         76,
				Phrases:       []string{"Visualize and explore the hidden connections between diseases and potential drug treatments."},
				StartDelay:    1500 * time.Millisecond,
				PhraseDelay:   DefaultPhraseDelay,
				Color:         "#c8c8c8",
				ScrambleColor: "#73a580",
			},
		},
	}
}
