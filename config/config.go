// Package config loads the intro configuration from YAML
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/scramble/scramble"
)

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("invalid config")

// Config is the full intro configuration
type Config struct {
	Frame    FrameConfig     `yaml:"frame"`
	Scramble ScrambleConfig  `yaml:"scramble"`
	Audio    AudioConfig     `yaml:"audio"`
	Debug    bool            `yaml:"debug"`
	Surfaces []SurfaceConfig `yaml:"surfaces"`
}

// FrameConfig controls the frame loop
type FrameConfig struct {
	Interval time.Duration `yaml:"interval"`
}

// ScrambleConfig controls slot timing and placeholders
type ScrambleConfig struct {
	RevealWindow int      `yaml:"reveal_window"`
	LockSpan     int      `yaml:"lock_span"`
	ChangeChance *float64 `yaml:"change_chance"` // nil keeps the default, 0 is a valid choice
	Glyphs       string   `yaml:"glyphs"`
}

// AudioConfig controls the settle cue
type AudioConfig struct {
	Enabled   *bool   `yaml:"enabled"` // nil means enabled
	Frequency float64 `yaml:"frequency"`
	Volume    float64 `yaml:"volume"`
}

// SurfaceConfig describes one animated text region and its phrase chain
type SurfaceConfig struct {
	Name          string        `yaml:"name"`
	X             int           `yaml:"x"`
	Y             int           `yaml:"y"`
	Width         int           `yaml:"width"`
	Initial       string        `yaml:"initial"`
	Phrases       []string      `yaml:"phrases"`
	StartDelay    time.Duration `yaml:"start_delay"`
	PhraseDelay   time.Duration `yaml:"phrase_delay"`
	Loop          bool          `yaml:"loop"`
	Color         string        `yaml:"color"`
	ScrambleColor string        `yaml:"scramble_color"`
}

// Load reads and parses the configuration file at path
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML, fills defaults, normalizes texts and validates the result
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	cfg.applyDefaults()
	cfg.normalizeText()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Frame.Interval == 0 {
		c.Frame.Interval = DefaultFrameInterval
	}
	if c.Scramble.RevealWindow == 0 {
		c.Scramble.RevealWindow = scramble.DefaultRevealWindow
	}
	if c.Scramble.LockSpan == 0 {
		c.Scramble.LockSpan = scramble.DefaultLockSpan
	}
	if c.Scramble.ChangeChance == nil {
		chance := scramble.DefaultChangeChance
		c.Scramble.ChangeChance = &chance
	}
	if c.Scramble.Glyphs == "" {
		c.Scramble.Glyphs = scramble.DefaultGlyphs
	}
	if c.Audio.Enabled == nil {
		enabled := true
		c.Audio.Enabled = &enabled
	}
	if c.Audio.Frequency == 0 {
		c.Audio.Frequency = DefaultCueFrequency
	}
	if c.Audio.Volume == 0 {
		c.Audio.Volume = DefaultCueVolume
	}
	if len(c.Surfaces) == 0 {
		c.Surfaces = Default().Surfaces
	}
	for i := range c.Surfaces {
		s := &c.Surfaces[i]
		if s.Name == "" {
			s.Name = fmt.Sprintf("surface-%d", i+1)
		}
		if s.PhraseDelay == 0 {
			s.PhraseDelay = DefaultPhraseDelay
		}
	}
}

// normalizeText folds phrases to NFC so composed and decomposed spellings slot identically
func (c *Config) normalizeText() {
	for i := range c.Surfaces {
		s := &c.Surfaces[i]
		s.Initial = norm.NFC.String(s.Initial)
		for j, p := range s.Phrases {
			s.Phrases[j] = norm.NFC.String(p)
		}
	}
}

// Validate rejects values the animator or loop cannot run with
func (c *Config) Validate() error {
	if c.Frame.Interval < 0 {
		return fmt.Errorf("%w: frame.interval %v is negative", ErrInvalid, c.Frame.Interval)
	}
	if c.Scramble.RevealWindow < 0 {
		return fmt.Errorf("%w: scramble.reveal_window %d is negative", ErrInvalid, c.Scramble.RevealWindow)
	}
	if c.Scramble.LockSpan < 0 {
		return fmt.Errorf("%w: scramble.lock_span %d is negative", ErrInvalid, c.Scramble.LockSpan)
	}
	if ch := c.Scramble.ChangeChance; ch != nil && (*ch < 0 || *ch > 1) {
		return fmt.Errorf("%w: scramble.change_chance %v outside [0,1]", ErrInvalid, *ch)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("%w: audio.volume %v outside [0,1]", ErrInvalid, c.Audio.Volume)
	}
	if c.Audio.Frequency < 0 {
		return fmt.Errorf("%w: audio.frequency %v is negative", ErrInvalid, c.Audio.Frequency)
	}
	if len(c.Surfaces) == 0 {
		return fmt.Errorf("%w: no surfaces configured", ErrInvalid)
	}

	seen := make(map[string]bool, len(c.Surfaces))
	for _, s := range c.Surfaces {
		if seen[s.Name] {
			return fmt.Errorf("%w: duplicate surface name %q", ErrInvalid, s.Name)
		}
		seen[s.Name] = true
		if s.X < 0 || s.Y < 0 || s.Width < 0 {
			return fmt.Errorf("%w: surface %q has negative geometry", ErrInvalid, s.Name)
		}
		if s.StartDelay < 0 || s.PhraseDelay < 0 {
			return fmt.Errorf("%w: surface %q has a negative delay", ErrInvalid, s.Name)
		}
		if len(s.Phrases) == 0 {
			return fmt.Errorf("%w: surface %q has no phrases", ErrInvalid, s.Name)
		}
	}
	return nil
}

// AudioEnabled reports whether the settle cue should play
func (c *Config) AudioEnabled() bool {
	return c.Audio.Enabled == nil || *c.Audio.Enabled
}

// Options converts the scramble section into animator options
func (c *Config) Options() scramble.Options {
	opts := scramble.DefaultOptions()
	opts.RevealWindow = c.Scramble.RevealWindow
	opts.LockSpan = c.Scramble.LockSpan
	opts.Glyphs = c.Scramble.Glyphs
	if c.Scramble.ChangeChance != nil {
		opts.ChangeChance = *c.Scramble.ChangeChance
	}
	return opts
}
