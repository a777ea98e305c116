package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/scramble/audio"
	"github.com/lixenwraith/scramble/config"
	"github.com/lixenwraith/scramble/core"
	"github.com/lixenwraith/scramble/frameclock"
	"github.com/lixenwraith/scramble/scramble"
	"github.com/lixenwraith/scramble/sequence"
	"github.com/lixenwraith/scramble/surface"
)

const statusLine = "q quit  r replay  p pause"

var (
	configFlag   = flag.String("config", "", "Path to a YAML intro config (built-in intro when empty)")
	debugFlag    = flag.Bool("debug", false, "Write debug log to logs/scramble.log")
	headlessFlag = flag.Bool("headless", false, "Print frames as markup lines instead of drawing to the terminal")
	noAudioFlag  = flag.Bool("no-audio", false, "Disable the settle cue")
)

func main() {
	flag.Parse()

	cfg := config.Default()
	if *configFlag != "" {
		loaded, err := config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	if logFile := setupLogging(*debugFlag || cfg.Debug); logFile != nil {
		defer logFile.Close()
	}
	log.Printf("[main] starting: %d surfaces, frame interval %v", len(cfg.Surfaces), cfg.Frame.Interval)

	loop := frameclock.NewLoop(cfg.Frame.Interval, nil)

	var cue *audio.CuePlayer
	if cfg.AudioEnabled() && !*noAudioFlag && !*headlessFlag {
		cue = audio.NewCuePlayer(cfg.Audio.Frequency, cfg.Audio.Volume)
		if err := cue.Init(); err != nil {
			log.Printf("[main] audio disabled: %v", err)
		}
		defer cue.Close()
	}

	var err error
	if *headlessFlag {
		err = runHeadless(cfg, loop)
	} else {
		err = runTerminal(cfg, loop, cue)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// buildDirector wires one animator and one phrase chain per configured surface
func buildDirector(cfg *config.Config, loop *frameclock.Loop, surfaces []scramble.Surface, cue *audio.CuePlayer) *sequence.Director {
	chains := make([]*sequence.Chain, len(cfg.Surfaces))
	for i, sc := range cfg.Surfaces {
		anim := scramble.NewAnimator(surfaces[i], loop, cfg.Options())

		c := sequence.NewChain(sc.Name, anim, sc.Phrases)
		c.StartDelay = sc.StartDelay
		c.PhraseDelay = sc.PhraseDelay
		c.Loop = sc.Loop
		if cue != nil {
			c.OnSettled = func(string) { cue.PlaySettle() }
		}
		chains[i] = c
	}
	return sequence.NewDirector(loop, chains...)
}

func runHeadless(cfg *config.Config, loop *frameclock.Loop) error {
	writers := make([]*surface.Writer, len(cfg.Surfaces))
	surfaces := make([]scramble.Surface, len(cfg.Surfaces))
	for i, sc := range cfg.Surfaces {
		writers[i] = surface.NewWriter(os.Stdout, sc.Name, sc.Initial)
		surfaces[i] = writers[i]
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	director := buildDirector(cfg, loop, surfaces, nil)
	director.Start()
	done := director.Done()

	core.Go(func() {
		select {
		case <-done:
			cancel()
		case <-ctx.Done():
		}
	})

	if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	var errs []error
	for _, w := range writers {
		errs = append(errs, w.Err())
	}
	return errors.Join(errs...)
}

func runTerminal(cfg *config.Config, loop *frameclock.Loop, cue *audio.CuePlayer) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	// Panic recovery: restore the terminal before printing the trace
	core.SetCrashRestore(screen.Fini)
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	screen.Clear()

	terms := make([]*surface.Term, len(cfg.Surfaces))
	surfaces := make([]scramble.Surface, len(cfg.Surfaces))
	for i, sc := range cfg.Surfaces {
		t := surface.NewTerm(screen, sc.X, sc.Y, sc.Width, sc.Initial)
		if sc.Color != "" {
			t.Plain = tcell.StyleDefault.Foreground(tcell.GetColor(sc.Color))
		}
		if sc.ScrambleColor != "" {
			t.Scramble = tcell.StyleDefault.Foreground(tcell.GetColor(sc.ScrambleColor)).Dim(true)
		}
		t.Redraw()
		terms[i] = t
		surfaces[i] = t
	}

	redraw := func() {
		screen.Clear()
		for _, t := range terms {
			t.Redraw()
		}
		drawStatus(screen, loop.Paused())
	}
	drawStatus(screen, false)
	screen.Show()

	director := buildDirector(cfg, loop, surfaces, cue)
	director.Start()
	loop.OnTick(func(_ time.Time) { screen.Show() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	core.Go(func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				loop.Post(func() {
					screen.Sync()
					redraw()
					screen.Show()
				})
			case *tcell.EventKey:
				switch {
				case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC, ev.Rune() == 'q':
					cancel()
					return
				case ev.Rune() == 'r':
					log.Printf("[main] replay")
					loop.Post(director.Restart)
				case ev.Rune() == 'p':
					// Pause freezes the loop, so the status repaint happens here
					if loop.Paused() {
						loop.Resume()
					} else {
						loop.Pause()
					}
					drawStatus(screen, loop.Paused())
					screen.Show()
				}
			}
		}
	})

	if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	director.Stop()
	return nil
}

// drawStatus writes the key help on the bottom row
func drawStatus(screen tcell.Screen, paused bool) {
	w, h := screen.Size()
	if h == 0 {
		return
	}
	text := statusLine
	if paused {
		text += "  [paused]"
	}

	style := tcell.StyleDefault.Dim(true)
	col := 0
	for _, r := range text {
		if col >= w {
			break
		}
		screen.SetContent(col, h-1, r, nil, style)
		col += runewidth.RuneWidth(r)
	}
	for ; col < w; col++ {
		screen.SetContent(col, h-1, ' ', nil, tcell.StyleDefault)
	}
}
