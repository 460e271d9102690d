// SPDX-License-Identifier: EPL-2.0

// Command audmix plays sound files through the mixer, or renders the mix
// to a WAV file.
//
//	audmix [flags] file...
//
// While playing in a terminal: space pauses and resumes, r restarts,
// + and - change the volume, < and > pan, q quits.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ik5/audmix"
	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/device"
	"github.com/ik5/audmix/mixer"
	"github.com/ik5/audmix/synth"
)

type config struct {
	loop     bool
	repeat   int
	volume   float64
	pan      float64
	frames   int
	tone     float64
	render   string
	duration time.Duration
	verbose  bool
	files    []string
}

func parseFlags(args []string, stderr io.Writer) (*config, error) {
	fs := flag.NewFlagSet("audmix", flag.ContinueOnError)
	fs.SetOutput(stderr)

	cfg := &config{}
	fs.BoolVar(&cfg.loop, "loop", false, "loop every sound forever")
	fs.IntVar(&cfg.repeat, "repeat", 0, "extra passes for each sound when not looping")
	fs.Float64Var(&cfg.volume, "volume", 1, "volume for every sound")
	fs.Float64Var(&cfg.pan, "pan", 0, "pan for every sound, -1 left to 1 right")
	fs.IntVar(&cfg.frames, "frames", device.DefaultFrames, "device buffer size in frames")
	fs.Float64Var(&cfg.tone, "tone", 0, "add a sine tone at this frequency in Hz")
	fs.StringVar(&cfg.render, "render", "", "write the mix to this WAV file instead of playing it")
	fs.DurationVar(&cfg.duration, "duration", 0, "how long to play or render (default: longest sound)")
	fs.BoolVar(&cfg.verbose, "v", false, "verbose logging")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: audmix [flags] <file.{wav|ogg|mp3|aif|aiff}>...")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	cfg.files = fs.Args()

	if len(cfg.files) == 0 && cfg.tone <= 0 {
		fs.Usage()
		return nil, errors.New("no input files")
	}
	if cfg.repeat < 0 {
		return nil, fmt.Errorf("invalid -repeat %d", cfg.repeat)
	}
	return cfg, nil
}

func (c *config) loopPolicy() mixer.LoopPolicy {
	if c.loop {
		return mixer.LoopForever()
	}
	return mixer.Repeat(c.repeat)
}

func main() {
	cfg, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("audmix failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config, logger *slog.Logger) error {
	frames := device.AlignFrames(cfg.frames)

	var offline *device.Offline
	opts := []audmix.Option{
		audmix.WithLogger(logger),
		audmix.WithBufferFrames(frames),
	}
	if cfg.render != "" {
		offline = device.NewOffline(frames)
		opts = append(opts, audmix.WithBackend(offline))
	}

	m := audmix.New(opts...)
	defer m.Close()

	sources, err := loadAll(ctx, m, cfg.files, cfg.loopPolicy())
	if err != nil {
		return err
	}

	if cfg.tone > 0 {
		tone, err := synth.NewTone(audio.Rate44100, 1, cfg.tone, 0.25)
		if err != nil {
			return err
		}
		src, err := m.AddStream(fmt.Sprintf("tone %g Hz", cfg.tone), tone)
		if err != nil {
			return err
		}
		sources = append(sources, src)
	}

	for _, src := range sources {
		src.SetVolume(cfg.volume)
		src.SetPan(cfg.pan)
		src.Play()
	}

	if err := m.Start(); err != nil {
		return err
	}

	length := cfg.duration
	if length <= 0 {
		length = playLength(sources)
	}

	if offline != nil {
		return render(offline, cfg.render, length, logger)
	}
	return play(ctx, sources, length, logger)
}

// playLength is how long the longest bounded sound plays, or zero if any
// sound never ends.
func playLength(sources []*mixer.Source) time.Duration {
	var longest float64
	for _, src := range sources {
		passes := src.Loop().Repeats() + 1
		if src.Loop().Infinite() {
			return 0
		}
		longest = max(longest, src.Duration()*float64(passes))
	}
	return time.Duration(longest * float64(time.Second))
}

func render(offline *device.Offline, path string, length time.Duration, logger *slog.Logger) error {
	if length <= 0 {
		return errors.New("-duration is required when rendering looping sounds")
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}

	if err := offline.WriteWAV(f, length); err != nil {
		f.Close()
		return fmt.Errorf("rendering %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing output: %w", err)
	}

	logger.Info("mix rendered", "path", path, "duration", length)
	return nil
}

func play(ctx context.Context, sources []*mixer.Source, length time.Duration, logger *slog.Logger) error {
	if length > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, length)
		defer cancel()
	}

	keys, restore, err := rawKeys(ctx)
	if err != nil {
		logger.Debug("no interactive controls", "error", err)
	} else {
		defer restore()
	}

	ctl := &controls{sources: sources, logger: logger}
	for {
		select {
		case <-ctx.Done():
			return nil
		case k, ok := <-keys:
			if !ok {
				keys = nil
				continue
			}
			if !ctl.handle(k) {
				return nil
			}
		}
	}
}
