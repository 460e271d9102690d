// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/ik5/audmix/mixer"
	"golang.org/x/term"
)

// rawKeys switches stdin to raw mode and delivers single key presses.
// restore puts the terminal back and must be called before exiting.
func rawKeys(ctx context.Context) (<-chan byte, func(), error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, nil, errors.New("stdin is not a terminal")
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, nil, err
	}

	keys := make(chan byte)
	go func() {
		defer close(keys)
		buf := make([]byte, 1)
		for {
			n, err := os.Stdin.Read(buf)
			if err != nil {
				return
			}
			if n == 0 {
				continue
			}
			select {
			case keys <- buf[0]:
			case <-ctx.Done():
				return
			}
		}
	}()

	restore := func() { _ = term.Restore(fd, oldState) }
	return keys, restore, nil
}

const (
	volumeStep = 0.1
	panStep    = 0.25
)

type controls struct {
	sources []*mixer.Source
	logger  *slog.Logger
}

// handle applies one key press to every source. It returns false when the
// player should quit.
func (c *controls) handle(k byte) bool {
	switch k {
	case 'q', 'Q', 0x03, 0x1b: // q, Ctrl-C, Esc
		return false
	case ' ':
		for _, src := range c.sources {
			switch src.State() {
			case mixer.Playing:
				src.Pause()
			case mixer.Paused:
				src.Resume()
			}
		}
	case 'r', 'R':
		for _, src := range c.sources {
			src.Stop()
			src.Play()
		}
	case '+', '=':
		c.each(func(src *mixer.Source) { src.SetVolume(src.Volume() + volumeStep) })
	case '-', '_':
		c.each(func(src *mixer.Source) { src.SetVolume(src.Volume() - volumeStep) })
	case '<', ',':
		c.each(func(src *mixer.Source) { src.SetPan(max(src.Pan()-panStep, -1)) })
	case '>', '.':
		c.each(func(src *mixer.Source) { src.SetPan(min(src.Pan()+panStep, 1)) })
	default:
		return true
	}

	if len(c.sources) > 0 {
		first := c.sources[0]
		c.logger.Debug("controls",
			"state", first.State(),
			"volume", first.Volume(),
			"pan", first.Pan(),
			"position", first.Position())
	}
	return true
}

func (c *controls) each(f func(*mixer.Source)) {
	for _, src := range c.sources {
		f(src)
	}
}
