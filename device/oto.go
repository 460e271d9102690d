//go:build !headless

// SPDX-License-Identifier: EPL-2.0

package device

import (
	"fmt"
	"sync"

	"github.com/ebitengine/oto/v3"
	"github.com/ik5/audmix/mixer"
)

// Oto plays through the system audio device. The oto context can only be
// created once per process, so it is kept across Close and Start.
type Oto struct {
	frames  int
	buffers int

	mutex  sync.Mutex
	ctx    *oto.Context
	player *oto.Player
}

func NewOto(frames, buffers int) *Oto {
	frames = AlignFrames(frames)
	if buffers <= 0 {
		buffers = DefaultBuffers
	}
	return &Oto{frames: frames, buffers: buffers}
}

func (o *Oto) Start(f Filler) error {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	if o.player != nil {
		return ErrAlreadyStarted
	}

	if o.ctx == nil {
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   mixer.OutputRate,
			ChannelCount: mixer.OutputChannels,
			Format:       oto.FormatSignedInt16LE,
			BufferSize:   Latency(o.frames, o.buffers),
		})
		if err != nil {
			return fmt.Errorf("%w: %w", ErrNoDevice, err)
		}
		<-ready
		o.ctx = ctx
	}

	o.player = o.ctx.NewPlayer(NewReader(NewQueue(f, o.frames, o.buffers)))
	o.player.Play()
	return nil
}

// Err reports an asynchronous device failure, if any.
func (o *Oto) Err() error {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	if o.ctx == nil {
		return nil
	}
	if err := o.ctx.Err(); err != nil {
		return err
	}
	if o.player != nil {
		return o.player.Err()
	}
	return nil
}

func (o *Oto) Close() error {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	if o.player == nil {
		return nil
	}
	err := o.player.Close()
	o.player = nil
	return err
}
