// SPDX-License-Identifier: EPL-2.0

package device

import (
	"io"
	"sync"
	"time"

	"github.com/ik5/audmix/formats/wav"
	"github.com/ik5/audmix/mixer"
)

// Offline renders cycles on demand instead of following a device clock.
type Offline struct {
	frames  int
	buffers int

	mutex sync.Mutex
	queue *Queue
}

// NewOffline renders cycles of AlignFrames(frames) frames.
func NewOffline(frames int) *Offline {
	return &Offline{frames: AlignFrames(frames), buffers: DefaultBuffers}
}

func (o *Offline) Start(f Filler) error {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	if o.queue != nil {
		return ErrAlreadyStarted
	}
	o.queue = NewQueue(f, o.frames, o.buffers)
	return nil
}

// Render runs the given number of cycles and returns the interleaved
// stereo output.
func (o *Offline) Render(cycles int) ([]int16, error) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	if o.queue == nil {
		return nil, ErrNotStarted
	}

	out := make([]int16, 0, max(cycles, 0)*o.frames*mixer.OutputChannels)
	for range cycles {
		out = append(out, o.queue.Next()...)
	}
	return out, nil
}

// Cycles is the number of whole cycles needed to cover d.
func (o *Offline) Cycles(d time.Duration) int {
	frames := int((d*mixer.OutputRate + time.Second - 1) / time.Second)
	return (frames + o.frames - 1) / o.frames
}

// WriteWAV renders enough cycles to cover d and writes them as a WAV file.
func (o *Offline) WriteWAV(w io.Writer, d time.Duration) error {
	samples, err := o.Render(o.Cycles(d))
	if err != nil {
		return err
	}
	return wav.WriteWAV16(w, mixer.OutputRate, mixer.OutputChannels, samples)
}

func (o *Offline) Close() error {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.queue = nil
	return nil
}
