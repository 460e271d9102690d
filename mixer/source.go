// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/ik5/audmix/audio"
)

// State of a source's playback.
type State int32

const (
	Stopped State = iota
	Playing
	Paused
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	}
	return "unknown"
}

// Source is one decoded sound: a native-rate sample buffer (or a generator),
// a playback cursor, loop policy, volume and pan.
//
// Volume, pan and state are plain atomics and may be changed from any
// goroutine; a cycle sees the new value no later than the next buffer.
// Cursor and loop policy are guarded by mu, which the mixing cycle holds
// while filling, so Seek and Stop never interleave with a fill.
type Source struct {
	channels int
	rate     int
	scale    int
	duration float64

	mu      sync.Mutex
	samples []int16
	stream  audio.Streamer
	loop    LoopPolicy
	// cursor counts interleaved native samples, not frames.
	cursor int

	state  atomic.Int32
	volume atomic.Uint64
	pan    atomic.Uint64
}

// NewSource validates pcm and wraps it. The source takes ownership of
// pcm.Samples and starts Stopped at volume 1, pan 0.
func NewSource(pcm *audio.PCM, loop LoopPolicy) (*Source, error) {
	if err := pcm.Validate(); err != nil {
		return nil, err
	}

	s := newSource(pcm.SampleRate, pcm.Channels)
	s.samples = pcm.Samples
	s.loop = loop
	s.duration = pcm.Seconds()
	return s, nil
}

// NewStreamSource wraps a generator. Stream sources have no end and ignore
// the loop policy; their duration is 0.
func NewStreamSource(st audio.Streamer) (*Source, error) {
	if err := audio.CheckFormat(st.SampleRate(), st.Channels()); err != nil {
		return nil, err
	}

	s := newSource(st.SampleRate(), st.Channels())
	s.stream = st
	s.loop = LoopForever()
	return s, nil
}

func newSource(rate, channels int) *Source {
	s := &Source{
		channels: channels,
		rate:     rate,
		scale:    OutputRate / rate,
	}
	s.SetVolume(1)
	return s
}

func (s *Source) Channels() int   { return s.channels }
func (s *Source) SampleRate() int { return s.rate }

// ScaleFactor is OutputRate divided by the native rate: 1, 2 or 4.
func (s *Source) ScaleFactor() int { return s.scale }

// Duration of one pass in seconds, fixed at load.
func (s *Source) Duration() float64 { return s.duration }

func (s *Source) State() State { return State(s.state.Load()) }

// IsPlaying stays true after a bounded source runs out of repeats; it is
// silent, not stopped.
func (s *Source) IsPlaying() bool { return s.State() == Playing }

// Play starts or resumes playback from the current cursor.
func (s *Source) Play() {
	s.state.Store(int32(Playing))
}

// Pause freezes the cursor. It has no effect unless the source is playing.
func (s *Source) Pause() {
	s.state.CompareAndSwap(int32(Playing), int32(Paused))
}

// Resume continues a paused source.
func (s *Source) Resume() {
	s.state.CompareAndSwap(int32(Paused), int32(Playing))
}

// Stop halts playback and rewinds. Generators that can reset are reset.
func (s *Source) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Store(int32(Stopped))
	s.cursor = 0
	if r, ok := s.stream.(audio.Resetter); ok {
		r.Reset()
	}
}

// Reset rewinds the cursor without changing the state.
func (s *Source) Reset() {
	s.mu.Lock()
	s.cursor = 0
	s.mu.Unlock()
}

// Seek moves the cursor to the frame nearest t seconds.
func (s *Source) Seek(t float64) {
	frame := max(int(math.Round(t*float64(s.rate))), 0)

	s.mu.Lock()
	s.cursor = frame * s.channels
	s.mu.Unlock()
}

// Cursor is the playback position in interleaved native samples.
func (s *Source) Cursor() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cursor
}

// Position reports seconds into the current pass. A bounded source that has
// finished reports its duration.
func (s *Source) Position() float64 {
	s.mu.Lock()
	cursor, total, passes := s.cursor, len(s.samples), s.loop.passes()
	s.mu.Unlock()

	if total == 0 {
		return float64(cursor/s.channels) / float64(s.rate)
	}
	if passes > 0 && cursor >= passes*total {
		return s.duration
	}
	return float64((cursor%total)/s.channels) / float64(s.rate)
}

func (s *Source) Loop() LoopPolicy {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loop
}

// SetLoop changes the loop policy. Stream sources keep looping forever.
func (s *Source) SetLoop(l LoopPolicy) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stream == nil {
		s.loop = l
	}
}

func (s *Source) Volume() float64 {
	return math.Float64frombits(s.volume.Load())
}

// SetVolume sets the linear gain. There is no upper bound; negative values
// are treated as 0. NaN and infinite values are ignored.
func (s *Source) SetVolume(v float64) {
	if !finite(v) {
		return
	}
	s.volume.Store(math.Float64bits(max(v, 0)))
}

func (s *Source) Pan() float64 {
	return math.Float64frombits(s.pan.Load())
}

// SetPan sets the stereo balance, nominally in [-1,1]. See Gains for how
// values outside that range behave. NaN and infinite values are ignored.
func (s *Source) SetPan(p float64) {
	if !finite(p) {
		return
	}
	s.pan.Store(math.Float64bits(p))
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// release drops the sample data once the session no longer mixes s.
func (s *Source) release() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Store(int32(Stopped))
	s.samples = nil
	s.stream = nil
}

// fill writes frames/scale native stereo frames into dst and advances the
// cursor. It reports false when there is nothing to mix; dst is then left
// untouched. Mono is duplicated to both channels. At most one fill per
// source may run at a time.
func (s *Source) fill(dst []int16, frames int) bool {
	if s.State() != Playing {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	nativeFrames := frames / s.scale
	n := nativeFrames * s.channels

	if s.stream != nil {
		s.fillStream(dst, nativeFrames)
		s.cursor += n
		return true
	}

	total := len(s.samples)
	if total == 0 {
		return false
	}

	limit := s.loop.passes() * total
	if limit > 0 && s.cursor >= limit {
		s.cursor += n
		return false
	}

	if s.channels == 2 {
		for j := range n {
			idx := s.cursor + j
			if limit > 0 && idx >= limit {
				dst[j] = 0
				continue
			}
			dst[j] = s.samples[idx%total]
		}
	} else {
		for j := range nativeFrames {
			idx := s.cursor + j
			var v int16
			if limit == 0 || idx < limit {
				v = s.samples[idx%total]
			}
			dst[2*j] = v
			dst[2*j+1] = v
		}
	}

	s.cursor += n
	return true
}

func (s *Source) fillStream(dst []int16, nativeFrames int) {
	want := nativeFrames * s.channels
	got := min(max(s.stream.Stream(dst[:want]), 0), want)
	clear(dst[got:want])

	if s.channels == 1 {
		// Back to front so each sample is read before its slot is reused.
		for j := nativeFrames - 1; j >= 0; j-- {
			v := dst[j]
			dst[2*j] = v
			dst[2*j+1] = v
		}
	}
}
