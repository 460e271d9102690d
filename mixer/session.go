// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"slices"
	"sync"
	"sync/atomic"
)

const (
	// OutputRate of every cycle's buffer in Hz.
	OutputRate = 44100
	// OutputChannels of every cycle's buffer; samples are interleaved L,R.
	OutputChannels = 2
	// FrameAlign is the multiple every cycle's frame count should be, so
	// that the x4 path divides evenly.
	FrameAlign = 4
)

type command struct {
	src    *Source
	remove bool
}

// Session owns the live sources and mixes them into one stereo buffer per
// cycle.
//
// Add and Remove may be called from any goroutine. They only queue a
// command; the queue is drained at the start of the next RunCycle, so the
// live set never changes while a cycle iterates it. RunCycle itself must be
// driven by a single goroutine.
//
// RunCycle does not allocate. Room for newly added sources is reserved by
// Add, and cycles are capped at the size given to NewSession.
type Session struct {
	mu        sync.Mutex
	pending   []command
	adds      int
	spare     []*Source
	dropSeam  bool
	liveCount atomic.Int32

	live    []*Source
	scratch []int16
	prev    []int16
	seam    [OutputChannels]int16
}

// NewSession sizes the scratch buffer for cycles of up to maxFrames frames.
// RunCycle never mixes more than maxFrames frames.
func NewSession(maxFrames int) *Session {
	maxFrames = max(maxFrames, 0)
	return &Session{
		pending: make([]command, 0, 16),
		live:    make([]*Source, 0, 16),
		scratch: make([]int16, maxFrames*OutputChannels),
	}
}

// Add registers src. From now on the session owns it; it is mixed starting
// with the next cycle.
func (s *Session) Add(src *Source) {
	s.enqueue(command{src: src})
}

// Remove unregisters src and releases its samples. A fill already in flight
// completes; the source is excluded from the next cycle on.
func (s *Session) Remove(src *Source) {
	s.enqueue(command{src: src, remove: true})
}

// ResetContinuity forgets the previous output buffer, so the next cycle
// upsamples cold. Use it when the device discards queued buffers.
func (s *Session) ResetContinuity() {
	s.mu.Lock()
	s.dropSeam = true
	s.mu.Unlock()
}

// Len is the number of sources mixed by the most recent cycle.
func (s *Session) Len() int {
	return int(s.liveCount.Load())
}

// Flush applies queued commands without mixing. It must not run
// concurrently with RunCycle; it is meant for teardown once the device has
// stopped.
func (s *Session) Flush() {
	s.drain()
}

func (s *Session) enqueue(c command) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending = append(s.pending, c)
	if c.remove {
		return
	}

	s.adds++
	if need := len(s.live) + s.adds; cap(s.live) < need && cap(s.spare) < need {
		s.spare = make([]*Source, 0, 2*need)
	}
}

func (s *Session) drain() {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Move to the storage Add reserved when the live set may outgrow its own.
	if need := len(s.live) + s.adds; cap(s.live) < need {
		grown := append(s.spare[:0], s.live...)
		clear(s.live)
		s.spare = s.live[:0]
		s.live = grown
	}
	s.adds = 0

	for _, c := range s.pending {
		idx := slices.Index(s.live, c.src)
		switch {
		case c.remove:
			if idx >= 0 {
				last := len(s.live) - 1
				s.live[idx] = s.live[last]
				s.live[last] = nil
				s.live = s.live[:last]
			}
			c.src.release()
		case idx < 0:
			s.live = append(s.live, c.src)
		}
	}
	clear(s.pending)
	s.pending = s.pending[:0]

	if s.dropSeam {
		s.prev = nil
		s.dropSeam = false
	}
	s.liveCount.Store(int32(len(s.live)))
}

// RunCycle mixes every live source into out, which holds frames interleaved
// stereo frames at OutputRate and must be zeroed by the caller. frames is
// capped by the size of out and by the maxFrames given to NewSession. out is
// kept as the continuity reference for the next cycle and must stay
// unmodified until then.
//
// RunCycle never fails. Stopped, paused or exhausted sources add nothing.
func (s *Session) RunCycle(out []int16, frames int) {
	s.drain()

	frames = min(frames, len(out)/OutputChannels, len(s.scratch)/OutputChannels)
	if frames <= 0 {
		return
	}

	scratch := s.scratch[:frames*OutputChannels]

	// Copy the seam first: out may be the same memory as prev.
	var seam []int16
	if n := len(s.prev); n >= OutputChannels {
		copy(s.seam[:], s.prev[n-OutputChannels:])
		seam = s.seam[:]
	}

	for _, src := range s.live {
		if !src.fill(scratch, frames) {
			continue
		}

		nativeFrames := frames / src.scale
		if src.scale > 1 {
			Upsample(scratch, nativeFrames, src.scale, seam)
		}

		left, right := Gains(src.Volume(), src.Pan())
		Accumulate(out, scratch, nativeFrames*src.scale, left, right)
	}

	s.prev = out[:frames*OutputChannels]
}
