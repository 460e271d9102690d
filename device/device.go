// SPDX-License-Identifier: EPL-2.0

package device

import (
	"time"

	"github.com/ik5/audmix/mixer"
)

const (
	// DefaultFrames is the size of one hardware buffer in stereo frames.
	DefaultFrames = 2048
	// DefaultBuffers is how many hardware buffers alternate.
	DefaultBuffers = 2
)

// Filler renders one cycle of interleaved stereo into a zeroed buffer.
// *mixer.Session implements it.
type Filler interface {
	RunCycle(out []int16, frames int)
}

// Backend drives a Filler from some output clock.
type Backend interface {
	Start(f Filler) error
	Close() error
}

// AlignFrames rounds n up to a multiple of mixer.FrameAlign, so every cycle
// divides evenly on the x4 path. Non-positive n gives DefaultFrames.
func AlignFrames(n int) int {
	if n <= 0 {
		return DefaultFrames
	}
	return (n + mixer.FrameAlign - 1) / mixer.FrameAlign * mixer.FrameAlign
}

// Latency is how much audio the given buffer configuration holds.
func Latency(frames, buffers int) time.Duration {
	return time.Duration(frames*buffers) * time.Second / mixer.OutputRate
}
