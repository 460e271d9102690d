// SPDX-License-Identifier: EPL-2.0

package synth

import (
	"math"

	"github.com/ik5/audmix/audio"
)

const (
	lfsrMask = 0x7FFFFF // 23-bit shift register
	// DefaultSeed is used when a zero seed is given; an all-zero register
	// never changes.
	DefaultSeed = 0x7FFFFF
)

// Noise is white noise from a maximal-length 23-bit LFSR (taps 23 and 18).
// Each channel gets its own draw.
type Noise struct {
	rate      int
	channels  int
	amplitude float64
	seed      uint32
	sr        uint32
}

func NewNoise(rate, channels int, amplitude float64, seed uint32) (*Noise, error) {
	if err := audio.CheckFormat(rate, channels); err != nil {
		return nil, err
	}

	seed &= lfsrMask
	if seed == 0 {
		seed = DefaultSeed
	}

	return &Noise{
		rate:      rate,
		channels:  channels,
		amplitude: min(max(amplitude, 0), 1),
		seed:      seed,
		sr:        seed,
	}, nil
}

func (n *Noise) SampleRate() int { return n.rate }
func (n *Noise) Channels() int   { return n.channels }

func (n *Noise) Stream(dst []int16) int {
	count := len(dst) - len(dst)%n.channels
	for i := range count {
		// 16 register steps give a fresh 16-bit word
		for range 16 {
			bit := ((n.sr >> 22) ^ (n.sr >> 17)) & 1
			n.sr = ((n.sr << 1) | bit) & lfsrMask
		}
		word := int16(uint16(n.sr))
		dst[i] = int16(math.Round(float64(word) * n.amplitude))
	}
	return count
}

// Reset reloads the seed, so the same sequence plays again.
func (n *Noise) Reset() { n.sr = n.seed }
