// SPDX-License-Identifier: EPL-2.0

package synth

import (
	"fmt"
	"math"

	"github.com/ik5/audmix/audio"
)

// Tone is a sine oscillator.
type Tone struct {
	rate      int
	channels  int
	amplitude float64
	phaseInc  float64
	phase     float64
}

// NewTone returns a sine at freq Hz. amplitude is a fraction of full scale
// and is clamped to [0, 1].
func NewTone(rate, channels int, freq, amplitude float64) (*Tone, error) {
	if err := audio.CheckFormat(rate, channels); err != nil {
		return nil, err
	}
	if freq <= 0 || freq >= float64(rate)/2 {
		return nil, fmt.Errorf("tone frequency %g Hz out of range for %d Hz", freq, rate)
	}

	return &Tone{
		rate:      rate,
		channels:  channels,
		amplitude: min(max(amplitude, 0), 1),
		phaseInc:  freq * (2 * math.Pi / float64(rate)),
	}, nil
}

func (t *Tone) SampleRate() int { return t.rate }
func (t *Tone) Channels() int   { return t.channels }

// Stream writes whole frames, the same value on every channel.
func (t *Tone) Stream(dst []int16) int {
	frames := len(dst) / t.channels
	for f := range frames {
		v := int16(math.Round(math.Sin(t.phase) * t.amplitude * math.MaxInt16))
		for c := range t.channels {
			dst[f*t.channels+c] = v
		}

		t.phase += t.phaseInc
		if t.phase >= 2*math.Pi {
			t.phase -= 2 * math.Pi
		}
	}
	return frames * t.channels
}

// Reset rewinds the oscillator to phase 0.
func (t *Tone) Reset() { t.phase = 0 }
