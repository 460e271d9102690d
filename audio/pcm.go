// SPDX-License-Identifier: EPL-2.0

package audio

import "time"

// Supported native sample rates. Each divides OutputRate exactly.
const (
	Rate11025 = 11025
	Rate22050 = 22050
	Rate44100 = 44100
)

// PCM is a decoded 16-bit buffer handed from a decoder to the mixer.
type PCM struct {
	Channels   int
	SampleRate int
	// Samples are interleaved when Channels == 2.
	Samples []int16
}

// SupportedRate reports whether rate is one the mixer can upsample by an
// integer factor.
func SupportedRate(rate int) bool {
	switch rate {
	case Rate11025, Rate22050, Rate44100:
		return true
	}
	return false
}

// SupportedChannels reports whether n is mono or stereo.
func SupportedChannels(n int) bool {
	return n == 1 || n == 2
}

// CheckFormat validates a rate/channel pair against what the mixer accepts.
func CheckFormat(rate, channels int) error {
	if !SupportedChannels(channels) {
		return &LoadError{Kind: KindChannelCount, Err: channelError(channels)}
	}
	if !SupportedRate(rate) {
		return &LoadError{Kind: KindSampleRate, Err: rateError(rate)}
	}
	return nil
}

// Validate checks the descriptor and drops a trailing partial frame.
func (p *PCM) Validate() error {
	if err := CheckFormat(p.SampleRate, p.Channels); err != nil {
		return err
	}

	p.Samples = p.Samples[:len(p.Samples)-len(p.Samples)%p.Channels]
	if len(p.Samples) == 0 {
		return &LoadError{Kind: KindDecode, Err: ErrEmptyPayload}
	}
	return nil
}

// Frames is the number of sample frames in the buffer.
func (p *PCM) Frames() int {
	if p.Channels == 0 {
		return 0
	}
	return len(p.Samples) / p.Channels
}

// Seconds is the play length of one pass.
func (p *PCM) Seconds() float64 {
	if p.SampleRate == 0 {
		return 0
	}
	return float64(p.Frames()) / float64(p.SampleRate)
}

func (p *PCM) Duration() time.Duration {
	return time.Duration(p.Seconds() * float64(time.Second))
}
