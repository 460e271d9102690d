// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/utils"
	"github.com/jfreymuth/oggvorbis"
)

// oggReader is an interface for oggvorbis.Reader to allow testing
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

// Decoder decodes a whole Ogg Vorbis stream into 16-bit PCM.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (*audio.PCM, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", audio.ErrDecode, err)
	}

	return decodeAll(dec)
}

func decodeAll(dec oggReader) (*audio.PCM, error) {
	rate, channels := dec.SampleRate(), dec.Channels()
	if err := audio.CheckFormat(rate, channels); err != nil {
		return nil, err
	}

	// Read returns a multiple of channels values, clamped to [-1, 1]
	frameBuf := make([]float32, 4096*channels)

	var samples []int16
	for {
		n, err := dec.Read(frameBuf)
		for _, v := range frameBuf[:n] {
			samples = append(samples, utils.Float32ToInt16(v))
		}

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", audio.ErrDecode, err)
		}
		if n == 0 {
			return nil, fmt.Errorf("%w: %w", audio.ErrDecode, io.ErrNoProgress)
		}
	}

	return &audio.PCM{
		Channels:   channels,
		SampleRate: rate,
		Samples:    samples,
	}, nil
}
