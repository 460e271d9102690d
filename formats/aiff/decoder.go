// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/formats/internal/intbuf"
)

// Decoder decodes 16-bit uncompressed AIFF files.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (*audio.PCM, error) {
	// go-audio requires io.ReadSeeker
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading aiff data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}

	dec.ReadInfo()
	if dec.BitDepth != 16 {
		return nil, ErrOnlyPCM16bitSupported
	}

	format := dec.Format()
	if format == nil {
		return nil, ErrUnsupportedAiffLayout
	}
	if err := audio.CheckFormat(format.SampleRate, format.NumChannels); err != nil {
		return nil, err
	}

	samples, err := intbuf.ReadAll(dec, format.NumChannels)
	if err != nil {
		if len(samples) == 0 {
			return nil, fmt.Errorf("%w: %w", ErrUnsupportedAiffLayout, err)
		}
		return nil, fmt.Errorf("%w: %w", audio.ErrDecode, err)
	}

	return &audio.PCM{
		Channels:   format.NumChannels,
		SampleRate: format.SampleRate,
		Samples:    samples,
	}, nil
}
