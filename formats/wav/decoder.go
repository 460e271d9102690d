// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"fmt"
	"io"

	gowav "github.com/go-audio/wav"
	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/formats/internal/intbuf"
)

// wavFormatPCM is the WAVE_FORMAT_PCM tag of the fmt chunk.
const wavFormatPCM = 1

// Decoder decodes 16-bit PCM WAV files.
type Decoder struct{}

// Decode walks the RIFF chunks, checks the fmt chunk and reads the whole
// data chunk as 16-bit PCM.
func (Decoder) Decode(r io.Reader) (*audio.PCM, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		// go-audio needs to seek between chunks
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading wav data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := gowav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}

	if dec.WavAudioFormat != wavFormatPCM || dec.BitDepth != 16 {
		return nil, ErrOnlyPCM16bitSupported
	}

	channels := int(dec.NumChans)
	rate := int(dec.SampleRate)
	if err := audio.CheckFormat(rate, channels); err != nil {
		return nil, err
	}

	samples, err := readAll(dec, channels)
	if err != nil {
		return nil, err
	}

	return &audio.PCM{
		Channels:   channels,
		SampleRate: rate,
		Samples:    samples,
	}, nil
}

func readAll(dec intbuf.Reader, channels int) ([]int16, error) {
	samples, err := intbuf.ReadAll(dec, channels)
	if err != nil {
		if len(samples) == 0 {
			return nil, fmt.Errorf("%w: %w", ErrUnsupportedWavChunks, err)
		}
		return nil, fmt.Errorf("%w: %w", audio.ErrDecode, err)
	}
	return samples, nil
}
