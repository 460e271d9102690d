// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"errors"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/utils"
)

// go-mp3 always produces interleaved stereo.
const channels = 2

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

// Decoder decodes a whole MP3 stream into 16-bit stereo PCM.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (*audio.PCM, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", audio.ErrDecode, err)
	}

	return decodeAll(dec)
}

func decodeAll(dec mp3Reader) (*audio.PCM, error) {
	rate := dec.SampleRate()
	if err := audio.CheckFormat(rate, channels); err != nil {
		return nil, err
	}

	buf := make([]byte, 8192)
	frame := make([]int16, len(buf)/2)

	var samples []int16
	held := 0 // odd trailing byte kept for the next read
	for {
		n, err := dec.Read(buf[held:])
		read := n
		n += held

		m := utils.BytesToInt16LE(frame, buf[:n])
		samples = append(samples, frame[:m]...)

		held = n - 2*m
		if held > 0 {
			buf[0] = buf[n-1]
		}

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", audio.ErrDecode, err)
		}
		if read == 0 {
			return nil, fmt.Errorf("%w: %w", audio.ErrDecode, io.ErrNoProgress)
		}
	}

	return &audio.PCM{
		Channels:   channels,
		SampleRate: rate,
		Samples:    samples,
	}, nil
}
