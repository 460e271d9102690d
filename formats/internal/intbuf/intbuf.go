// SPDX-License-Identifier: EPL-2.0

// Package intbuf drains go-audio decoders into 16-bit samples.
package intbuf

import (
	"errors"
	"io"

	goaudio "github.com/go-audio/audio"
)

// Reader is the PCMBuffer method shared by the go-audio wav and aiff
// decoders.
type Reader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// ReadAll reads until the decoder runs dry. The samples read before a
// failure are returned along with the error.
func ReadAll(r Reader, channels int) ([]int16, error) {
	buf := &goaudio.IntBuffer{Data: make([]int, 4096*max(channels, 1))}

	var samples []int16
	for {
		n, err := r.PCMBuffer(buf)
		for _, v := range buf.Data[:n] {
			samples = append(samples, int16(v))
		}

		// go-audio reports the end of the sound data as 0, nil
		if errors.Is(err, io.EOF) || (err == nil && n == 0) {
			return samples, nil
		}
		if err != nil {
			return samples, err
		}
	}
}
