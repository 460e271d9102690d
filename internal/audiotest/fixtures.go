// SPDX-License-Identifier: EPL-2.0

// Package audiotest builds audio fixtures for tests.
package audiotest

import (
	"bytes"
	"encoding/binary"
)

// Chunk is an extra RIFF chunk inserted between fmt and data.
type Chunk struct {
	ID   string
	Data []byte
}

// WAV builds a RIFF/WAVE file with a PCM fmt chunk declaring bitsPerSample,
// the given extra chunks, and samples written as 16-bit little-endian data.
func WAV(sampleRate, channels, bitsPerSample int, samples []int16, extra ...Chunk) []byte {
	body := new(bytes.Buffer)
	body.WriteString("WAVE")

	numChannels := uint16(channels)
	bits := uint16(bitsPerSample)
	byteRate := uint32(sampleRate) * uint32(numChannels) * uint32(bits/8)
	blockAlign := numChannels * (bits / 8)

	body.WriteString("fmt ")
	binary.Write(body, binary.LittleEndian, uint32(16))
	binary.Write(body, binary.LittleEndian, uint16(1))
	binary.Write(body, binary.LittleEndian, numChannels)
	binary.Write(body, binary.LittleEndian, uint32(sampleRate))
	binary.Write(body, binary.LittleEndian, byteRate)
	binary.Write(body, binary.LittleEndian, blockAlign)
	binary.Write(body, binary.LittleEndian, bits)

	for _, c := range extra {
		body.WriteString(c.ID)
		binary.Write(body, binary.LittleEndian, uint32(len(c.Data)))
		body.Write(c.Data)
		if len(c.Data)%2 == 1 {
			body.WriteByte(0)
		}
	}

	body.WriteString("data")
	binary.Write(body, binary.LittleEndian, uint32(len(samples)*2))
	for _, s := range samples {
		binary.Write(body, binary.LittleEndian, s)
	}

	out := new(bytes.Buffer)
	out.WriteString("RIFF")
	binary.Write(out, binary.LittleEndian, uint32(body.Len()))
	out.Write(body.Bytes())
	return out.Bytes()
}

// WAV16 builds a canonical 16-bit PCM WAV file.
func WAV16(sampleRate, channels int, samples []int16) []byte {
	return WAV(sampleRate, channels, 16, samples)
}

// Constant returns n samples of value v.
func Constant(n int, v int16) []int16 {
	out := make([]int16, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// Ramp returns n samples starting at 0 and rising by step.
func Ramp(n int, step int16) []int16 {
	out := make([]int16, n)
	for i := range out {
		out[i] = int16(i) * step
	}
	return out
}

// AIFF16 builds an uncompressed 16-bit AIFF file. Samples are written
// big-endian.
func AIFF16(sampleRate, channels int, samples []int16) []byte {
	frames := 0
	if channels > 0 {
		frames = len(samples) / channels
	}

	body := new(bytes.Buffer)
	body.WriteString("AIFF")

	body.WriteString("COMM")
	binary.Write(body, binary.BigEndian, uint32(18))
	binary.Write(body, binary.BigEndian, uint16(channels))
	binary.Write(body, binary.BigEndian, uint32(frames))
	binary.Write(body, binary.BigEndian, uint16(16))
	body.Write(extended(sampleRate))

	body.WriteString("SSND")
	binary.Write(body, binary.BigEndian, uint32(8+2*len(samples)))
	binary.Write(body, binary.BigEndian, uint32(0)) // offset
	binary.Write(body, binary.BigEndian, uint32(0)) // block size
	for _, s := range samples {
		binary.Write(body, binary.BigEndian, s)
	}

	out := new(bytes.Buffer)
	out.WriteString("FORM")
	binary.Write(out, binary.BigEndian, uint32(body.Len()))
	out.Write(body.Bytes())
	return out.Bytes()
}

// extended encodes a positive integer rate as an 80-bit IEEE extended float.
func extended(v int) []byte {
	out := make([]byte, 10)
	if v <= 0 {
		return out
	}

	exp := 0
	for u := uint64(v); u > 1; u >>= 1 {
		exp++
	}
	mantissa := uint64(v) << (63 - exp)

	binary.BigEndian.PutUint16(out[0:2], uint16(16383+exp))
	binary.BigEndian.PutUint64(out[2:10], mantissa)
	return out
}
