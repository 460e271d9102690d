// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// Float32ToInt16 converts a normalized [-1,1] sample to 16-bit PCM.
func Float32ToInt16(x float32) int16 {
	// Clamp and scale
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	// Use 32767 for positive max to avoid overflow
	return int16(x * 32767.0)
}

// SaturateInt16 clamps v to the int16 range. Values outside it pin to
// math.MaxInt16 or math.MinInt16; nothing wraps.
func SaturateInt16(v float64) int16 {
	if v >= math.MaxInt16 {
		return math.MaxInt16
	}
	if v <= math.MinInt16 {
		return math.MinInt16
	}
	return int16(v)
}

// BytesToInt16LE decodes little-endian 16-bit PCM bytes into dst and returns
// the number of samples written. A trailing odd byte is ignored.
func BytesToInt16LE(dst []int16, b []byte) int {
	n := min(len(dst), len(b)/2)
	for i := range n {
		dst[i] = int16(uint16(b[2*i]) | uint16(b[2*i+1])<<8)
	}
	return n
}

// Int16ToBytesLE encodes samples as little-endian 16-bit PCM into dst and
// returns the number of bytes written.
func Int16ToBytesLE(dst []byte, samples []int16) int {
	n := min(len(samples), len(dst)/2)
	for i := range n {
		v := uint16(samples[i])
		dst[2*i] = byte(v)
		dst[2*i+1] = byte(v >> 8)
	}
	return 2 * n
}
