// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF files with github.com/go-audio/aiff.
//
// Only uncompressed 16-bit sound data is read. Samples come out of the
// file big-endian and are returned as native int16 values, interleaved
// the same way as every other decoder in this module.
package aiff
