// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1/2 Layer III files with
// github.com/hajimehoshi/go-mp3.
//
// go-mp3 always emits 16-bit little-endian stereo, duplicating mono
// streams, so every decoded PCM has two channels.
package mp3
