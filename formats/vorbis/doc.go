// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis files with github.com/jfreymuth/oggvorbis.
//
// The whole stream is decoded up front and the float samples are converted
// to 16-bit PCM. Vorbis files are commonly 48 kHz; those are rejected with
// audio.ErrUnsupportedSampleRate since the mixer only plays 11025, 22050
// and 44100 Hz material.
package vorbis
