// SPDX-License-Identifier: EPL-2.0

// Package audio defines what decoders hand to the mixer.
//
// This package contains the shared vocabulary of the engine:
//   - PCM, a fully decoded 16-bit buffer with its channel count and rate
//   - Decoder, the capability every file format implements
//   - Streamer, the capability of generative sources
//   - Registry, decoder lookup by file extension
//   - LoadError and its four kinds
//
// # PCM
//
// A decoder produces a flat buffer of signed 16-bit samples, interleaved
// for stereo:
//
//	pcm := &audio.PCM{Channels: 1, SampleRate: 22050, Samples: samples}
//	if err := pcm.Validate(); err != nil {
//	    return err
//	}
//
// Only mono and stereo at 11025, 22050 and 44100 Hz are accepted, since the
// mixer upsamples by an exact integer factor to 44100 Hz. Anything else is
// rejected before a source exists.
//
// # Format Registry
//
// The registry maps file extensions to decoders:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, format, ok := registry.ForPath("sounds/jump.WAV")
//
// # Error Handling
//
// Loading fails with one of four kinds, each matching a sentinel:
//
//	_, err := manager.Load("missing.wav", mixer.PlayOnce)
//	switch {
//	case errors.Is(err, audio.ErrFile):
//	case errors.Is(err, audio.ErrDecode):
//	case errors.Is(err, audio.ErrUnsupportedSampleRate):
//	case errors.Is(err, audio.ErrUnsupportedChannelCount):
//	}
//
// Use errors.As with *LoadError to get the path and the underlying cause.
// Every kind is terminal for that attempt; nothing is retried.
package audio
