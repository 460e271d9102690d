// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes 16-bit PCM WAV files.
//
// Decoding is done with github.com/go-audio/wav, which walks the RIFF
// chunk list, so files carrying LIST, fact or JUNK chunks between fmt and
// data load fine. Only WAVE_FORMAT_PCM at 16 bits is accepted, and the
// rate and channel count must be something the mixer can play:
//
//	pcm, err := wav.Decoder{}.Decode(file)
//	if errors.Is(err, audio.ErrUnsupportedSampleRate) {
//	    // 48 kHz and friends end up here
//	}
//
// WriteWAV16 writes the canonical 44-byte header followed by the samples,
// which is what the offline renderer uses:
//
//	err := wav.WriteWAV16(out, 44100, 2, mixed)
package wav
