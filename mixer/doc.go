// SPDX-License-Identifier: EPL-2.0

// Package mixer is the real-time core: it composites any number of decoded
// sources into one interleaved stereo 16-bit buffer at 44100 Hz per cycle.
//
// # Pipeline
//
// A device backend calls Session.RunCycle once per hardware buffer with a
// zeroed buffer. For every live source the session:
//
//  1. fills native-rate frames into a shared scratch buffer (Source.fill),
//     honoring the cursor and the loop policy and duplicating mono to stereo
//  2. upsamples them in place by 2 or 4 (Upsample), blending the first frame
//     against the last frame of the previous cycle's output
//  3. adds them, weighted by volume and pan, into the output (Accumulate),
//     saturating at the int16 limits
//
// Nothing on this path blocks on I/O, allocates in steady state, or fails.
//
// # Sources
//
//	src, err := mixer.NewSource(pcm, mixer.LoopForever())
//	if err != nil {
//	    return err
//	}
//	src.SetVolume(0.8)
//	src.SetPan(-0.5)
//	src.Play()
//	session.Add(src)
//
// A source is Stopped, Playing or Paused. Stop rewinds; Seek moves the
// cursor regardless of state. A source with a bounded repeat count keeps
// reporting Playing after its last pass and simply contributes silence.
//
// # Concurrency
//
// Session.Add and Session.Remove queue commands drained at the start of the
// next cycle. Volume, pan and play state are atomics. Cursor and loop policy
// share a per-source mutex with the fill step.
package mixer
