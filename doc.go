// SPDX-License-Identifier: EPL-2.0

// Package audmix is a small real-time mixer for game-style sound effects
// and music.
//
// Sounds are decoded once into 16-bit PCM at 11025, 22050 or 44100 Hz,
// mono or stereo. Every output cycle the mixer pulls a slice of each
// playing sound, upsamples it by an integer factor to 44100 Hz, applies
// volume and pan, and adds it into the device buffer with saturation.
//
// # Supported Formats
//
// DefaultRegistry maps file extensions to decoders:
//   - .wav (PCM 16-bit) via formats/wav
//   - .ogg (Vorbis) via formats/vorbis
//   - .mp3 via formats/mp3
//   - .aif and .aiff (PCM 16-bit) via formats/aiff
//
// # Quick Start
//
//	m := audmix.New(audmix.WithLogger(logger))
//	if err := m.Start(); err != nil {
//	    return err
//	}
//	defer m.Close()
//
//	music, err := m.Load("music.ogg", mixer.LoopForever())
//	if err != nil {
//	    return err
//	}
//	music.SetVolume(0.6)
//	music.Play()
//
//	shot, _ := m.Load("shot.wav", mixer.PlayOnce)
//	shot.SetPan(-0.5)
//	shot.Play()
//
// Control calls (Play, Pause, SetVolume, SetPan, Seek, Free) are safe from
// any goroutine while the device is running. Loading and freeing take
// effect at the start of the next cycle.
//
// # Offline Rendering
//
// Pass a device.Offline backend to mix without a sound card, for tests or
// to write the result to a file:
//
//	offline := device.NewOffline(device.DefaultFrames)
//	m := audmix.New(audmix.WithBackend(offline))
//	m.Start()
//	// load and play sounds ...
//	err := offline.WriteWAV(out, 5*time.Second)
//
// ConvertToOutput does the same for a single decoded buffer.
//
// # Package Layout
//
//   - audio: PCM descriptor, decoder registry, load errors
//   - mixer: sources, upsampling, accumulation and the mixing session
//   - device: hardware buffer queue, oto and offline backends
//   - synth: generated tone and noise sources
//   - formats/*: file decoders
package audmix
