// SPDX-License-Identifier: EPL-2.0

// Package synth provides generated sources for the mixer: a sine tone and
// white noise. Both implement audio.Streamer and audio.Resetter, so they
// can be wrapped with mixer.NewStreamSource and rewound by Stop.
//
//	tone, _ := synth.NewTone(audio.Rate22050, 1, 440, 0.5)
//	src, _ := mixer.NewStreamSource(tone)
//	src.Play()
//	session.Add(src)
package synth
