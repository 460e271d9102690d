// SPDX-License-Identifier: EPL-2.0

// Package device connects a mixing session to an output.
//
// A Backend owns the output clock. Every time it needs audio it takes the
// next buffer from a Queue, which zeroes it and has the Filler (normally a
// *mixer.Session) mix one cycle into it. Two backends ship:
//
//   - Oto plays through the system device with github.com/ebitengine/oto/v3.
//     Building with the headless tag replaces it with a stub that returns
//     ErrNoDevice.
//   - Offline renders cycles on request, for tests and for writing the mix
//     to a WAV file.
package device
