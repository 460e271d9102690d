// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"math"

	"github.com/ik5/audmix/utils"
)

// Gains converts volume and pan to per-channel gains:
//
//	left  = volume * min(1, 1-pan)
//	right = volume * min(1, 1+pan)
//
// Only the side moving toward 1 is clamped, so for |pan| > 1 the far channel
// gain keeps falling and turns negative.
func Gains(volume, pan float64) (left, right float64) {
	return volume * min(1, 1-pan), volume * min(1, 1+pan)
}

// Accumulate adds frames stereo frames of src, scaled by the channel gains,
// into out. Each product is rounded and the sum saturates at the int16
// limits.
func Accumulate(out, src []int16, frames int, left, right float64) {
	out = out[:2*frames]
	src = src[:2*frames]

	for i := 0; i < len(out); i += 2 {
		out[i] = utils.SaturateInt16(float64(out[i]) + math.Round(float64(src[i])*left))
		out[i+1] = utils.SaturateInt16(float64(out[i+1]) + math.Round(float64(src[i+1])*right))
	}
}
