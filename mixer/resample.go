// SPDX-License-Identifier: EPL-2.0

package mixer

// Upsample expands nativeFrames stereo frames at the start of buf to
// nativeFrames*factor frames in place, by linear interpolation.
//
// Native frame k becomes factor output frames stepping from frame k-1 to
// frame k: weights {1/2, 1} for factor 2 and {1/4, 1/2, 3/4, 1} for factor 4,
// the last output frame being frame k itself. Frame 0 is blended against seam,
// the last frame of the previous cycle's output; with no seam it is held.
//
// buf must hold at least nativeFrames*factor*2 samples. Frames are processed
// from the end so every native frame is read before its slot is overwritten.
func Upsample(buf []int16, nativeFrames, factor int, seam []int16) {
	if factor <= 1 || nativeFrames <= 0 {
		return
	}

	f := int32(factor)
	for k := nativeFrames - 1; k >= 0; k-- {
		curL, curR := int32(buf[2*k]), int32(buf[2*k+1])

		var prevL, prevR int32
		switch {
		case k > 0:
			prevL, prevR = int32(buf[2*k-2]), int32(buf[2*k-1])
		case len(seam) >= 2:
			prevL, prevR = int32(seam[0]), int32(seam[1])
		default:
			prevL, prevR = curL, curR
		}

		out := buf[2*k*factor : 2*(k+1)*factor]
		for i := int32(1); i <= f; i++ {
			o := 2 * (i - 1)
			out[o] = int16((prevL*(f-i) + curL*i) / f)
			out[o+1] = int16((prevR*(f-i) + curR*i) / f)
		}
	}
}
