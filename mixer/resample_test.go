// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

// upsampleReference expands into a separate buffer front to back.
func upsampleReference(native []int16, factor int, seam []int16) []int16 {
	frames := len(native) / 2
	out := make([]int16, 0, frames*factor*2)
	for k := range frames {
		curL, curR := int32(native[2*k]), int32(native[2*k+1])
		prevL, prevR := curL, curR
		if k > 0 {
			prevL, prevR = int32(native[2*k-2]), int32(native[2*k-1])
		} else if seam != nil {
			prevL, prevR = int32(seam[0]), int32(seam[1])
		}
		f := int32(factor)
		for i := int32(1); i <= f; i++ {
			out = append(out,
				int16((prevL*(f-i)+curL*i)/f),
				int16((prevR*(f-i)+curR*i)/f))
		}
	}
	return out
}

func TestUpsample_Factor2Cold(t *testing.T) {
	t.Parallel()

	buf := make([]int16, 16)
	copy(buf, []int16{0, 0, 10, 20, 20, 40, 30, 60})

	Upsample(buf, 4, 2, nil)

	assert.Equal(t, []int16{
		0, 0, 0, 0,
		5, 10, 10, 20,
		15, 30, 20, 40,
		25, 50, 30, 60,
	}, buf)
}

func TestUpsample_Factor4Cold(t *testing.T) {
	t.Parallel()

	buf := make([]int16, 16)
	copy(buf, []int16{0, 0, 40, 80})

	Upsample(buf, 2, 4, nil)

	assert.Equal(t, []int16{
		0, 0, 0, 0, 0, 0, 0, 0,
		10, 20, 20, 40, 30, 60, 40, 80,
	}, buf)
}

func TestUpsample_SeamBlendsFirstFrame(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		factor int
		want   []int16
	}{
		{"x2", 2, []int16{50, -50, 100, -100}},
		{"x4", 4, []int16{25, -25, 50, -50, 75, -75, 100, -100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			buf := make([]int16, 2*tt.factor)
			buf[0], buf[1] = 100, -100

			Upsample(buf, 1, tt.factor, []int16{0, 0})
			assert.Equal(t, tt.want, buf)
		})
	}
}

func TestUpsample_ConstantIsPreserved(t *testing.T) {
	t.Parallel()

	for _, factor := range []int{2, 4} {
		buf := make([]int16, 8*factor)
		for i := range 8 {
			buf[i] = 1000
		}

		Upsample(buf, 4, factor, []int16{1000, 1000})

		for i, v := range buf {
			assert.Equal(t, int16(1000), v, "factor %d sample %d", factor, i)
		}
	}
}

func TestUpsample_Factor1IsNoop(t *testing.T) {
	t.Parallel()

	buf := []int16{1, 2, 3, 4}
	Upsample(buf, 2, 1, []int16{9, 9})
	assert.Equal(t, []int16{1, 2, 3, 4}, buf)
}

func TestUpsample_InPlaceMatchesReference(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(1, 2))

	for _, factor := range []int{2, 4} {
		for _, withSeam := range []bool{false, true} {
			native := make([]int16, 2*64)
			for i := range native {
				native[i] = int16(rng.IntN(65536) - 32768)
			}
			var seam []int16
			if withSeam {
				seam = []int16{int16(rng.IntN(65536) - 32768), int16(rng.IntN(65536) - 32768)}
			}

			want := upsampleReference(native, factor, seam)

			buf := make([]int16, len(native)*factor)
			copy(buf, native)
			Upsample(buf, 64, factor, seam)

			assert.Equal(t, want, buf, "factor %d seam %v", factor, withSeam)
		}
	}
}

func TestUpsample_ZeroAllocs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping allocation test in short mode")
	}

	buf := make([]int16, 2048*2)
	seam := []int16{1, 2}

	allocs := testing.AllocsPerRun(100, func() {
		Upsample(buf, 512, 4, seam)
	})
	assert.Zero(t, allocs)
}

func BenchmarkUpsample(b *testing.B) {
	buf := make([]int16, 2048*2)
	seam := []int16{1, 2}

	b.ReportAllocs()
	for range b.N {
		Upsample(buf, 1024, 2, seam)
	}
}
