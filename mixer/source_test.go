// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ik5/audmix/audio"
)

// mockStreamer is a generator whose output is scripted per test.
type mockStreamer struct {
	mock.Mock
}

func (m *mockStreamer) SampleRate() int { return m.Called().Int(0) }
func (m *mockStreamer) Channels() int   { return m.Called().Int(0) }

func (m *mockStreamer) Stream(dst []int16) int {
	return m.Called(dst).Int(0)
}

// resettableStreamer adds Reset to mockStreamer.
type resettableStreamer struct {
	mockStreamer
}

func (m *resettableStreamer) Reset() { m.Called() }

func pcmOf(rate, channels int, samples []int16) *audio.PCM {
	return &audio.PCM{Channels: channels, SampleRate: rate, Samples: samples}
}

func newPlayingSource(t *testing.T, rate, channels int, samples []int16, loop LoopPolicy) *Source {
	t.Helper()

	src, err := NewSource(&audio.PCM{
		Channels:   channels,
		SampleRate: rate,
		Samples:    samples,
	}, loop)
	require.NoError(t, err)
	src.Play()
	return src
}

func TestNewSource_RejectsUnsupportedFormats(t *testing.T) {
	t.Parallel()

	_, err := NewSource(&audio.PCM{Channels: 1, SampleRate: 48000, Samples: []int16{1}}, PlayOnce)
	assert.ErrorIs(t, err, audio.ErrUnsupportedSampleRate)

	_, err = NewSource(&audio.PCM{Channels: 6, SampleRate: 44100, Samples: []int16{1}}, PlayOnce)
	assert.ErrorIs(t, err, audio.ErrUnsupportedChannelCount)

	_, err = NewSource(&audio.PCM{Channels: 2, SampleRate: 44100}, PlayOnce)
	assert.ErrorIs(t, err, audio.ErrDecode)
}

func TestNewSource_Defaults(t *testing.T) {
	t.Parallel()

	src, err := NewSource(&audio.PCM{
		Channels:   2,
		SampleRate: 11025,
		Samples:    make([]int16, 11025*2),
	}, PlayOnce)
	require.NoError(t, err)

	assert.Equal(t, Stopped, src.State())
	assert.False(t, src.IsPlaying())
	assert.Equal(t, 1.0, src.Volume())
	assert.Equal(t, 0.0, src.Pan())
	assert.Equal(t, 4, src.ScaleFactor())
	assert.Equal(t, 1.0, src.Duration())
	assert.Equal(t, 0, src.Cursor())
}

func TestSource_ScaleFactor(t *testing.T) {
	t.Parallel()

	for rate, want := range map[int]int{44100: 1, 22050: 2, 11025: 4} {
		src := newPlayingSource(t, rate, 1, []int16{1}, PlayOnce)
		assert.Equal(t, want, src.ScaleFactor(), "rate %d", rate)
	}
}

func TestSource_FillNotPlayingLeavesBuffer(t *testing.T) {
	t.Parallel()

	src, err := NewSource(&audio.PCM{Channels: 1, SampleRate: 44100, Samples: []int16{5, 5, 5, 5}}, PlayOnce)
	require.NoError(t, err)

	dst := []int16{9, 9, 9, 9, 9, 9, 9, 9}
	assert.False(t, src.fill(dst, 4))
	assert.Equal(t, []int16{9, 9, 9, 9, 9, 9, 9, 9}, dst)
	assert.Equal(t, 0, src.Cursor())
}

func TestSource_FillMonoDuplicates(t *testing.T) {
	t.Parallel()

	src := newPlayingSource(t, 44100, 1, []int16{100, -100, 200, -200}, PlayOnce)

	dst := make([]int16, 8)
	require.True(t, src.fill(dst, 4))
	assert.Equal(t, []int16{100, 100, -100, -100, 200, 200, -200, -200}, dst)
	assert.Equal(t, 4, src.Cursor())
}

func TestSource_FillStereoCopies(t *testing.T) {
	t.Parallel()

	src := newPlayingSource(t, 44100, 2, []int16{1, 2, 3, 4, 5, 6, 7, 8}, PlayOnce)

	dst := make([]int16, 4)
	require.True(t, src.fill(dst, 2))
	assert.Equal(t, []int16{1, 2, 3, 4}, dst)
	require.True(t, src.fill(dst, 2))
	assert.Equal(t, []int16{5, 6, 7, 8}, dst)
	assert.Equal(t, 8, src.Cursor())
}

func TestSource_FillReducedRateTakesFewerFrames(t *testing.T) {
	t.Parallel()

	src := newPlayingSource(t, 11025, 1, []int16{1, 2, 3, 4}, LoopForever())

	dst := make([]int16, 16)
	require.True(t, src.fill(dst, 8))
	// 8 output frames at x4 need two native frames.
	assert.Equal(t, []int16{1, 1, 2, 2}, dst[:4])
	assert.Equal(t, 2, src.Cursor())
}

func TestSource_PlayOnceGoesSilentButKeepsPlaying(t *testing.T) {
	t.Parallel()

	src := newPlayingSource(t, 44100, 1, []int16{500, 500, 500, 500, 500, 500}, PlayOnce)
	dst := make([]int16, 8)

	require.True(t, src.fill(dst, 4))
	assert.Equal(t, []int16{500, 500, 500, 500, 500, 500, 500, 500}, dst)

	require.True(t, src.fill(dst, 4))
	assert.Equal(t, []int16{500, 500, 500, 500, 0, 0, 0, 0}, dst)

	for range 3 {
		dst = []int16{7, 7, 7, 7, 7, 7, 7, 7}
		assert.False(t, src.fill(dst, 4))
		assert.Equal(t, []int16{7, 7, 7, 7, 7, 7, 7, 7}, dst, "finished source must not write")
	}

	assert.True(t, src.IsPlaying())
	assert.Equal(t, 20, src.Cursor(), "cursor keeps advancing after the last pass")
	assert.Equal(t, src.Duration(), src.Position())
}

func TestSource_RepeatPlaysExtraPasses(t *testing.T) {
	t.Parallel()

	src := newPlayingSource(t, 44100, 2, []int16{1, -1, 2, -2}, Repeat(1))
	dst := make([]int16, 12)

	require.True(t, src.fill(dst, 6))
	assert.Equal(t, []int16{1, -1, 2, -2, 1, -1, 2, -2, 0, 0, 0, 0}, dst)
	assert.False(t, src.fill(dst, 6))
}

func TestSource_LoopForeverWraps(t *testing.T) {
	t.Parallel()

	samples := []int16{10, 20, 30, 40, 50, 60}
	src := newPlayingSource(t, 44100, 1, samples, LoopForever())

	var got []int16
	dst := make([]int16, 8)
	for range 6 {
		require.True(t, src.fill(dst, 4))
		for f := range 4 {
			got = append(got, dst[2*f])
		}
	}

	for i, v := range got {
		assert.Equal(t, samples[i%len(samples)], v, "sample %d", i)
	}
}

func TestSource_PauseFreezesCursor(t *testing.T) {
	t.Parallel()

	src := newPlayingSource(t, 44100, 1, []int16{1, 2, 3, 4, 5, 6, 7, 8}, PlayOnce)
	dst := make([]int16, 4)

	require.True(t, src.fill(dst, 2))
	src.Pause()
	assert.Equal(t, Paused, src.State())
	assert.False(t, src.fill(dst, 2))
	assert.Equal(t, 2, src.Cursor())

	src.Resume()
	assert.Equal(t, Playing, src.State())
	require.True(t, src.fill(dst, 2))
	assert.Equal(t, []int16{3, 3, 4, 4}, dst)
}

func TestSource_StateTransitions(t *testing.T) {
	t.Parallel()

	src, err := NewSource(&audio.PCM{Channels: 1, SampleRate: 44100, Samples: []int16{1}}, PlayOnce)
	require.NoError(t, err)

	src.Pause()
	assert.Equal(t, Stopped, src.State(), "pause from stopped is a no-op")
	src.Resume()
	assert.Equal(t, Stopped, src.State(), "resume from stopped is a no-op")

	src.Play()
	assert.Equal(t, Playing, src.State())
	src.Pause()
	src.Play()
	assert.Equal(t, Playing, src.State(), "play resumes a paused source")
}

func TestSource_StopRewinds(t *testing.T) {
	t.Parallel()

	src := newPlayingSource(t, 22050, 2, make([]int16, 64), PlayOnce)
	dst := make([]int16, 16)
	require.True(t, src.fill(dst, 8))
	require.NotZero(t, src.Cursor())

	src.Stop()
	assert.Equal(t, Stopped, src.State())
	assert.Equal(t, 0, src.Cursor())
}

func TestSource_Seek(t *testing.T) {
	t.Parallel()

	src := newPlayingSource(t, 22050, 2, make([]int16, 22050*2*2), PlayOnce)

	src.Seek(0.5)
	assert.Equal(t, 11025*2, src.Cursor())
	assert.InDelta(t, 0.5, src.Position(), 1e-9)

	src.Seek(-3)
	assert.Equal(t, 0, src.Cursor())

	src.Pause()
	src.Seek(1)
	assert.Equal(t, 22050*2, src.Cursor(), "seek works regardless of state")
}

func TestSource_PositionWithinPass(t *testing.T) {
	t.Parallel()

	src := newPlayingSource(t, 11025, 1, make([]int16, 11025), LoopForever())
	src.Seek(2.25)
	assert.InDelta(t, 0.25, src.Position(), 1e-3)
}

func TestSource_SetLoop(t *testing.T) {
	t.Parallel()

	src := newPlayingSource(t, 44100, 1, []int16{1, 2}, PlayOnce)
	src.SetLoop(LoopForever())
	assert.True(t, src.Loop().Infinite())

	dst := make([]int16, 8)
	require.True(t, src.fill(dst, 4))
	assert.Equal(t, []int16{1, 1, 2, 2, 1, 1, 2, 2}, dst)
}

func TestSource_VolumeClampsNegative(t *testing.T) {
	t.Parallel()

	src := newPlayingSource(t, 44100, 1, []int16{1}, PlayOnce)
	src.SetVolume(-2)
	assert.Equal(t, 0.0, src.Volume())

	src.SetVolume(8)
	assert.Equal(t, 8.0, src.Volume(), "volume has no upper bound")

	src.SetPan(1.5)
	assert.Equal(t, 1.5, src.Pan(), "pan is stored as given")
}

func TestSource_IgnoresNonFiniteControls(t *testing.T) {
	t.Parallel()

	src := newPlayingSource(t, 44100, 1, []int16{1}, PlayOnce)
	src.SetVolume(0.75)
	src.SetPan(-0.25)

	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		src.SetVolume(v)
		src.SetPan(v)
		assert.Equal(t, 0.75, src.Volume(), "volume after %v", v)
		assert.Equal(t, -0.25, src.Pan(), "pan after %v", v)
	}
}

func TestSource_Release(t *testing.T) {
	t.Parallel()

	src := newPlayingSource(t, 44100, 1, []int16{1, 2, 3, 4}, LoopForever())
	src.release()

	assert.Equal(t, Stopped, src.State())
	src.Play()
	dst := make([]int16, 8)
	assert.False(t, src.fill(dst, 4), "released source has no data")
}

func TestStreamSource_MonoExpanded(t *testing.T) {
	t.Parallel()

	st := &mockStreamer{}
	st.On("SampleRate").Return(22050)
	st.On("Channels").Return(1)
	st.On("Stream", mock.Anything).Run(func(args mock.Arguments) {
		dst := args.Get(0).([]int16)
		for i := range dst {
			dst[i] = int16(100 * (i + 1))
		}
	}).Return(3)

	src, err := NewStreamSource(st)
	require.NoError(t, err)
	src.Play()

	dst := make([]int16, 16)
	require.True(t, src.fill(dst, 8))
	// 4 native frames requested, the generator produced 3.
	assert.Equal(t, []int16{100, 100, 200, 200, 300, 300, 0, 0}, dst[:8])
	assert.Equal(t, 4, src.Cursor())
	assert.Zero(t, src.Duration())
	st.AssertNumberOfCalls(t, "Stream", 1)
}

func TestStreamSource_StopResets(t *testing.T) {
	t.Parallel()

	st := &resettableStreamer{}
	st.On("SampleRate").Return(44100)
	st.On("Channels").Return(2)
	st.On("Stream", mock.Anything).Return(8)
	st.On("Reset").Return()

	src, err := NewStreamSource(st)
	require.NoError(t, err)
	src.Play()

	dst := make([]int16, 8)
	require.True(t, src.fill(dst, 4))
	src.Stop()

	assert.Equal(t, 0, src.Cursor())
	st.AssertCalled(t, "Reset")
}

func TestStreamSource_RejectsUnsupportedRate(t *testing.T) {
	t.Parallel()

	st := &mockStreamer{}
	st.On("SampleRate").Return(8000)
	st.On("Channels").Return(1)

	_, err := NewStreamSource(st)
	assert.ErrorIs(t, err, audio.ErrUnsupportedSampleRate)
}

func TestLoopPolicy(t *testing.T) {
	t.Parallel()

	assert.True(t, LoopForever().Infinite())
	assert.Equal(t, 0, LoopForever().passes())
	assert.Equal(t, 1, PlayOnce.passes())
	assert.Equal(t, 4, Repeat(3).passes())
	assert.Equal(t, 0, Repeat(-5).Repeats())
	assert.Equal(t, "play once", PlayOnce.String())
	assert.Equal(t, "repeat 2", Repeat(2).String())
	assert.Equal(t, "loop forever", LoopForever().String())
}
