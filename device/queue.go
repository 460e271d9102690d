// SPDX-License-Identifier: EPL-2.0

package device

import (
	"github.com/ik5/audmix/mixer"
	"github.com/ik5/audmix/utils"
)

// Queue hands out N alternating hardware buffers. Each one is zeroed and
// then filled by one cycle before it is returned, so the buffer returned
// by the previous call stays intact until N more calls have been made.
type Queue struct {
	filler Filler
	frames int
	bufs   [][]int16
	next   int
}

// NewQueue rounds frames with AlignFrames.
func NewQueue(f Filler, frames, buffers int) *Queue {
	frames = AlignFrames(frames)
	if buffers <= 0 {
		buffers = DefaultBuffers
	}

	q := &Queue{
		filler: f,
		frames: frames,
		bufs:   make([][]int16, buffers),
	}
	for i := range q.bufs {
		q.bufs[i] = make([]int16, frames*mixer.OutputChannels)
	}
	return q
}

// Frames is the number of stereo frames per buffer.
func (q *Queue) Frames() int { return q.frames }

// Next runs one cycle into the next buffer and returns it.
func (q *Queue) Next() []int16 {
	buf := q.bufs[q.next]
	q.next = (q.next + 1) % len(q.bufs)

	clear(buf)
	q.filler.RunCycle(buf, q.frames)
	return buf
}

// Reader encodes the queue's output as signed 16-bit little-endian bytes.
type Reader struct {
	queue   *Queue
	bytes   []byte
	pending []byte
}

func NewReader(q *Queue) *Reader {
	return &Reader{
		queue: q,
		bytes: make([]byte, q.frames*mixer.OutputChannels*2),
	}
}

// Read never fails; it runs as many cycles as p needs.
func (r *Reader) Read(p []byte) (int, error) {
	total := 0
	for len(p) > 0 {
		if len(r.pending) == 0 {
			n := utils.Int16ToBytesLE(r.bytes, r.queue.Next())
			r.pending = r.bytes[:n]
		}

		n := copy(p, r.pending)
		r.pending = r.pending[n:]
		p = p[n:]
		total += n
	}
	return total, nil
}
