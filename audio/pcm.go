package audio

import (
	"io"
	"math"

	"github.com/gopxl/beep"
)

func clip(v float64) float64 {
	switch {
	case v > 1:
		return 1
	case v < -1:
		return -1
	case math.IsNaN(v):
		return 0
	}
	return v
}

// pcm16Reader exposes a Streamer as linear PCM, signed 16 bits little
// endian, 2 channels.
type pcm16Reader struct {
	s   beep.Streamer
	buf [][2]float64
}

func newPCM16Reader(s beep.Streamer) *pcm16Reader {
	return &pcm16Reader{s: s}
}

func (r *pcm16Reader) Read(p []byte) (int, error) {
	frames := len(p) / 4
	if frames == 0 {
		return 0, nil
	}
	if cap(r.buf) < frames {
		r.buf = make([][2]float64, frames)
	}
	buf := r.buf[:frames]
	n, ok := r.s.Stream(buf)
	if !ok && n == 0 {
		return 0, io.EOF
	}
	for i := 0; i < n; i++ {
		l := int16(clip(buf[i][0]) * math.MaxInt16)
		rr := int16(clip(buf[i][1]) * math.MaxInt16)
		p[4*i+0] = byte(l)
		p[4*i+1] = byte(l >> 8)
		p[4*i+2] = byte(rr)
		p[4*i+3] = byte(rr >> 8)
	}
	return 4 * n, nil
}

// fillMono writes the left channel of the Queue into out.
func fillMono(q *Queue, buf *[][2]float64, out []float32) {
	if cap(*buf) < len(out) {
		*buf = make([][2]float64, len(out))
	}
	b := (*buf)[:len(out)]
	q.Stream(b)
	for i := range out {
		out[i] = float32(clip(b[i][0]))
	}
}
