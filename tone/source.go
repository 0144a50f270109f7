// Package tone turns a compiled expression into an audio signal: the
// expression is read as a function of time in seconds and sampled at a
// fixed rate.
package tone

import (
	"time"

	"github.com/gopxl/beep"

	"github.com/p6nj/bpptng-grapher/meval"
)

// SampleRate is the number of samples produced per second of signal.
const SampleRate = 48000

// A Source is an infinite, mono sample stream computed from one
// expression. It is not safe for concurrent use: a Source belongs to
// the goroutine pulling audio from it.
type Source struct {
	expr  *meval.Expression32
	arity int
	index uint64
	in    [1]float32
}

var _ beep.Streamer = (*Source)(nil)

// NewSource returns a Source positioned at the first sample. expr
// should have at most one free variable: with more, every sample
// fails.
func NewSource(expr *meval.Expression32) *Source {
	return &Source{
		expr:  expr,
		arity: len(expr.Variables()),
	}
}

// Index is the number of samples produced since creation or the last
// Reset, modulo 2^64.
func (s *Source) Index() uint64 {
	return s.index
}

// Reset moves the source back to t=0.
func (s *Source) Reset() {
	s.index = 0
}

// Next evaluates the expression at t = Index()/SampleRate and advances
// by one sample. It returns false when the evaluation fails, the
// sample is then skipped.
func (s *Source) Next() (float32, bool) {
	t := float32(float64(s.index) / SampleRate)
	s.index++

	var (
		v   float32
		err error
	)
	switch s.arity {
	case 0:
		v, err = s.expr.Eval()
	case 1:
		s.in[0] = t
		v, err = s.expr.Eval(s.in[:]...)
	default:
		return 0, false
	}
	if err != nil {
		return 0, false
	}
	return v, true
}

// Stream fills samples with the signal, the same value on both
// channels. Failed samples are silent. It never runs out.
func (s *Source) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		v, ok := s.Next()
		if !ok {
			v = 0
		}
		samples[i][0] = float64(v)
		samples[i][1] = float64(v)
	}
	return len(samples), true
}

// Err always returns nil, a Source cannot fail.
func (s *Source) Err() error {
	return nil
}

// Channels returns 1, the signal is mono.
func (s *Source) Channels() int {
	return 1
}

// SampleRate returns the SampleRate constant.
func (s *Source) SampleRate() int {
	return SampleRate
}

// FrameLen reports that the length of the current frame is unknown.
func (s *Source) FrameLen() (int, bool) {
	return 0, false
}

// TotalDuration reports that the signal has no end.
func (s *Source) TotalDuration() (time.Duration, bool) {
	return 0, false
}

// Seek always succeeds without moving: shifting the phase of a
// generated signal has no audible effect on its own.
func (s *Source) Seek(time.Duration) error {
	return nil
}
