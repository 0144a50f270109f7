// Package audio gives access to an audio output. A Device hands out
// Sessions, one per played signal; each Session owns a replaceable
// signal and a play/pause state.
//
// The backend is selected at build time: ebiten's audio package by
// default, portaudio with the "portaudio" tag, the beep speaker with
// the "beep" tag. Without cgo and without tag, Open always fails with
// ErrUnavailable.
package audio

import (
	"errors"
	"sync"

	"github.com/gopxl/beep"
)

// ErrUnavailable is returned by Open when no output can be used.
var ErrUnavailable = errors.New("audio output unavailable")

// Streamer is the signal type played by a Session.
type Streamer = beep.Streamer

// A Device is an opened audio output.
type Device interface {
	// NewSession creates a paused Session without signal.
	NewSession() (Session, error)
	// SampleRate is the rate every signal is played at.
	SampleRate() int
	// Close releases the output. Sessions must be closed first.
	Close() error
}

// A Session plays one signal on a Device.
type Session interface {
	// Replace discards the current signal, queued samples included,
	// and plays s instead. It keeps the play/pause state.
	Replace(s Streamer)
	// Clear discards the current signal, the session becomes silent.
	Clear()
	Play()
	Pause()
	Paused() bool
	// Close stops the session and releases its resources.
	Close() error
}

// A Queue is the signal holder shared by the backends. The audio
// callback pulls from it with Stream while the owner swaps the signal
// with Replace: the swap happens under a lock, so the callback sees
// either the old or the new signal, never a mix. A paused or empty
// Queue streams silence and never ends.
type Queue struct {
	mu     sync.Mutex
	src    beep.Streamer
	paused bool
}

var _ beep.Streamer = (*Queue)(nil)

// NewQueue returns an empty, paused Queue.
func NewQueue() *Queue {
	return &Queue{paused: true}
}

// Replace sets the streamed signal, nil clears it.
func (q *Queue) Replace(s Streamer) {
	q.mu.Lock()
	q.src = s
	q.mu.Unlock()
}

// Clear removes the streamed signal.
func (q *Queue) Clear() {
	q.Replace(nil)
}

// SetPaused pauses or resumes the Queue.
func (q *Queue) SetPaused(paused bool) {
	q.mu.Lock()
	q.paused = paused
	q.mu.Unlock()
}

// Paused reports if the Queue is paused.
func (q *Queue) Paused() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.paused
}

// Stream fills samples from the current signal. A signal that runs out
// is dropped and the remaining samples are silent.
func (q *Queue) Stream(samples [][2]float64) (n int, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	filled := 0
	if !q.paused && q.src != nil {
		var more bool
		filled, more = q.src.Stream(samples)
		if !more {
			q.src = nil
		}
	}
	for i := filled; i < len(samples); i++ {
		samples[i] = [2]float64{}
	}
	return len(samples), true
}

// Err always returns nil.
func (q *Queue) Err() error {
	return nil
}
