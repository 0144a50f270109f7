//go:build beep && !portaudio

package audio

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const Backend = "beep"

type speakerDevice struct {
	sr beep.SampleRate
}

// Open initializes the speaker with a 100ms buffer.
func Open(sampleRate int) (Device, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: invalid sample rate %d", ErrUnavailable, sampleRate)
	}
	sr := beep.SampleRate(sampleRate)
	if err := speaker.Init(sr, sr.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, err)
	}
	return &speakerDevice{sr: sr}, nil
}

func (d *speakerDevice) SampleRate() int {
	return int(d.sr)
}

func (d *speakerDevice) Close() error {
	speaker.Close()
	return nil
}

func (d *speakerDevice) NewSession() (Session, error) {
	q := NewQueue()
	ctrl := &beep.Ctrl{Streamer: q, Paused: true}
	speaker.Play(ctrl)
	return &speakerSession{q: q, ctrl: ctrl}, nil
}

type speakerSession struct {
	q    *Queue
	ctrl *beep.Ctrl
}

func (s *speakerSession) Replace(src Streamer) {
	// the speaker mixer holds its lock while pulling samples
	speaker.Lock()
	s.q.Replace(src)
	speaker.Unlock()
}

func (s *speakerSession) Clear() {
	s.Replace(nil)
}

func (s *speakerSession) setPaused(paused bool) {
	speaker.Lock()
	s.ctrl.Paused = paused
	s.q.SetPaused(paused)
	speaker.Unlock()
}

func (s *speakerSession) Play()        { s.setPaused(false) }
func (s *speakerSession) Pause()       { s.setPaused(true) }
func (s *speakerSession) Paused() bool { return s.q.Paused() }

// Close detaches the session, the mixer drops it on its next pull.
func (s *speakerSession) Close() error {
	speaker.Lock()
	s.q.Clear()
	s.ctrl.Streamer = nil
	speaker.Unlock()
	return nil
}
