//go:build portaudio

package audio

import (
	"fmt"

	pa "github.com/gordonklaus/portaudio"
)

const Backend = "portaudio"

// frames per callback, about 10ms at 48kHz
const framesPerBuffer = 512

type paDevice struct {
	sampleRate int
}

// Open initializes portaudio and checks a default output exists.
func Open(sampleRate int) (Device, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: invalid sample rate %d", ErrUnavailable, sampleRate)
	}
	if err := pa.Initialize(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, err)
	}
	if _, err := pa.DefaultOutputDevice(); err != nil {
		pa.Terminate()
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, err)
	}
	return &paDevice{sampleRate: sampleRate}, nil
}

func (d *paDevice) SampleRate() int {
	return d.sampleRate
}

func (d *paDevice) Close() error {
	return pa.Terminate()
}

// NewSession opens a mono stream on the default output. The stream
// runs until Close; pausing only silences it.
func (d *paDevice) NewSession() (Session, error) {
	s := &paSession{q: NewQueue()}
	stream, err := pa.OpenDefaultStream(0, 1, float64(d.sampleRate), framesPerBuffer, s.process)
	if err != nil {
		return nil, fmt.Errorf("could not open stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		return nil, fmt.Errorf("could not start stream: %w", err)
	}
	s.stream = stream
	return s, nil
}

type paSession struct {
	q      *Queue
	stream *pa.Stream
	buf    [][2]float64
}

func (s *paSession) process(out []float32) {
	fillMono(s.q, &s.buf, out)
}

func (s *paSession) Replace(src Streamer) { s.q.Replace(src) }
func (s *paSession) Clear()               { s.q.Clear() }
func (s *paSession) Play()                { s.q.SetPaused(false) }
func (s *paSession) Pause()               { s.q.SetPaused(true) }
func (s *paSession) Paused() bool         { return s.q.Paused() }

func (s *paSession) Close() error {
	s.q.Clear()
	if err := s.stream.Stop(); err != nil {
		s.stream.Close()
		return err
	}
	return s.stream.Close()
}
