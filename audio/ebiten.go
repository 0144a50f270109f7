//go:build cgo && !portaudio && !beep

package audio

import (
	"fmt"
	"sync"
	"time"

	eaudio "github.com/hajimehoshi/ebiten/v2/audio"
)

// Backend names the output compiled in.
const Backend = "ebiten"

type ebitenDevice struct {
	ctx *eaudio.Context
}

// Open returns the output, creating the process wide ebiten audio
// context on first use. The context rate cannot change afterwards.
func Open(sampleRate int) (Device, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: invalid sample rate %d", ErrUnavailable, sampleRate)
	}
	ctx := eaudio.CurrentContext()
	if ctx == nil {
		ctx = eaudio.NewContext(sampleRate)
	} else if ctx.SampleRate() != sampleRate {
		return nil, fmt.Errorf("%w: audio context runs at %d Hz", ErrUnavailable, ctx.SampleRate())
	}
	return &ebitenDevice{ctx: ctx}, nil
}

func (d *ebitenDevice) SampleRate() int {
	return d.ctx.SampleRate()
}

func (d *ebitenDevice) Close() error {
	return nil
}

func (d *ebitenDevice) NewSession() (Session, error) {
	s := &ebitenSession{ctx: d.ctx, q: NewQueue()}
	p, err := s.newPlayer()
	if err != nil {
		return nil, err
	}
	s.player = p
	return s, nil
}

type ebitenSession struct {
	mu     sync.Mutex
	ctx    *eaudio.Context
	q      *Queue
	player *eaudio.Player
}

func (s *ebitenSession) newPlayer() (*eaudio.Player, error) {
	p, err := s.ctx.NewPlayer(newPCM16Reader(s.q))
	if err != nil {
		return nil, fmt.Errorf("could not create player: %w", err)
	}
	p.SetBufferSize(100 * time.Millisecond)
	return p, nil
}

// Replace also recreates the player: it is the only way to drop what
// the player already buffered.
func (s *ebitenSession) Replace(src Streamer) {
	s.q.Replace(src)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.player == nil {
		return
	}
	_ = s.player.Close()
	p, err := s.newPlayer()
	if err != nil {
		s.player = nil
		return
	}
	s.player = p
	if !s.q.Paused() {
		p.Play()
	}
}

func (s *ebitenSession) Clear() {
	s.q.Clear()
}

func (s *ebitenSession) Play() {
	s.q.SetPaused(false)
	s.mu.Lock()
	if s.player != nil {
		s.player.Play()
	}
	s.mu.Unlock()
}

func (s *ebitenSession) Pause() {
	s.q.SetPaused(true)
	s.mu.Lock()
	if s.player != nil {
		s.player.Pause()
	}
	s.mu.Unlock()
}

func (s *ebitenSession) Paused() bool {
	return s.q.Paused()
}

func (s *ebitenSession) Close() error {
	s.q.Clear()
	s.mu.Lock()
	p := s.player
	s.player = nil
	s.mu.Unlock()
	if p != nil {
		return p.Close()
	}
	return nil
}
