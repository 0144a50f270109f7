// Package formula manages the list of formulas typed by the user: their
// compilation state, their audio sessions and the shareable fragment
// that restores them.
package formula

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gopxl/beep"

	"github.com/p6nj/bpptng-grapher/audio"
	"github.com/p6nj/bpptng-grapher/meval"
	"github.com/p6nj/bpptng-grapher/tone"
)

// MaxEntries bounds the number of formulas of a Collection.
const MaxEntries = 18

// Plot resolution bounds, in points per curve.
const (
	MinResolution     = 10
	MaxResolution     = 1000
	DefaultResolution = 500
)

const resampleQuality = 4

// ErrTooManyEntries is returned when adding past MaxEntries.
var ErrTooManyEntries = fmt.Errorf("too many formulas, at most %d allowed", MaxEntries)

// ClampResolution bounds n to [MinResolution, MaxResolution].
func ClampResolution(n int) int {
	switch {
	case n < MinResolution:
		return MinResolution
	case n > MaxResolution:
		return MaxResolution
	}
	return n
}

// Option configures a Collection.
type Option func(*Collection)

// WithDevice plays Valid entries on d. Without device the Collection
// only plots.
func WithDevice(d audio.Device) Option {
	return func(c *Collection) { c.device = d }
}

// WithLogger sets the logger, slog.Default() otherwise.
func WithLogger(l *slog.Logger) Option {
	return func(c *Collection) { c.log = l }
}

// WithResolution sets the initial resolution, clamped.
func WithResolution(n int) Option {
	return func(c *Collection) { c.resolution = ClampResolution(n) }
}

// A Collection is an ordered list of formula entries. It is not safe
// for concurrent use.
type Collection struct {
	entries    []*Entry
	device     audio.Device
	listening  bool
	resolution int
	err        error
	log        *slog.Logger
}

// NewCollection returns an empty, not listening Collection.
func NewCollection(opts ...Option) *Collection {
	c := &Collection{resolution: DefaultResolution}
	for _, o := range opts {
		o(c)
	}
	if c.log == nil {
		c.log = slog.Default()
	}
	return c
}

func (c *Collection) Len() int {
	return len(c.entries)
}

// Entries returns the entries in display order.
func (c *Collection) Entries() []*Entry {
	return append([]*Entry(nil), c.entries...)
}

// Entry returns the i-th entry, nil when out of range.
func (c *Collection) Entry(i int) *Entry {
	if i < 0 || i >= len(c.entries) {
		return nil
	}
	return c.entries[i]
}

// Err returns the error to display: the one of the last edit, nil if it
// succeeded.
func (c *Collection) Err() error {
	return c.err
}

// Add appends an entry holding text and returns its index. The entry is
// added even when text does not compile; the compile error is then
// returned. Past MaxEntries nothing is added and ErrTooManyEntries is
// returned.
func (c *Collection) Add(text string) (int, error) {
	if len(c.entries) >= MaxEntries {
		return -1, ErrTooManyEntries
	}
	c.entries = append(c.entries, &Entry{})
	i := len(c.entries) - 1
	return i, c.Edit(i, text)
}

// Edit replaces the text of the i-th entry and recompiles it.
func (c *Collection) Edit(i int, text string) error {
	e := c.Entry(i)
	if e == nil {
		return fmt.Errorf("no formula %d", i)
	}
	err := e.compile(text)
	c.err = err
	if err != nil {
		c.log.Debug("formula rejected", "index", i, "text", text, "err", err)
	}
	c.attach(e)
	return err
}

// attach brings the audio session of e in line with its state.
func (c *Collection) attach(e *Entry) {
	if c.device == nil {
		return
	}
	if e.expr == nil {
		if e.session != nil {
			e.session.Clear()
		}
		return
	}

	expr32, err := meval.Compile32(e.text)
	if err != nil {
		c.log.Warn("formula cannot be played", "text", e.text, "err", err)
		if e.session != nil {
			e.session.Clear()
		}
		return
	}

	if e.session == nil {
		s, err := c.device.NewSession()
		if err != nil {
			c.log.Warn("could not open audio session", "text", e.text, "err", err)
			return
		}
		e.session = s
	}
	e.session.Replace(c.signal(expr32))
	if c.listening {
		e.session.Play()
	} else {
		e.session.Pause()
	}
}

// signal returns the tone of expr at the device rate.
func (c *Collection) signal(expr *meval.Expression32) audio.Streamer {
	var s audio.Streamer = tone.NewSource(expr)
	if rate := c.device.SampleRate(); rate != tone.SampleRate {
		s = beep.Resample(resampleQuality, tone.SampleRate, beep.SampleRate(rate), s)
	}
	return s
}

// Remove deletes the i-th entry and closes its audio session.
func (c *Collection) Remove(i int) error {
	e := c.Entry(i)
	if e == nil {
		return fmt.Errorf("no formula %d", i)
	}
	c.entries = append(c.entries[:i], c.entries[i+1:]...)
	return closeSession(e)
}

func closeSession(e *Entry) error {
	if e.session == nil {
		return nil
	}
	s := e.session
	e.session = nil
	if err := s.Close(); err != nil {
		return fmt.Errorf("could not close audio session: %w", err)
	}
	return nil
}

func (c *Collection) Listening() bool {
	return c.listening
}

// SetListening plays or pauses every open session.
func (c *Collection) SetListening(on bool) {
	c.listening = on
	for _, e := range c.entries {
		if e.session == nil {
			continue
		}
		if on {
			e.session.Play()
		} else {
			e.session.Pause()
		}
	}
}

func (c *Collection) Resolution() int {
	return c.resolution
}

// SetResolution sets the number of points per curve and returns the
// value kept after clamping.
func (c *Collection) SetResolution(n int) int {
	c.resolution = ClampResolution(n)
	return c.resolution
}

// Fragment encodes the entries as a "#"-prefixed URL fragment.
func (c *Collection) Fragment() string {
	texts := make([]string, len(c.entries))
	for i, e := range c.entries {
		texts[i] = e.text
	}
	return "#" + Encode(texts)
}

// Restore replaces every entry with the formulas of fragment. Formulas
// past MaxEntries are dropped. It returns the error of the last formula
// that failed to compile, which is also kept as Err.
func (c *Collection) Restore(fragment string) error {
	if err := c.clear(); err != nil {
		c.log.Warn("restore", "err", err)
	}
	texts := Decode(fragment)
	if len(texts) > MaxEntries {
		c.log.Warn("dropping formulas", "count", len(texts)-MaxEntries, "err", ErrTooManyEntries)
		texts = texts[:MaxEntries]
	}

	var last error
	for _, t := range texts {
		if _, err := c.Add(t); err != nil {
			last = err
		}
	}
	c.err = last
	return last
}

func (c *Collection) clear() error {
	err := c.Close()
	c.entries = nil
	return err
}

// Close closes every audio session. The entries are kept.
func (c *Collection) Close() error {
	var errs []error
	for _, e := range c.entries {
		if err := closeSession(e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
