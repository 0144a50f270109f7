package formula

import (
	"errors"

	"github.com/p6nj/bpptng-grapher/audio"
	"github.com/p6nj/bpptng-grapher/meval"
	"github.com/p6nj/bpptng-grapher/plot"
)

// ErrTooManyVariables is the error of a formula using more than one
// variable.
var ErrTooManyVariables = errors.New("too many variables, only one allowed")

// State is the compilation state of an Entry.
type State int

const (
	// Empty entries hold no text. They are neither plotted nor an error.
	Empty State = iota
	// Invalid entries failed to compile, see Entry.Err.
	Invalid
	// Valid entries hold a compiled formula.
	Valid
)

var stateNames = map[State]string{
	Empty:   "empty",
	Invalid: "invalid",
	Valid:   "valid",
}

func (s State) String() string {
	if n, ok := stateNames[s]; ok {
		return n
	}
	return "unknown"
}

// An Entry is one formula of a Collection. Its compiled form is rebuilt
// from scratch on every edit.
type Entry struct {
	text    string
	expr    *meval.Expression
	err     error
	session audio.Session
}

// Text returns the formula as typed.
func (e *Entry) Text() string {
	return e.text
}

// Name is the legend label of the entry.
func (e *Entry) Name() string {
	return "y = " + e.text
}

func (e *Entry) State() State {
	switch {
	case e.expr != nil:
		return Valid
	case e.err != nil:
		return Invalid
	}
	return Empty
}

// Err returns the compilation error of an Invalid entry.
func (e *Entry) Err() error {
	return e.err
}

// Expression returns the compiled formula, nil unless Valid.
func (e *Entry) Expression() *meval.Expression {
	return e.expr
}

// Session returns the audio session of the entry, if one was opened.
func (e *Entry) Session() audio.Session {
	return e.session
}

// Func returns the plotted function, nil unless Valid.
func (e *Entry) Func() func(float64) float64 {
	if e.expr == nil {
		return nil
	}
	return plot.Func(e.expr)
}

// Points samples the entry over d, nil unless Valid.
func (e *Entry) Points(d plot.Domain, count int) []plot.Point {
	if e.expr == nil {
		return nil
	}
	return plot.Sample(e.expr, d, count)
}

// compile replaces the text and recompiles it. An empty text is not
// compiled.
func (e *Entry) compile(text string) error {
	e.text = text
	e.expr, e.err = nil, nil
	if text == "" {
		return nil
	}

	expr, err := meval.Compile(text)
	if err != nil {
		e.err = err
		return err
	}
	if len(expr.Variables()) > 1 {
		e.err = ErrTooManyVariables
		return e.err
	}
	e.expr = expr
	return nil
}
