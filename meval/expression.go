package meval

import (
	"math"

	"github.com/chewxy/math32"
)

// An Expression is a compiled formula evaluated in double
// precision. It is immutable and can be evaluated concurrently.
type Expression struct {
	input string
	root  node
	vars  []string
}

// Variables returns the free variables of the expression, in order of
// first appearance.
func (e *Expression) Variables() []string {
	return append([]string(nil), e.vars...)
}

// String returns the text the expression was compiled from.
func (e *Expression) String() string {
	return e.input
}

// Eval evaluates the expression. One argument must be given per free
// variable, bound in the order reported by Variables.
func (e *Expression) Eval(args ...float64) (float64, error) {
	if len(args) != len(e.vars) {
		return math.NaN(), &ArityError{Want: len(e.vars), Got: len(args)}
	}
	return e.root.eval(args)
}

// Expression32 is the single precision counterpart of
// Expression. Literals are parsed as float32 and every operation is
// computed with float32 math.
type Expression32 struct {
	input string
	root  node
	vars  []string
}

// Variables returns the free variables of the expression, in order of
// first appearance.
func (e *Expression32) Variables() []string {
	return append([]string(nil), e.vars...)
}

// String returns the text the expression was compiled from.
func (e *Expression32) String() string {
	return e.input
}

// Eval evaluates the expression, see Expression.Eval
func (e *Expression32) Eval(args ...float32) (float32, error) {
	if len(args) != len(e.vars) {
		return math32.NaN(), &ArityError{Want: len(e.vars), Got: len(args)}
	}
	return e.root.eval32(args)
}

//rest of the stuff is pretty private

type node interface {
	eval(args []float64) (float64, error)
	eval32(args []float32) (float32, error)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func finite32(v float32) bool {
	return !math32.IsNaN(v) && !math32.IsInf(v, 0)
}

type varExp struct {
	variable string
	slot     int
}

func (e *varExp) eval(args []float64) (float64, error) {
	return args[e.slot], nil
}

func (e *varExp) eval32(args []float32) (float32, error) {
	return args[e.slot], nil
}

type valueExp struct {
	value   float64
	value32 float32
}

func (e *valueExp) eval([]float64) (float64, error) {
	return e.value, nil
}

func (e *valueExp) eval32([]float32) (float32, error) {
	return e.value32, nil
}

type unaryEvaluer func(float64) float64

type unaryEvaluer32 func(float32) float32

type unaryExp struct {
	name      string
	child     node
	evaluer   unaryEvaluer
	evaluer32 unaryEvaluer32
}

func (e *unaryExp) eval(args []float64) (float64, error) {
	value, err := e.child.eval(args)
	if err != nil {
		return math.NaN(), err
	}
	res := e.evaluer(value)
	if !finite(res) && finite(value) {
		return math.NaN(), &DomainError{Op: e.name, Args: []float64{value}}
	}
	return res, nil
}

func (e *unaryExp) eval32(args []float32) (float32, error) {
	value, err := e.child.eval32(args)
	if err != nil {
		return math32.NaN(), err
	}
	res := e.evaluer32(value)
	if !finite32(res) && finite32(value) {
		return math32.NaN(), &DomainError{Op: e.name, Args: []float64{float64(value)}}
	}
	return res, nil
}

type binaryEvaluer func(float64, float64) float64

type binaryEvaluer32 func(float32, float32) float32

type binaryExp struct {
	name                  string
	leftChild, rightChild node
	evaluer               binaryEvaluer
	evaluer32             binaryEvaluer32
}

func (e *binaryExp) eval(args []float64) (float64, error) {
	valueLeft, err := e.leftChild.eval(args)
	if err != nil {
		return math.NaN(), err
	}

	valueRight, err := e.rightChild.eval(args)
	if err != nil {
		return math.NaN(), err
	}
	res := e.evaluer(valueLeft, valueRight)
	if !finite(res) && finite(valueLeft) && finite(valueRight) {
		return math.NaN(), &DomainError{Op: e.name, Args: []float64{valueLeft, valueRight}}
	}
	return res, nil
}

func (e *binaryExp) eval32(args []float32) (float32, error) {
	valueLeft, err := e.leftChild.eval32(args)
	if err != nil {
		return math32.NaN(), err
	}

	valueRight, err := e.rightChild.eval32(args)
	if err != nil {
		return math32.NaN(), err
	}
	res := e.evaluer32(valueLeft, valueRight)
	if !finite32(res) && finite32(valueLeft) && finite32(valueRight) {
		return math32.NaN(), &DomainError{
			Op:   e.name,
			Args: []float64{float64(valueLeft), float64(valueRight)},
		}
	}
	return res, nil
}
