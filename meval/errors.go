package meval

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrDomain is matched by every *DomainError.
	ErrDomain = errors.New("domain error")
	// ErrArity is matched by every *ArityError.
	ErrArity = errors.New("wrong number of arguments")
)

// A CompileError reports why an input could not be compiled. Its
// message is meant to be displayed as is to the end user.
type CompileError struct {
	Input string
	Msg   string
}

func (e *CompileError) Error() string {
	return e.Msg
}

func compileErrorf(input, format string, args ...interface{}) error {
	return &CompileError{Input: input, Msg: fmt.Sprintf(format, args...)}
}

// A DomainError is returned by Eval when an operation is undefined for
// its operands, like a division by zero or the logarithm of a
// negative number. Overflows are reported the same way.
type DomainError struct {
	Op   string
	Args []float64
}

func (e *DomainError) Error() string {
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = strconv.FormatFloat(a, 'g', -1, 64)
	}
	if len(args) == 2 && strings.ContainsAny(e.Op, "+-*/^%") {
		return fmt.Sprintf("domain error: %s %s %s", args[0], e.Op, args[1])
	}
	return fmt.Sprintf("domain error: %s(%s)", e.Op, strings.Join(args, ", "))
}

func (e *DomainError) Is(target error) bool {
	return target == ErrDomain
}

// An ArityError is returned by Eval when the number of arguments does
// not match the number of free variables of the expression.
type ArityError struct {
	Want, Got int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("expression has %d variable(s) but %d argument(s) were given", e.Want, e.Got)
}

func (e *ArityError) Is(target error) bool {
	return target == ErrArity
}
