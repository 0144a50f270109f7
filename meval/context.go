package meval

import (
	"fmt"
	"math"
)

// A Context binds identifiers to constant values at compile time. Any
// identifier that is neither a function nor found in the Context
// becomes a free variable of the compiled expression.
type Context interface {
	// Lookup returns the value bound to a name.
	Lookup(name string) (float64, bool)
}

// MapContext represents the most simple context, aka a dictionnary of
// constants.
type MapContext struct {
	values map[string]float64
}

// NewMapContext creates an empty MapContext
func NewMapContext() *MapContext {
	return &MapContext{values: make(map[string]float64)}
}

// Constants is the Context used by Compile and Compile32.
var Constants = func() *MapContext {
	c := NewMapContext()
	c.Add("e", math.E)
	c.Add("pi", math.Pi)
	c.Add("tau", 2*math.Pi)
	c.Add("phi", math.Phi)
	return c
}()

// Lookup returns the value stored under name.
func (c *MapContext) Lookup(name string) (float64, bool) {
	if c == nil {
		return 0, false
	}
	v, ok := c.values[name]
	return v, ok
}

// Add adds a new constant to the MapContext
func (c *MapContext) Add(name string, value float64) {
	c.values[name] = value
}

// CompileAndAdd compiles input within the MapContext, evaluates it and
// stores the result under name.
//
// It returns the same errors than Compile(), an error if the input
// refers to a free variable, or the evaluation error.
func (c *MapContext) CompileAndAdd(name, input string) error {
	if _, ok := functions[name]; ok == true {
		return fmt.Errorf("Cannot define '%s', it is a function name", name)
	}
	e, err := CompileIn(c, input)
	if err != nil {
		return err
	}
	if len(e.vars) > 0 {
		return fmt.Errorf("Cannot define '%s', %s refers to unknown variable '%s'", name, input, e.vars[0])
	}
	v, err := e.Eval()
	if err != nil {
		return err
	}
	c.Add(name, v)
	return nil
}

// Delete deletes the given constant from the MapContext if it
// exists.
func (c *MapContext) Delete(name string) {
	delete(c.values, name)
}
