package meval

import (
	"math"

	. "gopkg.in/check.v1"
)

type ContextSuite struct {
	c *MapContext
}

var _ = Suite(&ContextSuite{})

func (s *ContextSuite) SetUpTest(c *C) {
	s.c = NewMapContext()
}

func (s *ContextSuite) TestCanStoreExpression(c *C) {
	err := s.c.CompileAndAdd("k", "2 * 3")
	c.Assert(err, IsNil)
	v, ok := s.c.Lookup("k")
	c.Check(ok, Equals, true)
	c.Check(v, Equals, 6.0)

	exp, err := CompileIn(s.c, "k * x")
	c.Assert(err, IsNil)
	c.Check(exp.Variables(), DeepEquals, []string{"x"})
	res, err := exp.Eval(2)
	c.Assert(err, IsNil)
	c.Check(res, Equals, 12.0)
}

func (s *ContextSuite) TestStoredExpressionCanReferOthers(c *C) {
	s.c.Add("a", 2)
	c.Assert(s.c.CompileAndAdd("b", "a ^ 10"), IsNil)
	v, _ := s.c.Lookup("b")
	c.Check(v, Equals, 1024.0)
}

func (s *ContextSuite) TestReportsInvalidDefinitions(c *C) {
	err := s.c.CompileAndAdd("foo", "+0x")
	c.Assert(err, Not(IsNil))
	c.Check(err.Error(), Equals, "Bad number syntax \"0x\"")

	err = s.c.CompileAndAdd("foo", "x + 1")
	c.Assert(err, Not(IsNil))
	c.Check(err.Error(), Equals, "Cannot define 'foo', x + 1 refers to unknown variable 'x'")

	err = s.c.CompileAndAdd("sin", "1")
	c.Assert(err, Not(IsNil))
	c.Check(err.Error(), Equals, "Cannot define 'sin', it is a function name")

	err = s.c.CompileAndAdd("foo", "ln(0)")
	c.Check(err, ErrorMatches, "domain error: ln\\(0\\)")

	_, ok := s.c.Lookup("foo")
	c.Check(ok, Equals, false)
}

func (s *ContextSuite) TestDelete(c *C) {
	s.c.Add("k", 1)
	s.c.Delete("k")
	_, ok := s.c.Lookup("k")
	c.Check(ok, Equals, false)

	exp, err := CompileIn(s.c, "k")
	c.Assert(err, IsNil)
	c.Check(exp.Variables(), DeepEquals, []string{"k"})
}

func (s *ContextSuite) TestDefaultConstants(c *C) {
	for name, value := range map[string]float64{
		"e":   math.E,
		"pi":  math.Pi,
		"tau": 2 * math.Pi,
		"phi": math.Phi,
	} {
		v, ok := Constants.Lookup(name)
		c.Check(ok, Equals, true)
		c.Check(v, Equals, value)
	}

	exp, err := Compile("exp(1) - e")
	c.Assert(err, IsNil)
	c.Check(exp.Variables(), HasLen, 0)
}

func (s *ContextSuite) TestNilContextHasNoConstant(c *C) {
	exp, err := CompileIn(nil, "e * pi")
	c.Assert(err, IsNil)
	c.Check(exp.Variables(), DeepEquals, []string{"e", "pi"})

	var empty *MapContext
	_, ok := empty.Lookup("e")
	c.Check(ok, Equals, false)
}
