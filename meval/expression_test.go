package meval

import (
	"errors"
	"fmt"
	"math"

	. "gopkg.in/check.v1"
)

type ExprSuite struct{}

var _ = Suite(&ExprSuite{})

type ExpResult struct {
	Result float64
	Input  string
}

func (e ExpResult) String() string {
	return fmt.Sprintf(" %s == %f", e.Input, e.Result)
}

func (s *ExprSuite) TestBasicEval(c *C) {

	exps := []ExpResult{
		{0.0, "0.0"},
		{4.0, "1.0 + 2.0 + 1.0"},
		{1.12345, "1.12345"},
		{11.0, "1.0 + 10.0"},
		{1 / 10.0, "1.0 / 10.0"},
		{30.0, "3.0 * 10.0"},
		{-2.0, "8.0 - 10.0"},
		{3 * math.Pi, "3 * pi"},
		{math.E, "e"},
		{27.0, "3 ^ 3 ^1"},
		{512.0, "2 ^ 3 ^ 2"},
		{-4.0, "-2^2"},
		{0.5, "2^-1"},
		{2.0, "+1 - -1"},
		{-3.0, "-(3)"},
		{1.0, "10 % 3"},
		{19.0, "0x10 + 0b11"},
		{math.Pow(math.Cos(42.0)*3.14159+2, 2.45), "( cos(42.0) * 3.14159 + 2 ) ^2.45"},
		{0.0, "sin(0.0)"},
		{0.0, "asin(0.0)"},
		{1.0, "cos(0.0)"},
		{0.0, "acos(1.0)"},
		{0.0, "tan(0.0)"},
		{0.0, "atan(0.0)"},
		{0.0, "sqrt(0.0)"},
		{math.Exp(0.0), "exp(0.0)"},
		{0.0, "ln(1.0)"},
		{1.0, "log(10.0)"},
		{3.0, "log2(8)"},
		{2.0, "ceil(1.5)"},
		{1.0, "floor(1.5)"},
		{3.0, "round(2.5)"},
		{2.5, "abs(-2.5)"},
		{-1.0, "signum(-3)"},
		{math.Atan2(1.0, 1.0), "atan2(1.0,1.0)"},
		{3.0, "max(2, min(5, 3))"},
		{8.0, "pow(2, 3)"},
		{1.0, "mod(7, 3)"},
		{math.Pi / 4, "pi / 4"},
	}

	for i, e := range exps {
		ee, err := Compile(e.Input)
		if c.Check(err, IsNil, Commentf("[%d: %s]: got error at compilation : %s", i, e, err)) == false {
			continue
		}
		c.Check(ee.Variables(), HasLen, 0, Commentf("[%d: %s]", i, e))
		res, err := ee.Eval()
		if c.Check(err, IsNil, Commentf("[%d: %s]: got error at evaluation: %s", i, e, err)) == false {
			continue
		}
		c.Check(res, Equals, e.Result, Commentf("[%d: %s]", i, e))
	}
}

func (s *ExprSuite) TestSquare(c *C) {
	exp, err := Compile("x^2")
	c.Assert(err, IsNil)
	c.Check(exp.Variables(), DeepEquals, []string{"x"})
	c.Check(exp.String(), Equals, "x^2")
	res, err := exp.Eval(2)
	c.Assert(err, IsNil)
	c.Check(res, Equals, 4.0)
}

func (s *ExprSuite) TestVariablesAreOrdered(c *C) {
	exp, err := Compile("x^2 + y*x - t + y")
	c.Assert(err, IsNil)
	c.Check(exp.Variables(), DeepEquals, []string{"x", "y", "t"})

	res, err := exp.Eval(2, 3, 1)
	c.Assert(err, IsNil)
	c.Check(res, Equals, 4.0+6.0-1.0+3.0)
}

func (s *ExprSuite) TestVariablesAreCopied(c *C) {
	exp, err := Compile("a + b")
	c.Assert(err, IsNil)
	vars := exp.Variables()
	vars[0] = "z"
	c.Check(exp.Variables(), DeepEquals, []string{"a", "b"})
}

func (s *ExprSuite) TestArityIsChecked(c *C) {
	exp, err := Compile("x + 1")
	c.Assert(err, IsNil)

	for _, args := range [][]float64{nil, {1, 2}} {
		res, err := exp.Eval(args...)
		c.Assert(err, Not(IsNil))
		c.Check(errors.Is(err, ErrArity), Equals, true)
		c.Check(math.IsNaN(res), Equals, true)
	}

	_, err = exp.Eval(1, 2)
	c.Check(err, ErrorMatches, "expression has 1 variable\\(s\\) but 2 argument\\(s\\) were given")

	constant, err := Compile("e")
	c.Assert(err, IsNil)
	_, err = constant.Eval(1.0)
	c.Check(errors.Is(err, ErrArity), Equals, true)
}

type DomainCase struct {
	input   string
	x       float64
	message string
}

func (s *ExprSuite) TestDomainErrors(c *C) {
	tests := []DomainCase{
		{"1/x", 0, "domain error: 1 / 0"},
		{"ln(x)", -1, "domain error: ln(-1)"},
		{"1 + ln(x)", -1, "domain error: ln(-1)"},
		{"sqrt(x)", -4, "domain error: sqrt(-4)"},
		{"log(x)", 0, "domain error: log(0)"},
		{"exp(x)", 1000, "domain error: exp(1000)"},
		{"x % 0", 3, "domain error: 3 % 0"},
	}
	for i, t := range tests {
		exp, err := Compile(t.input)
		c.Assert(err, IsNil, Commentf("[%d] %s", i, t.input))
		res, err := exp.Eval(t.x)
		if c.Check(err, Not(IsNil), Commentf("[%d] %s", i, t.input)) == false {
			continue
		}
		c.Check(errors.Is(err, ErrDomain), Equals, true)
		var derr *DomainError
		c.Check(errors.As(err, &derr), Equals, true)
		c.Check(err.Error(), Equals, t.message)
		c.Check(math.IsNaN(res), Equals, true)
	}
}

type CompileErrorCase struct {
	input, error string
}

func (s *ExprSuite) TestCompilationError(c *C) {
	tests := []CompileErrorCase{
		{"( 2.0 ))", "Mismatched parenthesis in ( 2.0 ))"},
		{"(( x )", "Mismatched parenthesis in (( x )"},
		{"sin(x", "Mismatched parenthesis in sin(x"},
		{"0x", "Bad number syntax \"0x\""},
		{"( 0B02 ))", "Bad number syntax \"0B02\""},
		{"sin(0.0),", "Misplaced comma or mismatched parenthesis in sin(0.0),"},
		{"(1, 2)", "Misplaced comma or mismatched parenthesis in (1, 2)"},
		{"atan2(0.0 +,2.1)", "Missing operand before ',' in atan2(0.0 +,2.1)"},
		{"atan2(1,)", "Missing operand before ')' in atan2(1,)"},
		{"sin(0.0 , 0.3)", "Function 'sin' expects 1 argument(s), got 2"},
		{"atan2(1)", "Function 'atan2' expects 2 argument(s), got 1"},
		{"sin()", "Function 'sin' expects 1 argument(s), got 0"},
		{"sin x", "Function 'sin' must be followed by '(' in sin x"},
		{"2 * sin", "Function 'sin' must be followed by '(' in 2 * sin"},
		{"foo(1)", "Unknown function 'foo' in foo(1)"},
		{"5 + ", "Missing operand at the end of 5 + "},
		{"(5 + )", "Missing operand before ')' in (5 + )"},
		{"()", "Missing operand before ')' in ()"},
		{"* 2", "Missing operand before '*' in * 2"},
		{"2 3", "Missing operator before '3' in 2 3"},
		{"x y", "Missing operator before 'y' in x y"},
		{"2 (3)", "Missing operator before '(' in 2 (3)"},
		{"@", "Got unexpected rune @"},
		{"", "Empty expression"},
		{"   ", "Empty expression"},
	}

	for i, t := range tests {
		_, err := Compile(t.input)
		if c.Check(err, Not(IsNil), Commentf("[%d] : %s", i, t.input)) == false {
			continue
		}
		c.Check(err.Error(), Equals, t.error, Commentf("[%d] : %s]", i, t.input))
		var cerr *CompileError
		if c.Check(errors.As(err, &cerr), Equals, true) {
			c.Check(cerr.Input, Equals, t.input)
		}
	}
}

func (s *ExprSuite) TestCompilationIsDeterministic(c *C) {
	inputs := []string{"x^2", "sin(x) * cos(3*x)", "e^x / (1 + x^2)", "pi"}
	xs := []float64{-3.5, -1, 0, 0.25, 1, 2, 10}
	for _, input := range inputs {
		a, err := Compile(input)
		c.Assert(err, IsNil)
		b, err := Compile(input)
		c.Assert(err, IsNil)
		for _, x := range xs {
			args := []float64{x}
			if len(a.Variables()) == 0 {
				args = nil
			}
			ra, erra := a.Eval(args...)
			rb, errb := b.Eval(args...)
			c.Check(ra, Equals, rb, Commentf("%s at %f", input, x))
			c.Check(erra, DeepEquals, errb)
		}
	}
}

func (s *ExprSuite) TestSinglePrecision(c *C) {
	exp, err := Compile32("x^2")
	c.Assert(err, IsNil)
	c.Check(exp.Variables(), DeepEquals, []string{"x"})
	res, err := exp.Eval(2)
	c.Assert(err, IsNil)
	c.Check(res, Equals, float32(4))

	tenth, err := Compile32("0.1")
	c.Assert(err, IsNil)
	res, err = tenth.Eval()
	c.Assert(err, IsNil)
	c.Check(res, Equals, float32(0.1))

	inv, err := Compile32("1/x")
	c.Assert(err, IsNil)
	_, err = inv.Eval(0)
	c.Check(errors.Is(err, ErrDomain), Equals, true)

	_, err = inv.Eval()
	c.Check(errors.Is(err, ErrArity), Equals, true)
}

func (s *ExprSuite) TestSinglePrecisionLiteralRange(c *C) {
	_, err := Compile("1e39")
	c.Check(err, IsNil)

	_, err = Compile32("1e39")
	c.Assert(err, Not(IsNil))
	c.Check(err.Error(), Equals, "Bad number syntax \"1e39\"")
}

func (s *ExprSuite) TestFunctionsAreListed(c *C) {
	names := Functions()
	c.Check(len(names) > 20, Equals, true)
	c.Check(names[0], Equals, "abs")
	for _, n := range names {
		_, err := Compile32(n + "(1" + map[bool]string{true: ", 2)", false: ")"}[functions[n].card == 2])
		c.Check(err, IsNil, Commentf("function %s", n))
	}
}

func ExampleExpression_basic() {
	expr, err := Compile("1.0 + 2.0")
	if err != nil {
		fmt.Printf("Got error: %s", err)
		return
	}

	res, err := expr.Eval()
	if err != nil {
		fmt.Printf("Got error: %s", err)
		return
	}
	fmt.Printf("%f", res)
	//Output: 3.000000
}

func ExampleExpression_Eval() {
	expr, err := Compile("x^2 + 1")
	if err != nil {
		fmt.Printf("Got error: %s", err)
		return
	}
	fmt.Println(expr.Variables())

	res, _ := expr.Eval(3)
	fmt.Println(res)
	//Output:
	// [x]
	// 10
}
