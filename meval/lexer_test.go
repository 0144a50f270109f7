package meval

import (
	"io"
	"strings"
	"testing"

	. "gopkg.in/check.v1"
)

// Hook up gocheck into the "go test" runner.
func Test(t *testing.T) { TestingT(t) }

type LexSuite struct{}

var _ = Suite(&LexSuite{})

type lexeme struct {
	t TokenType
	v string
}

func checkTokens(c *C, input string, expected []lexeme) {
	l := NewLexer(input)
	for i, e := range expected {
		t, err := l.Next()
		c.Assert(err, IsNil, Commentf("[%d: %q]: got error: %s", i, e.v, err))
		c.Check(lexeme{t.Type, t.Value}, Equals, e, Commentf("token %d of %q", i, input))
	}
	_, err := l.Next()
	c.Assert(err, Equals, io.EOF)
}

func (s *LexSuite) TestLexNumber(c *C) {
	numbers := []string{
		"2455", "46", "89e67", "89.46E67", "35.46e-67", "35.46e+067",
		"0b111001", "0xabcdef46", "0xAbE", ".5",
	}
	expected := make([]lexeme, len(numbers))
	for i, n := range numbers {
		expected[i] = lexeme{TokValue, n}
	}
	checkTokens(c, strings.Join(numbers, " "), expected)
}

func (s *LexSuite) TestReportBadNumberSyntax(c *C) {
	tests := []struct {
		input, bad string
	}{
		{"0B02", "0B02"},
		{"12a", "12a"},
		{"1.2.3", "1.2."},
		{"0x1g", "0x1g"},
		{"2_000", "2_"},
	}
	for _, t := range tests {
		_, err := NewLexer(t.input).Next()
		c.Check(err, ErrorMatches, "Bad number syntax \""+t.bad+"\"")
	}
}

func (s *LexSuite) TestComplexLex(c *C) {
	checkTokens(c, " 45 + - */ %44 (,)foo sqrt()-56e23^", []lexeme{
		{TokValue, "45"},
		{TokPlus, "+"},
		{TokMinus, "-"},
		{TokMult, "*"},
		{TokDivide, "/"},
		{TokModulo, "%"},
		{TokValue, "44"},
		{TokOParen, "("},
		{TokComma, ","},
		{TokCParen, ")"},
		{TokIdent, "foo"},
		{TokIdent, "sqrt"},
		{TokOParen, "("},
		{TokCParen, ")"},
		{TokMinus, "-"},
		{TokValue, "56e23"},
		{TokPower, "^"},
	})
}

func (s *LexSuite) TestSignsAreOperators(c *C) {
	checkTokens(c, "x-1+-x_2", []lexeme{
		{TokIdent, "x"},
		{TokMinus, "-"},
		{TokValue, "1"},
		{TokPlus, "+"},
		{TokMinus, "-"},
		{TokIdent, "x_2"},
	})
}

func (s *LexSuite) TestPositions(c *C) {
	l := NewLexer("  sin( x )")
	var pos []int
	for {
		t, err := l.Next()
		if err == io.EOF {
			break
		}
		c.Assert(err, IsNil)
		pos = append(pos, t.Pos)
	}
	c.Check(pos, DeepEquals, []int{2, 5, 7, 9})
}

func (s *LexSuite) TestErrorIsSticky(c *C) {
	l := NewLexer("1 + @ 2")
	t, err := l.Next()
	c.Assert(err, IsNil)
	c.Check(t.Value, Equals, "1")
	t, err = l.Next()
	c.Assert(err, IsNil)
	c.Check(t.Type, Equals, TokPlus)

	_, err = l.Next()
	c.Check(err, ErrorMatches, "Got unexpected rune @")
	_, err = l.Next()
	c.Check(err, ErrorMatches, "Got unexpected rune @")
}

func (s *LexSuite) TestTokenTypeNames(c *C) {
	c.Check(TokPower.String(), Equals, "^")
	c.Check(TokValue.String(), Equals, "number")
	c.Check(TokenType(42).String(), Equals, "TokenType(42)")
}
