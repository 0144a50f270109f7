package meval

import (
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"
)

type TokenType int

const (
	TokPlus TokenType = iota
	TokMinus
	TokMult
	TokDivide
	TokModulo
	TokIdent
	TokOParen
	TokCParen
	TokValue
	TokComma
	TokPower
)

var tokenNames = map[TokenType]string{
	TokPlus:   "+",
	TokMinus:  "-",
	TokMult:   "*",
	TokDivide: "/",
	TokModulo: "%",
	TokIdent:  "identifier",
	TokOParen: "(",
	TokCParen: ")",
	TokValue:  "number",
	TokComma:  ",",
	TokPower:  "^",
}

func (t TokenType) String() string {
	if n, ok := tokenNames[t]; ok {
		return n
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// A Token is a lexeme of an expression. Pos is its byte offset in the
// input.
type Token struct {
	Type  TokenType
	Value string
	Pos   int
}

// A Lexer splits an input string in Token. Signs are always reported
// as TokPlus or TokMinus, it is up to the compiler to decide if they
// are unary or binary.
type Lexer struct {
	input  string
	start  int
	pos    int
	width  int
	state  stateFn
	tokens chan Token
	err    error
}

type stateFn func(*Lexer) stateFn

func NewLexer(input string) *Lexer {
	return &Lexer{
		input:  input,
		state:  lexSpace,
		tokens: make(chan Token, 2),
	}
}

// Next returns the next Token, or io.EOF once the input is
// exhausted. After a syntax error, every call returns that error.
func (l *Lexer) Next() (Token, error) {
	for {
		select {
		case t := <-l.tokens:
			return t, nil
		default:
		}
		if l.err != nil {
			return Token{}, l.err
		}
		if l.state == nil {
			return Token{}, io.EOF
		}
		l.state = l.state(l)
	}
}

const (
	eof       rune = -1
	digits         = "0123456789"
	hexDigits      = digits + "abcdefABCDEF"
	letters        = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ_"
)

var runeTokens = map[rune]TokenType{
	'+': TokPlus,
	'-': TokMinus,
	'*': TokMult,
	'/': TokDivide,
	'%': TokModulo,
	'^': TokPower,
	'(': TokOParen,
	')': TokCParen,
	',': TokComma,
}

func lexSpace(l *Lexer) stateFn {
	for unicode.IsSpace(l.peek()) {
		l.next()
	}
	l.ignore()

	r := l.peek()
	switch {
	case r == eof:
		return nil
	case strings.ContainsRune(digits+".", r):
		return lexNumber
	case strings.ContainsRune(letters, r):
		return lexIdentifier
	}
	l.next()
	if t, ok := runeTokens[r]; ok {
		l.emit(t)
		return lexSpace
	}
	return l.errorf("Got unexpected rune %c", r)
}

// lexNumber scans decimal literals with optional fraction and
// exponent, and 0x / 0b prefixed integers.
func lexNumber(l *Lexer) stateFn {
	if l.accept("0") {
		switch {
		case l.accept("xX"):
			return lexDigits(hexDigits)
		case l.accept("bB"):
			return lexDigits("01")
		}
	}
	l.acceptRun(digits)
	if l.accept(".") {
		l.acceptRun(digits)
	}
	if l.accept("eE") {
		l.accept("+-")
		l.acceptRun(digits)
	}
	return lexNumberEnd
}

func lexDigits(set string) stateFn {
	return func(l *Lexer) stateFn {
		l.acceptRun(set)
		return lexNumberEnd
	}
}

// lexNumberEnd rejects numbers glued to a letter or a second dot.
func lexNumberEnd(l *Lexer) stateFn {
	if l.accept(letters + digits + ".") {
		return l.errorf("Bad number syntax %q", l.current())
	}
	l.emit(TokValue)
	return lexSpace
}

func lexIdentifier(l *Lexer) stateFn {
	l.acceptRun(letters + digits)
	l.emit(TokIdent)
	return lexSpace
}

func (l *Lexer) current() string {
	return l.input[l.start:l.pos]
}

func (l *Lexer) emit(t TokenType) {
	l.tokens <- Token{Type: t, Value: l.current(), Pos: l.start}
	l.start = l.pos
}

func (l *Lexer) errorf(format string, args ...interface{}) stateFn {
	l.err = fmt.Errorf(format, args...)
	return nil
}

func (l *Lexer) next() rune {
	if l.pos >= len(l.input) {
		l.width = 0
		return eof
	}
	r, w := utf8.DecodeRuneInString(l.input[l.pos:])
	l.width = w
	l.pos += w
	return r
}

func (l *Lexer) backup() {
	l.pos -= l.width
}

func (l *Lexer) peek() rune {
	r := l.next()
	l.backup()
	return r
}

func (l *Lexer) ignore() {
	l.start = l.pos
}

func (l *Lexer) accept(valid string) bool {
	if strings.ContainsRune(valid, l.next()) {
		return true
	}
	l.backup()
	return false
}

func (l *Lexer) acceptRun(valid string) {
	for strings.ContainsRune(valid, l.next()) {
	}
	l.backup()
}
