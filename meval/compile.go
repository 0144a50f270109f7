package meval

import (
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/chewxy/math32"
)

// Compile a new double precision expression from an input string,
// resolving constants with Constants.
func Compile(input string) (*Expression, error) {
	return CompileIn(Constants, input)
}

// CompileIn compiles an input string, resolving constants with
// ctx. A nil ctx means no constant at all.
func CompileIn(ctx Context, input string) (*Expression, error) {
	root, vars, err := buildAST(ctx, input, 64)
	if err != nil {
		return nil, err
	}
	return &Expression{input: input, root: root, vars: vars}, nil
}

// Compile32 compiles a single precision expression from an input
// string, resolving constants with Constants.
func Compile32(input string) (*Expression32, error) {
	return Compile32In(Constants, input)
}

// Compile32In compiles a single precision expression, resolving
// constants with ctx.
func Compile32In(ctx Context, input string) (*Expression32, error) {
	root, vars, err := buildAST(ctx, input, 32)
	if err != nil {
		return nil, err
	}
	return &Expression32{input: input, root: root, vars: vars}, nil
}

type outQueue struct {
	q []node
}

func (o *outQueue) unsafePop() node {
	expr := o.q[len(o.q)-1]
	o.q = o.q[0 : len(o.q)-1]
	return expr
}

func (o *outQueue) push(e node) {
	o.q = append(o.q, e)
}

func (o *outQueue) size() int {
	return len(o.q)
}

type queuePoper func(*outQueue) node

type operatorType uint

const (
	opStandard operatorType = iota
	opUnary
	opFunction
	opLeftParenthesis
)

type operator struct {
	oType            operatorType
	name             string
	precedence, card int
	leftAssociative  bool
	poper            queuePoper

	// only for parenthesis: size of the output when it was opened,
	// whether it opens a function call and how many commas it holds.
	mark   int
	call   bool
	commas int
}

type opStack struct {
	s []operator
}

func (o *opStack) unsafePop() operator {
	op := o.s[len(o.s)-1]
	o.s = o.s[0 : len(o.s)-1]
	return op
}

func (o *opStack) push(op operator) {
	o.s = append(o.s, op)
}

func (o *opStack) size() int {
	return len(o.s)
}

func (o *opStack) unsafeTop() *operator {
	return &o.s[len(o.s)-1]
}

func operatorFromFunction(f function) operator {
	op := operator{
		oType: opFunction,
		name:  f.name,
		card:  f.card,
	}
	if f.card == 1 {
		op.poper = poperForUnary(f.name, f.unary, f.unary32)
	} else {
		op.poper = poperForBinary(f.name, f.binary, f.binary32)
	}
	return op
}

var operators = make(map[TokenType]operator)

var unaryMinus = operator{
	oType:      opUnary,
	name:       "-",
	precedence: 4,
	card:       1,
	poper: poperForUnary("-",
		func(a float64) float64 { return -a },
		func(a float32) float32 { return -a }),
}

func poperForUnary(name string, evaluer unaryEvaluer, evaluer32 unaryEvaluer32) queuePoper {
	return func(output *outQueue) node {
		return &unaryExp{
			name:      name,
			child:     output.unsafePop(),
			evaluer:   evaluer,
			evaluer32: evaluer32,
		}
	}
}

func poperForBinary(name string, evaluer binaryEvaluer, evaluer32 binaryEvaluer32) queuePoper {
	return func(output *outQueue) node {
		return &binaryExp{
			name:       name,
			evaluer:    evaluer,
			evaluer32:  evaluer32,
			rightChild: output.unsafePop(),
			leftChild:  output.unsafePop(),
		}
	}
}

func registerOperator(t TokenType,
	precedence int,
	leftAssociative bool,
	evaluer binaryEvaluer,
	evaluer32 binaryEvaluer32) {
	operators[t] = operator{
		oType:           opStandard,
		name:            t.String(),
		poper:           poperForBinary(t.String(), evaluer, evaluer32),
		precedence:      precedence,
		leftAssociative: leftAssociative,
		card:            2,
	}
}

func init() {
	registerOperator(TokPlus, 2, true,
		func(a, b float64) float64 { return a + b },
		func(a, b float32) float32 { return a + b })
	registerOperator(TokMinus, 2, true,
		func(a, b float64) float64 { return a - b },
		func(a, b float32) float32 { return a - b })
	registerOperator(TokMult, 3, true,
		func(a, b float64) float64 { return a * b },
		func(a, b float32) float32 { return a * b })
	registerOperator(TokDivide, 3, true,
		func(a, b float64) float64 { return a / b },
		func(a, b float32) float32 { return a / b })
	registerOperator(TokModulo, 3, true, math.Mod, math32.Mod)
	registerOperator(TokPower, 5, false, math.Pow, math32.Pow)
}

func popOperatorFromStack(input string, output *outQueue, stack *opStack) error {
	if stack.size() == 0 {
		return compileErrorf(input, "Internal expression compilation error, stack should not be empty in popOperatorFromStack")
	}
	op := stack.unsafePop()
	if output.size() < op.card {
		return compileErrorf(input, "Evaluation stack error for '%s', need %d element, but only %d provided",
			op.name,
			op.card,
			output.size())
	}
	//will pop the stack and push it
	output.push(op.poper(output))
	return nil
}

func parseNumber(value string, bitSize int) (float64, error) {
	lower := strings.ToLower(value)
	if strings.HasPrefix(lower, "0x") || strings.HasPrefix(lower, "0b") {
		i, err := strconv.ParseUint(value, 0, 64)
		if err != nil {
			return 0, err
		}
		return float64(i), nil
	}
	return strconv.ParseFloat(value, bitSize)
}

// compiler holds the state of a single buildAST call.
type compiler struct {
	ctx    Context
	input  string
	bits   int
	output outQueue
	stack  opStack
	vars   []string
	slots  map[string]int

	// true when the next token must start an operand
	expectOperand bool
	// set after a function name, which must be followed by '('
	pendingCall string
	// set right after a free variable
	lastVar string
}

func buildAST(ctx Context, input string, bits int) (node, []string, error) {
	c := &compiler{
		ctx:           ctx,
		input:         input,
		bits:          bits,
		slots:         make(map[string]int),
		expectOperand: true,
	}
	l := NewLexer(input)

	for {
		t, err := l.Next()
		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, nil, &CompileError{Input: input, Msg: err.Error()}
		}

		if err := c.token(t); err != nil {
			return nil, nil, err
		}
	}

	root, err := c.finish()
	if err != nil {
		return nil, nil, err
	}
	return root, c.vars, nil
}

func (c *compiler) token(t Token) error {
	if c.pendingCall != "" && t.Type != TokOParen {
		return compileErrorf(c.input, "Function '%s' must be followed by '(' in %s", c.pendingCall, c.input)
	}
	if c.lastVar != "" && t.Type == TokOParen {
		return compileErrorf(c.input, "Unknown function '%s' in %s", c.lastVar, c.input)
	}
	c.lastVar = ""

	switch t.Type {
	case TokValue:
		return c.value(t)
	case TokIdent:
		return c.identifier(t)
	case TokComma:
		return c.comma()
	case TokOParen:
		return c.openParenthesis()
	case TokCParen:
		return c.closeParenthesis()
	}

	if c.expectOperand {
		switch t.Type {
		case TokMinus:
			c.stack.push(unaryMinus)
			return nil
		case TokPlus:
			// unary plus is a no-op
			return nil
		}
		return compileErrorf(c.input, "Missing operand before '%s' in %s", t.Value, c.input)
	}

	op1, ok := operators[t.Type]
	if ok == false {
		return compileErrorf(c.input, "Operator %s is not yet implemented", t.Value)
	}

	for c.stack.size() > 0 {
		op2 := c.stack.unsafeTop()
		if op2.oType != opStandard && op2.oType != opUnary {
			break
		}

		if op1.precedence < op2.precedence ||
			(op1.leftAssociative && op1.precedence == op2.precedence) {
			if err := popOperatorFromStack(c.input, &c.output, &c.stack); err != nil {
				return err
			}
			continue
		}

		break
	}
	c.stack.push(op1)
	c.expectOperand = true
	return nil
}

func (c *compiler) operand(t Token) error {
	if c.expectOperand == false {
		return compileErrorf(c.input, "Missing operator before '%s' in %s", t.Value, c.input)
	}
	c.expectOperand = false
	return nil
}

func (c *compiler) value(t Token) error {
	if err := c.operand(t); err != nil {
		return err
	}
	value, err := parseNumber(t.Value, c.bits)
	if err != nil {
		return compileErrorf(c.input, "Bad number syntax %q", t.Value)
	}
	c.output.push(&valueExp{value: value, value32: float32(value)})
	return nil
}

func (c *compiler) identifier(t Token) error {
	if err := c.operand(t); err != nil {
		return err
	}

	// checks for a function, a constant or a variable
	if fn, ok := functions[t.Value]; ok == true {
		c.stack.push(operatorFromFunction(fn))
		c.pendingCall = t.Value
		c.expectOperand = true
		return nil
	}

	if c.ctx != nil {
		if value, ok := c.ctx.Lookup(t.Value); ok == true {
			c.output.push(&valueExp{value: value, value32: float32(value)})
			return nil
		}
	}

	slot, ok := c.slots[t.Value]
	if ok == false {
		slot = len(c.vars)
		c.slots[t.Value] = slot
		c.vars = append(c.vars, t.Value)
	}
	c.output.push(&varExp{variable: t.Value, slot: slot})
	c.lastVar = t.Value
	return nil
}

func (c *compiler) openParenthesis() error {
	if c.expectOperand == false {
		return compileErrorf(c.input, "Missing operator before '(' in %s", c.input)
	}
	c.stack.push(operator{
		oType: opLeftParenthesis,
		name:  "(",
		mark:  c.output.size(),
		call:  c.pendingCall != "",
	})
	c.pendingCall = ""
	return nil
}

// popUntilParenthesis pops operators until a left parenthesis is on
// top of the stack. It returns false if none is found.
func (c *compiler) popUntilParenthesis() (bool, error) {
	for c.stack.size() > 0 && c.stack.unsafeTop().oType != opLeftParenthesis {
		if err := popOperatorFromStack(c.input, &c.output, &c.stack); err != nil {
			return false, err
		}
	}
	return c.stack.size() > 0, nil
}

func (c *compiler) comma() error {
	if c.expectOperand == true {
		return compileErrorf(c.input, "Missing operand before ',' in %s", c.input)
	}
	found, err := c.popUntilParenthesis()
	if err != nil {
		return err
	}
	if found == false || c.stack.unsafeTop().call == false {
		return compileErrorf(c.input, "Misplaced comma or mismatched parenthesis in %s", c.input)
	}
	c.stack.unsafeTop().commas++
	c.expectOperand = true
	return nil
}

func (c *compiler) closeParenthesis() error {
	paren := c.stack.size() > 0 && c.stack.unsafeTop().oType == opLeftParenthesis
	emptyCall := paren && c.stack.unsafeTop().call && c.stack.unsafeTop().commas == 0
	if c.expectOperand == true && emptyCall == false {
		return compileErrorf(c.input, "Missing operand before ')' in %s", c.input)
	}

	found, err := c.popUntilParenthesis()
	if err != nil {
		return err
	}
	if found == false {
		return compileErrorf(c.input, "Mismatched parenthesis in %s", c.input)
	}
	open := c.stack.unsafePop()
	c.expectOperand = false

	if open.call == false {
		if c.output.size() != open.mark+1 {
			return compileErrorf(c.input, "Empty parenthesis in %s", c.input)
		}
		return nil
	}

	// the function is right below its parenthesis
	fn := c.stack.unsafeTop()
	args := c.output.size() - open.mark
	if args != fn.card {
		return compileErrorf(c.input, "Function '%s' expects %d argument(s), got %d",
			fn.name, fn.card, args)
	}
	return popOperatorFromStack(c.input, &c.output, &c.stack)
}

func (c *compiler) finish() (node, error) {
	if c.pendingCall != "" {
		return nil, compileErrorf(c.input, "Function '%s' must be followed by '(' in %s", c.pendingCall, c.input)
	}
	if c.output.size() == 0 && c.stack.size() == 0 {
		return nil, compileErrorf(c.input, "Empty expression")
	}
	if c.expectOperand == true {
		return nil, compileErrorf(c.input, "Missing operand at the end of %s", c.input)
	}

	for c.stack.size() > 0 {
		if c.stack.unsafeTop().oType == opLeftParenthesis {
			return nil, compileErrorf(c.input, "Mismatched parenthesis in %s", c.input)
		}
		if err := popOperatorFromStack(c.input, &c.output, &c.stack); err != nil {
			return nil, err
		}
	}

	if c.output.size() != 1 {
		return nil, compileErrorf(c.input, "Evaluation stack error, still got %d element instead of 1 at the final state",
			c.output.size())
	}

	return c.output.unsafePop(), nil
}
