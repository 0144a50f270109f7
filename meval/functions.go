package meval

import (
	"math"
	"sort"

	"github.com/chewxy/math32"
)

type function struct {
	name     string
	card     int
	unary    unaryEvaluer
	unary32  unaryEvaluer32
	binary   binaryEvaluer
	binary32 binaryEvaluer32
}

var functions = make(map[string]function)

func registerFunction(name string, evaluer unaryEvaluer, evaluer32 unaryEvaluer32) {
	functions[name] = function{
		name:    name,
		card:    1,
		unary:   evaluer,
		unary32: evaluer32,
	}
}

func registerFunction2(name string, evaluer binaryEvaluer, evaluer32 binaryEvaluer32) {
	functions[name] = function{
		name:     name,
		card:     2,
		binary:   evaluer,
		binary32: evaluer32,
	}
}

// Functions returns the sorted list of function names known by the
// compiler.
func Functions() []string {
	res := make([]string, 0, len(functions))
	for name := range functions {
		res = append(res, name)
	}
	sort.Strings(res)
	return res
}

func signum(a float64) float64 {
	switch {
	case a > 0:
		return 1
	case a < 0:
		return -1
	}
	return a
}

func signum32(a float32) float32 {
	switch {
	case a > 0:
		return 1
	case a < 0:
		return -1
	}
	return a
}

func init() {
	registerFunction("sin", math.Sin, math32.Sin)
	registerFunction("cos", math.Cos, math32.Cos)
	registerFunction("tan", math.Tan, math32.Tan)
	registerFunction("asin", math.Asin, math32.Asin)
	registerFunction("acos", math.Acos, math32.Acos)
	registerFunction("atan", math.Atan, math32.Atan)
	registerFunction("sinh", math.Sinh, math32.Sinh)
	registerFunction("cosh", math.Cosh, math32.Cosh)
	registerFunction("tanh", math.Tanh, math32.Tanh)
	registerFunction("sqrt", math.Sqrt, math32.Sqrt)
	registerFunction("cbrt", math.Cbrt, math32.Cbrt)
	registerFunction("exp", math.Exp, math32.Exp)
	registerFunction("ln", math.Log, math32.Log)
	registerFunction("log", math.Log10, math32.Log10)
	registerFunction("log10", math.Log10, math32.Log10)
	registerFunction("log2", math.Log2, math32.Log2)
	registerFunction("abs", math.Abs, math32.Abs)
	registerFunction("ceil", math.Ceil, math32.Ceil)
	registerFunction("floor", math.Floor, math32.Floor)
	registerFunction("round", math.Round, math32.Round)
	registerFunction("signum", signum, signum32)

	registerFunction2("atan2", math.Atan2, math32.Atan2)
	registerFunction2("min", math.Min, math32.Min)
	registerFunction2("max", math.Max, math32.Max)
	registerFunction2("mod", math.Mod, math32.Mod)
	registerFunction2("pow", math.Pow, math32.Pow)
}
