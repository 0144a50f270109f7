// Package plot samples compiled expressions into point sequences for a
// renderer.
package plot

// An Evaluator is a compiled expression of at most one free variable,
// typically a *meval.Expression.
type Evaluator interface {
	Variables() []string
	Eval(args ...float64) (float64, error)
}

// Default is the value used for every x where the evaluation fails.
const Default = 0.0

// Point is one sample of a plotted function.
type Point struct {
	X, Y float64
}

// Domain is the closed range of x values to sample.
type Domain struct {
	Min, Max float64
}

// DefaultDomain is used when the renderer does not provide visible
// bounds.
var DefaultDomain = Domain{Min: -10, Max: 10}

// Func returns the callback handed to a renderer: it maps x to the
// value of e. Expressions without free variable ignore x and plot as a
// constant. Failed evaluations yield Default.
func Func(e Evaluator) func(x float64) float64 {
	if len(e.Variables()) == 0 {
		y, err := e.Eval()
		if err != nil {
			y = Default
		}
		return func(float64) float64 { return y }
	}
	return func(x float64) float64 {
		y, err := e.Eval(x)
		if err != nil {
			return Default
		}
		return y
	}
}

// Sample evaluates e at count x values evenly spaced over d, both
// bounds included. A count of one samples d.Min, a count below one
// returns nil.
func Sample(e Evaluator, d Domain, count int) []Point {
	if count <= 0 {
		return nil
	}
	f := Func(e)
	points := make([]Point, count)
	step := 0.0
	if count > 1 {
		step = (d.Max - d.Min) / float64(count-1)
	}
	for i := range points {
		x := d.Min + float64(i)*step
		if i == count-1 && count > 1 {
			x = d.Max
		}
		points[i] = Point{X: x, Y: f(x)}
	}
	return points
}
