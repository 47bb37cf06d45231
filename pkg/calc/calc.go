// Package calc evaluates arithmetic expressions for the "calculate" action.
package calc

import (
	"math"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/expr-lang/expr"
)

// Evaluator evaluates arithmetic expressions with the usual operator
// precedence, ^ or ** for powers, the constants pi and e, and common
// math functions.
type Evaluator struct {
	env     map[string]any
	options []expr.Option
}

// New creates an Evaluator.
func New() *Evaluator {
	env := map[string]any{
		"pi": math.Pi,
		"e":  math.E,
	}

	options := []expr.Option{expr.Env(env), expr.AsFloat64()}
	for name, fn := range map[string]func(float64) float64{
		"sqrt":   math.Sqrt,
		"exp":    math.Exp,
		"ln":     math.Log,
		"log":    math.Log10,
		"sin":    math.Sin,
		"cos":    math.Cos,
		"tan":    math.Tan,
		"asin":   math.Asin,
		"acos":   math.Acos,
		"atan":   math.Atan,
		"sinh":   math.Sinh,
		"cosh":   math.Cosh,
		"tanh":   math.Tanh,
		"signum": signum,
	} {
		options = append(options, expr.Function(name, unary(name, fn)))
	}

	return &Evaluator{env: env, options: options}
}

// Evaluate computes the numeric value of input.
func (e *Evaluator) Evaluate(input string) (float64, error) {
	if strings.TrimSpace(input) == "" {
		return 0, errors.New("empty expression")
	}

	program, err := expr.Compile(input, e.options...)
	if err != nil {
		return 0, errors.New(firstLine(err.Error()))
	}

	out, err := expr.Run(program, e.env)
	if err != nil {
		return 0, errors.New(firstLine(err.Error()))
	}

	v, ok := toFloat(out)
	if !ok {
		return 0, errors.Newf("expression did not evaluate to a number")
	}
	return v, nil
}

// Format renders v as the shortest decimal that round-trips, without an
// exponent: 8, 3.5, 0.1.
func Format(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	case math.IsNaN(v):
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func unary(name string, fn func(float64) float64) func(params ...any) (any, error) {
	return func(params ...any) (any, error) {
		if len(params) != 1 {
			return nil, errors.Newf("%s expects 1 argument, got %d", name, len(params))
		}
		x, ok := toFloat(params[0])
		if !ok {
			return nil, errors.Newf("%s expects a number", name)
		}
		return fn(x), nil
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func signum(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return x
	}
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return strings.TrimSpace(line)
}
