package formula

import (
	"math"
	"math/big"
	"sort"

	"github.com/zephyrtronium/bigfloat"
)

// fn is a function from reals to reals.
type fn interface {
	// call evaluates the function on args, which has a length for which
	// canCall returned true.
	call(ctx *evalctx, args []float64) float64

	// canCall returns whether the function can be called with n arguments.
	// The parser rejects any call for which this is false.
	canCall(n int) bool

	// arity describes the accepted argument counts for error messages.
	arity() string
}

var funcs = map[string]fn{
	"sqrt":  monadic(math.Sqrt),
	"abs":   monadic(math.Abs),
	"ceil":  monadic(math.Ceil),
	"floor": monadic(math.Floor),
	"round": monadic(roundHalfUp),
	"sin":   monadic(math.Sin),
	"cos":   monadic(math.Cos),
	"tan":   monadic(math.Tan),
	"log":   monadic(math.Log),
	"exp":   monadic(math.Exp),

	"pow": dyadic(math.Pow),

	"min": fold(math.Min),
	"max": fold(math.Max),

	"random": niladic(func(ctx *evalctx) float64 { return ctx.rand.Float64() }),
}

// FuncNames returns the names of the available functions, sorted.
func FuncNames() []string {
	r := make([]string, 0, len(funcs))
	for k := range funcs {
		r = append(r, k)
	}
	sort.Strings(r)
	return r
}

// constPrec is the precision in bits to which named constants are computed
// before rounding to float64. It leaves enough guard bits that the rounding
// is correct.
const constPrec = 128

var constants = map[string]float64{
	"pi": bigconst(bigfloat.Pi),
	"e": bigconst(func(out *big.Float) *big.Float {
		one := new(big.Float).SetPrec(constPrec).SetFloat64(1)
		return bigfloat.Exp(out, one)
	}),
}

// bigconst computes a constant to constPrec bits and rounds it to the
// nearest float64.
func bigconst(f func(out *big.Float) *big.Float) float64 {
	r := new(big.Float).SetPrec(constPrec)
	f(r)
	v, _ := r.Float64()
	return v
}

// roundHalfUp rounds to the nearest integer, with halves rounding toward
// positive infinity.
func roundHalfUp(x float64) float64 {
	f := math.Floor(x)
	if x-f >= 0.5 {
		f++
	}
	return f
}

type monadic func(float64) float64

func (m monadic) call(ctx *evalctx, args []float64) float64 {
	return m(args[0])
}

func (m monadic) canCall(n int) bool {
	return n == 1
}

func (m monadic) arity() string {
	return "exactly 1 argument"
}

type dyadic func(x, y float64) float64

func (d dyadic) call(ctx *evalctx, args []float64) float64 {
	return d(args[0], args[1])
}

func (d dyadic) canCall(n int) bool {
	return n == 2
}

func (d dyadic) arity() string {
	return "exactly 2 arguments"
}

// fold is a binary function extended to two or more arguments by applying it
// left to right: f(a, b, c) = f(f(a, b), c).
type fold func(x, y float64) float64

func (f fold) call(ctx *evalctx, args []float64) float64 {
	r := args[0]
	for _, v := range args[1:] {
		r = f(r, v)
	}
	return r
}

func (f fold) canCall(n int) bool {
	return n >= 2
}

func (f fold) arity() string {
	return "at least 2 arguments"
}

type niladic func(ctx *evalctx) float64

func (z niladic) call(ctx *evalctx, args []float64) float64 {
	return z(ctx)
}

func (z niladic) canCall(n int) bool {
	return n == 0
}

func (z niladic) arity() string {
	return "no arguments"
}
