package formula

import (
	"io"
	"strings"
)

// Evaluator evaluates formulas. An Evaluator is safe for concurrent use as
// long as its Source is. The zero Evaluator is ready to use and draws random
// numbers from the runtime generator.
type Evaluator struct {
	rand Source
}

// New creates an Evaluator with the given options applied in order.
func New(opts ...Option) *Evaluator {
	var e Evaluator
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.evalOption(&e)
	}
	return &e
}

// Calc evaluates a formula with arguments bound to its placeholders. The
// n'th distinct placeholder name, in order of first appearance, takes the
// n'th argument. Extra arguments are ignored.
//
// The result is always finite. If the formula cannot be evaluated, the error
// is an *Error.
func (e *Evaluator) Calc(formula string, args ...float64) (float64, error) {
	return e.Eval(strings.NewReader(formula), args...)
}

// Eval is like Calc, but reads the formula from src until EOF. A nil src
// means that there is no formula, which fails with NullFormula. Errors from
// src other than io.EOF are returned as they are.
func (e *Evaluator) Eval(src io.RuneScanner, args ...float64) (float64, error) {
	n, err := e.parse(src, args)
	if err != nil {
		return 0, err
	}
	ctx := evalctx{rand: e.rand}
	if ctx.rand == nil {
		ctx.rand = runtimeSource{}
	}
	return n.eval(&ctx)
}

// Tree parses a formula without evaluating it and returns its expression
// tree, with every term bracketed and placeholders replaced by their values.
// The error is the one Calc would return for a formula that does not parse.
func (e *Evaluator) Tree(formula string, args ...float64) (string, error) {
	n, err := e.parse(strings.NewReader(formula), args)
	if err != nil {
		return "", err
	}
	return n.String(), nil
}

func (e *Evaluator) parse(src io.RuneScanner, args []float64) (*node, error) {
	if src == nil {
		return nil, plainerr(NullFormula, "no formula")
	}
	toks, _, err := tokenize(src, args)
	if err != nil {
		return nil, err
	}
	if toks[0].kind == tokenEOF {
		return nil, plainerr(EmptyFormula, "empty formula")
	}
	return parse(toks)
}

var std Evaluator

// Calc evaluates a formula using the default Evaluator.
func Calc(formula string, args ...float64) (float64, error) {
	return std.Calc(formula, args...)
}

// Eval evaluates a formula read from src using the default Evaluator.
func Eval(src io.RuneScanner, args ...float64) (float64, error) {
	return std.Eval(src, args...)
}

// Tree parses a formula using the default Evaluator and returns its
// expression tree.
func Tree(formula string, args ...float64) (string, error) {
	return std.Tree(formula, args...)
}
