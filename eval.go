package formula

import (
	"math"
	"strconv"
)

// evalctx is the state for evaluating one expression tree.
type evalctx struct {
	rand Source
}

// eval computes the node's value. Every intermediate result must be finite.
func (n *node) eval(ctx *evalctx) (float64, error) {
	var r float64
	switch n.kind {
	case nodeNum:
		r = n.num
	case nodeCall:
		args := make([]float64, len(n.args))
		for i, a := range n.args {
			v, err := a.eval(ctx)
			if err != nil {
				return 0, err
			}
			args[i] = v
		}
		r = n.fn.call(ctx, args)
	case nodeNeg:
		v, err := n.left.eval(ctx)
		if err != nil {
			return 0, err
		}
		r = -v
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodePow:
		l, err := n.left.eval(ctx)
		if err != nil {
			return 0, err
		}
		rv, err := n.right.eval(ctx)
		if err != nil {
			return 0, err
		}
		switch n.kind {
		case nodeAdd:
			r = l + rv
		case nodeSub:
			r = l - rv
		case nodeMul:
			r = l * rv
		case nodeDiv:
			// Matches -0 as well.
			if rv == 0 {
				return 0, nodeerr(DivisionByZero, n, "division by zero")
			}
			r = l / rv
		case nodePow:
			r = math.Pow(l, rv)
		}
	default:
		panic("formula: invalid expression node " + n.kind.String())
	}
	if math.IsInf(r, 0) || math.IsNaN(r) {
		return 0, nodeerr(NonFiniteResult, n, n.describe()+" is "+strconv.FormatFloat(r, 'g', -1, 64))
	}
	return r, nil
}

// describe names a node for error messages.
func (n *node) describe() string {
	switch n.kind {
	case nodeNum:
		return "value"
	case nodeCall:
		return "result of " + n.name
	case nodeNeg:
		return "negation"
	case nodeAdd:
		return "sum"
	case nodeSub:
		return "difference"
	case nodeMul:
		return "product"
	case nodeDiv:
		return "quotient"
	case nodePow:
		return "power"
	default:
		return n.kind.String()
	}
}
