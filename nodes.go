package formula

import (
	"strconv"
	"strings"
)

// node is a node in the expression tree of a formula.
type node struct {
	kind nodeKind

	// num is the value of a nodeNum.
	num float64
	// name and fn are the function of a nodeCall.
	name string
	fn   fn

	left  *node
	right *node
	// args are the arguments of a nodeCall.
	args []*node

	// start and end are the rune offsets of the text the node was parsed
	// from. For operators, they cover only the operator token.
	start, end int
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeNum  // literal, constant, or placeholder value
	nodeCall // call fn with args

	nodeNeg // evaluate left, then negate
	nodeAdd // evaluate left, add right
	nodeSub // evaluate left, sub right
	nodeMul // evaluate left, mul right
	nodeDiv // evaluate left, div by right
	nodePow // evaluate left, exp by right
)

var nodeNames = [...]string{
	nodeNone: "None",
	nodeNum:  "Num",
	nodeCall: "Call",
	nodeNeg:  "Neg",
	nodeAdd:  "Add",
	nodeSub:  "Sub",
	nodeMul:  "Mul",
	nodeDiv:  "Div",
	nodePow:  "Pow",
}

func (k nodeKind) String() string {
	if k < 0 || int(k) >= len(nodeNames) {
		return "nodeKind(" + strconv.Itoa(int(k)) + ")"
	}
	return nodeNames[k]
}

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b, false)
	return b.String()
}

// fmt writes the node with every term bracketed, alternating round and square
// brackets by depth.
func (n *node) fmt(b *strings.Builder, square bool) {
	var l, r byte = '(', ')'
	if square {
		l, r = '[', ']'
	}
	b.WriteByte(l)
	defer b.WriteByte(r)
	switch n.kind {
	case nodeNum:
		b.WriteString(strconv.FormatFloat(n.num, 'g', -1, 64))
	case nodeCall:
		b.WriteString(n.name)
		n.fmtargs(b, !square)
	case nodeNeg:
		b.WriteByte('-')
		n.left.fmt(b, !square)
	case nodeAdd:
		n.fmtbin(b, square, " + ")
	case nodeSub:
		n.fmtbin(b, square, " - ")
	case nodeMul:
		n.fmtbin(b, square, " * ")
	case nodeDiv:
		n.fmtbin(b, square, " / ")
	case nodePow:
		n.fmtbin(b, square, " ^ ")
	default:
		panic("formula: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}

func (n *node) fmtbin(b *strings.Builder, square bool, op string) {
	n.left.fmt(b, !square)
	b.WriteString(op)
	n.right.fmt(b, !square)
}

func (n *node) fmtargs(b *strings.Builder, square bool) {
	var l, r byte = '(', ')'
	if square {
		l, r = '[', ']'
	}
	b.WriteByte(l)
	defer b.WriteByte(r)
	for i, a := range n.args {
		if i > 0 {
			b.WriteString(", ")
		}
		a.fmt(b, !square)
	}
}
