package formula

import (
	"errors"
	"strings"
	"testing"
)

// haskind checks whether a parse tree contains a node of the given type.
func (n *node) haskind(k nodeKind) bool {
	if n == nil {
		return false
	}
	if n.kind == k {
		return true
	}
	for _, a := range n.args {
		if a.haskind(k) {
			return true
		}
	}
	return n.left.haskind(k) || n.right.haskind(k)
}

func parseString(src string, args ...float64) (*node, error) {
	toks, _, err := tokenize(strings.NewReader(src), args)
	if err != nil {
		return nil, err
	}
	return parse(toks)
}

func TestOpPrecsExist(t *testing.T) {
	for _, r := range Operators {
		if b := binop(string(r)); b.op == nodeNone {
			t.Errorf("no operator for %c", r)
		}
	}
	if binop("**") != binop("^") {
		t.Errorf("** is %+v but ^ is %+v", binop("**"), binop("^"))
	}
}

func TestUnaryPrec(t *testing.T) {
	if !unaryprec.moreBinding(binop("*")) {
		t.Error("unary minus binds less tightly than multiplication")
	}
	if unaryprec.moreBinding(binop("^")) {
		t.Error("unary minus binds more tightly than exponentiation")
	}
}

func TestParse(t *testing.T) {
	cases := []struct {
		name string
		src  string
		args []float64
		tree string
	}{
		{"num", "1", nil, "(1)"},
		{"placeholder", "$x", []float64{4}, "(4)"},
		{"pi", "PI", nil, "(3.141592653589793)"},
		{"add-mul", "2 + 3 * 4", nil, "([2] + [(3) * (4)])"},
		{"group", "(2 + 3) * 4", nil, "([(2) + (3)] * [4])"},
		{"sub-left", "1 - 2 - 3", nil, "([(1) - (2)] - [3])"},
		{"div-mul-left", "1 / 2 * 3", nil, "([(1) / (2)] * [3])"},
		{"pow-right", "2 ^ 3 ^ 2", nil, "([2] ^ [(3) ^ (2)])"},
		{"pow-stars", "2 ** 3", nil, "([2] ^ [3])"},
		{"neg-pow", "-2^2", nil, "(-[(2) ^ (2)])"},
		{"pow-neg", "2^-1", nil, "([2] ^ [-(1)])"},
		{"pow-neg-pow", "2^-3^2", nil, "([2] ^ [-([3] ^ [2])])"},
		{"neg-mul", "-2*3", nil, "([-(2)] * [3])"},
		{"mul-neg", "2 * -3", nil, "([2] * [-(3)])"},
		{"neg-neg", "- -2", nil, "(-[-(2)])"},
		{"neg-group", "-(1)", nil, "(-[1])"},
		{"plus", "+5", nil, "(5)"},
		{"call", "sqrt(16)", nil, "(sqrt[(16)])"},
		{"call-upper", "SQRT(16)", nil, "(sqrt[(16)])"},
		{"variadic", "min(5, 3, 8)", nil, "(min[(5), (3), (8)])"},
		{"niladic", "random()", nil, "(random[])"},
		{"call-expr", "pow(2, 1 + 1)", nil, "(pow[(2), ([1] + [1])])"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			n, err := parseString(c.src, c.args...)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			if n.haskind(nodeNone) {
				t.Errorf("%q has an invalid node: %v", c.src, n)
			}
			if got := n.String(); got != c.tree {
				t.Errorf("%q parsed wrong:\n\twant %s\n\tgot  %s", c.src, c.tree, got)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name  string
		src   string
		kind  ErrorKind
		start int
	}{
		{"trailing-op", "2 +", UnexpectedToken, 3},
		{"leading-op", "* 5", UnexpectedToken, 0},
		{"double-op", "1 +* 2", UnexpectedToken, 3},
		{"empty-group", "()", UnexpectedToken, 1},
		{"adjacent", "1 2", UnexpectedToken, 2},
		{"implicit-mul", "2 (3)", UnexpectedToken, 2},
		{"top-sep", "1, 2", UnexpectedToken, 1},
		{"group-sep", "(1, 2)", UnexpectedToken, 2},
		{"trailing-sep", "max(1,)", UnexpectedToken, 6},
		{"leading-sep", "max(,1)", UnexpectedToken, 4},
		{"bare-func", "sqrt", UnexpectedToken, 4},
		{"juxtaposed-func", "sqrt 4", UnexpectedToken, 5},
		{"arity-0", "sqrt()", ArityMismatch, 0},
		{"arity-pow", "1 + pow(1)", ArityMismatch, 4},
		{"arity-min", "min(1)", ArityMismatch, 0},
		{"arity-random", "random(1)", ArityMismatch, 0},
		{"unknown-call", "foo(1)", UnknownFunction, 0},
		{"unknown-name", "2 * height", UnknownFunction, 4},
		{"unclosed", "(1 + 2", UnbalancedParentheses, 0},
		{"unclosed-call", "sqrt(pow(2, 2)", UnbalancedParentheses, 4},
		{"unopened", "1 + 2)", UnbalancedParentheses, 5},
		{"backwards", ")(", UnbalancedParentheses, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			n, err := parseString(c.src)
			if err == nil {
				t.Fatalf("%q parsed without error to %v", c.src, n)
			}
			var ferr *Error
			if !errors.As(err, &ferr) {
				t.Fatalf("%q gave non-*Error %#v", c.src, err)
			}
			if ferr.Kind != c.kind {
				t.Errorf("%q gave wrong kind: want %v, got %v (%v)", c.src, c.kind, ferr.Kind, err)
			}
			if ferr.Start != c.start {
				t.Errorf("%q gave wrong position: want %d, got %d (%v)", c.src, c.start, ferr.Start, err)
			}
			if !errors.Is(err, c.kind) {
				t.Errorf("errors.Is(%v, %v) is false", err, c.kind)
			}
		})
	}
}
