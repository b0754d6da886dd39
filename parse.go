package formula

import (
	"strconv"
)

// Expr = num | placeholder | constant | Call | Neg | Plus | Add | Sub | Mul | Div | Pow | '(' Expr ')'
// Call = funcname '(' [ Expr { ',' Expr } ] ')'
// Neg = '-' Expr
// Plus = '+' Expr
// Add = Expr '+' Expr
// Sub = Expr '-' Expr
// Mul = Expr '*' Expr
// Div = Expr '/' Expr
// Pow = Expr '^' Expr | Expr '**' Expr
//
// Pow binds tighter than Neg, which binds tighter than Mul and Div, which bind
// tighter than Add and Sub. Pow is right-associative; the rest are left.

// parser holds a token sequence produced by tokenize and a cursor into it.
type parser struct {
	toks []token
	pos  int
}

// next scans the next token. Once the cursor reaches the end, next keeps
// returning the final EOF token.
func (p *parser) next() token {
	tok := p.peek()
	p.pos++
	return tok
}

// peek returns the next token without consuming it.
func (p *parser) peek() token {
	if p.pos >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos]
}

// push unreads the last token scanned.
func (p *parser) push() {
	p.pos--
}

// parse builds an expression tree from a token sequence ending in EOF.
func parse(toks []token) (*node, error) {
	if err := checkparens(toks); err != nil {
		return nil, err
	}
	p := parser{toks: toks}
	n, err := p.parseterm(exprprec)
	if err != nil {
		return nil, err
	}
	if tok := p.next(); tok.kind != tokenEOF {
		return nil, itShouldNotHaveEndedThisWay(tok, false)
	}
	return n, nil
}

// checkparens verifies that parentheses are balanced before parsing, so that
// depth mismatches are reported as such rather than as whatever grammar error
// the parser would find first.
func checkparens(toks []token) error {
	var open []token
	for _, tok := range toks {
		switch tok.kind {
		case tokenOpen:
			open = append(open, tok)
		case tokenClose:
			if len(open) == 0 {
				return tokerr(UnbalancedParentheses, tok, "close parenthesis with no open parenthesis")
			}
			open = open[:len(open)-1]
		}
	}
	if len(open) != 0 {
		return tokerr(UnbalancedParentheses, open[len(open)-1], "open parenthesis with no close parenthesis")
	}
	return nil
}

// parseterm parses operators of higher precedence than until. If there is no
// error, then the token that ended the term is left unscanned.
func (p *parser) parseterm(until operator) (*node, error) {
	n, err := p.parselhs(until)
	if err != nil {
		return nil, err
	}
	for {
		tok := p.next()
		if tok.kind != tokenOp {
			// End of term. The caller decides whether this token is valid.
			p.push()
			return n, nil
		}
		prec := binop(tok.text)
		if prec.op == nodeNone {
			panic("formula: unknown operator token " + tok.String())
		}
		if !prec.moreBinding(until) {
			p.push()
			return n, nil
		}
		rhs, err := p.parseterm(prec)
		if err != nil {
			return nil, err
		}
		n = &node{kind: prec.op, left: n, right: rhs, start: tok.start, end: tok.end}
	}
}

// parselhs parses the first component of a term. I.e., operators are unary
// and any encountered token must be valid as the start of a subexpression.
func (p *parser) parselhs(until operator) (*node, error) {
	tok := p.next()
	switch tok.kind {
	case tokenNum, tokenPlaceholder:
		return &node{kind: nodeNum, num: tok.num, start: tok.start, end: tok.end}, nil
	case tokenIdent:
		return p.parsecall(tok)
	case tokenOp:
		if tok.text != "-" && tok.text != "+" {
			return nil, tokerr(UnexpectedToken, tok, "missing operand before "+strconv.Quote(tok.text))
		}
		prec := unaryprec
		if !prec.moreBinding(until) {
			// x^-y -> x^(-y)
			// Just use the enclosing operator's precedence to simplify.
			prec.prec, prec.right = until.prec, until.right
		}
		rhs, err := p.parseterm(prec)
		if err != nil {
			return nil, err
		}
		if tok.text == "+" {
			return rhs, nil
		}
		return &node{kind: nodeNeg, left: rhs, start: tok.start, end: tok.end}, nil
	case tokenOpen:
		n, err := p.parseterm(exprprec)
		if err != nil {
			return nil, err
		}
		if end := p.next(); end.kind != tokenClose {
			return nil, itShouldNotHaveEndedThisWay(end, true)
		}
		return n, nil
	case tokenClose:
		return nil, tokerr(UnexpectedToken, tok, "missing operand before )")
	case tokenSep:
		return nil, tokerr(UnexpectedToken, tok, "missing operand before ,")
	case tokenEOF:
		return nil, tokerr(UnexpectedToken, tok, "unexpected end of formula")
	default:
		panic("formula: unknown token: " + tok.String())
	}
}

// parsecall parses a call to the function named by tok, checking the number
// of arguments.
func (p *parser) parsecall(tok token) (*node, error) {
	f := funcs[tok.text]
	if f == nil {
		return nil, tokerr(UnknownFunction, tok, "unknown function "+strconv.Quote(tok.text))
	}
	if open := p.next(); open.kind != tokenOpen {
		return nil, tokerr(UnexpectedToken, open, "expected ( after "+tok.text)
	}
	args, end, err := p.parsearglist()
	if err != nil {
		return nil, err
	}
	if !f.canCall(len(args)) {
		msg := "cannot call " + tok.text + " with " + strconv.Itoa(len(args)) + " arguments; it takes " + f.arity()
		return nil, &Error{Kind: ArityMismatch, Msg: msg, Text: tok.text, Start: tok.start, End: end.end}
	}
	return &node{kind: nodeCall, name: tok.text, fn: f, args: args, start: tok.start, end: end.end}, nil
}

// parsearglist parses a comma-separated list of zero or more arguments
// following an open parenthesis. The second result is the close parenthesis.
func (p *parser) parsearglist() ([]*node, token, error) {
	if tok := p.next(); tok.kind == tokenClose {
		return nil, tok, nil
	}
	p.push()
	var args []*node
	for {
		n, err := p.parseterm(exprprec)
		if err != nil {
			return nil, token{}, err
		}
		args = append(args, n)
		end := p.next()
		switch end.kind {
		case tokenClose:
			return args, end, nil
		case tokenSep:
			// next argument
		default:
			return nil, token{}, itShouldNotHaveEndedThisWay(end, true)
		}
	}
}

// itShouldNotHaveEndedThisWay returns an error appropriate for an unexpected
// token at the end of a subexpression. paren is whether the subexpression was
// inside parentheses.
func itShouldNotHaveEndedThisWay(tok token, paren bool) error {
	switch tok.kind {
	case tokenEOF:
		// checkparens should have caught this.
		return tokerr(UnbalancedParentheses, tok, "open parenthesis with no close parenthesis")
	case tokenClose:
		if paren {
			panic("formula: it really should not have ended this way: " + tok.String())
		}
		return tokerr(UnbalancedParentheses, tok, "close parenthesis with no open parenthesis")
	case tokenSep:
		return tokerr(UnexpectedToken, tok, "separator outside a function call")
	case tokenNum, tokenPlaceholder, tokenIdent, tokenOpen:
		return tokerr(UnexpectedToken, tok, "missing operator before "+strconv.Quote(tok.text))
	default:
		panic("formula: it really should not have ended this way: " + tok.String())
	}
}

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
	// op is the node kind to use when this operator is selected.
	op nodeKind
}

func (p operator) moreBinding(than operator) bool {
	if p.prec != than.prec {
		return p.prec > than.prec
	}
	return p.right
}

// binop gets a binary operator for a token string. If there is no such binary
// operator, then the result has an op of nodeNone.
func binop(text string) operator {
	switch text {
	case "+":
		return operator{1, false, nodeAdd}
	case "-":
		return operator{1, false, nodeSub}
	case "*":
		return operator{5, false, nodeMul}
	case "/":
		return operator{5, false, nodeDiv}
	case "^", "**":
		return operator{15, true, nodePow}
	default:
		return operator{}
	}
}

var (
	// unaryprec is the precedence of unary minus and plus.
	unaryprec = operator{10, true, nodeNeg}
	// exprprec is the precedence required to parse an entire subexpression.
	exprprec = operator{-128, true, nodeNone}
)
