package formula

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"
)

type token struct {
	kind tokenKind
	text string
	// num is the value of a number token, including resolved constants and
	// placeholders.
	num float64
	// start and end are rune offsets into the formula.
	start, end int
}

func (t token) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.start)
}

type tokenKind int8

const (
	tokenNone tokenKind = iota
	// tokenEOF indicates the end of the input.
	tokenEOF
	// tokenNum is a numeric literal or a named constant.
	tokenNum
	// tokenIdent is a function name, folded to lower case.
	tokenIdent
	// tokenPlaceholder is a $name. Its value is resolved by tokenize.
	tokenPlaceholder
	// tokenOp is an operator. ** is a single token meaning the same as ^.
	tokenOp
	// tokenSep is a function argument separator.
	tokenSep
	// tokenOpen is (.
	tokenOpen
	// tokenClose is ).
	tokenClose
)

var tokenNames = [...]string{
	tokenNone:        "None",
	tokenEOF:         "EOF",
	tokenNum:         "Num",
	tokenIdent:       "Ident",
	tokenPlaceholder: "Placeholder",
	tokenOp:          "Op",
	tokenSep:         "Sep",
	tokenOpen:        "Open",
	tokenClose:       "Close",
}

func (k tokenKind) String() string {
	if k < 0 || int(k) >= len(tokenNames) {
		return "tokenKind(" + strconv.Itoa(int(k)) + ")"
	}
	return tokenNames[k]
}

// Operators contains the runes which are considered to be operators. A pair
// of asterisks is also an operator, the same as ^.
const Operators = "+-*/^"

// Sigil is the rune that introduces a placeholder.
const Sigil = '$'

type lexer struct {
	src  io.RuneScanner
	buf  strings.Builder
	rune int
	eof  bool
}

func lex(src io.RuneScanner) *lexer {
	return &lexer{src: src}
}

// readRune reads a rune from the src and updates the lexer's position info.
func (l *lexer) readRune() (r rune, err error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.rune++
	}
	return r, err
}

// unreadRune unreads a rune from the src and updates the lexer's position
// info. Panics if unreading returns an error.
func (l *lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.rune--
}

// peek returns the next rune without consuming it. ok is false at the end of
// the input.
func (l *lexer) peek() (r rune, ok bool, err error) {
	r, err = l.readRune()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, false, nil
		}
		return 0, false, err
	}
	l.unreadRune()
	return r, true, nil
}

// next scans the next token from the input. The first time EOF is
// encountered, the result is an EOF token with a nil error. Subsequent times,
// the result is an empty token with io.EOF.
func (l *lexer) next() (token, error) {
	if l.eof {
		return token{}, io.EOF
	}
	defer l.buf.Reset()
	for {
		tok := token{start: l.rune}
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				tok.kind = tokenEOF
				tok.end = tok.start
				l.eof = true
				return tok, nil
			}
			return tok, err
		}
		switch {
		case unicode.IsSpace(r):
			continue
		case '0' <= r && r <= '9', r == '.':
			l.unreadRune()
			if err := l.scanNum(&tok); err != nil {
				return tok, err
			}
			return tok, nil
		case r == Sigil:
			l.buf.WriteRune(r)
			if err := l.scanPlaceholder(&tok); err != nil {
				return tok, err
			}
			return tok, nil
		case r == '_', unicode.IsLetter(r):
			l.unreadRune()
			if err := l.scanIdent(&tok); err != nil {
				return tok, err
			}
			return tok, nil
		case r == ',':
			tok.kind, tok.text, tok.end = tokenSep, ",", l.rune
			return tok, nil
		case r == '(':
			tok.kind, tok.text, tok.end = tokenOpen, "(", l.rune
			return tok, nil
		case r == ')':
			tok.kind, tok.text, tok.end = tokenClose, ")", l.rune
			return tok, nil
		case r == '*':
			tok.kind, tok.text = tokenOp, "*"
			p, ok, err := l.peek()
			if err != nil {
				return tok, err
			}
			if ok && p == '*' {
				l.readRune()
				tok.text = "**"
			}
			tok.end = l.rune
			return tok, nil
		case strings.ContainsRune(Operators, r):
			tok.kind, tok.text, tok.end = tokenOp, string(r), l.rune
			return tok, nil
		default:
			// Write the rune so that it shows up in the error message.
			l.buf.WriteRune(r)
			return tok, l.error(&tok, "unrecognized character")
		}
	}
}

// scanNum scans a decimal literal: digits with at most one point and no
// exponent. A literal running directly into a letter, digit, point,
// underscore, or sigil is malformed.
func (l *lexer) scanNum(tok *token) error {
	var dig, dot, bad bool
scan:
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		switch {
		case '0' <= r && r <= '9':
			dig = true
		case r == '.':
			if dot {
				bad = true
			}
			dot = true
		case r == '_', r == Sigil, unicode.IsLetter(r), unicode.IsDigit(r):
			bad = true
		default:
			l.unreadRune()
			break scan
		}
		l.buf.WriteRune(r)
	}
	if bad || !dig {
		return l.error(tok, "malformed number")
	}
	tok.text = l.buf.String()
	tok.end = l.rune
	v, err := strconv.ParseFloat(tok.text, 64)
	if err != nil {
		// The syntax is already checked, so this is a range error.
		return l.error(tok, "number out of range")
	}
	tok.kind = tokenNum
	tok.num = v
	return nil
}

// scanPlaceholder scans the name following a sigil, which has already been
// written to the buffer.
func (l *lexer) scanPlaceholder(tok *token) error {
	first := true
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		if r == '_' || isASCIILetter(r) || !first && '0' <= r && r <= '9' {
			l.buf.WriteRune(r)
			first = false
			continue
		}
		l.unreadRune()
		break
	}
	tok.text = l.buf.String()
	tok.end = l.rune
	if first {
		return l.error(tok, "placeholder without a name")
	}
	tok.kind = tokenPlaceholder
	return nil
}

// scanIdent scans a name. Names are letters only; a run that includes digits
// or underscores is malformed rather than being split into several tokens.
func (l *lexer) scanIdent(tok *token) error {
	bad := false
scan:
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				// next unreads the rune that decides ident scanning before
				// calling scanIdent, so we have scanned at least one rune.
				break
			}
			return err
		}
		switch {
		case unicode.IsLetter(r):
		case r == '_', r == '.', unicode.IsDigit(r):
			bad = true
		default:
			l.unreadRune()
			break scan
		}
		l.buf.WriteRune(r)
	}
	tok.text = l.buf.String()
	tok.end = l.rune
	if bad {
		return l.error(tok, "malformed name")
	}
	tok.kind = tokenIdent
	return nil
}

// error creates an UnknownToken error covering the text scanned so far.
func (l *lexer) error(tok *token, msg string) error {
	tok.text = l.buf.String()
	tok.end = l.rune
	return tokerr(UnknownToken, *tok, msg+" "+strconv.Quote(tok.text))
}

func isASCIILetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z'
}

// bindings maps placeholder names to argument values. names holds the names
// in order of first appearance; the i'th name is bound to the i'th argument.
type bindings struct {
	names []string
	vals  map[string]float64
}

// bind looks up a placeholder, binding it to the next argument if it has not
// been seen. ok is false if there are no arguments left.
func (b *bindings) bind(name string, args []float64) (v float64, ok bool) {
	if v, ok := b.vals[name]; ok {
		return v, true
	}
	k := len(b.names)
	if k >= len(args) {
		return 0, false
	}
	if b.vals == nil {
		b.vals = make(map[string]float64)
	}
	b.names = append(b.names, name)
	b.vals[name] = args[k]
	return args[k], true
}

// tokenize scans an entire formula. Constants become number tokens and
// placeholders carry their bound values, so the parser never sees a name
// other than a function name. The result always ends with an EOF token.
func tokenize(src io.RuneScanner, args []float64) ([]token, *bindings, error) {
	scan := lex(src)
	b := new(bindings)
	var toks []token
	for {
		tok, err := scan.next()
		if err != nil {
			return nil, nil, err
		}
		switch tok.kind {
		case tokenIdent:
			tok.text = strings.ToLower(tok.text)
			if v, ok := constants[tok.text]; ok {
				tok.kind = tokenNum
				tok.num = v
			}
		case tokenPlaceholder:
			v, ok := b.bind(tok.text[1:], args)
			if !ok {
				msg := "no argument for placeholder " + tok.text + " (" + strconv.Itoa(len(args)) + " given)"
				return nil, nil, tokerr(UnresolvedPlaceholder, tok, msg)
			}
			tok.num = v
		}
		toks = append(toks, tok)
		if tok.kind == tokenEOF {
			return toks, b, nil
		}
	}
}
