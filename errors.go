package formula

import "strconv"

// ErrorKind identifies the reason a formula could not be evaluated. An
// ErrorKind is itself an error, so callers can test for a kind with
// errors.Is(err, formula.DivisionByZero).
type ErrorKind int8

const (
	kindNone ErrorKind = iota
	// NullFormula means no formula was supplied at all.
	NullFormula
	// EmptyFormula means the formula is empty or only whitespace.
	EmptyFormula
	// UnknownToken means an unrecognized character or a malformed number,
	// identifier, or placeholder.
	UnknownToken
	// UnresolvedPlaceholder means a placeholder has no matching argument.
	UnresolvedPlaceholder
	// UnknownFunction means a name is neither a constant nor a function.
	UnknownFunction
	// ArityMismatch means a function was called with the wrong number of
	// arguments.
	ArityMismatch
	// UnexpectedToken means the formula is not grammatical, e.g. it has a
	// missing operand or trailing tokens.
	UnexpectedToken
	// UnbalancedParentheses means a parenthesis is never closed or a close
	// parenthesis has no open one.
	UnbalancedParentheses
	// DivisionByZero means a division had a zero divisor.
	DivisionByZero
	// NonFiniteResult means a computation produced an infinity or NaN.
	NonFiniteResult
)

var kindNames = [...]string{
	kindNone:              "kindNone",
	NullFormula:           "NullFormula",
	EmptyFormula:          "EmptyFormula",
	UnknownToken:          "UnknownToken",
	UnresolvedPlaceholder: "UnresolvedPlaceholder",
	UnknownFunction:       "UnknownFunction",
	ArityMismatch:         "ArityMismatch",
	UnexpectedToken:       "UnexpectedToken",
	UnbalancedParentheses: "UnbalancedParentheses",
	DivisionByZero:        "DivisionByZero",
	NonFiniteResult:       "NonFiniteResult",
}

func (k ErrorKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "ErrorKind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

func (k ErrorKind) Error() string {
	return "formula: " + k.String()
}

// ParseErrorKind returns the kind with the given name, as produced by
// ErrorKind.String. The second result is false if there is no such kind.
func ParseErrorKind(name string) (ErrorKind, bool) {
	for k, s := range kindNames {
		if k != int(kindNone) && s == name {
			return ErrorKind(k), true
		}
	}
	return kindNone, false
}

// Error is the error returned for any formula that cannot be evaluated. It
// implements InputError.
type Error struct {
	// Kind is the category of the error.
	Kind ErrorKind
	// Msg is a human-readable description.
	Msg string
	// Text is the source text of the offending token, if any.
	Text string
	// Start and End are the rune offsets of the offending text, End being
	// exclusive. Both are -1 when the error has no position.
	Start, End int
}

func (err *Error) Error() string {
	if err.Start < 0 {
		return "formula: " + err.Msg
	}
	return "formula: " + errpos(err.Start+1, err.Msg)
}

// Is reports whether target is err's kind.
func (err *Error) Is(target error) bool {
	k, ok := target.(ErrorKind)
	return ok && k == err.Kind
}

// Pos returns the 1-based column where the offending text begins, or 0 if the
// error has no position.
func (err *Error) Pos() int {
	return err.Start + 1
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return "column " + strconv.Itoa(pos) + ": " + msg
}

// tokerr creates an error located at a token.
func tokerr(kind ErrorKind, tok token, msg string) *Error {
	return &Error{Kind: kind, Msg: msg, Text: tok.text, Start: tok.start, End: tok.end}
}

// nodeerr creates an error located at the source span of a node.
func nodeerr(kind ErrorKind, n *node, msg string) *Error {
	return &Error{Kind: kind, Msg: msg, Start: n.start, End: n.end}
}

// plainerr creates an error with no position.
func plainerr(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg, Start: -1, End: -1}
}

// InputError is an error with position information. Every *Error implements
// InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the 1-based column of the
	// start of the text that caused it, or 0 if there is no such text.
	Pos() int
}

var _ InputError = (*Error)(nil)
