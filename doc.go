// Package formula evaluates small arithmetic formulas given as text.
//
// A formula is ordinary infix math: "2 + 3 * 4", "(a) ^ b", "sqrt(x)".
// Placeholders are written with a dollar sign, "$price * (1 + $rate)", and
// are bound to the numeric arguments of Calc in the order their names first
// appear. Repeating a placeholder reuses its value rather than consuming
// another argument, so "$a + $a" needs only one argument.
//
// "-2^2" is the same as "-(2^2)", and "^" (or "**") is right-associative.
// The names pi and e are constants; sqrt, pow, abs, ceil, floor, round, sin,
// cos, tan, log, exp, min, max, and random are functions. Names are not case
// sensitive, but placeholders are.
//
// Every call is independent: the formula is tokenized, parsed, and evaluated
// from scratch, and the result is always a finite float64 or an *Error.
//
package formula
