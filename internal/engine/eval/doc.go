// Package eval evaluates arithmetic expressions into canonical decimal
// strings. It is the numeric core of the calculator engine.
//
// The package provides:
//
//   - Glyph normalization (the display operators × and ÷ map to * and /)
//   - A recursive-descent parser over a fixed, closed grammar
//   - Standard operator precedence with left associativity; unary minus
//     is right-associative and binds tighter than * and /
//   - Canonical decimal formatting: results are rounded to ten decimal
//     places, then trailing zeros and a trailing point are stripped
//
// Evaluation never panics and never executes input as code. Failures
// are values: Evaluate returns a tagged Outcome distinguishing an empty
// input, a malformed expression, and a mathematically undefined result
// (division by zero, non-finite values).
//
// Basic usage:
//
//	out := eval.Evaluate("7 + 3")
//	if out.Kind == eval.KindValue {
//	    fmt.Println(out.Value) // "10"
//	}
//
// Evaluate is a pure function: the same input always yields the same
// outcome, and there are no observable side effects.
package eval
