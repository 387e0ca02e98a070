package eval

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Display glyphs accepted in raw input.
const (
	GlyphMultiply = '×'
	GlyphDivide   = '÷'
)

// Internal parse failures, mapped onto Outcome kinds by Evaluate.
var (
	errSyntax    = errors.New("malformed expression")
	errUndefined = errors.New("undefined result")
)

// Evaluate parses and evaluates an arithmetic expression.
//
// Display glyphs for multiply and divide are mapped to their canonical
// operators and all whitespace is removed before validation. The
// grammar is:
//
//	expr    := term (('+'|'-') term)*
//	term    := unary (('*'|'/') unary)*
//	unary   := '-' unary | primary
//	primary := NUMBER | '(' expr ')'
func Evaluate(raw string) Outcome {
	src := normalize(raw)
	if src == "" {
		return Empty
	}

	for i := 0; i < len(src); i++ {
		if !isExprByte(src[i]) {
			return Invalid
		}
	}

	p := &parser{input: src}
	v, err := p.parseExpr()
	if err == nil && p.pos < len(p.input) {
		// Trailing input the grammar could not consume, e.g. "1)2".
		err = errSyntax
	}
	if err != nil {
		if errors.Is(err, errUndefined) {
			return Error
		}
		return Invalid
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Error
	}

	return ValueOf(Canonical(v))
}

// Canonical formats v as a canonical decimal string: rounded to ten
// decimal places, trailing zeros and a trailing decimal point stripped,
// never in scientific notation.
//
// Rounding before stripping removes floating-point noise, so that for
// example 0.1+0.2 canonicalizes to "0.3".
func Canonical(v float64) string {
	s := strconv.FormatFloat(v, 'f', 10, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimRight(s, ".")
	}
	if s == "-0" {
		s = "0"
	}
	return s
}

// normalize maps display glyphs to canonical operators and drops all
// whitespace.
func normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		switch {
		case r == GlyphMultiply:
			b.WriteByte('*')
		case r == GlyphDivide:
			b.WriteByte('/')
		case unicode.IsSpace(r):
			// dropped
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// isExprByte reports whether b may appear in a normalized expression.
func isExprByte(b byte) bool {
	if b >= '0' && b <= '9' {
		return true
	}
	switch b {
	case '.', '+', '-', '*', '/', '(', ')':
		return true
	}
	return false
}

// parser is a recursive-descent parser over a normalized expression.
// It evaluates as it parses; there is no AST.
type parser struct {
	input string
	pos   int
}

func (p *parser) parseExpr() (float64, error) {
	val, err := p.parseTerm()
	if err != nil {
		return 0, err
	}

	for p.pos < len(p.input) {
		op := p.input[p.pos]
		if op != '+' && op != '-' {
			break
		}
		p.pos++

		right, err := p.parseTerm()
		if err != nil {
			return 0, err
		}
		if op == '+' {
			val += right
		} else {
			val -= right
		}
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return 0, errUndefined
		}
	}

	return val, nil
}

func (p *parser) parseTerm() (float64, error) {
	val, err := p.parseUnary()
	if err != nil {
		return 0, err
	}

	for p.pos < len(p.input) {
		op := p.input[p.pos]
		if op != '*' && op != '/' {
			break
		}
		p.pos++

		right, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		if op == '*' {
			val *= right
		} else {
			if right == 0 {
				return 0, errUndefined
			}
			val /= right
		}
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return 0, errUndefined
		}
	}

	return val, nil
}

func (p *parser) parseUnary() (float64, error) {
	if p.pos < len(p.input) && p.input[p.pos] == '-' {
		p.pos++
		v, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		return -v, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (float64, error) {
	if p.pos >= len(p.input) {
		return 0, errSyntax
	}

	if p.input[p.pos] == '(' {
		p.pos++
		v, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		if p.pos >= len(p.input) || p.input[p.pos] != ')' {
			return 0, errSyntax
		}
		p.pos++
		return v, nil
	}

	return p.parseNumber()
}

// parseNumber consumes digits with at most one decimal point. At least
// one digit is required overall, so "5.", ".5" and "5" are numbers
// while a bare "." is not.
func (p *parser) parseNumber() (float64, error) {
	start := p.pos
	digits := 0
	seenDot := false

	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if c >= '0' && c <= '9' {
			digits++
			p.pos++
			continue
		}
		if c == '.' && !seenDot {
			seenDot = true
			p.pos++
			continue
		}
		break
	}

	if digits == 0 {
		p.pos = start
		return 0, errSyntax
	}

	v, err := strconv.ParseFloat(p.input[start:p.pos], 64)
	if err != nil {
		return 0, errSyntax
	}
	return v, nil
}
