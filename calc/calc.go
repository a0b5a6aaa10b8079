// Package calc evaluates the small arithmetic formulas used to derive widths
// and margins. Arithmetic is exact decimal, so literals like
// 99.999999999999999 survive evaluation instead of collapsing to 100.
//
// Formulas are tokenized as CSS values: numbers, variables (identifiers),
// + - * / and parentheses. Binary minus must be surrounded by whitespace,
// otherwise it becomes part of a neighbouring identifier or number.
package calc

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"

	"gridder/value"
)

// Precision is the number of fractional digits kept by division.
const Precision = 16

var (
	ErrDivisionByZero = errors.New("division by zero")
	ErrSyntax         = errors.New("malformed formula")
)

// Quantity is a decimal number with an optional unit.
type Quantity struct {
	Value decimal.Decimal
	Unit  string
}

func (q Quantity) String() string {
	return q.Value.String() + q.Unit
}

// Parse converts "20px", "50%" or "3" to a Quantity.
func Parse(s string) (Quantity, error) {
	num, unit, ok := value.Split(s)
	if !ok {
		return Quantity{}, fmt.Errorf("not a numeric value %q", s)
	}
	d, err := decimal.NewFromString(num)
	if err != nil {
		return Quantity{}, fmt.Errorf("not a numeric value %q: %w", s, err)
	}
	return Quantity{Value: d, Unit: unit}, nil
}

// Eval evaluates formula with variables taken from vars. Variable values may
// carry units; the result takes the unit of the first variable with a unit
// in evaluation order, units are otherwise ignored.
func Eval(formula string, vars map[string]string) (Quantity, error) {
	toks, err := tokenize(formula)
	if err != nil {
		return Quantity{}, err
	}
	e := &evaluator{toks: toks, vars: vars}
	v, err := e.expr()
	if err != nil {
		return Quantity{}, err
	}
	if e.pos != len(e.toks) {
		return Quantity{}, fmt.Errorf("%w: unexpected %q", ErrSyntax, e.toks[e.pos].data)
	}
	return Quantity{Value: v, Unit: e.unit}, nil
}

type token struct {
	tt   css.TokenType
	data string
}

func tokenize(formula string) ([]token, error) {
	l := css.NewLexer(parse.NewInputString(formula))

	var toks []token
	for {
		tt, data := l.Next()
		switch tt {
		case css.ErrorToken:
			return toks, nil
		case css.WhitespaceToken, css.CommentToken:
			continue
		case css.NumberToken, css.DimensionToken, css.PercentageToken, css.IdentToken,
			css.LeftParenthesisToken, css.RightParenthesisToken:
		case css.DelimToken:
			switch string(data) {
			case "+", "-", "*", "/":
			default:
				return nil, fmt.Errorf("%w: unsupported operator %q", ErrSyntax, data)
			}
		default:
			return nil, fmt.Errorf("%w: unexpected %q", ErrSyntax, data)
		}
		toks = append(toks, token{tt: tt, data: string(data)})
	}
}

type evaluator struct {
	toks []token
	pos  int
	vars map[string]string
	unit string
}

func (e *evaluator) peek() (token, bool) {
	if e.pos >= len(e.toks) {
		return token{}, false
	}
	return e.toks[e.pos], true
}

func (e *evaluator) op(ops ...string) (string, bool) {
	t, ok := e.peek()
	if !ok || t.tt != css.DelimToken {
		return "", false
	}
	for _, o := range ops {
		if t.data == o {
			e.pos++
			return o, true
		}
	}
	return "", false
}

// expr := term (("+" | "-") term)*
func (e *evaluator) expr() (decimal.Decimal, error) {
	left, err := e.term()
	if err != nil {
		return decimal.Zero, err
	}
	for {
		o, ok := e.op("+", "-")
		if !ok {
			return left, nil
		}
		right, err := e.term()
		if err != nil {
			return decimal.Zero, err
		}
		if o == "+" {
			left = left.Add(right)
		} else {
			left = left.Sub(right)
		}
	}
}

// term := factor (("*" | "/") factor)*
func (e *evaluator) term() (decimal.Decimal, error) {
	left, err := e.factor()
	if err != nil {
		return decimal.Zero, err
	}
	for {
		o, ok := e.op("*", "/")
		if !ok {
			return left, nil
		}
		right, err := e.factor()
		if err != nil {
			return decimal.Zero, err
		}
		if o == "*" {
			left = left.Mul(right)
			continue
		}
		if right.IsZero() {
			return decimal.Zero, ErrDivisionByZero
		}
		left = left.DivRound(right, Precision)
	}
}

// factor := number | variable | "(" expr ")" | "-" factor
func (e *evaluator) factor() (decimal.Decimal, error) {
	t, ok := e.peek()
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: unexpected end", ErrSyntax)
	}
	e.pos++

	switch t.tt {
	case css.DelimToken:
		if t.data != "-" {
			break
		}
		v, err := e.factor()
		return v.Neg(), err

	case css.LeftParenthesisToken:
		v, err := e.expr()
		if err != nil {
			return decimal.Zero, err
		}
		if c, ok := e.peek(); !ok || c.tt != css.RightParenthesisToken {
			return decimal.Zero, fmt.Errorf("%w: missing closing parenthesis", ErrSyntax)
		}
		e.pos++
		return v, nil

	case css.NumberToken, css.DimensionToken, css.PercentageToken:
		q, err := Parse(t.data)
		if err != nil {
			return decimal.Zero, err
		}
		return q.Value, nil

	case css.IdentToken:
		raw, ok := e.vars[t.data]
		if !ok {
			return decimal.Zero, fmt.Errorf("unknown variable %q", t.data)
		}
		q, err := Parse(raw)
		if err != nil {
			return decimal.Zero, fmt.Errorf("variable %q: %w", t.data, err)
		}
		if e.unit == "" {
			e.unit = q.Unit
		}
		return q.Value, nil
	}
	return decimal.Zero, fmt.Errorf("%w: unexpected %q", ErrSyntax, t.data)
}
