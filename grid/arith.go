package grid

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"gridder/calc"
	"gridder/value"
)

// fullWidth is the width of a complete row, kept just under 100.
const fullWidth = "99.999999999999999"

const (
	formulaPercentage = "x * 100 / y"
	formulaHalf       = "x / 2"
	formulaRatio      = "100 / x"
	formulaFraction   = "x / 100"
	// width adjusted for gutter, both in percents
	formulaAsymmetric = fullWidth + " * x - (y - y * x)"
	formulaSymmetric  = fullWidth + " * (x - y / 100)"
)

// percentage returns "numerator/divisor*100%" or false when either part is
// not a number or divisor is zero.
func percentage(numerator, divisor string) (string, bool) {
	q, err := calc.Eval(formulaPercentage, map[string]string{"x": numerator, "y": divisor})
	if err != nil {
		return "", false
	}
	return q.Value.String() + "%", true
}

// half divides size keeping its unit, "20px" -> "10px", "0" -> "0".
func half(size string) string {
	q, err := calc.Eval(formulaHalf, map[string]string{"x": size})
	if err != nil {
		return size
	}
	return q.String()
}

// autoReset derives reset period from percentage width: 25% means every 4th
// element starts a row. Widths which do not divide 100 into a whole number
// (with 2 decimals tolerance) have no period.
func autoReset(width string) (string, bool) {
	num, unit, ok := value.Split(width)
	if !ok || unit != "%" {
		return "", false
	}
	q, err := calc.Eval(formulaRatio, map[string]string{"x": num})
	if err != nil {
		return "", false
	}
	ratio := q.Value
	r := ratio.Round(0)
	if !ratio.Round(2).Equal(r) || !r.IsPositive() {
		return "", false
	}
	return r.String(), true
}

// positiveInt normalizes integer reset period of any magnitude, "3" and "3.0"
// both give "3".
func positiveInt(s string) (string, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || !d.IsInteger() || !d.IsPositive() {
		return "", false
	}
	return d.Truncate(0).String(), true
}

// fitWidth returns width reduced by gutter. When both width and gutter are
// percentages the result is computed, otherwise calc() expression is
// produced. asymmetric means gutter is applied on one side only.
func fitWidth(width, gutter string, asymmetric bool) (string, bool) {
	wNum, wUnit, ok := value.Split(width)
	if !ok {
		return "", false
	}
	gNum, gUnit, ok := value.Split(gutter)
	if !ok {
		return "", false
	}
	f, err := calc.Eval(formulaFraction, map[string]string{"x": wNum})
	if err != nil {
		return "", false
	}

	if wUnit == "%" && gUnit == "%" {
		formula := formulaSymmetric
		if asymmetric {
			formula = formulaAsymmetric
		}
		q, err := calc.Eval(formula, map[string]string{"x": f.String(), "y": gNum})
		if err != nil {
			return "", false
		}
		return q.Value.String() + "%", true
	}

	if asymmetric {
		return fmt.Sprintf("calc(%s%% * %s - (%s - %s * %s))", fullWidth, f, gutter, gutter, f), true
	}
	return fmt.Sprintf("calc(%s%% * %s - %s)", fullWidth, f, gutter), true
}
