// Package value recognizes the literal shapes grid shorthand is built from:
// sizes, plain numbers, keywords and patterns. Classification is done on CSS
// tokens rather than on raw text so that "20px", "20 px" and "20" are told
// apart the same way a browser would.
package value

import (
	"regexp"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// units accepted as part of a size literal.
var units = map[string]bool{
	"%":  true,
	"px": true, "em": true, "rem": true, "ex": true, "ch": true,
	"vw": true, "vh": true, "vmin": true, "vmax": true,
	"cm": true, "mm": true, "q": true, "in": true, "pt": true, "pc": true,
	"fr": true,
}

// Matcher decides whether a single token is acceptable.
type Matcher interface {
	Match(token string) bool
}

// Literal accepts exactly one keyword.
type Literal string

func (l Literal) Match(token string) bool {
	return token == string(l)
}

// Func adapts a predicate to Matcher.
type Func func(string) bool

func (f Func) Match(token string) bool {
	return f(token)
}

// Pattern accepts tokens matched by a regular expression.
type Pattern struct {
	re *regexp.Regexp
}

// MustPattern compiles expr, panicking on error. Intended for package level
// schema tables.
func MustPattern(expr string) Pattern {
	return Pattern{re: regexp.MustCompile(expr)}
}

func (p Pattern) Match(token string) bool {
	return p.re.MatchString(token)
}

var (
	// Size accepts size literals, see IsSize.
	Size Matcher = Func(IsSize)
	// Number accepts unitless numeric literals, see IsNumber.
	Number Matcher = Func(IsNumber)
)

// single lexes s and returns its only significant token. Leading and
// trailing whitespace is ignored, anything else makes it fail.
func single(s string) (css.TokenType, string, bool) {
	l := css.NewLexer(parse.NewInputString(s))

	var (
		tt    css.TokenType
		data  string
		count int
	)
	for {
		t, d := l.Next()
		switch t {
		case css.ErrorToken:
			return tt, data, count == 1
		case css.WhitespaceToken, css.CommentToken:
			continue
		}
		count++
		if count > 1 {
			return tt, data, false
		}
		tt, data = t, string(d)
	}
}

// IsSize reports whether s is a number with a recognized unit, e.g. "20px",
// "2.5em" or "50%".
func IsSize(s string) bool {
	_, unit, ok := Split(s)
	return ok && unit != ""
}

// IsNumber reports whether s is a unitless numeric literal.
func IsNumber(s string) bool {
	tt, _, ok := single(s)
	return ok && tt == css.NumberToken
}

// Split breaks a numeric literal into number and lower-cased unit. Plain
// numbers have an empty unit. Dimensions with unknown units are rejected.
func Split(s string) (num, unit string, ok bool) {
	tt, data, ok := single(s)
	if !ok {
		return "", "", false
	}
	switch tt {
	case css.NumberToken:
		return data, "", true
	case css.PercentageToken:
		return strings.TrimSuffix(data, "%"), "%", true
	case css.DimensionToken:
		num, unit = splitDimension(data)
		if num == "" || !units[unit] {
			return "", "", false
		}
		return num, unit, true
	}
	return "", "", false
}

// splitDimension separates numeric prefix from unit.
func splitDimension(s string) (string, string) {
	end := 0
	for i, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' || r == '+' {
			end = i + 1
			continue
		}
		// exponent is part of the number only when followed by a digit
		if (r == 'e' || r == 'E') && i+1 < len(s) && s[i+1] >= '0' && s[i+1] <= '9' && end > 0 {
			end = i + 1
			continue
		}
		break
	}
	return s[:end], strings.ToLower(s[end:])
}

// SplitSpace splits a value on whitespace outside of parentheses, brackets
// and quotes.
func SplitSpace(s string) []string {
	return split(s, css.WhitespaceToken)
}

// SplitComma splits a value on commas outside of parentheses, brackets and
// quotes. Whitespace inside an item is collapsed to a single space.
func SplitComma(s string) []string {
	return split(s, css.CommaToken)
}

func split(s string, sep css.TokenType) []string {
	l := css.NewLexer(parse.NewInputString(s))

	var (
		items []string
		cur   strings.Builder
		depth int
	)
	flush := func() {
		if item := strings.TrimSpace(cur.String()); item != "" {
			items = append(items, item)
		}
		cur.Reset()
	}

	for {
		tt, data := l.Next()
		switch tt {
		case css.ErrorToken:
			flush()
			return items
		case css.CommentToken:
			continue
		case css.FunctionToken, css.LeftParenthesisToken, css.LeftBracketToken:
			depth++
		case css.RightParenthesisToken, css.RightBracketToken:
			if depth > 0 {
				depth--
			}
		}
		if tt == sep && depth == 0 {
			flush()
			continue
		}
		if tt == css.WhitespaceToken {
			cur.WriteByte(' ')
			continue
		}
		cur.Write(data)
	}
}
