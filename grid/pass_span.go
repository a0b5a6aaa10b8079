package grid

import (
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"gridder/css"
)

var (
	spanOf    = regexp.MustCompile(`(?i)of`)
	spanSpace = regexp.MustCompile(`\s+`)
	spanRatio = regexp.MustCompile(`^[0-9.]+(/[0-9.]+)?$`)
)

// spanPass adds width after every span declaration. "n" and "n/m" ("n of m")
// become percentages of the configured or given column count, anything else
// is copied to width as is.
func (e *Engine) spanPass(sheet *css.Stylesheet) {
	css.WalkDecls(sheet, propSpan, func(decl *css.Declaration) {
		width := e.spanWidth(decl.Value)
		css.InsertAfter(decl, css.NewDeclaration(propWidth, width))
	})
}

func (e *Engine) spanWidth(raw string) string {
	span := spanSpace.ReplaceAllString(spanOf.ReplaceAllString(raw, "/"), "")
	if !spanRatio.MatchString(span) {
		return raw
	}

	numerator, divisor, found := strings.Cut(span, "/")
	if !found {
		divisor = e.columns()
	}
	width, ok := percentage(numerator, divisor)
	if !ok {
		e.log.Debug("Unable to compute span width", zap.String("span", raw))
		return raw
	}
	return width
}

func (e *Engine) columns() string {
	return strconv.Itoa(e.cfg.Columns)
}
