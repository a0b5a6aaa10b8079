package grid

import (
	"go.uber.org/zap"

	"gridder/css"
)

// resetPass turns every reset declaration into a rule zeroing horizontal
// margins of the first element of each row. Declaration value is normalized
// for the gutter pass ("first" -> "1", "auto" -> period), disabled resets
// are removed.
func (e *Engine) resetPass(sheet *css.Stylesheet) {
	css.WalkDecls(sheet, propReset, func(decl *css.Declaration) {
		rule := ownerRule(decl)
		if rule == nil {
			css.Remove(decl)
			return
		}

		period, ok := e.resolveReset(rule, decl.Value)
		if !ok {
			css.Remove(decl)
			return
		}
		decl.Value = period

		reset := css.NewRule(css.EachSelector(rule.Selector, resetSuffix(period)),
			css.NewDeclaration("margin-right", "0"),
			css.NewDeclaration("margin-left", "0"),
		)
		css.InsertBefore(rule, reset)

		e.log.Debug("Grid reset", zap.String("selector", reset.Selector))
	})
}

// resolveReset returns normalized reset value: "1", "last" or period. False
// means reset is disabled.
func (e *Engine) resolveReset(rule *css.Rule, raw string) (string, bool) {
	switch raw {
	case "no-reset", "none", "0":
		return "", false
	case "first":
		return "1", true
	case "last":
		return "last", true
	case "auto":
		width := rule.Value(propWidth)
		n, ok := autoReset(width)
		if !ok {
			e.log.Debug("No automatic reset for width", zap.String("selector", rule.Selector), zap.String("width", width))
			return "", false
		}
		return n, true
	}
	n, ok := positiveInt(raw)
	if !ok {
		e.log.Debug("Ignoring unrecognized reset", zap.String("selector", rule.Selector), zap.String("reset", raw))
		return "", false
	}
	return n, true
}

// resetSuffix maps normalized reset value to selector suffix.
func resetSuffix(reset string) string {
	switch reset {
	case "1":
		return "&:first-child"
	case "last":
		return "&:last-child"
	}
	return "&:nth-child(" + reset + "n+1)"
}
