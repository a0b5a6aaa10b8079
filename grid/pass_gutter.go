package grid

import (
	"go.uber.org/zap"

	"gridder/css"
	"gridder/value"
)

// gutterPass converts every gutter declaration into margins (and paddings
// when bleeding). When a reset is active the rule's width is reduced so
// that columns and gutters add up to a full row.
func (e *Engine) gutterPass(sheet *css.Stylesheet) {
	css.WalkDecls(sheet, propGutter, func(decl *css.Declaration) {
		rule := ownerRule(decl)
		if rule == nil {
			return
		}
		gutter := decl.Value
		if !value.IsSize(gutter) {
			e.log.Debug("Ignoring gutter which is not a size", zap.String("selector", rule.Selector), zap.String("gutter", gutter))
			return
		}

		var (
			align  = rule.Value(propAlign)
			reset  = rule.Value(propReset)
			bleed  = isBleed(rule.Value(propBleed))
			widthD = rule.Last(propWidth)
		)

		// only left and right are one sided, anything else splits the gutter
		asymmetric := align == "left" || align == "right"

		var marginLeft, marginRight string
		switch {
		case align == "left":
			marginLeft, marginRight = gutter, "0"
		case align == "right":
			marginLeft, marginRight = "0", gutter
		default:
			marginLeft, marginRight = half(gutter), half(gutter)
		}

		decls := []css.Node{}
		if bleed {
			marginLeft, marginRight = half(marginLeft), half(marginRight)
			decls = append(decls,
				css.NewDeclaration("margin-left", marginLeft),
				css.NewDeclaration("margin-right", marginRight),
				css.NewDeclaration("padding-right", marginRight),
				css.NewDeclaration("padding-left", marginLeft),
			)
			if reset != "" {
				e.clearResetPadding(rule, reset)
			}
		} else {
			decls = append(decls,
				css.NewDeclaration("margin-left", marginLeft),
				css.NewDeclaration("margin-right", marginRight),
			)
		}
		css.InsertBefore(decl, decls...)

		if reset == "" || widthD == nil || widthD.Value == "auto" {
			return
		}
		width, ok := fitWidth(widthD.Value, gutter, asymmetric)
		if !ok {
			e.log.Debug("Unable to fit width to gutter", zap.String("selector", rule.Selector), zap.String("width", widthD.Value))
			return
		}
		widthD.Value = width
	})
}

func isBleed(v string) bool {
	return v == "true" || v == "bleed"
}

// clearResetPadding removes bleed padding from the reset rule generated for
// rule by the reset pass.
func (e *Engine) clearResetPadding(rule *css.Rule, reset string) {
	container := rule.Parent()
	if container == nil {
		return
	}
	selector := css.EachSelector(rule.Selector, resetSuffix(reset))
	css.WalkRules(container, selector, func(r *css.Rule) {
		css.Append(r,
			css.NewDeclaration("padding-right", "0"),
			css.NewDeclaration("padding-left", "0"),
		)
	})
}
