package grid

import (
	"strings"

	"go.uber.org/zap"

	"gridder/common"
	"gridder/css"
)

// gridPass expands every grid declaration into container rules and separate
// span/align/gutter/reset/bleed declarations for later passes.
func (e *Engine) gridPass(sheet *css.Stylesheet) {
	css.WalkDecls(sheet, propGrid, func(decl *css.Declaration) {
		s, dropped := e.ParseSettings(decl.Value)
		if len(dropped) > 0 {
			e.log.Debug("Ignoring unrecognized grid settings", zap.String("value", decl.Value), zap.Strings("tokens", dropped))
		}

		if rule := ownerRule(decl); rule != nil {
			if container := containerSelector(rule.Selector); container != "" {
				e.emitContainer(rule, container, s)
			}
		}

		s.Mode = ""
		if s.Gutter != "" && s.Reset == "" {
			s.Reset = "auto"
		}
		for _, k := range settingKeys {
			if v := s.Get(k.Name); v != "" {
				css.InsertBefore(decl, css.NewDeclaration(k.Name, v))
			}
		}
		css.Remove(decl)
	})
}

// containerSelector strips last child combinator segment from every selector
// in the list: ".row > .col, .a > .b" -> ".row, .a". Selectors without child
// combinator have no container and are dropped.
func containerSelector(list string) string {
	var parents []string
	for _, sel := range css.SplitSelectors(list) {
		parts := strings.Split(sel, ">")
		if p := strings.TrimSpace(strings.Join(parts[:len(parts)-1], ">")); p != "" {
			parents = append(parents, p)
		}
	}
	return strings.Join(parents, ", ")
}

// emitContainer inserts rules styling grid container in front of rule.
func (e *Engine) emitContainer(rule *css.Rule, container string, s Settings) {
	var decls []*css.Declaration

	switch s.Mode {
	case common.ModeFlex.String():
		decls = []*css.Declaration{
			css.NewDeclaration("display", "flex"),
			css.NewDeclaration("flex-direction", "row"),
			css.NewDeclaration("width", "100%"),
			css.NewDeclaration("flex-wrap", "wrap"),
		}
	case common.ModeInline.String(), common.ModeInlineBlock.String():
		decls = []*css.Declaration{
			css.NewDeclaration("text-align", s.Align),
		}
	default:
		clearfix := css.NewRule(css.EachSelector(container, "&:after"),
			css.NewDeclaration("content", `" "`),
			css.NewDeclaration("display", "table"),
			css.NewDeclaration("clear", "both"),
		)
		css.InsertBefore(rule, clearfix)
		decls = []*css.Declaration{
			css.NewDeclaration("display", "block"),
		}
	}
	css.InsertBefore(rule, css.NewRule(container, decls...))

	e.log.Debug("Grid container", zap.String("selector", container), zap.String("mode", s.Mode))
}
