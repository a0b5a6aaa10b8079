package grid

import (
	"gridder/css"
)

// shorthand lists declarations which must not survive expansion.
var shorthand = []string{propSpan, propGutter, propAlign, propReset, propBleed, propGrid}

func (e *Engine) cleanupPass(sheet *css.Stylesheet) {
	for _, prop := range shorthand {
		css.WalkDecls(sheet, prop, func(decl *css.Declaration) {
			css.Remove(decl)
		})
	}
}
