// Package grid expands grid shorthand declarations (grid, span, align,
// gutter, reset, bleed) into plain width, margin and padding declarations
// plus the clearfix and nth-child reset rules they need.
//
// Expansion runs five passes over the whole tree, strictly in order:
//
//	grid    -> container rule, span/align/gutter/reset/bleed declarations
//	span    -> width
//	reset   -> :first-child / :last-child / :nth-child(Nn+1) margin reset rule
//	gutter  -> margins (and paddings when bleeding), width adjusted for gutter
//	cleanup -> shorthand declarations removed
//
// Later passes read what earlier ones wrote, so the order cannot change.
// Unrecognized shorthand is never an error, the affected declaration is
// simply left without expansion.
package grid

import (
	"go.uber.org/zap"

	"gridder/common"
	"gridder/css"
)

// Shorthand property names.
const (
	propGrid   = "grid"
	propSpan   = "span"
	propAlign  = "align"
	propGutter = "gutter"
	propReset  = "reset"
	propBleed  = "bleed"
	propMode   = "mode"
	propWidth  = "width"
)

// DefaultColumns is the column count used when configuration does not
// provide a usable one.
const DefaultColumns = 12

// Config is read-only for the duration of an expansion.
type Config struct {
	Columns int         // Number of columns "span: n" is relative to
	Mode    common.Mode // Layout mode when grid declaration does not name one
}

// DefaultConfig returns 12 float columns.
func DefaultConfig() Config {
	return Config{Columns: DefaultColumns, Mode: common.ModeFloat}
}

// Engine expands grid shorthand. Engine keeps no state between Expand calls
// and may be reused, but a single stylesheet must not be expanded
// concurrently.
type Engine struct {
	cfg    Config
	log    *zap.Logger
	parser *css.Parser
}

// New creates engine, invalid configuration values are replaced by defaults.
func New(cfg Config, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("grid")

	if cfg.Columns < 1 {
		log.Warn("Invalid number of columns, using default", zap.Int("columns", cfg.Columns), zap.Int("default", DefaultColumns))
		cfg.Columns = DefaultColumns
	}
	if !cfg.Mode.IsValid() {
		log.Warn("Invalid grid mode, using float", zap.Stringer("mode", cfg.Mode))
		cfg.Mode = common.ModeFloat
	}
	return &Engine{cfg: cfg, log: log, parser: css.NewParser(log)}
}

// Config returns effective configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Expand rewrites sheet in place.
func (e *Engine) Expand(sheet *css.Stylesheet) {
	e.gridPass(sheet)
	e.spanPass(sheet)
	e.resetPass(sheet)
	e.gutterPass(sheet)
	e.cleanupPass(sheet)
}

// ExpandString parses CSS text, expands it and returns resulting CSS text.
func (e *Engine) ExpandString(text string) string {
	sheet := e.parser.ParseString(text)
	e.Expand(sheet)
	return sheet.String()
}

// ownerRule returns rule declaration belongs to or nil for declarations
// directly inside at-rules.
func ownerRule(decl *css.Declaration) *css.Rule {
	r, _ := decl.Parent().(*css.Rule)
	return r
}
