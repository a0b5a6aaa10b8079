package grid

import (
	"strings"

	"gridder/value"
)

// Settings is the option record parsed from a grid declaration. Empty field
// means the option is absent.
type Settings struct {
	Span   string
	Align  string
	Gutter string
	Reset  string
	Mode   string
	Bleed  string
}

// field maps option key to its storage.
func (s *Settings) field(key string) *string {
	switch key {
	case propSpan:
		return &s.Span
	case propAlign:
		return &s.Align
	case propGutter:
		return &s.Gutter
	case propReset:
		return &s.Reset
	case propMode:
		return &s.Mode
	case propBleed:
		return &s.Bleed
	}
	return nil
}

// Get returns option value by key.
func (s *Settings) Get(key string) string {
	if f := s.field(key); f != nil {
		return *f
	}
	return ""
}

// Set stores option value by key, unknown keys are ignored.
func (s *Settings) Set(key, val string) {
	if f := s.field(key); f != nil {
		*f = val
	}
}

// Record receives values classified by Schema.
type Record interface {
	Get(key string) string
	Set(key, val string)
}

// Key is a named option with the list of validators accepting its tokens.
type Key struct {
	Name   string
	Accept []value.Matcher
}

// Schema classifies tokens of a value into keys. Token position does not
// matter, only which validators accept it.
type Schema struct {
	Keys     []Key
	Defaults map[string]string
}

// Fill tokenizes raw (on commas if it has any, on whitespace otherwise) and
// stores each token under the first key in schema order which is still
// empty and accepts it. Keys left empty get their defaults. Tokens nobody
// accepted are returned.
func (s Schema) Fill(raw string, rec Record) (dropped []string) {
	var tokens []string
	if strings.Contains(raw, ",") {
		tokens = value.SplitComma(raw)
	} else {
		tokens = value.SplitSpace(raw)
	}

	for _, tok := range tokens {
		if !s.claim(tok, rec) {
			dropped = append(dropped, tok)
		}
	}
	for _, k := range s.Keys {
		if def, ok := s.Defaults[k.Name]; ok && rec.Get(k.Name) == "" {
			rec.Set(k.Name, def)
		}
	}
	return dropped
}

func (s Schema) claim(tok string, rec Record) bool {
	for _, k := range s.Keys {
		if rec.Get(k.Name) != "" {
			continue
		}
		for _, m := range k.Accept {
			if m.Match(tok) {
				rec.Set(k.Name, tok)
				return true
			}
		}
	}
	return false
}

// spanPattern accepts "3", "1/4", "1 of 4", "1of4".
var spanPattern = value.MustPattern(`(?i)^[0-9.]+(\s?(/|of)\s?[0-9.]+)?$`)

// settingKeys is the order options are matched in and emitted in.
var settingKeys = []Key{
	{Name: propSpan, Accept: []value.Matcher{spanPattern, value.Size, value.Literal("auto")}},
	{Name: propAlign, Accept: []value.Matcher{value.Literal("left"), value.Literal("right"), value.Literal("center")}},
	{Name: propGutter, Accept: []value.Matcher{value.Size}},
	{Name: propReset, Accept: []value.Matcher{value.Literal("first"), value.Literal("last"), value.Number, value.Literal("auto"), value.Literal("none"), value.Literal("no-reset")}},
	{Name: propMode, Accept: []value.Matcher{value.Literal("flex"), value.Literal("float"), value.Literal("inline"), value.Literal("inline-block")}},
	{Name: propBleed, Accept: []value.Matcher{value.Literal("bleed"), value.Literal("no-bleed")}},
}

// gridSchema returns schema for grid declarations with mode defaulting to
// configured one.
func (e *Engine) gridSchema() Schema {
	return Schema{
		Keys: settingKeys,
		Defaults: map[string]string{
			propSpan:  "auto",
			propAlign: "left",
			propMode:  e.cfg.Mode.String(),
		},
	}
}

// ParseSettings classifies grid declaration value using engine's defaults.
func (e *Engine) ParseSettings(raw string) (Settings, []string) {
	var s Settings
	dropped := e.gridSchema().Fill(raw, &s)
	return s, dropped
}
