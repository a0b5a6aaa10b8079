package css_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"gridder/css"
)

// allRules collects all rules of a stylesheet in document order including
// rules nested in @media blocks.
func allRules(sheet *css.Stylesheet) []*css.Rule {
	var rules []*css.Rule
	css.WalkRules(sheet, "", func(r *css.Rule) {
		rules = append(rules, r)
	})
	return rules
}

// props returns "property: value" strings of rule's own declarations.
func props(r *css.Rule) []string {
	var out []string
	for _, d := range r.Declarations() {
		out = append(out, d.Property+": "+d.Value)
	}
	return out
}

func TestParser_SimpleRule(t *testing.T) {
	p := css.NewParser(zaptest.NewLogger(t))

	sheet := p.Parse([]byte(`.col { width: 50%; margin: 0 auto; }`), "inline")

	rules := allRules(sheet)
	if len(rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(rules))
	}
	if rules[0].Selector != ".col" {
		t.Errorf("expected selector '.col', got '%s'", rules[0].Selector)
	}
	want := []string{"width: 50%", "margin: 0 auto"}
	if diff := cmp.Diff(want, props(rules[0])); diff != "" {
		t.Errorf("declarations mismatch (-want +got):\n%s", diff)
	}
	if rules[0].Parent() != css.Container(sheet) {
		t.Error("expected rule to be attached to stylesheet")
	}
}

func TestParser_ShorthandDeclarations(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	sheet := p.Parse([]byte(`.row > .col { grid: flex 1/4 20px; span: 1 of 4; reset: auto; }`))

	rules := allRules(sheet)
	if len(rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(rules))
	}
	if rules[0].Selector != ".row > .col" {
		t.Errorf("expected selector '.row > .col', got '%s'", rules[0].Selector)
	}
	want := []string{"grid: flex 1/4 20px", "span: 1 of 4", "reset: auto"}
	if diff := cmp.Diff(want, props(rules[0])); diff != "" {
		t.Errorf("declarations mismatch (-want +got):\n%s", diff)
	}
}

func TestParser_CombinatorSpacing(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{".a>.b", ".a > .b"},
		{".a > .b", ".a > .b"},
		{".a  +  .b~.c", ".a + .b ~ .c"},
		{".a .b", ".a .b"},
		{"li:nth-child(2n+1)", "li:nth-child(2n+1)"},
		{":not(.a>.b)", ":not(.a>.b)"},
		{`a[href~="x"]`, `a[href~="x"]`},
		{".a>.b,.c>.d", ".a > .b, .c > .d"},
	}
	p := css.NewParser(zap.NewNop())
	for _, tt := range tests {
		rules := allRules(p.ParseString(tt.in + " { color: red; }"))
		if len(rules) != 1 {
			t.Fatalf("%q: expected 1 rule, got %d", tt.in, len(rules))
		}
		if rules[0].Selector != tt.want {
			t.Errorf("selector of %q = %q, want %q", tt.in, rules[0].Selector, tt.want)
		}
	}
}

func TestParser_AtRulePrelude(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"@media (min-width: 600px) { .a { color: red; } }", "(min-width: 600px)"},
		{"@media (min-width:600px) { .a { color: red; } }", "(min-width: 600px)"},
		{"@media screen and (max-width: 10px), print { .a { color: red; } }", "screen and (max-width: 10px), print"},
		{"@page :first { margin: 1in; }", ":first"},
		{`@import url("base.css") screen, print;`, `url("base.css") screen, print`},
	}
	p := css.NewParser(zap.NewNop())
	for _, tt := range tests {
		nodes := p.ParseString(tt.in).Nodes()
		if len(nodes) == 0 {
			t.Fatalf("%q: nothing parsed", tt.in)
		}
		at, ok := nodes[0].(*css.AtRule)
		if !ok {
			t.Fatalf("%q: expected at-rule, got %T", tt.in, nodes[0])
		}
		if at.Params != tt.want {
			t.Errorf("prelude of %q = %q, want %q", tt.in, at.Params, tt.want)
		}
	}
}

func TestParser_GroupedSelectors(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	sheet := p.Parse([]byte(`h2,h3,   h4 { font-size: 120%; }`))

	rules := allRules(sheet)
	if len(rules) != 1 {
		t.Fatalf("expected 1 rule for grouped selector, got %d", len(rules))
	}
	if rules[0].Selector != "h2, h3, h4" {
		t.Errorf("expected normalized selector list, got '%s'", rules[0].Selector)
	}
}

func TestParser_PropertyNameLowercased(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	sheet := p.Parse([]byte(`.a { GUTTER: 20px; }`))

	rules := allRules(sheet)
	if len(rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(rules))
	}
	if d := rules[0].Last("gutter"); d == nil || d.Value != "20px" {
		t.Errorf("expected gutter: 20px, got %v", props(rules[0]))
	}
}

func TestParser_MediaBlock(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	sheet := p.Parse([]byte(`@media (min-width: 600px) { .col { span: 6; } .x { color: red; } }`))

	nodes := sheet.Nodes()
	if len(nodes) != 1 {
		t.Fatalf("expected 1 top level node, got %d", len(nodes))
	}
	at, ok := nodes[0].(*css.AtRule)
	if !ok {
		t.Fatalf("expected at-rule, got %T", nodes[0])
	}
	if at.Name != "media" || !at.HasBlock {
		t.Errorf("expected @media block, got @%s (block %v)", at.Name, at.HasBlock)
	}
	if !strings.Contains(at.Params, "min-width") {
		t.Errorf("expected media query params, got '%s'", at.Params)
	}

	rules := allRules(sheet)
	if len(rules) != 2 {
		t.Fatalf("expected 2 nested rules, got %d", len(rules))
	}
	if rules[0].Parent() != css.Container(at) {
		t.Error("expected nested rule to be attached to @media block")
	}
}

func TestParser_Import(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	sheet := p.Parse([]byte(`@import url("base.css"); .a { color: red; }`))

	nodes := sheet.Nodes()
	if len(nodes) != 2 {
		t.Fatalf("expected 2 top level nodes, got %d", len(nodes))
	}
	at, ok := nodes[0].(*css.AtRule)
	if !ok || at.Name != "import" || at.HasBlock {
		t.Fatalf("expected @import statement, got %#v", nodes[0])
	}
	if !strings.Contains(at.Params, "base.css") {
		t.Errorf("expected import url in params, got '%s'", at.Params)
	}
}

func TestParser_StringValuePreserved(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	sheet := p.Parse([]byte(`.a:after { content: " "; }`))

	rules := allRules(sheet)
	if len(rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(rules))
	}
	if v := rules[0].Value("content"); v != `" "` {
		t.Errorf(`expected content '" "', got '%s'`, v)
	}
}

func TestParser_Empty(t *testing.T) {
	p := css.NewParser(nil)

	sheet := p.Parse(nil)
	if len(sheet.Nodes()) != 0 {
		t.Errorf("expected empty stylesheet, got %d nodes", len(sheet.Nodes()))
	}
	if sheet.String() != "" {
		t.Errorf("expected empty output, got %q", sheet.String())
	}
}

func TestStylesheet_String_SourceOrder(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	sheet := p.ParseString(`.b { width: 1px; margin: 0; } .a { color: red; }`)

	want := ".b {\n  width: 1px;\n  margin: 0;\n}\n\n.a {\n  color: red;\n}\n"
	if diff := cmp.Diff(want, sheet.String()); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestStylesheet_String_MediaBlock(t *testing.T) {
	sheet := &css.Stylesheet{}
	media := &css.AtRule{Name: "media", Params: "print", HasBlock: true}
	css.Append(sheet, media)
	css.Append(media, css.NewRule(".a", css.NewDeclaration("width", "100%")))

	want := "@media print {\n  .a {\n    width: 100%;\n  }\n}\n"
	if diff := cmp.Diff(want, sheet.String()); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestStylesheet_String_RoundTrip(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	first := p.ParseString(`.row > .col, .x { width: 25%; } @media print { .a { display: none; } }`).String()
	second := p.ParseString(first).String()
	if first != second {
		t.Errorf("round trip is not stable:\nfirst:\n%s\nsecond:\n%s", first, second)
	}
}

func TestStylesheet_WriteTo(t *testing.T) {
	sheet := &css.Stylesheet{}
	css.Append(sheet, css.NewRule(".a", css.NewDeclaration("width", "1px")))

	var sb strings.Builder
	n, err := sheet.WriteTo(&sb)
	if err != nil {
		t.Fatalf("WriteTo() error = %v", err)
	}
	if n != int64(sb.Len()) {
		t.Errorf("WriteTo() reported %d bytes, wrote %d", n, sb.Len())
	}
}
