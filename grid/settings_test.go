package grid

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap/zaptest"

	"gridder/common"
)

func TestParseSettings(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		mode    common.Mode
		want    Settings
		dropped []string
	}{
		{
			name: "flex and span",
			raw:  "flex 4",
			mode: common.ModeFloat,
			want: Settings{Span: "4", Align: "left", Mode: "flex"},
		},
		{
			name: "defaults only",
			raw:  "",
			mode: common.ModeFloat,
			want: Settings{Span: "auto", Align: "left", Mode: "float"},
		},
		{
			name: "configured default mode",
			raw:  "1/3",
			mode: common.ModeInlineBlock,
			want: Settings{Span: "1/3", Align: "left", Mode: "inline-block"},
		},
		{
			name: "size goes to span first then gutter",
			raw:  "25% 20px",
			mode: common.ModeFloat,
			want: Settings{Span: "25%", Align: "left", Gutter: "20px", Mode: "float"},
		},
		{
			name: "number falls through to reset once span is taken",
			raw:  "20px 4",
			mode: common.ModeFloat,
			want: Settings{Span: "20px", Align: "left", Reset: "4", Mode: "float"},
		},
		{
			name: "comma separated keeps spaces inside items",
			raw:  "float, 1 of 3, 10px, last, no-bleed, right",
			mode: common.ModeFlex,
			want: Settings{Span: "1 of 3", Align: "right", Gutter: "10px", Reset: "last", Mode: "float", Bleed: "no-bleed"},
		},
		{
			name: "position does not matter",
			raw:  "bleed center 1/2 2em inline none",
			mode: common.ModeFloat,
			want: Settings{Span: "1/2", Align: "center", Gutter: "2em", Reset: "none", Mode: "inline", Bleed: "bleed"},
		},
		{
			name:    "unknown and duplicate tokens are dropped",
			raw:     "banana right center flex float",
			mode:    common.ModeFloat,
			want:    Settings{Span: "auto", Align: "right", Mode: "flex"},
			dropped: []string{"banana", "center", "float"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(Config{Columns: 12, Mode: tt.mode}, zaptest.NewLogger(t))
			got, dropped := e.ParseSettings(tt.raw)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseSettings(%q) mismatch (-want +got):\n%s", tt.raw, diff)
			}
			if diff := cmp.Diff(tt.dropped, dropped); diff != "" {
				t.Errorf("ParseSettings(%q) dropped mismatch (-want +got):\n%s", tt.raw, diff)
			}
		})
	}
}

func TestSettingsGetSet(t *testing.T) {
	var s Settings
	s.Set(propGutter, "1em")
	s.Set("unknown", "x")
	if s.Get(propGutter) != "1em" || s.Gutter != "1em" {
		t.Errorf("Set/Get gutter mismatch: %+v", s)
	}
	if s.Get("unknown") != "" {
		t.Error("unknown key must read as empty")
	}
}

func TestSchemaFill_CustomSchema(t *testing.T) {
	schema := Schema{
		Keys: []Key{
			{Name: propSpan, Accept: settingKeys[0].Accept},
			{Name: propBleed, Accept: settingKeys[5].Accept},
		},
		Defaults: map[string]string{propBleed: "no-bleed"},
	}
	var s Settings
	dropped := schema.Fill("3 left", &s)

	if s.Span != "3" || s.Bleed != "no-bleed" || s.Align != "" {
		t.Errorf("unexpected settings: %+v", s)
	}
	if diff := cmp.Diff([]string{"left"}, dropped); diff != "" {
		t.Errorf("dropped mismatch (-want +got):\n%s", diff)
	}
}
