package expand

import (
	"testing"

	"go.uber.org/zap/zaptest"
	"golang.org/x/text/encoding/unicode"

	"gridder/state"
)

func TestToUTF8(t *testing.T) {
	utf16, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().Bytes([]byte(".a { span: 6; }"))
	if err != nil {
		t.Fatalf("unable to prepare UTF-16 sample: %v", err)
	}

	tests := []struct {
		name  string
		in    []byte
		want  string
		label string
	}{
		{"plain", []byte(".a { span: 6; }"), ".a { span: 6; }", ""},
		{"utf-8 bom", []byte("\xEF\xBB\xBF.a { span: 6; }"), ".a { span: 6; }", "bom"},
		{"utf-16 bom", utf16, ".a { span: 6; }", "bom"},
		{"utf-8 charset", []byte(`@charset "UTF-8"; .a {}`), `@charset "UTF-8"; .a {}`, ""},
		{"windows-1251 charset", []byte("@charset \"windows-1251\"; .a { content: \"\xC6\"; }"), "@charset \"windows-1251\"; .a { content: \"Ж\"; }", "windows-1251"},
		{"charset not first", []byte(" @charset \"windows-1251\"; .a {}"), " @charset \"windows-1251\"; .a {}", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, label, err := toUTF8(tt.in)
			if err != nil {
				t.Fatalf("toUTF8() error = %v", err)
			}
			if string(got) != tt.want || label != tt.label {
				t.Errorf("toUTF8() = (%q, %q), want (%q, %q)", got, label, tt.want, tt.label)
			}
		})
	}

	if _, _, err := toUTF8([]byte(`@charset "klingon"; .a {}`)); err == nil {
		t.Error("expected error for unknown charset")
	}
}

func TestExpand_ConvertedCharset(t *testing.T) {
	env := &state.LocalEnv{Log: zaptest.NewLogger(t)}
	d := newTestDriver(t, env)

	out, err := d.expand([]byte("@charset \"windows-1251\";\n.a { content: \"\xC6\"; span: 6; }"), "legacy.css")
	if err != nil {
		t.Fatalf("expand() error = %v", err)
	}
	want := "@charset \"UTF-8\";\n\n.a {\n  content: \"Ж\";\n  width: 50%;\n}\n"
	if string(out) != want {
		t.Errorf("expand() = %q, want %q", out, want)
	}
}
