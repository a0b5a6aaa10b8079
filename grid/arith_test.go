package grid

import (
	"strconv"
	"strings"
	"testing"
)

func TestPercentage(t *testing.T) {
	tests := []struct {
		num, div string
		want     string
		ok       bool
	}{
		{"1", "4", "25%", true},
		{"3", "12", "25%", true},
		{"1", "3", "33.3333333333333333%", true},
		{"2.5", "10", "25%", true},
		{"1", "0", "", false},
		{"1.2.3", "4", "", false},
	}
	for _, tt := range tests {
		got, ok := percentage(tt.num, tt.div)
		if got != tt.want || ok != tt.ok {
			t.Errorf("percentage(%s, %s) = (%q, %v), want (%q, %v)", tt.num, tt.div, got, ok, tt.want, tt.ok)
		}
	}
}

func TestHalf(t *testing.T) {
	tests := map[string]string{
		"20px": "10px",
		"0":    "0",
		"3%":   "1.5%",
		"1em":  "0.5em",
		"auto": "auto",
	}
	for in, want := range tests {
		if got := half(in); got != want {
			t.Errorf("half(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestAutoReset(t *testing.T) {
	tests := []struct {
		width string
		want  string
		ok    bool
	}{
		{"25%", "4", true},
		{"50%", "2", true},
		{"100%", "1", true},
		{"33.3333%", "3", true},
		{"33.3333333333333333%", "3", true},
		{"16.6666666666666667%", "6", true},
		{"0.0001%", "1000000", true},
		{"30%", "", false},
		{"40%", "", false},
		{"0%", "", false},
		{"200px", "", false},
		{"auto", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := autoReset(tt.width)
		if got != tt.want || ok != tt.ok {
			t.Errorf("autoReset(%q) = (%q, %v), want (%q, %v)", tt.width, got, ok, tt.want, tt.ok)
		}
	}
}

func TestPositiveInt(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"3", "3", true},
		{"3.0", "3", true},
		{"99999999999999999999999", "99999999999999999999999", true},
		{"2.5", "", false},
		{"-2", "", false},
		{"0", "", false},
		{"first", "", false},
	}
	for _, tt := range tests {
		got, ok := positiveInt(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("positiveInt(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestFitWidth(t *testing.T) {
	tests := []struct {
		name       string
		width      string
		gutter     string
		asymmetric bool
		want       string
	}{
		{"absolute gutter one side", "50%", "20px", true, "calc(99.999999999999999% * 0.5 - (20px - 20px * 0.5))"},
		{"absolute gutter both sides", "25%", "1em", false, "calc(99.999999999999999% * 0.25 - 1em)"},
		// both percentages: result carries "%" rather than being a pure number
		{"percent gutter one side", "50%", "2%", true, "48.9999999999999995%"},
		{"percent gutter both sides", "50%", "2%", false, "47.99999999999999952%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := fitWidth(tt.width, tt.gutter, tt.asymmetric)
			if !ok {
				t.Fatalf("fitWidth(%q, %q) failed", tt.width, tt.gutter)
			}
			if got != tt.want {
				t.Errorf("fitWidth(%q, %q) = %q, want %q", tt.width, tt.gutter, got, tt.want)
			}
		})
	}

	if _, ok := fitWidth("calc(100% - 1px)", "20px", true); ok {
		t.Error("fitWidth() must fail for non numeric width")
	}
}

// Span of n columns out of c is n/c*100 percent for every column count.
func TestSpanWidthProperty(t *testing.T) {
	for c := 1; c <= 24; c++ {
		e := New(Config{Columns: c, Mode: DefaultConfig().Mode}, nil)
		for n := 1; n <= c; n++ {
			got := e.spanWidth(strconv.Itoa(n))
			if !strings.HasSuffix(got, "%") {
				t.Fatalf("columns %d, span %d: width %q is not a percentage", c, n, got)
			}
			v, err := strconv.ParseFloat(strings.TrimSuffix(got, "%"), 64)
			if err != nil {
				t.Fatalf("columns %d, span %d: %v", c, n, err)
			}
			want := float64(n) / float64(c) * 100
			if diff := v - want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("columns %d, span %d: width %s, want %v", c, n, got, want)
			}
			if (n*100)%c == 0 && got != strconv.Itoa(n*100/c)+"%" {
				t.Errorf("columns %d, span %d: width %s is not exact", c, n, got)
			}
		}
	}
}

func TestSpanWidth(t *testing.T) {
	e := New(DefaultConfig(), nil)
	tests := map[string]string{
		"3":         "25%",
		"1/4":       "25%",
		"1 of 4":    "25%",
		"1 OF 3":    "33.3333333333333333%",
		" 2 / 8 ":   "25%",
		"auto":      "auto",
		"200px":     "200px",
		"1/0":       "1/0",
		"calc(50%)": "calc(50%)",
	}
	for in, want := range tests {
		if got := e.spanWidth(in); got != want {
			t.Errorf("spanWidth(%q) = %q, want %q", in, got, want)
		}
	}
}
