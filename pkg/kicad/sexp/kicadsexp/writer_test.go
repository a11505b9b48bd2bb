package kicadsexp

import (
	"strings"
	"testing"
)

func TestQuote(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"R", `"R"`},
		{"", `""`},
		{`10k "typ"`, `"10k \"typ\""`},
		{`C:\parts`, `"C:\\parts"`},
		{"line1\nline2\t!", `"line1\nline2\t!"`},
	}

	for _, tt := range tests {
		if got := Quote(tt.in); got != tt.want {
			t.Errorf("Quote(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestQuoteRoundTrip(t *testing.T) {
	values := []string{"plain", `with "quotes"`, `back\slash`, "tab\tand\nnewline\r", "µF ±5%", ""}
	for _, v := range values {
		sexps, err := ParseString("(v " + Quote(v) + ")")
		if err != nil {
			t.Fatalf("Failed to parse quoted %q: %v", v, err)
		}
		got := string(sexps[0].(*List).Get(1).(String))
		if got != v {
			t.Errorf("Round trip of %q gave %q", v, got)
		}
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{-0.0, "0"},
		{-0.00001, "0"},
		{2.54, "2.54"},
		{-5.08, "-5.08"},
		{1.27 * 3, "3.81"},
		{10, "10"},
		{0.254, "0.254"},
		{0.0254, "0.0254"},
		{1.23456, "1.2346"},
	}

	for _, tt := range tests {
		if got := FormatFloat(tt.in); got != tt.want {
			t.Errorf("FormatFloat(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatLayout(t *testing.T) {
	tree := L("symbol", String("R_1"),
		L("pin_names", L("offset", Float(0.254))),
		L("in_bom", Bool(true)),
		L("polyline",
			L("pts", L("xy", Float(0), Float(1)), L("xy", Float(2), Float(3))),
		),
	)

	want := strings.Join([]string{
		`(symbol "R_1"`,
		"\t(pin_names",
		"\t\t(offset 0.254)",
		"\t)",
		"\t(in_bom yes)",
		"\t(polyline",
		"\t\t(pts (xy 0 1) (xy 2 3))",
		"\t)",
		")",
	}, "\n")

	if got := Format(tree); got != want {
		t.Errorf("Format() mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestEncodeParsesBack(t *testing.T) {
	tree := L("property", String("Value"), String(`5 "x"`),
		L("at", Float(2.54), Float(-2.54), Int(0)),
		L("effects", L("font", L("size", Float(1.27), Float(1.27))), L("hide", Bool(true))),
	)

	var b strings.Builder
	if err := NewEncoder(&b).Encode(tree, 1); err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if !strings.HasPrefix(b.String(), "\t(property") {
		t.Errorf("Expected output indented one level, got %q", b.String())
	}

	sexps, err := ParseString(b.String())
	if err != nil {
		t.Fatalf("Failed to parse encoded output: %v", err)
	}
	if got, want := sexps[0].String(), tree.String(); got != want {
		t.Errorf("Re-parsed tree differs\ngot:  %s\nwant: %s", got, want)
	}
}
