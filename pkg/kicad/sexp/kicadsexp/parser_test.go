package kicadsexp

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestParseAtomsAndStrings(t *testing.T) {
	sexps, err := ParseString(`(property "Reference" "R" (at 2.54 -2.54 0))`)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	if len(sexps) != 1 {
		t.Fatalf("Expected 1 expression, got %d", len(sexps))
	}

	list, ok := sexps[0].(*List)
	if !ok {
		t.Fatalf("Expected *List, got %T", sexps[0])
	}
	if list.Len() != 4 {
		t.Fatalf("Expected 4 elements, got %d", list.Len())
	}
	if _, ok := list.Get(0).(Symbol); !ok {
		t.Errorf("Expected head to be Symbol, got %T", list.Get(0))
	}
	if s, ok := list.Get(1).(String); !ok || string(s) != "Reference" {
		t.Errorf("Expected String 'Reference', got %#v", list.Get(1))
	}
	at, ok := list.Get(3).(*List)
	if !ok {
		t.Fatalf("Expected nested list, got %T", list.Get(3))
	}
	if got := at.String(); got != "(at 2.54 -2.54 0)" {
		t.Errorf("Expected '(at 2.54 -2.54 0)', got '%s'", got)
	}
}

func TestParseQuotedStringWithSpaces(t *testing.T) {
	sexps, err := ParseString(`(title "Example \"Board\" v2\\1")`)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	list := sexps[0].(*List)
	if list.Len() != 2 {
		t.Fatalf("Expected 2 elements, got %d", list.Len())
	}
	want := `Example "Board" v2\1`
	if got := string(list.Get(1).(String)); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestParsePositions(t *testing.T) {
	input := "(a\n  (b 1)\n\t(c \"é\" (d)))"
	sexps, err := ParseString(input)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	root := sexps[0].(*List)
	if root.Pos() != (Pos{Offset: 0, Line: 1, Column: 1}) {
		t.Errorf("Unexpected root position %+v", root.Pos())
	}
	b := root.Get(1).(*List)
	if b.Pos() != (Pos{Offset: 5, Line: 2, Column: 3}) {
		t.Errorf("Unexpected (b) position %+v", b.Pos())
	}
	c := root.Get(2).(*List)
	if c.Pos() != (Pos{Offset: 12, Line: 3, Column: 2}) {
		t.Errorf("Unexpected (c) position %+v", c.Pos())
	}
	// "é" is two bytes but one column
	d := c.Get(2).(*List)
	if d.Pos() != (Pos{Offset: 20, Line: 3, Column: 9}) {
		t.Errorf("Unexpected (d) position %+v", d.Pos())
	}
}

func TestParseOffsetsCountBytes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Pos
	}{
		{"multi-byte rune", "(\"é\" (b))", Pos{Offset: 6, Line: 1, Column: 6}},
		{"invalid bytes in atom", "(\xff\xff (b))", Pos{Offset: 4, Line: 1, Column: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sexps, err := ParseString(tt.input)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			b := sexps[0].(*List).Get(1).(*List)
			if b.Pos() != tt.want {
				t.Errorf("Expected (b) at %+v, got %+v", tt.want, b.Pos())
			}
		})
	}
}

func TestParseSyntaxErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantPos Pos
		wantMsg string
	}{
		{
			name:    "unexpected close",
			input:   "(a b))",
			wantPos: Pos{Offset: 5, Line: 1, Column: 6},
			wantMsg: "unexpected ')'",
		},
		{
			name:    "unclosed list",
			input:   "(a\n (b c)",
			wantPos: Pos{Offset: 0, Line: 1, Column: 1},
			wantMsg: "never closed",
		},
		{
			name:    "unclosed nested list",
			input:   "(a (b c)\n  (d",
			wantPos: Pos{Offset: 11, Line: 2, Column: 3},
			wantMsg: "never closed",
		},
		{
			name:    "unterminated string",
			input:   "(a \"bc)",
			wantPos: Pos{Offset: 3, Line: 1, Column: 4},
			wantMsg: "unterminated string",
		},
		{
			name:    "invalid UTF-8 in string",
			input:   "(a \"b\xffc\")",
			wantPos: Pos{Offset: 5, Line: 1, Column: 6},
			wantMsg: "invalid UTF-8",
		},
		{
			name:    "invalid UTF-8 after escape",
			input:   "(a \"\\\xff\")",
			wantPos: Pos{Offset: 5, Line: 1, Column: 6},
			wantMsg: "invalid UTF-8",
		},
		{
			name:    "unterminated escape",
			input:   "(a \"bc\\",
			wantPos: Pos{Offset: 3, Line: 1, Column: 4},
			wantMsg: "unterminated string",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(tt.input)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			var synErr *SyntaxError
			if !errors.As(err, &synErr) {
				t.Fatalf("Expected *SyntaxError, got %T: %v", err, err)
			}
			if synErr.Pos != tt.wantPos {
				t.Errorf("Expected position %+v, got %+v", tt.wantPos, synErr.Pos)
			}
			if !strings.Contains(synErr.Msg, tt.wantMsg) {
				t.Errorf("Expected message containing %q, got %q", tt.wantMsg, synErr.Msg)
			}
		})
	}
}

func TestParserNextStreams(t *testing.T) {
	p := NewParser(strings.NewReader("(a) (b 1) c"))

	var heads []string
	for {
		s, err := p.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next() error: %v", err)
		}
		heads = append(heads, s.Head().String())
	}

	if strings.Join(heads, ",") != "a,b,c" {
		t.Errorf("Expected heads a,b,c, got %v", heads)
	}
}

func TestParseEmptyInput(t *testing.T) {
	sexps, err := ParseString("  \n\t ")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(sexps) != 0 {
		t.Errorf("Expected no expressions, got %d", len(sexps))
	}
}
