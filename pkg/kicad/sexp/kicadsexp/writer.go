package kicadsexp

import (
	"bufio"
	"io"
	"math"
	"strconv"
	"strings"
)

// inlineKeys are lists kept on one line even though they contain sub-lists.
var inlineKeys = map[string]bool{
	"pts": true,
}

// Encoder writes S-expression trees in the indentation style KiCad 8 uses:
// a list made only of atoms stays on one line, any other list puts its leading
// atoms on the opening line and each remaining element on its own line,
// indented with one tab per level.
type Encoder struct {
	w   *bufio.Writer
	err error
}

// NewEncoder returns an encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: bufio.NewWriter(w)}
}

// Encode writes s at the given indentation depth followed by a newline.
func (e *Encoder) Encode(s Sexp, depth int) error {
	e.indent(depth)
	e.node(s, depth)
	e.writeString("\n")
	if e.err != nil {
		return e.err
	}
	return e.w.Flush()
}

func (e *Encoder) node(s Sexp, depth int) {
	list, ok := s.(*List)
	if !ok {
		e.writeString(s.String())
		return
	}

	if isFlat(list) {
		e.writeString(list.String())
		return
	}

	items := list.Elements()
	e.writeString("(")
	i := 0
	for ; i < len(items) && items[i].IsLeaf(); i++ {
		if i > 0 {
			e.writeString(" ")
		}
		e.writeString(items[i].String())
	}
	for ; i < len(items); i++ {
		e.writeString("\n")
		e.indent(depth + 1)
		e.node(items[i], depth+1)
	}
	e.writeString("\n")
	e.indent(depth)
	e.writeString(")")
}

// isFlat reports whether a list is printed on a single line.
func isFlat(l *List) bool {
	if head, ok := l.Head().(Symbol); ok && inlineKeys[string(head)] {
		return true
	}
	for _, item := range l.Elements() {
		if !item.IsLeaf() {
			return false
		}
	}
	return true
}

func (e *Encoder) indent(depth int) {
	for i := 0; i < depth; i++ {
		e.writeString("\t")
	}
}

func (e *Encoder) writeString(s string) {
	if e.err != nil {
		return
	}
	_, e.err = e.w.WriteString(s)
}

// Format renders s in KiCad layout without a trailing newline.
func Format(s Sexp) string {
	var b strings.Builder
	enc := NewEncoder(&b)
	enc.node(s, 0)
	enc.w.Flush()
	return b.String()
}

var quoteReplacer = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\t", `\t`,
	"\r", `\r`,
)

// Quote returns s as a double-quoted KiCad string literal.
func Quote(s string) string {
	return `"` + quoteReplacer.Replace(s) + `"`
}

// FormatFloat formats a coordinate rounded to 1e-4 library units, without
// trailing zeros. Negative zero prints as 0.
func FormatFloat(v float64) string {
	r := math.Round(v*1e4) / 1e4
	if r == 0 {
		return "0"
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// Float returns v as a formatted numeric atom.
func Float(v float64) Symbol {
	return Symbol(FormatFloat(v))
}

// Int returns v as a numeric atom.
func Int(v int) Symbol {
	return Symbol(strconv.Itoa(v))
}

// Bool returns the KiCad yes/no atom for v.
func Bool(v bool) Symbol {
	if v {
		return Symbol("yes")
	}
	return Symbol("no")
}
