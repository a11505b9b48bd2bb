// Package kicadsexp provides a small streaming S-expression reader and writer
// for KiCad library files. Unlike general-purpose sexp libraries it keeps
// quoted strings intact, reports source positions, and can re-emit a tree in
// KiCad's own indentation style.
package kicadsexp

import (
	"io"
	"strings"
)

// Sexp represents an S-expression node.
// It can be either a leaf (atom) or a list.
type Sexp interface {
	// IsLeaf returns true if this is an atom (not a list)
	IsLeaf() bool

	// LeafCount returns the number of elements in a list (1 for atoms)
	LeafCount() int

	// Head returns the first element of a list (the atom itself for atoms)
	Head() Sexp

	// Tail returns the rest of the list after the first element (nil for atoms)
	Tail() Sexp

	// String returns the source representation
	String() string
}

// Symbol is a bare atom: a keyword, identifier or number.
type Symbol string

func (s Symbol) IsLeaf() bool   { return true }
func (s Symbol) LeafCount() int { return 1 }
func (s Symbol) Head() Sexp     { return s }
func (s Symbol) Tail() Sexp     { return nil }
func (s Symbol) String() string { return string(s) }

// String is a quoted atom. The value is stored unescaped.
type String string

func (s String) IsLeaf() bool   { return true }
func (s String) LeafCount() int { return 1 }
func (s String) Head() Sexp     { return s }
func (s String) Tail() Sexp     { return nil }
func (s String) String() string { return Quote(string(s)) }

// List represents a parenthesised list of S-expressions.
type List struct {
	elements []Sexp
	pos      Pos
}

// NewList builds a list from the given elements.
func NewList(elements ...Sexp) *List {
	return &List{elements: elements}
}

// L is shorthand for a list headed by the keyword head.
// Example: L("at", Symbol("0"), Symbol("2.54")) is (at 0 2.54).
func L(head string, elements ...Sexp) *List {
	items := make([]Sexp, 0, len(elements)+1)
	items = append(items, Symbol(head))
	for _, e := range elements {
		if e != nil {
			items = append(items, e)
		}
	}
	return &List{elements: items}
}

func (l *List) IsLeaf() bool { return false }

func (l *List) LeafCount() int {
	return len(l.elements)
}

func (l *List) Head() Sexp {
	if len(l.elements) == 0 {
		return nil
	}
	return l.elements[0]
}

func (l *List) Tail() Sexp {
	if len(l.elements) <= 1 {
		return nil
	}
	return &List{elements: l.elements[1:], pos: l.pos}
}

func (l *List) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, elem := range l.elements {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(elem.String())
	}
	b.WriteByte(')')
	return b.String()
}

// Get returns the element at the given index
func (l *List) Get(index int) Sexp {
	if index < 0 || index >= len(l.elements) {
		return nil
	}
	return l.elements[index]
}

// Len returns the number of elements in the list
func (l *List) Len() int {
	return len(l.elements)
}

// Elements returns the list items. The slice must not be modified.
func (l *List) Elements() []Sexp {
	return l.elements
}

// Append adds elements to the end of the list, skipping nils.
func (l *List) Append(elements ...Sexp) *List {
	for _, e := range elements {
		if e != nil {
			l.elements = append(l.elements, e)
		}
	}
	return l
}

// Pos returns where the list's opening parenthesis was read.
// Lists built in memory report the zero Pos.
func (l *List) Pos() Pos {
	return l.pos
}

// Parse parses S-expressions from an io.Reader.
func Parse(r io.Reader) ([]Sexp, error) {
	parser := NewParser(r)
	return parser.ParseAll()
}

// ParseString parses S-expressions from a string (convenience function)
func ParseString(s string) ([]Sexp, error) {
	return Parse(strings.NewReader(s))
}
