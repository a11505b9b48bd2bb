// Package component defines the tabular record of one electronic component
// and its projection from a decoded KiCad symbol.
package component

import (
	"fmt"

	"github.com/OpenTraceLab/OpenTraceSymbols/pkg/kicad/symlib"
)

// Fixed field names shared by every category
const (
	FieldSymbolName    = "Symbol Name"
	FieldReference     = "Reference"
	FieldValue         = "Value"
	FieldFootprint     = "Footprint"
	FieldDatasheet     = "Datasheet"
	FieldDescription   = "Description"
	FieldManufacturer  = "Manufacturer"
	FieldMPN           = "MPN"
	FieldTolerance     = "Tolerance"
	FieldVoltageRating = "Voltage Rating"
)

// MandatoryFields are the fields KiCad expects on every symbol, in the order
// they are written
var MandatoryFields = []string{
	FieldReference,
	FieldValue,
	FieldFootprint,
	FieldDatasheet,
	FieldDescription,
}

// FixedColumns is the tabular column order of the fixed fields
var FixedColumns = []string{
	FieldSymbolName,
	FieldReference,
	FieldValue,
	FieldFootprint,
	FieldDatasheet,
	FieldDescription,
	FieldManufacturer,
	FieldMPN,
	FieldTolerance,
	FieldVoltageRating,
}

// Attribute is one named value of a record
type Attribute struct {
	Name  string
	Value string
}

// Record is one component: a symbol name plus ordered attributes
type Record struct {
	SymbolName string
	Attributes []Attribute
}

// New builds a record from name/value pairs
func New(symbolName string, pairs ...string) Record {
	r := Record{SymbolName: symbolName}
	for i := 0; i+1 < len(pairs); i += 2 {
		r.Set(pairs[i], pairs[i+1])
	}
	return r
}

// Get returns the value of an attribute
func (r Record) Get(name string) (string, bool) {
	for _, a := range r.Attributes {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Value returns the value of an attribute, or "" when absent
func (r Record) Value(name string) string {
	v, _ := r.Get(name)
	return v
}

// Set replaces an attribute's value, appending it if absent
func (r *Record) Set(name, value string) {
	for i := range r.Attributes {
		if r.Attributes[i].Name == name {
			r.Attributes[i].Value = value
			return
		}
	}
	r.Attributes = append(r.Attributes, Attribute{Name: name, Value: value})
}

// Names returns attribute names in record order
func (r Record) Names() []string {
	names := make([]string, len(r.Attributes))
	for i, a := range r.Attributes {
		names[i] = a.Name
	}
	return names
}

// Require checks that every named attribute is present and non-empty
func (r Record) Require(names ...string) error {
	for _, name := range names {
		if v, ok := r.Get(name); !ok || v == "" {
			return &MissingAttributeError{Symbol: r.SymbolName, Attribute: name}
		}
	}
	return nil
}

// Canonical returns a copy with the mandatory KiCad fields first, followed
// by every other attribute in input order
func (r Record) Canonical() Record {
	out := Record{SymbolName: r.SymbolName, Attributes: make([]Attribute, 0, len(r.Attributes))}

	mandatory := make(map[string]bool, len(MandatoryFields))
	for _, name := range MandatoryFields {
		mandatory[name] = true
		if v, ok := r.Get(name); ok {
			out.Attributes = append(out.Attributes, Attribute{Name: name, Value: v})
		}
	}
	for _, a := range r.Attributes {
		if !mandatory[a.Name] {
			out.Attributes = append(out.Attributes, a)
		}
	}

	return out
}

// Equal reports whether both records have the same name and the same
// attributes in the same order
func (r Record) Equal(other Record) bool {
	if r.SymbolName != other.SymbolName || len(r.Attributes) != len(other.Attributes) {
		return false
	}
	for i := range r.Attributes {
		if r.Attributes[i] != other.Attributes[i] {
			return false
		}
	}
	return true
}

func (r Record) String() string {
	return fmt.Sprintf("%s %v", r.SymbolName, r.Attributes)
}

// FromSymbol projects a decoded symbol back to a record. Only properties are
// kept; units, graphics and pins are discarded.
func FromSymbol(sym *symlib.Symbol) Record {
	r := Record{
		SymbolName: sym.Name,
		Attributes: make([]Attribute, 0, len(sym.Properties)),
	}
	for _, p := range sym.Properties {
		r.Set(p.Key, p.Value)
	}
	return r
}

// FromLibrary projects every symbol of a library, in file order
func FromLibrary(lib *symlib.Library) []Record {
	records := make([]Record, 0, len(lib.Symbols))
	for _, s := range lib.Symbols {
		records = append(records, FromSymbol(s))
	}
	return records
}
