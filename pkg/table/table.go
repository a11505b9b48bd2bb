// Package table reads and writes component records as spreadsheets.
//
// One row is one component. The header row must contain a "Symbol Name"
// column; every other column becomes an attribute, in column order. Empty
// cells are left out of the record, so a record written and read back keeps
// exactly the attributes it had.
package table

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/OpenTraceLab/OpenTraceSymbols/pkg/component"
)

// ErrNoSymbolNameColumn is returned when the header row lacks "Symbol Name"
var ErrNoSymbolNameColumn = errors.New("table: no \"Symbol Name\" column")

// RowError reports a data row that cannot become a record
type RowError struct {
	Row int // 1-based, header is row 1
	Msg string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("table: row %d: %s", e.Row, e.Msg)
}

// Format identifies a spreadsheet encoding
type Format int

const (
	FormatUnknown Format = iota
	FormatCSV
	FormatXLSX
)

// FormatOf picks the format from a file extension
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV
	case ".xlsx", ".xlsm":
		return FormatXLSX
	}
	return FormatUnknown
}

// ReadFile loads records from a .csv or .xlsx file
func ReadFile(path string) ([]component.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	switch FormatOf(path) {
	case FormatCSV:
		return ReadCSV(f)
	case FormatXLSX:
		return ReadXLSX(f)
	}
	return nil, fmt.Errorf("table: unsupported file type %q", filepath.Ext(path))
}

// WriteFile saves records as .csv or .xlsx depending on the extension
func WriteFile(path string, records []component.Record) error {
	format := FormatOf(path)
	if format == FormatUnknown {
		return fmt.Errorf("table: unsupported file type %q", filepath.Ext(path))
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if format == FormatCSV {
		err = WriteCSV(f, records)
	} else {
		err = WriteXLSX(f, records)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

// Columns returns the header for a set of records: Symbol Name, the fixed
// columns that occur in any record, then every other attribute in the
// order it is first seen
func Columns(records []component.Record) []string {
	present := map[string]bool{}
	var extras []string
	for _, r := range records {
		for _, a := range r.Attributes {
			if !present[a.Name] {
				present[a.Name] = true
				if !isFixed(a.Name) {
					extras = append(extras, a.Name)
				}
			}
		}
	}

	cols := []string{component.FieldSymbolName}
	for _, name := range component.FixedColumns[1:] {
		if present[name] {
			cols = append(cols, name)
		}
	}
	return append(cols, extras...)
}

func isFixed(name string) bool {
	for _, f := range component.FixedColumns {
		if f == name {
			return true
		}
	}
	return false
}

// row lays out one record under the given header
func row(r component.Record, cols []string) []string {
	out := make([]string, len(cols))
	out[0] = r.SymbolName
	for i, name := range cols[1:] {
		out[i+1] = r.Value(name)
	}
	return out
}

// decoder turns raw rows into records
type decoder struct {
	header  []string
	nameCol int
	line    int
}

func newDecoder(header []string) (*decoder, error) {
	d := &decoder{header: make([]string, len(header)), nameCol: -1, line: 1}
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		d.header[i] = h
		if h == component.FieldSymbolName && d.nameCol < 0 {
			d.nameCol = i
		}
	}
	if d.nameCol < 0 {
		return nil, ErrNoSymbolNameColumn
	}
	return d, nil
}

// decode returns ok=false for blank rows
func (d *decoder) decode(cells []string) (component.Record, bool, error) {
	d.line++

	blank := true
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			blank = false
			break
		}
	}
	if blank {
		return component.Record{}, false, nil
	}

	var rec component.Record
	if d.nameCol < len(cells) {
		rec.SymbolName = strings.TrimSpace(cells[d.nameCol])
	}
	if rec.SymbolName == "" {
		return rec, false, &RowError{Row: d.line, Msg: "empty Symbol Name"}
	}

	for i, v := range cells {
		if i == d.nameCol || i >= len(d.header) || d.header[i] == "" || v == "" {
			continue
		}
		rec.Set(d.header[i], v)
	}
	return rec, true, nil
}
