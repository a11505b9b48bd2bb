package table

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/OpenTraceLab/OpenTraceSymbols/pkg/component"
)

// SheetName is the worksheet written by WriteXLSX
const SheetName = "Symbols"

// ReadXLSX reads records from the first worksheet of a workbook
func ReadXLSX(r io.Reader) ([]component.Record, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSymbolNameColumn
	}

	rows, err := f.Rows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, ErrNoSymbolNameColumn
	}
	header, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	d, err := newDecoder(header)
	if err != nil {
		return nil, err
	}

	var records []component.Record
	for rows.Next() {
		cells, err := rows.Columns()
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}

		rec, ok, err := d.decode(cells)
		if err != nil {
			return nil, err
		}
		if ok {
			records = append(records, rec)
		}
	}
	if err := rows.Error(); err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	return records, nil
}

// WriteXLSX writes records to a single-sheet workbook. Every cell is
// stored as text so values like "1%" or "0402" survive unchanged.
func WriteXLSX(w io.Writer, records []component.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	cols := Columns(records)
	if err := setRow(f, 1, cols); err != nil {
		return err
	}
	for i, r := range records {
		if err := setRow(f, i+2, row(r, cols)); err != nil {
			return fmt.Errorf("failed to write record %q: %w", r.SymbolName, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, n int, cells []string) error {
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		return err
	}
	values := make([]interface{}, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	return f.SetSheetRow(SheetName, cell, &values)
}
