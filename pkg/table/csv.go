package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/OpenTraceLab/OpenTraceSymbols/pkg/component"
)

// ReadCSV reads records from comma-separated text with a header row
func ReadCSV(r io.Reader) ([]component.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoSymbolNameColumn
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	d, err := newDecoder(header)
	if err != nil {
		return nil, err
	}

	var records []component.Record
	for {
		cells, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
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

	return records, nil
}

// WriteCSV writes records with the header from Columns
func WriteCSV(w io.Writer, records []component.Record) error {
	cw := csv.NewWriter(w)
	cols := Columns(records)

	if err := cw.Write(cols); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, r := range records {
		if err := cw.Write(row(r, cols)); err != nil {
			return fmt.Errorf("failed to write record %q: %w", r.SymbolName, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
