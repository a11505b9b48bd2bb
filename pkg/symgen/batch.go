package symgen

import (
	"bytes"
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/OpenTraceLab/OpenTraceSymbols/pkg/component"
	"github.com/OpenTraceLab/OpenTraceSymbols/pkg/kicad/symlib"
)

// Result is the outcome of a batch
type Result struct {
	Library  []byte   // assembled .kicad_sym content of the successful records
	Symbols  []string // names written, in input order
	Rendered int
	Failed   int
}

// Generate renders every record with the given category and assembles the
// successful ones into a library, in input order. A record whose Symbol Name
// already appeared earlier fails with ErrDuplicateSymbol. Failures do not
// stop the batch: when any record fails the returned error is a *BatchError
// and the Result still holds the library of the others.
func Generate(ctx context.Context, cfg *Config, category string, records []component.Record) (*Result, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	cat, err := Lookup(category)
	if err != nil {
		return nil, err
	}

	failures := make([]error, len(records))

	names := make([]string, len(records))
	for i, r := range records {
		names[i] = r.SymbolName
	}
	for _, d := range symlib.FindDuplicates(names) {
		for _, i := range d.Indices[1:] {
			failures[i] = ErrDuplicateSymbol
		}
	}

	blocks := make([][]byte, len(records))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)

	for i := range records {
		if failures[i] != nil {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			sym, err := cat.Render(records[i])
			if err != nil {
				failures[i] = err
				return nil
			}
			b, err := symlib.MarshalSymbol(sym)
			if err != nil {
				failures[i] = err
				return nil
			}
			blocks[i] = b
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{}
	var batchErr BatchError
	ordered := make([][]byte, 0, len(records))

	for i, r := range records {
		if failures[i] != nil {
			batchErr.Failures = append(batchErr.Failures, &RecordError{Index: i, SymbolName: r.SymbolName, Err: failures[i]})
			continue
		}
		ordered = append(ordered, blocks[i])
		res.Symbols = append(res.Symbols, r.SymbolName)
	}
	res.Rendered = len(ordered)
	res.Failed = len(batchErr.Failures)

	var buf bytes.Buffer
	if err := symlib.Assemble(&buf, cfg.Header(), ordered); err != nil {
		return nil, err
	}
	res.Library = buf.Bytes()

	if len(batchErr.Failures) > 0 {
		return res, &batchErr
	}
	return res, nil
}
