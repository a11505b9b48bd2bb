// Package schematic reads the symbol definitions embedded in KiCad
// schematics (.kicad_sch).
//
// Every schematic carries a lib_symbols section with a copy of each library
// symbol it places, named "Library:Symbol". Only that section and the
// placed symbol instances are read; wires, labels and sheets are skipped.
package schematic

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/OpenTraceLab/OpenTraceSymbols/pkg/kicad/sexp"
	"github.com/OpenTraceLab/OpenTraceSymbols/pkg/kicad/sexp/kicadsexp"
	"github.com/OpenTraceLab/OpenTraceSymbols/pkg/kicad/symlib"
)

// Schematic holds the symbol data of one sheet
type Schematic struct {
	Header     symlib.Header
	Paper      string
	LibSymbols []*symlib.Symbol // embedded library symbols, in file order
	Instances  []Instance       // placed symbols
}

// Instance is a placed symbol
type Instance struct {
	LibID     string // "Library:Symbol", matches a LibSymbols name
	Reference string
	Value     string
	Unit      int
}

// ParseFile reads and parses a KiCad schematic file
func ParseFile(filename string) (*Schematic, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return Parse(file)
}

// Parse reads and parses a KiCad schematic from an io.Reader. Embedded
// symbols that fail to decode are left out and reported by a
// *symlib.DecodeError returned with the schematic.
func Parse(r io.Reader) (*Schematic, error) {
	sexps, err := kicadsexp.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse s-expression: %w", err)
	}
	if len(sexps) == 0 {
		return nil, fmt.Errorf("empty file or no valid s-expressions found")
	}

	root := sexps[0]
	rootName, err := sexp.GetNodeName(root)
	if err != nil {
		return nil, fmt.Errorf("failed to get root node name: %w", err)
	}
	if rootName != "kicad_sch" {
		return nil, fmt.Errorf("not a KiCad schematic file: expected 'kicad_sch', got '%s'", rootName)
	}

	sch := &Schematic{}
	if sch.Header, err = parseHeader(root); err != nil {
		return nil, fmt.Errorf("failed to parse header: %w", err)
	}

	if paperNode, found := sexp.FindNode(root, "paper"); found {
		sch.Paper, _ = sexp.GetQuotedString(paperNode, 1)
	}

	var decodeErr error
	if libSymbolsNode, found := sexp.FindNode(root, "lib_symbols"); found {
		var blocks []symlib.Block
		for _, node := range sexp.FindAllNodes(libSymbolsNode, "symbol") {
			name, _ := sexp.GetQuotedString(node, 1)
			blocks = append(blocks, symlib.Block{Name: name, Pos: sexp.GetPos(node), Node: node})
		}
		sch.LibSymbols, decodeErr = symlib.DecodeAll(blocks)
	}

	for _, node := range sexp.FindAllNodes(root, "symbol") {
		sch.Instances = append(sch.Instances, parseInstance(node))
	}

	return sch, decodeErr
}

// parseHeader extracts version and generator information
func parseHeader(root kicadsexp.Sexp) (symlib.Header, error) {
	h := symlib.Header{}

	versionNode, found := sexp.FindNode(root, "version")
	if !found {
		return h, fmt.Errorf("missing required 'version' field")
	}
	ver, err := sexp.GetInt(versionNode, 1)
	if err != nil {
		return h, fmt.Errorf("failed to parse version: %w", err)
	}
	if ver < symlib.MinSupportedVersion {
		return h, fmt.Errorf("%w: %d (minimum required: %d / KiCad 6.0)", symlib.ErrUnsupportedVersion, ver, symlib.MinSupportedVersion)
	}
	h.Version = ver

	if genNode, found := sexp.FindNode(root, "generator"); found {
		h.Generator, _ = sexp.GetString(genNode, 1)
	}
	if genVerNode, found := sexp.FindNode(root, "generator_version"); found {
		h.GeneratorVersion, _ = sexp.GetString(genVerNode, 1)
	}
	return h, nil
}

// parseInstance parses a placed symbol
func parseInstance(node kicadsexp.Sexp) Instance {
	inst := Instance{Unit: 1}

	if libNode, found := sexp.FindNode(node, "lib_id"); found {
		inst.LibID, _ = sexp.GetQuotedString(libNode, 1)
	}
	if unitNode, found := sexp.FindNode(node, "unit"); found {
		inst.Unit, _ = sexp.GetInt(unitNode, 1)
	}
	for _, pn := range sexp.FindAllNodes(node, "property") {
		key, _ := sexp.GetQuotedString(pn, 1)
		value, _ := sexp.GetQuotedString(pn, 2)
		switch key {
		case "Reference":
			inst.Reference = value
		case "Value":
			inst.Value = value
		}
	}
	return inst
}

// Library returns the embedded symbols as a symbol library. With
// stripPrefix the "Library:" part of each name is dropped; the symbols are
// copied so the schematic is left unchanged.
func (s *Schematic) Library(stripPrefix bool) *symlib.Library {
	lib := &symlib.Library{Header: s.Header, Symbols: make([]*symlib.Symbol, 0, len(s.LibSymbols))}
	for _, sym := range s.LibSymbols {
		if stripPrefix {
			cp := *sym
			cp.Name = StripPrefix(sym.Name)
			sym = &cp
		}
		lib.Symbols = append(lib.Symbols, sym)
	}
	return lib
}

// StripPrefix drops the "Library:" part of a lib_id
func StripPrefix(libID string) string {
	if i := strings.IndexByte(libID, ':'); i >= 0 {
		return libID[i+1:]
	}
	return libID
}

// Uses counts the placed instances of each embedded symbol
func (s *Schematic) Uses() map[string]int {
	uses := make(map[string]int, len(s.LibSymbols))
	for _, inst := range s.Instances {
		uses[inst.LibID]++
	}
	return uses
}

// GetInstance returns the placed symbol with the given reference
func (s *Schematic) GetInstance(reference string) (*Instance, bool) {
	for i := range s.Instances {
		if s.Instances[i].Reference == reference {
			return &s.Instances[i], true
		}
	}
	return nil, false
}
