// Package manifest describes a batch of symbol libraries to generate.
//
// A manifest is a YAML file:
//
//	generator:
//	  version: "8.0"
//	  workers: 4
//	libraries:
//	  - name: Resistors
//	    input: parts/resistors.csv
//	    category: resistor
//	    output: lib/Resistors.kicad_sym
//
// Relative paths are resolved against the manifest's directory.
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/OpenTraceLab/OpenTraceSymbols/pkg/symgen"
)

// LibraryExt is appended to a library name when no output is given
const LibraryExt = ".kicad_sym"

// Manifest is a parsed batch description
type Manifest struct {
	Generator Generator `yaml:"generator,omitempty"`
	Libraries []Library `yaml:"libraries"`

	dir string
}

// Generator holds optional overrides of the header configuration
type Generator struct {
	FormatVersion int    `yaml:"format_version,omitempty"`
	Name          string `yaml:"name,omitempty"`
	Version       string `yaml:"version,omitempty"`
	Workers       int    `yaml:"workers,omitempty"`
}

// Library is one output file built from one table
type Library struct {
	Name     string `yaml:"name"`
	Input    string `yaml:"input"`
	Category string `yaml:"category"`
	Output   string `yaml:"output,omitempty"`
}

// EntryError reports an invalid library entry
type EntryError struct {
	Index int // 0-based position in the libraries list
	Name  string
	Msg   string
}

func (e *EntryError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("manifest: library %d (%s): %s", e.Index, e.Name, e.Msg)
	}
	return fmt.Sprintf("manifest: library %d: %s", e.Index, e.Msg)
}

// ErrNoLibraries is returned for a manifest without entries
var ErrNoLibraries = errors.New("manifest: no libraries")

// Load reads and validates a manifest file
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve manifest path: %w", err)
	}

	m, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	m.resolve(filepath.Dir(abs))
	return m, nil
}

// Decode parses and validates a manifest. Paths are left as written.
func Decode(r io.Reader) (*Manifest, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoLibraries
		}
		return nil, fmt.Errorf("manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks every entry and fills in default outputs
func (m *Manifest) Validate() error {
	if len(m.Libraries) == 0 {
		return ErrNoLibraries
	}

	names := map[string]int{}
	outputs := map[string]int{}
	for i := range m.Libraries {
		lib := &m.Libraries[i]
		lib.Name = strings.TrimSpace(lib.Name)

		switch {
		case lib.Name == "":
			return &EntryError{Index: i, Msg: "missing name"}
		case lib.Input == "":
			return &EntryError{Index: i, Name: lib.Name, Msg: "missing input"}
		case lib.Category == "":
			return &EntryError{Index: i, Name: lib.Name, Msg: "missing category"}
		}
		if _, err := symgen.Lookup(lib.Category); err != nil {
			return &EntryError{Index: i, Name: lib.Name, Msg: err.Error()}
		}

		if lib.Output == "" {
			lib.Output = lib.Name + LibraryExt
		}
		if j, dup := names[lib.Name]; dup {
			return &EntryError{Index: i, Name: lib.Name, Msg: fmt.Sprintf("name already used by library %d", j)}
		}
		names[lib.Name] = i
		out := filepath.Clean(lib.Output)
		if j, dup := outputs[out]; dup {
			return &EntryError{Index: i, Name: lib.Name, Msg: fmt.Sprintf("output %s already written by library %d", lib.Output, j)}
		}
		outputs[out] = i
	}
	return nil
}

func (m *Manifest) resolve(dir string) {
	m.dir = dir
	for i := range m.Libraries {
		m.Libraries[i].Input = m.path(m.Libraries[i].Input)
		m.Libraries[i].Output = m.path(m.Libraries[i].Output)
	}
}

func (m *Manifest) path(p string) string {
	if m.dir == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(m.dir, p)
}

// Dir returns the directory relative paths were resolved against
func (m *Manifest) Dir() string {
	return m.dir
}

// Apply returns a copy of base with the generator overrides applied
func (m *Manifest) Apply(base *symgen.Config) (*symgen.Config, error) {
	if base == nil {
		base = symgen.DefaultConfig()
	}
	cfg := *base
	g := m.Generator
	if g.FormatVersion != 0 {
		cfg.FormatVersion = g.FormatVersion
	}
	if g.Name != "" {
		cfg.Generator = g.Name
	}
	if g.Version != "" {
		cfg.GeneratorVersion = g.Version
	}
	if g.Workers != 0 {
		cfg.Workers = g.Workers
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("manifest generator: %w", err)
	}
	return &cfg, nil
}
