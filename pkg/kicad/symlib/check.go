package symlib

import (
	version "github.com/mcuadros/go-version"
)

// AtLeast reports whether the generator version is min or newer, e.g. "8.0"
func (h Header) AtLeast(min string) bool {
	if h.GeneratorVersion == "" {
		return false
	}
	return version.CompareSimple(h.GeneratorVersion, min) >= 0
}

// Duplicate records a symbol name that occurs more than once
type Duplicate struct {
	Name    string
	Indices []int // positions in the input, ascending
}

// FindDuplicates returns every name that occurs more than once, ordered by
// first occurrence
func FindDuplicates(names []string) []Duplicate {
	seen := make(map[string]int, len(names))
	var dups []Duplicate

	for i, name := range names {
		first, ok := seen[name]
		if !ok {
			seen[name] = i
			continue
		}

		found := false
		for d := range dups {
			if dups[d].Name == name {
				dups[d].Indices = append(dups[d].Indices, i)
				found = true
				break
			}
		}
		if !found {
			dups = append(dups, Duplicate{Name: name, Indices: []int{first, i}})
		}
	}

	return dups
}

// Names returns the symbol names of a library in file order
func (l *Library) Names() []string {
	names := make([]string, len(l.Symbols))
	for i, s := range l.Symbols {
		names[i] = s.Name
	}
	return names
}

// Lookup returns the first symbol with the given name
func (l *Library) Lookup(name string) (*Symbol, bool) {
	for _, s := range l.Symbols {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}
