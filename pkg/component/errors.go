package component

import "fmt"

// MissingAttributeError names a required attribute that a record lacks or
// leaves empty
type MissingAttributeError struct {
	Symbol    string
	Attribute string
}

func (e *MissingAttributeError) Error() string {
	return fmt.Sprintf("component: %s: missing required attribute %q", e.Symbol, e.Attribute)
}
