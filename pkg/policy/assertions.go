package policy

import "github.com/pyneda/wsimport/pkg/xmlnode"

// Assertions is the mutable set of assertions a policy importer works on.
// Importers remove the assertions they understand; whatever is left at the
// end was not recognized.
type Assertions struct {
	items []*xmlnode.Element
}

// NewAssertions creates a set holding a copy of items
func NewAssertions(items ...*xmlnode.Element) *Assertions {
	return &Assertions{items: append([]*xmlnode.Element(nil), items...)}
}

// Len returns the number of remaining assertions
func (a *Assertions) Len() int {
	return len(a.items)
}

// All returns a copy of the remaining assertions
func (a *Assertions) All() []*xmlnode.Element {
	return append([]*xmlnode.Element(nil), a.items...)
}

// Add appends an assertion
func (a *Assertions) Add(e *xmlnode.Element) {
	a.items = append(a.items, e)
}

// Find returns the first assertion with the given name, removing it from the
// set when remove is true.
func (a *Assertions) Find(namespace, local string, remove bool) *xmlnode.Element {
	for i, e := range a.items {
		if e.Is(namespace, local) {
			if remove {
				a.items = append(a.items[:i:i], a.items[i+1:]...)
			}
			return e
		}
	}
	return nil
}

// FindAll returns every assertion with the given name, removing them from
// the set when remove is true.
func (a *Assertions) FindAll(namespace, local string, remove bool) []*xmlnode.Element {
	var found []*xmlnode.Element
	kept := a.items[:0:0]
	for _, e := range a.items {
		if e.Is(namespace, local) {
			found = append(found, e)
			if remove {
				continue
			}
		}
		kept = append(kept, e)
	}
	a.items = kept
	return found
}

// Remove deletes a specific assertion. It reports whether it was present.
func (a *Assertions) Remove(e *xmlnode.Element) bool {
	for i, item := range a.items {
		if item == e {
			a.items = append(a.items[:i:i], a.items[i+1:]...)
			return true
		}
	}
	return false
}
