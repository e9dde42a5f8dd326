package model

import "sort"

// Branch is a named inventory location. It carries no attributes yet; the
// persisted registry maps each branch name to an empty object.
type Branch struct{}

// Branches is the branch registry keyed by name.
type Branches map[string]Branch

// Has reports whether name is a known branch.
func (b Branches) Has(name string) bool {
	_, ok := b[name]
	return ok
}

// Names returns the registered branch names in lexical order.
func (b Branches) Names() []string {
	names := make([]string, 0, len(b))
	for name := range b {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns an independent copy of the registry.
func (b Branches) Clone() Branches {
	out := make(Branches, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}
