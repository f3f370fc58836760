package placeholder

// Visited is an immutable set of placeholder names on the current
// resolution path. The nil *Visited is the empty set. With never modifies
// its receiver, so sibling resolutions cannot see each other's names.
type Visited struct {
	name   string
	parent *Visited
}

// With returns a set holding the receiver's names plus name.
func (v *Visited) With(name string) *Visited {
	return &Visited{name: name, parent: v}
}

// Has reports whether name is in the set.
func (v *Visited) Has(name string) bool {
	for n := v; n != nil; n = n.parent {
		if n.name == name {
			return true
		}
	}
	return false
}

// Names returns the names from the outermost to the innermost.
func (v *Visited) Names() []string {
	var names []string
	for n := v; n != nil; n = n.parent {
		names = append(names, n.name)
	}
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return names
}
