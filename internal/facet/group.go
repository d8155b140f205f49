package facet

import "github.com/ruminaider/slicer-guide/internal/profile"

// Kind identifies a facet group.
type Kind int

const (
	KindMachine Kind = iota
	KindType
	KindVendor
)

// String returns the display name of the group.
func (k Kind) String() string {
	switch k {
	case KindMachine:
		return "Printer"
	case KindType:
		return "Type"
	case KindVendor:
		return "Vendor"
	default:
		return "Unknown"
	}
}

// TriState is the derived state of a group's "all" checkbox.
type TriState int

const (
	StateNone TriState = iota
	StateSome
	StateAll
)

// Value is one checkbox in a facet group.
type Value struct {
	Key     string // lower-cased value, or "model++nozzle" for machines
	Label   string // first-seen casing
	Checked bool

	// Machine facet only.
	Vendor string
	Pair   profile.Pair
}

// Group is an ordered list of facet values. Its "all" checkbox has no state
// of its own; All and State derive it from the children.
type Group struct {
	Kind   Kind
	values []Value
}

// NewGroup returns a group over values.
func NewGroup(kind Kind, values []Value) Group {
	return Group{Kind: kind, values: append([]Value(nil), values...)}
}

// Values returns a copy of the group's values in display order.
func (g Group) Values() []Value {
	return append([]Value(nil), g.values...)
}

// Len returns the number of children.
func (g Group) Len() int {
	return len(g.values)
}

// CheckedCount returns the number of checked children.
func (g Group) CheckedCount() int {
	n := 0
	for _, v := range g.values {
		if v.Checked {
			n++
		}
	}
	return n
}

// All reports the "all" checkbox: true iff every child is checked.
func (g Group) All() bool {
	return g.CheckedCount() == g.Len()
}

// State reports the "all" checkbox as all, some or none.
func (g Group) State() TriState {
	switch n := g.CheckedCount(); {
	case n == g.Len():
		return StateAll
	case n == 0:
		return StateNone
	default:
		return StateSome
	}
}

// IsChecked reports whether the child with key is checked.
func (g Group) IsChecked(key string) bool {
	for _, v := range g.values {
		if v.Key == key {
			return v.Checked
		}
	}
	return false
}

// CheckedKeys returns the keys of the checked children.
func (g Group) CheckedKeys() map[string]bool {
	out := make(map[string]bool, len(g.values))
	for _, v := range g.values {
		if v.Checked {
			out[v.Key] = true
		}
	}
	return out
}

// Toggle returns a copy of g with one child set. Unknown keys are ignored.
func (g Group) Toggle(key string, on bool) Group {
	out := NewGroup(g.Kind, g.values)
	for i := range out.values {
		if out.values[i].Key == key {
			out.values[i].Checked = on
		}
	}
	return out
}

// SetAll returns a copy of g with every child set to on.
func (g Group) SetAll(on bool) Group {
	out := NewGroup(g.Kind, g.values)
	for i := range out.values {
		out.values[i].Checked = on
	}
	return out
}

// Merge returns a group over values that keeps the checked state of children
// already present in g. Children new to the group start checked.
func (g Group) Merge(values []Value) Group {
	prev := make(map[string]bool, len(g.values))
	for _, v := range g.values {
		prev[v.Key] = v.Checked
	}
	out := NewGroup(g.Kind, values)
	for i := range out.values {
		if on, ok := prev[out.values[i].Key]; ok {
			out.values[i].Checked = on
		} else {
			out.values[i].Checked = true
		}
	}
	return out
}
