// Package facet builds the machine, type and vendor filter groups of the
// filament page and decides which filament rows they leave visible.
package facet

import (
	"github.com/ruminaider/slicer-guide/internal/profile"
	"github.com/ruminaider/slicer-guide/internal/selection"
)

// PairSet is a set of (model, nozzle) pairs keyed by "model++nozzle".
type PairSet map[string]struct{}

// NewPairSet returns a set holding pairs.
func NewPairSet(pairs ...profile.Pair) PairSet {
	s := make(PairSet, len(pairs))
	for _, p := range pairs {
		s.Add(p)
	}
	return s
}

// Add inserts p.
func (s PairSet) Add(p profile.Pair) {
	s[p.Key()] = struct{}{}
}

// Has reports whether p is in the set.
func (s PairSet) Has(p profile.Pair) bool {
	_, ok := s[p.Key()]
	return ok
}

// Compatible reports whether a filament with compatibility c is usable with
// any of the active pairs. A filament that declared nothing is compatible
// with everything. Both the facet build and the row filter go through here.
func Compatible(c profile.Compatibility, active PairSet) bool {
	if c.Universal() {
		return true
	}
	for _, p := range c.Pairs() {
		if active.Has(p) {
			return true
		}
	}
	return false
}

// ActivePairs returns the checked (model, nozzle) pairs of every machine that
// has a nozzle selection.
func ActivePairs(machines []profile.Machine, st selection.Store) PairSet {
	active := PairSet{}
	for _, m := range machines {
		for _, n := range m.NozzleSelected {
			if on, _ := st.Nozzle(m.Vendor, m.Model, n); on {
				active.Add(profile.Pair{Model: m.Model, Nozzle: n})
			}
		}
	}
	return active
}
