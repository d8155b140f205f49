// Package defaults picks the initial filament selection when the profile
// arrives with none.
package defaults

import (
	"fmt"

	"github.com/ruminaider/slicer-guide/internal/facet"
	"github.com/ruminaider/slicer-guide/internal/profile"
	"github.com/ruminaider/slicer-guide/internal/selection"
	"github.com/samber/lo"
)

// Mode selects how default filaments are derived.
type Mode string

const (
	// ModeMaterials checks rows named in a selected machine's default
	// materials list.
	ModeMaterials Mode = "materials"
	// ModeModelOnly checks rows that declare a selected machine model,
	// whatever the nozzle.
	ModeModelOnly Mode = "model-only"
)

// ParseMode validates a mode name. An empty string means ModeMaterials.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeMaterials:
		return ModeMaterials, nil
	case ModeModelOnly:
		return ModeModelOnly, nil
	default:
		return "", fmt.Errorf("unknown default selection mode %q", s)
	}
}

// Needed reports whether no in-scope row arrived pre-selected.
func Needed(rows []facet.Row, active facet.PairSet) bool {
	return !lo.ContainsBy(rows, func(r facet.Row) bool {
		return r.DefaultSelected && facet.Compatible(r.Compatibility, active)
	})
}

// Apply checks the default rows in st and returns the new store. Machines
// count as selected when st has at least one of their nozzles checked. When
// nothing matches the selection is left empty.
func Apply(mode Mode, rows []facet.Row, machines []profile.Machine, st selection.Store) selection.Store {
	models := lo.Uniq(st.CheckedModels())
	var pick func(facet.Row) bool

	switch mode {
	case ModeModelOnly:
		pick = func(r facet.Row) bool {
			return lo.ContainsBy(r.Compatibility.Pairs(), func(p profile.Pair) bool {
				return lo.Contains(models, p.Model)
			})
		}
	default:
		var candidates []string
		for _, m := range machines {
			if lo.Contains(models, m.Model) {
				candidates = append(candidates, m.DefaultMaterials...)
			}
		}
		pick = func(r facet.Row) bool {
			return lo.Some(r.Names, candidates)
		}
	}

	for _, r := range rows {
		if pick(r) {
			st = st.WithFilament(r.Key(), true)
		}
	}
	return st
}
