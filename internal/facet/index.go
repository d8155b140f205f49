package facet

import (
	"sort"
	"strings"

	"github.com/ruminaider/slicer-guide/internal/profile"
	"github.com/ruminaider/slicer-guide/internal/selection"
	"github.com/samber/lo"
)

// Row is one filament line on the page. Raw presets that share vendor, type
// and short name fold into a single row; their names, keys and compatibility
// are unioned.
type Row struct {
	Vendor          string
	Type            string
	ShortName       string
	Names           []string // full preset names, first-seen order
	Keys            []string // payload keys, first-seen order
	Compatibility   profile.Compatibility
	DefaultSelected bool
}

// Key is the selection store key of the row.
func (r Row) Key() string {
	return r.ShortName
}

// ID identifies the row itself: vendor, type and short name.
func (r Row) ID() string {
	return r.Vendor + "\x00" + r.Type + "\x00" + r.ShortName
}

// BuildRows folds raw filaments into rows, keeping first-seen order.
func BuildRows(filaments []profile.Filament) []Row {
	var rows []Row
	index := map[string]int{}
	for _, f := range filaments {
		r := Row{Vendor: f.Vendor, Type: f.Type, ShortName: f.ShortName}
		i, ok := index[r.ID()]
		if !ok {
			r.Compatibility = f.Compatibility
			index[r.ID()] = len(rows)
			rows = append(rows, r)
			i = len(rows) - 1
		} else {
			rows[i].Compatibility = rows[i].Compatibility.Union(f.Compatibility)
		}
		rows[i].Names = lo.Uniq(append(rows[i].Names, f.Name))
		rows[i].Keys = lo.Uniq(append(rows[i].Keys, f.Key))
		rows[i].DefaultSelected = rows[i].DefaultSelected || f.DefaultSelected
	}
	return rows
}

// Priority lists facet values that sort ahead of the rest, matched
// case-insensitively.
type Priority struct {
	Types   []string
	Vendors []string
}

// DefaultPriority returns the built-in ordering.
func DefaultPriority() Priority {
	return Priority{
		Types:   []string{"pla", "abs", "pet", "tpu", "pc"},
		Vendors: []string{"bambu lab", "bambulab", "bbl", "kexcelled", "polymaker", "esun", "generic"},
	}
}

// TypeValues returns the type facet for rows compatible with active.
func TypeValues(rows []Row, active PairSet, pri Priority) []Value {
	return scanValues(rows, active, pri.Types, func(r Row) string { return r.Type })
}

// VendorValues returns the vendor facet for rows compatible with active.
func VendorValues(rows []Row, active PairSet, pri Priority) []Value {
	return scanValues(rows, active, pri.Vendors, func(r Row) string { return r.Vendor })
}

func scanValues(rows []Row, active PairSet, priority []string, field func(Row) string) []Value {
	var values []Value
	seen := map[string]bool{}
	for _, r := range rows {
		if !Compatible(r.Compatibility, active) {
			continue
		}
		label := field(r)
		key := strings.ToLower(label)
		if seen[key] {
			continue
		}
		seen[key] = true
		values = append(values, Value{Key: key, Label: label, Checked: true})
	}
	return orderByPriority(values, priority)
}

func orderByPriority(values []Value, priority []string) []Value {
	rank := map[string]int{}
	for i, p := range priority {
		p = strings.ToLower(p)
		if _, ok := rank[p]; !ok {
			rank[p] = i
		}
	}
	ranked := func(v Value, _ int) bool {
		_, ok := rank[v.Key]
		return ok
	}
	head := lo.Filter(values, ranked)
	sort.SliceStable(head, func(i, j int) bool { return rank[head[i].Key] < rank[head[j].Key] })
	return append(head, lo.Reject(values, ranked)...)
}

// MachineValues returns the machine facet: one value per selected nozzle of
// every machine that has a nozzle selection, checked from st.
func MachineValues(machines []profile.Machine, st selection.Store) []Value {
	var values []Value
	for _, m := range machines {
		for _, n := range m.NozzleSelected {
			p := profile.Pair{Model: m.Model, Nozzle: n}
			on, _ := st.Nozzle(m.Vendor, m.Model, n)
			values = append(values, Value{
				Key:     p.Key(),
				Label:   m.Model + " " + n + " mm",
				Checked: on,
				Vendor:  m.Vendor,
				Pair:    p,
			})
		}
	}
	return values
}
