// Package result turns a selection store into the payloads sent back to the
// host when a page is confirmed.
package result

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/ruminaider/slicer-guide/internal/facet"
	"github.com/ruminaider/slicer-guide/internal/selection"
	"github.com/samber/lo"
)

// ErrSelectionRequired means nothing is checked; the page shows a notice and
// sends no command.
var ErrSelectionRequired = errors.New("at least one item must be selected")

// MachineRecord is the save_userguide_models entry for one model.
type MachineRecord struct {
	Vendor         string `json:"vendor"`
	Model          string `json:"model"`
	NozzleDiameter string `json:"nozzle_diameter"`
}

// FilamentRecord is the serialized entry for one filament row.
type FilamentRecord struct {
	Model string `json:"model"`
}

// Machines is the serialized machine selection keyed by model name, in
// discovery order.
type Machines struct {
	order   []string
	records map[string]MachineRecord
}

// Filaments is the serialized filament selection keyed by short name, in
// discovery order.
type Filaments struct {
	order   []string
	records map[string]FilamentRecord
}

// SerializeMachines collects every checked nozzle per model. Nozzles are
// joined with ";" in the order they were first stored, without repeats.
func SerializeMachines(st selection.Store) (Machines, error) {
	nozzles := map[string][]string{}
	out := Machines{records: map[string]MachineRecord{}}
	for _, n := range st.Nozzles() {
		if !n.Checked {
			continue
		}
		if _, ok := out.records[n.Model]; !ok {
			out.order = append(out.order, n.Model)
			out.records[n.Model] = MachineRecord{Vendor: n.Vendor, Model: n.Model}
		}
		nozzles[n.Model] = lo.Uniq(append(nozzles[n.Model], n.Nozzle))
	}
	if len(out.order) == 0 {
		return Machines{}, ErrSelectionRequired
	}
	for model, list := range nozzles {
		rec := out.records[model]
		rec.NozzleDiameter = strings.Join(list, ";")
		out.records[model] = rec
	}
	return out, nil
}

// SerializeFilaments collects every checked filament row. Once a short name
// has a record, later entries for it are no-ops.
func SerializeFilaments(st selection.Store) (Filaments, error) {
	out := Filaments{records: map[string]FilamentRecord{}}
	for _, f := range st.Filaments() {
		if !f.Checked {
			continue
		}
		if _, ok := out.records[f.Key]; ok {
			continue
		}
		out.order = append(out.order, f.Key)
		out.records[f.Key] = FilamentRecord{Model: f.Key}
	}
	if len(out.order) == 0 {
		return Filaments{}, ErrSelectionRequired
	}
	return out, nil
}

// Len returns the number of models.
func (m Machines) Len() int { return len(m.order) }

// Records returns the records in discovery order.
func (m Machines) Records() []MachineRecord {
	out := make([]MachineRecord, 0, len(m.order))
	for _, k := range m.order {
		out = append(out, m.records[k])
	}
	return out
}

// Get returns the record for a model.
func (m Machines) Get(model string) (MachineRecord, bool) {
	r, ok := m.records[model]
	return r, ok
}

// MarshalJSON writes an object keyed by model name in discovery order.
func (m Machines) MarshalJSON() ([]byte, error) {
	return marshalOrdered(m.order, func(k string) any { return m.records[k] })
}

// Len returns the number of rows.
func (f Filaments) Len() int { return len(f.order) }

// Names returns the short names in discovery order.
func (f Filaments) Names() []string {
	return append([]string(nil), f.order...)
}

// MarshalJSON writes an object keyed by short name in discovery order.
func (f Filaments) MarshalJSON() ([]byte, error) {
	return marshalOrdered(f.order, func(k string) any { return f.records[k] })
}

// Keys expands the serialized rows into the raw preset keys the host stores,
// in row order then key order, without repeats.
func (f Filaments) Keys(rows []facet.Row) []string {
	var keys []string
	for _, name := range f.order {
		for _, r := range rows {
			if r.Key() == name {
				keys = append(keys, r.Keys...)
			}
		}
	}
	return lo.Uniq(keys)
}

func marshalOrdered(order []string, value func(string) any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range order {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(value(k))
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
