// Package selection is the sparse record of what the user has checked.
//
// A Store is a value: every With* method returns a new Store and leaves the
// receiver untouched, so page handlers take a Store and hand back the next
// one. Entries are kept for rows that filtering currently hides; nothing but
// an explicit With* call changes them.
package selection

// Nozzle is one machine facet checkbox.
type Nozzle struct {
	Vendor  string
	Model   string
	Nozzle  string
	Checked bool
}

// Filament is one filament row checkbox, keyed by short name.
type Filament struct {
	Key     string
	Checked bool
}

type nozzleRef struct {
	vendor, model, nozzle string
}

// Store maps vendor → model → nozzle → checked for machines and
// short name → checked for filaments. Keys remember the order in which they
// were first written.
type Store struct {
	machines      map[string]map[string]map[string]bool
	machineOrder  []nozzleRef
	filaments     map[string]bool
	filamentOrder []string
}

// New returns an empty Store.
func New() Store {
	return Store{
		machines:  map[string]map[string]map[string]bool{},
		filaments: map[string]bool{},
	}
}

// Nozzle returns the checked state of a machine nozzle and whether the store
// holds an entry for it.
func (s Store) Nozzle(vendor, model, nozzle string) (checked, ok bool) {
	checked, ok = s.machines[vendor][model][nozzle]
	return checked, ok
}

// WithNozzle returns a copy of s with the nozzle entry set.
func (s Store) WithNozzle(vendor, model, nozzle string, on bool) Store {
	out := s.clone()
	if out.machines[vendor] == nil {
		out.machines[vendor] = map[string]map[string]bool{}
	}
	if out.machines[vendor][model] == nil {
		out.machines[vendor][model] = map[string]bool{}
	}
	if _, ok := out.machines[vendor][model][nozzle]; !ok {
		out.machineOrder = append(out.machineOrder, nozzleRef{vendor, model, nozzle})
	}
	out.machines[vendor][model][nozzle] = on
	return out
}

// Filament returns the checked state of a filament row.
func (s Store) Filament(key string) bool {
	return s.filaments[key]
}

// HasFilament reports whether the store holds an entry for key.
func (s Store) HasFilament(key string) bool {
	_, ok := s.filaments[key]
	return ok
}

// WithFilament returns a copy of s with the filament entry set.
func (s Store) WithFilament(key string, on bool) Store {
	out := s.clone()
	if _, ok := out.filaments[key]; !ok {
		out.filamentOrder = append(out.filamentOrder, key)
	}
	out.filaments[key] = on
	return out
}

// Nozzles lists every machine entry in first-written order.
func (s Store) Nozzles() []Nozzle {
	out := make([]Nozzle, 0, len(s.machineOrder))
	for _, r := range s.machineOrder {
		out = append(out, Nozzle{
			Vendor:  r.vendor,
			Model:   r.model,
			Nozzle:  r.nozzle,
			Checked: s.machines[r.vendor][r.model][r.nozzle],
		})
	}
	return out
}

// Filaments lists every filament entry in first-written order.
func (s Store) Filaments() []Filament {
	out := make([]Filament, 0, len(s.filamentOrder))
	for _, k := range s.filamentOrder {
		out = append(out, Filament{Key: k, Checked: s.filaments[k]})
	}
	return out
}

// CheckedFilamentCount returns how many filament entries are checked.
func (s Store) CheckedFilamentCount() int {
	n := 0
	for _, on := range s.filaments {
		if on {
			n++
		}
	}
	return n
}

// CheckedModels returns the models that have at least one checked nozzle, in
// first-written order.
func (s Store) CheckedModels() []string {
	var out []string
	seen := map[string]bool{}
	for _, r := range s.machineOrder {
		if seen[r.model] || !s.machines[r.vendor][r.model][r.nozzle] {
			continue
		}
		seen[r.model] = true
		out = append(out, r.model)
	}
	return out
}

func (s Store) clone() Store {
	out := Store{
		machines:      make(map[string]map[string]map[string]bool, len(s.machines)),
		machineOrder:  append([]nozzleRef(nil), s.machineOrder...),
		filaments:     make(map[string]bool, len(s.filaments)),
		filamentOrder: append([]string(nil), s.filamentOrder...),
	}
	for v, models := range s.machines {
		mm := make(map[string]map[string]bool, len(models))
		for m, nozzles := range models {
			nn := make(map[string]bool, len(nozzles))
			for n, on := range nozzles {
				nn[n] = on
			}
			mm[m] = nn
		}
		out.machines[v] = mm
	}
	for k, on := range s.filaments {
		out.filaments[k] = on
	}
	return out
}
