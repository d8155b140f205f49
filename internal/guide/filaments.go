package guide

import (
	"log/slog"

	"github.com/ruminaider/slicer-guide/internal/bridge"
	"github.com/ruminaider/slicer-guide/internal/defaults"
	"github.com/ruminaider/slicer-guide/internal/facet"
	"github.com/ruminaider/slicer-guide/internal/profile"
	"github.com/ruminaider/slicer-guide/internal/result"
	"github.com/ruminaider/slicer-guide/internal/selection"
)

// Options tunes the filament page.
type Options struct {
	Mode     defaults.Mode
	Priority facet.Priority
	Log      *slog.Logger
}

// FilamentsState is everything the filament page mutates. The machine facet
// lives in Store; the type and vendor facets and the query are filter state
// that is never serialized.
type FilamentsState struct {
	Store   selection.Store
	Types   facet.Group
	Vendors facet.Group
	Query   string
}

// FilamentsPage is the filament selection step. It holds the read-only
// profile and folded rows; all mutable state travels in FilamentsState.
type FilamentsPage struct {
	profile   profile.Profile
	rows      []facet.Row
	opts      Options
	defaulted bool
}

// NewFilamentsPage builds the page and its initial state. Every selected
// nozzle starts checked, every facet value starts checked, and rows the host
// marked selected start checked. If no in-scope row was marked, the default
// selection runs once.
func NewFilamentsPage(p profile.Profile, opts Options) (*FilamentsPage, FilamentsState) {
	if opts.Log == nil {
		opts.Log = slog.Default()
	}
	if opts.Mode == "" {
		opts.Mode = defaults.ModeMaterials
	}
	if opts.Priority.Types == nil && opts.Priority.Vendors == nil {
		opts.Priority = facet.DefaultPriority()
	}

	fp := &FilamentsPage{profile: p, rows: facet.BuildRows(p.Filaments), opts: opts}

	st := selection.New()
	for _, m := range p.Machines {
		for _, n := range m.NozzleSelected {
			st = st.WithNozzle(m.Vendor, m.Model, n, true)
		}
	}
	for _, r := range fp.rows {
		if r.DefaultSelected {
			st = st.WithFilament(r.Key(), true)
		}
	}

	state := fp.reindex(FilamentsState{
		Store:   st,
		Types:   facet.NewGroup(facet.KindType, nil),
		Vendors: facet.NewGroup(facet.KindVendor, nil),
	})

	if defaults.Needed(fp.rows, fp.active(state)) {
		state.Store = defaults.Apply(opts.Mode, fp.rows, p.Machines, state.Store)
		fp.defaulted = true
		opts.Log.Info("applied default filament selection",
			"mode", string(opts.Mode), "selected", state.Store.CheckedFilamentCount())
	}
	return fp, state
}

// Defaulted reports whether the default selection ran.
func (fp *FilamentsPage) Defaulted() bool {
	return fp.defaulted
}

// Rows returns every row of the page, visible or not.
func (fp *FilamentsPage) Rows() []facet.Row {
	return append([]facet.Row(nil), fp.rows...)
}

// Machines returns the machine facet derived from the store.
func (fp *FilamentsPage) Machines(state FilamentsState) facet.Group {
	return facet.NewGroup(facet.KindMachine, facet.MachineValues(fp.profile.Machines, state.Store))
}

// Context returns the filter context for state.
func (fp *FilamentsPage) Context(state FilamentsState) facet.Context {
	return facet.NewContext(fp.Machines(state), state.Types, state.Vendors, state.Query)
}

// Visible returns the rows the filters currently show.
func (fp *FilamentsPage) Visible(state FilamentsState) []facet.Row {
	return facet.VisibleRows(fp.rows, fp.Context(state))
}

// Checked reports whether a row is checked in the store.
func (fp *FilamentsPage) Checked(state FilamentsState, r facet.Row) bool {
	return state.Store.Filament(r.Key())
}

// ToggleMachine sets one machine facet value and rebuilds the type and
// vendor facets for the new active pairs.
func (fp *FilamentsPage) ToggleMachine(state FilamentsState, key string, on bool) FilamentsState {
	for _, v := range fp.Machines(state).Values() {
		if v.Key == key {
			state.Store = state.Store.WithNozzle(v.Vendor, v.Pair.Model, v.Pair.Nozzle, on)
			return fp.reindex(state)
		}
	}
	return state
}

// ToggleAllMachines sets every machine facet value.
func (fp *FilamentsPage) ToggleAllMachines(state FilamentsState, on bool) FilamentsState {
	for _, v := range fp.Machines(state).Values() {
		state.Store = state.Store.WithNozzle(v.Vendor, v.Pair.Model, v.Pair.Nozzle, on)
	}
	return fp.reindex(state)
}

// ToggleType sets one type facet value.
func (fp *FilamentsPage) ToggleType(state FilamentsState, key string, on bool) FilamentsState {
	state.Types = state.Types.Toggle(key, on)
	return state
}

// ToggleAllTypes sets every type facet value.
func (fp *FilamentsPage) ToggleAllTypes(state FilamentsState, on bool) FilamentsState {
	state.Types = state.Types.SetAll(on)
	return state
}

// ToggleVendor sets one vendor facet value.
func (fp *FilamentsPage) ToggleVendor(state FilamentsState, key string, on bool) FilamentsState {
	state.Vendors = state.Vendors.Toggle(key, on)
	return state
}

// ToggleAllVendors sets every vendor facet value.
func (fp *FilamentsPage) ToggleAllVendors(state FilamentsState, on bool) FilamentsState {
	state.Vendors = state.Vendors.SetAll(on)
	return state
}

// SetQuery replaces the text filter.
func (fp *FilamentsPage) SetQuery(state FilamentsState, q string) FilamentsState {
	state.Query = q
	return state
}

// ToggleFilament sets the row with the given ID. Hidden rows cannot be
// toggled.
func (fp *FilamentsPage) ToggleFilament(state FilamentsState, id string, on bool) FilamentsState {
	for _, r := range fp.Visible(state) {
		if r.ID() == id {
			state.Store = state.Store.WithFilament(r.Key(), on)
			return state
		}
	}
	fp.opts.Log.Debug("ignoring toggle for hidden or unknown row", "row", id)
	return state
}

// SetVisible sets every visible row.
func (fp *FilamentsPage) SetVisible(state FilamentsState, on bool) FilamentsState {
	for _, r := range fp.Visible(state) {
		state.Store = state.Store.WithFilament(r.Key(), on)
	}
	return state
}

// Confirm serializes the checked rows, hidden ones included, and sends
// save_userguide_filaments. It returns result.ErrSelectionRequired, and sends
// nothing, when no row is checked.
func (fp *FilamentsPage) Confirm(state FilamentsState, ch *bridge.Channel) error {
	filaments, err := result.SerializeFilaments(state.Store)
	if err != nil {
		fp.opts.Log.Info("filament page confirmed without a selection")
		return err
	}
	ch.Send(bridge.SaveFilaments(filaments.Keys(fp.rows)))
	return nil
}

func (fp *FilamentsPage) active(state FilamentsState) facet.PairSet {
	return facet.ActivePairs(fp.profile.Machines, state.Store)
}

// reindex rebuilds the type and vendor facets from the rows compatible with
// the active pairs, keeping the checked state of values that remain.
func (fp *FilamentsPage) reindex(state FilamentsState) FilamentsState {
	active := fp.active(state)
	state.Types = state.Types.Merge(facet.TypeValues(fp.rows, active, fp.opts.Priority))
	state.Vendors = state.Vendors.Merge(facet.VendorValues(fp.rows, active, fp.opts.Priority))
	return state
}
