package guide

import (
	"log/slog"

	"github.com/ruminaider/slicer-guide/internal/bridge"
	"github.com/ruminaider/slicer-guide/internal/profile"
	"github.com/ruminaider/slicer-guide/internal/result"
	"github.com/ruminaider/slicer-guide/internal/selection"
	"github.com/samber/lo"
)

// NozzleBox is one nozzle checkbox on the models page.
type NozzleBox struct {
	Nozzle  string
	Checked bool
}

// MachineRow is one printer on the models page.
type MachineRow struct {
	Vendor  string
	Model   string
	Cover   string
	Nozzles []NozzleBox
}

// VendorSection groups the printers of one vendor. All is derived from the
// nozzle boxes.
type VendorSection struct {
	Vendor   string
	Machines []MachineRow
	All      bool
}

// ModelsPage is the printer and nozzle selection step.
type ModelsPage struct {
	profile profile.Profile
	log     *slog.Logger
}

// NewModelsPage returns the page for p and its initial store: every offered
// nozzle has an entry, checked when the profile lists it as selected.
func NewModelsPage(p profile.Profile, log *slog.Logger) (*ModelsPage, selection.Store) {
	if log == nil {
		log = slog.Default()
	}
	st := selection.New()
	for _, m := range p.Machines {
		chosen := map[string]bool{}
		for _, n := range m.NozzleSelected {
			chosen[n] = true
		}
		for _, n := range m.NozzleDiameters {
			st = st.WithNozzle(m.Vendor, m.Model, n, chosen[n])
		}
	}
	return &ModelsPage{profile: p, log: log}, st
}

// Sections lists vendors in first-seen order with their printers.
func (mp *ModelsPage) Sections(st selection.Store) []VendorSection {
	var out []VendorSection
	index := map[string]int{}
	for _, m := range mp.profile.Machines {
		i, ok := index[m.Vendor]
		if !ok {
			index[m.Vendor] = len(out)
			out = append(out, VendorSection{Vendor: m.Vendor, All: true})
			i = len(out) - 1
		}
		row := MachineRow{Vendor: m.Vendor, Model: m.Model, Cover: m.CoverImagePath}
		for _, n := range m.NozzleDiameters {
			on, _ := st.Nozzle(m.Vendor, m.Model, n)
			row.Nozzles = append(row.Nozzles, NozzleBox{Nozzle: n, Checked: on})
			if !on {
				out[i].All = false
			}
		}
		out[i].Machines = append(out[i].Machines, row)
	}
	return out
}

// AllChecked reports the page-wide "all" checkbox.
func (mp *ModelsPage) AllChecked(st selection.Store) bool {
	for _, s := range mp.Sections(st) {
		if !s.All {
			return false
		}
	}
	return true
}

// ToggleNozzle sets one nozzle box.
func (mp *ModelsPage) ToggleNozzle(st selection.Store, vendor, model, nozzle string, on bool) selection.Store {
	m, ok := mp.profile.Machine(model)
	if !ok || m.Vendor != vendor || !lo.Contains(m.NozzleDiameters, nozzle) {
		mp.log.Debug("ignoring toggle for unknown nozzle", "vendor", vendor, "model", model, "nozzle", nozzle)
		return st
	}
	return st.WithNozzle(vendor, model, nozzle, on)
}

// ToggleVendor sets every nozzle box of one vendor.
func (mp *ModelsPage) ToggleVendor(st selection.Store, vendor string, on bool) selection.Store {
	for _, m := range mp.profile.Machines {
		if m.Vendor != vendor {
			continue
		}
		for _, n := range m.NozzleDiameters {
			st = st.WithNozzle(m.Vendor, m.Model, n, on)
		}
	}
	return st
}

// ToggleAll sets every nozzle box on the page.
func (mp *ModelsPage) ToggleAll(st selection.Store, on bool) selection.Store {
	for _, m := range mp.profile.Machines {
		for _, n := range m.NozzleDiameters {
			st = st.WithNozzle(m.Vendor, m.Model, n, on)
		}
	}
	return st
}

// Confirm serializes the selection and sends save_userguide_models. It
// returns result.ErrSelectionRequired, and sends nothing, when no nozzle is
// checked.
func (mp *ModelsPage) Confirm(st selection.Store, ch *bridge.Channel) error {
	machines, err := result.SerializeMachines(st)
	if err != nil {
		mp.log.Info("models page confirmed without a selection")
		return err
	}
	ch.Send(bridge.SaveModels(machines))
	return nil
}
