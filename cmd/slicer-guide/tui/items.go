package tui

import (
	"strings"

	"github.com/ruminaider/slicer-guide/internal/facet"
	"github.com/ruminaider/slicer-guide/internal/guide"
	"github.com/ruminaider/slicer-guide/internal/selection"
)

// triState derives an "all" box from child counts. No children reads as all.
func triState(checked, total int) facet.TriState {
	switch {
	case checked == total:
		return facet.StateAll
	case checked == 0:
		return facet.StateNone
	default:
		return facet.StateSome
	}
}

func leafState(on bool) facet.TriState {
	if on {
		return facet.StateAll
	}
	return facet.StateNone
}

func nozzleKey(vendor, model, nozzle string) string {
	return vendor + "\x00" + model + "\x00" + nozzle
}

func splitNozzleKey(key string) (vendor, model, nozzle string, ok bool) {
	parts := strings.Split(key, "\x00")
	if len(parts) != 3 {
		return "", "", "", false
	}
	return parts[0], parts[1], parts[2], true
}

// modelItems lays out the models page: the page-wide box, then each vendor
// box followed by one box per (model, nozzle).
func modelItems(mp *guide.ModelsPage, st selection.Store) (items []ChecklistItem, checked, total int) {
	var body []ChecklistItem
	for _, sec := range mp.Sections(st) {
		groupAt := len(body)
		body = append(body, ChecklistItem{Key: sec.Vendor, Display: sec.Vendor, Kind: ItemGroup})
		on, n := 0, 0
		for _, m := range sec.Machines {
			for _, box := range m.Nozzles {
				body = append(body, ChecklistItem{
					Key:     nozzleKey(m.Vendor, m.Model, box.Nozzle),
					Display: m.Model + "  " + box.Nozzle + " mm",
					State:   leafState(box.Checked),
				})
				n++
				if box.Checked {
					on++
				}
			}
		}
		body[groupAt].State = triState(on, n)
		checked += on
		total += n
	}
	if total == 0 {
		return nil, 0, 0
	}
	all := ChecklistItem{Display: "All printers", Kind: ItemAll, State: triState(checked, total)}
	return append([]ChecklistItem{all}, body...), checked, total
}

// groupItems lays out one facet group with its "all" box first.
func groupItems(g facet.Group) []ChecklistItem {
	values := g.Values()
	if len(values) == 0 {
		return nil
	}
	items := []ChecklistItem{{Display: "All", Kind: ItemAll, State: g.State()}}
	for _, v := range values {
		items = append(items, ChecklistItem{Key: v.Key, Display: v.Label, State: leafState(v.Checked)})
	}
	return items
}

// rowItems lays out the visible filament rows. The "all" box covers the
// visible rows only.
func rowItems(fp *guide.FilamentsPage, st guide.FilamentsState) (items []ChecklistItem, visible int) {
	rows := fp.Visible(st)
	if len(rows) == 0 {
		return nil, 0
	}
	on := 0
	for _, r := range rows {
		checked := fp.Checked(st, r)
		if checked {
			on++
		}
		items = append(items, ChecklistItem{
			Key:     r.ID(),
			Display: r.ShortName,
			Tag:     r.Vendor + " · " + r.Type,
			State:   leafState(checked),
		})
	}
	all := ChecklistItem{Display: "All shown", Kind: ItemAll, State: triState(on, len(rows))}
	return append([]ChecklistItem{all}, items...), len(rows)
}
