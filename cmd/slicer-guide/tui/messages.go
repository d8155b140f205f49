package tui

// ListID identifies a checklist on one of the pages.
type ListID int

const (
	ListModels   ListID = iota // printers and nozzles
	ListMachines               // Printer facet on the filament page
	ListTypes                  // Type facet
	ListVendors                // Vendor facet
	ListRows                   // filament rows
)

// String returns the display title of a list.
func (l ListID) String() string {
	switch l {
	case ListModels:
		return "Printers"
	case ListMachines:
		return "Printer"
	case ListTypes:
		return "Type"
	case ListVendors:
		return "Vendor"
	case ListRows:
		return "Filaments"
	default:
		return "Unknown"
	}
}

// FocusZone identifies which pane of the filament page has keyboard focus.
type FocusZone int

const (
	FocusMachines FocusZone = iota
	FocusTypes
	FocusVendors
	FocusRows
	FocusQuery
)

// focusOrder is the Tab cycle on the filament page.
var focusOrder = []FocusZone{FocusMachines, FocusTypes, FocusVendors, FocusRows, FocusQuery}

// --- Inter-component messages ---

// ToggleMsg is sent when the user flips one checkbox.
type ToggleMsg struct {
	List ListID
	Item ChecklistItem
	On   bool
}

// ToggleAllMsg is sent for the "a" and "n" shortcuts.
type ToggleAllMsg struct {
	List ListID
	On   bool
}

// HostMsg carries messages drained from the host.
type HostMsg struct {
	Messages [][]byte
}

// OverlayCloseMsg is emitted when an overlay is dismissed.
type OverlayCloseMsg struct {
	Confirmed bool
}
