// Package tui renders the setup wizard pages in the terminal. The page
// controllers own all selection state; the views here only lay it out and
// turn key presses into controller calls.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ruminaider/slicer-guide/internal/guide"
	"github.com/ruminaider/slicer-guide/internal/result"
)

// Drainer yields the host messages queued since the last call.
type Drainer interface {
	Drain() [][]byte
}

// Model is the root bubbletea model for the wizard.
type Model struct {
	wizard *guide.Wizard
	host   Drainer

	models   Checklist
	machines Checklist
	types    Checklist
	vendors  Checklist
	rows     Checklist
	query    textinput.Model
	focus    FocusZone

	// page is the filament page the query input belongs to.
	page *guide.FilamentsPage

	overlay Overlay
	status  StatusBar
	width   int
	height  int

	Quitting  bool
	Cancelled bool
}

// NewModel returns the root model over w, reading replies from host.
func NewModel(w *guide.Wizard, host Drainer) Model {
	q := textinput.New()
	q.Placeholder = "search filaments"
	q.Prompt = "/ "
	q.CharLimit = 64

	m := Model{
		wizard:   w,
		host:     host,
		models:   NewChecklist(ListModels, "waiting for the printer profile"),
		machines: NewChecklist(ListMachines, "no printer selected"),
		types:    NewChecklist(ListTypes, "none"),
		vendors:  NewChecklist(ListVendors, "none"),
		rows:     NewChecklist(ListRows, "no filament matches"),
		query:    q,
	}
	m.models.SetFocused(true)
	m.setFocus(FocusRows)
	m.refresh()
	return m
}

// Init opens the models page and requests the profile.
func (m Model) Init() tea.Cmd {
	m.wizard.Start()
	return m.drain()
}

func (m Model) drain() tea.Cmd {
	h := m.host
	return func() tea.Msg {
		return HostMsg{Messages: h.Drain()}
	}
}

// Update routes messages to the overlay, the wizard and the focused list.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case HostMsg:
		for _, data := range msg.Messages {
			// Receive logs its own failures; a bad message leaves the page as is.
			_ = m.wizard.Receive(data)
		}
		m.refresh()
		return m, nil

	case OverlayCloseMsg:
		if m.overlay.Type() == OverlayConfirm && msg.Confirmed {
			return m.leave()
		}
		return m, nil

	case ToggleMsg:
		m.applyToggle(msg.List, msg.Item, msg.On)
		m.refresh()
		return m, nil

	case ToggleAllMsg:
		m.applyToggle(msg.List, ChecklistItem{Kind: ItemAll}, msg.On)
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.overlay.Active() {
		var cmd tea.Cmd
		m.overlay, cmd = m.overlay.Update(msg)
		return m, cmd
	}
	if msg.String() == "ctrl+c" {
		return m.leave()
	}

	switch m.wizard.Step() {
	case guide.StepModels:
		return m.handleModelsKey(msg)
	case guide.StepFilaments:
		return m.handleFilamentsKey(msg)
	}
	return m, nil
}

func (m Model) handleModelsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.overlay = NewConfirmOverlay("Leave setup?", "Choices not yet saved will be lost.")
		return m, nil
	case "enter":
		if err := m.wizard.ConfirmModels(); err != nil {
			if errors.Is(err, result.ErrSelectionRequired) {
				m.overlay = NewNoticeOverlay("Nothing selected", "Select at least one printer nozzle.")
			}
			return m, nil
		}
		m.setFocus(FocusRows)
		m.refresh()
		return m, m.drain()
	}
	var cmd tea.Cmd
	m.models, cmd = m.models.Update(msg)
	return m, cmd
}

func (m Model) handleFilamentsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.focus == FocusQuery {
		switch msg.String() {
		case "esc", "enter":
			m.setFocus(FocusRows)
			return m, nil
		case "tab":
			m.cycleFocus(+1)
			return m, nil
		case "shift+tab":
			m.cycleFocus(-1)
			return m, nil
		}
		var cmd tea.Cmd
		m.query, cmd = m.query.Update(msg)
		if m.wizard.Filaments != nil {
			m.wizard.FilamentsState = m.wizard.Filaments.SetQuery(m.wizard.FilamentsState, m.query.Value())
		}
		m.refresh()
		return m, cmd
	}

	switch msg.String() {
	case "esc":
		m.overlay = NewConfirmOverlay("Leave setup?", "Choices not yet saved will be lost.")
		return m, nil
	case "enter":
		if err := m.wizard.ConfirmFilaments(); err != nil {
			if errors.Is(err, result.ErrSelectionRequired) {
				m.overlay = NewNoticeOverlay("Nothing selected", "Select at least one filament.")
			}
			return m, nil
		}
		m.Quitting = true
		return m, tea.Quit
	case "tab":
		m.cycleFocus(+1)
		return m, nil
	case "shift+tab":
		m.cycleFocus(-1)
		return m, nil
	case "/":
		m.setFocus(FocusQuery)
		return m, textinput.Blink
	case "b":
		m.wizard.Back()
		m.refresh()
		return m, m.drain()
	case "c":
		m.wizard.CreateCustomFilament()
		return m, m.drain()
	}

	var cmd tea.Cmd
	switch m.focus {
	case FocusMachines:
		m.machines, cmd = m.machines.Update(msg)
	case FocusTypes:
		m.types, cmd = m.types.Update(msg)
	case FocusVendors:
		m.vendors, cmd = m.vendors.Update(msg)
	case FocusRows:
		m.rows, cmd = m.rows.Update(msg)
	}
	return m, cmd
}

func (m Model) leave() (tea.Model, tea.Cmd) {
	m.wizard.Cancel()
	m.Quitting = true
	m.Cancelled = true
	return m, tea.Quit
}

// applyToggle forwards one checkbox change to the page controller.
func (m *Model) applyToggle(list ListID, it ChecklistItem, on bool) {
	w := m.wizard
	if list == ListModels {
		if w.Models == nil {
			return
		}
		switch it.Kind {
		case ItemAll:
			w.ModelStore = w.Models.ToggleAll(w.ModelStore, on)
		case ItemGroup:
			w.ModelStore = w.Models.ToggleVendor(w.ModelStore, it.Key, on)
		default:
			if vendor, model, nozzle, ok := splitNozzleKey(it.Key); ok {
				w.ModelStore = w.Models.ToggleNozzle(w.ModelStore, vendor, model, nozzle, on)
			}
		}
		return
	}

	fp, st := w.Filaments, w.FilamentsState
	if fp == nil {
		return
	}
	all := it.Kind == ItemAll
	switch {
	case list == ListMachines && all:
		st = fp.ToggleAllMachines(st, on)
	case list == ListMachines:
		st = fp.ToggleMachine(st, it.Key, on)
	case list == ListTypes && all:
		st = fp.ToggleAllTypes(st, on)
	case list == ListTypes:
		st = fp.ToggleType(st, it.Key, on)
	case list == ListVendors && all:
		st = fp.ToggleAllVendors(st, on)
	case list == ListVendors:
		st = fp.ToggleVendor(st, it.Key, on)
	case list == ListRows && all:
		st = fp.SetVisible(st, on)
	case list == ListRows:
		st = fp.ToggleFilament(st, it.Key, on)
	}
	w.FilamentsState = st
}

// refresh rebuilds every list from the wizard state.
func (m *Model) refresh() {
	w := m.wizard
	switch w.Step() {
	case guide.StepModels:
		if w.Models == nil {
			m.models.SetItems(nil)
			m.status.ShowWaiting()
			return
		}
		items, checked, total := modelItems(w.Models, w.ModelStore)
		m.models.SetItems(items)
		m.status.ShowModels(checked, total)

	case guide.StepFilaments:
		fp, st := w.Filaments, w.FilamentsState
		if fp != m.page {
			m.page = fp
			m.query.SetValue("")
		}
		if fp == nil {
			for _, l := range []*Checklist{&m.machines, &m.types, &m.vendors, &m.rows} {
				l.SetItems(nil)
			}
			m.status.ShowWaiting()
			return
		}
		m.machines.SetItems(groupItems(fp.Machines(st)))
		m.types.SetItems(groupItems(st.Types))
		m.vendors.SetItems(groupItems(st.Vendors))
		items, visible := rowItems(fp, st)
		m.rows.SetItems(items)
		m.status.ShowFilaments(visible, len(fp.Rows()), st.Store.CheckedFilamentCount())
	}
}

func (m *Model) setFocus(z FocusZone) {
	m.focus = z
	m.machines.SetFocused(z == FocusMachines)
	m.types.SetFocused(z == FocusTypes)
	m.vendors.SetFocused(z == FocusVendors)
	m.rows.SetFocused(z == FocusRows)
	if z == FocusQuery {
		m.query.Focus()
	} else {
		m.query.Blur()
	}
}

func (m *Model) cycleFocus(dir int) {
	i := 0
	for j, z := range focusOrder {
		if z == m.focus {
			i = j
		}
	}
	i = (i + dir + len(focusOrder)) % len(focusOrder)
	m.setFocus(focusOrder[i])
}

// layout distributes the terminal size over the panes.
func (m *Model) layout() {
	m.status.SetWidth(m.width)
	bodyHeight := m.height - 3 // title, gap, status
	m.models.SetHeight(max(1, bodyHeight))
	m.models.SetWidth(m.width)

	facetHeight := max(1, bodyHeight/3-3) // border and title per pane
	for _, l := range []*Checklist{&m.machines, &m.types, &m.vendors} {
		l.SetHeight(facetHeight)
		l.SetWidth(FacetPaneWidth - 2)
	}
	rowsWidth := max(20, m.width-FacetPaneWidth-2)
	m.rows.SetHeight(max(1, bodyHeight-6)) // border, title, query, custom line
	m.rows.SetWidth(rowsWidth)
	m.query.Width = rowsWidth - 4
}

// View renders the current page, the status bar and any overlay.
func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	title := TitleStyle.Render("Printer setup")
	var body string
	switch m.wizard.Step() {
	case guide.StepModels:
		title += StepStyle.Render("Step 1 of 2 · Printers and nozzles")
		body = m.models.View()
	case guide.StepFilaments:
		title += StepStyle.Render("Step 2 of 2 · Filaments")
		body = m.filamentsView()
	}

	frame := lipgloss.JoinVertical(lipgloss.Left, title, "", body)
	if lines := strings.Count(frame, "\n") + 1; lines < m.height-1 {
		frame += strings.Repeat("\n", m.height-1-lines)
	}
	frame += "\n" + m.status.View()

	if m.overlay.Active() {
		return Composite(frame, m.overlay.View(), m.width, m.height)
	}
	return frame
}

func (m Model) filamentsView() string {
	left := lipgloss.JoinVertical(lipgloss.Left,
		pane(ListMachines.String(), m.machines.View(), m.focus == FocusMachines, FacetPaneWidth),
		pane(ListTypes.String(), m.types.View(), m.focus == FocusTypes, FacetPaneWidth),
		pane(ListVendors.String(), m.vendors.View(), m.focus == FocusVendors, FacetPaneWidth),
	)
	custom := dimStyle.Render(fmt.Sprintf("%d custom filaments · c: create", len(m.wizard.CustomFilaments)))
	right := pane(ListRows.String(),
		m.query.View()+"\n"+m.rows.View()+"\n"+custom,
		m.focus == FocusRows || m.focus == FocusQuery,
		max(20, m.width-FacetPaneWidth-2))
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func pane(title, content string, focused bool, width int) string {
	style := BlurredPaneStyle
	if focused {
		style = FocusedPaneStyle
	}
	return style.Width(width - 2).Render(HeaderStyle.Render(title) + "\n" + content)
}
