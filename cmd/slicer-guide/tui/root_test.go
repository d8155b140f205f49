package tui

import (
	"encoding/json"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ruminaider/slicer-guide/internal/bridge"
	"github.com/ruminaider/slicer-guide/internal/facet"
	"github.com/ruminaider/slicer-guide/internal/guide"
	"github.com/ruminaider/slicer-guide/internal/host"
	"github.com/ruminaider/slicer-guide/internal/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tuiPayload = `{
  "model": [
    {"model": "X1C", "vendor": "BBL", "nozzle_diameter": "0.4;0.6", "nozzle_selected": "0.4", "materials": "Generic PLA"},
    {"model": "K1", "vendor": "Creality", "nozzle_diameter": "0.4", "nozzle_selected": "", "materials": ""}
  ],
  "filament": {
    "Generic PLA": {"vendor": "Generic", "type": "PLA", "models": "[X1C++0.4][K1++0.4]", "selected": 0},
    "Generic ABS": {"vendor": "Generic", "type": "ABS", "models": "[X1C++0.4]", "selected": 0},
    "PolyTerra PLA @BBL X1C": {"vendor": "Polymaker", "type": "PLA", "models": "[X1C++0.4]", "selected": 0}
  }
}`

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func key(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func newTestModel(t *testing.T) (Model, *host.Host) {
	t.Helper()
	var p profile.Payload
	require.NoError(t, json.Unmarshal([]byte(tuiPayload), &p))
	h := host.New(p, nil)
	w := guide.NewWizard(bridge.NewChannel(h, nil), guide.Options{})

	m := NewModel(w, h)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = updated.(Model)
	m = follow(t, m, m.Init())
	return m, h
}

func press(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

// follow runs cmd and feeds its message back, until no command remains.
func follow(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for i := 0; cmd != nil && i < 10; i++ {
		msg := cmd()
		if _, quit := msg.(tea.QuitMsg); quit {
			return m
		}
		m, cmd = press(t, m, msg)
	}
	return m
}

func rowKeys(m Model) []string {
	var out []string
	for _, it := range m.rows.Items() {
		if it.Kind == ItemLeaf {
			out = append(out, it.Display)
		}
	}
	return out
}

func toFilaments(t *testing.T, m Model) Model {
	t.Helper()
	m, cmd := press(t, m, key(tea.KeyEnter))
	require.NotNil(t, cmd)
	m = follow(t, m, cmd)
	require.Equal(t, guide.StepFilaments, m.wizard.Step())
	return m
}

func TestModel_InitLoadsModels(t *testing.T) {
	m, _ := newTestModel(t)
	items := m.models.Items()
	require.Len(t, items, 6) // all + 2 vendors + 3 nozzles
	assert.Equal(t, ItemAll, items[0].Kind)
	assert.Equal(t, facet.StateSome, items[0].State)
	assert.Equal(t, ItemGroup, items[1].Kind)
	assert.Equal(t, "X1C  0.4 mm", items[2].Display)
	assert.True(t, items[2].Checked())
	assert.Contains(t, m.View(), "Printers and nozzles")
}

func TestModel_ModelsToggle(t *testing.T) {
	m, _ := newTestModel(t)

	// Cursor starts on the "all" row; "a" checks everything.
	m, cmd := press(t, m, keyRunes("a"))
	m = follow(t, m, cmd)
	assert.Equal(t, facet.StateAll, m.models.Items()[0].State)

	// Move to the Creality group row and uncheck it.
	for i := 0; i < 4; i++ {
		m, _ = press(t, m, key(tea.KeyDown))
	}
	it, ok := m.models.Cursor()
	require.True(t, ok)
	require.Equal(t, "Creality", it.Key)
	m, cmd = press(t, m, key(tea.KeySpace))
	m = follow(t, m, cmd)

	assert.Equal(t, facet.StateSome, m.models.Items()[0].State)
	assert.Equal(t, facet.StateNone, m.models.Items()[4].State)
}

func TestModel_ModelsConfirmEmpty(t *testing.T) {
	m, h := newTestModel(t)
	m, cmd := press(t, m, keyRunes("n"))
	m = follow(t, m, cmd)

	m, cmd = press(t, m, key(tea.KeyEnter))
	assert.Nil(t, cmd)
	assert.True(t, m.overlay.Active())
	assert.Equal(t, guide.StepModels, m.wizard.Step())
	assert.Equal(t, "0.4", h.Payload().Model[0].NozzleSelected, "nothing saved")

	m, cmd = press(t, m, key(tea.KeyEnter))
	m = follow(t, m, cmd)
	assert.False(t, m.overlay.Active())
	assert.False(t, m.Quitting)
}

func TestModel_FilamentsPage(t *testing.T) {
	m, _ := newTestModel(t)
	m = toFilaments(t, m)

	assert.ElementsMatch(t, []string{"Generic PLA", "Generic ABS", "PolyTerra PLA"}, rowKeys(m))
	assert.True(t, m.wizard.Filaments.Defaulted())
	assert.Contains(t, m.View(), "Filaments")
}

func TestModel_HiddenRowKeepsCheck(t *testing.T) {
	m, h := newTestModel(t)
	m = toFilaments(t, m)
	fp := m.wizard.Filaments

	var polyID string
	for _, r := range fp.Rows() {
		if r.ShortName == "PolyTerra PLA" {
			polyID = r.ID()
		}
	}
	m, _ = press(t, m, ToggleMsg{List: ListRows, Item: ChecklistItem{Key: polyID}, On: true})
	m, _ = press(t, m, ToggleMsg{List: ListVendors, Item: ChecklistItem{Key: "polymaker"}, On: false})
	assert.NotContains(t, rowKeys(m), "PolyTerra PLA")

	// A toggle on the hidden row is ignored.
	m, _ = press(t, m, ToggleMsg{List: ListRows, Item: ChecklistItem{Key: polyID}, On: false})
	assert.True(t, m.wizard.FilamentsState.Store.Filament("PolyTerra PLA"))

	m, cmd := press(t, m, key(tea.KeyEnter))
	m = follow(t, m, cmd)
	assert.True(t, m.Quitting)
	assert.False(t, m.Cancelled)

	s := h.Summary()
	assert.Equal(t, host.OutcomeFinished, s.Outcome)
	assert.Contains(t, s.Filaments, "PolyTerra PLA @BBL X1C")
}

func TestModel_QueryFilter(t *testing.T) {
	m, _ := newTestModel(t)
	m = toFilaments(t, m)

	m, _ = press(t, m, keyRunes("/"))
	assert.Equal(t, FocusQuery, m.focus)
	for _, r := range "terra" {
		m, _ = press(t, m, keyRunes(string(r)))
	}
	assert.Equal(t, []string{"PolyTerra PLA"}, rowKeys(m))

	m, _ = press(t, m, key(tea.KeyEsc))
	assert.Equal(t, FocusRows, m.focus)
	assert.Equal(t, "terra", m.wizard.FilamentsState.Query)
}

func TestModel_FocusCycle(t *testing.T) {
	m, _ := newTestModel(t)
	m = toFilaments(t, m)

	m, _ = press(t, m, key(tea.KeyTab))
	assert.Equal(t, FocusQuery, m.focus)
	m, _ = press(t, m, key(tea.KeyTab))
	assert.Equal(t, FocusMachines, m.focus)
	m, _ = press(t, m, key(tea.KeyShiftTab))
	assert.Equal(t, FocusQuery, m.focus)
}

func TestModel_FacetAllToggle(t *testing.T) {
	m, _ := newTestModel(t)
	m = toFilaments(t, m)

	m, _ = press(t, m, ToggleAllMsg{List: ListTypes, On: false})
	assert.Empty(t, rowKeys(m))
	assert.Equal(t, facet.StateNone, m.types.Items()[0].State)

	m, _ = press(t, m, ToggleMsg{List: ListTypes, Item: ChecklistItem{Key: "abs"}, On: true})
	assert.Equal(t, []string{"Generic ABS"}, rowKeys(m))
	assert.Equal(t, facet.StateSome, m.types.Items()[0].State)
}

func TestModel_BackReloadsModels(t *testing.T) {
	m, _ := newTestModel(t)
	m = toFilaments(t, m)

	m, cmd := press(t, m, keyRunes("b"))
	m = follow(t, m, cmd)
	assert.Equal(t, guide.StepModels, m.wizard.Step())
	assert.NotEmpty(t, m.models.Items())
}

func TestModel_CreateCustomFilament(t *testing.T) {
	m, _ := newTestModel(t)
	m = toFilaments(t, m)
	before := len(m.wizard.CustomFilaments)

	m, cmd := press(t, m, keyRunes("c"))
	m = follow(t, m, cmd)
	assert.Len(t, m.wizard.CustomFilaments, before+1)
}

func TestModel_LeaveConfirm(t *testing.T) {
	m, h := newTestModel(t)

	m, _ = press(t, m, key(tea.KeyEsc))
	require.True(t, m.overlay.Active())

	// Enter on the default button stays.
	m, cmd := press(t, m, key(tea.KeyEnter))
	m = follow(t, m, cmd)
	assert.False(t, m.Quitting)

	m, _ = press(t, m, key(tea.KeyEsc))
	m, _ = press(t, m, key(tea.KeyTab))
	m, cmd = press(t, m, key(tea.KeyEnter))
	m = follow(t, m, cmd)
	assert.True(t, m.Cancelled)
	assert.Equal(t, host.OutcomeCancelled, h.Summary().Outcome)
}

func TestModel_CtrlCLeaves(t *testing.T) {
	m, h := newTestModel(t)
	m, _ = press(t, m, key(tea.KeyCtrlC))
	assert.True(t, m.Cancelled)
	assert.Equal(t, host.OutcomeCancelled, h.Summary().Outcome)
	assert.Empty(t, m.View())
}
