package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ruminaider/slicer-guide/internal/facet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleItems() []ChecklistItem {
	return []ChecklistItem{
		{Display: "All", Kind: ItemAll, State: facet.StateSome},
		{Key: "pla", Display: "PLA", State: facet.StateAll},
		{Key: "abs", Display: "ABS", State: facet.StateNone},
		{Key: "tpu", Display: "TPU", State: facet.StateNone},
	}
}

func TestChecklist_ToggleEmitsMsg(t *testing.T) {
	c := NewChecklist(ListTypes, "none")
	c.SetItems(sampleItems())
	c, _ = c.Update(key(tea.KeyDown))

	_, cmd := c.Update(key(tea.KeySpace))
	require.NotNil(t, cmd)
	msg, ok := cmd().(ToggleMsg)
	require.True(t, ok)
	assert.Equal(t, ListTypes, msg.List)
	assert.Equal(t, "pla", msg.Item.Key)
	assert.False(t, msg.On, "checked row toggles off")

	c, _ = c.Update(key(tea.KeyDown))
	_, cmd = c.Update(keyRunes("x"))
	assert.True(t, cmd().(ToggleMsg).On)
}

func TestChecklist_PartialAllTogglesOn(t *testing.T) {
	c := NewChecklist(ListTypes, "none")
	c.SetItems(sampleItems())
	_, cmd := c.Update(key(tea.KeySpace))
	msg := cmd().(ToggleMsg)
	assert.Equal(t, ItemAll, msg.Item.Kind)
	assert.True(t, msg.On)
}

func TestChecklist_SelectAllNone(t *testing.T) {
	c := NewChecklist(ListRows, "none")
	c.SetItems(sampleItems())

	_, cmd := c.Update(keyRunes("a"))
	assert.Equal(t, ToggleAllMsg{List: ListRows, On: true}, cmd())
	_, cmd = c.Update(keyRunes("n"))
	assert.Equal(t, ToggleAllMsg{List: ListRows, On: false}, cmd())
}

func TestChecklist_SetItemsKeepsCursorKey(t *testing.T) {
	c := NewChecklist(ListRows, "none")
	c.SetItems(sampleItems())
	c, _ = c.Update(key(tea.KeyDown))
	c, _ = c.Update(key(tea.KeyDown))

	items := sampleItems()
	items = append(items[:1], items[2:]...) // drop pla
	c.SetItems(items)
	it, ok := c.Cursor()
	require.True(t, ok)
	assert.Equal(t, "abs", it.Key)

	c.SetItems(items[:1])
	it, _ = c.Cursor()
	assert.Equal(t, ItemAll, it.Kind, "cursor clamps when its row is gone")
}

func TestChecklist_CursorBounds(t *testing.T) {
	c := NewChecklist(ListRows, "none")
	c.SetItems(sampleItems())
	c, _ = c.Update(key(tea.KeyUp))
	it, _ := c.Cursor()
	assert.Equal(t, ItemAll, it.Kind)

	for i := 0; i < 10; i++ {
		c, _ = c.Update(key(tea.KeyDown))
	}
	it, _ = c.Cursor()
	assert.Equal(t, "tpu", it.Key)
}

func TestChecklist_EmptyToggleIsNoop(t *testing.T) {
	c := NewChecklist(ListRows, "no filament matches")
	_, cmd := c.Update(key(tea.KeySpace))
	assert.Nil(t, cmd)
	assert.Contains(t, c.View(), "no filament matches")
}

func TestChecklist_View(t *testing.T) {
	c := NewChecklist(ListTypes, "none")
	c.SetFocused(true)
	c.SetItems(sampleItems())
	view := c.View()
	assert.Contains(t, view, "[-] All")
	assert.Contains(t, view, "[x] PLA")
	assert.Contains(t, view, "[ ] ABS")
	assert.True(t, strings.HasPrefix(view, "> "))
}

func TestChecklist_Scroll(t *testing.T) {
	c := NewChecklist(ListRows, "none")
	c.SetHeight(3)
	var items []ChecklistItem
	for _, k := range []string{"a", "b", "c", "d", "e", "f"} {
		items = append(items, ChecklistItem{Key: k, Display: k})
	}
	c.SetItems(items)
	assert.Contains(t, c.View(), "↓ more")

	for i := 0; i < 5; i++ {
		c, _ = c.Update(key(tea.KeyDown))
	}
	view := c.View()
	assert.Contains(t, view, "↑ more")
	assert.NotContains(t, view, "↓ more")
}

func TestItems_TriState(t *testing.T) {
	assert.Equal(t, facet.StateAll, triState(0, 0))
	assert.Equal(t, facet.StateAll, triState(3, 3))
	assert.Equal(t, facet.StateSome, triState(1, 3))
	assert.Equal(t, facet.StateNone, triState(0, 3))
}

func TestItems_NozzleKey(t *testing.T) {
	v, m, n, ok := splitNozzleKey(nozzleKey("BBL", "X1C", "0.4"))
	require.True(t, ok)
	assert.Equal(t, []string{"BBL", "X1C", "0.4"}, []string{v, m, n})

	_, _, _, ok = splitNozzleKey("garbage")
	assert.False(t, ok)
}

func TestOverlay_Notice(t *testing.T) {
	o := NewNoticeOverlay("Nothing selected", "Select at least one filament.")
	assert.Contains(t, o.View(), "Select at least one filament.")

	o, cmd := o.Update(key(tea.KeyEnter))
	assert.False(t, o.Active())
	assert.Equal(t, OverlayCloseMsg{Confirmed: true}, cmd())
	assert.Empty(t, o.View())
}

func TestOverlay_Confirm(t *testing.T) {
	o := NewConfirmOverlay("Leave setup?", "")
	_, cmd := o.Update(key(tea.KeyEnter))
	assert.Equal(t, OverlayCloseMsg{Confirmed: false}, cmd())

	o = NewConfirmOverlay("Leave setup?", "")
	o, _ = o.Update(key(tea.KeyRight))
	_, cmd = o.Update(key(tea.KeyEnter))
	assert.Equal(t, OverlayCloseMsg{Confirmed: true}, cmd())

	o = NewConfirmOverlay("Leave setup?", "")
	_, cmd = o.Update(key(tea.KeyEsc))
	assert.Equal(t, OverlayCloseMsg{Confirmed: false}, cmd())
}

func TestComposite(t *testing.T) {
	bg := "AAAAAA\nBBBBBB\nCCCCCC\nDDDDDD"
	result := Composite(bg, "XX\nXX", 6, 4)
	lines := strings.Split(result, "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "AAAAAA", lines[0])
	assert.Equal(t, "BBXXBB", lines[1])
	assert.Equal(t, "CCXXCC", lines[2])
	assert.Equal(t, "DDDDDD", lines[3])
}

func TestComposite_Empty(t *testing.T) {
	assert.Equal(t, "hello", Composite("hello", "", 5, 1))
}

func TestComposite_ShortBackground(t *testing.T) {
	result := Composite("A", "XX", 6, 3)
	lines := strings.Split(result, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "  XX", lines[1])
}

func TestStatusBar(t *testing.T) {
	var s StatusBar
	s.SetWidth(80)
	s.ShowFilaments(3, 10, 2)
	assert.Contains(t, s.View(), "3/10 shown · 2 selected")
	s.ShowModels(1, 4)
	assert.Contains(t, s.View(), "1/4 nozzles selected")
}
