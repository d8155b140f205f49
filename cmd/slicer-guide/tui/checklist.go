package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ruminaider/slicer-guide/internal/facet"
)

// ItemKind distinguishes leaf checkboxes from the "all" boxes above them.
type ItemKind int

const (
	ItemLeaf  ItemKind = iota
	ItemGroup          // per-vendor "all" on the models page
	ItemAll            // list-wide "all"
)

// ChecklistItem is one row of a Checklist. State is StateAll or StateNone
// for leaves; group and all rows show the derived tri-state.
type ChecklistItem struct {
	Key     string
	Display string
	Tag     string
	Kind    ItemKind
	State   facet.TriState
}

// Checked reports whether the box is fully checked.
func (it ChecklistItem) Checked() bool {
	return it.State == facet.StateAll
}

// Checklist is a scrolling multi-select list. It never changes check state
// itself: space emits a ToggleMsg and the owner rebuilds the items.
type Checklist struct {
	id      ListID
	items   []ChecklistItem
	cursor  int
	offset  int
	height  int
	width   int
	focused bool
	empty   string
}

// NewChecklist creates an empty checklist.
func NewChecklist(id ListID, empty string) Checklist {
	return Checklist{id: id, height: 10, empty: empty}
}

// ID returns the list identity.
func (c Checklist) ID() ListID {
	return c.id
}

// Items returns the current rows.
func (c Checklist) Items() []ChecklistItem {
	return c.items
}

// Cursor returns the highlighted row, if any.
func (c Checklist) Cursor() (ChecklistItem, bool) {
	if c.cursor < 0 || c.cursor >= len(c.items) {
		return ChecklistItem{}, false
	}
	return c.items[c.cursor], true
}

// SetItems replaces the rows. The cursor stays on the same key when that row
// survives, otherwise it is clamped.
func (c *Checklist) SetItems(items []ChecklistItem) {
	prev, had := c.Cursor()
	c.items = items
	if had {
		for i, it := range items {
			if it.Key == prev.Key && it.Kind == prev.Kind {
				c.cursor = i
				c.clampScroll()
				return
			}
		}
	}
	if c.cursor >= len(items) {
		c.cursor = len(items) - 1
	}
	if c.cursor < 0 {
		c.cursor = 0
	}
	c.clampScroll()
}

// SetHeight sets the viewport height in rows.
func (c *Checklist) SetHeight(h int) {
	c.height = h
	c.clampScroll()
}

// SetWidth sets the available width.
func (c *Checklist) SetWidth(w int) {
	c.width = w
}

// SetFocused sets whether this list has keyboard focus.
func (c *Checklist) SetFocused(f bool) {
	c.focused = f
}

// Update handles navigation and emits toggle messages.
func (c Checklist) Update(msg tea.Msg) (Checklist, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}
	switch key.String() {
	case "up", "k":
		c.moveCursor(-1)
	case "down", "j":
		c.moveCursor(+1)
	case "pgup":
		c.moveCursor(-c.height)
	case "pgdown":
		c.moveCursor(c.height)
	case " ", "x":
		it, ok := c.Cursor()
		if !ok {
			return c, nil
		}
		id := c.id
		return c, func() tea.Msg {
			return ToggleMsg{List: id, Item: it, On: !it.Checked()}
		}
	case "a", "n":
		id, on := c.id, key.String() == "a"
		return c, func() tea.Msg {
			return ToggleAllMsg{List: id, On: on}
		}
	}
	return c, nil
}

// View renders the list with scroll hints.
func (c Checklist) View() string {
	if len(c.items) == 0 {
		return dimStyle.Render("  " + c.empty)
	}

	visible := c.height
	hasAbove := c.offset > 0
	hasBelow := c.offset+c.height < len(c.items)
	if hasAbove {
		visible--
	}
	if hasBelow {
		visible--
	}
	if visible < 1 {
		visible = 1
	}
	end := c.offset + visible
	if end > len(c.items) {
		end = len(c.items)
	}

	var b strings.Builder
	if hasAbove {
		b.WriteString(dimStyle.Render("  ↑ more") + "\n")
	}
	for i := c.offset; i < end; i++ {
		b.WriteString(c.renderItem(i) + "\n")
	}
	if end < len(c.items) {
		b.WriteString(dimStyle.Render("  ↓ more") + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (c Checklist) renderItem(i int) string {
	it := c.items[i]
	cursor := "  "
	if c.focused && i == c.cursor {
		cursor = "> "
	}

	box, style := "[ ]", UncheckedStyle
	switch it.State {
	case facet.StateAll:
		box, style = "[x]", CheckedStyle
	case facet.StateSome:
		box, style = "[-]", PartialStyle
	}
	if !c.focused {
		style = dimStyle
	}
	box = style.Render(box)

	display := it.Display
	switch {
	case it.Kind != ItemLeaf:
		display = HeaderStyle.Render(display)
	case c.focused && i == c.cursor:
		display = lipgloss.NewStyle().Bold(true).Foreground(colorText).Render(display)
	}

	indent := ""
	if it.Kind == ItemLeaf && c.hasGroups() {
		indent = "  "
	}
	tag := ""
	if it.Tag != "" {
		tag = "  " + TagStyle.Render(it.Tag)
	}
	return cursor + indent + box + " " + display + tag
}

func (c Checklist) hasGroups() bool {
	for _, it := range c.items {
		if it.Kind == ItemGroup {
			return true
		}
	}
	return false
}

func (c *Checklist) moveCursor(delta int) {
	if len(c.items) == 0 {
		return
	}
	c.cursor += delta
	if c.cursor < 0 {
		c.cursor = 0
	}
	if c.cursor >= len(c.items) {
		c.cursor = len(c.items) - 1
	}
	c.clampScroll()
}

// clampScroll keeps the cursor inside the viewport.
func (c *Checklist) clampScroll() {
	if c.height <= 0 {
		return
	}
	effective := c.height
	if len(c.items) > c.height {
		effective -= 2
	}
	if effective < 1 {
		effective = 1
	}
	if c.cursor < c.offset {
		c.offset = c.cursor
	}
	if c.cursor >= c.offset+effective {
		c.offset = c.cursor - effective + 1
	}
	maxOffset := len(c.items) - effective
	if maxOffset < 0 {
		maxOffset = 0
	}
	if c.offset > maxOffset {
		c.offset = maxOffset
	}
}
