package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

// OverlayType identifies the kind of modal overlay.
type OverlayType int

const (
	OverlayNotice  OverlayType = iota // message with a single OK button
	OverlayConfirm                    // Yes/No confirmation
)

// Overlay renders a centered modal box on top of the page.
type Overlay struct {
	overlayType OverlayType
	title       string
	message     string
	cursor      int // Confirm: 0=Cancel, 1=OK
	active      bool
}

// NewNoticeOverlay creates a dismiss-only notice.
func NewNoticeOverlay(title, message string) Overlay {
	return Overlay{overlayType: OverlayNotice, title: title, message: message, cursor: 1, active: true}
}

// NewConfirmOverlay creates a confirmation dialog with Cancel/OK buttons.
// The cursor starts on Cancel.
func NewConfirmOverlay(title, message string) Overlay {
	return Overlay{overlayType: OverlayConfirm, title: title, message: message, active: true}
}

// Active returns whether the overlay is currently shown.
func (o Overlay) Active() bool {
	return o.active
}

// Type returns the overlay kind.
func (o Overlay) Type() OverlayType {
	return o.overlayType
}

// Update handles key messages for the overlay.
func (o Overlay) Update(msg tea.Msg) (Overlay, tea.Cmd) {
	if !o.active {
		return o, nil
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return o, nil
	}
	switch key.String() {
	case "esc":
		o.active = false
		return o, func() tea.Msg { return OverlayCloseMsg{Confirmed: false} }
	case "tab", "left", "right", "h", "l":
		if o.overlayType == OverlayConfirm {
			o.cursor = 1 - o.cursor
		}
	case "enter", " ":
		o.active = false
		confirmed := o.cursor == 1
		return o, func() tea.Msg { return OverlayCloseMsg{Confirmed: confirmed} }
	}
	return o, nil
}

// View renders the overlay box.
func (o Overlay) View() string {
	if !o.active {
		return ""
	}
	var b strings.Builder
	b.WriteString(OverlayTitleStyle.Render(o.title))
	b.WriteString("\n\n")
	b.WriteString(o.message)
	b.WriteString("\n\n")
	if o.overlayType == OverlayNotice {
		b.WriteString(OverlayButtonActiveStyle.Render("OK"))
	} else {
		b.WriteString(o.renderButtons("Cancel", "Leave"))
	}
	return OverlayStyle.Render(b.String())
}

func (o Overlay) renderButtons(cancel, ok string) string {
	if o.cursor == 0 {
		return OverlayButtonActiveStyle.Render(cancel) + "  " + OverlayButtonInactiveStyle.Render(ok)
	}
	return OverlayButtonInactiveStyle.Render(cancel) + "  " + OverlayButtonActiveStyle.Render(ok)
}

// Composite places the overlay box centered on top of the background frame.
func Composite(background, overlay string, totalWidth, totalHeight int) string {
	if overlay == "" {
		return background
	}
	bgLines := strings.Split(background, "\n")
	for len(bgLines) < totalHeight {
		bgLines = append(bgLines, "")
	}

	overlayLines := strings.Split(overlay, "\n")
	overlayWidth := 0
	for _, line := range overlayLines {
		if w := ansi.StringWidth(line); w > overlayWidth {
			overlayWidth = w
		}
	}
	startRow := max(0, (totalHeight-len(overlayLines))/2)
	startCol := max(0, (totalWidth-overlayWidth)/2)

	for i, line := range overlayLines {
		row := startRow + i
		if row >= len(bgLines) {
			break
		}
		bg := bgLines[row]
		bgWidth := ansi.StringWidth(bg)
		left := ansi.Truncate(bg, startCol, "")
		if bgWidth < startCol {
			left += strings.Repeat(" ", startCol-bgWidth)
		}
		right := ""
		if end := startCol + ansi.StringWidth(line); end < bgWidth {
			right = ansi.TruncateLeft(bg, end, "")
		}
		bgLines[row] = left + line + right
	}
	if totalHeight > 0 && len(bgLines) > totalHeight {
		bgLines = bgLines[:totalHeight]
	}
	return strings.Join(bgLines, "\n")
}
