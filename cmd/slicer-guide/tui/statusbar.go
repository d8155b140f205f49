package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// StatusBar renders the bottom row with selection counts and keyboard shortcuts.
type StatusBar struct {
	left      string
	shortcuts []string
	width     int
}

// SetWidth sets the available width for rendering.
func (s *StatusBar) SetWidth(w int) {
	s.width = w
}

// ShowModels sets the models page summary.
func (s *StatusBar) ShowModels(checked, total int) {
	s.left = fmt.Sprintf("%d/%d nozzles selected", checked, total)
	s.shortcuts = []string{
		StatusBarKeyStyle.Render("Space") + ": toggle",
		StatusBarKeyStyle.Render("Enter") + ": next",
		StatusBarKeyStyle.Render("Esc") + ": leave",
	}
}

// ShowFilaments sets the filament page summary.
func (s *StatusBar) ShowFilaments(visible, total, checked int) {
	s.left = fmt.Sprintf("%d/%d shown · %d selected", visible, total, checked)
	s.shortcuts = []string{
		StatusBarKeyStyle.Render("Tab") + ": pane",
		StatusBarKeyStyle.Render("/") + ": search",
		StatusBarKeyStyle.Render("b") + ": back",
		StatusBarKeyStyle.Render("Enter") + ": finish",
	}
}

// ShowWaiting sets the summary while no profile is loaded.
func (s *StatusBar) ShowWaiting() {
	s.left = "waiting for profile"
	s.shortcuts = []string{StatusBarKeyStyle.Render("Esc") + ": leave"}
}

// View renders the status bar.
func (s StatusBar) View() string {
	right := strings.Join(s.shortcuts, " · ")
	gap := s.width - 2 - ansi.StringWidth(s.left) - ansi.StringWidth(right)
	if gap < 1 {
		gap = 1
	}
	return StatusBarStyle.Width(s.width).Render(s.left + strings.Repeat(" ", gap) + right)
}
