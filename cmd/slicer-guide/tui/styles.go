package tui

import (
	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"
)

// FacetPaneWidth is the fixed width of the facet column on the filament page.
const FacetPaneWidth = 28

// Catppuccin Mocha palette.
var flavor = catppuccin.Mocha

var (
	colorBase     = lipgloss.Color(flavor.Base().Hex)
	colorMantle   = lipgloss.Color(flavor.Mantle().Hex)
	colorSurface0 = lipgloss.Color(flavor.Surface0().Hex)
	colorSurface1 = lipgloss.Color(flavor.Surface1().Hex)
	colorText     = lipgloss.Color(flavor.Text().Hex)
	colorSubtext0 = lipgloss.Color(flavor.Subtext0().Hex)
	colorBlue     = lipgloss.Color(flavor.Blue().Hex)
	colorGreen    = lipgloss.Color(flavor.Green().Hex)
	colorYellow   = lipgloss.Color(flavor.Yellow().Hex)
	colorPeach    = lipgloss.Color(flavor.Peach().Hex)
	colorMauve    = lipgloss.Color(flavor.Mauve().Hex)
	colorOverlay0 = lipgloss.Color(flavor.Overlay0().Hex)
)

// Page title bar.
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(colorBase).
			Background(colorBlue).
			Padding(0, 1).
			Bold(true)

	StepStyle = lipgloss.NewStyle().
			Foreground(colorSubtext0).
			Padding(0, 1)
)

// Checklist styles.
var (
	// HeaderStyle is used for list titles and vendor group rows.
	HeaderStyle = lipgloss.NewStyle().
			Foreground(colorMauve).
			Bold(true)

	// CheckedStyle is used for checked boxes.
	CheckedStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	// PartialStyle is used for "all" boxes with some children checked.
	PartialStyle = lipgloss.NewStyle().
			Foreground(colorPeach)

	// UncheckedStyle is used for unchecked boxes.
	UncheckedStyle = lipgloss.NewStyle().
			Foreground(colorText)

	// TagStyle is used for the dim vendor/type suffix on filament rows.
	TagStyle = lipgloss.NewStyle().
			Foreground(colorOverlay0).
			Italic(true)

	dimStyle = lipgloss.NewStyle().Foreground(colorOverlay0)
)

// Pane borders on the filament page.
var (
	FocusedPaneStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorBlue)

	BlurredPaneStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorSurface1)
)

// Status bar styles.
var (
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(colorSubtext0).
			Background(colorSurface0).
			Padding(0, 1)

	StatusBarKeyStyle = lipgloss.NewStyle().
				Foreground(colorYellow).
				Background(colorSurface0).
				Bold(true)
)

// Overlay styles.
var (
	OverlayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBlue).
			Background(colorMantle).
			Foreground(colorText).
			Padding(1, 2)

	OverlayTitleStyle = lipgloss.NewStyle().
				Foreground(colorBlue).
				Bold(true)

	OverlayButtonActiveStyle = lipgloss.NewStyle().
					Foreground(colorBase).
					Background(colorBlue).
					Padding(0, 2)

	OverlayButtonInactiveStyle = lipgloss.NewStyle().
					Foreground(colorText).
					Background(colorSurface1).
					Padding(0, 2)
)
