package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/amonks/ordoflow/task"
)

// Palette holds the colors of one theme.
type Palette struct {
	Name          string
	Text          lipgloss.Color
	TextSecondary lipgloss.Color
	Background    lipgloss.Color
	Card          lipgloss.Color
	Border        lipgloss.Color
	Tint          lipgloss.Color
	P1            lipgloss.Color
	P2            lipgloss.Color
	P3            lipgloss.Color
	P4            lipgloss.Color
}

// Priority colors are shared by both themes; p4 differs.
const (
	colorTint = lipgloss.Color("#e44332")
	colorP1   = lipgloss.Color("#e44332")
	colorP2   = lipgloss.Color("#ff9800")
	colorP3   = lipgloss.Color("#2196f3")
)

// LightPalette is used on light terminal backgrounds.
var LightPalette = Palette{
	Name:          "light",
	Text:          lipgloss.Color("#11181C"),
	TextSecondary: lipgloss.Color("#687076"),
	Background:    lipgloss.Color("#f2f2f7"),
	Card:          lipgloss.Color("#ffffff"),
	Border:        lipgloss.Color("#dcdcdc"),
	Tint:          colorTint,
	P1:            colorP1,
	P2:            colorP2,
	P3:            colorP3,
	P4:            lipgloss.Color("#8e8e93"),
}

// DarkPalette is used on dark terminal backgrounds.
var DarkPalette = Palette{
	Name:          "dark",
	Text:          lipgloss.Color("#ECEDEE"),
	TextSecondary: lipgloss.Color("#888888"),
	Background:    lipgloss.Color("#181818"),
	Card:          lipgloss.Color("#222222"),
	Border:        lipgloss.Color("#333333"),
	Tint:          colorTint,
	P1:            colorP1,
	P2:            colorP2,
	P3:            colorP3,
	P4:            lipgloss.Color("#bbbbbb"),
}

// hasDarkBackground is replaced in tests.
var hasDarkBackground = lipgloss.HasDarkBackground

// ResolvePalette maps a configured theme (auto, light, dark) to a palette.
// "auto" queries the terminal background.
func ResolvePalette(theme string) Palette {
	switch theme {
	case "light":
		return LightPalette
	case "dark":
		return DarkPalette
	}
	if hasDarkBackground() {
		return DarkPalette
	}
	return LightPalette
}

// PriorityColor returns the palette color of a priority.
func (p Palette) PriorityColor(priority task.Priority) lipgloss.Color {
	switch priority {
	case task.PriorityP1:
		return p.P1
	case task.PriorityP2:
		return p.P2
	case task.PriorityP3:
		return p.P3
	default:
		return p.P4
	}
}

// PriorityBadge renders a priority as "p1" in its color.
func (p Palette) PriorityBadge(priority task.Priority) string {
	return lipgloss.NewStyle().
		Foreground(p.PriorityColor(priority)).
		Bold(priority == task.PriorityP1).
		Render(string(priority))
}

// Muted renders secondary text.
func (p Palette) Muted(value string) string {
	return lipgloss.NewStyle().Foreground(p.TextSecondary).Render(value)
}

// Strike renders completed task text.
func (p Palette) Strike(value string) string {
	return lipgloss.NewStyle().Foreground(p.TextSecondary).Strikethrough(true).Render(value)
}

// UseASCII disables colors for every lipgloss style.
func UseASCII() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// ConfigureColors picks the color profile for stdout: plain ASCII when
// colors are disabled, the detected profile otherwise.
func ConfigureColors() {
	if !ColorEnabled() {
		UseASCII()
		return
	}
	lipgloss.SetColorProfile(termenv.NewOutput(os.Stdout).EnvColorProfile())
}
