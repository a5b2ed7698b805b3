package tasktui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/amonks/ordoflow/internal/ui"
)

var borderASCII = lipgloss.Border{
	Top:         "-",
	Bottom:      "-",
	Left:        "|",
	Right:       "|",
	TopLeft:     "+",
	TopRight:    "+",
	BottomLeft:  "+",
	BottomRight: "+",
}

// styles are derived from the active palette.
type styles struct {
	palette ui.Palette

	tabBar      lipgloss.Style
	tabActive   lipgloss.Style
	tabInactive lipgloss.Style

	pane       lipgloss.Style
	paneActive lipgloss.Style

	text          lipgloss.Style
	heading       lipgloss.Style
	label         lipgloss.Style
	muted         lipgloss.Style
	done          lipgloss.Style
	selected      lipgloss.Style
	statusError   lipgloss.Style
	statusSuccess lipgloss.Style
	modal         lipgloss.Style
	button        lipgloss.Style
	buttonActive  lipgloss.Style
}

func newStyles(palette ui.Palette) styles {
	pane := lipgloss.NewStyle().Border(borderASCII).BorderForeground(palette.Border).Padding(0, 1)
	return styles{
		palette: palette,

		tabBar:      lipgloss.NewStyle().Foreground(palette.Text),
		tabActive:   lipgloss.NewStyle().Foreground(palette.Tint).Bold(true).Padding(0, 1),
		tabInactive: lipgloss.NewStyle().Foreground(palette.TextSecondary).Padding(0, 1),

		pane:       pane,
		paneActive: pane.BorderForeground(palette.Tint),

		text:          lipgloss.NewStyle().Foreground(palette.Text),
		heading:       lipgloss.NewStyle().Foreground(palette.Text).Bold(true),
		label:         lipgloss.NewStyle().Bold(true),
		muted:         lipgloss.NewStyle().Foreground(palette.TextSecondary),
		done:          lipgloss.NewStyle().Foreground(palette.TextSecondary).Strikethrough(true),
		selected:      lipgloss.NewStyle().Foreground(palette.Tint).Bold(true),
		statusError:   lipgloss.NewStyle().Foreground(palette.P1),
		statusSuccess: lipgloss.NewStyle().Foreground(palette.P3),
		modal:         lipgloss.NewStyle().Border(borderASCII).BorderForeground(palette.Border).Padding(1, 2),
		button:        lipgloss.NewStyle().Foreground(palette.TextSecondary),
		buttonActive:  lipgloss.NewStyle().Foreground(palette.Tint).Bold(true),
	}
}

func (s styles) priority(p lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(p)
}
