package tui

import "github.com/charmbracelet/lipgloss"

// Palette entries are ANSI 256 color codes.
const (
	colorAccent   = lipgloss.Color("63")
	colorValid    = lipgloss.Color("78")
	colorRejected = lipgloss.Color("203")
)

// Theme styles the calculator card and the history screen.
type Theme struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Help     lipgloss.Style
	Card     lipgloss.Style

	// Result renders a computed perimeter or area of a valid triangle.
	Result lipgloss.Style
	// Degenerate renders the NaN area of sides that form no triangle.
	Degenerate lipgloss.Style
	// Warn marks rejected or unparsable input in the preview.
	Warn lipgloss.Style
}

func DefaultTheme() Theme {
	faint := lipgloss.NewStyle().Faint(true)
	return Theme{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
		Subtitle: faint,
		Help:     faint,
		Card: lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent),
		Result:     lipgloss.NewStyle().Bold(true).Foreground(colorValid),
		Degenerate: lipgloss.NewStyle().Italic(true).Foreground(colorRejected),
		Warn:       lipgloss.NewStyle().Foreground(colorRejected),
	}
}

// areaStyle picks how an area value is shown for c.
func (th Theme) areaStyle(valid bool) lipgloss.Style {
	if valid {
		return th.Result
	}
	return th.Degenerate
}
