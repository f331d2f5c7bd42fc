package components

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/parserinator/parserinator/internal/ui/theme"
)

// Bar is a horizontal meter such as the countdown during a question.
type Bar struct {
	Label string
	// Frac is the filled share, clamped to [0, 1].
	Frac float64
	// Suffix is printed after the bar, e.g. "7s".
	Suffix string
	// Fill defaults to theme.Secondary.
	Fill color.Color
}

// View draws the bar so label, meter and suffix fit in width columns.
func (b Bar) View(width int) string {
	var label, suffix string
	if b.Label != "" {
		label = theme.Body.Render(b.Label) + "  "
	}
	if b.Suffix != "" {
		suffix = "  " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(b.Suffix)
	}

	size := max(width-lipgloss.Width(label)-lipgloss.Width(suffix), 4)
	filled := int(float64(size) * min(max(b.Frac, 0), 1))

	fill := b.Fill
	if fill == nil {
		fill = theme.Secondary
	}
	meter := lipgloss.NewStyle().Background(fill).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", size-filled))
	return label + meter + suffix
}
