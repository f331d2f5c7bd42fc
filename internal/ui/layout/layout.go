// Package layout draws the chrome around the active screen: a title bar on
// top, key hints at the bottom and a fallback when the terminal is too small.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/parserinator/parserinator/internal/ui/theme"
)

// Smallest terminal the quiz renders in.
const (
	MinWidth  = 64
	MinHeight = 20
)

// KeyHint is one "key description" pair in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsTooSmall reports whether the terminal is below the minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the user to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	msg := fmt.Sprintf("Window too small (%d×%d).\nResize to at least %d×%d.", width, height, MinWidth, MinHeight)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, theme.Body.Render(msg))
}

func bar(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)
}

// RenderHeader shows the app name, the screen title centered, and status
// (the running score during a quiz) flush right.
func RenderHeader(title, status string, width int) string {
	inner := max(width-4, 0)
	name := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("Parserinator")
	right := lipgloss.NewStyle().Foreground(theme.Accent).Render(status)
	mid := lipgloss.NewStyle().Foreground(theme.Text).Render(title)

	side := max(lipgloss.Width(name), lipgloss.Width(right))
	midWidth := max(inner-2*side, lipgloss.Width(mid))
	row := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.PlaceHorizontal(side, lipgloss.Left, name),
		lipgloss.PlaceHorizontal(midWidth, lipgloss.Center, mid),
		lipgloss.PlaceHorizontal(side, lipgloss.Right, right),
	)
	return bar(width).Render(row)
}

// RenderFooter lists key hints left to right.
func RenderFooter(hints []KeyHint, width int) string {
	key := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	desc := lipgloss.NewStyle().Foreground(theme.TextDim)

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = key.Render(h.Key) + " " + desc.Render(h.Description)
	}
	return bar(width).Render(" " + strings.Join(parts, "  ·  "))
}

// Frame is the chrome for one render.
type Frame struct {
	Title  string
	Status string
	Hints  []KeyHint
}

// Render stacks header, body and footer into a width×height frame. body is
// called with the space left between the bars.
func (f Frame) Render(width, height int, body func(w, h int) string) string {
	header := RenderHeader(f.Title, f.Status, width)
	footer := RenderFooter(f.Hints, width)
	h := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	content := lipgloss.NewStyle().Width(width).Height(h).MaxHeight(h).Render(body(width, h))
	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}
