package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/parserinator/parserinator/internal/ui/theme"
)

const titleFull = `╔═╗╔═╗╦═╗╔═╗╔═╗╦═╗╦╔╗╔╔═╗╔╦╗╔═╗╦═╗
╠═╝╠═╣╠╦╝╚═╗║╣ ╠╦╝║║║║╠═╣ ║ ║ ║╠╦╝
╩  ╩ ╩╩╚═╚═╝╚═╝╩╚═╩╝╚╝╩ ╩ ╩ ╚═╝╩╚═`

const titleCompact = "P · A · R · S · E · R · I · N · A · T · O · R"

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Accent).
		Bold(true)

	title := titleFull
	if compact {
		title = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(title) + "\n" + theme.Subtitle.Render("academic quiz practice"))
}

// renderStatsBar shows the bank size, the questions matching the saved
// filter and the last recorded session score.
func renderStatsBar(total, matching int, filterLabel, last string, cw int, compact bool) string {
	countStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	matchStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s",
			countStyle.Render(fmt.Sprintf("■%d", total)),
			matchStyle.Render(fmt.Sprintf("▶%d", matching)),
		)
	} else {
		stats = fmt.Sprintf("%s  %s\n%s",
			countStyle.Render(fmt.Sprintf("■ %d QUESTIONS", total)),
			matchStyle.Render(fmt.Sprintf("▶ %d MATCH", matching)),
			dimStyle.Render(filterLabel),
		)
		if last != "" {
			stats += "\n" + dimStyle.Render("last session "+last)
		}
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2). // account for border chars
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

const buttonWidth = 24

// sectionWidth is the shared width of every block inside the cabinet.
func sectionWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 60)
}

// cabinet centers content inside a double border filling the screen.
func cabinet(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width-2).
		Height(height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

func menuButton(label string, selected bool) string {
	style := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	if selected {
		return style.Bold(true).
			Foreground(theme.BgDark).
			Background(theme.Accent).
			BorderForeground(theme.Accent).
			Render("▸ " + label)
	}
	return style.Foreground(theme.Text).BorderForeground(theme.Border).Render(label)
}

// renderArcadeMenu stacks one bordered button per menu item.
func renderArcadeMenu(items []string, selected int, cw int) string {
	buttons := make([]string, len(items))
	for i, label := range items {
		buttons[i] = menuButton(label, i == selected)
	}
	return lipgloss.PlaceHorizontal(cw, lipgloss.Center, strings.Join(buttons, "\n"))
}

// renderArcadeMenuCompact renders menu items as simple text lines (no borders)
// for small terminals where bordered buttons would overflow.
func renderArcadeMenuCompact(items []string, selected int, cw int) string {
	var lines []string
	for i, label := range items {
		var line string
		if i == selected {
			line = lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.Accent).
				Bold(true).
				Render(" ▸ " + label + " ")
		} else {
			line = lipgloss.NewStyle().
				Foreground(theme.Text).
				Render("   " + label)
		}
		lines = append(lines, line)
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

// renderNotices renders startup warnings, one per line.
func renderNotices(notices []string, cw int) string {
	lines := make([]string, len(notices))
	for i, n := range notices {
		lines[i] = "⚠ " + n
	}
	return lipgloss.NewStyle().
		Foreground(theme.Error).
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}
