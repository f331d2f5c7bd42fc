package addquestion

import (
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/parserinator/parserinator/internal/ui/theme"
)

// subjectPicker is a row of checkboxes, one per subject.
type subjectPicker struct {
	options []string
	checked []bool
	cursor  int
	Focused bool
}

func newSubjectPicker(options, preselected []string) subjectPicker {
	p := subjectPicker{options: options, checked: make([]bool, len(options))}
	for i, o := range options {
		p.checked[i] = slices.Contains(preselected, o)
	}
	return p
}

func (p subjectPicker) Update(msg tea.Msg) subjectPicker {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || !p.Focused || len(p.options) == 0 {
		return p
	}

	switch kmsg.String() {
	case "left", "h":
		p.cursor = (p.cursor - 1 + len(p.options)) % len(p.options)
	case "right", "l":
		p.cursor = (p.cursor + 1) % len(p.options)
	case "space", "x":
		p.checked = slices.Clone(p.checked)
		p.checked[p.cursor] = !p.checked[p.cursor]
	}
	return p
}

// Values returns the checked subjects in option order.
func (p subjectPicker) Values() []string {
	var out []string
	for i, o := range p.options {
		if p.checked[i] {
			out = append(out, o)
		}
	}
	return out
}

func (p subjectPicker) View() string {
	parts := make([]string, len(p.options))
	for i, o := range p.options {
		box := "[ ]"
		if p.checked[i] {
			box = "[x]"
		}
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if p.checked[i] {
			style = style.Foreground(theme.Success)
		}
		if p.Focused && i == p.cursor {
			style = style.Foreground(theme.Primary).Bold(true).Underline(true)
		}
		parts[i] = style.Render(box + " " + o)
	}
	return strings.Join(parts, "  ")
}
