package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/parserinator/parserinator/internal/ui/theme"
)

// Selector picks one of a fixed set of options with left/right.
type Selector struct {
	Label    string
	Options  []string
	Selected int
	Focused  bool
}

// NewSelector creates a selector with current preselected when present.
func NewSelector(label string, options []string, current string) Selector {
	s := Selector{Label: label, Options: options}
	for i, o := range options {
		if o == current {
			s.Selected = i
			break
		}
	}
	return s
}

// Update cycles the selection. Only focused selectors react.
func (s Selector) Update(msg tea.Msg) (Selector, tea.Cmd) {
	if !s.Focused || len(s.Options) == 0 {
		return s, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "left", "h":
		s.Selected = (s.Selected - 1 + len(s.Options)) % len(s.Options)
	case "right", "l", "space":
		s.Selected = (s.Selected + 1) % len(s.Options)
	}
	return s, nil
}

// Value returns the selected option, or "" when there are none.
func (s Selector) Value() string {
	if s.Selected < 0 || s.Selected >= len(s.Options) {
		return ""
	}
	return s.Options[s.Selected]
}

// View renders the selector on one line.
func (s Selector) View() string {
	labelStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	valueStyle := lipgloss.NewStyle().Foreground(theme.Text)
	if s.Focused {
		labelStyle = labelStyle.Foreground(theme.Primary).Bold(true)
		valueStyle = valueStyle.Foreground(theme.Primary).Bold(true)
	}
	return labelStyle.Render(s.Label+": ") + valueStyle.Render("◂ "+s.Value()+" ▸")
}
