package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/parserinator/parserinator/internal/ui/theme"
)

// Button is a styled button component.
type Button struct {
	Label   string
	Active  bool
	OnPress func() tea.Cmd
}

// NewButton creates a new button.
func NewButton(label string, active bool, onPress func() tea.Cmd) Button {
	return Button{
		Label:   label,
		Active:  active,
		OnPress: onPress,
	}
}

// Update handles key events.
func (b Button) Update(msg tea.Msg) (Button, tea.Cmd) {
	if !b.Active {
		return b, nil
	}

	if kmsg, ok := msg.(tea.KeyMsg); ok {
		if kmsg.String() == "enter" && b.OnPress != nil {
			return b, b.OnPress()
		}
	}

	return b, nil
}

// View renders the button.
func (b Button) View() string {
	label := "  ▸ " + b.Label + " "
	if b.Active {
		return theme.ButtonActive.Render(label)
	}
	return theme.ButtonInactive.Render(label)
}

// Confirm is a yes/no prompt made of two buttons. Left/right moves focus,
// enter presses the focused button, y and n press directly.
type Confirm struct {
	Prompt string
	yes    Button
	no     Button
}

// NewConfirm creates a prompt with "No" focused.
func NewConfirm(prompt string, onYes, onNo func() tea.Cmd) Confirm {
	return Confirm{
		Prompt: prompt,
		yes:    NewButton("Yes", false, onYes),
		no:     NewButton("No", true, onNo),
	}
}

// Update handles key events.
func (c Confirm) Update(msg tea.Msg) (Confirm, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch kmsg.String() {
	case "left", "right", "tab", "h", "l":
		c.yes.Active, c.no.Active = !c.yes.Active, !c.no.Active
		return c, nil
	case "y", "Y":
		return c, press(c.yes)
	case "n", "N", "esc":
		return c, press(c.no)
	}

	var cmd tea.Cmd
	if c.yes.Active {
		c.yes, cmd = c.yes.Update(msg)
	} else {
		c.no, cmd = c.no.Update(msg)
	}
	return c, cmd
}

// YesFocused reports whether "Yes" has focus.
func (c Confirm) YesFocused() bool { return c.yes.Active }

// View renders the prompt above the buttons.
func (c Confirm) View() string {
	buttons := lipgloss.JoinHorizontal(lipgloss.Center, c.yes.View(), "  ", c.no.View())
	return lipgloss.JoinVertical(lipgloss.Center, theme.Body.Render(c.Prompt), "", buttons)
}

func press(b Button) tea.Cmd {
	if b.OnPress == nil {
		return nil
	}
	return b.OnPress()
}
