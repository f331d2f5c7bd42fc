package components

import (
	"unicode"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/parserinator/parserinator/internal/ui/theme"
)

// TextInput is a bubbles text input that can be limited to digits and can
// show a ✓ or ✗ after the value once an answer is judged.
type TextInput struct {
	textinput.Model
	numeric bool
	mark    string
}

// NewTextInput returns a focused input. limit caps the length; zero means
// unlimited.
func NewTextInput(placeholder string, numeric bool, limit int) TextInput {
	m := textinput.New()
	m.Placeholder = placeholder
	m.CharLimit = limit
	m.Focus()
	return TextInput{Model: m, numeric: numeric}
}

// Init focuses the input.
func (t *TextInput) Init() tea.Cmd {
	return t.Focus()
}

// Update drops non-digit characters from numeric inputs before handing the
// message to the bubbles model.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if k, ok := msg.(tea.KeyPressMsg); ok && t.numeric && k.Text != "" {
		for _, r := range k.Text {
			if !unicode.IsDigit(r) {
				return t, nil
			}
		}
	}
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

func (t TextInput) View() string {
	if t.mark == "" {
		return t.Model.View()
	}
	return t.Model.View() + " " + t.mark
}

// Submit shows the verdict mark for the current value.
func (t *TextInput) Submit(correct bool) {
	if correct {
		t.mark = theme.Correct.Render("✓")
	} else {
		t.mark = theme.Incorrect.Render("✗")
	}
}

// Clear empties the input and removes the mark.
func (t *TextInput) Clear() {
	t.Reset()
	t.mark = ""
}
