// Package addquestion implements the form for writing a new question.
package addquestion

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/parserinator/parserinator/internal/bank"
	"github.com/parserinator/parserinator/internal/screen"
	"github.com/parserinator/parserinator/internal/ui/components"
	"github.com/parserinator/parserinator/internal/ui/layout"
	"github.com/parserinator/parserinator/internal/ui/theme"
)

// Form fields in focus order.
const (
	fieldText = iota
	fieldAnswer
	fieldSubjects
	fieldDifficulty
	fieldYear
	fieldCount
)

var fieldNames = map[string]int{
	"text":       fieldText,
	"answer":     fieldAnswer,
	"subjects":   fieldSubjects,
	"difficulty": fieldDifficulty,
	"year":       fieldYear,
}

// AddQuestionScreen is a form that appends a question to the bank.
type AddQuestionScreen struct {
	env *screen.Env

	text       components.TextInput
	answer     components.TextInput
	year       components.TextInput
	difficulty components.Selector
	subjects   subjectPicker

	focus    int
	errField int
	errMsg   string
	flash    string
}

var _ screen.Screen = (*AddQuestionScreen)(nil)
var _ screen.KeyHintProvider = (*AddQuestionScreen)(nil)

// New creates the form, prefilled from the last used filter.
func New(env *screen.Env) *AddQuestionScreen {
	crit := env.Settings.Criteria()

	difficulties := make([]string, len(bank.Difficulties))
	for i, d := range bank.Difficulties {
		difficulties[i] = string(d)
	}

	s := &AddQuestionScreen{
		env:        env,
		text:       components.NewTextInput("Question text", false, 0),
		answer:     components.NewTextInput("Answer", false, 0),
		year:       components.NewTextInput("Year", true, 4),
		difficulty: components.NewSelector("Difficulty", difficulties, string(crit.Difficulty)),
		subjects:   newSubjectPicker(bank.Subjects, crit.Subjects),
		errField:   -1,
	}
	if crit.Year != 0 {
		s.year.SetValue(strconv.Itoa(crit.Year))
	}
	s.answer.Blur()
	s.year.Blur()
	return s
}

func (s *AddQuestionScreen) Init() tea.Cmd {
	return s.text.Init()
}

func (s *AddQuestionScreen) Title() string {
	return "Add Question"
}

func (s *AddQuestionScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "←→", Description: "Change"},
		{Key: "Space", Description: "Toggle subject"},
		{Key: "Ctrl+S", Description: "Save"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *AddQuestionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, s.updateFocused(msg)
	}

	switch kmsg.String() {
	case "tab", "down":
		return s, s.setFocus((s.focus + 1) % fieldCount)
	case "shift+tab", "up":
		return s, s.setFocus((s.focus - 1 + fieldCount) % fieldCount)
	case "ctrl+s":
		return s, s.save()
	case "enter":
		if s.focus == fieldCount-1 {
			return s, s.save()
		}
		return s, s.setFocus(s.focus + 1)
	}

	s.flash = ""
	return s, s.updateFocused(msg)
}

func (s *AddQuestionScreen) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch s.focus {
	case fieldText:
		s.text, cmd = s.text.Update(msg)
	case fieldAnswer:
		s.answer, cmd = s.answer.Update(msg)
	case fieldSubjects:
		s.subjects = s.subjects.Update(msg)
	case fieldDifficulty:
		s.difficulty, cmd = s.difficulty.Update(msg)
	case fieldYear:
		s.year, cmd = s.year.Update(msg)
	}
	return cmd
}

func (s *AddQuestionScreen) setFocus(field int) tea.Cmd {
	s.focus = field
	s.text.Blur()
	s.answer.Blur()
	s.year.Blur()
	s.subjects.Focused = field == fieldSubjects
	s.difficulty.Focused = field == fieldDifficulty

	switch field {
	case fieldText:
		return s.text.Focus()
	case fieldAnswer:
		return s.answer.Focus()
	case fieldYear:
		return s.year.Focus()
	}
	return nil
}

// question assembles the form values.
func (s *AddQuestionScreen) question() (bank.Question, error) {
	year, err := strconv.Atoi(strings.TrimSpace(s.year.Value()))
	if err != nil {
		return bank.Question{}, &bank.ValidationError{Field: "year", Message: "year must be a number"}
	}
	return bank.Question{
		Text:       s.text.Value(),
		Answer:     s.answer.Value(),
		Subjects:   s.subjects.Values(),
		Difficulty: bank.Difficulty(s.difficulty.Value()),
		Year:       year,
	}, nil
}

func (s *AddQuestionScreen) save() tea.Cmd {
	s.errField, s.errMsg, s.flash = -1, "", ""

	q, err := s.question()
	if err == nil {
		err = s.env.Bank.Add(q)
	}

	var verr *bank.ValidationError
	switch {
	case errors.As(err, &verr):
		s.errField = fieldNames[verr.Field]
		s.errMsg = verr.Message
		return s.setFocus(s.errField)
	case err != nil:
		s.env.Log().Error("failed to add question", "err", err)
		s.errMsg = "Could not save: " + err.Error()
		return nil
	}

	s.env.Log().Info("question added", "difficulty", q.Difficulty, "year", q.Year)
	s.flash = fmt.Sprintf("Saved. %d questions in the bank.", s.env.Bank.Len())
	s.text.Clear()
	s.answer.Clear()
	return s.setFocus(fieldText)
}

func (s *AddQuestionScreen) View(width, height int) string {
	labelStyle := lipgloss.NewStyle().Foreground(theme.TextDim).Width(12)
	focusLabel := labelStyle.Foreground(theme.Primary).Bold(true)
	errStyle := lipgloss.NewStyle().Foreground(theme.Error)

	label := func(field int, name string) string {
		if s.focus == field {
			return focusLabel.Render(name)
		}
		return labelStyle.Render(name)
	}
	fieldErr := func(field int) string {
		if s.errField == field && s.errMsg != "" {
			return "\n" + strings.Repeat(" ", 12) + errStyle.Render("✗ "+s.errMsg)
		}
		return ""
	}

	rows := []string{
		label(fieldText, "Question") + s.text.View() + fieldErr(fieldText),
		label(fieldAnswer, "Answer") + s.answer.View() + fieldErr(fieldAnswer),
		label(fieldSubjects, "Subjects") + s.subjects.View() + fieldErr(fieldSubjects),
		label(fieldDifficulty, "Difficulty") + s.difficulty.View() + fieldErr(fieldDifficulty),
		label(fieldYear, "Year") + s.year.View() + fieldErr(fieldYear),
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(strings.Join(rows, "\n\n"))
	b.WriteString("\n\n")

	switch {
	case s.errField < 0 && s.errMsg != "":
		b.WriteString(errStyle.Render(s.errMsg))
	case s.flash != "":
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Success).Render(s.flash))
	}

	form := lipgloss.NewStyle().Width(min(width-4, 80)).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, form)
}
