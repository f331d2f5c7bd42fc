package manage

import (
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/parserinator/parserinator/internal/bank"
	"github.com/parserinator/parserinator/internal/keybind"
	"github.com/parserinator/parserinator/internal/screen"
	"github.com/parserinator/parserinator/internal/settings"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// run feeds msg to the screen and delivers any resulting message back.
func run(s *ManageScreen, msg tea.Msg) {
	_, cmd := s.Update(msg)
	for cmd != nil {
		next := cmd()
		if next == nil {
			return
		}
		_, cmd = s.Update(next)
	}
}

func newTestScreen(t *testing.T) (*ManageScreen, *bank.Store) {
	t.Helper()
	b := bank.NewStore(filepath.Join(t.TempDir(), bank.DefaultFileName))
	for _, q := range []bank.Question{
		{Text: "Largest planet?", Answer: "Jupiter", Subjects: []string{"Science"}, Difficulty: bank.DifficultyDistrict, Year: 2024},
		{Text: "Capital of Peru?", Answer: "Lima", Subjects: []string{"Social Studies"}, Difficulty: bank.DifficultyState, Year: 2023},
	} {
		if err := b.Add(q); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	st := settings.Default()
	st.Filter = settings.Filter{Year: 2023, Difficulty: "State"}
	return New(&screen.Env{Bank: b, Keys: keybind.Defaults(), Settings: &st}), b
}

func TestManage_DeleteConfirmed(t *testing.T) {
	s, b := newTestScreen(t)
	run(s, tea.KeyPressMsg{Code: tea.KeyDown})
	run(s, keyPress('d'))
	if !s.CapturesEscape() {
		t.Fatal("dialog should be open")
	}
	if !strings.Contains(s.View(100, 30), "Capital of Peru?") {
		t.Error("dialog should name the question")
	}

	run(s, keyPress('y'))
	if s.CapturesEscape() {
		t.Error("dialog should close")
	}
	if b.Len() != 1 || b.Questions()[0].Text != "Largest planet?" {
		t.Errorf("bank = %+v", b.Questions())
	}
	if s.selected != 0 {
		t.Errorf("selected = %d after deleting the last row", s.selected)
	}
	if !strings.Contains(s.View(100, 30), "Deleted 1 question(s).") {
		t.Error("expected deletion flash")
	}
}

func TestManage_DeleteCancelled(t *testing.T) {
	s, b := newTestScreen(t)

	run(s, keyPress('d'))
	run(s, tea.KeyPressMsg{Code: tea.KeyEscape})
	if s.CapturesEscape() || b.Len() != 2 {
		t.Errorf("esc should cancel, len = %d", b.Len())
	}

	// Enter on the default (No) button also cancels.
	run(s, keyPress('d'))
	run(s, tea.KeyPressMsg{Code: tea.KeyEnter})
	if b.Len() != 2 {
		t.Errorf("enter on No deleted a question")
	}
}

func TestManage_FilterToggle(t *testing.T) {
	s, _ := newTestScreen(t)
	run(s, keyPress('f'))
	if len(s.questions) != 1 || s.questions[0].Answer != "Lima" {
		t.Errorf("filtered = %+v", s.questions)
	}
	run(s, keyPress('f'))
	if len(s.questions) != 2 {
		t.Errorf("unfiltered len = %d", len(s.questions))
	}
}

func TestManage_EmptyBank(t *testing.T) {
	b := bank.NewStore(filepath.Join(t.TempDir(), bank.DefaultFileName))
	st := settings.Default()
	s := New(&screen.Env{Bank: b, Settings: &st})
	run(s, keyPress('d'))
	if s.CapturesEscape() {
		t.Error("no dialog on an empty bank")
	}
	if !strings.Contains(s.View(80, 20), "No questions.") {
		t.Error("expected empty view")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdef", 4); got != "abc…" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("abc", 4); got != "abc" {
		t.Errorf("truncate = %q", got)
	}
}
