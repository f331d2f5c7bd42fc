// Package keybind maps quiz actions to keys and persists the mapping.
package keybind

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/parserinator/parserinator/internal/persist"
)

// DefaultFileName is the keybind file name inside the data directory.
const DefaultFileName = "keybinds.json"

// Action names a user command that can be bound to a key.
type Action string

const (
	SubmitAnswer    Action = "submit_answer"
	NextQuestion    Action = "next_question"
	MarkCorrect     Action = "mark_correct"
	MarkIncorrect   Action = "mark_incorrect"
	Randomize       Action = "randomize"
	Reset           Action = "reset"
	CycleYear       Action = "cycle_year"
	CycleDifficulty Action = "cycle_difficulty"
	CycleSubject    Action = "cycle_subject"
	ToggleTimer     Action = "toggle_timer"
	ToggleTheme     Action = "toggle_theme"
	AddQuestion     Action = "add_question"
	ManageQuestions Action = "manage_questions"
)

// Actions lists every bindable action in help order.
var Actions = []Action{
	SubmitAnswer, NextQuestion, MarkCorrect, MarkIncorrect,
	Randomize, Reset,
	CycleYear, CycleDifficulty, CycleSubject,
	ToggleTimer, ToggleTheme,
	AddQuestion, ManageQuestions,
}

var descriptions = map[Action]string{
	SubmitAnswer:    "submit",
	NextQuestion:    "next",
	MarkCorrect:     "mark right",
	MarkIncorrect:   "mark wrong",
	Randomize:       "shuffle",
	Reset:           "reset score",
	CycleYear:       "year",
	CycleDifficulty: "level",
	CycleSubject:    "subject",
	ToggleTimer:     "timer",
	ToggleTheme:     "theme",
	AddQuestion:     "add question",
	ManageQuestions: "manage",
}

// Description returns a short label for key hints.
func (a Action) Description() string {
	if d, ok := descriptions[a]; ok {
		return d
	}
	return string(a)
}

// Map binds actions to key strings in Bubble Tea notation ("enter", "ctrl+n").
type Map map[Action]string

// Defaults returns the built-in bindings.
func Defaults() Map {
	return Map{
		SubmitAnswer:    "enter",
		NextQuestion:    "ctrl+n",
		MarkCorrect:     "ctrl+y",
		MarkIncorrect:   "ctrl+x",
		Randomize:       "ctrl+r",
		Reset:           "ctrl+e",
		CycleYear:       "f2",
		CycleDifficulty: "f3",
		CycleSubject:    "f4",
		ToggleTimer:     "f5",
		ToggleTheme:     "f6",
		AddQuestion:     "f7",
		ManageQuestions: "f8",
	}
}

// Key returns the key bound to a.
func (m Map) Key(a Action) string {
	return m[a]
}

// ActionFor returns the action bound to key, if any.
func (m Map) ActionFor(key string) (Action, bool) {
	for _, a := range Actions {
		if k, ok := m[a]; ok && k == key {
			return a, true
		}
	}
	return "", false
}

// Conflicts returns keys bound to more than one action.
func (m Map) Conflicts() []string {
	seen := make(map[string]int)
	for _, k := range m {
		seen[k]++
	}
	var dup []string
	for k, n := range seen {
		if n > 1 {
			dup = append(dup, k)
		}
	}
	slices.Sort(dup)
	return dup
}

// Printable returns keys that would type a character into the answer box.
// The quiz checks bindings first, so such a key can never be typed.
func (m Map) Printable() []string {
	var out []string
	for _, a := range Actions {
		k, ok := m[a]
		if !ok {
			continue
		}
		if k == "space" || (utf8.RuneCountInString(k) == 1 && unicode.IsPrint([]rune(k)[0])) {
			out = append(out, k)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// Load reads the keybind file at path.
//
// A missing file is created with the defaults. A corrupt file yields the
// defaults and a *persist.CorruptDataError. Actions missing from the file
// keep their default key; unknown actions and blank keys are ignored.
func Load(path string) (Map, error) {
	var raw map[string]string
	err := persist.ReadJSON(path, &raw)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		m := Defaults()
		if err := Save(path, m); err != nil {
			return m, err
		}
		return m, nil
	case err != nil:
		return Defaults(), err
	}

	m := Defaults()
	for _, a := range Actions {
		if k := strings.TrimSpace(raw[string(a)]); k != "" {
			m[a] = strings.ToLower(k)
		}
	}
	return m, nil
}

// Save writes m to path as a JSON object.
func Save(path string, m Map) error {
	out := make(map[string]string, len(m))
	for a, k := range m {
		out[string(a)] = k
	}
	if err := persist.WriteJSON(path, out); err != nil {
		return fmt.Errorf("save keybinds: %w", err)
	}
	return nil
}
