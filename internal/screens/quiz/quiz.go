// Package quiz is the play screen: it reveals questions, takes answers and
// keeps score.
package quiz

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/parserinator/parserinator/internal/bank"
	"github.com/parserinator/parserinator/internal/filter"
	"github.com/parserinator/parserinator/internal/keybind"
	"github.com/parserinator/parserinator/internal/router"
	"github.com/parserinator/parserinator/internal/screen"
	"github.com/parserinator/parserinator/internal/screens/addquestion"
	"github.com/parserinator/parserinator/internal/screens/manage"
	"github.com/parserinator/parserinator/internal/session"
	"github.com/parserinator/parserinator/internal/store"
	"github.com/parserinator/parserinator/internal/ui/components"
	"github.com/parserinator/parserinator/internal/ui/layout"
	"github.com/parserinator/parserinator/internal/ui/theme"
)

// QuizScreen implements screen.Screen for a quiz run.
type QuizScreen struct {
	env       *screen.Env
	ctrl      *session.Controller
	input     components.TextInput
	sessionID string
	recorded  bool
	bankRev   int
	flash     string
}

var (
	_ screen.Screen          = (*QuizScreen)(nil)
	_ screen.KeyHintProvider = (*QuizScreen)(nil)
	_ screen.StatusProvider  = (*QuizScreen)(nil)
	_ screen.Leaver          = (*QuizScreen)(nil)
	_ screen.Resumer         = (*QuizScreen)(nil)
)

// New creates a quiz over the bank using the saved filter and timing settings.
func New(env *screen.Env, opts ...session.Option) *QuizScreen {
	st := env.Settings
	base := []session.Option{
		session.WithReadingSpeed(st.ReadingInterval()),
		session.WithTimer(st.TimerEnabled, st.TimerSeconds),
		session.WithLogger(env.Log()),
	}
	return &QuizScreen{
		env:       env,
		ctrl:      session.NewController(env.Bank.Questions(), st.Criteria(), append(base, opts...)...),
		input:     components.NewTextInput("Type your answer...", false, 120),
		sessionID: uuid.New().String(),
		bankRev:   env.Bank.Revision(),
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	return tea.Batch(
		s.input.Init(),
		schedule(s.ctrl.Start()),
	)
}

func (s *QuizScreen) Title() string {
	return "Quiz"
}

// Status shows score/attempts in the header.
func (s *QuizScreen) Status() string {
	st := s.ctrl.State()
	return scoreLabel(st.Score, st.Attempts)
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	hints := make([]layout.KeyHint, 0, 6)
	for _, a := range []keybind.Action{keybind.SubmitAnswer, keybind.NextQuestion, keybind.MarkCorrect, keybind.MarkIncorrect} {
		if k := s.env.Keys.Key(a); k != "" {
			hints = append(hints, layout.KeyHint{Key: keyLabel(k), Description: a.Description()})
		}
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case revealTickMsg:
		return s, schedule(s.ctrl.RevealTick(msg.gen))

	case timerTickMsg:
		return s, schedule(s.ctrl.TimerTick(msg.gen))

	case tea.KeyPressMsg:
		if action, ok := s.env.Keys.ActionFor(msg.String()); ok {
			return s, s.dispatch(action)
		}
	}

	if s.ctrl.State().Phase == session.PhaseEmpty {
		return s, nil
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// dispatch runs a bound action against the controller.
func (s *QuizScreen) dispatch(a keybind.Action) tea.Cmd {
	gen := s.ctrl.Gen()
	s.flash = ""

	var cmd tea.Cmd
	switch a {
	case keybind.SubmitAnswer:
		switch s.ctrl.Submit(s.input.Value()) {
		case session.VerdictCorrect:
			s.input.Submit(true)
		case session.VerdictIncorrect:
			s.input.Submit(false)
		}

	case keybind.NextQuestion:
		cmd = schedule(s.ctrl.Next())

	case keybind.MarkCorrect:
		if s.ctrl.Mark(true) {
			s.flash = "Marked correct (+1)"
		}

	case keybind.MarkIncorrect:
		if s.ctrl.Mark(false) {
			s.flash = "Marked incorrect (-1)"
		}

	case keybind.Randomize:
		cmd = schedule(s.ctrl.Randomize())
		if s.ctrl.State().Total > 0 {
			s.flash = "Questions shuffled"
		}

	case keybind.Reset:
		s.record()
		s.sessionID = uuid.New().String()
		s.recorded = false
		cmd = schedule(s.ctrl.Reset())
		s.flash = "Score reset"

	case keybind.CycleYear:
		c := s.ctrl.Criteria()
		c.Year = filter.Cycle(s.env.Settings.YearOptions(), c.Year)
		cmd = s.setCriteria(c)

	case keybind.CycleDifficulty:
		c := s.ctrl.Criteria()
		c.Difficulty = filter.Cycle(bank.Difficulties, c.Difficulty)
		cmd = s.setCriteria(c)

	case keybind.CycleSubject:
		c := s.ctrl.Criteria()
		c.Subjects = filter.NextSubject(c.Subjects)
		cmd = s.setCriteria(c)

	case keybind.ToggleTimer:
		on := !s.ctrl.TimerEnabled()
		s.ctrl.SetTimer(on, s.ctrl.TimerSeconds())
		s.env.Settings.TimerEnabled = on
		s.env.SaveSettings()
		if on {
			s.flash = "Timer on from the next question"
		} else {
			s.flash = "Timer off from the next question"
		}

	case keybind.ToggleTheme:
		s.env.Settings.DarkMode = theme.Toggle()
		s.env.SaveSettings()

	case keybind.AddQuestion:
		return router.Open(addquestion.New(s.env))

	case keybind.ManageQuestions:
		return router.Open(manage.New(s.env))
	}

	if s.ctrl.Gen() != gen {
		s.input.Clear()
	}
	return cmd
}

func (s *QuizScreen) setCriteria(c filter.Criteria) tea.Cmd {
	s.env.Settings.SetCriteria(c)
	s.env.SaveSettings()
	return schedule(s.ctrl.SetCriteria(c))
}

// Resume picks up bank edits made on screens opened from the quiz, keeping
// the score, and restarts the tick chain those screens swallowed.
func (s *QuizScreen) Resume() tea.Cmd {
	if rev := s.env.Bank.Revision(); rev != s.bankRev {
		s.bankRev = rev
		s.input.Clear()
		s.flash = "Question bank updated"
		return schedule(s.ctrl.SetQuestions(s.env.Bank.Questions()))
	}
	return schedule(s.ctrl.Resume())
}

// Leave records the session tally once.
func (s *QuizScreen) Leave() {
	s.record()
}

func (s *QuizScreen) record() {
	if s.recorded || s.env.EventRepo == nil {
		return
	}
	t := s.ctrl.Tally()
	if t.Attempts == 0 && t.Score == 0 {
		return
	}
	s.recorded = true

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	err := s.env.EventRepo.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID:    s.sessionID,
		Difficulty:   string(t.Criteria.Difficulty),
		Year:         t.Criteria.Year,
		Subjects:     strings.Join(t.Criteria.Subjects, ";"),
		Score:        t.Score,
		Attempts:     t.Attempts,
		DurationSecs: int(t.Duration.Seconds()),
	})
	if err != nil {
		s.env.Log().Warn("failed to record session", "session_id", s.sessionID, "err", err)
		return
	}
	s.env.Log().Info("session recorded", "session_id", s.sessionID, "score", t.Score, "attempts", t.Attempts)
}
