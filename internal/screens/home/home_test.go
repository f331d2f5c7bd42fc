package home

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/parserinator/parserinator/internal/bank"
	"github.com/parserinator/parserinator/internal/keybind"
	"github.com/parserinator/parserinator/internal/router"
	"github.com/parserinator/parserinator/internal/screen"
	"github.com/parserinator/parserinator/internal/screens/info"
	"github.com/parserinator/parserinator/internal/screens/quiz"
	"github.com/parserinator/parserinator/internal/settings"
	"github.com/parserinator/parserinator/internal/store"
)

type mockEventRepo struct {
	store.EventRepo
	sessions []store.SessionSummaryRecord
}

func (m *mockEventRepo) QuerySessionSummaries(_ context.Context, _ store.QueryOpts) ([]store.SessionSummaryRecord, error) {
	return m.sessions, nil
}

func testEnv(t *testing.T, repo store.EventRepo) *screen.Env {
	t.Helper()
	st := settings.Default()
	return &screen.Env{
		Bank:      bank.NewStore(filepath.Join(t.TempDir(), bank.DefaultFileName)),
		Keys:      keybind.Defaults(),
		Settings:  &st,
		EventRepo: repo,
		Notices:   []string{"questions.json is corrupt"},
	}
}

func pushed(t *testing.T, cmd tea.Cmd) screen.Screen {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	return msg.Screen
}

func TestHome_PlayPushesQuiz(t *testing.T) {
	h := New(testEnv(t, nil))
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if _, ok := pushed(t, cmd).(*quiz.QuizScreen); !ok {
		t.Error("expected quiz screen")
	}
}

func TestHome_HistoryWithoutRepo(t *testing.T) {
	h := New(testEnv(t, nil))
	for range 4 {
		h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if _, ok := pushed(t, cmd).(*info.InfoScreen); !ok {
		t.Error("expected info screen when history is unavailable")
	}
}

func TestHome_ViewShowsNoticesAndLastSession(t *testing.T) {
	repo := &mockEventRepo{sessions: []store.SessionSummaryRecord{{
		Timestamp:        time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC),
		SessionEventData: store.SessionEventData{Score: 7, Attempts: 9},
	}}}
	h := New(testEnv(t, repo))
	h.Update(h.Init()())

	view := h.View(120, 40)
	for _, want := range []string{"questions.json is corrupt", "0 QUESTIONS", "7/9"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestKeyHelp(t *testing.T) {
	keys := keybind.Defaults()
	keys[keybind.MarkCorrect] = "ctrl+n"
	help := keyHelp(keys)
	if !strings.Contains(help, "submit_answer") || !strings.Contains(help, "Conflicting keys: ctrl+n") {
		t.Errorf("help = %q", help)
	}
}
