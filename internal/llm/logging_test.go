package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/parserinator/parserinator/internal/store"
)

// recordingRepo captures LLM events and ignores the rest of EventRepo.
type recordingRepo struct {
	store.EventRepo
	events []store.LLMRequestEventData
	err    error
}

func (r *recordingRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.events = append(r.events, data)
	return r.err
}

func TestLogging_RecordsSuccess(t *testing.T) {
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`{"ok":true}`),
		Usage:   Usage{InputTokens: 12, OutputTokens: 7},
	})
	repo := &recordingRepo{}
	var buf bytes.Buffer
	p := WithLogging(mock, ProviderMock, repo, slog.New(slog.NewTextHandler(&buf, nil)))

	ctx := WithPurpose(context.Background(), PurposeQuestionDraft)
	_, err := p.Generate(ctx, Request{
		System:   "sys",
		Messages: []Message{{Role: RoleUser, Content: "hello"}},
		Schema:   &Schema{Name: "s", Definition: map[string]any{"type": "object"}},
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if len(repo.events) != 1 {
		t.Fatalf("recorded %d events, want 1", len(repo.events))
	}
	e := repo.events[0]
	if e.Provider != ProviderMock || e.Purpose != PurposeQuestionDraft || !e.Success {
		t.Errorf("event = %+v", e)
	}
	if e.InputTokens != 12 || e.OutputTokens != 7 || e.ResponseBody != `{"ok":true}` {
		t.Errorf("usage/response = %+v", e)
	}
	for _, want := range []string{"[system]", "[user]\nhello", "[schema: s]"} {
		if !strings.Contains(e.RequestBody, want) {
			t.Errorf("request body missing %q:\n%s", want, e.RequestBody)
		}
	}
	if !strings.Contains(buf.String(), "llm request") {
		t.Errorf("log output = %q", buf.String())
	}
}

func TestLogging_RecordsFailureAndIgnoresRepoErrors(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrRateLimit{Err: errors.New("429")}})
	repo := &recordingRepo{err: errors.New("disk full")}
	var buf bytes.Buffer
	p := WithLogging(mock, ProviderMock, repo, slog.New(slog.NewTextHandler(&buf, nil)))

	_, err := p.Generate(context.Background(), Request{})
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected rate limit error, got %v", err)
	}
	if len(repo.events) != 1 || repo.events[0].Success || repo.events[0].ErrorMessage == "" {
		t.Errorf("events = %+v", repo.events)
	}
	if !strings.Contains(buf.String(), "failed to record llm request event") {
		t.Errorf("repo error should be logged, got %q", buf.String())
	}
}

func TestLogging_NilRepo(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	p := WithLogging(mock, ProviderMock, nil, nil)
	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Errorf("ModelID() = %q", p.ModelID())
	}
}
