package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestMockProvider(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`not json`), Usage: Usage{InputTokens: 3}})
	mock.AddResponse(MockResponse{Err: &ErrRateLimit{}})

	req := Request{Messages: []Message{{Role: RoleUser, Content: "Name a prime."}}}
	resp, err := mock.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if string(resp.Content) != "not json" || resp.StopReason != StopEnd || resp.Model != "mock" {
		t.Errorf("resp = %+v", resp)
	}

	var rl *ErrRateLimit
	if _, err := mock.Generate(context.Background(), req); !errors.As(err, &rl) {
		t.Errorf("second reply should be the scripted error, got %v", err)
	}

	var unavailable *ErrProviderUnavailable
	if _, err := mock.Generate(context.Background(), req); !errors.As(err, &unavailable) {
		t.Errorf("exhausted script should report unavailable, got %v", err)
	}

	if mock.CallCount() != 3 || mock.Calls[0].Messages[0].Content != "Name a prime." {
		t.Errorf("calls = %+v", mock.Calls)
	}
}

func TestFinish(t *testing.T) {
	resp, err := finish(Request{}, json.RawMessage("free text"), Usage{InputTokens: 5, OutputTokens: 6}, "m", StopEnd)
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	if resp.Usage.TotalTokens != 11 {
		t.Errorf("TotalTokens = %d", resp.Usage.TotalTokens)
	}

	// A provider-reported total is kept.
	resp, _ = finish(Request{}, nil, Usage{InputTokens: 5, OutputTokens: 6, TotalTokens: 20}, "m", StopEnd)
	if resp.Usage.TotalTokens != 20 {
		t.Errorf("TotalTokens = %d", resp.Usage.TotalTokens)
	}

	// Without a schema a truncated reply is still returned.
	resp, err = finish(Request{}, json.RawMessage("Jupi"), Usage{}, "m", StopMaxTokens)
	if err != nil || resp.StopReason != StopMaxTokens {
		t.Errorf("resp = %+v, err = %v", resp, err)
	}
}

func TestResolveModel(t *testing.T) {
	tests := []struct {
		name    string
		aliases map[string]string
		want    string
	}{
		{"claude-haiku", anthropicAliases, "claude-haiku-4-5-20251001"},
		{"claude-sonnet", anthropicAliases, "claude-sonnet-4-5-20250929"},
		{"gpt-mini", openaiAliases, "gpt-4o-mini"},
		{"gemini-flash", geminiAliases, "gemini-2.5-flash"},
		{"gemini-pro", geminiAliases, "gemini-2.5-pro"},
		{"claude-opus-4-1-20250805", anthropicAliases, "claude-opus-4-1-20250805"},
	}
	for _, tt := range tests {
		if got := resolveModel(tt.name, tt.aliases); got != tt.want {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestPurposeContext(t *testing.T) {
	if got := PurposeFrom(context.Background()); got != PurposeUnknown {
		t.Errorf("PurposeFrom(empty) = %q", got)
	}
	ctx := WithPurpose(context.Background(), PurposeQuestionDraft)
	if got := PurposeFrom(ctx); got != PurposeQuestionDraft {
		t.Errorf("PurposeFrom = %q", got)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"anthropic with key", Config{Provider: ProviderAnthropic, Anthropic: AnthropicConfig{APIKey: "k"}}, false},
		{"anthropic without key", Config{Provider: ProviderAnthropic}, true},
		{"openrouter without key", Config{Provider: ProviderOpenRouter}, true},
		{"mock needs nothing", Config{Provider: ProviderMock}, false},
		{"unknown provider", Config{Provider: "clippy"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewProvider(t *testing.T) {
	if _, err := NewProvider(context.Background(), Config{Provider: "clippy"}, nil, nil); err == nil {
		t.Error("expected error for unknown provider")
	}

	p, err := NewProvider(context.Background(), Config{Provider: ProviderMock}, nil, nil)
	if err != nil {
		t.Fatalf("NewProvider(mock): %v", err)
	}
	if _, ok := p.(*MockProvider); !ok {
		t.Errorf("mock provider should not be wrapped, got %T", p)
	}

	cfg := DefaultConfig()
	cfg.Anthropic.APIKey = "k"
	p, err = NewProvider(context.Background(), cfg, nil, nil)
	if err != nil {
		t.Fatalf("NewProvider(anthropic): %v", err)
	}
	if _, ok := p.(*timeoutProvider); !ok {
		t.Errorf("outermost wrapper = %T, want timeout", p)
	}
	if p.ModelID() != "claude-haiku-4-5-20251001" {
		t.Errorf("ModelID() = %q", p.ModelID())
	}
}

func TestWithTimeout(t *testing.T) {
	slow := providerFunc(func(ctx context.Context, _ Request) (*Response, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	_, err := WithTimeout(slow, 10*time.Millisecond).Generate(context.Background(), Request{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}

	if WithTimeout(slow, 0) == nil {
		t.Error("zero timeout should return the provider")
	}
}

type providerFunc func(context.Context, Request) (*Response, error)

func (f providerFunc) Generate(ctx context.Context, req Request) (*Response, error) { return f(ctx, req) }
func (f providerFunc) ModelID() string                                              { return "func" }
