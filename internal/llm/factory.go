package llm

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/parserinator/parserinator/internal/store"
)

// NewProvider builds the provider selected by cfg and wraps it so each
// call is bounded by cfg.Timeout, retried per cfg.Retry, and every attempt
// is logged and recorded. A nil eventRepo skips recording.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, logger *slog.Logger) (Provider, error) {
	var (
		base Provider
		err  error
	)
	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderMock:
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// caller → timeout → retry → logging → base
	logged := WithLogging(base, cfg.Provider, eventRepo, logger)
	return WithTimeout(WithRetry(logged, cfg.Retry), cfg.Timeout), nil
}

type timeoutProvider struct {
	next    Provider
	timeout time.Duration
}

// WithTimeout bounds each Generate call, retries included. A zero timeout
// returns p unchanged.
func WithTimeout(p Provider, d time.Duration) Provider {
	if d <= 0 {
		return p
	}
	return &timeoutProvider{next: p, timeout: d}
}

func (t *timeoutProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.next.Generate(ctx, req)
}

func (t *timeoutProvider) ModelID() string {
	return t.next.ModelID()
}
