package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/parserinator/parserinator/internal/store"
)

// LoggingProvider writes one log line per request and appends it to the
// event store so `parserinator llm` can show it later.
type LoggingProvider struct {
	inner    Provider
	provider string
	repo     store.EventRepo
	logger   *slog.Logger
}

// WithLogging wraps p. A nil repo skips recording; a nil logger uses
// slog.Default.
func WithLogging(p Provider, providerName string, repo store.EventRepo, logger *slog.Logger) Provider {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingProvider{inner: p, provider: providerName, repo: repo, logger: logger}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)

	ev := store.LLMRequestEventData{
		Provider:    l.provider,
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: transcript(req),
	}
	if resp != nil {
		ev.Model = resp.Model
		ev.InputTokens, ev.OutputTokens = resp.Usage.InputTokens, resp.Usage.OutputTokens
		ev.ResponseBody = string(resp.Content)
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
	}

	l.log(ev, err)
	if l.repo != nil {
		if rerr := l.repo.AppendLLMRequest(ctx, ev); rerr != nil {
			l.logger.Warn("failed to record llm request event", "err", rerr)
		}
	}
	return resp, err
}

func (l *LoggingProvider) log(ev store.LLMRequestEventData, err error) {
	attrs := []any{
		"provider", ev.Provider,
		"model", ev.Model,
		"purpose", ev.Purpose,
		"latency_ms", ev.LatencyMs,
		slog.Group("tokens", "in", ev.InputTokens, "out", ev.OutputTokens),
	}
	if c := LookupCost(ev.Model); c != nil && err == nil {
		attrs = append(attrs, "cost_usd", c.Cost(ev.InputTokens, ev.OutputTokens))
	}
	if err != nil {
		l.logger.Warn("llm request failed", append(attrs, "err", err)...)
		return
	}
	l.logger.Info("llm request", attrs...)
}

func (l *LoggingProvider) ModelID() string { return l.inner.ModelID() }

// transcript renders a request as labelled sections for later review.
func transcript(req Request) string {
	var sections []string
	if req.System != "" {
		sections = append(sections, "[system]\n"+req.System)
	}
	for _, m := range req.Messages {
		sections = append(sections, fmt.Sprintf("[%s]\n%s", m.Role, m.Content))
	}
	if req.Schema != nil {
		def, err := json.Marshal(req.Schema.Definition)
		if err == nil {
			sections = append(sections, fmt.Sprintf("[schema: %s]\n%s", req.Schema.Name, def))
		}
	}
	return strings.Join(sections, "\n\n")
}
