package draft

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/parserinator/parserinator/internal/bank"
	"github.com/parserinator/parserinator/internal/llm"
)

// LLMDrafter implements Drafter using an LLM provider.
type LLMDrafter struct {
	provider llm.Provider
	config   Config
	logger   *slog.Logger
}

// New creates a new LLMDrafter with the given provider and config.
func New(provider llm.Provider, cfg Config, logger *slog.Logger) *LLMDrafter {
	if logger == nil {
		logger = slog.Default()
	}
	return &LLMDrafter{provider: provider, config: cfg, logger: logger}
}

// batchOutput is the raw LLM response before validation.
type batchOutput struct {
	Questions []struct {
		Text    string `json:"text"`
		Answer  string `json:"answer"`
		Subject string `json:"subject"`
	} `json:"questions"`
}

// Draft requests input.Count questions and validates each one.
func (d *LLMDrafter) Draft(ctx context.Context, input Input) (*Result, error) {
	if err := input.Criteria.Validate(); err != nil {
		return nil, fmt.Errorf("draft criteria: %w", err)
	}
	if input.Count < 1 {
		input.Count = 1
	}
	if d.config.MaxCount > 0 && input.Count > d.config.MaxCount {
		input.Count = d.config.MaxCount
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeQuestionDraft)

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(input, d.config)},
		},
		Schema:      BatchSchema,
		MaxTokens:   d.config.MaxTokens,
		Temperature: d.config.Temperature,
	}

	resp, err := d.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw batchOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	seen := make(map[string]bool, len(input.Existing)+len(raw.Questions))
	for _, text := range input.Existing {
		seen[dedupKey(text)] = true
	}

	res := &Result{}
	for _, out := range raw.Questions {
		q := d.toQuestion(out.Text, out.Answer, out.Subject, input)
		if verr := d.validate(q, input, seen); verr != nil {
			d.logger.Debug("drafted question rejected", "validator", verr.Validator, "reason", verr.Message)
			res.Rejected = append(res.Rejected, Rejection{Question: q, Err: verr})
			continue
		}
		seen[dedupKey(q.Text)] = true
		res.Questions = append(res.Questions, q)
	}

	d.logger.Info("questions drafted",
		"criteria", input.Criteria.Label(),
		"requested", input.Count,
		"accepted", len(res.Questions),
		"rejected", len(res.Rejected))
	return res, nil
}

// toQuestion fills the criteria fields the model does not choose.
func (d *LLMDrafter) toQuestion(text, answer, subject string, input Input) bank.Question {
	q := bank.Question{
		Text:       text,
		Answer:     answer,
		Difficulty: input.Criteria.Difficulty,
		Year:       input.Criteria.Year,
	}
	if subject != "" {
		q.Subjects = []string{subject}
	}
	return q.Normalize()
}

func (d *LLMDrafter) validate(q bank.Question, input Input, seen map[string]bool) *ValidationError {
	for _, v := range d.config.Validators {
		if verr := v.Validate(q, input, seen); verr != nil {
			return verr
		}
	}
	return nil
}
