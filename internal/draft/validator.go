package draft

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/parserinator/parserinator/internal/bank"
)

// Validator checks a drafted question.
type Validator interface {
	// Name returns a short identifier used in error messages.
	Name() string

	// Validate returns nil if q passes. seen holds the normalized texts of
	// the bank plus the questions accepted earlier in the same batch.
	Validate(q bank.Question, input Input, seen map[string]bool) *ValidationError
}

// ValidationError describes why a drafted question was rejected.
type ValidationError struct {
	Validator string
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// Length limits for drafted questions.
const (
	MaxTextLen   = 600
	MaxAnswerLen = 80
)

// StructuralValidator applies the bank's field rules and length limits.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q bank.Question, _ Input, _ map[string]bool) *ValidationError {
	if err := q.Validate(); err != nil {
		var ve *bank.ValidationError
		if errors.As(err, &ve) {
			return &ValidationError{Validator: v.Name(), Message: ve.Error()}
		}
		return &ValidationError{Validator: v.Name(), Message: err.Error()}
	}
	if len(q.Text) > MaxTextLen {
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("text exceeds %d characters", MaxTextLen)}
	}
	if len(q.Answer) > MaxAnswerLen {
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("answer exceeds %d characters", MaxAnswerLen)}
	}
	return nil
}

// CriteriaValidator checks that a question fits the requested criteria.
type CriteriaValidator struct{}

func (v *CriteriaValidator) Name() string { return "criteria" }

func (v *CriteriaValidator) Validate(q bank.Question, input Input, _ map[string]bool) *ValidationError {
	for _, s := range q.Subjects {
		if !slices.Contains(bank.Subjects, s) {
			return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("unknown subject %q", s)}
		}
	}
	if !input.Criteria.Matches(q) {
		return &ValidationError{Validator: v.Name(), Message: "does not match " + input.Criteria.Label()}
	}
	return nil
}

// DuplicateValidator rejects questions whose text is already known.
type DuplicateValidator struct{}

func (v *DuplicateValidator) Name() string { return "duplicate" }

func (v *DuplicateValidator) Validate(q bank.Question, _ Input, seen map[string]bool) *ValidationError {
	if seen[dedupKey(q.Text)] {
		return &ValidationError{Validator: v.Name(), Message: "question already exists"}
	}
	return nil
}

// dedupKey folds case and collapses whitespace.
func dedupKey(text string) string {
	return strings.ToLower(strings.Join(strings.Fields(text), " "))
}
