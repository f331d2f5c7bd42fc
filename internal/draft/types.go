// Package draft asks an LLM to write new quiz questions for a filter
// criteria and checks them before they are offered for the bank.
package draft

import (
	"context"

	"github.com/parserinator/parserinator/internal/bank"
	"github.com/parserinator/parserinator/internal/filter"
)

// Drafter produces candidate questions for a criteria.
type Drafter interface {
	// Draft returns the accepted questions and the ones the validators
	// rejected. An error means no usable response came back.
	Draft(ctx context.Context, input Input) (*Result, error)
}

// Input holds everything needed to draft a batch.
type Input struct {
	// Criteria pins difficulty and year. When Subjects is empty the model
	// picks a subject per question.
	Criteria filter.Criteria

	// Count is the number of questions requested.
	Count int

	// Existing contains question texts already in the bank. Recent ones are
	// listed in the prompt and all of them are used to drop duplicates.
	Existing []string
}

// Result is a drafted batch.
type Result struct {
	Questions []bank.Question
	Rejected  []Rejection
}

// Rejection is a drafted question that failed validation.
type Rejection struct {
	Question bank.Question
	Err      error
}
