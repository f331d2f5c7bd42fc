package bank

import "fmt"

// ValidationError describes why a question was rejected before it reached the bank.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// RowError reports a spreadsheet row that could not be turned into a question.
type RowError struct {
	Row int // 1-based, as shown by spreadsheet apps
	Err error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }
