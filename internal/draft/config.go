package draft

// Config controls the behavior of the LLMDrafter.
type Config struct {
	// Validators run in order on every drafted question; the first failure
	// rejects it.
	Validators []Validator

	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// MaxExisting is the maximum number of bank questions to include in
	// the prompt for deduplication.
	MaxExisting int

	// MaxCount caps Input.Count.
	MaxCount int
}

// DefaultConfig returns a Config with the standard validator chain
// and recommended defaults.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&CriteriaValidator{},
			&DuplicateValidator{},
		},
		MaxTokens:   2048,
		Temperature: 0.8,
		MaxExisting: 20,
		MaxCount:    20,
	}
}
