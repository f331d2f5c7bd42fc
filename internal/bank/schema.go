package bank

import (
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "schema://question-bank.json"

// fileSchema is the JSON Schema of the question bank file.
var fileSchema = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type": "object",
		"properties": map[string]any{
			"text":   map[string]any{"type": "string"},
			"answer": map[string]any{"type": "string"},
			"subjects": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"difficulty": map[string]any{
				"type": "string",
				"enum": []any{string(DifficultyDistrict), string(DifficultyRegional), string(DifficultyState)},
			},
			"year": map[string]any{"type": "integer"},
		},
		"required": []any{"text", "answer", "subjects", "difficulty", "year"},
	},
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// bankSchema returns the compiled bank schema, compiling it on first use.
func bankSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, fileSchema); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	return compiled, compileErr
}

// validateDocument checks a decoded JSON document against the bank schema.
func validateDocument(doc any) error {
	sch, err := bankSchema()
	if err != nil {
		return fmt.Errorf("compile bank schema: %w", err)
	}
	return sch.Validate(doc)
}
