package draft

import (
	"github.com/parserinator/parserinator/internal/bank"
	"github.com/parserinator/parserinator/internal/llm"
)

// BatchSchema defines the JSON schema for a drafted batch of questions.
var BatchSchema = &llm.Schema{
	Name:        "quiz-question-batch",
	Description: "A batch of academic quiz questions with short answers",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"text": map[string]any{
							"type":        "string",
							"description": "The question as read aloud by the moderator",
						},
						"answer": map[string]any{
							"type":        "string",
							"description": "The short canonical answer, a word or short phrase",
						},
						"subject": map[string]any{
							"type":        "string",
							"enum":        subjectEnum(),
							"description": "The subject the question belongs to",
						},
					},
					"required":             []any{"text", "answer", "subject"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}

func subjectEnum() []any {
	out := make([]any, len(bank.Subjects))
	for i, s := range bank.Subjects {
		out[i] = s
	}
	return out
}
