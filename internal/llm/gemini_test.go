package llm

import (
	"testing"

	"google.golang.org/genai"
)

func TestToGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type":        "object",
		"description": "A batch of questions",
		"required":    []any{"questions"},
		"properties": map[string]any{
			"questions": map[string]any{
				"type":     "array",
				"minItems": 1,
				"maxItems": 10,
				"items": map[string]any{
					"type":     "object",
					"required": []string{"text", "difficulty"},
					"properties": map[string]any{
						"text":       map[string]any{"type": "string"},
						"difficulty": map[string]any{"type": "string", "enum": []any{"District", "State"}},
						"year":       map[string]any{"type": "integer"},
					},
				},
			},
		},
	}

	s := toGeminiSchema(def)
	if s.Type != genai.TypeObject || s.Description != "A batch of questions" {
		t.Errorf("root = %+v", s)
	}
	if len(s.Required) != 1 || s.Required[0] != "questions" {
		t.Errorf("Required = %v", s.Required)
	}

	qs := s.Properties["questions"]
	if qs == nil || qs.Type != genai.TypeArray {
		t.Fatalf("questions = %+v", qs)
	}
	if qs.MinItems == nil || *qs.MinItems != 1 || qs.MaxItems == nil || *qs.MaxItems != 10 {
		t.Errorf("item bounds = %v, %v", qs.MinItems, qs.MaxItems)
	}

	item := qs.Items
	if item == nil || len(item.Required) != 2 {
		t.Fatalf("items = %+v", item)
	}
	if d := item.Properties["difficulty"]; d == nil || len(d.Enum) != 2 || d.Enum[1] != "State" {
		t.Errorf("difficulty = %+v", d)
	}
	if y := item.Properties["year"]; y == nil || y.Type != genai.TypeInteger {
		t.Errorf("year = %+v", y)
	}
}

func TestToGeminiSchema_UnknownTypeDefaultsToString(t *testing.T) {
	if s := toGeminiSchema(map[string]any{"type": "null"}); s.Type != genai.TypeString {
		t.Errorf("Type = %v", s.Type)
	}
}
