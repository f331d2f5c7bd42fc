package llm

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

// questionSchema is a small structured-output schema used across tests.
func questionSchema() *Schema {
	return &Schema{
		Name:        "test-question",
		Description: "One quiz question",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"text":    map[string]any{"type": "string"},
				"answer":  map[string]any{"type": "string"},
				"subject": map[string]any{"type": "string", "enum": []any{"Math", "Science"}},
				"points":  map[string]any{"type": "integer", "minimum": 0},
			},
			"required":             []any{"text", "answer"},
			"additionalProperties": false,
		},
	}
}

const jupiterJSON = `{"text":"Which planet is largest?","answer":"Jupiter","subject":"Science"}`

// fakeAPI serves one canned JSON reply and captures the request body.
type fakeAPI struct {
	status int
	header http.Header
	reply  any
	body   map[string]any
	hits   int
}

func (f *fakeAPI) serve(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.hits++
		raw, _ := io.ReadAll(r.Body)
		f.body = nil
		_ = json.Unmarshal(raw, &f.body)

		for k, vs := range f.header {
			for _, v := range vs {
				w.Header().Add(k, v)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		if f.status != 0 {
			w.WriteHeader(f.status)
		}
		_ = json.NewEncoder(w).Encode(f.reply)
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}
