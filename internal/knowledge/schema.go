package knowledge

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// corpusSchema describes a corpus document: a JSON array of entries.
var corpusSchema = map[string]any{
	"type":     "array",
	"minItems": 1,
	"items": map[string]any{
		"type":     "object",
		"required": []string{"id", "question", "answer"},
		"properties": map[string]any{
			"id":       map[string]any{"type": "string", "minLength": 1},
			"category": map[string]any{"type": "string"},
			"question": map[string]any{"type": "string", "minLength": 1},
			"answer":   map[string]any{"type": "string", "minLength": 1},
			"tags": map[string]any{
				"type":  []string{"array", "null"},
				"items": map[string]any{"type": "string"},
			},
			"sources": map[string]any{
				"type":  []string{"array", "null"},
				"items": map[string]any{"type": "string"},
			},
		},
	},
}

// validateDocument checks raw JSON against the corpus schema and reports every
// violation in a single error.
func validateDocument(data []byte) error {
	schemaLoader := gojsonschema.NewGoLoader(corpusSchema)
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEntry, err)
	}
	if result.Valid() {
		return nil
	}
	problems := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		problems = append(problems, desc.String())
	}
	return fmt.Errorf("%w: %s", ErrInvalidEntry, strings.Join(problems, "; "))
}
