package bank

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const documentSchemaURL = "schema://question-bank.json"

// documentSchema accepts either the bare quiz array or the versioned envelope.
var documentSchema = map[string]any{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"$defs": map[string]any{
		"option": map[string]any{
			"type":     "object",
			"required": []any{"text", "is_correct"},
			"properties": map[string]any{
				"text":       map[string]any{"type": "string"},
				"is_correct": map[string]any{"type": "boolean"},
				"comment":    map[string]any{"type": []any{"string", "null"}},
			},
		},
		"question": map[string]any{
			"type":     "object",
			"required": []any{"question", "id", "options"},
			"properties": map[string]any{
				"question":           map[string]any{"type": "string"},
				"question_image_url": map[string]any{"type": []any{"string", "null"}},
				"unique":             map[string]any{"type": "boolean"},
				"id":                 map[string]any{"type": "integer"},
				"options": map[string]any{
					"type":  "array",
					"items": map[string]any{"$ref": "#/$defs/option"},
				},
				"neutral_comments": map[string]any{"type": []any{"string", "null"}},
			},
		},
		"quiz": map[string]any{
			"type":     "object",
			"required": []any{"quiz_title", "questions"},
			"properties": map[string]any{
				"quiz_title": map[string]any{"type": "string", "minLength": 1},
				"questions": map[string]any{
					"type":  "array",
					"items": map[string]any{"$ref": "#/$defs/question"},
				},
				"unique_questions": map[string]any{"type": "integer"},
			},
		},
		"quizzes": map[string]any{
			"type":  "array",
			"items": map[string]any{"$ref": "#/$defs/quiz"},
		},
	},
	"oneOf": []any{
		map[string]any{"$ref": "#/$defs/quizzes"},
		map[string]any{
			"type":     "object",
			"required": []any{"version", "quizzes"},
			"properties": map[string]any{
				"version": map[string]any{"type": "string"},
				"subject": map[string]any{"type": "string"},
				"quizzes": map[string]any{"$ref": "#/$defs/quizzes"},
			},
		},
	},
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// compiledSchema compiles documentSchema once per process.
func compiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler wants a plain decoded JSON value, not Go maps with typed slices.
		raw, err := json.Marshal(documentSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
		if err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(documentSchemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(documentSchemaURL)
	})
	return compiled, compileErr
}

// validateDocument checks raw bank JSON against the document schema.
func validateDocument(data []byte) error {
	parsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	sch, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile bank schema: %w", err)
	}
	if err := sch.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
