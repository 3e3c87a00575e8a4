package deck

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// deckSchema describes the structure of a deck document. Cross-field
// rules (a reading question requires readings) stay in LoadFile.
var deckSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"name": map[string]any{"type": "string"},
		"subjects": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id": map[string]any{"type": "integer", "minimum": 1},
					"kind": map[string]any{
						"type": "string",
						"enum": []any{"radical", "kanji", "vocabulary", "kana_vocabulary"},
					},
					"characters": map[string]any{"type": "string", "minLength": 1},
					"meanings": map[string]any{
						"type":     "array",
						"minItems": 1,
						"items":    map[string]any{"type": "string", "minLength": 1},
					},
					"auxiliary_meanings": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"value": map[string]any{"type": "string"},
								"type": map[string]any{
									"type": "string",
									"enum": []any{"whitelist", "blacklist", "note"},
								},
							},
							"required": []any{"value", "type"},
						},
					},
					"readings":           readingListSchema,
					"auxiliary_readings": readingListSchema,
					"onyomi":             stringListSchema,
					"kunyomi":            stringListSchema,
					"nanori":             stringListSchema,
					"primary_reading_type": map[string]any{
						"type": "string",
						"enum": []any{"onyomi", "kunyomi", "nanori"},
					},
					"component_meanings": stringListSchema,
					"component_readings": stringListSchema,
				},
				"required": []any{"id", "kind", "characters", "meanings"},
			},
		},
		"synonyms": map[string]any{
			"type":                 "object",
			"additionalProperties": stringListSchema,
		},
		"stages": map[string]any{
			"type": "object",
			"additionalProperties": map[string]any{
				"type": "integer", "minimum": 0, "maximum": 9,
			},
		},
	},
	"required": []any{"subjects"},
}

var readingListSchema = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type": "object",
		"properties": map[string]any{
			"value":   map[string]any{"type": "string", "minLength": 1},
			"primary": map[string]any{"type": "boolean"},
			"type": map[string]any{
				"type": "string",
				"enum": []any{"whitelist", "blacklist", "note"},
			},
		},
		"required": []any{"value"},
	},
}

var stringListSchema = map[string]any{
	"type":  "array",
	"items": map[string]any{"type": "string"},
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// validateDeck checks a raw deck document against the deck schema.
func validateDeck(raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	compiled, err := getCompiledSchema()
	if err != nil {
		return fmt.Errorf("compile deck schema: %w", err)
	}
	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

func getCompiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The jsonschema library expects a parsed JSON value (any),
		// not raw bytes. Marshal then unmarshal to get a clean any
		// representation.
		defBytes, err := json.Marshal(deckSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		var defParsed any
		if err := json.Unmarshal(defBytes, &defParsed); err != nil {
			compileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		const schemaURL = "schema://deck.json"
		if err := c.AddResource(schemaURL, defParsed); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(schemaURL)
	})
	return compiledSchema, compileErr
}
