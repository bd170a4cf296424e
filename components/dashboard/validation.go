package dashboard

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const contentSchemaName = "dashboard.content.json"

// ContentValidator validates content documents before they replace the live tables.
type ContentValidator interface {
	Validate(doc Content) error
}

// JSONSchemaValidator checks content documents against a JSON schema compiled on first use.
type JSONSchemaValidator struct {
	schema map[string]any

	mu       sync.Mutex
	compiled *jsonschema.Schema
}

// NewJSONSchemaValidator builds a validator backed by jsonschema v5. A nil schema
// selects ContentSchema.
func NewJSONSchemaValidator(schema map[string]any) *JSONSchemaValidator {
	if schema == nil {
		schema = ContentSchema()
	}
	return &JSONSchemaValidator{schema: schema}
}

// Validate runs the structural checks and then the schema.
func (v *JSONSchemaValidator) Validate(doc Content) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	schema, err := v.compile()
	if err != nil {
		return err
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("dashboard: marshal content: %w", err)
	}
	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("dashboard: normalize content: %w", err)
	}
	if err := schema.Validate(payload); err != nil {
		return fmt.Errorf("dashboard: content failed validation: %w", err)
	}
	return nil
}

func (v *JSONSchemaValidator) compile() (*jsonschema.Schema, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.compiled != nil {
		return v.compiled, nil
	}
	data, err := json.Marshal(v.schema)
	if err != nil {
		return nil, fmt.Errorf("dashboard: marshal content schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(contentSchemaName, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("dashboard: load content schema: %w", err)
	}
	compiled, err := compiler.Compile(contentSchemaName)
	if err != nil {
		return nil, fmt.Errorf("dashboard: compile content schema: %w", err)
	}
	v.compiled = compiled
	return compiled, nil
}

// ContentSchema returns the JSON schema describing a content document. Activity types
// are free-form strings: anything other than "success" renders with the info marker.
func ContentSchema() map[string]any {
	str := map[string]any{"type": "string"}
	required := map[string]any{"type": "string", "minLength": 1}
	glyph := map[string]any{"type": "string", "pattern": "^[a-z0-9-]*$"}
	token := map[string]any{"type": "string", "pattern": "^[a-z0-9-]*$"}
	return map[string]any{
		"type":     "object",
		"required": []string{"version"},
		"properties": map[string]any{
			"version": map[string]any{"type": "string", "enum": []string{contentVersionV1}},
			"stats": map[string]any{
				"type": []string{"array", "null"},
				"items": map[string]any{
					"type":     "object",
					"required": []string{"name", "value"},
					"properties": map[string]any{
						"name":     required,
						"value":    str,
						"icon":     glyph,
						"color":    token,
						"bg_color": token,
					},
				},
			},
			"quick_actions": map[string]any{
				"type": []string{"array", "null"},
				"items": map[string]any{
					"type":     "object",
					"required": []string{"name", "href", "requires_module"},
					"properties": map[string]any{
						"name":            required,
						"href":            required,
						"icon":            glyph,
						"color":           token,
						"bg_color":        token,
						"requires_module": required,
					},
				},
			},
			"activity": map[string]any{
				"type": []string{"array", "null"},
				"items": map[string]any{
					"type":     "object",
					"required": []string{"action"},
					"properties": map[string]any{
						"action": required,
						"user":   str,
						"time":   str,
						"type":   str,
					},
				},
			},
			"status": map[string]any{
				"type": []string{"array", "null"},
				"items": map[string]any{
					"type":     "object",
					"required": []string{"title"},
					"properties": map[string]any{
						"title":       required,
						"description": str,
						"icon":        glyph,
						"color":       token,
						"bg_color":    token,
					},
				},
			},
		},
	}
}
