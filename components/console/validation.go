package console

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// CriteriaValidator validates filter criteria submitted for a section.
type CriteriaValidator interface {
	Validate(def SectionDefinition, criteria FilterCriteria) error
}

// JSONSchemaValidator derives a schema from each section's filter fields and
// caches the compiled result.
type JSONSchemaValidator struct {
	mu       sync.RWMutex
	compiled map[SectionID]*jsonschema.Schema
}

// NewJSONSchemaValidator builds a validator backed by jsonschema v5.
func NewJSONSchemaValidator() *JSONSchemaValidator {
	return &JSONSchemaValidator{
		compiled: make(map[SectionID]*jsonschema.Schema),
	}
}

// Validate ensures criteria only reference declared filters and values.
func (v *JSONSchemaValidator) Validate(def SectionDefinition, criteria FilterCriteria) error {
	schema, err := v.schemaFor(def)
	if err != nil {
		return err
	}
	data, err := json.Marshal(canonicalSentinels(criteria))
	if err != nil {
		return fmt.Errorf("console: marshal criteria for %s: %w", def.ID, err)
	}
	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("console: normalize criteria for %s: %w", def.ID, err)
	}
	if err := schema.Validate(payload); err != nil {
		return fmt.Errorf("%w for %s: %v", ErrInvalidCriteria, def.ID, err)
	}
	return nil
}

// Forget drops a cached schema, used when a definition is replaced.
func (v *JSONSchemaValidator) Forget(id SectionID) {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.compiled, id)
}

func (v *JSONSchemaValidator) schemaFor(def SectionDefinition) (*jsonschema.Schema, error) {
	v.mu.RLock()
	schema, ok := v.compiled[def.ID]
	v.mu.RUnlock()
	if ok {
		return schema, nil
	}
	data, err := json.Marshal(CriteriaSchema(def))
	if err != nil {
		return nil, fmt.Errorf("console: marshal criteria schema %s: %w", def.ID, err)
	}
	compiler := jsonschema.NewCompiler()
	name := string(def.ID) + ".criteria.json"
	if err := compiler.AddResource(name, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("console: load criteria schema %s: %w", def.ID, err)
	}
	compiled, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("console: compile criteria schema %s: %w", def.ID, err)
	}
	v.mu.Lock()
	v.compiled[def.ID] = compiled
	v.mu.Unlock()
	return compiled, nil
}

// CriteriaSchema builds the JSON schema accepted for a section's criteria.
// Sections without declared filters accept any string field.
func CriteriaSchema(def SectionDefinition) map[string]any {
	fields := map[string]any{
		"type":                 "object",
		"additionalProperties": map[string]any{"type": "string"},
	}
	if len(def.Filters) > 0 {
		props := make(map[string]any, len(def.Filters))
		for _, f := range def.Filters {
			prop := map[string]any{"type": "string"}
			if len(f.Values) > 0 && f.Normalize == NormalizeNone {
				enum := make([]any, 0, len(f.Values)+1)
				enum = append(enum, AllValue)
				for _, value := range f.Values {
					enum = append(enum, value)
				}
				prop["enum"] = enum
			}
			props[f.Name] = prop
		}
		fields = map[string]any{
			"type":                 "object",
			"properties":           props,
			"additionalProperties": false,
		}
	}
	return map[string]any{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"type":    "object",
		"properties": map[string]any{
			"searchTerm": map[string]any{"type": "string", "maxLength": 256},
			"fields":     fields,
		},
		"additionalProperties": false,
	}
}

// canonicalSentinels rewrites every "no constraint" value to AllValue so the
// schema enum only has to list one spelling. Field names are kept so
// undeclared filters are still rejected.
func canonicalSentinels(criteria FilterCriteria) FilterCriteria {
	out := criteria.Clone()
	for name, value := range out.Fields {
		if IsAll(value) {
			out.Fields[name] = AllValue
		}
	}
	return out
}
