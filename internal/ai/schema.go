package ai

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"voyage/internal/types"
)

type SchemaType string

const (
	TypeObject  SchemaType = "object"
	TypeString  SchemaType = "string"
	TypeBoolean SchemaType = "boolean"
	TypeNumber  SchemaType = "number"
	TypeInteger SchemaType = "integer"
	TypeArray   SchemaType = "array"
)

// Schema is a provider-neutral description of the object a prompt must return.
type Schema struct {
	Type        SchemaType
	Description string
	Properties  map[string]*Schema
	Items       *Schema
	Required    []string
}

// Example renders a JSON skeleton of the schema, used in prompts for providers
// without native schema support.
func (s *Schema) Example() string {
	var b strings.Builder
	s.writeExample(&b, "")
	return b.String()
}

func (s *Schema) writeExample(b *strings.Builder, indent string) {
	switch s.Type {
	case TypeObject:
		b.WriteString("{\n")
		keys := s.propertyNames()
		for i, k := range keys {
			b.WriteString(indent + "  " + fmt.Sprintf("%q: ", k))
			s.Properties[k].writeExample(b, indent+"  ")
			if i < len(keys)-1 {
				b.WriteString(",")
			}
			b.WriteString("\n")
		}
		b.WriteString(indent + "}")
	case TypeArray:
		b.WriteString("[")
		if s.Items != nil {
			s.Items.writeExample(b, indent)
		}
		b.WriteString(", ...]")
	default:
		label := string(s.Type)
		if s.Description != "" {
			label += " (" + s.Description + ")"
		}
		b.WriteString("<" + label + ">")
	}
}

func (s *Schema) propertyNames() []string {
	keys := make([]string, 0, len(s.Properties))
	for k := range s.Properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// decodeStructured checks that every required top-level field is present before
// unmarshalling raw into out.
func decodeStructured(raw string, schema *Schema, out any) error {
	clean := cleanJSONString(raw)

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(clean), &fields); err != nil {
		return fmt.Errorf("%w: response is not a JSON object: %v", types.ErrParse, err)
	}
	if schema != nil {
		for _, name := range schema.Required {
			v, ok := fields[name]
			if !ok || string(v) == "null" {
				return fmt.Errorf("%w: missing required field %q", types.ErrParse, name)
			}
		}
	}
	if err := json.Unmarshal([]byte(clean), out); err != nil {
		return fmt.Errorf("%w: %v", types.ErrParse, err)
	}
	return nil
}

// cleanJSONString removes markdown code blocks if present (e.g. ```json ... ```)
func cleanJSONString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}
