package jsonschema

import (
	json "github.com/goccy/go-json"
)

// Draft is the dialect written to "$schema" by FromSummary.
const Draft = "https://json-schema.org/draft/2020-12/schema"

// Schema is a compact JSON Schema representation used for export.
type Schema struct {
	// Core
	SchemaURI   string `json:"$schema,omitempty"`
	Ref         string `json:"$ref,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type,omitempty"`
	Format      string `json:"format,omitempty"`
	Default     any    `json:"default,omitempty"`
	Enum        []any  `json:"enum,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties any                `json:"additionalProperties,omitempty"`
	PropertyNames        *Schema            `json:"propertyNames,omitempty"`

	// Array
	Items       *Schema   `json:"items,omitempty"`
	PrefixItems []*Schema `json:"prefixItems,omitempty"`
	MinItems    *int      `json:"minItems,omitempty"`
	MaxItems    *int      `json:"maxItems,omitempty"`

	// Union
	OneOf []*Schema `json:"oneOf,omitempty"`
	AnyOf []*Schema `json:"anyOf,omitempty"`

	Defs map[string]*Schema `json:"$defs,omitempty"`
}

// Marshal encodes s compactly.
func Marshal(s *Schema) ([]byte, error) { return json.Marshal(s) }

// MarshalIndent encodes s with two-space indentation.
func MarshalIndent(s *Schema) ([]byte, error) { return json.MarshalIndent(s, "", "  ") }
