// Package dto transfers wire payloads through declared schemas: field
// definitions for documentation and decode/encode with validation.
package dto

import (
	"bytes"
	"context"
	"fmt"

	json "github.com/goccy/go-json"

	fs "github.com/reoring/fieldshape"
	"github.com/reoring/fieldshape/dsl"
)

// FieldDefinition describes one transferred field.
type FieldDefinition struct {
	Name        string
	ModelName   string
	Type        fs.Type
	Required    bool
	Default     any
	Description string
}

type resolverHolder interface {
	Resolver() *fs.Resolver
}

// GenerateFieldDefinitions lists the retained fields of schema in
// declaration order. Schemas carrying their own resolver (dsl schemas
// built with Resolver) are summarized with it.
func GenerateFieldDefinitions(schema fs.SchemaClass, opts fs.Options) []FieldDefinition {
	r := fs.DefaultResolver()
	if h, ok := schema.(resolverHolder); ok {
		r = h.Resolver()
	}
	sum := r.Introspect(schema, opts)
	out := make([]FieldDefinition, 0, len(sum.Fields))
	for _, f := range sum.Fields {
		fd := FieldDefinition{
			Name:      f.Name,
			ModelName: schema.ClassName(),
			Type:      f.Type,
			Required:  sum.IsRequired(f.Name),
		}
		if f.Field != nil {
			fd.Default = f.Field.Default
			fd.Description = f.Field.Description
		}
		out = append(out, fd)
	}
	return out
}

// ResolveGenericWrapper finds the schema wrapped by container descriptors.
// model is the schema class and specialized the wrapper with the schema in
// place; ok is false when t holds no nested schema.
func ResolveGenericWrapper(t fs.Type) (model fs.SchemaClass, specialized fs.Type, ok bool) {
	switch x := t.(type) {
	case fs.Nested:
		return x.Schema, x, x.Schema != nil
	case fs.Optional:
		return ResolveGenericWrapper(x.Inner)
	case fs.List:
		if m, _, ok := ResolveGenericWrapper(x.Elem); ok {
			return m, fs.List{Elem: fs.Nested{Schema: m}}, true
		}
	case fs.Tuple:
		for _, el := range x.Elems {
			if m, _, ok := ResolveGenericWrapper(el); ok {
				return m, x, true
			}
		}
	case fs.Mapping:
		if m, _, ok := ResolveGenericWrapper(x.Value); ok {
			return m, fs.Mapping{Key: x.Key, Value: fs.Nested{Schema: m}}, true
		}
	}
	return nil, nil, false
}

// DetectNestedField reports whether t is (optionally) a nested schema.
func DetectNestedField(t fs.Type) bool {
	inner, _ := fs.Unwrap(t)
	n, ok := inner.(fs.Nested)
	return ok && n.Schema != nil
}

// ValidationException carries the validation messages of a rejected
// payload. Extra holds the issues exactly as the schema reported them.
type ValidationException struct {
	Extra fs.Issues
}

func (e *ValidationException) Error() string {
	return fmt.Sprintf("validation failed: %s", e.Extra.Error())
}

func (e *ValidationException) Unwrap() error { return e.Extra }

// Messages returns the nested message tree of Extra.
func (e *ValidationException) Messages() map[string]any { return e.Extra.Messages() }

// DTO decodes and encodes payloads of one schema.
type DTO struct {
	Schema *dsl.ObjectSchema
	// Options are applied to each load (for example dsl.Partial()).
	Options []dsl.InstanceOption
	// OnDuplicateKey applies to DecodeBytes only.
	OnDuplicateKey DuplicatePolicy
}

// DecodeBuiltins validates an already decoded object.
func (d DTO) DecodeBuiltins(ctx context.Context, value map[string]any) (map[string]any, error) {
	return d.decode(ctx, value)
}

func (d DTO) decode(ctx context.Context, value any) (map[string]any, error) {
	out, err := d.Schema.New(d.Options...).Load(ctx, value)
	if err != nil {
		if iss, ok := fs.AsIssues(err); ok {
			return nil, &ValidationException{Extra: iss}
		}
		return nil, err
	}
	return out, nil
}

// DecodeBytes parses JSON (numbers kept as json.Number) and validates it.
func (d DTO) DecodeBytes(ctx context.Context, data []byte) (map[string]any, error) {
	if d.OnDuplicateKey == DuplicateError {
		// syntax errors are reported by the decode below
		if iss, _ := DuplicateKeys(data); len(iss) > 0 {
			return nil, &ValidationException{Extra: iss}
		}
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, &ValidationException{Extra: fs.Issues{{
			Path:    "/",
			Code:    fs.CodeParseError,
			Message: err.Error(),
			Cause:   err,
		}}}
	}
	return d.decode(ctx, v)
}

// EncodeBytes dumps value through the schema and marshals it.
func (d DTO) EncodeBytes(value map[string]any) ([]byte, error) {
	return json.Marshal(d.Schema.New(d.Options...).Dump(value))
}
