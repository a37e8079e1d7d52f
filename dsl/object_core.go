package dsl

import (
	"context"

	fs "github.com/reoring/fieldshape"
	js "github.com/reoring/fieldshape/jsonschema"
)

// ObjectSchema is a declared schema class built by Schema(...).Build().
type ObjectSchema struct {
	name    string
	fields  []fs.NamedField
	exclude []string
	bases   []fs.Class
	unknown fs.UnknownPolicy
	// nil means the built-in table
	resolver *fs.Resolver
}

// Ensure ObjectSchema implements fieldshape.SchemaClass
var _ fs.SchemaClass = (*ObjectSchema)(nil)

func (s *ObjectSchema) ClassName() string { return s.name }

// DeclaredFields returns inherited fields first, then own ones.
func (s *ObjectSchema) DeclaredFields() []fs.NamedField {
	return append([]fs.NamedField(nil), s.fields...)
}

// Exclude returns the schema's own exclusions (not the inherited ones).
func (s *ObjectSchema) Exclude() []string { return append([]string(nil), s.exclude...) }

func (s *ObjectSchema) Bases() []fs.Class { return append([]fs.Class(nil), s.bases...) }

// UnknownPolicy returns the policy applied to undeclared keys on load.
func (s *ObjectSchema) UnknownPolicy() fs.UnknownPolicy { return s.unknown }

// Resolver returns the resolver the schema was built with.
func (s *ObjectSchema) Resolver() *fs.Resolver {
	if s.resolver == nil {
		return fs.DefaultResolver()
	}
	return s.resolver
}

// Summary introspects the schema with its resolver.
func (s *ObjectSchema) Summary(opts fs.Options) *fs.Summary { return s.Resolver().Introspect(s, opts) }

// JSONSchema exports the schema; every retained field is required unless
// declaredRequired is set.
func (s *ObjectSchema) JSONSchema(declaredRequired bool) (*js.Schema, error) {
	return js.FromSummary(s.Resolver(), s, fs.Options{UseDeclaredRequired: declaredRequired, RemoveExcluded: true})
}

// Load validates data with the schema's own settings.
func (s *ObjectSchema) Load(ctx context.Context, data any) (map[string]any, error) {
	return s.New().Load(ctx, data)
}

// Dump serializes data with the schema's own settings.
func (s *ObjectSchema) Dump(data map[string]any) map[string]any {
	return s.New().Dump(data)
}

// InstanceOption configures an Instance.
type InstanceOption func(*Instance)

// WithUnknown overrides the schema's unknown-key policy.
func WithUnknown(p fs.UnknownPolicy) InstanceOption {
	return func(i *Instance) { i.unknown = p }
}

// Partial skips required checks on load.
func Partial() InstanceOption {
	return func(i *Instance) { i.partial = true }
}

// Only restricts loading and dumping to the named fields.
func Only(names ...string) InstanceOption {
	return func(i *Instance) {
		if i.only == nil {
			i.only = map[string]struct{}{}
		}
		for _, n := range names {
			i.only[n] = struct{}{}
		}
	}
}

// Without drops the named fields for this instance only.
func Without(names ...string) InstanceOption {
	return func(i *Instance) {
		for _, n := range names {
			i.without[n] = struct{}{}
		}
	}
}

// Instance is a configured use of a schema class.
type Instance struct {
	schema  *ObjectSchema
	unknown fs.UnknownPolicy
	partial bool
	only    map[string]struct{}
	without map[string]struct{}
}

// Ensure Instance implements fieldshape.SchemaInstance
var _ fs.SchemaInstance = (*Instance)(nil)

// New returns an instance of the schema.
func (s *ObjectSchema) New(opts ...InstanceOption) *Instance {
	in := &Instance{schema: s, unknown: s.unknown, without: map[string]struct{}{}}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

func (i *Instance) Class() fs.SchemaClass { return i.schema }

// active reports whether the instance keeps name.
func (i *Instance) active(name string) bool {
	if _, ok := i.without[name]; ok {
		return false
	}
	if i.only != nil {
		_, ok := i.only[name]
		return ok
	}
	return true
}

// Dump drops excluded, load-only and undeclared keys from data, recursing
// into nested values. Constant fields always dump their value.
func (i *Instance) Dump(data map[string]any) map[string]any {
	return dumpObject(i.schema, data, i.active)
}

func dumpObject(cls fs.SchemaClass, data map[string]any, keep func(string) bool) map[string]any {
	out := make(map[string]any, len(data))
	excluded := fs.ExcludedFieldNames(cls)
	for _, nf := range cls.DeclaredFields() {
		if _, skip := excluded[nf.Name]; skip || (keep != nil && !keep(nf.Name)) {
			continue
		}
		f := fs.Materialize(nf.Field)
		if f == nil || f.LoadOnly {
			continue
		}
		if f.Kind.IsA(fs.KindConstant) {
			out[nf.Name] = f.Default
			continue
		}
		v, ok := data[nf.Name]
		if !ok {
			continue
		}
		out[nf.Name] = dumpValue(f, v)
	}
	return out
}

func dumpValue(f *fs.Field, v any) any {
	if v == nil || f == nil {
		return v
	}
	switch {
	case f.Kind.IsA(fs.KindPluck):
		return v
	case f.Kind.IsA(fs.KindNested):
		cls := fs.ClassOf(f.Nested)
		if cls == nil {
			return v
		}
		if f.Many {
			return dumpList(v, func(e any) any { return dumpNested(cls, e) })
		}
		return dumpNested(cls, v)
	case f.Kind.IsA(fs.KindList):
		inner := fs.Materialize(f.Inner)
		if inner == nil {
			return v
		}
		return dumpList(v, func(e any) any { return dumpValue(inner, e) })
	case f.Kind.IsA(fs.KindMapping):
		val := fs.Materialize(f.ValueField)
		m, ok := v.(map[string]any)
		if !ok || val == nil {
			return v
		}
		out := make(map[string]any, len(m))
		for k, e := range m {
			out[k] = dumpValue(val, e)
		}
		return out
	}
	return v
}

func dumpNested(cls fs.SchemaClass, v any) any {
	if m, ok := v.(map[string]any); ok {
		return dumpObject(cls, m, nil)
	}
	return v
}

func dumpList(v any, fn func(any) any) any {
	xs, ok := v.([]any)
	if !ok {
		return v
	}
	out := make([]any, len(xs))
	for i, e := range xs {
		out[i] = fn(e)
	}
	return out
}
