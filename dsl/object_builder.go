package dsl

import (
	"fmt"

	fs "github.com/reoring/fieldshape"
)

type schemaBuilder struct {
	name    string
	fields  []fs.NamedField
	exclude []string
	bases   []fs.Class
	extends []*ObjectSchema
	unknown fs.UnknownPolicy
	r       *fs.Resolver
	errs    []string
}

type fieldStep struct {
	b   *schemaBuilder
	idx int
}

// Schema creates a new schema builder with safe defaults (unknown keys raise).
func Schema(name string) *schemaBuilder {
	return &schemaBuilder{name: name, unknown: fs.UnknownRaise}
}

// Field declares a field. *fieldshape.Field values are copied so the same
// constructor result can be reused across schemas.
func (b *schemaBuilder) Field(name string, ref fs.FieldRef) *fieldStep {
	if name == "" {
		b.errs = append(b.errs, "field name must not be empty")
	}
	for _, nf := range b.fields {
		if nf.Name == name && name != "" {
			b.errs = append(b.errs, fmt.Sprintf("duplicate field %q", name))
		}
	}
	if f, ok := ref.(*fs.Field); ok && f != nil {
		cp := *f
		ref = &cp
	}
	b.fields = append(b.fields, fs.NamedField{Name: name, Field: ref})
	return &fieldStep{b: b, idx: len(b.fields) - 1}
}

// Exclude names fields dropped from the schema (and from schemas extending it).
func (b *schemaBuilder) Exclude(names ...string) *schemaBuilder {
	b.exclude = append(b.exclude, names...)
	return b
}

// Extends inherits the declared fields and exclusions of bases.
func (b *schemaBuilder) Extends(bases ...*ObjectSchema) *schemaBuilder {
	for _, base := range bases {
		if base == nil {
			continue
		}
		b.extends = append(b.extends, base)
		b.bases = append(b.bases, base)
	}
	return b
}

// Mixin records a non-schema base class. It contributes no fields.
func (b *schemaBuilder) Mixin(c fs.Class) *schemaBuilder {
	if c != nil {
		b.bases = append(b.bases, c)
	}
	return b
}

// Unknown sets the policy for undeclared keys on load.
func (b *schemaBuilder) Unknown(p fs.UnknownPolicy) *schemaBuilder {
	b.unknown = p
	return b
}

// Resolver sets the resolver used to summarize and load the schema, so
// custom kinds registered in its table are checked as their declared type.
func (b *schemaBuilder) Resolver(r *fs.Resolver) *schemaBuilder {
	b.r = r
	return b
}

// update applies fn to the current field, wrapping lazy declarations.
func (f *fieldStep) update(fn func(*fs.Field)) *fieldStep {
	nf := &f.b.fields[f.idx]
	switch ref := nf.Field.(type) {
	case *fs.Field:
		fn(ref)
	case fs.FieldFunc:
		nf.Field = fs.FieldFunc(func() *fs.Field {
			inner := ref()
			if inner == nil {
				return nil
			}
			cp := *inner
			fn(&cp)
			return &cp
		})
	}
	return f
}

// Required marks the field as required.
func (f *fieldStep) Required() *fieldStep {
	return f.update(func(x *fs.Field) { x.Required = true })
}

// Nullable lets the field accept null.
func (f *fieldStep) Nullable() *fieldStep {
	return f.update(func(x *fs.Field) { x.AllowNone = true })
}

// Default sets the value loaded when the key is missing.
func (f *fieldStep) Default(v any) *fieldStep {
	return f.update(func(x *fs.Field) { x.Default = v })
}

func (f *fieldStep) Describe(s string) *fieldStep {
	return f.update(func(x *fs.Field) { x.Description = s })
}

func (f *fieldStep) LoadOnly() *fieldStep {
	return f.update(func(x *fs.Field) { x.LoadOnly = true })
}

func (f *fieldStep) DumpOnly() *fieldStep {
	return f.update(func(x *fs.Field) { x.DumpOnly = true })
}

func (f *fieldStep) Field(name string, ref fs.FieldRef) *fieldStep { return f.b.Field(name, ref) }
func (f *fieldStep) Exclude(names ...string) *schemaBuilder         { return f.b.Exclude(names...) }
func (f *fieldStep) Extends(bases ...*ObjectSchema) *schemaBuilder  { return f.b.Extends(bases...) }
func (f *fieldStep) Mixin(c fs.Class) *schemaBuilder                { return f.b.Mixin(c) }
func (f *fieldStep) Unknown(p fs.UnknownPolicy) *schemaBuilder      { return f.b.Unknown(p) }
func (f *fieldStep) Resolver(r *fs.Resolver) *schemaBuilder         { return f.b.Resolver(r) }
func (f *fieldStep) Build() (*ObjectSchema, error)                  { return f.b.Build() }
func (f *fieldStep) MustBuild() *ObjectSchema                       { return f.b.MustBuild() }

// Build validates the declaration and returns the schema.
func (b *schemaBuilder) Build() (*ObjectSchema, error) {
	var iss fs.Issues
	for _, msg := range b.errs {
		iss = fs.AppendIssues(iss, fs.Issue{Path: "/", Code: fs.CodeParseError, Message: msg})
	}
	if b.name == "" {
		iss = fs.AppendIssues(iss, fs.Issue{Path: "/", Code: fs.CodeParseError, Message: "schema name must not be empty"})
	}
	s := &ObjectSchema{
		name:     b.name,
		exclude:  append([]string(nil), b.exclude...),
		bases:    append([]fs.Class(nil), b.bases...),
		unknown:  b.unknown,
		resolver: b.r,
	}
	// inherit the first base's resolver unless one was set
	for _, base := range b.extends {
		if s.resolver != nil {
			break
		}
		s.resolver = base.resolver
	}
	s.fields = mergeDeclared(b.extends, b.fields)
	for i := range s.fields {
		s.fields[i].Field = bindSelf(s.fields[i].Field, s)
	}
	declared := make(map[string]struct{}, len(s.fields))
	for _, nf := range s.fields {
		declared[nf.Name] = struct{}{}
	}
	for _, name := range b.exclude {
		if _, ok := declared[name]; !ok {
			iss = fs.AppendIssues(iss, fs.RootPath().Field(name).Issue(fs.CodeUnknownKey, fmt.Sprintf("excluded field %q is not declared", name)))
		}
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return s, nil
}

// MustBuild is like Build but panics on error.
func (b *schemaBuilder) MustBuild() *ObjectSchema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

// mergeDeclared lays out inherited fields first (bases in order), then own
// fields. A redeclared name replaces the inherited entry in place.
func mergeDeclared(bases []*ObjectSchema, own []fs.NamedField) []fs.NamedField {
	var out []fs.NamedField
	pos := map[string]int{}
	add := func(nf fs.NamedField) {
		if i, ok := pos[nf.Name]; ok {
			out[i] = nf
			return
		}
		pos[nf.Name] = len(out)
		out = append(out, nf)
	}
	for _, base := range bases {
		for _, nf := range base.fields {
			add(nf)
		}
	}
	for _, nf := range own {
		add(nf)
	}
	return out
}

// bindSelf replaces NestedSelf markers reachable from ref with s. Fields
// holding a marker are copied; the rest are returned as-is.
func bindSelf(ref fs.FieldRef, s *ObjectSchema) fs.FieldRef {
	switch f := ref.(type) {
	case *fs.Field:
		if f == nil || !hasSelf(f) {
			return f
		}
		cp := *f
		if _, ok := cp.Nested.(selfRef); ok {
			cp.Nested = s
		}
		if cp.Inner != nil {
			cp.Inner = bindSelf(cp.Inner, s)
		}
		if len(cp.TupleFields) > 0 {
			elems := make([]fs.FieldRef, len(cp.TupleFields))
			for i, e := range cp.TupleFields {
				elems[i] = bindSelf(e, s)
			}
			cp.TupleFields = elems
		}
		if cp.KeyField != nil {
			cp.KeyField = bindSelf(cp.KeyField, s)
		}
		if cp.ValueField != nil {
			cp.ValueField = bindSelf(cp.ValueField, s)
		}
		return &cp
	case fs.FieldFunc:
		return fs.FieldFunc(func() *fs.Field {
			out, _ := bindSelf(f(), s).(*fs.Field)
			return out
		})
	}
	return ref
}

func hasSelf(f *fs.Field) bool {
	if f == nil {
		return false
	}
	if _, ok := f.Nested.(selfRef); ok {
		return true
	}
	check := func(ref fs.FieldRef) bool {
		switch inner := ref.(type) {
		case *fs.Field:
			return hasSelf(inner)
		case fs.FieldFunc:
			// unknown until invoked; bindSelf wraps it
			return inner != nil
		}
		return false
	}
	if check(f.Inner) || check(f.KeyField) || check(f.ValueField) {
		return true
	}
	for _, e := range f.TupleFields {
		if check(e) {
			return true
		}
	}
	return false
}
