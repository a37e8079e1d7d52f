// Package schemafile loads schema declarations from YAML or JSON files.
package schemafile

import (
	"bytes"
	"io"

	multierror "github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	fs "github.com/reoring/fieldshape"
	"github.com/reoring/fieldshape/dsl"
)

// Registry holds the kinds and schemas declared by one or more documents.
type Registry struct {
	kinds   map[string]*fs.Kind
	schemas map[string]*dsl.ObjectSchema
	order   []string
	table   *fs.DispatchTable
	r       *fs.Resolver
}

// Load parses data (YAML or JSON, possibly multi-document).
func Load(data []byte) (*Registry, error) {
	return LoadReader(bytes.NewReader(data))
}

// LoadReader is Load over a stream.
func LoadReader(r io.Reader) (*Registry, error) {
	docs, err := readAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "schemafile: decode")
	}
	var merged Document
	for _, d := range docs {
		merged.Kinds = append(merged.Kinds, d.Kinds...)
		merged.Schemas = append(merged.Schemas, d.Schemas...)
	}
	return build(merged)
}

// Names returns the schema names in declaration order.
func (r *Registry) Names() []string { return append([]string(nil), r.order...) }

// Schema returns the named schema.
func (r *Registry) Schema(name string) (*dsl.ObjectSchema, bool) {
	s, ok := r.schemas[name]
	return s, ok
}

// Kind returns a custom kind declared in the file.
func (r *Registry) Kind(name string) (*fs.Kind, bool) {
	k, ok := r.kinds[name]
	return k, ok
}

// Resolver returns a resolver whose table knows the file's typed kinds.
// Every schema of the registry summarizes and loads with it.
func (r *Registry) Resolver() *fs.Resolver { return r.r }

func (r *Registry) lookupKind(name string) (*fs.Kind, bool) {
	if k, ok := r.kinds[name]; ok {
		return k, true
	}
	return fs.LookupBuiltinKind(name)
}

func build(doc Document) (*Registry, error) {
	reg := &Registry{kinds: map[string]*fs.Kind{}, schemas: map[string]*dsl.ObjectSchema{}}
	var merr *multierror.Error
	var tableOpts []fs.TableOption

	for _, ks := range doc.Kinds {
		if ks.Name == "" {
			merr = multierror.Append(merr, errors.New("kind with empty name"))
			continue
		}
		if _, dup := reg.lookupKind(ks.Name); dup {
			merr = multierror.Append(merr, errors.Errorf("kind %q already declared", ks.Name))
			continue
		}
		var bases []*fs.Kind
		for _, b := range ks.Bases {
			bk, ok := reg.lookupKind(b)
			if !ok {
				merr = multierror.Append(merr, errors.Errorf("kind %q: unknown base %q", ks.Name, b))
				continue
			}
			bases = append(bases, bk)
		}
		if len(bases) == 0 && len(ks.Bases) == 0 {
			bases = append(bases, fs.KindField)
		}
		k := fs.NewKind(ks.Name, bases...)
		reg.kinds[ks.Name] = k
		if ks.Type != "" {
			t, ok := primitiveType(ks.Type)
			if !ok {
				merr = multierror.Append(merr, errors.Errorf("kind %q: unknown type %q", ks.Name, ks.Type))
				continue
			}
			tableOpts = append(tableOpts, fs.WithDefault(k, t))
		}
	}
	reg.table = fs.NewDispatchTable(tableOpts...)
	reg.r = fs.NewResolver(reg.table)

	specs := map[string]SchemaSpec{}
	for _, ss := range doc.Schemas {
		if ss.Name == "" {
			merr = multierror.Append(merr, errors.New("schema with empty name"))
			continue
		}
		if _, dup := specs[ss.Name]; dup {
			merr = multierror.Append(merr, errors.Errorf("schema %q already declared", ss.Name))
			continue
		}
		specs[ss.Name] = ss
		reg.order = append(reg.order, ss.Name)
	}

	state := map[string]int{} // 1 visiting, 2 done
	var visit func(name string) error
	visit = func(name string) error {
		switch state[name] {
		case 1:
			return errors.Errorf("schema %q: inheritance cycle", name)
		case 2:
			return nil
		}
		state[name] = 1
		defer func() { state[name] = 2 }()
		ss := specs[name]
		var bases []*dsl.ObjectSchema
		for _, b := range ss.Extends {
			if _, ok := specs[b]; !ok {
				return errors.Errorf("schema %q: unknown base %q", name, b)
			}
			if err := visit(b); err != nil {
				return err
			}
			if bs, ok := reg.schemas[b]; ok {
				bases = append(bases, bs)
			}
		}
		s, err := reg.buildSchema(ss, bases, specs)
		if err != nil {
			return err
		}
		reg.schemas[name] = s
		return nil
	}
	for _, name := range reg.order {
		if err := visit(name); err != nil {
			merr = multierror.Append(merr, err)
		}
	}
	if err := merr.ErrorOrNil(); err != nil {
		return nil, errors.Wrap(err, "schemafile")
	}
	return reg, nil
}

func (r *Registry) buildSchema(ss SchemaSpec, bases []*dsl.ObjectSchema, specs map[string]SchemaSpec) (*dsl.ObjectSchema, error) {
	b := dsl.Schema(ss.Name).Resolver(r.r).Extends(bases...).Exclude(ss.Exclude...)
	if ss.Unknown != "" {
		p, ok := fs.ParseUnknownPolicy(ss.Unknown)
		if !ok {
			return nil, errors.Errorf("schema %q: unknown policy %q", ss.Name, ss.Unknown)
		}
		b.Unknown(p)
	}
	var merr *multierror.Error
	for _, fspec := range ss.Fields {
		f, err := r.field(ss.Name, fspec, specs)
		if err != nil {
			merr = multierror.Append(merr, errors.Wrapf(err, "schema %q field %q", ss.Name, fspec.Name))
			continue
		}
		b.Field(fspec.Name, f)
	}
	if err := merr.ErrorOrNil(); err != nil {
		return nil, err
	}
	s, err := b.Build()
	if err != nil {
		return nil, errors.Wrapf(err, "schema %q", ss.Name)
	}
	return s, nil
}

func (r *Registry) field(schema string, spec FieldSpec, specs map[string]SchemaSpec) (*fs.Field, error) {
	k, ok := r.lookupKind(spec.Kind)
	if !ok {
		return nil, errors.Errorf("unknown kind %q", spec.Kind)
	}
	f := &fs.Field{
		Kind:        k,
		Required:    spec.Required,
		AllowNone:   spec.AllowNone,
		LoadOnly:    spec.LoadOnly,
		DumpOnly:    spec.DumpOnly,
		Default:     spec.Default,
		Description: spec.Description,
		Many:        spec.Many,
		PluckField:  spec.Pluck,
	}
	sub := func(s *FieldSpec) (fs.FieldRef, error) {
		if s == nil {
			return nil, nil
		}
		inner, err := r.field(schema, *s, specs)
		if err != nil {
			return nil, err
		}
		return inner, nil
	}
	var err error
	if f.Inner, err = sub(spec.Inner); err != nil {
		return nil, errors.Wrap(err, "inner")
	}
	if f.KeyField, err = sub(spec.Keys); err != nil {
		return nil, errors.Wrap(err, "keys")
	}
	if f.ValueField, err = sub(spec.Values); err != nil {
		return nil, errors.Wrap(err, "values")
	}
	for i := range spec.Items {
		item, err := sub(&spec.Items[i])
		if err != nil {
			return nil, errors.Wrapf(err, "items[%d]", i)
		}
		f.TupleFields = append(f.TupleFields, item)
	}
	if spec.Nested != "" {
		if _, ok := specs[spec.Nested]; !ok {
			return nil, errors.Errorf("unknown nested schema %q", spec.Nested)
		}
		name := spec.Nested
		f.Nested = fs.SchemaFunc(func() fs.SchemaRef {
			if s, ok := r.schemas[name]; ok {
				return s
			}
			return nil
		})
	}
	if len(spec.Enum) > 0 {
		f.Enum = fs.NewEnumSet(schema+"."+spec.Name, spec.Enum...)
	}
	return f, nil
}

func primitiveType(name string) (fs.Type, bool) {
	if name == "opaque" {
		return fs.Opaque{}, true
	}
	for _, p := range primitiveNames {
		if string(p) == name {
			return fs.Primitive{Name: p}, true
		}
	}
	return nil, false
}

var primitiveNames = []fs.PrimitiveName{
	fs.PrimString, fs.PrimInteger, fs.PrimFloat, fs.PrimDecimal, fs.PrimBoolean,
	fs.PrimDateTime, fs.PrimDate, fs.PrimTime, fs.PrimDuration, fs.PrimUUID, fs.PrimURL,
	fs.PrimIP, fs.PrimIPv4, fs.PrimIPv6, fs.PrimIPInterface, fs.PrimIPv4Interface, fs.PrimIPv6Interface,
}
