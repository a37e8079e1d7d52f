package fieldshape

import "sort"

// FieldType is one resolved entry of a Summary.
type FieldType struct {
	Name  string
	Field *Field
	Type  Type
}

// Summary is the normalized shape of one schema. Excluded names never appear
// in Fields or Required.
type Summary struct {
	Schema   SchemaClass
	Fields   []FieldType // declaration order
	Required []string    // declaration order
	Excluded map[string]struct{}
}

// Lookup returns the resolved type of the named field.
func (s *Summary) Lookup(name string) (Type, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f.Type, true
		}
	}
	return nil, false
}

// Names returns field names in declaration order.
func (s *Summary) Names() []string {
	out := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		out[i] = f.Name
	}
	return out
}

// IsRequired reports whether name is in the required set.
func (s *Summary) IsRequired(name string) bool {
	for _, r := range s.Required {
		if r == name {
			return true
		}
	}
	return false
}

// RequiredSorted returns the required names sorted for deterministic output.
func (s *Summary) RequiredSorted() []string {
	out := append([]string(nil), s.Required...)
	sort.Strings(out)
	return out
}

// Introspect walks the declared fields of schema and resolves each retained
// one. The schema is only read; every call re-walks it.
func (r *Resolver) Introspect(schema SchemaClass, opts Options) *Summary {
	sum := &Summary{Schema: schema, Excluded: map[string]struct{}{}}
	if schema == nil {
		return sum
	}
	if opts.RemoveExcluded {
		sum.Excluded = ExcludedFieldNames(schema)
	}
	for _, nf := range schema.DeclaredFields() {
		if _, skip := sum.Excluded[nf.Name]; skip {
			continue
		}
		f := Materialize(nf.Field)
		sum.Fields = append(sum.Fields, FieldType{Name: nf.Name, Field: f, Type: r.resolveField(f)})
		if !opts.UseDeclaredRequired || (f != nil && f.Required) {
			sum.Required = append(sum.Required, nf.Name)
		}
	}
	return sum
}
