package fieldshape

// FieldRef is either a live *Field or a zero-argument factory producing one.
type FieldRef interface {
	field() *Field
}

// FieldFunc is a lazily evaluated field declaration.
type FieldFunc func() *Field

func (fn FieldFunc) field() *Field {
	if fn == nil {
		return nil
	}
	return fn()
}

// Field is one declared member of a schema. The core treats it as immutable.
type Field struct {
	Kind *Kind

	AllowNone bool
	Required  bool
	LoadOnly  bool
	DumpOnly  bool

	Description string
	Default     any

	// List
	Inner FieldRef
	// Tuple
	TupleFields []FieldRef
	// Mapping / Dict
	KeyField   FieldRef
	ValueField FieldRef
	// Nested / Pluck
	Nested SchemaRef
	Many   bool
	// Pluck: the attribute of the nested schema that is exposed.
	PluckField string
	// Enum
	Enum *EnumSet
}

func (f *Field) field() *Field { return f }

// Materialize returns the live field behind ref, invoking a factory once.
func Materialize(ref FieldRef) *Field {
	if ref == nil {
		return nil
	}
	return ref.field()
}

// EnumSet is the declared member set of an enum field.
type EnumSet struct {
	Name    string
	Members []EnumMember
	// ByValue selects member values instead of names on the wire.
	ByValue bool
}

// EnumMember is a single named enum value.
type EnumMember struct {
	Name  string
	Value any
}

// NewEnumSet builds an enum set whose members' values equal their names.
func NewEnumSet(name string, members ...string) *EnumSet {
	es := &EnumSet{Name: name}
	for _, m := range members {
		es.Members = append(es.Members, EnumMember{Name: m, Value: m})
	}
	return es
}

// WireValues returns the values accepted on the wire, in declared order.
func (e *EnumSet) WireValues() []any {
	if e == nil {
		return nil
	}
	out := make([]any, 0, len(e.Members))
	for _, m := range e.Members {
		if e.ByValue {
			out = append(out, m.Value)
		} else {
			out = append(out, m.Name)
		}
	}
	return out
}

// Contains reports whether v is an accepted wire value.
func (e *EnumSet) Contains(v any) bool {
	for _, w := range e.WireValues() {
		if w == v {
			return true
		}
	}
	return false
}
