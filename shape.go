package fieldshape

import "strings"

// Type is a structural type descriptor. The set of variants is closed.
type Type interface {
	String() string
	isType()
}

// PrimitiveName names a scalar type.
type PrimitiveName string

const (
	PrimString        PrimitiveName = "string"
	PrimInteger       PrimitiveName = "integer"
	PrimFloat         PrimitiveName = "float"
	PrimDecimal       PrimitiveName = "decimal"
	PrimBoolean       PrimitiveName = "boolean"
	PrimDateTime      PrimitiveName = "datetime"
	PrimDate          PrimitiveName = "date"
	PrimTime          PrimitiveName = "time"
	PrimDuration      PrimitiveName = "duration"
	PrimUUID          PrimitiveName = "uuid"
	PrimURL           PrimitiveName = "url"
	PrimIP            PrimitiveName = "ip"
	PrimIPv4          PrimitiveName = "ipv4"
	PrimIPv6          PrimitiveName = "ipv6"
	PrimIPInterface   PrimitiveName = "ip_interface"
	PrimIPv4Interface PrimitiveName = "ipv4_interface"
	PrimIPv6Interface PrimitiveName = "ipv6_interface"
)

// Primitive is a scalar.
type Primitive struct {
	Name PrimitiveName
}

// Optional admits null in addition to Inner.
type Optional struct {
	Inner Type
}

// List is a homogeneous sequence.
type List struct {
	Elem Type
}

// Tuple is a fixed-arity sequence; Elems keeps declared order.
type Tuple struct {
	Elems []Type
}

// Mapping is a string-keyed object. Key and Value are both nil when the
// mapping is untyped.
type Mapping struct {
	Key   Type
	Value Type
}

// Nested references a schema by class identity. It is never unfolded.
type Nested struct {
	Schema SchemaClass
}

// Enum references a declared member set.
type Enum struct {
	Set *EnumSet
}

// Opaque is an unknown or unconstrained shape.
type Opaque struct{}

func (Primitive) isType() {}
func (Optional) isType()  {}
func (List) isType()      {}
func (Tuple) isType()     {}
func (Mapping) isType()   {}
func (Nested) isType()    {}
func (Enum) isType()      {}
func (Opaque) isType()    {}

func (p Primitive) String() string { return string(p.Name) }
func (o Optional) String() string  { return "optional[" + typeString(o.Inner) + "]" }
func (l List) String() string      { return "list[" + typeString(l.Elem) + "]" }

func (t Tuple) String() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = typeString(e)
	}
	return "tuple[" + strings.Join(parts, ", ") + "]"
}

func (m Mapping) String() string {
	if m.Untyped() {
		return "mapping"
	}
	return "mapping[" + typeString(m.Key) + ", " + typeString(m.Value) + "]"
}

// Untyped reports whether no key/value types were declared.
func (m Mapping) Untyped() bool { return m.Key == nil && m.Value == nil }

func (n Nested) String() string {
	if n.Schema == nil {
		return "nested[?]"
	}
	return "nested[" + n.Schema.ClassName() + "]"
}

func (e Enum) String() string {
	if e.Set == nil || e.Set.Name == "" {
		return "enum"
	}
	return "enum[" + e.Set.Name + "]"
}

func (Opaque) String() string { return "opaque" }

func typeString(t Type) string {
	if t == nil {
		return "opaque"
	}
	return t.String()
}

// MakeOptional wraps t so that null is admitted. Opaque and Optional are
// returned unchanged.
func MakeOptional(t Type) Type {
	switch t.(type) {
	case nil:
		return Opaque{}
	case Opaque, Optional:
		return t
	default:
		return Optional{Inner: t}
	}
}

// Unwrap strips one Optional layer and reports whether one was present.
func Unwrap(t Type) (Type, bool) {
	if o, ok := t.(Optional); ok {
		return o.Inner, true
	}
	return t, false
}

// Equal compares two descriptors structurally. Nested schemas compare by
// class identity and enum sets by pointer.
func Equal(a, b Type) bool {
	switch x := a.(type) {
	case nil:
		return b == nil
	case Primitive:
		y, ok := b.(Primitive)
		return ok && x.Name == y.Name
	case Optional:
		y, ok := b.(Optional)
		return ok && Equal(x.Inner, y.Inner)
	case List:
		y, ok := b.(List)
		return ok && Equal(x.Elem, y.Elem)
	case Tuple:
		y, ok := b.(Tuple)
		if !ok || len(x.Elems) != len(y.Elems) {
			return false
		}
		for i := range x.Elems {
			if !Equal(x.Elems[i], y.Elems[i]) {
				return false
			}
		}
		return true
	case Mapping:
		y, ok := b.(Mapping)
		return ok && Equal(x.Key, y.Key) && Equal(x.Value, y.Value)
	case Nested:
		y, ok := b.(Nested)
		return ok && x.Schema == y.Schema
	case Enum:
		y, ok := b.(Enum)
		return ok && x.Set == y.Set
	case Opaque:
		_, ok := b.(Opaque)
		return ok
	default:
		return false
	}
}
