package dsl

import (
	fs "github.com/reoring/fieldshape"
)

func of(k *fs.Kind) *fs.Field { return &fs.Field{Kind: k} }

// Scalars.

func String() *fs.Field        { return of(fs.KindString) }
func Integer() *fs.Field       { return of(fs.KindInteger) }
func Float() *fs.Field         { return of(fs.KindFloat) }
func Decimal() *fs.Field       { return of(fs.KindDecimal) }
func Number() *fs.Field        { return of(fs.KindNumber) }
func Boolean() *fs.Field       { return of(fs.KindBoolean) }
func DateTime() *fs.Field      { return of(fs.KindDateTime) }
func NaiveDateTime() *fs.Field { return of(fs.KindNaiveDateTime) }
func AwareDateTime() *fs.Field { return of(fs.KindAwareDateTime) }
func Date() *fs.Field          { return of(fs.KindDate) }
func Time() *fs.Field          { return of(fs.KindTime) }
func TimeDelta() *fs.Field     { return of(fs.KindTimeDelta) }
func UUID() *fs.Field          { return of(fs.KindUUID) }
func Email() *fs.Field         { return of(fs.KindEmail) }
func URL() *fs.Field           { return of(fs.KindURL) }
func IP() *fs.Field            { return of(fs.KindIP) }
func IPv4() *fs.Field          { return of(fs.KindIPv4) }
func IPv6() *fs.Field          { return of(fs.KindIPv6) }
func IPInterface() *fs.Field   { return of(fs.KindIPInterface) }
func IPv4Interface() *fs.Field { return of(fs.KindIPv4Interface) }
func IPv6Interface() *fs.Field { return of(fs.KindIPv6Interface) }

// Raw accepts any value unchanged.
func Raw() *fs.Field { return of(fs.KindRaw) }

// Method, Function and Constant are computed on dump; they load as Raw.
func Method() *fs.Field   { return &fs.Field{Kind: fs.KindMethod, DumpOnly: true} }
func Function() *fs.Field { return &fs.Field{Kind: fs.KindFunction, DumpOnly: true} }

// Constant always dumps (and loads) v.
func Constant(v any) *fs.Field { return &fs.Field{Kind: fs.KindConstant, Default: v} }

// List declares a homogeneous list of inner.
func List(inner fs.FieldRef) *fs.Field {
	return &fs.Field{Kind: fs.KindList, Inner: inner}
}

// Tuple declares a fixed-arity list with one field per position.
func Tuple(elems ...fs.FieldRef) *fs.Field {
	return &fs.Field{Kind: fs.KindTuple, TupleFields: elems}
}

// Dict declares a typed string-keyed mapping.
func Dict(keys, values fs.FieldRef) *fs.Field {
	return &fs.Field{Kind: fs.KindDict, KeyField: keys, ValueField: values}
}

// DictAny declares an untyped dict.
func DictAny() *fs.Field { return of(fs.KindDict) }

// Mapping is Dict with the Mapping kind. Either side may be nil.
func Mapping(keys, values fs.FieldRef) *fs.Field {
	return &fs.Field{Kind: fs.KindMapping, KeyField: keys, ValueField: values}
}

// Nested embeds another schema. ref is a schema, an instance, or a
// fieldshape.SchemaFunc for schemas declared later.
func Nested(ref fs.SchemaRef) *fs.Field {
	return &fs.Field{Kind: fs.KindNested, Nested: ref}
}

// NestedMany embeds a list of another schema.
func NestedMany(ref fs.SchemaRef) *fs.Field {
	return &fs.Field{Kind: fs.KindNested, Nested: ref, Many: true}
}

type selfRef struct{}

// NestedSelf refers to the schema being built. Build replaces the marker with
// the built schema.
func NestedSelf() *fs.Field {
	return &fs.Field{Kind: fs.KindNested, Nested: selfRef{}}
}

// Pluck exposes a single attribute of a nested schema.
func Pluck(ref fs.SchemaRef, field string) *fs.Field {
	return &fs.Field{Kind: fs.KindPluck, Nested: ref, PluckField: field}
}

// Enum declares an enum field over set.
func Enum(set *fs.EnumSet) *fs.Field {
	return &fs.Field{Kind: fs.KindEnum, Enum: set}
}

// EnumOf declares an enum field whose members are the given names.
func EnumOf(name string, members ...string) *fs.Field {
	return Enum(fs.NewEnumSet(name, members...))
}

// Custom declares a field of a user-defined kind.
func Custom(k *fs.Kind) *fs.Field { return of(k) }

// Lazy defers the field declaration until it is first resolved.
func Lazy(fn func() *fs.Field) fs.FieldRef { return fs.FieldFunc(fn) }

// Nullable returns a copy of f that admits null.
func Nullable(f *fs.Field) *fs.Field {
	cp := *f
	cp.AllowNone = true
	return &cp
}

// Describe returns a copy of f with a description.
func Describe(f *fs.Field, text string) *fs.Field {
	cp := *f
	cp.Description = text
	return &cp
}
