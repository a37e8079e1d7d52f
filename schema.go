package fieldshape

// Class is anything that can appear in a schema's base list. Only bases that
// also implement SchemaClass take part in exclusion inheritance.
type Class interface {
	ClassName() string
}

// SchemaClass is the consumer-side view of a declared schema.
type SchemaClass interface {
	Class
	// DeclaredFields returns the schema's declared fields in declaration order.
	DeclaredFields() []NamedField
	// Exclude returns the schema's own exclusion metadata (not inherited).
	Exclude() []string
	// Bases returns the direct ancestor classes in declared order.
	Bases() []Class
}

// SchemaInstance is a configured instance of a schema class.
type SchemaInstance interface {
	Class() SchemaClass
}

// NamedField pairs a declared name with its field reference.
type NamedField struct {
	Name  string
	Field FieldRef
}

// SchemaRef is the reference held by a nested field: a SchemaClass, a
// SchemaInstance, or a SchemaFunc producing one of those.
type SchemaRef any

// SchemaFunc is a lazily evaluated schema reference. It lets a schema refer
// to itself or to a schema declared later.
type SchemaFunc func() SchemaRef

// ClassOf returns the schema class behind ref. Factories are invoked once;
// a factory returning another factory is followed. Unknown values yield nil.
func ClassOf(ref SchemaRef) SchemaClass {
	for {
		switch r := ref.(type) {
		case nil:
			return nil
		case SchemaFunc:
			if r == nil {
				return nil
			}
			ref = r()
		case func() SchemaRef:
			if r == nil {
				return nil
			}
			ref = r()
		case SchemaInstance:
			return r.Class()
		case SchemaClass:
			return r
		default:
			return nil
		}
	}
}

// IsSchemaRef reports whether v can be used as a nested schema reference
// without invoking any factory.
func IsSchemaRef(v any) bool {
	switch v.(type) {
	case SchemaClass, SchemaInstance:
		return true
	default:
		return false
	}
}
