package fieldshape

import "context"

// DefaultResolver returns a resolver over the built-in dispatch table.
func DefaultResolver() *Resolver { return &Resolver{} }

// Resolve resolves one field with the built-in dispatch table.
func Resolve(ref FieldRef) Type {
	return DefaultResolver().Resolve(ref)
}

// Introspect summarizes schema with the built-in dispatch table.
func Introspect(schema SchemaClass, opts Options) *Summary {
	return DefaultResolver().Introspect(schema, opts)
}

// IsSupported reports whether v is a schema class, a schema instance or a
// lazy schema reference, i.e. something Introspect can summarize once
// passed through ClassOf.
func IsSupported(v any) bool {
	switch v.(type) {
	case SchemaClass, SchemaInstance, SchemaFunc:
		return true
	default:
		return false
	}
}

type contextKey int

const _ctxKeyFailFast contextKey = iota

// WithFailFast returns a child context that makes loaders stop at the first
// issue instead of collecting all of them.
func WithFailFast(ctx context.Context, enabled bool) context.Context {
	return context.WithValue(ctx, _ctxKeyFailFast, enabled)
}

// IsFailFast reports whether the current load should stop on the first issue.
func IsFailFast(ctx context.Context) bool {
	b, _ := ctx.Value(_ctxKeyFailFast).(bool)
	return b
}
