// Package fieldshape derives structural type descriptions from field-based
// schema declarations so that HTTP validation and OpenAPI layers can
// document and check them.
//
// - Kinds: field classes with declared bases (NewKind); built-ins mirror the
//   usual serializer hierarchy (Integer derives from Number, Email from String...).
// - Resolve: one field -> one Type (Primitive/Optional/List/Tuple/Mapping/Nested/Enum/Opaque).
//   Derived kinds resolve through their nearest recognized ancestor; anything
//   unknown becomes Opaque.
// - Introspect: a schema class -> Summary (ordered field types, required and
//   excluded sets). Exclusion metadata is inherited across schema bases.
// - Issues: the error model used by payload loading (JSON Pointer, code, message).
//
// Design policy:
// - Keep only the core and its public types in the root package.
// - Place the declaration DSL under dsl/, renderers under jsonschema/ and
//   openapi/, framework glue under dto/ and middleware/, file loading under
//   schemafile/, and the CLI under cmd/fieldshape.
// - Nested schemas are referenced by class, never unfolded, so recursive
//   schemas terminate without cycle detection.
//
// Typical usage:
//
//	user := dsl.Schema("User").
//	    Field("name", dsl.String()).Required().
//	    Field("age", dsl.Integer()).Nullable().
//	    Field("tags", dsl.List(dsl.String())).
//	    MustBuild()
//	sum := fieldshape.Introspect(user, fieldshape.DefaultOptions())
//	t, _ := sum.Lookup("age") // optional[integer]
package fieldshape
