// Package dsl declares field-based schemas for fieldshape.
//
// Overview
//   - Builder API: declare a schema class with Schema(name)/Field()/Required()/Nullable()/MustBuild().
//   - Field constructors: one per built-in kind (String(), Integer(), Email(), UUID()...), plus
//     containers List(), Tuple(), Dict()/DictAny(), Mapping(), Nested()/NestedMany()/NestedSelf(),
//     Pluck() and Enum()/EnumOf(). Custom(kind) covers user-defined kinds.
//   - Inheritance: Extends(base...) copies the base's declared fields first, then the schema's own;
//     Exclude(names...) metadata is inherited by every schema that extends this one.
//   - Load/Dump: a small validator for wire maps (required, null, type, format, enum, unknown keys)
//     and a dumper that drops excluded and load-only fields.
//
// Entry points
//   - Schema(name): create a builder; chain Field/Required/Exclude/Extends/Unknown then MustBuild()/Build().
//   - (*ObjectSchema).New(opts...): configured instance (WithUnknown, Partial, Only, Without).
//   - (*ObjectSchema).Summary(opts): fieldshape.Introspect over the schema.
//
// File layout (roles)
//   - fields.go: field constructors.
//   - object_builder.go: schemaBuilder/fieldStep and Build/MustBuild, inheritance and NestedSelf binding.
//   - object_core.go: ObjectSchema/Instance and Dump.
//   - load.go: Load and per-kind value checks.
//
// Example (quickstart)
//
//	package main
//
//	import (
//	    "context"
//	    "fmt"
//
//	    "github.com/reoring/fieldshape"
//	    g "github.com/reoring/fieldshape/dsl"
//	)
//
//	func main() {
//	    user := g.Schema("User").
//	        Field("name", g.String()).Required().
//	        Field("age", g.Integer()).Nullable().
//	        Field("tags", g.List(g.String())).
//	        Field("friends", g.List(g.NestedSelf())).
//	        MustBuild()
//
//	    sum := user.Summary(fieldshape.Options{UseDeclaredRequired: true})
//	    for _, f := range sum.Fields {
//	        fmt.Println(f.Name, f.Type) // friends list[nested[User]]
//	    }
//
//	    _, err := user.Load(context.Background(), map[string]any{"age": "x"})
//	    if iss, ok := fieldshape.AsIssues(err); ok {
//	        fmt.Println(iss.Messages()) // map[age:[Not a valid integer.] name:[Missing data for required field.]]
//	    }
//	}
//
// Example (inheritance and exclusion)
//
//	base := g.Schema("Base").
//	    Field("id", g.UUID()).Required().
//	    Field("password", g.String()).
//	    Exclude("password").
//	    MustBuild()
//	account := g.Schema("Account").Extends(base).
//	    Field("email", g.Email()).Required().
//	    MustBuild()
//	// account's summary holds id and email; password is excluded through Base.
//	_ = fieldshape.Introspect(account, fieldshape.DefaultOptions())
package dsl
