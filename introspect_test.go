package fieldshape_test

import (
	"reflect"
	"testing"

	fs "github.com/reoring/fieldshape"
)

func userSchema() *testSchema {
	return &testSchema{name: "User", fields: []fs.NamedField{
		named("name", &fs.Field{Kind: fs.KindString, Required: true}),
		named("age", nullable(fs.KindInteger)),
		named("tags", &fs.Field{Kind: fs.KindList, Inner: field(fs.KindString)}),
	}}
}

func TestIntrospect_RequiredPolicies(t *testing.T) {
	s := userSchema()

	all := fs.Introspect(s, fs.Options{})
	if !reflect.DeepEqual(all.Required, []string{"name", "age", "tags"}) {
		t.Fatalf("all-required: %v", all.Required)
	}
	declared := fs.Introspect(s, fs.Options{UseDeclaredRequired: true})
	if !reflect.DeepEqual(declared.Required, []string{"name"}) {
		t.Fatalf("declared-required: %v", declared.Required)
	}
	if !reflect.DeepEqual(declared.Names(), []string{"name", "age", "tags"}) {
		t.Fatalf("names: %v", declared.Names())
	}
	age, _ := declared.Lookup("age")
	if age.String() != "optional[integer]" {
		t.Fatalf("age: %s", age)
	}
	tags, _ := declared.Lookup("tags")
	if tags.String() != "list[string]" {
		t.Fatalf("tags: %s", tags)
	}
}

func TestIntrospect_ExclusionUnionFromAncestors(t *testing.T) {
	a := &testSchema{name: "A", exclude: []string{"secret"}}
	b := &testSchema{name: "B", exclude: []string{"internal"}}
	child := &testSchema{
		name:  "Child",
		bases: []fs.Class{a, plainClass("Mixin"), b},
		fields: []fs.NamedField{
			named("id", field(fs.KindInteger)),
			named("secret", field(fs.KindString)),
			named("internal", field(fs.KindString)),
		},
	}
	ex := fs.ExcludedFieldNames(child)
	if len(ex) != 2 {
		t.Fatalf("excluded: %v", ex)
	}
	sum := fs.Introspect(child, fs.DefaultOptions())
	if !reflect.DeepEqual(sum.Names(), []string{"id"}) || !reflect.DeepEqual(sum.Required, []string{"id"}) {
		t.Fatalf("fields %v required %v", sum.Names(), sum.Required)
	}
	kept := fs.Introspect(child, fs.Options{})
	if len(kept.Fields) != 3 || len(kept.Excluded) != 0 {
		t.Fatalf("exclusion disabled should keep everything: %v", kept.Names())
	}
}

func TestIntrospect_Idempotent(t *testing.T) {
	s := userSchema()
	r := fs.DefaultResolver()
	first := r.Introspect(s, fs.DefaultOptions())
	second := r.Introspect(s, fs.DefaultOptions())
	if len(first.Fields) != len(second.Fields) {
		t.Fatalf("field count changed")
	}
	for i := range first.Fields {
		if !fs.Equal(first.Fields[i].Type, second.Fields[i].Type) {
			t.Fatalf("field %s changed", first.Fields[i].Name)
		}
	}
	if !reflect.DeepEqual(first.RequiredSorted(), []string{"age", "name", "tags"}) {
		t.Fatalf("sorted: %v", first.RequiredSorted())
	}
}

func TestIntrospect_NilSchema(t *testing.T) {
	sum := fs.Introspect(nil, fs.DefaultOptions())
	if len(sum.Fields) != 0 || sum.IsRequired("x") {
		t.Fatalf("nil schema should be empty")
	}
}

func TestClassOf_FollowsFactories(t *testing.T) {
	s := userSchema()
	ref := fs.SchemaFunc(func() fs.SchemaRef {
		return fs.SchemaFunc(func() fs.SchemaRef { return testInstance{s} })
	})
	if fs.ClassOf(ref) != s {
		t.Fatalf("ClassOf did not follow factories")
	}
	if fs.ClassOf(42) != nil {
		t.Fatalf("non-schema should yield nil")
	}
	if !fs.IsSupported(s) || !fs.IsSupported(testInstance{s}) || fs.IsSupported("User") {
		t.Fatalf("IsSupported mismatch")
	}
}
