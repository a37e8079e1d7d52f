package jsonschema_test

import (
	"strings"
	"testing"

	fs "github.com/reoring/fieldshape"
	g "github.com/reoring/fieldshape/dsl"
	js "github.com/reoring/fieldshape/jsonschema"
)

func TestFromSummary_ObjectAndDefs(t *testing.T) {
	address := g.Schema("Address").
		Field("city", g.String()).Required().
		MustBuild()
	user := g.Schema("User").
		Field("name", g.Describe(g.String(), "display name")).Required().
		Field("age", g.Integer()).Nullable().
		Field("born", g.Date()).
		Field("home", g.Nested(address)).
		Field("work", g.Nested(address)).
		Field("friends", g.List(g.NestedSelf())).
		Field("point", g.Tuple(g.Float(), g.Float())).
		Field("labels", g.Dict(g.String(), g.String())).
		Field("color", g.EnumOf("Color", "red", "green")).
		Unknown(fs.UnknownExclude).
		MustBuild()

	s, err := js.FromSummary(nil, user, fs.Options{UseDeclaredRequired: true, RemoveExcluded: true})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if s.Title != "User" || s.Type != "object" || s.SchemaURI != js.Draft {
		t.Fatalf("root: %+v", s)
	}
	if len(s.Required) != 1 || s.Required[0] != "name" {
		t.Fatalf("required: %v", s.Required)
	}
	if s.AdditionalProperties != nil {
		t.Fatalf("exclude policy should allow extra keys")
	}
	if p := s.Properties["name"]; p.Type != "string" || p.Description != "display name" {
		t.Fatalf("name: %+v", p)
	}
	age := s.Properties["age"]
	if len(age.AnyOf) != 2 || age.AnyOf[0].Type != "integer" || age.AnyOf[1].Type != "null" {
		t.Fatalf("age: %+v", age)
	}
	if s.Properties["born"].Format != "date" {
		t.Fatalf("born format")
	}
	if s.Properties["home"].Ref != "#/$defs/Address" || s.Properties["work"].Ref != "#/$defs/Address" {
		t.Fatalf("nested refs: %q %q", s.Properties["home"].Ref, s.Properties["work"].Ref)
	}
	if s.Properties["friends"].Items.Ref != "#" {
		t.Fatalf("self ref: %q", s.Properties["friends"].Items.Ref)
	}
	if len(s.Defs) != 1 || s.Defs["Address"].AdditionalProperties != false {
		t.Fatalf("defs: %v", s.Defs)
	}
	pt := s.Properties["point"]
	if *pt.MinItems != 2 || *pt.MaxItems != 2 || len(pt.PrefixItems) != 2 {
		t.Fatalf("tuple: %+v", pt)
	}
	if v, ok := s.Properties["labels"].AdditionalProperties.(*js.Schema); !ok || v.Type != "string" {
		t.Fatalf("labels: %+v", s.Properties["labels"])
	}
	if enum := s.Properties["color"].Enum; len(enum) != 2 || enum[0] != "red" {
		t.Fatalf("enum: %v", enum)
	}
}

func TestFromSummary_NameCollisionAndMarshal(t *testing.T) {
	a := g.Schema("Item").Field("x", g.String()).MustBuild()
	b := g.Schema("Item").Field("y", g.Integer()).MustBuild()
	root := g.Schema("Order").
		Field("a", g.Nested(a)).
		Field("b", g.Nested(b)).
		MustBuild()
	s, err := root.JSONSchema(false)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if s.Properties["a"].Ref != "#/$defs/Item" || s.Properties["b"].Ref != "#/$defs/Item2" {
		t.Fatalf("refs: %q %q", s.Properties["a"].Ref, s.Properties["b"].Ref)
	}
	out, err := js.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(out), `"$defs":{`) || !strings.Contains(string(out), `"required":["a","b"]`) {
		t.Fatalf("json: %s", out)
	}
	pretty, _ := js.MarshalIndent(s)
	if !strings.Contains(string(pretty), "\n  \"title\": \"Order\"") {
		t.Fatalf("indent: %s", pretty)
	}
}
