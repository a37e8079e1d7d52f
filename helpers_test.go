package fieldshape_test

import (
	fs "github.com/reoring/fieldshape"
)

// testSchema is a minimal hand-declared schema class.
type testSchema struct {
	name    string
	fields  []fs.NamedField
	exclude []string
	bases   []fs.Class
}

func (s *testSchema) ClassName() string                { return s.name }
func (s *testSchema) DeclaredFields() []fs.NamedField { return s.fields }
func (s *testSchema) Exclude() []string               { return s.exclude }
func (s *testSchema) Bases() []fs.Class               { return s.bases }

// plainClass is a base that is not a schema (a mixin).
type plainClass string

func (c plainClass) ClassName() string { return string(c) }

type testInstance struct{ cls *testSchema }

func (i testInstance) Class() fs.SchemaClass { return i.cls }

func field(k *fs.Kind) *fs.Field { return &fs.Field{Kind: k} }

func nullable(k *fs.Kind) *fs.Field { return &fs.Field{Kind: k, AllowNone: true} }

func named(name string, f fs.FieldRef) fs.NamedField { return fs.NamedField{Name: name, Field: f} }
