package jsonschema

import (
	"strconv"

	fs "github.com/reoring/fieldshape"
)

// unknownPolicyHolder is implemented by schema classes that declare how
// undeclared keys are treated.
type unknownPolicyHolder interface {
	UnknownPolicy() fs.UnknownPolicy
}

type exporter struct {
	r     *fs.Resolver
	opts  fs.Options
	root  fs.SchemaClass
	names map[fs.SchemaClass]string
	taken map[string]bool
	queue []fs.SchemaClass
}

// FromSummary renders schema as a JSON Schema document. Nested schemas go
// into "$defs" and are referenced; the root refers to itself as "#". A nil
// resolver uses the schema's own resolver when it has one, else the
// built-in dispatch table.
func FromSummary(r *fs.Resolver, schema fs.SchemaClass, opts fs.Options) (*Schema, error) {
	if h, ok := schema.(interface{ Resolver() *fs.Resolver }); ok && r == nil {
		r = h.Resolver()
	}
	if r == nil {
		r = fs.DefaultResolver()
	}
	e := &exporter{r: r, opts: opts, root: schema, names: map[fs.SchemaClass]string{}, taken: map[string]bool{}}
	out := e.object(schema)
	out.SchemaURI = Draft
	defs := map[string]*Schema{}
	// each pass may enqueue further schemas
	for len(e.queue) > 0 {
		cls := e.queue[0]
		e.queue = e.queue[1:]
		defs[e.names[cls]] = e.object(cls)
	}
	if len(defs) > 0 {
		out.Defs = defs
	}
	return out, nil
}

func (e *exporter) object(cls fs.SchemaClass) *Schema {
	sum := e.r.Introspect(cls, e.opts)
	s := &Schema{Type: "object", Properties: map[string]*Schema{}}
	if cls != nil {
		s.Title = cls.ClassName()
	}
	for _, f := range sum.Fields {
		p := e.typeSchema(f.Type)
		if f.Field != nil {
			p.Description = f.Field.Description
			if f.Field.Default != nil {
				p.Default = f.Field.Default
			}
		}
		s.Properties[f.Name] = p
	}
	if len(sum.Required) > 0 {
		s.Required = sum.RequiredSorted()
	}
	if u, ok := cls.(unknownPolicyHolder); ok && u.UnknownPolicy() == fs.UnknownRaise {
		s.AdditionalProperties = false
	}
	return s
}

func (e *exporter) ref(cls fs.SchemaClass) string {
	if cls == e.root {
		return "#"
	}
	if name, ok := e.names[cls]; ok {
		return "#/$defs/" + name
	}
	name := cls.ClassName()
	for i := 2; e.taken[name]; i++ {
		name = cls.ClassName() + strconv.Itoa(i)
	}
	e.taken[name] = true
	e.names[cls] = name
	e.queue = append(e.queue, cls)
	return "#/$defs/" + name
}

func (e *exporter) typeSchema(t fs.Type) *Schema {
	switch x := t.(type) {
	case fs.Primitive:
		return primitive(x.Name)
	case fs.Optional:
		return &Schema{AnyOf: []*Schema{e.typeSchema(x.Inner), {Type: "null"}}}
	case fs.List:
		return &Schema{Type: "array", Items: e.typeSchema(x.Elem)}
	case fs.Tuple:
		n := len(x.Elems)
		s := &Schema{Type: "array", MinItems: &n, MaxItems: &n}
		for _, el := range x.Elems {
			s.PrefixItems = append(s.PrefixItems, e.typeSchema(el))
		}
		return s
	case fs.Mapping:
		if x.Untyped() {
			return &Schema{Type: "object"}
		}
		s := &Schema{Type: "object", AdditionalProperties: e.typeSchema(x.Value)}
		if k := e.typeSchema(x.Key); k.Format != "" {
			s.PropertyNames = k
		}
		return s
	case fs.Nested:
		if x.Schema == nil {
			return &Schema{Type: "object"}
		}
		return &Schema{Ref: e.ref(x.Schema)}
	case fs.Enum:
		s := &Schema{Enum: x.Set.WireValues()}
		if x.Set != nil {
			s.Title = x.Set.Name
		}
		return s
	}
	return &Schema{}
}

func primitive(n fs.PrimitiveName) *Schema {
	switch n {
	case fs.PrimString:
		return &Schema{Type: "string"}
	case fs.PrimInteger:
		return &Schema{Type: "integer"}
	case fs.PrimFloat, fs.PrimDecimal:
		return &Schema{Type: "number"}
	case fs.PrimBoolean:
		return &Schema{Type: "boolean"}
	}
	return &Schema{Type: "string", Format: Format(n)}
}

// Format returns the JSON Schema "format" keyword for a string-encoded
// primitive, or "" when none applies.
func Format(n fs.PrimitiveName) string {
	switch n {
	case fs.PrimDateTime:
		return "date-time"
	case fs.PrimDate:
		return "date"
	case fs.PrimTime:
		return "time"
	case fs.PrimDuration:
		return "duration"
	case fs.PrimUUID:
		return "uuid"
	case fs.PrimURL:
		return "uri"
	case fs.PrimIPv4:
		return "ipv4"
	case fs.PrimIPv6:
		return "ipv6"
	}
	return ""
}
