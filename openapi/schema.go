package openapi

import (
	"github.com/getkin/kin-openapi/openapi3"

	fs "github.com/reoring/fieldshape"
	js "github.com/reoring/fieldshape/jsonschema"
)

// ComponentPrefix is where schema components are referenced from.
const ComponentPrefix = "#/components/schemas/"

func types(t string) *openapi3.Types { return &openapi3.Types{t} }

// typeSchema converts a structural descriptor. Nested schemas are delegated
// to ref, which registers them as components.
func typeSchema(t fs.Type, ref func(fs.SchemaClass) *openapi3.SchemaRef) *openapi3.SchemaRef {
	switch x := t.(type) {
	case fs.Primitive:
		return &openapi3.SchemaRef{Value: primitive(x.Name)}
	case fs.Optional:
		inner := typeSchema(x.Inner, ref)
		if inner.Ref != "" {
			// siblings of $ref are ignored in 3.0
			return &openapi3.SchemaRef{Value: &openapi3.Schema{
				Nullable: true,
				AllOf:    openapi3.SchemaRefs{inner},
			}}
		}
		cp := *inner.Value
		cp.Nullable = true
		return &openapi3.SchemaRef{Value: &cp}
	case fs.List:
		return &openapi3.SchemaRef{Value: &openapi3.Schema{
			Type:  types(openapi3.TypeArray),
			Items: typeSchema(x.Elem, ref),
		}}
	case fs.Tuple:
		n := uint64(len(x.Elems))
		s := &openapi3.Schema{
			Type:     types(openapi3.TypeArray),
			MinItems: n,
			MaxItems: &n,
		}
		items := &openapi3.Schema{}
		for _, el := range x.Elems {
			items.AnyOf = append(items.AnyOf, typeSchema(el, ref))
		}
		s.Items = &openapi3.SchemaRef{Value: items}
		return &openapi3.SchemaRef{Value: s}
	case fs.Mapping:
		s := &openapi3.Schema{Type: types(openapi3.TypeObject)}
		if x.Untyped() {
			yes := true
			s.AdditionalProperties = openapi3.AdditionalProperties{Has: &yes}
		} else {
			s.AdditionalProperties = openapi3.AdditionalProperties{Schema: typeSchema(x.Value, ref)}
		}
		return &openapi3.SchemaRef{Value: s}
	case fs.Nested:
		if x.Schema == nil {
			return &openapi3.SchemaRef{Value: &openapi3.Schema{Type: types(openapi3.TypeObject)}}
		}
		return ref(x.Schema)
	case fs.Enum:
		s := &openapi3.Schema{Enum: x.Set.WireValues()}
		if allStrings(s.Enum) {
			s.Type = types(openapi3.TypeString)
		}
		if x.Set != nil {
			s.Title = x.Set.Name
		}
		return &openapi3.SchemaRef{Value: s}
	}
	return &openapi3.SchemaRef{Value: &openapi3.Schema{}}
}

func primitive(n fs.PrimitiveName) *openapi3.Schema {
	switch n {
	case fs.PrimString:
		return &openapi3.Schema{Type: types(openapi3.TypeString)}
	case fs.PrimInteger:
		return &openapi3.Schema{Type: types(openapi3.TypeInteger)}
	case fs.PrimFloat:
		return &openapi3.Schema{Type: types(openapi3.TypeNumber), Format: "float"}
	case fs.PrimDecimal:
		return &openapi3.Schema{Type: types(openapi3.TypeNumber)}
	case fs.PrimBoolean:
		return &openapi3.Schema{Type: types(openapi3.TypeBoolean)}
	case fs.PrimIP:
		return &openapi3.Schema{Type: types(openapi3.TypeString), Format: "ipvanyaddress"}
	case fs.PrimIPInterface:
		return &openapi3.Schema{Type: types(openapi3.TypeString), Format: "ipvanyinterface"}
	case fs.PrimIPv4Interface:
		return &openapi3.Schema{Type: types(openapi3.TypeString), Format: "ipv4interface"}
	case fs.PrimIPv6Interface:
		return &openapi3.Schema{Type: types(openapi3.TypeString), Format: "ipv6interface"}
	}
	return &openapi3.Schema{Type: types(openapi3.TypeString), Format: js.Format(n)}
}

func allStrings(vs []any) bool {
	if len(vs) == 0 {
		return false
	}
	for _, v := range vs {
		if _, ok := v.(string); !ok {
			return false
		}
	}
	return true
}
