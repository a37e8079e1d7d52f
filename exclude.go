package fieldshape

// ExcludedFieldNames returns the schema's own exclusion metadata unioned with
// that of every ancestor which is itself a schema class. Class hierarchies
// are assumed acyclic.
func ExcludedFieldNames(schema SchemaClass) map[string]struct{} {
	out := map[string]struct{}{}
	if schema == nil {
		return out
	}
	for _, name := range schema.Exclude() {
		out[name] = struct{}{}
	}
	for _, base := range schema.Bases() {
		bs, ok := base.(SchemaClass)
		if !ok {
			continue
		}
		for name := range ExcludedFieldNames(bs) {
			out[name] = struct{}{}
		}
	}
	return out
}
