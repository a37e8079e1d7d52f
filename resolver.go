package fieldshape

// Resolver maps field declarations to structural type descriptors using a
// read-only dispatch table. A Resolver holds no mutable state, so one value
// can serve concurrent introspection calls. The zero value uses the
// built-in table.
type Resolver struct {
	table *DispatchTable
}

// NewResolver returns a resolver over table (the built-in table when nil).
func NewResolver(table *DispatchTable) *Resolver {
	return &Resolver{table: table}
}

// Table returns the dispatch table in use.
func (r *Resolver) Table() *DispatchTable {
	if r == nil || r.table == nil {
		return _defaultTable
	}
	return r.table
}

// Resolve returns the structural type of one field declaration. It never
// fails: kinds without a recognized ancestor resolve to Opaque.
func (r *Resolver) Resolve(ref FieldRef) Type {
	return r.resolveField(Materialize(ref))
}

func (r *Resolver) resolveField(f *Field) Type {
	if f == nil {
		return Opaque{}
	}
	base, ok := r.baseKind(f.Kind)
	if !ok {
		return Opaque{}
	}
	tbl := r.Table()
	if fn, ok := tbl.Extractor(base); ok {
		return fn(r, f)
	}
	def, _ := tbl.Default(base)
	return optionalIf(f, def)
}

// BaseKind returns the nearest recognized kind for k: k itself when present
// in the table, otherwise the first ancestor found breadth-first.
func (r *Resolver) BaseKind(k *Kind) (*Kind, bool) { return r.baseKind(k) }

func (r *Resolver) baseKind(k *Kind) (*Kind, bool) {
	tbl := r.Table()
	var found *Kind
	k.walkAncestors(func(a *Kind) bool {
		if tbl.Has(a) {
			found = a
			return false
		}
		return true
	})
	return found, found != nil
}
