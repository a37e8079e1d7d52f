package fieldshape

// ExtractFunc resolves a field whose base kind needs more than a default
// descriptor. It receives the resolver so that element fields can be
// resolved recursively, and is responsible for its own optional wrapping.
type ExtractFunc func(r *Resolver, f *Field) Type

// DispatchTable maps recognized kinds to extraction functions and default
// descriptors. It has no mutators; share it freely across goroutines.
type DispatchTable struct {
	extract  map[*Kind]ExtractFunc
	defaults map[*Kind]Type
}

// TableOption customizes a table under construction.
type TableOption func(*DispatchTable)

// WithDefault registers (or replaces) the default descriptor for k.
func WithDefault(k *Kind, t Type) TableOption {
	return func(d *DispatchTable) {
		if k == nil {
			return
		}
		if t == nil {
			t = Opaque{}
		}
		d.defaults[k] = t
	}
}

// WithExtractor registers (or replaces) the extraction function for k. The
// kind becomes recognized even without a default.
func WithExtractor(k *Kind, fn ExtractFunc) TableOption {
	return func(d *DispatchTable) {
		if k == nil {
			return
		}
		if fn == nil {
			delete(d.extract, k)
			return
		}
		d.extract[k] = fn
		if _, ok := d.defaults[k]; !ok {
			d.defaults[k] = Opaque{}
		}
	}
}

// WithoutKind removes k from the table so that it resolves through its bases.
func WithoutKind(k *Kind) TableOption {
	return func(d *DispatchTable) {
		delete(d.extract, k)
		delete(d.defaults, k)
	}
}

// Set in init; Resolver methods reachable from the extractors read it.
var _defaultTable *DispatchTable

func init() { _defaultTable = newBuiltinTable() }

// DefaultDispatchTable returns the shared built-in table.
func DefaultDispatchTable() *DispatchTable { return _defaultTable }

// NewDispatchTable copies the built-in table and applies opts.
func NewDispatchTable(opts ...TableOption) *DispatchTable {
	d := &DispatchTable{
		extract:  make(map[*Kind]ExtractFunc, len(_defaultTable.extract)),
		defaults: make(map[*Kind]Type, len(_defaultTable.defaults)),
	}
	for k, fn := range _defaultTable.extract {
		d.extract[k] = fn
	}
	for k, t := range _defaultTable.defaults {
		d.defaults[k] = t
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Has reports whether k itself (not an ancestor) is recognized.
func (d *DispatchTable) Has(k *Kind) bool {
	_, ok := d.defaults[k]
	return ok
}

// Default returns the default descriptor registered for k.
func (d *DispatchTable) Default(k *Kind) (Type, bool) {
	t, ok := d.defaults[k]
	return t, ok
}

// Extractor returns the extraction function registered for k, if any.
func (d *DispatchTable) Extractor(k *Kind) (ExtractFunc, bool) {
	fn, ok := d.extract[k]
	return fn, ok
}

// Kinds returns the recognized kinds (unordered).
func (d *DispatchTable) Kinds() []*Kind {
	out := make([]*Kind, 0, len(d.defaults))
	for k := range d.defaults {
		out = append(out, k)
	}
	return out
}

func newBuiltinTable() *DispatchTable {
	prim := func(n PrimitiveName) Type { return Primitive{Name: n} }
	d := &DispatchTable{
		defaults: map[*Kind]Type{
			KindString:        prim(PrimString),
			KindEmail:         prim(PrimString),
			KindURL:           prim(PrimURL),
			KindInteger:       prim(PrimInteger),
			KindFloat:         prim(PrimFloat),
			KindNumber:        prim(PrimFloat),
			KindDecimal:       prim(PrimDecimal),
			KindBoolean:       prim(PrimBoolean),
			KindDateTime:      prim(PrimDateTime),
			KindNaiveDateTime: prim(PrimDateTime),
			KindAwareDateTime: prim(PrimDateTime),
			KindDate:          prim(PrimDate),
			KindTime:          prim(PrimTime),
			KindTimeDelta:     prim(PrimDuration),
			KindUUID:          prim(PrimUUID),
			KindIP:            prim(PrimIP),
			KindIPv4:          prim(PrimIPv4),
			KindIPv6:          prim(PrimIPv6),
			KindIPInterface:   prim(PrimIPInterface),
			KindIPv4Interface: prim(PrimIPv4Interface),
			KindIPv6Interface: prim(PrimIPv6Interface),

			KindList:    List{Elem: Opaque{}},
			KindTuple:   Tuple{},
			KindMapping: Mapping{},
			KindDict:    Mapping{},
			KindNested:  Mapping{},
			KindPluck:   Mapping{},
			KindEnum:    Enum{},

			KindRaw:      Opaque{},
			KindMethod:   Opaque{},
			KindFunction: Opaque{},
			KindConstant: Opaque{},
		},
		extract: map[*Kind]ExtractFunc{
			KindList:    extractList,
			KindTuple:   extractTuple,
			KindMapping: extractMapping,
			KindDict:    extractMapping,
			KindNested:  extractNested,
			KindPluck:   extractPluck,
			KindEnum:    extractEnum,
		},
	}
	return d
}

func optionalIf(f *Field, t Type) Type {
	if f.AllowNone {
		return MakeOptional(t)
	}
	return t
}

func extractList(r *Resolver, f *Field) Type {
	inner := Materialize(f.Inner)
	if inner == nil {
		return optionalIf(f, List{Elem: Opaque{}})
	}
	// Nested elements are referenced by class, never resolved further, so
	// list-of-self schemas terminate.
	if base, ok := r.baseKind(inner.Kind); ok && base == KindNested && !inner.Many {
		if cls := ClassOf(inner.Nested); cls != nil {
			return optionalIf(f, List{Elem: Nested{Schema: cls}})
		}
	}
	return optionalIf(f, List{Elem: r.resolveField(inner)})
}

func extractTuple(r *Resolver, f *Field) Type {
	elems := make([]Type, len(f.TupleFields))
	for i, ref := range f.TupleFields {
		elems[i] = r.Resolve(ref)
	}
	return optionalIf(f, Tuple{Elems: elems})
}

func extractMapping(r *Resolver, f *Field) Type {
	if f.KeyField != nil && f.ValueField != nil {
		return optionalIf(f, Mapping{Key: r.Resolve(f.KeyField), Value: r.Resolve(f.ValueField)})
	}
	return optionalIf(f, Mapping{})
}

func extractNested(r *Resolver, f *Field) Type {
	cls := ClassOf(f.Nested)
	if cls == nil {
		return optionalIf(f, Mapping{})
	}
	var t Type = Nested{Schema: cls}
	if f.Many {
		t = List{Elem: t}
	}
	return optionalIf(f, t)
}

// extractPluck resolves the plucked attribute of the nested schema. The
// nested schema's declared fields are read, but nothing is resolved beyond
// the one plucked field.
func extractPluck(r *Resolver, f *Field) Type {
	cls := ClassOf(f.Nested)
	if cls == nil || f.PluckField == "" {
		return extractNested(r, f)
	}
	var t Type = Opaque{}
	for _, nf := range cls.DeclaredFields() {
		if nf.Name == f.PluckField {
			inner := Materialize(nf.Field)
			if inner != nil && inner.Kind != nil && inner.Kind.IsA(KindNested) {
				// a plucked nested field stays a reference
				if c := ClassOf(inner.Nested); c != nil {
					t = Nested{Schema: c}
					if inner.Many {
						t = List{Elem: t}
					}
				}
			} else {
				t = r.resolveField(inner)
			}
			break
		}
	}
	if f.Many {
		t = List{Elem: t}
	}
	return optionalIf(f, t)
}

func extractEnum(_ *Resolver, f *Field) Type {
	return Enum{Set: f.Enum}
}
