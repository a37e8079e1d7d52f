package fieldshape

// Kind identifies a field class. Kinds form an acyclic inheritance graph:
// a kind can only name bases that already exist when it is created.
// Identity is pointer identity; two kinds with the same name are distinct.
type Kind struct {
	name  string
	bases []*Kind
}

// NewKind declares a field kind derived from bases (in declared order).
// Nil bases are ignored.
func NewKind(name string, bases ...*Kind) *Kind {
	k := &Kind{name: name}
	for _, b := range bases {
		if b != nil {
			k.bases = append(k.bases, b)
		}
	}
	return k
}

// Name returns the kind's declared name.
func (k *Kind) Name() string {
	if k == nil {
		return ""
	}
	return k.name
}

// Bases returns a copy of the direct bases in declared order.
func (k *Kind) Bases() []*Kind {
	if k == nil {
		return nil
	}
	return append([]*Kind(nil), k.bases...)
}

func (k *Kind) String() string { return k.Name() }

// IsA reports whether k is other or derives from it.
func (k *Kind) IsA(other *Kind) bool {
	if k == nil || other == nil {
		return false
	}
	found := false
	k.walkAncestors(func(a *Kind) bool {
		if a == other {
			found = true
			return false
		}
		return true
	})
	return found
}

// walkAncestors visits k and then its ancestors breadth-first (own bases
// first, then grandparents). Each kind is visited once even when the graph
// has diamonds. fn returns false to stop.
func (k *Kind) walkAncestors(fn func(*Kind) bool) {
	if k == nil {
		return
	}
	seen := map[*Kind]struct{}{k: {}}
	queue := []*Kind{k}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if !fn(cur) {
			return
		}
		for _, b := range cur.bases {
			if _, ok := seen[b]; ok {
				continue
			}
			seen[b] = struct{}{}
			queue = append(queue, b)
		}
	}
}

// Built-in kinds. KindField is the root of every built-in kind and is never
// present in a dispatch table.
var (
	KindField = NewKind("Field")

	KindRaw       = NewKind("Raw", KindField)
	KindString    = NewKind("String", KindField)
	KindNumber    = NewKind("Number", KindField)
	KindBoolean   = NewKind("Boolean", KindField)
	KindDateTime  = NewKind("DateTime", KindField)
	KindDate      = NewKind("Date", KindField)
	KindTime      = NewKind("Time", KindField)
	KindTimeDelta = NewKind("TimeDelta", KindField)
	KindUUID      = NewKind("UUID", KindField)
	KindMethod    = NewKind("Method", KindField)
	KindFunction  = NewKind("Function", KindField)
	KindConstant  = NewKind("Constant", KindField)

	KindInteger = NewKind("Integer", KindNumber)
	KindFloat   = NewKind("Float", KindNumber)
	KindDecimal = NewKind("Decimal", KindNumber)

	KindEmail = NewKind("Email", KindString)
	KindURL   = NewKind("URL", KindString)

	KindNaiveDateTime = NewKind("NaiveDateTime", KindDateTime)
	KindAwareDateTime = NewKind("AwareDateTime", KindDateTime)

	KindIP            = NewKind("IP", KindField)
	KindIPv4          = NewKind("IPv4", KindIP)
	KindIPv6          = NewKind("IPv6", KindIP)
	KindIPInterface   = NewKind("IPInterface", KindField)
	KindIPv4Interface = NewKind("IPv4Interface", KindIPInterface)
	KindIPv6Interface = NewKind("IPv6Interface", KindIPInterface)

	KindList    = NewKind("List", KindField)
	KindTuple   = NewKind("Tuple", KindField)
	KindMapping = NewKind("Mapping", KindField)
	KindDict    = NewKind("Dict", KindMapping)
	KindNested  = NewKind("Nested", KindField)
	KindPluck   = NewKind("Pluck", KindNested)
	KindEnum    = NewKind("Enum", KindField)
)

// BuiltinKinds returns every built-in kind except KindField, in a stable order.
func BuiltinKinds() []*Kind {
	return []*Kind{
		KindRaw, KindString, KindNumber, KindBoolean, KindDateTime, KindDate, KindTime,
		KindTimeDelta, KindUUID, KindMethod, KindFunction, KindConstant,
		KindInteger, KindFloat, KindDecimal, KindEmail, KindURL,
		KindNaiveDateTime, KindAwareDateTime,
		KindIP, KindIPv4, KindIPv6, KindIPInterface, KindIPv4Interface, KindIPv6Interface,
		KindList, KindTuple, KindMapping, KindDict, KindNested, KindPluck, KindEnum,
	}
}

// LookupBuiltinKind finds a built-in kind by its declared name.
func LookupBuiltinKind(name string) (*Kind, bool) {
	if name == KindField.name {
		return KindField, true
	}
	for _, k := range BuiltinKinds() {
		if k.name == name {
			return k, true
		}
	}
	return nil, false
}
