package dsl

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"

	fs "github.com/reoring/fieldshape"
	"github.com/reoring/fieldshape/codec"
	"github.com/reoring/fieldshape/i18n"
)

// Load validates data against the schema and returns the loaded object.
// Excluded and dump-only fields are treated as undeclared. Errors are
// fieldshape.Issues.
func (i *Instance) Load(ctx context.Context, data any) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l := &loader{failFast: fs.IsFailFast(ctx), r: i.schema.Resolver()}
	out := l.object(i.schema, data, fs.RootPath(), loadOpts{unknown: i.unknown, partial: i.partial, keep: i.active})
	if len(l.iss) > 0 {
		return nil, l.iss
	}
	return out, nil
}

type loadOpts struct {
	unknown fs.UnknownPolicy
	partial bool
	keep    func(string) bool
}

type loader struct {
	failFast bool
	r        *fs.Resolver
	iss      fs.Issues
}

func (l *loader) stop() bool { return l.failFast && len(l.iss) > 0 }

func (l *loader) add(p fs.PathRef, code string, data map[string]string, kv ...any) {
	l.iss = fs.AppendIssues(l.iss, p.Issue(code, i18n.T(code, data), kv...))
}

func (l *loader) object(cls fs.SchemaClass, data any, p fs.PathRef, o loadOpts) map[string]any {
	src, ok := data.(map[string]any)
	if !ok {
		l.add(p, fs.CodeInvalidType, map[string]string{"expected": "object"}, "expected", "object")
		return nil
	}
	out := make(map[string]any, len(src))
	excluded := fs.ExcludedFieldNames(cls)
	known := map[string]struct{}{}
	for _, nf := range cls.DeclaredFields() {
		if _, skip := excluded[nf.Name]; skip || (o.keep != nil && !o.keep(nf.Name)) {
			continue
		}
		f := fs.Materialize(nf.Field)
		if f == nil || f.DumpOnly {
			continue
		}
		known[nf.Name] = struct{}{}
		fp := p.Field(nf.Name)
		v, present := src[nf.Name]
		switch {
		case !present && f.Default != nil:
			out[nf.Name] = f.Default
		case !present:
			if f.Required && !o.partial {
				l.add(fp, fs.CodeRequired, nil)
			}
		default:
			if lv, ok := l.value(f, v, fp); ok {
				out[nf.Name] = lv
			}
		}
		if l.stop() {
			return nil
		}
	}

	var unknown []string
	for k := range src {
		if _, ok := known[k]; !ok {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	for _, k := range unknown {
		switch o.unknown {
		case fs.UnknownRaise:
			l.add(p.Field(k), fs.CodeUnknownKey, nil)
			if l.stop() {
				return nil
			}
		case fs.UnknownInclude:
			out[k] = src[k]
		}
	}
	return out
}

// value loads one present value. ok is false when an issue was recorded.
func (l *loader) value(f *fs.Field, v any, p fs.PathRef) (any, bool) {
	before := len(l.iss)
	out := l.load(f, v, p)
	return out, len(l.iss) == before
}

func (l *loader) load(f *fs.Field, v any, p fs.PathRef) any {
	if v == nil {
		if !f.AllowNone {
			l.add(p, fs.CodeNull, nil)
		}
		return nil
	}
	base, ok := l.baseKind(f.Kind)
	if !ok {
		return v
	}
	switch base {
	case fs.KindRaw, fs.KindMethod, fs.KindFunction:
		return v
	case fs.KindConstant:
		return f.Default
	case fs.KindBoolean:
		b, ok := v.(bool)
		if !ok {
			l.invalidType(p, "boolean")
		}
		return b
	case fs.KindInteger:
		n, ok := toInt(v)
		if !ok {
			l.invalidType(p, "integer")
		}
		return n
	case fs.KindNumber, fs.KindFloat:
		n, ok := toFloat(v)
		if !ok {
			l.invalidType(p, "number")
		}
		return n
	case fs.KindDecimal:
		s, ok := toDecimal(v)
		if !ok {
			l.invalidType(p, "decimal")
		}
		return s
	case fs.KindList:
		return l.list(f, v, p)
	case fs.KindTuple:
		return l.tuple(f, v, p)
	case fs.KindMapping, fs.KindDict:
		return l.mapping(f, v, p)
	case fs.KindNested:
		return l.nested(f, v, p)
	case fs.KindPluck:
		return l.pluck(f, v, p)
	case fs.KindEnum:
		if !enumContains(f.Enum, v) {
			var choices []string
			for _, w := range f.Enum.WireValues() {
				choices = append(choices, fmt.Sprint(w))
			}
			l.add(p, fs.CodeInvalidEnum, map[string]string{"choices": i18n.Choices(choices)}, "choices", choices)
		}
		return v
	}
	// string-like kinds
	s, ok := v.(string)
	if !ok {
		l.invalidType(p, "string")
		return v
	}
	if err := codec.Check(base, s); err != nil {
		name := codec.FormatName(base)
		it := p.Issue(fs.CodeInvalidFormat, i18n.T(fs.CodeInvalidFormat, map[string]string{"expected": name}), "format", name)
		it.Cause = err
		l.iss = fs.AppendIssues(l.iss, it)
	}
	return s
}

// _primitiveKinds maps a primitive descriptor to the built-in kind whose
// checks load it.
var _primitiveKinds = map[fs.PrimitiveName]*fs.Kind{
	fs.PrimString:        fs.KindString,
	fs.PrimInteger:       fs.KindInteger,
	fs.PrimFloat:         fs.KindFloat,
	fs.PrimDecimal:       fs.KindDecimal,
	fs.PrimBoolean:       fs.KindBoolean,
	fs.PrimDateTime:      fs.KindDateTime,
	fs.PrimDate:          fs.KindDate,
	fs.PrimTime:          fs.KindTime,
	fs.PrimDuration:      fs.KindTimeDelta,
	fs.PrimUUID:          fs.KindUUID,
	fs.PrimURL:           fs.KindURL,
	fs.PrimIP:            fs.KindIP,
	fs.PrimIPv4:          fs.KindIPv4,
	fs.PrimIPv6:          fs.KindIPv6,
	fs.PrimIPInterface:   fs.KindIPInterface,
	fs.PrimIPv4Interface: fs.KindIPv4Interface,
	fs.PrimIPv6Interface: fs.KindIPv6Interface,
}

// baseKind returns the built-in kind whose checks apply to k. A kind that
// resolves to a custom table entry is checked as that entry's primitive;
// anything else (opaque, custom extractors) loads unchecked.
func (l *loader) baseKind(k *fs.Kind) (*fs.Kind, bool) {
	base, ok := l.r.BaseKind(k)
	if !ok {
		return nil, false
	}
	if b, ok := fs.LookupBuiltinKind(base.Name()); ok && b == base {
		return base, true
	}
	def, _ := l.r.Table().Default(base)
	p, ok := def.(fs.Primitive)
	if !ok {
		return nil, false
	}
	pk, ok := _primitiveKinds[p.Name]
	return pk, ok
}

func (l *loader) invalidType(p fs.PathRef, expected string) {
	l.add(p, fs.CodeInvalidType, map[string]string{"expected": expected}, "expected", expected)
}

func (l *loader) list(f *fs.Field, v any, p fs.PathRef) any {
	xs, ok := v.([]any)
	if !ok {
		l.invalidType(p, "list")
		return v
	}
	inner := fs.Materialize(f.Inner)
	if inner == nil {
		return xs
	}
	out := make([]any, len(xs))
	for i, e := range xs {
		out[i] = l.load(inner, e, p.Index(i))
		if l.stop() {
			break
		}
	}
	return out
}

func (l *loader) tuple(f *fs.Field, v any, p fs.PathRef) any {
	xs, ok := v.([]any)
	if !ok {
		l.invalidType(p, "tuple")
		return v
	}
	want := strconv.Itoa(len(f.TupleFields))
	switch {
	case len(xs) < len(f.TupleFields):
		l.add(p, fs.CodeTooShort, map[string]string{"want": want}, "want", len(f.TupleFields))
		return xs
	case len(xs) > len(f.TupleFields):
		l.add(p, fs.CodeTooLong, map[string]string{"want": want}, "want", len(f.TupleFields))
		return xs
	}
	out := make([]any, len(xs))
	for i, ref := range f.TupleFields {
		out[i] = l.load(fs.Materialize(ref), xs[i], p.Index(i))
		if l.stop() {
			break
		}
	}
	return out
}

func (l *loader) mapping(f *fs.Field, v any, p fs.PathRef) any {
	m, ok := v.(map[string]any)
	if !ok {
		l.invalidType(p, "mapping")
		return v
	}
	key, val := fs.Materialize(f.KeyField), fs.Materialize(f.ValueField)
	if key == nil && val == nil {
		return m
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make(map[string]any, len(m))
	for _, k := range keys {
		kp := p.Field(k)
		if key != nil {
			l.load(key, k, kp)
		}
		e := m[k]
		if val != nil {
			e = l.load(val, e, kp)
		}
		out[k] = e
		if l.stop() {
			break
		}
	}
	return out
}

func (l *loader) nested(f *fs.Field, v any, p fs.PathRef) any {
	cls := fs.ClassOf(f.Nested)
	if cls == nil {
		if _, ok := v.(map[string]any); !ok {
			l.invalidType(p, "object")
		}
		return v
	}
	o := loadOpts{unknown: unknownOf(cls)}
	if !f.Many {
		return l.object(cls, v, p, o)
	}
	xs, ok := v.([]any)
	if !ok {
		l.invalidType(p, "list")
		return v
	}
	out := make([]any, len(xs))
	for i, e := range xs {
		out[i] = l.object(cls, e, p.Index(i), o)
		if l.stop() {
			break
		}
	}
	return out
}

// pluck loads the plucked attribute of the nested schema.
func (l *loader) pluck(f *fs.Field, v any, p fs.PathRef) any {
	cls := fs.ClassOf(f.Nested)
	if cls == nil {
		return v
	}
	var target *fs.Field
	for _, nf := range cls.DeclaredFields() {
		if nf.Name == f.PluckField {
			target = fs.Materialize(nf.Field)
			break
		}
	}
	if target == nil {
		return v
	}
	if !f.Many {
		return l.load(target, v, p)
	}
	xs, ok := v.([]any)
	if !ok {
		l.invalidType(p, "list")
		return v
	}
	out := make([]any, len(xs))
	for i, e := range xs {
		out[i] = l.load(target, e, p.Index(i))
	}
	return out
}

func unknownOf(cls fs.SchemaClass) fs.UnknownPolicy {
	if s, ok := cls.(*ObjectSchema); ok {
		return s.unknown
	}
	return fs.UnknownRaise
}

func toInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		if n != math.Trunc(n) || n < math.MinInt64 || n >= math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	}
	return 0, false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

// toDecimal keeps the decimal's textual form so no precision is lost.
func toDecimal(v any) (string, bool) {
	switch n := v.(type) {
	case json.Number:
		return n.String(), true
	case string:
		if _, err := strconv.ParseFloat(n, 64); err != nil {
			return "", false
		}
		return n, true
	}
	if f, ok := toFloat(v); ok {
		return strconv.FormatFloat(f, 'f', -1, 64), true
	}
	return "", false
}

func enumContains(set *fs.EnumSet, v any) bool {
	if set == nil {
		return true
	}
	if set.Contains(v) {
		return true
	}
	// wire numbers arrive as float64 or json.Number
	if f, ok := toFloat(v); ok {
		for _, w := range set.WireValues() {
			if wf, ok := toFloat(w); ok && wf == f {
				return true
			}
		}
	}
	return false
}
