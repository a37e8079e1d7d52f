package dsl

import (
	"context"
	"encoding/json"
	"testing"

	fs "github.com/reoring/fieldshape"
)

func userWithFriends() *ObjectSchema {
	return Schema("User").
		Field("name", String()).Required().
		Field("age", Integer()).Nullable().
		Field("email", Email()).
		Field("role", EnumOf("Role", "admin", "member")).Default("member").
		Field("friends", List(NestedSelf())).
		Field("password", String()).LoadOnly().
		Field("created", DateTime()).DumpOnly().
		MustBuild()
}

func TestLoad_Valid(t *testing.T) {
	s := userWithFriends()
	out, err := s.Load(context.Background(), map[string]any{
		"name":     "alice",
		"age":      json.Number("30"),
		"email":    "alice@example.com",
		"friends":  []any{map[string]any{"name": "bob", "age": nil}},
		"password": "pw",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out["age"] != int64(30) || out["role"] != "member" {
		t.Fatalf("out: %#v", out)
	}
	friend := out["friends"].([]any)[0].(map[string]any)
	if friend["name"] != "bob" {
		t.Fatalf("friend: %#v", friend)
	}
}

func TestLoad_CollectsIssues(t *testing.T) {
	s := userWithFriends()
	_, err := s.Load(context.Background(), map[string]any{
		"age":     "x",
		"email":   "nope",
		"role":    "root",
		"friends": []any{map[string]any{"name": 1}},
		"created": "2024-01-01T00:00:00Z",
		"zzz":     true,
	})
	iss, ok := fs.AsIssues(err)
	if !ok {
		t.Fatalf("expected issues, got %v", err)
	}
	codes := map[string]string{}
	for _, it := range iss {
		codes[it.Path] = it.Code
	}
	want := map[string]string{
		"/name":           fs.CodeRequired,
		"/age":            fs.CodeInvalidType,
		"/email":          fs.CodeInvalidFormat,
		"/role":           fs.CodeInvalidEnum,
		"/friends/0/name": fs.CodeInvalidType,
		"/created":        fs.CodeUnknownKey,
		"/zzz":            fs.CodeUnknownKey,
	}
	for p, c := range want {
		if codes[p] != c {
			t.Errorf("%s: got %q want %q", p, codes[p], c)
		}
	}
	msgs := iss.Messages()
	if got := msgs["name"].([]string)[0]; got != "Missing data for required field." {
		t.Fatalf("message: %q", got)
	}
	if got := msgs["role"].([]string)[0]; got != "Must be one of: admin, member." {
		t.Fatalf("enum message: %q", got)
	}
}

func TestLoad_FailFastAndNull(t *testing.T) {
	s := userWithFriends()
	ctx := fs.WithFailFast(context.Background(), true)
	_, err := s.Load(ctx, map[string]any{"name": nil, "age": "x"})
	iss, _ := fs.AsIssues(err)
	if len(iss) != 1 || iss[0].Code != fs.CodeNull {
		t.Fatalf("fail-fast: %v", iss)
	}
}

func TestLoad_UnknownPolicies(t *testing.T) {
	s := Schema("S").Field("a", String()).Unknown(fs.UnknownExclude).MustBuild()
	out, err := s.Load(context.Background(), map[string]any{"a": "x", "b": 1})
	if err != nil || len(out) != 1 {
		t.Fatalf("exclude: %v %v", out, err)
	}
	out, err = s.New(WithUnknown(fs.UnknownInclude)).Load(context.Background(), map[string]any{"a": "x", "b": 1})
	if err != nil || out["b"] != 1 {
		t.Fatalf("include: %v %v", out, err)
	}
	if _, err := s.New(WithUnknown(fs.UnknownRaise)).Load(context.Background(), map[string]any{"b": 1}); err == nil {
		t.Fatalf("raise should fail")
	}
}

func TestLoad_PartialOnlyWithout(t *testing.T) {
	s := userWithFriends()
	if _, err := s.New(Partial()).Load(context.Background(), map[string]any{}); err != nil {
		t.Fatalf("partial: %v", err)
	}
	out, err := s.New(Only("name")).Load(context.Background(), map[string]any{"name": "a"})
	if err != nil || len(out) != 1 {
		t.Fatalf("only: %v %v", out, err)
	}
	if _, err := s.New(Without("name")).Load(context.Background(), map[string]any{}); err != nil {
		t.Fatalf("without: %v", err)
	}
}

func TestLoad_TupleMappingFormats(t *testing.T) {
	s := Schema("Shapes").
		Field("point", Tuple(String(), Integer(), Boolean())).
		Field("scores", Dict(String(), Float())).
		Field("id", UUID()).
		Field("net", IPv4Interface()).
		Field("price", Decimal()).
		MustBuild()

	out, err := s.Load(context.Background(), map[string]any{
		"point":  []any{"a", float64(1), true},
		"scores": map[string]any{"x": 1.5},
		"id":     "6ba7b810-9dad-11d1-80b4-00c04fd430c8",
		"net":    "10.0.0.1/24",
		"price":  json.Number("19.99"),
	})
	if err != nil {
		t.Fatalf("valid: %v", err)
	}
	if out["price"] != "19.99" {
		t.Fatalf("decimal: %#v", out["price"])
	}

	_, err = s.Load(context.Background(), map[string]any{
		"point":  []any{"a"},
		"scores": map[string]any{"x": "high"},
		"id":     "zzz",
	})
	iss, _ := fs.AsIssues(err)
	codes := map[string]string{}
	for _, it := range iss {
		codes[it.Path] = it.Code
	}
	if codes["/point"] != fs.CodeTooShort || codes["/scores/x"] != fs.CodeInvalidType || codes["/id"] != fs.CodeInvalidFormat {
		t.Fatalf("codes: %v", codes)
	}
}

func TestLoad_NotAnObject(t *testing.T) {
	_, err := userWithFriends().Load(context.Background(), []any{})
	iss, _ := fs.AsIssues(err)
	if len(iss) != 1 || iss[0].Path != "/" || iss[0].Code != fs.CodeInvalidType {
		t.Fatalf("root type: %v", iss)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := userWithFriends().Load(ctx, map[string]any{}); err != context.Canceled {
		t.Fatalf("canceled: %v", err)
	}
}

func TestDump_DropsExcludedAndLoadOnly(t *testing.T) {
	base := Schema("Base").
		Field("id", Integer()).
		Field("secret", String()).
		Exclude("secret").
		MustBuild()
	s := Schema("Account").Extends(base).
		Field("password", String()).LoadOnly().
		Field("kind", Constant("account")).
		Field("parent", NestedSelf()).
		MustBuild()

	out := s.Dump(map[string]any{
		"id":       1,
		"secret":   "s",
		"password": "pw",
		"extra":    true,
		"parent":   map[string]any{"id": 2, "password": "pw2"},
	})
	if _, ok := out["secret"]; ok {
		t.Fatalf("excluded field dumped")
	}
	if _, ok := out["password"]; ok {
		t.Fatalf("load-only field dumped")
	}
	if _, ok := out["extra"]; ok {
		t.Fatalf("undeclared key dumped")
	}
	if out["kind"] != "account" {
		t.Fatalf("constant: %v", out["kind"])
	}
	parent := out["parent"].(map[string]any)
	if _, ok := parent["password"]; ok || parent["id"] != 2 {
		t.Fatalf("nested dump: %v", parent)
	}
}

func TestLoad_IntegerRange(t *testing.T) {
	s := Schema("N").Field("n", Integer()).MustBuild()
	for _, v := range []any{1e19, -1e19, 9223372036854775807.0} {
		_, err := s.Load(context.Background(), map[string]any{"n": v})
		iss, ok := fs.AsIssues(err)
		if !ok || len(iss) != 1 || iss[0].Path != "/n" || iss[0].Code != fs.CodeInvalidType {
			t.Fatalf("%v: expected invalid_type at /n, got %v", v, err)
		}
	}
	out, err := s.Load(context.Background(), map[string]any{"n": -9223372036854775808.0})
	if err != nil || out["n"] != int64(-9223372036854775808) {
		t.Fatalf("min int64: %v %v", out, err)
	}
	out, err = s.Load(context.Background(), map[string]any{"n": 1e15})
	if err != nil || out["n"] != int64(1e15) {
		t.Fatalf("1e15: %v %v", out, err)
	}
}

func TestLoad_CustomTableKind(t *testing.T) {
	money := fs.NewKind("Money", fs.KindField)
	cents := fs.NewKind("Cents", fs.KindField)
	r := fs.NewResolver(fs.NewDispatchTable(
		fs.WithDefault(money, fs.Primitive{Name: fs.PrimDecimal}),
		fs.WithDefault(cents, fs.Primitive{Name: fs.PrimInteger}),
	))
	base := Schema("Priced").Resolver(r).
		Field("price", Custom(money)).Nullable().
		MustBuild()
	s := Schema("Order").Extends(base).
		Field("cents", Custom(cents)).
		Field("note", Custom(fs.NewKind("Note"))).
		MustBuild()

	if got, _ := s.Summary(fs.DefaultOptions()).Lookup("price"); got.String() != "optional[decimal]" {
		t.Fatalf("price type: %v", got)
	}

	out, err := s.Load(context.Background(), map[string]any{"price": "12.50", "cents": 3.0, "note": []any{1}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out["price"] != "12.50" || out["cents"] != int64(3) {
		t.Fatalf("out: %#v", out)
	}

	_, err = s.Load(context.Background(), map[string]any{"price": map[string]any{"not": "a decimal"}, "cents": "3"})
	iss, ok := fs.AsIssues(err)
	if !ok || len(iss) != 2 {
		t.Fatalf("expected 2 issues, got %v", err)
	}
	if iss[0].Path != "/price" || iss[0].Code != fs.CodeInvalidType || iss[1].Path != "/cents" {
		t.Fatalf("issues: %v", iss)
	}
}
