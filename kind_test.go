package fieldshape_test

import (
	"testing"

	fs "github.com/reoring/fieldshape"
)

func TestLookupBuiltinKind(t *testing.T) {
	for _, k := range fs.BuiltinKinds() {
		got, ok := fs.LookupBuiltinKind(k.Name())
		if !ok || got != k {
			t.Fatalf("lookup %s", k.Name())
		}
		if !k.IsA(fs.KindField) {
			t.Fatalf("%s does not derive from Field", k)
		}
	}
	if _, ok := fs.LookupBuiltinKind("Nope"); ok {
		t.Fatalf("unexpected kind")
	}
	if !fs.KindPluck.IsA(fs.KindNested) || fs.KindNested.IsA(fs.KindPluck) {
		t.Fatalf("pluck/nested relation")
	}
}

func TestUnknownPolicy_Parse(t *testing.T) {
	for _, s := range []string{"raise", "exclude", "include"} {
		p, ok := fs.ParseUnknownPolicy(s)
		if !ok || p.String() != s {
			t.Fatalf("%s -> %v", s, p)
		}
	}
	if _, ok := fs.ParseUnknownPolicy("bogus"); ok {
		t.Fatalf("bogus accepted")
	}
}
