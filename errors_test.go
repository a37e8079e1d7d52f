package fieldshape_test

import (
	"errors"
	"fmt"
	"testing"

	fs "github.com/reoring/fieldshape"
)

func TestIssues_ErrorSummary(t *testing.T) {
	iss := fs.Issues{
		{Path: "/a", Code: fs.CodeInvalidType},
		{Path: "/b", Code: fs.CodeUnknownKey},
		{Path: "/c", Code: fs.CodeTooShort},
		{Path: "/d", Code: fs.CodeTooLong},
	}
	if got := iss.Error(); got != "invalid_type at /a; unknown_key at /b; too_short at /c; ... (total 4)" {
		t.Fatalf("summary: %q", got)
	}
}

func TestIssues_MessagesTree(t *testing.T) {
	root := fs.RootPath()
	iss := fs.Issues{
		root.Field("name").Issue(fs.CodeRequired, "Missing data for required field."),
		root.Field("friends").Index(0).Field("age").Issue(fs.CodeInvalidType, "Not a valid integer.", "expected", "integer"),
		root.Issue(fs.CodeParseError, "Invalid input."),
	}
	m := iss.Messages()
	if msgs := m["name"].([]string); len(msgs) != 1 {
		t.Fatalf("name: %v", m["name"])
	}
	age := m["friends"].(map[string]any)["0"].(map[string]any)["age"].([]string)
	if age[0] != "Not a valid integer." {
		t.Fatalf("age: %v", age)
	}
	if _, ok := m["_schema"]; !ok {
		t.Fatalf("root issue missing: %v", m)
	}
	if iss[1].Params["expected"] != "integer" {
		t.Fatalf("params: %v", iss[1].Params)
	}
}

func TestAsIssues_Wrapped(t *testing.T) {
	err := fmt.Errorf("load: %w", fs.Issues{{Path: "/x", Code: fs.CodeNull}})
	iss, ok := fs.AsIssues(err)
	if !ok || len(iss) != 1 {
		t.Fatalf("AsIssues failed")
	}
	if _, ok := fs.AsIssues(errors.New("plain")); ok {
		t.Fatalf("plain error is not Issues")
	}
}

func TestPathRef_EscapingAndRebase(t *testing.T) {
	p := fs.RootPath().Field("a/b").Field("c~d").Index(2)
	if p.Pointer() != "/a~1b/c~0d/2" {
		t.Fatalf("pointer: %s", p.Pointer())
	}
	iss := fs.RebaseIssues(fs.Issues{{Path: "/x"}, {Path: "/"}}, "/items/1")
	if iss[0].Path != "/items/1/x" || iss[1].Path != "/items/1" {
		t.Fatalf("rebase: %v", iss)
	}
	m := fs.Issues{{Path: "/a~1b", Message: "m"}}.Messages()
	if _, ok := m["a/b"]; !ok {
		t.Fatalf("unescaped key missing: %v", m)
	}
}

func TestPathRef_EmptyKeySegment(t *testing.T) {
	if got := fs.RootPath().Field("a").Field("").Pointer(); got != "/a/" {
		t.Fatalf("nested empty key: %s", got)
	}
	if got := fs.RootPath().Field("").Field("b").Pointer(); got != "//b" {
		t.Fatalf("empty key then b: %s", got)
	}
	m := fs.Issues{{Path: "/a/", Message: "m"}}.Messages()
	a, ok := m["a"].(map[string]any)
	if !ok {
		t.Fatalf("nested node missing: %v", m)
	}
	if msgs, _ := a[""].([]string); len(msgs) != 1 {
		t.Fatalf("empty key messages: %v", a)
	}
}
