package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const testSchemas = `
schemas:
  - name: User
    fields:
      - {name: id, kind: UUID, required: true}
      - {name: email, kind: Email, allow_none: true}
      - {name: friends, kind: Nested, nested: User, many: true}
  - name: Post
    fields:
      - {name: title, kind: String, required: true}
      - {name: author, kind: Nested, nested: User}
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	c := NewRootCmd()
	var out, errOut bytes.Buffer
	c.SetOut(&out)
	c.SetErr(&errOut)
	c.SetIn(strings.NewReader(stdin))
	c.SetArgs(args)
	err := c.Execute()
	return out.String(), err
}

func TestInspect(t *testing.T) {
	file := writeFile(t, "schemas.yaml", testSchemas)

	out, err := run(t, "", "inspect", "-f", file, "User")
	require.NoError(t, err)
	assert.Contains(t, out, "optional[string]")
	assert.Contains(t, out, "list[nested[User]]")
	assert.NotContains(t, out, "Post")

	out, err = run(t, "", "inspect", "-f", file, "--required-from-fields")
	require.NoError(t, err)
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, " email ") {
			assert.Contains(t, line, "false")
		}
	}
	assert.Contains(t, out, "Post")
}

func TestInspect_Errors(t *testing.T) {
	_, err := run(t, "", "inspect")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no schema file")

	file := writeFile(t, "schemas.yaml", testSchemas)
	_, err = run(t, "", "inspect", "-f", file, "Nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"Nope"`)
}

func TestFileFromEnvironment(t *testing.T) {
	file := writeFile(t, "schemas.yaml", testSchemas)
	t.Setenv("FIELDSHAPE_FILE", file)
	t.Setenv("FIELDSHAPE_REQUIRED_FROM_FIELDS", "true")

	out, err := run(t, "", "jsonschema", "Post")
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, []any{"title"}, doc["required"])
}

func TestJSONSchema(t *testing.T) {
	file := writeFile(t, "schemas.yaml", testSchemas)
	out, err := run(t, "", "jsonschema", "-f", file, "User")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "User", doc["title"])
	props := doc["properties"].(map[string]any)
	friends := props["friends"].(map[string]any)
	assert.Equal(t, "#", friends["items"].(map[string]any)["$ref"])
	assert.ElementsMatch(t, []any{"id", "email", "friends"}, doc["required"])
}

func TestOpenAPI(t *testing.T) {
	file := writeFile(t, "schemas.yaml", testSchemas)

	out, err := run(t, "", "openapi", "-f", file, "--title", "Blog", "Post")
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "3.0.3", doc["openapi"])
	assert.Equal(t, "Blog", doc["info"].(map[string]any)["title"])
	schemas := doc["components"].(map[string]any)["schemas"].(map[string]any)
	assert.Contains(t, schemas, "Post")
	assert.Contains(t, schemas, "User")

	out, err = run(t, "", "openapi", "-f", file, "-o", "json")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(out)))

	_, err = run(t, "", "openapi", "-f", file, "-o", "xml")
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	file := writeFile(t, "schemas.yaml", testSchemas)
	good := writeFile(t, "good.json", `{"title": "hi", "author": {"id": "7f3c3f4e-8a53-4a43-9f3e-0c4d2f6f7b1a", "email": null}}`)

	out, err := run(t, "", "validate", "-f", file, "Post", good)
	require.NoError(t, err)
	assert.Equal(t, "ok\n", out)

	out, err = run(t, `{"author": {"id": "x"}}`, "validate", "-f", file, "Post", "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 issue(s)")
	assert.Contains(t, out, "/title")
	assert.Contains(t, out, "/author/id")

	_, err = run(t, `{}`, "validate", "-f", file, "--partial", "Post", "-")
	require.NoError(t, err)
}

func TestConfigFile(t *testing.T) {
	file := writeFile(t, "schemas.yaml", testSchemas)
	cfg := writeFile(t, "fieldshape.yaml", "file: "+file+"\n")

	out, err := run(t, "", "inspect", "--config", cfg, "Post")
	require.NoError(t, err)
	assert.Contains(t, out, "nested[User]")
}
