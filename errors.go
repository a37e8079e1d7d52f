package fieldshape

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes produced while loading payloads.
const (
	CodeInvalidType   = "invalid_type"
	CodeRequired      = "required"
	CodeNull          = "null"
	CodeUnknownKey    = "unknown_key"
	CodeInvalidEnum   = "invalid_enum"
	CodeInvalidFormat = "invalid_format"
	CodeTooShort      = "too_short"
	CodeTooLong       = "too_long"
	CodeParseError    = "parse_error"
	CodeDuplicateKey  = "duplicate_key"
)

// Issue represents a single validation entry.
type Issue struct {
	Path    string `json:"path"` // JSON Pointer (for example: /items/2/price).
	Code    string `json:"code"` // One of the codes listed above.
	Message string `json:"message"`
	Hint    string `json:"hint,omitempty"` // Optional: remediation hints, format names, etc.
	Cause   error  `json:"-"`              // Optional: underlying error.
	// Params carries structured parameters (e.g., {"expected": "integer"}).
	Params map[string]any `json:"params,omitempty"`
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. invalid_type at /path
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Messages groups issue messages into a tree keyed by path segment, the
// shape field-based serializers report errors in:
//
//	{"name": ["Missing data for required field."], "friends": {"0": {"age": ["Not a valid integer."]}}}
//
// Root-level issues are stored under "_schema".
func (iss Issues) Messages() map[string]any {
	out := map[string]any{}
	for _, it := range iss {
		segs := splitPointer(it.Path)
		if len(segs) == 0 {
			segs = []string{"_schema"}
		}
		node := out
		for _, s := range segs[:len(segs)-1] {
			child, ok := node[s].(map[string]any)
			if !ok {
				child = map[string]any{}
				node[s] = child
			}
			node = child
		}
		last := segs[len(segs)-1]
		msgs, _ := node[last].([]string)
		node[last] = append(msgs, it.Message)
	}
	return out
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

func splitPointer(p string) []string {
	p = strings.TrimPrefix(p, "/")
	if p == "" {
		return nil
	}
	var out []string
	for _, s := range strings.Split(p, "/") {
		out = append(out, strings.ReplaceAll(strings.ReplaceAll(s, "~1", "/"), "~0", "~"))
	}
	return out
}
