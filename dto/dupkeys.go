package dto

import (
	"bytes"
	"io"

	json "github.com/goccy/go-json"

	fs "github.com/reoring/fieldshape"
	"github.com/reoring/fieldshape/i18n"
)

// DuplicatePolicy controls how DecodeBytes treats repeated object keys.
type DuplicatePolicy int

const (
	// DuplicateIgnore keeps the last value.
	DuplicateIgnore DuplicatePolicy = iota
	// DuplicateError rejects the payload with duplicate_key issues.
	DuplicateError
)

type frame struct {
	object    bool
	keys      map[string]struct{}
	expectKey bool
	path      fs.PathRef
	key       string // last key read
	index     int    // next array index
}

// childPath returns the path of the value that is about to start in f.
func (f *frame) childPath() fs.PathRef {
	if f.object {
		return f.path.Field(f.key)
	}
	return f.path.Index(f.index)
}

// valueDone advances f past one complete value.
func (f *frame) valueDone() {
	if f.object {
		f.expectKey = true
		return
	}
	f.index++
}

// DuplicateKeys reports every repeated object key in data as a
// duplicate_key issue located at the repeated member.
func DuplicateKeys(data []byte) (fs.Issues, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var iss fs.Issues
	var stack []*frame
	top := func() *frame {
		if len(stack) == 0 {
			return nil
		}
		return stack[len(stack)-1]
	}
	open := func(object bool) {
		p := fs.RootPath()
		if t := top(); t != nil {
			p = t.childPath()
		}
		f := &frame{object: object, path: p, expectKey: object}
		if object {
			f.keys = map[string]struct{}{}
		}
		stack = append(stack, f)
	}
	closeFrame := func() {
		stack = stack[:len(stack)-1]
		if t := top(); t != nil {
			t.valueDone()
		}
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return iss, nil
		}
		if err != nil {
			return iss, err
		}
		switch v := tok.(type) {
		case json.Delim:
			switch v {
			case '{':
				open(true)
			case '[':
				open(false)
			default:
				closeFrame()
			}
			continue
		case string:
			if t := top(); t != nil && t.object && t.expectKey {
				p := t.path.Field(v)
				if _, dup := t.keys[v]; dup {
					iss = fs.AppendIssues(iss, p.Issue(fs.CodeDuplicateKey, i18n.T(fs.CodeDuplicateKey, nil), "key", v))
				}
				t.keys[v] = struct{}{}
				t.key = v
				t.expectKey = false
				continue
			}
		}
		if t := top(); t != nil {
			t.valueDone()
		}
	}
}
