package schemafile

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DuplicateKeyError reports a duplicate key found in a YAML mapping with both
// the first occurrence position and the duplicate occurrence position.
type DuplicateKeyError struct {
	Key       string
	FirstLine int
	FirstCol  int
	Line      int
	Col       int
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate YAML key %q at %d:%d (first at %d:%d)", e.Key, e.Line, e.Col, e.FirstLine, e.FirstCol)
}

// strictReader decodes a multi-document YAML (or JSON) stream into typed
// documents, rejecting duplicate keys first.
type strictReader struct {
	dec *yaml.Decoder
}

func newStrictReader(r io.Reader) *strictReader {
	return &strictReader{dec: yaml.NewDecoder(r)}
}

// next decodes the next document into out. It returns io.EOF when the stream
// is exhausted and ok=false for empty documents.
func (s *strictReader) next(out any) (ok bool, err error) {
	var root yaml.Node
	if err := s.dec.Decode(&root); err != nil {
		return false, err
	}
	if len(root.Content) == 0 {
		return false, nil
	}
	if err := checkDuplicates(root.Content[0]); err != nil {
		return false, err
	}
	if err := root.Decode(out); err != nil {
		return false, err
	}
	return true, nil
}

func checkDuplicates(n *yaml.Node) error {
	switch n.Kind {
	case yaml.DocumentNode, yaml.SequenceNode:
		for _, c := range n.Content {
			if err := checkDuplicates(c); err != nil {
				return err
			}
		}
	case yaml.MappingNode:
		first := make(map[string][2]int, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			if pos, dup := first[k.Value]; dup {
				return &DuplicateKeyError{Key: k.Value, FirstLine: pos[0], FirstCol: pos[1], Line: k.Line, Col: k.Column}
			}
			first[k.Value] = [2]int{k.Line, k.Column}
			if err := checkDuplicates(n.Content[i+1]); err != nil {
				return err
			}
		}
	}
	return nil
}

// readAll decodes every non-empty document of the stream.
func readAll(r io.Reader) ([]Document, error) {
	sr := newStrictReader(r)
	var out []Document
	for {
		var doc Document
		ok, err := sr.next(&doc)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return nil, err
		}
		if ok {
			out = append(out, doc)
		}
	}
}
