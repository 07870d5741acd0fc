package save

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// StatesField is the top-level field holding the saved object states.
const StatesField = "ObjectStates"

// Document is a parsed save file. States holds the decoded object states; they
// are written back into Root when the document is encoded, so changes made
// through any of these pointers end up in the output.
type Document struct {
	Root   *Object
	States []*Object
}

// Parse decodes a save document
func Parse(data []byte) (*Document, error) {
	root := NewObject()
	if err := json.Unmarshal(data, root); err != nil {
		return nil, err
	}
	states, err := root.Objects(StatesField)
	if err != nil {
		return nil, err
	}
	return &Document{Root: root, States: states}, nil
}

// ReadFile loads and parses a save document from disk
func ReadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc, nil
}

// Encode serializes the document with the current object states.
func (d *Document) Encode() ([]byte, error) {
	if d.Root.Has(StatesField) || len(d.States) > 0 {
		if err := d.Root.SetObjects(StatesField, d.States); err != nil {
			return nil, err
		}
	}
	return Marshal(d.Root)
}

// Marshal encodes v the way every file written by this tool is laid out:
// two-space indentation, non-ASCII text kept literal, no HTML escaping.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
