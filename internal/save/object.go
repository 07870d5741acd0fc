package save

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Names of the discriminator values this tool understands.
const (
	ContainerName = "Bag"
	CardName      = "Card"
)

// Kind classifies an object state by its Name field
type Kind int

const (
	KindOther Kind = iota
	KindContainer
	KindCard
)

func (k Kind) String() string {
	switch k {
	case KindContainer:
		return "container"
	case KindCard:
		return "card"
	default:
		return "other"
	}
}

// Object is a generic JSON object that remembers the order of its fields.
// Values are kept as raw JSON so anything the tool does not touch is written
// back exactly as it was read.
type Object struct {
	fields []field
}

type field struct {
	key   string
	value json.RawMessage
}

// NewObject returns an empty object
func NewObject() *Object {
	return &Object{}
}

// Kind reports whether the object is a container, a card, or something else.
func (o *Object) Kind() Kind {
	name, _ := o.String("Name")
	switch name {
	case ContainerName:
		return KindContainer
	case CardName:
		return KindCard
	default:
		return KindOther
	}
}

// Len returns the number of fields
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.fields)
}

// Keys returns the field names in document order
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	keys := make([]string, len(o.fields))
	for i, f := range o.fields {
		keys[i] = f.key
	}
	return keys
}

// Has reports whether the field is present, even if it holds null.
func (o *Object) Has(key string) bool {
	return o.index(key) >= 0
}

// Raw returns the raw JSON of a field
func (o *Object) Raw(key string) (json.RawMessage, bool) {
	i := o.index(key)
	if i < 0 {
		return nil, false
	}
	return o.fields[i].value, true
}

// String returns a string field. The second result is false when the field is
// absent or does not hold a JSON string.
func (o *Object) String(key string) (string, bool) {
	raw, ok := o.Raw(key)
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil || isNull(raw) {
		return "", false
	}
	return s, true
}

// Decode unmarshals a field into v. Absent fields leave v untouched.
func (o *Object) Decode(key string, v any) (bool, error) {
	raw, ok := o.Raw(key)
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return true, fmt.Errorf("field %s: %w", key, err)
	}
	return true, nil
}

// Set encodes v and stores it under key, keeping the field's position if it
// already exists and appending it otherwise.
func (o *Object) Set(key string, v any) error {
	raw, err := encodeValue(v)
	if err != nil {
		return fmt.Errorf("field %s: %w", key, err)
	}
	o.SetRaw(key, raw)
	return nil
}

// SetRaw stores already encoded JSON under key
func (o *Object) SetRaw(key string, raw json.RawMessage) {
	value := append(json.RawMessage(nil), raw...)
	if i := o.index(key); i >= 0 {
		o.fields[i].value = value
		return
	}
	o.fields = append(o.fields, field{key: key, value: value})
}

// Objects decodes an array of objects stored under key. An absent or null
// field yields an empty slice.
func (o *Object) Objects(key string) ([]*Object, error) {
	raw, ok := o.Raw(key)
	if !ok || isNull(raw) {
		return nil, nil
	}
	var objs []*Object
	if err := json.Unmarshal(raw, &objs); err != nil {
		return nil, fmt.Errorf("field %s: %w", key, err)
	}
	return objs, nil
}

// SetObjects replaces the array stored under key
func (o *Object) SetObjects(key string, objs []*Object) error {
	if objs == nil {
		objs = []*Object{}
	}
	return o.Set(key, objs)
}

// Clone returns a deep copy that shares nothing with o.
func (o *Object) Clone() *Object {
	if o == nil {
		return NewObject()
	}
	c := &Object{fields: make([]field, len(o.fields))}
	for i, f := range o.fields {
		c.fields[i] = field{key: f.key, value: append(json.RawMessage(nil), f.value...)}
	}
	return c
}

// index is safe on a nil object, which is what a null array element decodes to.
func (o *Object) index(key string) int {
	if o == nil {
		return -1
	}
	for i, f := range o.fields {
		if f.key == key {
			return i
		}
	}
	return -1
}

// UnmarshalJSON reads a JSON object preserving field order. Duplicate keys
// keep the position of the first occurrence and the value of the last.
func (o *Object) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}

	o.fields = o.fields[:0]
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", tok)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("field %s: %w", key, err)
		}
		o.SetRaw(key, value)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// MarshalJSON writes the fields back in their stored order.
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range o.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := encodeValue(f.key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		if len(f.value) == 0 {
			buf.WriteString("null")
		} else {
			buf.Write(f.value)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// encodeValue marshals v without HTML escaping and without a trailing newline.
func encodeValue(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func isNull(raw []byte) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
