package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
	"strings"
)

// Field is a single named value on a product record.
type Field struct {
	Key   string
	Value string
}

// Fields is an order-preserving mapping of field names to values. Insertion
// order is part of the output contract: JSON marshalling emits keys in the
// order they were first set, and unmarshalling preserves document order.
type Fields struct {
	fields []Field
	index  map[string]int
}

// Set adds a field or updates an existing one in place.
func (f *Fields) Set(key, value string) {
	if f.index == nil {
		f.index = make(map[string]int)
	}

	if i, ok := f.index[key]; ok {
		f.fields[i].Value = value

		return
	}

	f.index[key] = len(f.fields)
	f.fields = append(f.fields, Field{Key: key, Value: value})
}

// Get returns the value for key and whether it is present.
func (f *Fields) Get(key string) (string, bool) {
	if f.index == nil {
		return "", false
	}

	i, ok := f.index[key]
	if !ok {
		return "", false
	}

	return f.fields[i].Value, true
}

// Delete removes a field if present.
func (f *Fields) Delete(key string) {
	if f.index == nil {
		return
	}

	i, ok := f.index[key]
	if !ok {
		return
	}

	f.fields = append(f.fields[:i], f.fields[i+1:]...)
	delete(f.index, key)

	for j := i; j < len(f.fields); j++ {
		f.index[f.fields[j].Key] = j
	}
}

// Len returns the number of fields.
func (f *Fields) Len() int {
	return len(f.fields)
}

// Keys returns the field names in insertion order.
func (f *Fields) Keys() []string {
	keys := make([]string, len(f.fields))
	for i, fld := range f.fields {
		keys[i] = fld.Key
	}

	return keys
}

// All iterates the fields in insertion order.
func (f *Fields) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, fld := range f.fields {
			if !yield(fld.Key, fld.Value) {
				return
			}
		}
	}
}

// Clone returns an independent copy.
func (f *Fields) Clone() Fields {
	var out Fields
	for _, fld := range f.fields {
		out.Set(fld.Key, fld.Value)
	}

	return out
}

// MarshalJSON emits a JSON object with keys in insertion order.
func (f Fields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, fld := range f.fields {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(fld.Key)
		if err != nil {
			return nil, err
		}

		val, err := json.Marshal(fld.Value)
		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object keeping document key order. Scalar
// values are stored as their string form; nested objects and arrays are
// kept as raw JSON text.
func (f *Fields) UnmarshalJSON(data []byte) error {
	f.fields = nil
	f.index = nil

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}

	if tok == nil {
		return nil
	}

	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("fields: expected object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}

		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("fields: expected string key, got %v", keyTok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}

		val, err := decodeScalar(raw)
		if err != nil {
			return err
		}

		f.Set(key, val)
	}

	// Consume closing brace
	if _, err := dec.Token(); err != nil {
		return err
	}

	return nil
}

func decodeScalar(raw json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "", nil
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", err
		}

		return s, nil
	case 'n':
		return "", nil
	default:
		// Numbers, booleans, and nested structures keep their literal form.
		return strings.TrimSpace(string(trimmed)), nil
	}
}
