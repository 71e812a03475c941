package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Tag is a single key/value facet.
type Tag struct {
	Key   string
	Value string
}

// Tags is an ordered mapping of facets. It marshals to a JSON object and keeps source order.
type Tags []Tag

// Get returns the value stored under key.
func (t Tags) Get(key string) (string, bool) {
	for _, tag := range t {
		if tag.Key == key {
			return tag.Value, true
		}
	}

	return "", false
}

// Set replaces the value under key, or appends the pair when the key is new.
func (t Tags) Set(key, value string) Tags {
	for i := range t {
		if t[i].Key == key {
			t[i].Value = value
			return t
		}
	}

	return append(t, Tag{Key: key, Value: value})
}

// Values returns the tag values in order.
func (t Tags) Values() []string {
	values := make([]string, 0, len(t))
	for _, tag := range t {
		values = append(values, tag.Value)
	}

	return values
}

// Clone returns a copy that does not share storage with t.
func (t Tags) Clone() Tags {
	if t == nil {
		return Tags{}
	}

	out := make(Tags, len(t))
	copy(out, t)

	return out
}

// MarshalJSON writes the tags as an object, in order. A nil Tags becomes {}.
func (t Tags) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, tag := range t {
		if i > 0 {
			buf.WriteByte(',')
		}

		if err := writeJSONString(&buf, tag.Key); err != nil {
			return nil, err
		}

		buf.WriteByte(':')

		if err := writeJSONString(&buf, tag.Value); err != nil {
			return nil, err
		}
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object of string values, keeping key order.
func (t *Tags) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}

	if tok == nil {
		*t = Tags{}
		return nil
	}

	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("tags: expected object, got %v", tok)
	}

	out := Tags{}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}

		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("tags: unexpected key %v", keyTok)
		}

		var value *string
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("tags: value of %q: %w", key, err)
		}

		if value != nil {
			out = out.Set(key, *value)
		}
	}

	*t = out

	return nil
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(s); err != nil {
		return err
	}

	// Encode appends a newline.
	buf.Truncate(buf.Len() - 1)

	return nil
}
