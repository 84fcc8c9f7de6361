package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Row is one record of a dataset: an ordered mapping from column name to raw value.
// A key that was never set is absent; an empty string is present but blank.
type Row struct {
	keys   []string
	values map[string]string
}

// NewRow creates an empty row
func NewRow() *Row {
	return &Row{values: make(map[string]string)}
}

// NewRowFromValues zips headers with values. Missing trailing values become empty
// strings and extra values are dropped.
func NewRowFromValues(headers, values []string) *Row {
	row := &Row{
		keys:   make([]string, 0, len(headers)),
		values: make(map[string]string, len(headers)),
	}
	for i, h := range headers {
		v := ""
		if i < len(values) {
			v = values[i]
		}
		row.Set(h, v)
	}
	return row
}

// Get returns the value for key and whether it is present
func (r *Row) Get(key string) (string, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Value returns the value for key, or "" when absent
func (r *Row) Value(key string) string {
	return r.values[key]
}

// Has reports whether key is present
func (r *Row) Has(key string) bool {
	_, ok := r.values[key]
	return ok
}

// Set stores a value, appending the key when it is new
func (r *Row) Set(key, value string) {
	if r.values == nil {
		r.values = make(map[string]string)
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Delete removes key, keeping the order of the remaining keys
func (r *Row) Delete(key string) {
	if _, ok := r.values[key]; !ok {
		return
	}
	delete(r.values, key)
	for i, k := range r.keys {
		if k == key {
			r.keys = append(r.keys[:i], r.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the column names in insertion order
func (r *Row) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Len returns the number of present keys
func (r *Row) Len() int {
	return len(r.keys)
}

// Clone returns a deep copy
func (r *Row) Clone() *Row {
	c := &Row{
		keys:   make([]string, len(r.keys)),
		values: make(map[string]string, len(r.values)),
	}
	copy(c.keys, r.keys)
	for k, v := range r.values {
		c.values[k] = v
	}
	return c
}

// IsBlank reports whether every value is empty after trimming
func (r *Row) IsBlank() bool {
	for _, v := range r.values {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// Lookup resolves a logical field from a prioritized alias list. The first alias
// whose trimmed value is non-empty wins and its trimmed value is returned. When no
// alias has a value, the key is the first alias and the value is "".
func (r *Row) Lookup(aliases ...string) (key, value string) {
	for _, alias := range aliases {
		k := NormalizeHeader(alias)
		if v := strings.TrimSpace(r.values[k]); v != "" {
			return k, v
		}
	}
	if len(aliases) > 0 {
		return NormalizeHeader(aliases[0]), ""
	}
	return "", ""
}

// MarshalJSON encodes the row as a JSON object preserving column order
func (r *Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(r.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object preserving key order. Null values are
// treated as absent and non-string scalars keep their JSON text.
func (r *Row) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("row must be a JSON object")
	}

	r.keys = nil
	r.values = make(map[string]string)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("row key must be a string")
		}
		valTok, err := dec.Token()
		if err != nil {
			return err
		}
		switch v := valTok.(type) {
		case nil:
			continue
		case string:
			r.Set(key, v)
		case json.Number:
			r.Set(key, v.String())
		case bool:
			r.Set(key, fmt.Sprintf("%t", v))
		default:
			return fmt.Errorf("row value for %q must be a scalar", key)
		}
	}
	_, err = dec.Token()
	return err
}
