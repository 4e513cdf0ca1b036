package adconv

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// AttributeValue is the value of a label found on the page: either a single
// text or a list of texts.
type AttributeValue struct {
	Text  string
	Items []string
	list  bool
}

// TextValue returns a single-text attribute value.
func TextValue(s string) AttributeValue {
	return AttributeValue{Text: s}
}

// ListValue returns a list attribute value.
func ListValue(items []string) AttributeValue {
	return AttributeValue{Items: items, list: true}
}

// IsList reports whether the value holds a list of texts.
func (v AttributeValue) IsList() bool {
	return v.list
}

func (v AttributeValue) MarshalJSON() ([]byte, error) {
	if v.list {
		items := v.Items
		if items == nil {
			items = []string{}
		}
		return marshalNoEscape(items)
	}
	return marshalNoEscape(v.Text)
}

func (v *AttributeValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var items []string
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		*v = ListValue(items)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*v = TextValue(s)
	return nil
}

// Attribute is a single named value discovered on the page.
type Attribute struct {
	Name  string
	Value AttributeValue
}

// Attributes is an ordered mapping from label text to value. Labels come
// verbatim from the page, so the set of names is open. The zero value is
// an empty mapping ready to use.
type Attributes struct {
	entries []Attribute
	index   map[string]int
}

// Set stores v under name. An existing name keeps its position and has its
// value replaced.
func (a *Attributes) Set(name string, v AttributeValue) {
	if a.index == nil {
		a.index = make(map[string]int)
	}
	if i, ok := a.index[name]; ok {
		a.entries[i].Value = v
		return
	}
	a.index[name] = len(a.entries)
	a.entries = append(a.entries, Attribute{Name: name, Value: v})
}

// Get returns the value stored under name.
func (a *Attributes) Get(name string) (AttributeValue, bool) {
	i, ok := a.index[name]
	if !ok {
		return AttributeValue{}, false
	}
	return a.entries[i].Value, true
}

// Len returns the number of attributes.
func (a *Attributes) Len() int {
	return len(a.entries)
}

// All returns the attributes in insertion order.
func (a *Attributes) All() []Attribute {
	out := make([]Attribute, len(a.entries))
	copy(out, a.entries)
	return out
}

// Names returns the attribute names in insertion order.
func (a *Attributes) Names() []string {
	names := make([]string, len(a.entries))
	for i, e := range a.entries {
		names[i] = e.Name
	}
	return names
}

// MarshalJSON encodes the attributes as a JSON object in insertion order.
func (a Attributes) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range a.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := marshalNoEscape(e.Name)
		if err != nil {
			return nil, err
		}
		value, err := e.Value.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object keeping the order of its keys.
func (a *Attributes) UnmarshalJSON(data []byte) error {
	*a = Attributes{}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("attributes: expected object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("attributes: expected name, got %v", tok)
		}
		var v AttributeValue
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("attributes: %q: %w", name, err)
		}
		a.Set(name, v)
	}

	_, err = dec.Token()
	return err
}

// marshalNoEscape encodes v without escaping <, > and &, which are common in
// listing text.
func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
