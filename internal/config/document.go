package config

import (
	"fmt"
	"strings"
)

// Pos identifies where a document or attribute was declared. Line is zero
// when the source format does not expose positions.
type Pos struct {
	File string
	Line int
}

// String renders the position as "file:line", or just the file name when no
// line is known.
func (p Pos) String() string {
	if p.Line > 0 {
		return fmt.Sprintf("%s:%d", p.File, p.Line)
	}
	return p.File
}

// Attribute is a single key/value pair of a Document.
//
// Value holds one of: string, bool, int64, float64, []any (a list of
// scalars), *Document (a nested table) or []*Document (a repeated table or
// block).
type Attribute struct {
	Key   string
	Value any
	Pos   Pos
}

// Document is an ordered collection of attributes decoded from one file or
// one nested table/block within it.
type Document struct {
	Pos   Pos
	attrs []*Attribute
	index map[string]int
}

// NewDocument creates an empty document declared at pos.
func NewDocument(pos Pos) *Document {
	return &Document{Pos: pos, index: make(map[string]int)}
}

// Set stores a value under key. Setting a key twice is a loader bug: both
// supported syntaxes already reject duplicate keys.
func (d *Document) Set(key string, value any, pos Pos) {
	if _, exists := d.index[key]; exists {
		panic(fmt.Sprintf("config: attribute %q set twice in %s", key, d.Pos))
	}
	d.index[key] = len(d.attrs)
	d.attrs = append(d.attrs, &Attribute{Key: key, Value: value, Pos: pos})
}

// Append adds child to the repeated table stored under key, creating it on
// first use.
func (d *Document) Append(key string, child *Document, pos Pos) error {
	if i, exists := d.index[key]; exists {
		list, ok := d.attrs[i].Value.([]*Document)
		if !ok {
			return fmt.Errorf("%s: %q is both an attribute and a repeated block", pos, key)
		}
		d.attrs[i].Value = append(list, child)
		return nil
	}
	d.Set(key, []*Document{child}, pos)
	return nil
}

// Child returns the nested document stored under key, creating it on first
// use.
func (d *Document) Child(key string, pos Pos) (*Document, error) {
	if i, exists := d.index[key]; exists {
		child, ok := d.attrs[i].Value.(*Document)
		if !ok {
			return nil, fmt.Errorf("%s: %q is both an attribute and a labeled block", pos, key)
		}
		return child, nil
	}
	child := NewDocument(pos)
	d.Set(key, child, pos)
	return child, nil
}

// Lookup returns the attribute stored under key.
func (d *Document) Lookup(key string) (*Attribute, bool) {
	i, ok := d.index[key]
	if !ok {
		return nil, false
	}
	return d.attrs[i], true
}

// Attributes returns all attributes in declaration order.
func (d *Document) Attributes() []*Attribute {
	return d.attrs
}

// Keys returns all attribute keys in declaration order.
func (d *Document) Keys() []string {
	keys := make([]string, len(d.attrs))
	for i, a := range d.attrs {
		keys[i] = a.Key
	}
	return keys
}

// Len returns the number of attributes.
func (d *Document) Len() int {
	return len(d.attrs)
}

// KindOf names the dynamic type of an attribute value for diagnostics.
func KindOf(v any) string {
	switch v.(type) {
	case string:
		return "string"
	case bool:
		return "bool"
	case int64:
		return "integer"
	case float64:
		return "float"
	case []any:
		return "list"
	case *Document:
		return "table"
	case []*Document:
		return "list of tables"
	default:
		return strings.TrimPrefix(fmt.Sprintf("%T", v), "*")
	}
}
