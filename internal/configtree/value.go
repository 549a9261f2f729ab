// Package configtree models a settings document as an ordered, JSON-like
// value tree addressable by paths.
package configtree

import "strings"

// Kind identifies the semantic type of a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindList
	KindMap
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return "unknown"
	}
}

// Value is one node of a settings document. Maps preserve insertion order;
// that order is significant when the document is re-serialized.
type Value struct {
	kind     Kind
	boolVal  bool
	intVal   int64
	floatVal float64
	strVal   string
	items    []*Value
	keys     []string
	children map[string]*Value
}

// Null returns a null value.
func Null() *Value {
	return &Value{kind: KindNull}
}

// Bool returns a boolean value.
func Bool(b bool) *Value {
	return &Value{kind: KindBool, boolVal: b}
}

// Int returns an integer value.
func Int(i int64) *Value {
	return &Value{kind: KindInt, intVal: i}
}

// Float returns a floating-point value.
func Float(f float64) *Value {
	return &Value{kind: KindFloat, floatVal: f}
}

// String returns a string value.
func String(s string) *Value {
	return &Value{kind: KindString, strVal: s}
}

// List returns a list value holding the given items.
func List(items ...*Value) *Value {
	return &Value{kind: KindList, items: items}
}

// Map returns an empty ordered map value.
func Map() *Value {
	return &Value{kind: KindMap, children: make(map[string]*Value)}
}

// Kind returns the value's kind.
func (v *Value) Kind() Kind { return v.kind }

// BoolVal returns the boolean payload. Valid only for KindBool.
func (v *Value) BoolVal() bool { return v.boolVal }

// IntVal returns the integer payload. Valid only for KindInt.
func (v *Value) IntVal() int64 { return v.intVal }

// FloatVal returns the float payload. Valid only for KindFloat.
func (v *Value) FloatVal() float64 { return v.floatVal }

// StrVal returns the string payload. Valid only for KindString.
func (v *Value) StrVal() string { return v.strVal }

// Items returns the list elements. Valid only for KindList.
func (v *Value) Items() []*Value { return v.items }

// Append adds an element to a list value.
func (v *Value) Append(item *Value) {
	v.items = append(v.items, item)
}

// Set stores a child under key, preserving first-insertion order.
func (v *Value) Set(key string, child *Value) {
	if v.children == nil {
		v.children = make(map[string]*Value)
	}
	if _, exists := v.children[key]; !exists {
		v.keys = append(v.keys, key)
	}
	v.children[key] = child
}

// Get returns the child under key.
func (v *Value) Get(key string) (*Value, bool) {
	child, ok := v.children[key]
	return child, ok
}

// Keys returns map keys in insertion order.
func (v *Value) Keys() []string { return v.keys }

// Len returns the number of map entries or list elements.
func (v *Value) Len() int {
	switch v.kind {
	case KindMap:
		return len(v.keys)
	case KindList:
		return len(v.items)
	default:
		return 0
	}
}

// Lookup resolves a path from v, descending through map keys.
func (v *Value) Lookup(path Path) (*Value, bool) {
	cur := v
	for _, key := range path {
		if cur.kind != KindMap {
			return nil, false
		}
		child, ok := cur.children[key]
		if !ok {
			return nil, false
		}
		cur = child
	}
	return cur, true
}

// Equal reports deep equality. Map comparison respects key order.
func (v *Value) Equal(other *Value) bool {
	if v == nil || other == nil {
		return v == other
	}
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.boolVal == other.boolVal
	case KindInt:
		return v.intVal == other.intVal
	case KindFloat:
		return v.floatVal == other.floatVal
	case KindString:
		return v.strVal == other.strVal
	case KindList:
		if len(v.items) != len(other.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(other.items[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(v.keys) != len(other.keys) {
			return false
		}
		for i, key := range v.keys {
			if other.keys[i] != key {
				return false
			}
			if !v.children[key].Equal(other.children[key]) {
				return false
			}
		}
		return true
	}
	return false
}

// Clone returns a deep copy.
func (v *Value) Clone() *Value {
	if v == nil {
		return nil
	}
	switch v.kind {
	case KindList:
		items := make([]*Value, len(v.items))
		for i, item := range v.items {
			items[i] = item.Clone()
		}
		return &Value{kind: KindList, items: items}
	case KindMap:
		clone := Map()
		for _, key := range v.keys {
			clone.Set(key, v.children[key].Clone())
		}
		return clone
	default:
		copied := *v
		return &copied
	}
}

// Path addresses a leaf as the ordered key sequence from the document root.
// List elements are not individually addressable; a list is a single leaf.
type Path []string

// Child extends the path by one key, returning a new path.
func (p Path) Child(key string) Path {
	child := make(Path, len(p), len(p)+1)
	copy(child, p)
	return append(child, key)
}

// Key returns the terminal segment, or "" for the root path.
func (p Path) Key() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

// String renders the path with dot separators.
func (p Path) String() string {
	return strings.Join(p, ".")
}

// Equal reports elementwise equality.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// ParsePath splits a dot-separated path string.
func ParsePath(s string) Path {
	if s == "" {
		return Path{}
	}
	return Path(strings.Split(s, "."))
}
