package workflow

import "strconv"

// ValueKind discriminates the closed set of configuration value shapes.
type ValueKind int

const (
	ValueNone ValueKind = iota
	ValueString
	ValueNumber
	ValueBool
	ValueList
	ValueMap
)

// Value is a tagged variant holding one configuration value: a scalar
// string, number or boolean, a list, or a nested mapping. The parser only
// produces strings, lists and maps; tool emitters coerce explicitly via
// the accessors below.
type Value struct {
	kind ValueKind
	str  string
	num  float64
	b    bool
	list []Value
	dict map[string]Value
	keys []string // dict insertion order
}

func StringValue(s string) Value  { return Value{kind: ValueString, str: s} }
func NumberValue(f float64) Value { return Value{kind: ValueNumber, num: f} }
func BoolValue(b bool) Value      { return Value{kind: ValueBool, b: b} }

func ListValue(items ...Value) Value {
	return Value{kind: ValueList, list: items}
}

// NewMapValue returns an empty mapping value.
func NewMapValue() Value {
	return Value{kind: ValueMap, dict: make(map[string]Value)}
}

// Kind returns the variant tag.
func (v Value) Kind() ValueKind { return v.kind }

// IsZero reports whether the value is absent.
func (v Value) IsZero() bool { return v.kind == ValueNone }

// Str returns the scalar string form of the value, or "" for non-scalars.
func (v Value) Str() string {
	switch v.kind {
	case ValueString:
		return v.str
	case ValueNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case ValueBool:
		if v.b {
			return "True"
		}
		return "False"
	}
	return ""
}

// Int parses the value as an integer, returning def when absent or
// unparseable.
func (v Value) Int(def int) int {
	switch v.kind {
	case ValueNumber:
		return int(v.num)
	case ValueString:
		if n, err := strconv.Atoi(v.str); err == nil {
			return n
		}
	}
	return def
}

// Bool parses the value as a boolean ("True"/"False" in documents),
// returning def when absent or unparseable.
func (v Value) Bool(def bool) bool {
	switch v.kind {
	case ValueBool:
		return v.b
	case ValueString:
		switch v.str {
		case "True", "true", "1":
			return true
		case "False", "false", "0":
			return false
		}
	}
	return def
}

// List returns the value as a list. A scalar or mapping is treated as a
// single-element list so that repeated and singular document elements can
// be consumed uniformly.
func (v Value) List() []Value {
	switch v.kind {
	case ValueList:
		return v.list
	case ValueNone:
		return nil
	}
	return []Value{v}
}

// Keys returns the mapping keys in document order.
func (v Value) Keys() []string {
	if v.kind != ValueMap {
		return nil
	}
	return v.keys
}

// Get traverses nested mappings by key, returning the zero Value when any
// step is missing.
func (v Value) Get(keys ...string) Value {
	cur := v
	for _, k := range keys {
		if cur.kind != ValueMap {
			return Value{}
		}
		next, ok := cur.dict[k]
		if !ok {
			return Value{}
		}
		cur = next
	}
	return cur
}

// Has reports whether a (possibly nested) key exists.
func (v Value) Has(keys ...string) bool {
	return !v.Get(keys...).IsZero()
}

// put appends or replaces a mapping entry; a repeated key promotes the
// entry to a list, preserving document order.
func (v *Value) put(key string, val Value) {
	if v.kind != ValueMap {
		return
	}
	existing, ok := v.dict[key]
	if !ok {
		v.dict[key] = val
		v.keys = append(v.keys, key)
		return
	}
	if existing.kind == ValueList {
		existing.list = append(existing.list, val)
		v.dict[key] = existing
		return
	}
	v.dict[key] = ListValue(existing, val)
}
