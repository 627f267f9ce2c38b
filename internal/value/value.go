// Package value implements the tagged JSON value variant that flows through
// the engine once the selective parser decides to keep a sub-document.
// The keep parser and the aggregating stages construct Values; the skip
// parser never allocates one.
package value

import "fmt"

// Kind discriminates the six cases of Value.
type Kind int

const (
	Null Kind = iota
	String
	Number
	Bool
	Object
	Array
)

// Member is one field of an Object, in the order it was first inserted
// (overwriting a key keeps its position).
// Object equality ignores this order; it is kept only so
// output is deterministic within a single run, not because source order is
// part of the data model's contract.
type Member struct {
	Key string
	Val Value
}

// Value is the tagged variant flowing through the engine. Exactly one of
// the Str/Num/Bool/Obj/Arr fields is meaningful, selected by Kind.
type Value struct {
	Kind Kind
	Str string
	Num NumberVal
	B bool
	Obj []Member
	Arr []Value
}

// NullValue returns the JSON null value.
func NullValue() Value { return Value{Kind: Null} }

// StringValue returns a JSON string value. Callers are responsible for
// NFC-normalizing str before calling this; Value itself does no
// normalization.
func StringValue(str string) Value { return Value{Kind: String, Str: str} }

// NumberValue returns a JSON number value.
func NumberValue(n NumberVal) Value { return Value{Kind: Number, Num: n} }

// BoolValue returns a JSON boolean value.
func BoolValue(b bool) Value { return Value{Kind: Bool, B: b} }

// EmptyObject returns an empty JSON object. Empty objects are valid values.
func EmptyObject() Value { return Value{Kind: Object, Obj: []Member{}} }

// EmptyArray returns an empty JSON array. Empty arrays are valid values.
func EmptyArray() Value { return Value{Kind: Array, Arr: []Value{}} }

// Set inserts or overwrites a field on an Object value in place. If key is
// already present, its value is replaced and its original position is kept;
// otherwise the field is appended. Calling Set on a non-Object value
// panics: callers (AddField, the keep parser) must check Kind first.
func (v *Value) Set(key string, val Value) {
	if v.Kind != Object {
		panic(fmt.Sprintf("value: Set on non-object Value (kind=%d)", v.Kind))
	}
	for i := range v.Obj {
		if v.Obj[i].Key == key {
			v.Obj[i].Val = val
			return
		}
	}
	v.Obj = append(v.Obj, Member{Key: key, Val: val})
}

// Field looks up a member of an Object value by key. It returns the value
// and true if found, or the zero Value and false otherwise. Calling Field on
// a non-Object value always returns (zero, false).
func (v Value) Field(key string) (Value, bool) {
	if v.Kind != Object {
		return Value{}, false
	}
	for _, m := range v.Obj {
		if m.Key == key {
			return m.Val, true
		}
	}
	return Value{}, false
}

// Element returns the i'th element of an Array value. It returns the zero
// Value and false when v is not an Array or the index is out of range.
func (v Value) Element(i int64) (Value, bool) {
	if v.Kind != Array || i < 0 || i >= int64(len(v.Arr)) {
		return Value{}, false
	}
	return v.Arr[i], true
}

// Equal reports structural equality per: object equality
// ignores insertion order; array equality is positional; number equality
// distinguishes Int from Float per NumberVal.Equal.
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case Null:
		return true
	case String:
		return v.Str == other.Str
	case Number:
		return v.Num.Equal(other.Num)
	case Bool:
		return v.B == other.B
	case Array:
		if len(v.Arr) != len(other.Arr) {
			return false
		}
		for i := range v.Arr {
			if !v.Arr[i].Equal(other.Arr[i]) {
				return false
			}
		}
		return true
	case Object:
		if len(v.Obj) != len(other.Obj) {
			return false
		}
		for _, m := range v.Obj {
			ov, ok := other.Field(m.Key)
			if !ok || !m.Val.Equal(ov) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
