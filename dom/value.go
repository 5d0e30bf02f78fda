// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package dom defines an in-memory tree of JSON values, and a builder that
// constructs such trees from the events of a prettyjson.Stream.
package dom

import (
	"fmt"
	"iter"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/creachadair/prettyjson"
)

// Kind identifies the concrete type of a Value.
type Kind byte

// Constants defining the valid Kind values.
const (
	ObjectKind Kind = iota + 1
	ArrayKind
	StringKind
	NumberKind
	NullKind
)

var kindStr = [...]string{
	ObjectKind: "object",
	ArrayKind:  "array",
	StringKind: "string",
	NumberKind: "number",
	NullKind:   "null",
}

func (k Kind) String() string {
	if k >= ObjectKind && k <= NullKind {
		return kindStr[k]
	}
	return fmt.Sprintf("kind(%d)", byte(k))
}

// A Value is an arbitrary JSON value. The concrete types are *Object, *Array,
// String, Number, and Null.
type Value interface {
	// Kind reports the concrete type of the value.
	Kind() Kind

	// JSON renders the value as compact JSON text. Object keys are rendered
	// in sorted order.
	JSON() string

	isValue()
}

// An Object is a collection of key-value members. Keys are unique: setting a
// key that is already present replaces its value. Members are visited in
// order of their keys, not in order of insertion.
//
// The zero value is an empty object ready for use.
type Object struct {
	members map[string]Value
}

// NewObject returns a new empty object.
func NewObject() *Object { return new(Object) }

// Kind satisfies the Value interface.
func (*Object) Kind() Kind { return ObjectKind }

func (*Object) isValue() {}

// Len reports the number of members in o.
func (o *Object) Len() int { return len(o.members) }

// Set sets the value of key in o to v, replacing any previous value.
func (o *Object) Set(key string, v Value) {
	if o.members == nil {
		o.members = make(map[string]Value)
	}
	o.members[key] = v
}

// Find returns the value of key in o and reports whether it was present.
func (o *Object) Find(key string) (Value, bool) {
	v, ok := o.members[key]
	return v, ok
}

// Get returns the value of key in o, or nil if key is not present.
func (o *Object) Get(key string) Value { return o.members[key] }

// Delete removes key from o, and reports whether it was present.
func (o *Object) Delete(key string) bool {
	_, ok := o.members[key]
	delete(o.members, key)
	return ok
}

// Keys returns the keys of o in sorted order.
func (o *Object) Keys() []string { return slices.Sorted(maps.Keys(o.members)) }

// All is a range function over the members of o in order of their keys.
func (o *Object) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, key := range o.Keys() {
			if !yield(key, o.members[key]) {
				return
			}
		}
	}
}

// JSON satisfies the Value interface.
func (o *Object) JSON() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, key := range o.Keys() {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(prettyjson.Quote(key))
		sb.WriteByte(':')
		sb.WriteString(o.members[key].JSON())
	}
	sb.WriteByte('}')
	return sb.String()
}

// An Array is a sequence of values. The zero value is an empty array ready
// for use.
type Array struct {
	Values []Value
}

// Kind satisfies the Value interface.
func (*Array) Kind() Kind { return ArrayKind }

func (*Array) isValue() {}

// Len reports the number of elements in a.
func (a *Array) Len() int { return len(a.Values) }

// At returns the element of a at offset i. It panics if i is out of range.
func (a *Array) At(i int) Value { return a.Values[i] }

// Append adds vs to the end of a.
func (a *Array) Append(vs ...Value) { a.Values = append(a.Values, vs...) }

// JSON satisfies the Value interface.
func (a *Array) JSON() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range a.Values {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(v.JSON())
	}
	sb.WriteByte(']')
	return sb.String()
}

// A String is a string value. Its contents are arbitrary bytes, typically
// but not necessarily UTF-8.
type String string

// Kind satisfies the Value interface.
func (String) Kind() Kind { return StringKind }

func (String) isValue() {}

// JSON satisfies the Value interface.
func (s String) JSON() string { return prettyjson.Quote(string(s)) }

// NumberType identifies the representation of a Number.
type NumberType byte

// Constants defining the valid NumberType values.
const (
	Integer NumberType = iota + 1 // a 64-bit signed integer
	Real                          // a 64-bit floating-point value
	Boolean                       // true or false
)

// A Number is a numeric or Boolean value. Booleans are represented as a
// variant of Number so that code treating 0 and 1 as false and true
// interoperates with them. Construct a Number with Int, Float, or Bool.
type Number struct {
	typ  NumberType
	ival int64 // Integer and Boolean (0 or 1)
	fval float64
}

// Int returns an Integer number with value v.
func Int(v int64) Number { return Number{typ: Integer, ival: v} }

// Float returns a Real number with value v.
func Float(v float64) Number { return Number{typ: Real, fval: v} }

// Bool returns a Boolean number with value v.
func Bool(v bool) Number {
	if v {
		return Number{typ: Boolean, ival: 1}
	}
	return Number{typ: Boolean}
}

// Kind satisfies the Value interface.
func (Number) Kind() Kind { return NumberKind }

func (Number) isValue() {}

// Type reports the representation of n.
func (n Number) Type() NumberType { return n.typ }

// IsInt reports whether n is an Integer.
func (n Number) IsInt() bool { return n.typ == Integer }

// IsReal reports whether n is a Real.
func (n Number) IsReal() bool { return n.typ == Real }

// IsBool reports whether n is a Boolean.
func (n Number) IsBool() bool { return n.typ == Boolean }

// Int64 returns n as an integer. A Real is truncated toward zero, and a
// Boolean is 1 for true and 0 for false.
func (n Number) Int64() int64 {
	if n.typ == Real {
		return int64(n.fval)
	}
	return n.ival
}

// Float64 returns n as a floating-point value.
func (n Number) Float64() float64 {
	if n.typ == Real {
		return n.fval
	}
	return float64(n.ival)
}

// Bool reports whether n is nonzero.
func (n Number) Bool() bool {
	if n.typ == Real {
		return n.fval != 0
	}
	return n.ival != 0
}

// JSON satisfies the Value interface. Integers are rendered in decimal,
// Booleans as true or false, and Reals as by FormatReal.
func (n Number) JSON() string {
	switch n.typ {
	case Boolean:
		return strconv.FormatBool(n.ival != 0)
	case Real:
		return FormatReal(n.fval)
	default:
		return strconv.FormatInt(n.ival, 10)
	}
}

// FormatReal renders v in the shortest form that parses back to the same
// value, and that reads back as a Real rather than an Integer. Exponent
// notation is used only for magnitudes at or above 1e21 or below 1e-6, which
// are never whole numbers in the range of int64. Other values always contain
// a decimal point.
//
// JSON has no representation for NaN or infinities, so these are rendered
// as null.
func FormatReal(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "null"
	}
	fmtc := byte('f')
	if abs := math.Abs(v); abs >= 1e21 || (abs != 0 && abs < 1e-6) {
		fmtc = 'e'
	}
	s := strconv.FormatFloat(v, fmtc, -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

// Null represents the null constant.
type Null struct{}

// Kind satisfies the Value interface.
func (Null) Kind() Kind { return NullKind }

func (Null) isValue() {}

// JSON satisfies the Value interface.
func (Null) JSON() string { return "null" }

// ToValue converts a Go value into a Value. It accepts nil, bool, string,
// integer and floating-point types, []any, map[string]any, and Value. Any
// other type causes a panic.
func ToValue(v any) Value {
	switch t := v.(type) {
	case nil:
		return Null{}
	case Value:
		return t
	case bool:
		return Bool(t)
	case string:
		return String(t)
	case int:
		return Int(int64(t))
	case int32:
		return Int(int64(t))
	case int64:
		return Int(t)
	case float32:
		return Float(float64(t))
	case float64:
		return Float(t)
	case []any:
		arr := &Array{Values: make([]Value, len(t))}
		for i, elt := range t {
			arr.Values[i] = ToValue(elt)
		}
		return arr
	case map[string]any:
		obj := NewObject()
		for key, elt := range t {
			obj.Set(key, ToValue(elt))
		}
		return obj
	default:
		panic(fmt.Sprintf("dom: unsupported value type %T", v))
	}
}
