// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package dom

import (
	"errors"
	"io"

	"github.com/creachadair/prettyjson"
)

var (
	// ErrUnbalanced is reported when the container events delivered to a
	// Builder do not nest properly.
	ErrUnbalanced = errors.New("unbalanced close array and object markers")

	// ErrMultipleValues is reported when a value arrives after a complete
	// top-level value has already been built.
	ErrMultipleValues = errors.New("multiple values without an enclosing container")

	// ErrNoValue is reported by Result when no value has been delivered.
	ErrNoValue = errors.New("no value")
)

// unbalancedMessage is the diagnostic recorded when a parse yields a tree
// whose containers were not all closed.
const unbalancedMessage = "Unbalanced close array and object markers make file invalid"

// A Builder implements the prettyjson.Handler interface to construct a tree
// of values from parser events.
//
// The zero value is ready for use. A Builder may be reused; each call to
// Parse discards the state left by the previous call.
type Builder struct {
	root Value
	stk  []Value // open containers, *Object or *Array
	key  string  // most recent object key
	log  prettyjson.Log
}

// Parse discards any previous state, parses a single value from st, and
// returns the resulting tree.
//
// If st reports an error, Parse returns that error and no value. If parsing
// succeeded but the container events were not balanced, Parse records an
// error diagnostic and returns ErrUnbalanced and no value.
func (b *Builder) Parse(st *prettyjson.Stream) (Value, error) {
	b.Reset()
	err := st.Parse(b)
	b.log = append(b.log, st.Diagnostics()...)
	if err != nil {
		b.root, b.stk = nil, nil
		return nil, err
	}
	if len(b.stk) != 0 {
		b.log = append(b.log, prettyjson.Diagnostic{
			Severity: prettyjson.Error,
			Line:     st.Line(),
			Message:  unbalancedMessage,
		})
	}
	return b.Result()
}

// Result returns the completed tree. It reports ErrUnbalanced if any
// container is still open, or ErrNoValue if no value was delivered.
// Result is useful for event sources other than a Stream.
func (b *Builder) Result() (Value, error) {
	if len(b.stk) != 0 {
		return nil, ErrUnbalanced
	} else if b.root == nil {
		return nil, ErrNoValue
	}
	return b.root, nil
}

// Diagnostics returns the diagnostics from the most recent call to Parse,
// including any recorded by the builder itself.
func (b *Builder) Diagnostics() prettyjson.Log { return b.log }

// Reset discards the contents of b, leaving it ready for reuse.
func (b *Builder) Reset() {
	b.root = nil
	clear(b.stk) // release the old containers
	b.stk = b.stk[:0]
	b.key = ""
	b.log = nil
}

// insert adds v to the innermost open container, or makes it the root if
// there is none.
func (b *Builder) insert(v Value) error {
	if len(b.stk) == 0 {
		if b.root != nil {
			return ErrMultipleValues
		}
		b.root = v
		return nil
	}
	switch c := b.top().(type) {
	case *Object:
		c.Set(b.key, v)
	case *Array:
		c.Append(v)
	}
	return nil
}

func (b *Builder) top() Value { return b.stk[len(b.stk)-1] }

func (b *Builder) push(v Value) error {
	if err := b.insert(v); err != nil {
		return err
	}
	b.stk = append(b.stk, v)
	return nil
}

func (b *Builder) pop(want Kind) error {
	if len(b.stk) == 0 || b.top().Kind() != want {
		return ErrUnbalanced
	}
	b.stk = b.stk[:len(b.stk)-1]
	return nil
}

// Null satisfies the prettyjson.Handler interface.
func (b *Builder) Null() error { return b.insert(Null{}) }

// Bool satisfies the prettyjson.Handler interface.
func (b *Builder) Bool(v bool) error { return b.insert(Bool(v)) }

// Integer satisfies the prettyjson.Handler interface.
func (b *Builder) Integer(v int64) error { return b.insert(Int(v)) }

// Real satisfies the prettyjson.Handler interface.
func (b *Builder) Real(v float64) error { return b.insert(Float(v)) }

// String satisfies the prettyjson.Handler interface.
func (b *Builder) String(v string) error { return b.insert(String(v)) }

// BeginArray satisfies the prettyjson.Handler interface.
func (b *Builder) BeginArray() error { return b.push(new(Array)) }

// EndArray satisfies the prettyjson.Handler interface.
func (b *Builder) EndArray() error { return b.pop(ArrayKind) }

// BeginObject satisfies the prettyjson.Handler interface.
func (b *Builder) BeginObject() error { return b.push(NewObject()) }

// EndObject satisfies the prettyjson.Handler interface.
func (b *Builder) EndObject() error { return b.pop(ObjectKind) }

// ObjectKey satisfies the prettyjson.Handler interface.
func (b *Builder) ObjectKey(key string) error { b.key = key; return nil }

// Parse parses a single value from r with warnings enabled, and returns the
// resulting tree along with the diagnostics from parsing. On failure the
// value is nil and the error describes the problem; the diagnostics are
// returned in either case.
func Parse(r io.Reader) (Value, prettyjson.Log, error) {
	st := prettyjson.NewStream(r)
	st.EnableWarnings(true)
	return ParseStream(st)
}

// ParseStream parses a single value from st, and returns the resulting tree
// along with the diagnostics from parsing.
func ParseStream(st *prettyjson.Stream) (Value, prettyjson.Log, error) {
	var b Builder
	v, err := b.Parse(st)
	return v, b.Diagnostics(), err
}

var _ prettyjson.Handler = (*Builder)(nil)
