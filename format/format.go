// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package format renders trees of JSON values as indented text.
//
// The layout places one member or element per line. Collections open on the
// line of their key with "{ " or "[ ", and a nested collection begins its
// first member on a fresh line. For example:
//
//	{ "name": "x",
//	  "tags": [
//	      "a",
//	      "b"
//	    ]
//	}
//
// Object members are written in order of their keys.
package format

import (
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/creachadair/prettyjson"
	"github.com/creachadair/prettyjson/dom"
)

// DefaultIndent is the indentation used for each level when a Formatter
// does not specify one.
const DefaultIndent = "  "

// A Formatter renders values as indented JSON text.
// The zero value is ready for use and uses the default settings.
type Formatter struct {
	// The text added for each level of indentation.
	// If empty, DefaultIndent is used.
	Indent string

	// If true, render real numbers with exactly six fractional digits.
	// Otherwise use the shortest form that reads back as the same value.
	FixedReals bool
}

// Format writes the formatted text of v to w. It does not add a trailing
// newline.
func (f Formatter) Format(w io.Writer, v dom.Value) error {
	var buf bytes.Buffer
	p := printer{buf: &buf, indent: f.Indent, fixed: f.FixedReals}
	if p.indent == "" {
		p.indent = DefaultIndent
	}
	p.format(v, 0, false)
	_, err := w.Write(buf.Bytes())
	return err
}

// String returns the formatted text of v.
func (f Formatter) String(v dom.Value) string {
	var sb strings.Builder
	f.Format(&sb, v) // writes to a strings.Builder do not fail
	return sb.String()
}

// Format writes the formatted text of v to w using default settings.
func Format(w io.Writer, v dom.Value) error { return Formatter{}.Format(w, v) }

// String returns the formatted text of v using default settings.
func String(v dom.Value) string { return Formatter{}.String(v) }

type printer struct {
	buf    *bytes.Buffer
	indent string
	fixed  bool
}

func (p *printer) pad(depth int) {
	for range depth {
		p.buf.WriteString(p.indent)
	}
}

// format renders v at the given depth. If sameLine is true, v follows a key
// or the start of a collection on the current line, and is not indented.
func (p *printer) format(v dom.Value, depth int, sameLine bool) {
	if !sameLine {
		p.pad(depth)
	}

	switch t := v.(type) {
	case *dom.Object:
		p.buf.WriteString("{ ")
		i := 0
		for key, elt := range t.All() {
			p.separate(i, depth, sameLine)
			i++
			p.buf.WriteString(prettyjson.Quote(key))
			p.buf.WriteString(": ")
			p.format(elt, depth+2, true)
		}
		p.close(depth, '}')

	case *dom.Array:
		p.buf.WriteString("[ ")
		for i, elt := range t.Values {
			p.separate(i, depth, sameLine)
			p.format(elt, depth+2, true)
		}
		p.close(depth, ']')

	case dom.String:
		p.buf.WriteString(prettyjson.Quote(string(t)))

	case dom.Number:
		if t.IsReal() && p.fixed {
			p.buf.WriteString(strconv.FormatFloat(t.Float64(), 'f', 6, 64))
		} else {
			p.buf.WriteString(t.JSON())
		}

	default:
		p.buf.WriteString("null")
	}
}

// separate writes the text preceding the ith member of a collection. The
// first member of a nested collection starts on a new line.
func (p *printer) separate(i, depth int, sameLine bool) {
	if i > 0 {
		p.buf.WriteString(", \n")
	} else if sameLine {
		p.buf.WriteString("\n")
	} else {
		return
	}
	p.pad(depth + 1)
}

func (p *printer) close(depth int, c byte) {
	p.buf.WriteByte('\n')
	p.pad(depth)
	p.buf.WriteByte(c)
}
