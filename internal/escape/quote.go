// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape handles quoting of JSON strings and encoding of the UTF-16
// code units produced by \u escapes.
package escape

import (
	"unicode/utf16"
	"unicode/utf8"

	"go4.org/mem"
)

var controlEsc = [...]byte{
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
	' ':  ' ', // sentinel
}

var hexDigit = []byte("0123456789ABCDEF")

// Quote encodes a string to escape characters for inclusion in a JSON string.
// The result contains only printable ASCII: control characters use the short
// escapes where JSON defines one and \u00XX otherwise, and all non-ASCII code
// points are written as \uXXXX escapes, with surrogate pairs for code points
// outside the Basic Multilingual Plane. Bytes that are not valid UTF-8 are
// written as \uFFFD.
func Quote(src mem.RO) []byte {
	buf := make([]byte, 0, src.Len())
	putByte := func(bs ...byte) { buf = append(buf, bs...) }
	putUnit := func(u rune) {
		putByte('\\', 'u',
			hexDigit[(u>>12)&15], hexDigit[(u>>8)&15],
			hexDigit[(u>>4)&15], hexDigit[u&15])
	}

	for src.Len() != 0 {
		b := src.At(0)
		if b < utf8.RuneSelf {
			if b < ' ' {
				if e := controlEsc[b]; e != 0 {
					putByte('\\', e)
				} else {
					putUnit(rune(b))
				}
			} else if b == '\\' || b == '"' {
				putByte('\\', b)
			} else {
				putByte(b)
			}
			src = src.SliceFrom(1)
			continue
		}

		r, n := mem.DecodeRune(src)
		if n == 0 {
			n = 1
		}
		if r > 0xFFFF {
			r1, r2 := utf16.EncodeRune(r)
			putUnit(r1)
			putUnit(r2)
		} else {
			putUnit(r) // includes utf8.RuneError for invalid bytes
		}
		src = src.SliceFrom(n)
	}
	return buf
}
