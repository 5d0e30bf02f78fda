// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package prettyjson

import (
	"github.com/creachadair/prettyjson/internal/escape"

	"go4.org/mem"
)

// Quote encodes src as a JSON string value. The contents are escaped and
// double quotation marks are added. The result is pure ASCII: non-ASCII code
// points are written as \uXXXX escapes.
func Quote(src string) string {
	buf := make([]byte, 0, len(src)+2)
	buf = append(buf, '"')
	buf = append(buf, escape.Quote(mem.S(src))...)
	return string(append(buf, '"'))
}
