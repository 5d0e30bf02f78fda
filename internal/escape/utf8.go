// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package escape

// AppendUnit appends the UTF-8 style encoding of the 16-bit code unit u to
// dst and returns the extended slice. Values below 0x80 use one byte, values
// below 0x800 use two, and all others use three.
//
// Surrogate halves are encoded as-is rather than combined, so the output for
// a \uD83D\uDE00 pair is two 3-byte sequences.
func AppendUnit(dst []byte, u uint16) []byte {
	switch {
	case u < 0x80:
		return append(dst, byte(u))
	case u < 0x800:
		return append(dst, 0xC0|byte(u>>6), 0x80|byte(u&0x3F))
	default:
		return append(dst,
			0xE0|byte(u>>12),
			0x80|byte((u>>6)&0x3F),
			0x80|byte(u&0x3F))
	}
}
