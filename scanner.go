// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package prettyjson

import (
	"bufio"
	"bytes"
	"cmp"
	"io"

	"github.com/creachadair/prettyjson/internal/escape"
)

// Token is the type of a lexical token.
type Token byte

// Constants defining the valid Token values.
const (
	EOF     Token = iota // end of input
	LBrace               // left brace "{"
	RBrace               // right brace "}"
	LSquare              // left square bracket "["
	RSquare              // right square bracket "]"
	Comma                // comma ","
	Colon                // colon ":"
	Minus                // a "-" not followed by a digit
	String               // quoted string, escapes decoded
	Word                 // bare word: a letter followed by letters, digits, "_"
	Number               // number: -?digits(.digits)?([eE][+-]?digits)?
	Other                // any other single byte
)

var tokenStr = [...]string{
	EOF:     "end of input",
	LBrace:  `"{"`,
	RBrace:  `"}"`,
	LSquare: `"["`,
	RSquare: `"]"`,
	Comma:   `","`,
	Colon:   `":"`,
	Minus:   `"-"`,
	String:  "string",
	Word:    "word",
	Number:  "number",
	Other:   "punctuation",
}

func (t Token) String() string {
	v := int(t)
	if v >= len(tokenStr) {
		return tokenStr[Other]
	}
	return tokenStr[v]
}

// maxLookahead is the capacity of the character push-back buffer. No scan
// rule backs off by more than one byte at a time, so this is generous.
const maxLookahead = 8

// eof is the sentinel "character" returned by readByte at the end of input.
const eof = -1

// A Scanner reads lexical tokens from an input stream. Each call to Next
// advances the scanner to the next token, or reports an error.
//
// The input is consumed as raw 8-bit bytes. The scanner does not validate
// UTF-8; the only UTF-8 it produces itself is for \uXXXX escapes.
type Scanner struct {
	r    *bufio.Reader
	buf  bytes.Buffer // current token, decoded
	tok  Token
	err  error // error from the last call to Next
	rerr error // sticky read error other than io.EOF

	line  int  // current line, 1-based
	tline int  // line on which the current token started
	open  bool // the current String token has no closing quote

	// Character lookahead. Bytes are replayed in LIFO order; eof may be
	// pushed back like any other byte.
	look  [maxLookahead]int
	nlook int

	// Token lookahead: when set, the next call to Next re-delivers the
	// current token.
	pushed bool
}

// NewScanner constructs a new lexical scanner that consumes input from r.
func NewScanner(r io.Reader) *Scanner {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Scanner{r: br, line: 1, tline: 1}
}

// Next advances s to the next token of the input, or reports an error.
// At the end of the input, Next returns io.EOF and the current token is EOF.
//
// If Unread was called since the previous call, Next re-delivers the same
// token (and error) again instead of reading further.
func (s *Scanner) Next() error {
	if s.pushed {
		s.pushed = false
		return s.err
	}
	s.buf.Reset()
	s.err = nil
	s.open = false

	ch := s.readByte()
	for isSpace(ch) {
		ch = s.readByte()
	}
	s.tline = s.line

	switch {
	case ch == eof:
		s.tok = EOF
		return s.setErr(cmp.Or(s.rerr, io.EOF))
	case ch == '"':
		s.scanString()
	case isLetter(ch):
		s.scanWord(ch)
	case ch == '-' || isDigit(ch):
		s.scanNumber(ch)
	default:
		s.buf.WriteByte(byte(ch))
		s.tok = selfDelim(ch)
	}

	// A read error in the middle of a token is reported after the partial
	// token has been recorded.
	if s.rerr != nil {
		return s.setErr(s.rerr)
	}
	return nil
}

// Unread arranges for the next call to Next to re-deliver the current token.
// Only one token of lookahead is supported: Unread panics if it is called
// again before the next call to Next.
func (s *Scanner) Unread() {
	if s.pushed {
		panic("prettyjson: Unread called twice without Next")
	}
	s.pushed = true
}

// Token returns the type of the current token.
func (s *Scanner) Token() Token { return s.tok }

// Err returns the last error reported by Next.
func (s *Scanner) Err() error { return s.err }

// Text returns the text of the current token. For String tokens this is the
// decoded contents without quotation marks; for all other tokens it is the
// text as written. The return value is only valid until the next call of
// Next. The caller must copy the contents of the returned slice if it is
// needed beyond that.
func (s *Scanner) Text() []byte { return s.buf.Bytes() }

// Copy returns a copy of the text of the current token.
func (s *Scanner) Copy() []byte { return bytes.Clone(s.buf.Bytes()) }

// Line returns the 1-based line number on which the current token started.
func (s *Scanner) Line() int { return s.tline }

// Unterminated reports whether the current token is a String token that
// reached the end of input before its closing quotation mark.
func (s *Scanner) Unterminated() bool { return s.tok == String && s.open }

func (s *Scanner) scanString() {
	s.tok = String
	for {
		switch ch := s.readByte(); ch {
		case eof:
			s.open = true
			return
		case '"':
			return
		case '\\':
			if !s.scanEscape() {
				s.open = true
				return
			}
		default:
			s.buf.WriteByte(byte(ch))
		}
	}
}

// scanEscape decodes the escape sequence following a backslash. It reports
// false if the input ended before the escape was complete.
func (s *Scanner) scanEscape() bool {
	ch := s.readByte()
	switch ch {
	case eof:
		return false
	case 'b':
		s.buf.WriteByte('\b')
	case 'f':
		s.buf.WriteByte('\f')
	case 'n':
		s.buf.WriteByte('\n')
	case 'r':
		s.buf.WriteByte('\r')
	case 't':
		s.buf.WriteByte('\t')
	case 'u':
		s.scanUnicode()
	default:
		// This covers \" \\ \/ as well as unknown escapes, which are kept
		// verbatim without the backslash.
		s.buf.WriteByte(byte(ch))
	}
	return true
}

// scanUnicode consumes up to 4 hexadecimal digits following "\u" and writes
// the UTF-8 encoding of the resulting code unit. The first byte that is not
// a hex digit is pushed back and ends the escape early.
func (s *Scanner) scanUnicode() {
	var v uint16
	for range 4 {
		ch := s.readByte()
		d, ok := hexValue(ch)
		if !ok {
			s.unreadByte(ch)
			break
		}
		v = v<<4 | d
	}
	var ubuf [3]byte
	s.buf.Write(escape.AppendUnit(ubuf[:0], v))
}

func (s *Scanner) scanWord(first int) {
	s.buf.WriteByte(byte(first))
	s.unreadByte(s.readWhile(isWordByte))
	s.tok = Word
}

func (s *Scanner) scanNumber(first int) {
	s.buf.WriteByte(byte(first))

	if first == '-' {
		// A sign must be followed by a digit, otherwise it stands alone.
		next := s.readByte()
		if !isDigit(next) {
			s.unreadByte(next)
			s.tok = Minus
			return
		}
		s.buf.WriteByte(byte(next))
	}

	ch := s.readWhile(isDigit)
	if ch == '.' {
		s.buf.WriteByte('.')
		ch = s.readWhile(isDigit)
	}
	if ch == 'e' || ch == 'E' {
		s.buf.WriteByte(byte(ch))
		if sign := s.readByte(); sign == '+' || sign == '-' {
			s.buf.WriteByte(byte(sign))
		} else {
			s.unreadByte(sign)
		}
		ch = s.readWhile(isDigit)
	}
	s.unreadByte(ch)
	s.tok = Number
}

// readWhile consumes bytes matching f into the token buffer until a byte not
// matching f (or eof) is found. That byte is returned and it is the caller's
// responsibility to push it back, if desired.
func (s *Scanner) readWhile(f func(int) bool) int {
	for {
		ch := s.readByte()
		if !f(ch) {
			return ch
		}
		s.buf.WriteByte(byte(ch))
	}
}

// readByte returns the next input byte, replaying from the lookahead buffer
// first. It returns eof at the end of input or on a read error.
func (s *Scanner) readByte() int {
	var ch int
	if s.nlook > 0 {
		s.nlook--
		ch = s.look[s.nlook]
	} else {
		b, err := s.r.ReadByte()
		if err != nil {
			if err != io.EOF && s.rerr == nil {
				s.rerr = err
			}
			return eof
		}
		ch = int(b)
	}
	if ch == '\n' {
		s.line++
	}
	return ch
}

// unreadByte pushes ch back so that the next readByte will return it.
func (s *Scanner) unreadByte(ch int) {
	if s.nlook == len(s.look) {
		panic("prettyjson: character lookahead overflow")
	}
	s.look[s.nlook] = ch
	s.nlook++
	if ch == '\n' {
		s.line--
	}
}

func (s *Scanner) setErr(err error) error {
	s.err = err
	return err
}

func isSpace(ch int) bool {
	return ch == ' ' || ch == '\r' || ch == '\n' || ch == '\t'
}

func isDigit(ch int) bool  { return '0' <= ch && ch <= '9' }
func isLetter(ch int) bool { return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') }

func isWordByte(ch int) bool { return isLetter(ch) || isDigit(ch) || ch == '_' }

func hexValue(ch int) (uint16, bool) {
	switch {
	case '0' <= ch && ch <= '9':
		return uint16(ch - '0'), true
	case 'a' <= ch && ch <= 'f':
		return uint16(ch - 'a' + 10), true
	case 'A' <= ch && ch <= 'F':
		return uint16(ch - 'A' + 10), true
	}
	return 0, false
}

var self = [...]Token{LBrace, RBrace, LSquare, RSquare, Comma, Colon}

func selfDelim(ch int) Token {
	if i := bytes.IndexByte([]byte("{}[],:"), byte(ch)); i >= 0 {
		return self[i]
	}
	return Other
}
