// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package prettyjson

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
)

// A Handler handles events from parsing an input stream. If a method reports
// an error, parsing stops and that error is returned to the caller.
//
// The parser ensures that every BeginObject and BeginArray is matched by
// exactly one EndObject or EndArray, properly nested, unless parsing stops
// early with an error. Inside an object, each ObjectKey is followed by
// exactly one value: a scalar method, or a Begin/End pair.
type Handler interface {
	// Report a null constant.
	Null() error

	// Report a true or false constant.
	Bool(v bool) error

	// Report a number written without a fraction whose value is a whole
	// number in the range of int64.
	Integer(v int64) error

	// Report any other number.
	Real(v float64) error

	// Report a string value, with escapes decoded.
	String(v string) error

	// Begin a new array.
	BeginArray() error

	// End the most-recently-opened array.
	EndArray() error

	// Begin a new object.
	BeginObject() error

	// End the most-recently-opened object.
	EndObject() error

	// Report the key of the next member of the current object.
	ObjectKey(key string) error
}

// Stream is a tolerant parser that consumes input and delivers events to a
// Handler corresponding with the structure of the input.
//
// Many malformations (missing or mismatched punctuation, trailing commas,
// unquoted keys, stray tokens) are recorded as warnings and skipped. Only
// running out of input where more is required, an unterminated string, or an
// unknown bare word stop the parse.
type Stream struct {
	s    *Scanner
	warn bool // record warnings
	log  Log
}

// NewStream constructs a new Stream that consumes input from r.
func NewStream(r io.Reader) *Stream { return &Stream{s: NewScanner(r)} }

// NewStreamWithScanner constructs a new Stream that consumes input from s.
func NewStreamWithScanner(s *Scanner) *Stream { return &Stream{s: s} }

// EnableWarnings configures the parser to record (true) or discard (false)
// warning diagnostics. Errors are always recorded. By default warnings are
// discarded.
func (s *Stream) EnableWarnings(ok bool) { s.warn = ok }

// Diagnostics returns the diagnostics recorded by the most recent call to
// Parse, in the order they were detected.
func (s *Stream) Diagnostics() Log { return s.log }

// Line reports the line number of the most recently scanned token.
func (s *Stream) Line() int { return s.s.Line() }

func (s *Stream) recoverParseError(errp *error) {
	if serr := recover(); serr != nil {
		switch err := serr.(type) {
		case *SyntaxError:
			*errp = err
		case handlerError:
			*errp = err.error
		default:
			panic(serr)
		}
	}
}

// Parse parses a single value from the input and delivers events to h. It
// discards the diagnostics from any previous call.
//
// Parse returns nil if the value was parsed, possibly with warnings. In case
// of a fatal syntax error, the returned error has type [*SyntaxError], and
// the same condition is recorded as the last diagnostic. If a Handler method
// reports an error, parsing stops and that error is returned.
func (s *Stream) Parse(h Handler) (err error) {
	s.log = nil
	defer s.recoverParseError(&err)

	s.parseValue(h)
	return nil
}

// parseValue consumes a single value of any type. Tokens that cannot start a
// value are reported and skipped.
func (s *Stream) parseValue(h Handler) {
	for {
		switch tok := s.advance(); tok {
		case EOF:
			s.fatalf(nil, "unexpected EOF")
		case LBrace:
			s.parseObject(h)
		case LSquare:
			s.parseArray(h)
		case Word:
			s.parseWord(h)
		case String:
			s.checkString()
			s.checkError(h.String(string(s.s.Text())))
		case Number:
			s.parseNumber(h)
		default:
			s.warnf("token %s unexpected", s.s.Text())
			continue
		}
		return
	}
}

// parseObject consumes the members of an object.
// Precondition: token == LBrace.
func (s *Stream) parseObject(h Handler) {
	s.checkError(h.BeginObject())

	var afterComma bool
	for {
		tok := s.advance()
		if tok == RBrace {
			if afterComma {
				s.warnf("close after comma")
			}
			break
		} else if tok == RSquare {
			s.warnf("closed array instead of object")
			break
		} else if tok == EOF {
			s.fatalf(nil, "unexpected EOF")
		}

		// Parse a single member: "key": value
		if tok != String {
			s.warnf("expected object key as a string")
		} else {
			s.checkString()
		}
		s.checkError(h.ObjectKey(string(s.s.Text())))

		if s.advance() != Colon {
			s.warnf("expected ':' separating key from value")
			s.s.Unread() // reconsider it as the start of the value
		}
		s.parseValue(h)

		// Check whether we have more members (",") or are done ("}").
		tok = s.advance()
		if tok == EOF {
			s.fatalf(nil, "unexpected EOF")
		} else if tok == RBrace {
			break
		} else if tok == RSquare {
			s.warnf("closed array instead of object")
			break
		} else if tok != Comma {
			s.warnf("expected ',' separating key/value pairs in object")
			s.s.Unread()
		}
		afterComma = true
	}

	s.checkError(h.EndObject())
}

// parseArray consumes the elements of an array.
// Precondition: token == LSquare.
func (s *Stream) parseArray(h Handler) {
	s.checkError(h.BeginArray())

	var afterComma bool
	for {
		tok := s.advance()
		if tok == RSquare {
			if afterComma {
				s.warnf("close after comma")
			}
			break
		} else if tok == RBrace {
			s.warnf("closed object instead of array")
			break
		}

		s.s.Unread() // let parseValue see the token
		s.parseValue(h)

		tok = s.advance()
		if tok == EOF {
			s.fatalf(nil, "unexpected EOF")
		} else if tok == RSquare {
			break
		} else if tok == RBrace {
			s.warnf("closed object instead of array")
			break
		} else if tok != Comma {
			s.warnf("comma expected between array values")
			s.s.Unread()
		}
		afterComma = true
	}

	s.checkError(h.EndArray())
}

// parseWord handles a bare word in value position.
// Precondition: token == Word.
func (s *Stream) parseWord(h Handler) {
	switch text := s.s.Text(); string(text) {
	case "true":
		s.checkError(h.Bool(true))
	case "false":
		s.checkError(h.Bool(false))
	case "null":
		s.checkError(h.Null())
	default:
		s.fatalf(nil, "token %s illegal", text)
	}
}

// parseNumber decodes a number token. A number written without a fraction is
// reported as an Integer, including one with an exponent whose value is a
// whole number in the range of int64. Other numbers are reported as a Real.
// An integer too large for int64 is reported as a Real with a warning.
// Precondition: token == Number.
func (s *Stream) parseNumber(h Handler) {
	text := s.s.Text()
	frac := bytes.IndexByte(text, '.') >= 0
	exp := bytes.ContainsAny(text, "eE")
	if !frac && !exp {
		v, err := strconv.ParseInt(string(text), 10, 64)
		if err == nil {
			s.checkError(h.Integer(v))
			return
		}
		s.warnf("integer %s out of range", text)
	}

	v, err := strconv.ParseFloat(string(text), 64)
	if errors.Is(err, strconv.ErrRange) {
		s.warnf("number %s out of range", text)
		if math.IsInf(v, 0) {
			v = math.Copysign(math.MaxFloat64, v)
		}
	} else if err != nil {
		// The scanner admits an exponent marker without digits ("1e", "2E+").
		// Keep the mantissa, which is always well-formed.
		s.warnf("malformed number %s", text)
		mant, _, _ := bytes.Cut(bytes.ToLower(text), []byte("e"))
		v, _ = strconv.ParseFloat(string(mant), 64)
	}
	if !frac && exp {
		if n, ok := exactInt64(v); ok {
			s.checkError(h.Integer(n))
			return
		}
	}
	s.checkError(h.Real(v))
}

// exactInt64 reports whether v is a whole number representable as an int64,
// and if so returns that value.
func exactInt64(v float64) (int64, bool) {
	// -2^63 is exact in float64, but 2^63-1 is not and rounds up to 2^63.
	if v != math.Trunc(v) || v < math.MinInt64 || v >= -math.MinInt64 {
		return 0, false
	}
	return int64(v), true
}

// advance reads the next token. A read error other than io.EOF is fatal.
func (s *Stream) advance() Token {
	if err := s.s.Next(); err != nil && err != io.EOF {
		s.fatalf(err, "read error: %v", err)
	}
	return s.s.Token()
}

// checkString reports a fatal error if the current string token is not
// terminated.
func (s *Stream) checkString() {
	if s.s.Unterminated() {
		s.fatalf(nil, "unterminated string")
	}
}

func (s *Stream) warnf(msg string, args ...any) {
	if !s.warn {
		return
	}
	s.log = append(s.log, Diagnostic{
		Severity: Warning,
		Line:     s.s.Line(),
		Message:  fmt.Sprintf(msg, args...),
	})
}

func (s *Stream) fatalf(err error, msg string, args ...any) {
	d := Diagnostic{
		Severity: Error,
		Line:     s.s.Line(),
		Message:  fmt.Sprintf(msg, args...),
	}
	s.log = append(s.log, d)
	panic(&SyntaxError{Line: d.Line, Message: d.Message, err: err})
}

func (s *Stream) checkError(err error) {
	if err != nil {
		panic(handlerError{err})
	}
}

type handlerError struct{ error }

func (h handlerError) Unwrap() error { return h.error }

// Check parses a single value from r without building anything, and returns
// the resulting diagnostics with warnings enabled. The error is nil if the
// value was parsed, possibly with warnings.
func Check(r io.Reader) (Log, error) {
	st := NewStream(r)
	st.EnableWarnings(true)
	err := st.Parse(nopHandler{})
	return st.Diagnostics(), err
}

// nopHandler is a Handler that accepts and discards all events.
type nopHandler struct{}

func (nopHandler) Null() error            { return nil }
func (nopHandler) Bool(bool) error        { return nil }
func (nopHandler) Integer(int64) error    { return nil }
func (nopHandler) Real(float64) error     { return nil }
func (nopHandler) String(string) error    { return nil }
func (nopHandler) BeginArray() error      { return nil }
func (nopHandler) EndArray() error        { return nil }
func (nopHandler) BeginObject() error     { return nil }
func (nopHandler) EndObject() error       { return nil }
func (nopHandler) ObjectKey(string) error { return nil }
