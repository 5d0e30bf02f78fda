// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package prettyjson implements a tolerant JSON scanner and parser.
//
// # Scanning
//
// The Scanner type implements a lexical scanner for JSON-like text.
// Construct a scanner from an io.Reader and call its Next method to iterate
// over the stream. Next advances to the next input token and returns nil, or
// reports an error:
//
//	s := prettyjson.NewScanner(input)
//	for s.Next() == nil {
//	   log.Printf("Next token: %v %q", s.Token(), s.Text())
//	}
//
// Next returns io.EOF when the input has been fully consumed. The scanner is
// lenient: it never reports a lexical error. Bytes that cannot begin any
// other token are delivered as single-byte Other tokens, and a string that
// reaches the end of input is delivered as a String token for which
// Unterminated reports true.
//
// The scanner supports one token of push-back via its Unread method.
//
// # Streaming
//
// The Stream type implements an event-driven, error-tolerant stream parser.
// The parser works by calling methods on a Handler value to report the
// structure of the input:
//
//	JSON type  | Methods                   | Description
//	---------- | ------------------------- | ---------------------------------
//	object     | BeginObject, EndObject    | { ... }
//	member     | ObjectKey                 | "key": (followed by the value)
//	array      | BeginArray, EndArray      | [ ... ]
//	value      | Null, Bool, Integer,      | null, true, false, numbers
//	           | Real, String              | and strings
//
// Construct a Stream from an io.Reader and call its Parse method:
//
//	s := prettyjson.NewStream(input)
//	s.EnableWarnings(true)
//	err := s.Parse(handler)
//	for _, d := range s.Diagnostics() {
//	   fmt.Println(d)
//	}
//
// Recoverable problems such as trailing commas, missing colons, or mismatched
// closing brackets are recorded as warnings and parsing continues. Fatal
// problems stop the parse; Parse returns a *SyntaxError and the same problem
// is the last Error in the diagnostic log. If a Handler method reports an
// error, parsing stops and that error is returned.
//
// The parser ensures that corresponding Begin and End methods are correctly
// paired, unless the parse stops early with an error.
//
// Parse consumes a single value. Any input after the value is left unread.
package prettyjson
