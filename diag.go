// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package prettyjson

import "fmt"

// Severity classifies a Diagnostic.
type Severity byte

// Constants defining the valid Severity values.
const (
	Warning Severity = iota + 1 // recoverable; parsing continued
	Error                       // fatal; parsing stopped
)

var sevStr = [...]string{Warning: "warning", Error: "error"}

func (s Severity) String() string {
	if s == Warning || s == Error {
		return sevStr[s]
	}
	return fmt.Sprintf("severity(%d)", byte(s))
}

// Code returns the one-letter code for s used in rendered diagnostics.
func (s Severity) Code() string {
	switch s {
	case Warning:
		return "W"
	case Error:
		return "E"
	}
	return "?"
}

// A Diagnostic is a single warning or error recorded during a parse.
type Diagnostic struct {
	Severity Severity
	Line     int // 1-based source line
	Message  string
}

// String renders d in the form "# line L: W message".
func (d Diagnostic) String() string {
	return fmt.Sprintf("# line %d: %s %s", d.Line, d.Severity.Code(), d.Message)
}

// A Log is an ordered sequence of diagnostics, in the order they were
// detected.
type Log []Diagnostic

// Count reports the number of diagnostics in g with the given severity.
func (g Log) Count(sev Severity) int {
	var n int
	for _, d := range g {
		if d.Severity == sev {
			n++
		}
	}
	return n
}

// HasErrors reports whether g contains at least one Error diagnostic.
func (g Log) HasErrors() bool { return g.Count(Error) != 0 }

// SyntaxError is the concrete type of fatal errors reported by the parser.
// Each SyntaxError is also recorded as an Error diagnostic.
type SyntaxError struct {
	Line    int
	Message string

	err error
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s", s.Line, s.Message)
}

// Unwrap supports error wrapping. It is non-nil when the fatal condition was
// caused by an error reading the input.
func (s *SyntaxError) Unwrap() error { return s.err }
