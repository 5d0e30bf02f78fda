// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package testutil defines support code for unit tests.
package testutil

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/go-cmp/cmp"
)

// Recorder is a parser event handler that records a line of text for each
// event it receives. Its methods never report an error, unless FailOn is set.
type Recorder struct {
	buf bytes.Buffer

	// If non-empty, the first event whose rendered text has this prefix
	// reports an error instead of being recorded.
	FailOn string
}

// Output returns the text of the recorded events.
func (r *Recorder) Output() string { return r.buf.String() }

func (r *Recorder) pr(msg string, args ...any) error {
	line := fmt.Sprintf(msg, args...)
	if r.FailOn != "" && strings.HasPrefix(line, r.FailOn) {
		return fmt.Errorf("handler rejected %s", line)
	}
	r.buf.WriteString(line)
	r.buf.WriteByte('\n')
	return nil
}

func (r *Recorder) Null() error              { return r.pr("Null") }
func (r *Recorder) Bool(v bool) error        { return r.pr("Bool %v", v) }
func (r *Recorder) Integer(v int64) error    { return r.pr("Integer %d", v) }
func (r *Recorder) String(v string) error    { return r.pr("String %q", v) }
func (r *Recorder) BeginArray() error        { return r.pr("BeginArray") }
func (r *Recorder) EndArray() error          { return r.pr("EndArray") }
func (r *Recorder) BeginObject() error       { return r.pr("BeginObject") }
func (r *Recorder) EndObject() error         { return r.pr("EndObject") }
func (r *Recorder) ObjectKey(k string) error { return r.pr("ObjectKey %q", k) }

func (r *Recorder) Real(v float64) error {
	return r.pr("Real %s", strconv.FormatFloat(v, 'g', -1, 64))
}

// DiffLines compares want and got line by line, ignoring leading and trailing
// whitespace, and returns a cmp.Diff of the results.
func DiffLines(want, got string) string {
	return cmp.Diff(strings.Split(strings.TrimSpace(want), "\n"),
		strings.Split(strings.TrimSpace(got), "\n"))
}
