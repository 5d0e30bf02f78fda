// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package format_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/creachadair/prettyjson/dom"
	"github.com/creachadair/prettyjson/format"
	"github.com/google/go-cmp/cmp"
	"github.com/tailscale/hujson"
)

func TestString(t *testing.T) {
	tests := []struct {
		name  string
		input dom.Value
		want  string
	}{
		{"Null", dom.Null{}, "null"},
		{"NilValue", nil, "null"},
		{"True", dom.Bool(true), "true"},
		{"Integer", dom.Int(-25), "-25"},
		{"Real", dom.Float(2.5), "2.5"},
		{"WholeReal", dom.Float(3), "3.0"},
		{"String", dom.String(`a "b"` + "\n"), `"a \"b\"\n"`},
		{"Unicode", dom.String("caf\xc3\xa9"), `"caf\u00E9"`},

		{"EmptyObject", dom.NewObject(), "{ \n}"},
		{"EmptyArray", new(dom.Array), "[ \n]"},
		{"OneMember", dom.ToValue(map[string]any{"a": 1}), "{ \"a\": 1\n}"},
		{"Array", dom.ToValue([]any{1, 2}), "[ 1, \n  2\n]"},

		{"Nested", dom.ToValue(map[string]any{
			"b": []any{true, false},
			"a": nil,
		}), "{ \"a\": null, \n" +
			"  \"b\": [ \n" +
			"      true, \n" +
			"      false\n" +
			"    ]\n" +
			"}"},

		{"NestedEmpty", dom.ToValue(map[string]any{"x": map[string]any{}}),
			"{ \"x\": { \n    }\n}"},

		{"ArrayOfArray", dom.ToValue([]any{[]any{1}}),
			"[ [ \n      1\n    ]\n]"},

		{"Deep", dom.ToValue(map[string]any{
			"k": map[string]any{"p": []any{"q"}},
		}), "{ \"k\": { \n" +
			"      \"p\": [ \n" +
			"          \"q\"\n" +
			"        ]\n" +
			"    }\n" +
			"}"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := format.String(tc.input)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("String (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestFormatter(t *testing.T) {
	v := dom.ToValue(map[string]any{"r": 2.5, "n": []any{1, 0.125}})

	f := format.Formatter{Indent: "\t", FixedReals: true}
	const want = "{ \"n\": [ \n\t\t\t1, \n\t\t\t0.125000\n\t\t], \n\t\"r\": 2.500000\n}"
	if diff := cmp.Diff(want, f.String(v)); diff != "" {
		t.Errorf("Formatter (-want, +got):\n%s", diff)
	}

	var buf bytes.Buffer
	if err := format.Format(&buf, dom.ToValue([]any{"x"})); err != nil {
		t.Fatalf("Format: %v", err)
	}
	if got, want := buf.String(), `[ "x"`+"\n]"; got != want {
		t.Errorf("Format: got %q, want %q", got, want)
	}

	boom := errors.New("boom")
	if err := format.Format(failWriter{boom}, dom.Int(1)); !errors.Is(err, boom) {
		t.Errorf("Format: got %v, want %v", err, boom)
	}
}

// The formatted output must be valid JSON that parses back to an equivalent
// value, with no diagnostics.
func TestRoundTrip(t *testing.T) {
	inputs := []string{
		`null`,
		`"plain"`,
		`[]`,
		`{}`,
		`{"a":1,"b":[true,false,null]}`,
		`{"z": {"y": {"x": [1, [2, [3, {}]]]}}, "w": -0.5e-3, "v": 1e300}`,
		`["tab\there", "quote\"", "back\\slash", "ctl\u0001", "café", "日本"]`,
		`[0, -0, 9223372036854775807, -9223372036854775808, 0.1, 123456.789]`,
	}
	for _, input := range inputs {
		v, log, err := dom.Parse(strings.NewReader(input))
		if err != nil || len(log) != 0 {
			t.Fatalf("Parse %#q: %v %v", input, err, log)
		}

		for _, f := range []format.Formatter{{}, {Indent: "    "}} {
			text := f.String(v)
			if _, err := hujson.Parse([]byte(text)); err != nil {
				t.Errorf("Output is not valid JSON: %v\n%s", err, text)
			}

			w, log, err := dom.Parse(strings.NewReader(text))
			if err != nil {
				t.Errorf("Reparse %#q: %v", text, err)
				continue
			} else if len(log) != 0 {
				t.Errorf("Reparse %#q: diagnostics %v", text, log)
			}
			if diff := cmp.Diff(v.JSON(), w.JSON()); diff != "" {
				t.Errorf("Round trip %#q (-want, +got):\n%s", input, diff)
			}
		}
	}
}

type failWriter struct{ err error }

func (f failWriter) Write([]byte) (int, error) { return 0, f.err }
