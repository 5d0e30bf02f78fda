// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/creachadair/prettyjson/internal/errors"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runString runs the program on input with the given options and returns
// its output.
func runString(t *testing.T, opts *options, input string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := run(opts, strings.NewReader(input), &out, log.NewNopLogger())
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestRun_Clean(t *testing.T) {
	t.Chdir(t.TempDir())

	out, err := runString(t, &options{}, `{"b": [true, false], "a": null}`)
	require.NoError(t, err)
	assert.Equal(t, "{ \"a\": null, \n"+
		"  \"b\": [ \n"+
		"      true, \n"+
		"      false\n"+
		"    ]\n"+
		"}\n", out)
}

func TestRun_Warnings(t *testing.T) {
	t.Chdir(t.TempDir())

	out, err := runString(t, &options{}, "{\"a\": 1,\n}")
	require.NoError(t, err)
	assert.Equal(t, "# line 2: W close after comma\n{ \"a\": 1\n}\n", out)

	out, err = runString(t, &options{NoWarnings: true}, "{\"a\": 1,\n}")
	require.NoError(t, err)
	assert.Equal(t, "{ \"a\": 1\n}\n", out)
}

func TestRun_FatalError(t *testing.T) {
	t.Chdir(t.TempDir())

	// A fatal syntax error is reported as a diagnostic, not a program failure.
	out, err := runString(t, &options{}, `{"a":`)
	require.NoError(t, err)
	assert.Equal(t, "# line 1: E unexpected EOF\n", out)

	out, err = runString(t, &options{}, "[1,\n nope]")
	require.NoError(t, err)
	assert.Equal(t, "# line 2: E token nope illegal\n", out)
}

func TestRun_MismatchedClose(t *testing.T) {
	t.Chdir(t.TempDir())

	out, err := runString(t, &options{}, `{"a": [1}`)
	require.NoError(t, err)
	assert.Equal(t, "# line 1: W closed object instead of array\n"+
		"# line 1: E unexpected EOF\n", out)
}

func TestRun_InputFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := writeFile(t, dir, "input.json", "[1, 2.5, \"x\"]\n")
	var out bytes.Buffer
	err := run(&options{File: path}, strings.NewReader("ignored"), &out, log.NewNopLogger())
	require.NoError(t, err)
	assert.Equal(t, "[ 1, \n  2.5, \n  \"x\"\n]\n", out.String())
}

func TestRun_InputErrors(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	t.Run("Missing", func(t *testing.T) {
		_, err := runString(t, &options{File: filepath.Join(dir, "nonesuch.json")}, "")
		require.Error(t, err)
		assert.ErrorIs(t, err, errors.NewInputError("", nil))
		assert.Contains(t, errors.UserFriendlyError(err), "Input error: unable to open file")
	})

	t.Run("Directory", func(t *testing.T) {
		_, err := runString(t, &options{File: dir}, "")
		require.Error(t, err)
		assert.ErrorIs(t, err, errors.NewInputError("", nil))
		assert.ErrorIs(t, err, errors.ErrInvalidPath)
	})
}

func TestRun_AllowComments(t *testing.T) {
	t.Chdir(t.TempDir())

	const input = "// note\n{\"a\": 1, /* x */ \"b\": [true,],}\n"
	out, err := runString(t, &options{AllowComments: true}, input)
	require.NoError(t, err)
	assert.Equal(t, "{ \"a\": 1, \n"+
		"  \"b\": [ \n"+
		"      true\n"+
		"    ]\n"+
		"}\n", out)

	// Without the option, the comment markers are reported.
	out, err = runString(t, &options{}, input)
	require.NoError(t, err)
	assert.Contains(t, out, "# line 1: W token / unexpected\n")
}

func TestRun_AllowCommentsInvalid(t *testing.T) {
	t.Chdir(t.TempDir())

	// The input is not valid HuJSON, so it is passed to the parser unchanged.
	out, err := runString(t, &options{AllowComments: true}, "[1 2]")
	require.NoError(t, err)
	assert.Equal(t, "# line 1: W comma expected between array values\n[ 1, \n  2\n]\n", out)
}

func TestRun_Path(t *testing.T) {
	t.Chdir(t.TempDir())

	const input = `{"x": {"y": [1, 2]}, "z": "hi"}`
	tests := []struct {
		path []string
		want string
	}{
		{[]string{"x", "y", "-1"}, "2\n"},
		{[]string{"x", "y", "0"}, "1\n"},
		{[]string{"z"}, "\"hi\"\n"},
		{[]string{"x"}, "{ \"y\": [ \n      1, \n      2\n    ]\n}\n"},
		{[]string{"1"}, "\"hi\"\n"}, // objects are indexed by sorted key
	}
	for _, tc := range tests {
		t.Run(strings.Join(tc.path, "/"), func(t *testing.T) {
			out, err := runString(t, &options{Path: tc.path}, input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, out)
		})
	}

	t.Run("NotFound", func(t *testing.T) {
		_, err := runString(t, &options{Path: []string{"x", "q"}}, input)
		require.Error(t, err)
		assert.ErrorIs(t, err, errors.ErrPathNotFound)
		assert.Equal(t, `Path error: key "q" not found`, errors.UserFriendlyError(err))
	})

	t.Run("NoValue", func(t *testing.T) {
		// The diagnostics explain why there is nothing to select from.
		out, err := runString(t, &options{Path: []string{"x"}}, `{"x": nope}`)
		require.Error(t, err)
		assert.Equal(t, "# line 1: E token nope illegal\n", out)
		assert.ErrorIs(t, err, errors.ErrNoValue)
		assert.ErrorIs(t, err, errors.NewPathError("", nil))
		assert.Equal(t, "Path error: no value to select from", errors.UserFriendlyError(err))
	})

	t.Run("WithWarnings", func(t *testing.T) {
		// Diagnostics are printed even when the path is missing.
		out, err := runString(t, &options{Path: []string{"w"}}, `{"a": 1,}`)
		require.Error(t, err)
		assert.Equal(t, "# line 1: W close after comma\n", out)
	})
}

func TestRun_Indent(t *testing.T) {
	t.Chdir(t.TempDir())

	out, err := runString(t, &options{Indent: "\t"}, "[[1]]")
	require.NoError(t, err)
	assert.Equal(t, "[ [ \n\t\t\t1\n\t\t]\n]\n", out)

	_, err = runString(t, &options{Indent: "xx"}, "[[1]]")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.NewConfigError("", nil))
	assert.Contains(t, errors.UserFriendlyError(err), "Configuration error: indent")
}

func TestRun_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := writeFile(t, dir, "custom.yaml", "warnings: false\nformat:\n  fixed_reals: true\n")
	out, err := runString(t, &options{Config: path}, "[1.5,]")
	require.NoError(t, err)
	assert.Equal(t, "[ 1.500000\n]\n", out)

	// Flags take effect on top of the file.
	out, err = runString(t, &options{Config: path, Indent: " "}, "[1.5, 2]")
	require.NoError(t, err)
	assert.Equal(t, "[ 1.500000, \n 2\n]\n", out)
}

func TestRun_ConfigSearch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".prettyjson.yaml", "format:\n  indent: \"    \"\n")
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0700))
	t.Chdir(sub)

	out, err := runString(t, &options{}, "[1, 2]")
	require.NoError(t, err)
	assert.Equal(t, "[ 1, \n    2\n]\n", out)
}

func TestRun_ConfigErrors(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	tests := []struct {
		name    string
		content string
	}{
		{"UnknownField", "colour: blue\n"},
		{"BadYAML", "format: [\n"},
		{"BadIndent", "format:\n  indent: \"--\"\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := writeFile(t, dir, tc.name+".yaml", tc.content)
			_, err := runString(t, &options{Config: path}, "1")
			require.Error(t, err)
			assert.ErrorIs(t, err, errors.NewConfigError("", nil))
		})
	}

	t.Run("Missing", func(t *testing.T) {
		_, err := runString(t, &options{Config: filepath.Join(dir, "nonesuch.yaml")}, "1")
		require.Error(t, err)
		assert.ErrorIs(t, err, errors.NewConfigError("", nil))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, os.ErrClosed }

func TestRun_OutputError(t *testing.T) {
	t.Chdir(t.TempDir())

	err := run(&options{}, strings.NewReader("[1]"), failWriter{}, log.NewNopLogger())
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.NewOutputError("", nil))
	assert.ErrorIs(t, err, os.ErrClosed)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, false)
	level.Debug(logger).Log("msg", "hidden")
	level.Warn(logger).Log("msg", "shown")

	got := buf.String()
	assert.NotContains(t, got, "hidden")
	assert.Contains(t, got, "level=warn")
	assert.Contains(t, got, "msg=shown")

	buf.Reset()
	logger = newLogger(&buf, true)
	level.Debug(logger).Log("msg", "visible")
	assert.Contains(t, buf.String(), "level=debug")
	assert.Contains(t, buf.String(), "msg=visible")
}
