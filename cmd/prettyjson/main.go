// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Program prettyjson checks JSON input for problems and prints it in an
// indented layout.
//
// Diagnostics are printed first, one per line, in the form
//
//	# line 3: W close after comma
//
// where W marks a warning and E marks an error. If a value was recovered
// from the input, its formatted text follows. The program exits with status
// 0 whether or not the input had problems; it fails only if the input or
// configuration could not be read.
package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/creachadair/prettyjson"
	"github.com/creachadair/prettyjson/dom"
	"github.com/creachadair/prettyjson/dom/cursor"
	"github.com/creachadair/prettyjson/internal/config"
	"github.com/creachadair/prettyjson/internal/errors"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/tailscale/hujson"
)

// options defines the command-line interface.
type options struct {
	File          string   `arg:"" optional:"" type:"path" help:"Input JSON file. If omitted, reads from stdin."`
	Config        string   `help:"Path to a YAML config file. If omitted, .prettyjson.yaml is searched for." type:"path"`
	NoWarnings    bool     `help:"Report errors only, not warnings." short:"q"`
	AllowComments bool     `help:"Accept comments and trailing commas in the input." short:"c"`
	Indent        string   `help:"Indentation for each nesting level (spaces and tabs only)."`
	FixedReals    bool     `help:"Print real numbers with six fractional digits."`
	Path          []string `help:"Print only the value at this path. Repeat for each step; integers index arrays." short:"p" sep:"none"`
	Debug         bool     `help:"Enable debug logging." short:"d"`
}

func main() {
	var opts options
	kong.Parse(&opts,
		kong.Name("prettyjson"),
		kong.Description("Check and pretty-print JSON, tolerating common mistakes."),
		kong.UsageOnError(),
	)

	logger := newLogger(os.Stderr, opts.Debug)
	if err := run(&opts, os.Stdin, os.Stdout, logger); err != nil {
		level.Debug(logger).Log("msg", "run failed", "err", err)
		fmt.Fprintln(os.Stderr, errors.UserFriendlyError(err))
		os.Exit(1)
	}
}

// newLogger returns a logfmt logger writing to w. Only warnings and errors
// are logged unless debug is true.
func newLogger(w io.Writer, debug bool) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)
	allow := level.AllowWarn()
	if debug {
		allow = level.AllowDebug()
	}
	return level.NewFilter(logger, allow)
}

// run executes the main program logic, reading from stdin if no file is
// named in opts. Problems in the input are reported as diagnostics on
// stdout. run reports an error if the configuration or input could not be
// read, if the output could not be written, or if a path was given and it
// could not be resolved, including when no value was recovered.
func run(opts *options, stdin io.Reader, stdout io.Writer, logger log.Logger) error {
	cfg, err := loadConfig(opts, logger)
	if err != nil {
		return err
	}

	input, err := readInput(opts.File, stdin)
	if err != nil {
		return err
	}
	level.Debug(logger).Log("msg", "read input", "source", sourceName(opts.File), "bytes", len(input))

	if cfg.AllowComments {
		std, err := hujson.Standardize(input)
		if err != nil {
			// Leave the input alone and let the parser report the problems.
			level.Warn(logger).Log("msg", "cannot remove comments", "err", err)
		} else {
			input = std
		}
	}

	st := prettyjson.NewStream(bytes.NewReader(input))
	st.EnableWarnings(cfg.Warnings)
	v, diags, perr := dom.ParseStream(st)
	level.Debug(logger).Log("msg", "parsed input",
		"warnings", diags.Count(prettyjson.Warning),
		"errors", diags.Count(prettyjson.Error),
		"ok", perr == nil,
	)

	out := bufio.NewWriter(stdout)
	for _, d := range diags {
		fmt.Fprintln(out, d)
	}
	if perr != nil && len(opts.Path) != 0 {
		out.Flush()
		return errors.NewPathError("no value to select from", errors.ErrNoValue)
	} else if perr == nil {
		if len(opts.Path) != 0 {
			c := cursor.New(v).Down(cursor.ParsePath(opts.Path)...)
			if err := c.Err(); err != nil {
				out.Flush()
				return errors.NewPathError(err.Error(), errors.ErrPathNotFound)
			}
			v = c.Value()
		}
		if err := cfg.Formatter().Format(out, v); err != nil {
			return errors.NewOutputError("failed to format output", err)
		}
		out.WriteByte('\n')
	}
	if err := out.Flush(); err != nil {
		return errors.NewOutputError("failed to write output", err)
	}
	return nil
}

// loadConfig loads the configuration named by opts, or found by searching
// from the working directory, and applies the command-line overrides.
func loadConfig(opts *options, logger log.Logger) (*config.Config, error) {
	cfg := config.NewConfig()
	path := opts.Config
	if path == "" {
		path = config.FindConfigFile()
	}
	if path != "" {
		c, err := config.LoadConfig(path)
		if err != nil {
			return nil, errors.NewConfigError(fmt.Sprintf("cannot load %s", path), err)
		}
		cfg = c
		level.Debug(logger).Log("msg", "loaded config", "path", path)
	}

	// Flags can only turn features on or off relative to the defaults, so
	// each is applied only when set.
	if opts.NoWarnings {
		cfg.Warnings = false
	}
	if opts.AllowComments {
		cfg.AllowComments = true
	}
	if opts.Indent != "" {
		cfg.Format.Indent = opts.Indent
	}
	if opts.FixedReals {
		cfg.Format.FixedReals = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.NewConfigError(err.Error(), err)
	}
	return cfg, nil
}

// readInput reads the entire contents of the named file, or of stdin if
// path is empty.
func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, errors.NewInputError("failed to read from stdin", err)
		}
		return data, nil
	}
	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		return nil, errors.NewInputError(fmt.Sprintf("%s is a directory", path), errors.ErrInvalidPath)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewInputError(fmt.Sprintf("unable to open file %s", path), err)
	}
	return data, nil
}

func sourceName(path string) string {
	if path == "" {
		return "stdin"
	}
	return path
}
