package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	ansicolor "github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"
	"gopkg.in/yaml.v3"
)

const name = "columnizer"

const longHelp = `Formats strings into columns. Each string is split on the delimiter
and its fields become one column of the output.

Separators accept a single character or a backslash escape such as \n or \t.
Flags may also be set through COLUMNIZER_<FLAG> environment variables or a
YAML config file given with -config.

EXAMPLE
  columnizer -d " " -r "\n" -c " " -- "a b c" "1 2 3"
  a 1
  b 2
  c 3`

func main() {
	fd := os.Stderr.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		ansicolor.NoColor = true
	}
	stderr := colorable.NewColorableStderr()

	if err := realMain(
		context.Background(),
		os.Args,
		os.Stdout,
		stderr,
	); err != nil {
		reporter{w: stderr}.printError(err)
		os.Exit(1)
	}
}

func realMain(
	ctx context.Context,
	args []string,
	stdout io.Writer,
	stderr io.Writer,
) error {
	exec := args[0]
	report := reporter{w: stderr}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	sep := defaultSeparators()
	flagDelim := charFlag(sep.delim)
	flagRow := charFlag(sep.row)
	flagCol := charFlag(sep.col)
	flagLimit := sizeFlag(defaultBufferLimit)

	fs.Var(&flagDelim, "d", "input delimiter character, cannot be NUL")
	fs.Var(&flagRow, "r", "output row separator character")
	fs.Var(&flagCol, "c", "output column separator character")
	fs.Var(&flagLimit, "m", "output buffer size limit, 0 disables it")
	_ = fs.String("config", "", "YAML config file")

	rootCmd := &ffcli.Command{
		Name:       name,
		ShortUsage: fmt.Sprintf("%v [flags] [--] [strings...]", exec),
		ShortHelp:  "Formats strings into columns.",
		LongHelp:   longHelp,
		FlagSet:    fs,
		Options: []ff.Option{
			ff.WithEnvVarPrefix("COLUMNIZER"),
			ff.WithConfigFileFlag("config"),
			ff.WithConfigFileParser(yamlConfigParser),
		},
		Exec: func(_ context.Context, records []string) error {
			if flagDelim == 0 {
				return argumentError{errors.New("the delimiter cannot be NUL")}
			}

			if len(records) == 0 {
				report.printWarning("Only options were submitted!")
			}

			c := columnizer{
				sep: separators{
					delim: byte(flagDelim),
					col:   byte(flagCol),
					row:   byte(flagRow),
				},
				bufferLimit: uint64(flagLimit),
			}

			return c.write(stdout, records)
		},
	}

	if len(args) < 2 {
		fmt.Fprintln(stderr, ffcli.DefaultUsageFunc(rootCmd))
		return argumentError{errors.New("no arguments")}
	}

	if err := rootCmd.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(stdout, ffcli.DefaultUsageFunc(rootCmd))
			return nil
		}
		return argumentError{err}
	}

	// flag stops at a bare "-" and keeps it as an argument; it is only a
	// record when it comes after "--".
	rest := fs.Args()
	if consumed := len(args) - 1 - len(rest); len(rest) > 0 && rest[0] == "-" &&
		(consumed == 0 || args[consumed] != "--") {
		return argumentError{errors.New("invalid option '-'")}
	}

	return rootCmd.Run(ctx)
}

// argumentError marks failures caused by the command line or its config
// sources. Nothing has been written to stdout when one is returned.
type argumentError struct {
	err error
}

func (e argumentError) Error() string { return e.err.Error() }
func (e argumentError) Unwrap() error { return e.err }

// sizeFlag is a flag.Value holding a byte count such as "64MiB" or "1GB".
type sizeFlag uint64

func (s *sizeFlag) Set(v string) error {
	n, err := humanize.ParseBytes(v)
	if err != nil {
		return err
	}
	*s = sizeFlag(n)
	return nil
}

func (s *sizeFlag) String() string {
	if s == nil {
		return ""
	}
	return humanize.IBytes(uint64(*s))
}

// yamlConfigParser reads a flat YAML mapping of flag names to values.
func yamlConfigParser(r io.Reader, set func(name, value string) error) error {
	var values map[string]string
	if err := yaml.NewDecoder(r).Decode(&values); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse config: %w", err)
	}

	for _, k := range slices.Sorted(maps.Keys(values)) {
		if err := set(k, values[k]); err != nil {
			return err
		}
	}

	return nil
}

const maxMessageLen = 68

type reporter struct {
	w io.Writer
}

func (r reporter) printWarning(msg string) {
	r.print(colorWarning, msg)
}

func (r reporter) printError(err error) {
	r.print(colorError, err.Error())
}

func (r reporter) print(c *ansicolor.Color, msg string) {
	fmt.Fprintf(r.w, "%s %s\n", c.Sprint(name+":"), truncate(msg, maxMessageLen))
}

func truncate(msg string, n int) string {
	const marker = " ..."
	if len(msg) <= n {
		return msg
	}
	cut := n - len(marker)
	for cut > 0 && !utf8.RuneStart(msg[cut]) {
		cut--
	}
	return msg[:cut] + marker
}

var (
	colorError   = ansicolor.New(ansicolor.FgRed)
	colorWarning = ansicolor.New(ansicolor.FgYellow)
)
