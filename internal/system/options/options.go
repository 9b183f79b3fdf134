// Released under an MIT license. See LICENSE.

// Package options parses kaguya's command line.
package options

import (
	"os"

	"github.com/docopt/docopt-go"
	"github.com/mattn/go-isatty"
)

// Version is reported by -v.
const Version = "kaguya 0.1.0"

//nolint:gochecknoglobals
var (
	args        []string
	command     string
	debug       bool
	interactive bool
	prelude     bool
	script      string
	usage       = `kaguya

Usage:
  kaguya [-dn] SCRIPT [ARGUMENTS...]
  kaguya [-dn] -c COMMAND
  kaguya [-din]
  kaguya -h
  kaguya -v

Arguments:
  ARGUMENTS  Bound, as a list of strings, to @args.
  SCRIPT     Path to a kaguya program.

Options:
  -c, --command=COMMAND  Run the specified command.
  -d, --debug            Log what the interpreter is doing.
  -i, --interactive      Invert interactive mode.
  -n, --no-prelude       Do not load the standard definitions.
  -h, --help             Display this help.
  -v, --version          Print kaguya version.

If kaguya's stdin is a TTY, and kaguya was invoked with no script or
command, it reads expressions interactively. Otherwise, the program is
read from stdin.
`
)

// Args returns the arguments that follow the script.
func Args() []string {
	return args
}

// Command returns the command passed with -c.
func Command() string {
	return command
}

// Debug returns true if debug logging was requested.
func Debug() bool {
	return debug
}

// Interactive returns true if expressions are read from a terminal.
func Interactive() bool {
	return interactive
}

// Parse parses the command line in os.Args.
func Parse() {
	opts, err := docopt.ParseArgs(usage, os.Args[1:], Version)
	if err != nil {
		// Error in the usage doc. This should never happen.
		panic(err.Error())
	}

	parse(opts, isatty.IsTerminal(os.Stdin.Fd()))
}

// Prelude returns true unless -n was passed.
func Prelude() bool {
	return prelude
}

// Script returns the path of the script to run, if any.
func Script() string {
	return script
}

func parse(opts docopt.Opts, terminal bool) {
	command, _ = opts.String("--command")
	debug, _ = opts.Bool("--debug")
	script, _ = opts.String("SCRIPT")

	noPrelude, _ := opts.Bool("--no-prelude")
	prelude = !noPrelude

	interactive = script == "" && command == "" && terminal

	invertInteractive, _ := opts.Bool("--interactive")
	interactive = interactive != invertInteractive

	args, _ = opts["ARGUMENTS"].([]string)
}
