// Released under an MIT license. See LICENSE.

package options

import (
	"testing"

	"github.com/docopt/docopt-go"
)

func check(t *testing.T, argv []string, terminal bool) {
	t.Helper()

	opts, err := (&docopt.Parser{HelpHandler: docopt.NoHelpHandler}).ParseArgs(usage, argv, Version)
	if err != nil {
		t.Fatalf("%v: unexpected error %v", argv, err)
	}

	parse(opts, terminal)
}

func TestCommand(t *testing.T) {
	check(t, []string{"-c", "(add 1 2)"}, true)

	if Command() != "(add 1 2)" {
		t.Fatalf("expected command (add 1 2), got %q", Command())
	}

	if Interactive() {
		t.Fatalf("a command is never interactive")
	}
}

func TestInteractive(t *testing.T) {
	check(t, []string{}, true)

	if !Interactive() || !Prelude() || Debug() {
		t.Fatalf("expected interactive with prelude and no debugging")
	}

	check(t, []string{"-i"}, true)

	if Interactive() {
		t.Fatalf("-i should invert interactive mode")
	}
}

func TestScript(t *testing.T) {
	check(t, []string{"-dn", "main.hime", "a", "b"}, true)

	if Script() != "main.hime" {
		t.Fatalf("expected script main.hime, got %q", Script())
	}

	if Interactive() || Prelude() || !Debug() {
		t.Fatalf("expected non-interactive, no prelude, debugging")
	}

	if len(Args()) != 2 {
		t.Fatalf("expected 2 arguments, got %v", Args())
	}
}
