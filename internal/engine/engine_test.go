// Released under an MIT license. See LICENSE.

package engine_test

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/kaguya-lang/kaguya/internal/common/struct/fault"
	"github.com/kaguya-lang/kaguya/internal/engine"
	"github.com/kaguya-lang/kaguya/internal/engine/task"
	"github.com/kaguya-lang/kaguya/internal/reader"
)

type harness struct {
	e   *engine.T
	out *bytes.Buffer
	t   *testing.T
}

func setup(t *testing.T) *harness {
	t.Helper()

	out := &bytes.Buffer{}

	e, err := engine.New(engine.Options{Out: out, Prelude: true})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	return &harness{e: e, out: out, t: t}
}

func (h *harness) expect(text, expected string) {
	h.t.Helper()

	terms, err := reader.Parse("test", text)
	if err != nil {
		h.t.Fatalf("%q: unexpected error %v", text, err)
	}

	ctx := context.Background()

	var s string

	for _, b := range terms {
		c, err := h.e.Execute(ctx, b)
		if err != nil {
			h.t.Fatalf("%q: unexpected error %v", text, err)
		}

		s, err = task.Literal(ctx, c)
		if err != nil {
			h.t.Fatalf("%q: unexpected error %v", text, err)
		}
	}

	if s != expected {
		h.t.Fatalf("%q: expected %s, got %s", text, expected, s)
	}
}

func (h *harness) load(text string) error {
	h.t.Helper()

	return h.e.Load(context.Background(), "test", text)
}

func TestClosures(t *testing.T) {
	h := setup(t)

	h.expect(`
		(def (make n) -> (fn () -> n))
		(def c1 -> (make 1))
		(def c2 -> (make 2))
		(cons (c1) (c2))
	`, "(1 . 2)")
}

func TestEnginesAreIndependent(t *testing.T) {
	a, b := setup(t), setup(t)

	a.expect("(def x -> 1) x", "1")
	b.expect("(def x -> 2) x", "2")
	a.expect("x", "1")
}

func TestImport(t *testing.T) {
	h := setup(t)

	dir := t.TempDir()
	lib := filepath.Join(dir, "lib.hime")

	err := os.WriteFile(lib, []byte(`(def (double x) -> (mul 2 x))
(println "loaded")
`), 0o600)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	err = h.load(fmt.Sprintf("(import %q)\n(import %q)\n", lib, lib))
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	if h.out.String() != "loaded\n" {
		t.Fatalf("expected the library to be loaded once, got %q", h.out.String())
	}

	h.expect("(double 21)", "42")
}

func TestImportPattern(t *testing.T) {
	h := setup(t)

	dir := t.TempDir()

	for _, name := range []string{"b.hime", "a.hime", "c.txt"} {
		text := fmt.Sprintf("(print %q)\n", name)

		err := os.WriteFile(filepath.Join(dir, name), []byte(text), 0o600)
		if err != nil {
			t.Fatalf("unexpected error %v", err)
		}
	}

	err := h.load(fmt.Sprintf("(import %q)\n", filepath.Join(dir, "*.hime")))
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	if h.out.String() != "a.himeb.hime" {
		t.Fatalf("expected matching files in name order, got %q", h.out.String())
	}
}

func TestMissingImport(t *testing.T) {
	h := setup(t)

	err := h.load(fmt.Sprintf("(import %q)\n", filepath.Join(t.TempDir(), "missing.hime")))
	if !fault.Is(err, fault.Host) {
		t.Fatalf("expected a host fault, got %v", err)
	}
}

func TestOverloads(t *testing.T) {
	h := setup(t)

	h.expect(`
		(def (f 0) -> "zero")
		(def (f 1) -> "one")
		(def (f n) -> (concat-str "many: " (str n)))
		(list (f 0) (f 1) (f 2))
	`, `("zero" "one" "many: 2")`)
}

func TestPrelude(t *testing.T) {
	h := setup(t)

	h.expect("(length (list 1 2 3))", "3")
	h.expect("(map (fn (x) -> (mul x x)) (list 1 2 3))", "(1 4 9)")
	h.expect("(foldl add 0 (list 1 2 3))", "6")
	h.expect("(or false true)", "true")
	h.expect("(or)", "false")
	h.expect("(when true 5)", "5")
	h.expect(`(println "hello")`, "()")

	if h.out.String() != "hello\n" {
		t.Fatalf("expected hello, got %q", h.out.String())
	}
}

func TestOverloadedRecursion(t *testing.T) {
	h := setup(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := h.e.Load(ctx, "test", `
(def (fib 0) -> 0)
(def (fib 1) -> 1)
(def (fib n) -> (add (fib (sub n 1)) (fib (sub n 2))))
(println (fib 15))
`)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	if h.out.String() != "610\n" {
		t.Fatalf("expected 610, got %q", h.out.String())
	}
}

func TestArgs(t *testing.T) {
	out := &bytes.Buffer{}

	e, err := engine.New(engine.Options{Args: []string{"a", "b c"}, Out: out, Prelude: true})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	err = e.Load(context.Background(), "test", `(println (eq @args '("a" "b c")))`+"\n")
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	if s := out.String(); s != "true\n" {
		t.Fatalf("expected @args to be bound, got %q", s)
	}
}

func TestLog(t *testing.T) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)

	e, err := engine.New(engine.Options{Log: log, Out: &bytes.Buffer{}})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	err = e.Load(context.Background(), "test", "(def x -> 1)\n")
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	defined := false

	for _, entry := range hook.AllEntries() {
		if entry.Message == "define" && entry.Data["symbol"] == "x" {
			defined = true
		}
	}

	if !defined {
		t.Fatalf("expected a define entry for x")
	}

	hook.Reset()
	log.SetLevel(logrus.WarnLevel)

	err = e.Load(context.Background(), "test", "(def y -> 2)\n")
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	if n := len(hook.AllEntries()); n != 0 {
		t.Fatalf("expected no entries above debug level, got %d", n)
	}
}

func TestNoPrelude(t *testing.T) {
	e, err := engine.New(engine.Options{Out: &bytes.Buffer{}})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	err = e.Load(context.Background(), "test", "(list 1)\n")
	if !fault.Is(err, fault.Undefined) {
		t.Fatalf("expected list to be undefined, got %v", err)
	}

	for _, n := range e.Names() {
		if n == "list" {
			t.Fatalf("list should not be defined without the prelude")
		}
	}
}

func TestReport(t *testing.T) {
	h := setup(t)

	err := h.load("(def (g 0) -> 1)\n(g 2)\n")

	expected := "Program panicked with following message: No pattern matches the call.\n" +
		"at test -- 2:1..2:5;\n"

	if r := h.e.Report(err); r != expected {
		t.Fatalf("expected %q, got %q", expected, r)
	}

	err = h.load("(a\n")

	expected = "Program panicked with following message: Unexpected EOF. This '(' was never closed.\n" +
		"at test -- 1:1..1:1;\n"

	if r := h.e.Report(err); r != expected {
		t.Fatalf("expected %q, got %q", expected, r)
	}
}
