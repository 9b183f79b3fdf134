// Released under an MIT license. See LICENSE.

package parser_test

import (
	"context"
	"errors"
	"testing"

	"github.com/kaguya-lang/kaguya/internal/common/struct/lazy"
	"github.com/kaguya-lang/kaguya/internal/engine/boot"
	"github.com/kaguya-lang/kaguya/internal/engine/task"
	"github.com/kaguya-lang/kaguya/internal/reader/lexer"
	"github.com/kaguya-lang/kaguya/internal/reader/parser"
)

func check(t *testing.T, s string) string {
	t.Helper()

	p := parse(t, s)
	r := parse(t, p)

	if p != r {
		t.Fatalf("Parsed (%s) and reparsed (%s) do not match", p, r)
	}

	return p
}

func failure(t *testing.T, s string) *parser.Error {
	t.Helper()

	l := lexer.New("test")

	l.Scan(s)

	err := parser.New(func(_ *lazy.T) {}, l.Token).Parse()

	var e *parser.Error
	if !errors.As(err, &e) {
		t.Fatalf("%q: expected a parse error, got %v", s, err)
	}

	return e
}

func parse(t *testing.T, s string) string {
	t.Helper()

	l := lexer.New("test")

	l.Scan(s)

	r := ""

	err := parser.New(func(b *lazy.T) {
		c, err := b.Force(context.Background())
		if err != nil {
			t.Fatalf("%q: unexpected error %v", s, err)
		}

		text, err := task.Literal(context.Background(), c)
		if err != nil {
			t.Fatalf("%q: unexpected error %v", s, err)
		}

		r += text + "\n"
	}, l.Token).Parse()
	if err != nil {
		t.Fatalf("%q: unexpected error %v", s, err)
	}

	return r
}

func TestBoot(t *testing.T) {
	check(t, boot.Script())
}

func TestDottedPair(t *testing.T) {
	if p := check(t, "(a . b)\n(a b . c)\n"); p != "(a . b)\n(a b . c)\n" {
		t.Fatalf("unexpected rendering %q", p)
	}
}

func TestExtraAfterDot(t *testing.T) {
	e := failure(t, "(a . b c)\n")

	if e.Message != "Expecting ')'. Only one element is allowed after a dot." {
		t.Fatalf("unexpected message %q", e.Message)
	}
}

func TestLiterals(t *testing.T) {
	p := check(t, "(1 -2 0.5 1/3 true false sym)\n")

	if p != "(1 -2 0.5 1/3 true false sym)\n" {
		t.Fatalf("unexpected rendering %q", p)
	}
}

func TestPrefixes(t *testing.T) {
	p := check(t, "'a `(b ,c ,@d)\n")

	if p != "(quote a)\n(quasiquote (b (unquote c) (unquote-splicing d)))\n" {
		t.Fatalf("unexpected rendering %q", p)
	}
}

func TestRawString(t *testing.T) {
	if p := check(t, `r#"a "quoted" \n"#`+"\n"); p != `"a \"quoted\" \\n"`+"\n" {
		t.Fatalf("unexpected rendering %q", p)
	}
}

func TestString(t *testing.T) {
	if p := check(t, `"tab\there"`+"\n"); p != `"tab\there"`+"\n" {
		t.Fatalf("unexpected rendering %q", p)
	}
}

func TestUnclosed(t *testing.T) {
	e := failure(t, "(a (b)\n")

	if !e.Incomplete {
		t.Fatalf("an unclosed list should be incomplete")
	}
}

func TestUnexpectedClose(t *testing.T) {
	e := failure(t, ")\n")

	if e.Incomplete || e.Message != "Unexpected ')'." {
		t.Fatalf("unexpected error %+v", e)
	}
}
