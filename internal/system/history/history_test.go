// Released under an MIT license. See LICENSE.

//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

package history

import (
	"bytes"
	"io"
	"testing"
)

func TestMissingFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	called := false

	err := Load(func(r io.Reader) (int, error) {
		called = true

		return 0, nil
	})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	if called {
		t.Fatalf("read should not be called when there is no history")
	}
}

func TestRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	err := Save(func(w io.Writer) (int, error) {
		return io.WriteString(w, "(add 1 2)\n")
	})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	var b bytes.Buffer

	err = Load(func(r io.Reader) (int, error) {
		n, err := b.ReadFrom(r)

		return int(n), err
	})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	if b.String() != "(add 1 2)\n" {
		t.Fatalf("expected saved history, got %q", b.String())
	}
}
