// Released under an MIT license. See LICENSE.

package commands

import (
	"math/big"
	"testing"

	"github.com/kaguya-lang/kaguya/internal/common/interface/cell"
	"github.com/kaguya-lang/kaguya/internal/common/interface/literal"
	"github.com/kaguya-lang/kaguya/internal/common/struct/fault"
	"github.com/kaguya-lang/kaguya/internal/common/type/num"
	"github.com/kaguya-lang/kaguya/internal/common/type/str"
)

func rat(s string) *big.Rat {
	r, ok := (&big.Rat{}).SetString(s)
	if !ok {
		panic("bad rational: " + s)
	}

	return r
}

func TestBinary(t *testing.T) {
	tests := []struct {
		op       string
		a, b     string
		expected string
	}{
		{"add", "1", "2", "3"},
		{"sub", "1", "2", "-1"},
		{"mul", "3/2", "4", "6"},
		{"div", "1", "4", "0.25"},
		{"div-floor", "7", "2", "3"},
		{"div-floor", "-7", "2", "-3"},
		{"rem", "7", "2", "1"},
		{"rem", "-7", "2", "-1"},
		{"gt", "2", "1", "true"},
		{"lt", "2", "1", "false"},
	}

	ops := Binary()

	for _, test := range tests {
		c, err := ops[test.op](rat(test.a), rat(test.b))
		if err != nil {
			t.Fatalf("%s %s %s: unexpected error %v", test.op, test.a, test.b, err)
		}

		actual, _ := literal.String(c)
		if actual != test.expected {
			t.Fatalf("%s %s %s: expected %s, got %s",
				test.op, test.a, test.b, test.expected, actual)
		}
	}
}

func TestDivisionByZero(t *testing.T) {
	for _, op := range []string{"div", "div-floor", "rem"} {
		_, err := Binary()[op](rat("1"), rat("0"))
		if !fault.Is(err, fault.User) {
			t.Fatalf("%s: expected a panic, got %v", op, err)
		}
	}
}

func TestConcat(t *testing.T) {
	c, err := Concat([]cell.I{str.New("ab"), str.New(""), str.New("c")})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	if s := str.To(c).String(); s != "abc" {
		t.Fatalf("expected abc, got %s", s)
	}

	_, err = Concat([]cell.I{str.New("a"), num.Int(1)})
	if !fault.Is(err, fault.Mismatch) {
		t.Fatalf("expected a type error, got %v", err)
	}
}

func TestUnaryTypeErrors(t *testing.T) {
	_, err := Unary()["not"](num.Int(1))
	if err == nil || err.Error() != "Expecting type of bool, found rational." {
		t.Fatalf("expected a type error, got %v", err)
	}

	c, err := Unary()["is-int"](num.Int(4))
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	if s, _ := literal.String(c); s != "true" {
		t.Fatalf("expected true, got %s", s)
	}
}
