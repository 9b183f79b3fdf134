// Released under an MIT license. See LICENSE.

// Package num provides kaguya's rational number type.
package num

import (
	"math/big"
	"strings"

	"github.com/kaguya-lang/kaguya/internal/common"
	"github.com/kaguya-lang/kaguya/internal/common/interface/cell"
	"github.com/kaguya-lang/kaguya/internal/common/interface/literal"
	"github.com/kaguya-lang/kaguya/internal/common/interface/rational"
)

const name = "rational"

// T (num) wraps Go's big.Rat type.
type T big.Rat

type num = T

// Parse creates a num from s. Underscores may be used to group digits.
// It returns false if s is not a number.
func Parse(s string) (cell.I, bool) {
	s = strings.ReplaceAll(s, "_", "")
	if s == "" || strings.ContainsAny(s, "pP") {
		return nil, false
	}

	switch s[0] {
	case '+', '-', '.', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
	default:
		return nil, false
	}

	v := &big.Rat{}
	if _, ok := v.SetString(s); !ok {
		return nil, false
	}

	return Rat(v), true
}

// Int creates a num from the integer i.
func Int(i int64) cell.I {
	return Rat(big.NewRat(i, 1))
}

// Rat wraps the *big.Rat r as a num.
func Rat(r *big.Rat) cell.I {
	return (*num)(r)
}

// Literal returns the literal representation of the num n.
func (n *num) Literal() string {
	return n.String()
}

// Name returns the type name for the num n.
func (n *num) Name() string {
	return name
}

// Rat returns the value of the num n as a *big.Rat.
func (n *num) Rat() *big.Rat {
	return (*big.Rat)(n)
}

// String returns the text of the num n. Numbers with a finite decimal
// expansion are written in plain decimal notation.
func (n *num) String() string {
	r := n.Rat()
	if r.IsInt() {
		return r.Num().String()
	}

	if digits, ok := decimals(r.Denom()); ok {
		return strings.TrimRight(r.FloatString(digits), "0")
	}

	return r.RatString()
}

// decimals returns the number of digits after the decimal point needed to
// write a fraction with denominator d exactly, if there is such a number.
func decimals(d *big.Int) (int, bool) {
	twos, fives := 0, 0

	q := new(big.Int).Set(d)
	m := new(big.Int)

	for {
		if _, m = q.QuoRem(q, big.NewInt(2), m); m.Sign() != 0 {
			q.Mul(q, big.NewInt(2)).Add(q, m)

			break
		}

		twos++
	}

	for {
		if _, m = q.QuoRem(q, big.NewInt(5), m); m.Sign() != 0 {
			q.Mul(q, big.NewInt(5)).Add(q, m)

			break
		}

		fives++
	}

	if q.Cmp(big.NewInt(1)) != 0 {
		return 0, false
	}

	if twos > fives {
		return twos, true
	}

	return fives, true
}

// A compiler-checked list of interfaces this type satisfies. Never called.
func implements() { //nolint:deadcode,unused
	var t num

	// The num type is a cell.
	_ = cell.I(&t)

	// The num type has a literal representation.
	_ = literal.I(&t)

	// The num type is a rational.
	_ = rational.I(&t)

	// The num type is a stringer.
	_ = common.Stringer(&t)
}
