// Released under an MIT license. See LICENSE.

package commands

import (
	"math/big"

	"github.com/kaguya-lang/kaguya/internal/common/interface/cell"
	"github.com/kaguya-lang/kaguya/internal/common/struct/fault"
	"github.com/kaguya-lang/kaguya/internal/common/type/num"
)

func add(a, b *big.Rat) (cell.I, error) {
	return num.Rat((&big.Rat{}).Add(a, b)), nil
}

func div(a, b *big.Rat) (cell.I, error) {
	if b.Sign() == 0 {
		return nil, zero()
	}

	return num.Rat((&big.Rat{}).Quo(a, b)), nil
}

// divFloor returns the integral part of a/b, truncated toward zero.
func divFloor(a, b *big.Rat) (cell.I, error) {
	if b.Sign() == 0 {
		return nil, zero()
	}

	return num.Rat((&big.Rat{}).SetInt(quotient(a, b))), nil
}

func mul(a, b *big.Rat) (cell.I, error) {
	return num.Rat((&big.Rat{}).Mul(a, b)), nil
}

// rem returns a - b*q where q is a/b truncated toward zero. The result
// has the sign of a.
func rem(a, b *big.Rat) (cell.I, error) {
	if b.Sign() == 0 {
		return nil, zero()
	}

	q := (&big.Rat{}).SetInt(quotient(a, b))

	return num.Rat(q.Sub(a, q.Mul(q, b))), nil
}

func sub(a, b *big.Rat) (cell.I, error) {
	return num.Rat((&big.Rat{}).Sub(a, b)), nil
}

func quotient(a, b *big.Rat) *big.Int {
	r := (&big.Rat{}).Quo(a, b)

	return (&big.Int{}).Quo(r.Num(), r.Denom())
}

func zero() error {
	return fault.Panic("Division by zero.")
}
