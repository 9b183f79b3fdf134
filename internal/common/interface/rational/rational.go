// Released under an MIT license. See LICENSE.

// Package rational defines the interface for kaguya's numeric types.
package rational

import (
	"math/big"

	"github.com/kaguya-lang/kaguya/internal/common/interface/cell"
)

// I (rational) is anything that can be treated as a rational number in kaguya.
type I interface {
	Rat() *big.Rat
}

type rational = I

// Number returns the *big.Rat value for a cell, if possible.
func Number(c cell.I) (*big.Rat, bool) {
	r, ok := c.(rational)
	if !ok {
		return nil, false
	}

	return r.Rat(), true
}
