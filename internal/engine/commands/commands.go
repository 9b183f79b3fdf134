// Released under an MIT license. See LICENSE.

// Package commands provides kaguya's strict primitives. They operate on
// terms that have already been forced.
package commands

import (
	"math/big"

	"github.com/kaguya-lang/kaguya/internal/common/interface/cell"
	"github.com/kaguya-lang/kaguya/internal/common/interface/rational"
	"github.com/kaguya-lang/kaguya/internal/common/struct/fault"
	"github.com/kaguya-lang/kaguya/internal/common/type/boolean"
)

// Binary returns the primitives that take two rationals.
func Binary() map[string]func(a, b *big.Rat) (cell.I, error) {
	return map[string]func(a, b *big.Rat) (cell.I, error){
		"add":       add,
		"div":       div,
		"div-floor": divFloor,
		"gt":        gt,
		"lt":        lt,
		"mul":       mul,
		"rem":       rem,
		"sub":       sub,
	}
}

// Unary returns the primitives that take a single term.
func Unary() map[string]func(cell.I) (cell.I, error) {
	return map[string]func(cell.I) (cell.I, error){
		"is-int": isInt,
		"not":    not,
	}
}

// Number returns the value of c if c is a rational.
func Number(c cell.I) (*big.Rat, error) {
	r, ok := rational.Number(c)
	if !ok {
		return nil, fault.TypeError("rational", c.Name())
	}

	return r, nil
}

// Truth returns the value of c if c is a bool.
func Truth(c cell.I) (bool, error) {
	b, ok := c.(*boolean.T)
	if !ok {
		return false, fault.TypeError("bool", c.Name())
	}

	return b.Bool(), nil
}
