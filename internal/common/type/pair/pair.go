// Released under an MIT license. See LICENSE.

// Package pair provides kaguya's cons cell type.
package pair

import (
	"github.com/kaguya-lang/kaguya/internal/common/interface/cell"
	"github.com/kaguya-lang/kaguya/internal/common/struct/lazy"
)

const name = "pair"

//nolint:gochecknoglobals
var (
	// Null is the empty list. It is also used to mark the end of a list.
	Null cell.I
)

// T (pair) is a cons cell. Both halves are lazy.
type T struct {
	car *lazy.T
	cdr *lazy.T
}

type pair = T

// Name returns the name for a pair type.
func (p *pair) Name() string {
	if p == Null {
		return "nil"
	}

	return name
}

// Car returns the car/head/first member of the pair p.
func (p *pair) Car() *lazy.T {
	return p.car
}

// Cdr returns the cdr/tail/rest member of the pair p.
func (p *pair) Cdr() *lazy.T {
	return p.cdr
}

// Functions specific to pair.

// Cons conses h and t together to form a new pair.
func Cons(h, t *lazy.T) cell.I {
	return &pair{car: h, cdr: t}
}

// Is returns true if c is a non-empty pair.
func Is(c cell.I) bool {
	p, ok := c.(*pair)

	return ok && p != Null
}

// To returns a *pair if c is a non-empty pair; Otherwise it panics.
func To(c cell.I) *pair {
	if p, ok := c.(*pair); ok && p != Null {
		return p
	}

	panic(c.Name() + " is not a pair")
}

// A compiler-checked list of interfaces this type satisfies. Never called.
func implements() { //nolint:deadcode,unused
	var t pair

	// The pair type is a cell.
	_ = cell.I(&t)
}

func init() { //nolint:gochecknoinits
	null := &pair{}

	Null = cell.I(null)
}
