// Released under an MIT license. See LICENSE.

// Package literal defines the interface for kaguya atoms that can be
// written without forcing anything.
package literal

import (
	"github.com/kaguya-lang/kaguya/internal/common/interface/cell"
)

// I (literal) is any type that can be expressed as a literal.
type I interface {
	Literal() string
}

// String returns the literal string representation for a cell, if possible.
func String(c cell.I) (string, bool) {
	l, ok := c.(I)
	if !ok {
		// Compound terms are rendered by forcing their parts.
		return "", false
	}

	return l.Literal(), true
}
