// Released under an MIT license. See LICENSE.

package sym

import (
	"github.com/kaguya-lang/kaguya/internal/common/interface/cell"
)

// Is returns true if c is a sym.
func Is(c cell.I) bool {
	_, ok := c.(*sym)

	return ok
}

// IsIgnore returns true if c is the wildcard symbol.
func IsIgnore(c cell.I) bool {
	s, ok := c.(*sym)

	return ok && string(*s) == Ignore
}

// To returns a sym if c is a sym; Otherwise it panics.
func To(c cell.I) *sym {
	if t, ok := c.(*sym); ok {
		return t
	}

	panic(c.Name() + " is not a " + name)
}
