// Released under an MIT license. See LICENSE.

// Package scope defines the interface for kaguya's lexical environments.
package scope

import (
	"github.com/kaguya-lang/kaguya/internal/common/struct/lazy"
)

// I (scope) maps names to lazy bindings.
type I interface {
	// Lookup returns the binding for k or nil if k is not bound.
	Lookup(k string) *lazy.T
}
