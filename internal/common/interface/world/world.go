// Released under an MIT license. See LICENSE.

// Package world defines the host capabilities that effects are run against.
package world

import (
	"context"

	"github.com/kaguya-lang/kaguya/internal/common/struct/lazy"
)

// I (world) performs the primitive effects.
type I interface {
	// Define installs v as an alternative for k in the top-level scope.
	Define(k string, v *lazy.T)

	// Import resolves path, then loads and runs it unless already loaded.
	Import(ctx context.Context, path string) error

	Print(s string) error
	Println() error
}
