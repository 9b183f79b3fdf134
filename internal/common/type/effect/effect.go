// Released under an MIT license. See LICENSE.

// Package effect provides kaguya's deferred effects.
//
// An effect is an inert description of work for the host. Evaluating an
// effect yields the effect itself. Nothing happens until it is unwrapped
// against a world.
package effect

import (
	"github.com/kaguya-lang/kaguya/internal/common/interface/cell"
	"github.com/kaguya-lang/kaguya/internal/common/struct/lazy"
)

const name = "io"

// Definition installs Form as an alternative for Label at the top level.
type Definition struct {
	Label string
	Form  *lazy.T
}

// Import loads the file named by Path.
type Import struct {
	Path *lazy.T
}

// Join runs every effect in the list Effects concurrently.
type Join struct {
	Effects *lazy.T
}

// Print writes the text Text.
type Print struct {
	Text *lazy.T
}

// Println writes a newline.
type Println struct{}

// Pure produces Value without touching the host.
type Pure struct {
	Value *lazy.T
}

// Then feeds the result of Former to Func, which must produce an effect.
type Then struct {
	Func   *lazy.T
	Former *lazy.T
}

// Name returns the type name for effects.
func (*Definition) Name() string { return name }

// Name returns the type name for effects.
func (*Import) Name() string { return name }

// Name returns the type name for effects.
func (*Join) Name() string { return name }

// Name returns the type name for effects.
func (*Print) Name() string { return name }

// Name returns the type name for effects.
func (*Println) Name() string { return name }

// Name returns the type name for effects.
func (*Pure) Name() string { return name }

// Name returns the type name for effects.
func (*Then) Name() string { return name }

// Functions specific to effect.

// Is returns true if c is an effect.
func Is(c cell.I) bool {
	switch c.(type) {
	case *Definition, *Import, *Join, *Print, *Println, *Pure, *Then:
		return true
	}

	return false
}
