// Released under an MIT license. See LICENSE.

// Package boot provides what is necessary for bootstrapping kaguya.
package boot

import _ "embed" // Blank import required by embed.

// Name identifies the prelude in source locations.
const Name = "prelude.hime"

//go:embed prelude.hime
var script string //nolint:gochecknoglobals

// Script returns the prelude for kaguya.
func Script() string {
	return script
}
