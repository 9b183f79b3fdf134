// Released under an MIT license. See LICENSE.

// Package str provides kaguya's text type.
package str

import (
	"strings"
	"unicode/utf8"

	"github.com/kaguya-lang/kaguya/internal/common"
	"github.com/kaguya-lang/kaguya/internal/common/interface/cell"
	"github.com/kaguya-lang/kaguya/internal/common/interface/literal"
	"github.com/michaelmacinnis/adapted"
)

const name = "str"

// T (str) wraps Go's string type.
type T string

type str = T

//nolint:gochecknoglobals
var quotes = strings.NewReplacer(`\'`, `'`, `"`, `\"`)

// New creates a new str cell.
func New(v string) cell.I {
	s := str(v)

	return &s
}

// Empty returns true if s has no characters.
func (s *str) Empty() bool {
	return len(*s) == 0
}

// First returns the first character of s and the rest of s.
// The str s must not be empty.
func (s *str) First() (cell.I, cell.I) {
	_, w := utf8.DecodeRuneInString(string(*s))

	return New(string(*s)[:w]), New(string(*s)[w:])
}

// Literal returns the double-quoted representation of the str s.
func (s *str) Literal() string {
	q := adapted.CanonicalString(string(*s))

	return `"` + quotes.Replace(q[2:len(q)-1]) + `"`
}

// Name returns the name of the str type.
func (s *str) Name() string {
	return name
}

// String returns the text of the str s.
func (s *str) String() string {
	return string(*s)
}

// A compiler-checked list of interfaces this type satisfies. Never called.
func implements() { //nolint:deadcode,unused
	var t str

	// The str type is a cell.
	_ = cell.I(&t)

	// The str type has a literal representation.
	_ = literal.I(&t)

	// The str type is a stringer.
	_ = common.Stringer(&t)
}
