// Released under an MIT license. See LICENSE.

// Package tag provides kaguya's type tags.
//
// Builtin tags are singletons. Generated tags are unique: two generated
// tags are equal only if they are the same tag, even if they share a name.
package tag

import (
	"strconv"
	"sync/atomic"

	"github.com/kaguya-lang/kaguya/internal/common"
	"github.com/kaguya-lang/kaguya/internal/common/interface/cell"
	"github.com/kaguya-lang/kaguya/internal/common/interface/literal"
)

// T (tag) names a type.
type T struct {
	label     string
	generated bool
}

type tag = T

//nolint:gochecknoglobals
var (
	Bool      = builtin("bool")
	IO        = builtin("io")
	Nil       = builtin("nil")
	Pair      = builtin("pair")
	Procedure = builtin("procedure")
	Rational  = builtin("rational")
	Str       = builtin("str")
	Symbol    = builtin("symbol")

	// Conversions lists the builtin tags that can be applied to a term.
	Conversions = []*T{Bool, IO, Pair, Procedure, Rational, Str, Symbol}

	generated uint64
)

// New creates a unique tag. If label is empty one is made up.
func New(label string) *T {
	if label == "" {
		n := atomic.AddUint64(&generated, 1)
		label = "<tag#" + strconv.FormatUint(n, 10) + ">"
	}

	return &tag{label: label, generated: true}
}

// Generated returns true if t was created by a program.
func (t *tag) Generated() bool {
	return t.generated
}

// Literal returns the literal representation of the tag t.
func (t *tag) Literal() string {
	return t.label
}

// Name returns the type name for the tag t. Tags are applied like
// procedures, apart from nil.
func (t *tag) Name() string {
	if t == Nil {
		return Nil.label
	}

	return Procedure.label
}

// String returns the tag's label.
func (t *tag) String() string {
	return t.label
}

func builtin(label string) *T {
	return &tag{label: label}
}

// A compiler-checked list of interfaces this type satisfies. Never called.
func implements() { //nolint:deadcode,unused
	var t tag

	// The tag type is a cell.
	_ = cell.I(&t)

	// The tag type has a literal representation.
	_ = literal.I(&t)

	// The tag type is a stringer.
	_ = common.Stringer(&t)
}
