// Released under an MIT license. See LICENSE.

// Package tagged provides values wrapped with a user tag.
package tagged

import (
	"github.com/kaguya-lang/kaguya/internal/common/interface/cell"
	"github.com/kaguya-lang/kaguya/internal/common/struct/lazy"
)

// T (tagged) pairs a value with the tag that describes it.
type T struct {
	tag   *lazy.T
	inner *lazy.T
}

type tagged = T

// New wraps inner with tag.
func New(tag, inner *lazy.T) cell.I {
	return &tagged{tag: tag, inner: inner}
}

// Inner returns the wrapped value.
func (t *tagged) Inner() *lazy.T {
	return t.inner
}

// Name returns the type name for tagged values. The real tag is a term
// and must be forced.
func (t *tagged) Name() string {
	return "tagged"
}

// Tag returns the wrapping tag.
func (t *tagged) Tag() *lazy.T {
	return t.tag
}

// A compiler-checked list of interfaces this type satisfies. Never called.
func implements() { //nolint:deadcode,unused
	var t tagged

	// The tagged type is a cell.
	_ = cell.I(&t)
}
