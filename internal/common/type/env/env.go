// Released under an MIT license. See LICENSE.

// Package env provides kaguya's lexical environments.
//
// A child scope is built once from the names a pattern bound and is never
// changed. The global scope is the only mutable one: defining a name again
// adds an alternative, and a name with several alternatives looks up as a
// poly procedure over all of them in the order they were defined.
package env

import (
	"github.com/kaguya-lang/kaguya/internal/common/interface/scope"
	"github.com/kaguya-lang/kaguya/internal/common/struct/hash"
	"github.com/kaguya-lang/kaguya/internal/common/struct/lazy"
	"github.com/kaguya-lang/kaguya/internal/common/type/list"
	"github.com/kaguya-lang/kaguya/internal/common/type/proc"
	"github.com/kaguya-lang/kaguya/internal/common/type/sym"
)

// Child is an immutable scope nested in another.
type Child struct {
	previous scope.I
	m        map[string]*lazy.T
}

// NewChild creates a scope with the bindings in m nested in previous.
// The map m must not be changed afterwards.
func NewChild(m map[string]*lazy.T, previous scope.I) *Child {
	return &Child{previous: previous, m: m}
}

// Enclosing returns the enclosing scope.
func (c *Child) Enclosing() scope.I {
	return c.previous
}

// Lookup retrieves the binding for the name k, searching outward.
func (c *Child) Lookup(k string) *lazy.T {
	if v, ok := c.m[k]; ok {
		return v
	}

	if c.previous == nil {
		return nil
	}

	return c.previous.Lookup(k)
}

// Empty is a scope where nothing is bound.
type Empty struct{}

// Lookup always fails.
func (Empty) Lookup(string) *lazy.T {
	return nil
}

// Global is a mutable, overload-aware scope.
type Global struct {
	previous scope.I
	*hash.T
}

// NewGlobal creates a global scope nested in previous.
func NewGlobal(previous scope.I) *Global {
	return &Global{previous: previous, T: hash.New()}
}

// Define adds v as an alternative for the name k. The wildcard is ignored.
func (g *Global) Define(k string, v *lazy.T) {
	if k == sym.Ignore {
		return
	}

	g.Add(k, v)
}

// Enclosing returns the enclosing scope.
func (g *Global) Enclosing() scope.I {
	return g.previous
}

// Lookup retrieves the binding for the name k, searching outward.
func (g *Global) Lookup(k string) *lazy.T {
	vs := g.Get(k)

	switch len(vs) {
	case 0:
		if g.previous == nil {
			return nil
		}

		return g.previous.Lookup(k)
	case 1:
		return vs[0]
	}

	return lazy.Builtin(proc.NewPoly(lazy.Builtin(list.New(vs...))))
}

// A compiler-checked list of interfaces these types satisfy. Never called.
func implements() { //nolint:deadcode,unused
	// A child is a scope.
	_ = scope.I(&Child{})

	// The empty scope is a scope.
	_ = scope.I(Empty{})

	// A global is a scope.
	_ = scope.I(&Global{})
}
