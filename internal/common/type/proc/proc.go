// Released under an MIT license. See LICENSE.

// Package proc provides kaguya's procedure types.
package proc

import (
	"context"

	"github.com/kaguya-lang/kaguya/internal/common/interface/cell"
	"github.com/kaguya-lang/kaguya/internal/common/interface/scope"
	"github.com/kaguya-lang/kaguya/internal/common/struct/lazy"
	"github.com/kaguya-lang/kaguya/internal/common/struct/once"
)

const name = "procedure"

// Discipline is a procedure's argument and result policy.
type Discipline int

// Disciplines.
//
// discipline    arguments  result
// Function      evaluated  as is
// Meta          as is      as is
// Macro         as is      evaluated
// MacroFunction evaluated  evaluated.
const (
	Function Discipline = iota
	Meta
	Macro
	MacroFunction
)

// EvaluatesArguments returns true if arguments are evaluated before applying.
func (d Discipline) EvaluatesArguments() bool {
	return d == Function || d == MacroFunction
}

// EvaluatesResult returns true if the result is evaluated after applying.
func (d Discipline) EvaluatesResult() bool {
	return d == Macro || d == MacroFunction
}

// String returns the keyword that creates a lambda with discipline d.
func (d Discipline) String() string {
	switch d {
	case Function:
		return "fn"
	case Meta:
		return "meta"
	case Macro:
		return "macro"
	case MacroFunction:
		return "macro-fn"
	}

	return "unknown"
}

// Lambda is a procedure defined by a program.
type Lambda struct {
	Discipline
	Pattern *lazy.T
	Body    *lazy.T
	Scope   scope.I

	memo     once.T
	constant bool
	err      error
	value    cell.I
}

// NewLambda creates a lambda that closes over s.
func NewLambda(d Discipline, pattern, body *lazy.T, s scope.I) *Lambda {
	return &Lambda{Discipline: d, Pattern: pattern, Body: body, Scope: s}
}

// Memo returns the lock guarding the lambda's constant memoization.
func (l *Lambda) Memo() *once.T {
	return &l.memo
}

// Memoize records the outcome of a lambda whose pattern binds nothing.
// It must be called while holding the memo lock.
func (l *Lambda) Memoize(v cell.I, err error) {
	l.constant = true
	l.value = v
	l.err = err
}

// Memoized returns the recorded outcome if the lambda is constant.
// It must be called after the memo lock has been fused.
func (l *Lambda) Memoized() (cell.I, error, bool) { //nolint:stylecheck
	return l.value, l.err, l.constant
}

// Name returns the type name for a lambda.
func (l *Lambda) Name() string {
	return name
}

// Native is a procedure implemented in Go.
type Native struct {
	Discipline
	Label string
	Fn    func(ctx context.Context, s scope.I, args *lazy.T) (cell.I, error)
}

// NewNative creates a native procedure.
func NewNative(
	label string, d Discipline,
	fn func(ctx context.Context, s scope.I, args *lazy.T) (cell.I, error),
) *Native {
	return &Native{Discipline: d, Label: label, Fn: fn}
}

// Name returns the type name for a native procedure.
func (n *Native) Name() string {
	return name
}

// Poly is an ordered list of candidate procedures.
type Poly struct {
	Definitions *lazy.T
}

// NewPoly creates a poly procedure from a list of procedures.
func NewPoly(definitions *lazy.T) *Poly {
	return &Poly{Definitions: definitions}
}

// Name returns the type name for a poly procedure.
func (p *Poly) Name() string {
	return name
}

// Functions specific to proc.

// Is returns true if c is a procedure of any kind.
func Is(c cell.I) bool {
	switch c.(type) {
	case *Lambda, *Native, *Poly:
		return true
	}

	return false
}

// A compiler-checked list of interfaces these types satisfy. Never called.
func implements() { //nolint:deadcode,unused
	// The lambda type is a cell.
	_ = cell.I(&Lambda{})

	// The native type is a cell.
	_ = cell.I(&Native{})

	// The poly type is a cell.
	_ = cell.I(&Poly{})
}
