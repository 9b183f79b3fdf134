// Released under an MIT license. See LICENSE.

// Package lazy provides kaguya's call-by-need binding.
//
// A binding holds either a thunk or the outcome of running it. The thunk
// runs at most once no matter how many goroutines force the binding; they
// all observe the same term or the same fault. Context errors are not
// remembered: a thunk that stops because its forcer's context was
// cancelled leaves the binding unforced for the next forcer.
package lazy

import (
	"context"

	"github.com/kaguya-lang/kaguya/internal/common/interface/cell"
	"github.com/kaguya-lang/kaguya/internal/common/struct/fault"
	"github.com/kaguya-lang/kaguya/internal/common/struct/loc"
	"github.com/kaguya-lang/kaguya/internal/common/struct/once"
)

// Thunk computes the term a binding denotes.
type Thunk func(ctx context.Context) (cell.I, error)

// T (lazy) is a memoized, at-most-once computation of a term.
type T struct {
	lock  *once.T
	pos   loc.T
	thunk Thunk

	err   error
	value cell.I
}

type lazy = T

// New creates a binding that will run thunk when first forced.
func New(pos loc.T, thunk Thunk) *T {
	return &T{lock: &once.T{}, pos: pos, thunk: thunk}
}

// Value creates a binding that has already been forced to c.
func Value(pos loc.T, c cell.I) *T {
	return &T{lock: once.Fused(), pos: pos, value: c}
}

// Builtin creates a forced binding for a synthetic term.
func Builtin(c cell.I) *T {
	return Value(loc.Builtin, c)
}

// Force returns the term the binding denotes, computing it if necessary.
// A fault raised by the thunk is returned with the binding's location
// pushed onto its stack.
func (l *lazy) Force(ctx context.Context) (cell.I, error) {
	err := l.lock.Do(ctx, func(_ func()) error {
		v, err := l.run(ctx)
		if err != nil {
			if _, ok := fault.As(err); !ok {
				return err
			}
		}

		l.value, l.err = v, fault.Unwind(err, l.pos)
		l.thunk = nil

		return nil
	})
	if err != nil {
		return nil, err
	}

	return l.value, l.err
}

// Peek returns the outcome of forcing the binding, if it has been forced.
func (l *lazy) Peek() (cell.I, error, bool) { //nolint:stylecheck
	if !l.lock.Fused() {
		return nil, nil, false
	}

	return l.value, l.err, true
}

// Pos returns the source location of the binding.
func (l *lazy) Pos() loc.T {
	return l.pos
}

func (l *lazy) run(ctx context.Context) (c cell.I, err error) {
	defer func() {
		if r := recover(); r != nil {
			c, err = nil, fault.Recovered(r)
		}
	}()

	return l.thunk(ctx)
}
