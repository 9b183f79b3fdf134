// Released under an MIT license. See LICENSE.

// Package task evaluates kaguya terms.
//
// Evaluation is call-by-need. Arguments are passed as lazy bindings and
// are forced only when something needs their value. Independent work,
// like the two halves of a pattern or the candidates of a poly procedure,
// runs concurrently in an errgroup. Every fan-out waits for the goroutines
// it starts before returning.
package task

import (
	"context"

	"github.com/kaguya-lang/kaguya/internal/common/interface/cell"
	"github.com/kaguya-lang/kaguya/internal/common/interface/scope"
	"github.com/kaguya-lang/kaguya/internal/common/struct/fault"
	"github.com/kaguya-lang/kaguya/internal/common/struct/lazy"
	"github.com/kaguya-lang/kaguya/internal/common/type/effect"
	"github.com/kaguya-lang/kaguya/internal/common/type/pair"
	"github.com/kaguya-lang/kaguya/internal/common/type/proc"
	"github.com/kaguya-lang/kaguya/internal/common/type/sym"
	"github.com/kaguya-lang/kaguya/internal/common/type/tag"
	"github.com/kaguya-lang/kaguya/internal/common/type/tagged"
)

// Eval evaluates the term c in the scope s.
//
// Symbols are looked up and their bindings forced. A pair applies its
// evaluated head to its unevaluated tail. Nil and tagged values cannot be
// evaluated. Everything else evaluates to itself.
func Eval(ctx context.Context, c cell.I, s scope.I) (cell.I, error) {
	switch t := c.(type) {
	case *sym.T:
		b, err := Lookup(s, t.String())
		if err != nil {
			return nil, err
		}

		return b.Force(ctx)

	case *pair.T:
		if c == pair.Null {
			return nil, fault.New(fault.Syntax, "Attempt to evaluate nil.")
		}

		head, err := t.Car().Force(ctx)
		if err != nil {
			return nil, err
		}

		f, err := Eval(ctx, head, s)
		if err != nil {
			return nil, fault.Unwind(err, t.Car().Pos())
		}

		if !Applicable(f) {
			return nil, fault.Unwind(fault.TypeError("procedure", f.Name()), t.Car().Pos())
		}

		return Apply(ctx, f, s, t.Cdr())

	case *tagged.T:
		return nil, fault.SyntaxError("Attempt to evaluate a tagged object.")
	}

	return c, nil
}

// Lookup returns the binding for k in s or an undefined symbol fault.
func Lookup(s scope.I, k string) (*lazy.T, error) {
	b := s.Lookup(k)
	if b == nil {
		return nil, fault.UndefinedSymbol(k)
	}

	return b, nil
}

// Reeval returns a binding that forces b and evaluates the result in s.
func Reeval(b *lazy.T, s scope.I) *lazy.T {
	return lazy.New(b.Pos(), func(ctx context.Context) (cell.I, error) {
		c, err := b.Force(ctx)
		if err != nil {
			return nil, err
		}

		return Eval(ctx, c, s)
	})
}

// MapEval returns a binding for the list args with each element
// evaluated lazily in s. A tail other than nil is evaluated as a whole,
// so (f . rest) passes the list rest denotes.
func MapEval(s scope.I, args *lazy.T) *lazy.T {
	return lazy.New(args.Pos(), func(ctx context.Context) (cell.I, error) {
		c, err := args.Force(ctx)
		if err != nil {
			return nil, err
		}

		if c == pair.Null {
			return c, nil
		}

		if p, ok := c.(*pair.T); ok {
			return pair.Cons(Reeval(p.Car(), s), MapEval(s, p.Cdr())), nil
		}

		return Eval(ctx, c, s)
	})
}

// Applicable returns true if c can be applied to arguments.
func Applicable(c cell.I) bool {
	if t, ok := c.(*tag.T); ok {
		return t != tag.Nil
	}

	return proc.Is(c)
}

// TagOf returns the tag that describes c.
func TagOf(ctx context.Context, c cell.I) (cell.I, error) {
	switch t := c.(type) {
	case *pair.T:
		if c == pair.Null {
			return tag.Nil, nil
		}

		return tag.Pair, nil

	case *tag.T:
		if t == tag.Nil {
			return tag.Nil, nil
		}

		return tag.Procedure, nil

	case *tagged.T:
		return t.Tag().Force(ctx)
	}

	if effect.Is(c) {
		return tag.IO, nil
	}

	if proc.Is(c) {
		return tag.Procedure, nil
	}

	for _, t := range tag.Conversions {
		if t.String() == c.Name() {
			return t, nil
		}
	}

	return nil, fault.New(fault.Mismatch, "Term of unknown type %s.", c.Name())
}
