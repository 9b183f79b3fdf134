// Released under an MIT license. See LICENSE.

package task

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/kaguya-lang/kaguya/internal/common/interface/cell"
	"github.com/kaguya-lang/kaguya/internal/common/struct/fault"
	"github.com/kaguya-lang/kaguya/internal/common/struct/lazy"
	"github.com/kaguya-lang/kaguya/internal/common/type/pair"
	"github.com/kaguya-lang/kaguya/internal/common/type/str"
	"github.com/kaguya-lang/kaguya/internal/common/type/sym"
	"github.com/kaguya-lang/kaguya/internal/common/type/tag"
)

// Binding associates a name from a pattern with the argument it matched.
type Binding struct {
	Name  string
	Value *lazy.T
}

// Bind matches the pattern pat against arg.
//
//	pattern    matches                       binds
//	_          anything                      nothing
//	symbol     anything, without forcing it  the symbol
//	()         nil or the empty str          nothing
//	(a . b)    a pair, or a non-empty str    a and b
//	           split into its first
//	           character and the rest
//	other      an equal term                 nothing
//
// No bindings means the pattern is constant. A name bound twice is an error.
func Bind(ctx context.Context, pat, arg *lazy.T) ([]Binding, error) {
	p, err := pat.Force(ctx)
	if err != nil {
		return nil, err
	}

	if s, ok := p.(*sym.T); ok {
		if sym.IsIgnore(s) {
			return nil, nil
		}

		return []Binding{{Name: s.String(), Value: arg}}, nil
	}

	a, err := arg.Force(ctx)
	if err != nil {
		return nil, err
	}

	if p == pair.Null {
		if a == pair.Null || str.Is(a) && str.To(a).Empty() {
			return nil, nil
		}

		return nil, mismatched(ctx, tag.Nil, pat, a, arg)
	}

	if pp, ok := p.(*pair.T); ok {
		car, cdr, ok := split(a, arg)
		if !ok {
			return nil, mismatched(ctx, tag.Pair, pat, a, arg)
		}

		return bindPair(ctx, pp, car, cdr)
	}

	eq, err := Equal(ctx, p, a)
	if err != nil {
		return nil, err
	}

	if !eq {
		return nil, fault.Mismatched(p, pat.Pos(), a, arg.Pos())
	}

	return nil, nil
}

// Bindings converts the result of Bind to a map.
func Bindings(bs []Binding) map[string]*lazy.T {
	m := make(map[string]*lazy.T, len(bs))
	for _, b := range bs {
		m[b.Name] = b.Value
	}

	return m
}

func bindPair(ctx context.Context, p *pair.T, car, cdr *lazy.T) ([]Binding, error) {
	var halves [2][]Binding

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		halves[0], err = Bind(ctx, p.Car(), car)

		return err
	})

	g.Go(func() (err error) {
		halves[1], err = Bind(ctx, p.Cdr(), cdr)

		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return merge(halves[0], halves[1])
}

func merge(a, b []Binding) ([]Binding, error) {
	seen := make(map[string]bool, len(a))
	for _, v := range a {
		seen[v.Name] = true
	}

	for _, v := range b {
		if seen[v.Name] {
			return nil, fault.Redefined(v.Name)
		}
	}

	return append(a[:len(a):len(a)], b...), nil
}

// mismatched reports that the argument a, the term arg denotes, does not
// have the type named by expected.
func mismatched(ctx context.Context, expected cell.I, pat *lazy.T, a cell.I, arg *lazy.T) error {
	found, err := TagOf(ctx, a)
	if err != nil {
		return err
	}

	return fault.Mismatched(expected, pat.Pos(), found, arg.Pos())
}

// split returns the two halves of a term that a pair pattern can match.
func split(a cell.I, arg *lazy.T) (car, cdr *lazy.T, ok bool) {
	if p, ok := a.(*pair.T); ok && a != pair.Null {
		return p.Car(), p.Cdr(), true
	}

	if s, ok := a.(*str.T); ok && !s.Empty() {
		first, rest := s.First()

		return lazy.Value(arg.Pos(), first), lazy.Value(arg.Pos(), rest), true
	}

	return nil, nil, false
}
