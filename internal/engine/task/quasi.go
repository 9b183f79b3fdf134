// Released under an MIT license. See LICENSE.

package task

import (
	"context"

	"github.com/kaguya-lang/kaguya/internal/common/interface/cell"
	"github.com/kaguya-lang/kaguya/internal/common/interface/scope"
	"github.com/kaguya-lang/kaguya/internal/common/struct/fault"
	"github.com/kaguya-lang/kaguya/internal/common/struct/lazy"
	"github.com/kaguya-lang/kaguya/internal/common/type/list"
	"github.com/kaguya-lang/kaguya/internal/common/type/pair"
	"github.com/kaguya-lang/kaguya/internal/common/type/sym"
	"github.com/kaguya-lang/kaguya/internal/common/validate"
)

func quasiquote(ctx context.Context, s scope.I, args *lazy.T) (cell.I, error) {
	v, err := validate.Fixed(ctx, args, 1, 1)
	if err != nil {
		return nil, err
	}

	c, err := v[0].Force(ctx)
	if err != nil {
		return nil, err
	}

	return template(ctx, c, s)
}

// template copies c, replacing (unquote x) with the value of x and
// splicing the elements of the list (unquote-splicing x) denotes. Both
// halves of each copied pair are built lazily.
func template(ctx context.Context, c cell.I, s scope.I) (cell.I, error) {
	p, ok := c.(*pair.T)
	if !ok || c == pair.Null {
		return c, nil
	}

	head, err := p.Car().Force(ctx)
	if err != nil {
		return nil, err
	}

	if marked(head, "unquote") {
		x, err := validate.Fixed(ctx, p.Cdr(), 1, 1)
		if err != nil {
			return nil, err
		}

		return Reeval(x[0], s).Force(ctx)
	}

	rest := lazy.New(p.Cdr().Pos(), func(ctx context.Context) (cell.I, error) {
		c, err := p.Cdr().Force(ctx)
		if err != nil {
			return nil, err
		}

		return template(ctx, c, s)
	})

	if hp, ok := head.(*pair.T); ok && head != pair.Null {
		h, err := hp.Car().Force(ctx)
		if err != nil {
			return nil, err
		}

		if marked(h, "unquote-splicing") {
			return splice(ctx, hp, rest, s)
		}
	}

	first := lazy.New(p.Car().Pos(), func(ctx context.Context) (cell.I, error) {
		return template(ctx, head, s)
	})

	return pair.Cons(first, rest), nil
}

// splice evaluates the list in (unquote-splicing x) and prepends its
// elements to rest.
func splice(ctx context.Context, p *pair.T, rest *lazy.T, s scope.I) (cell.I, error) {
	x, err := validate.Fixed(ctx, p.Cdr(), 1, 1)
	if err != nil {
		return nil, err
	}

	c, err := Reeval(x[0], s).Force(ctx)
	if err != nil {
		return nil, err
	}

	elements, tail, err := list.Slice(ctx, c)
	if err != nil {
		return nil, err
	}

	if tail != pair.Null {
		return nil, fault.Unwind(fault.TypeError("nil", tail.Name()), x[0].Pos())
	}

	if len(elements) == 0 {
		return rest.Force(ctx)
	}

	return list.Improper(rest, elements...), nil
}

func marked(c cell.I, name string) bool {
	return sym.Is(c) && sym.To(c).String() == name
}
