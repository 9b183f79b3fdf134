// Released under an MIT license. See LICENSE.

package task

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/kaguya-lang/kaguya/internal/common/interface/cell"
	"github.com/kaguya-lang/kaguya/internal/common/interface/scope"
	"github.com/kaguya-lang/kaguya/internal/common/struct/fault"
	"github.com/kaguya-lang/kaguya/internal/common/struct/lazy"
	"github.com/kaguya-lang/kaguya/internal/common/type/env"
	"github.com/kaguya-lang/kaguya/internal/common/type/proc"
)

// applyLambda binds the lambda l's pattern to args and evaluates its body.
//
// A pattern that binds no names makes the lambda constant: its body
// always evaluates in the defining scope to the same term. The first such
// application evaluates it and later ones reuse the outcome. This is only
// an optimization. The arguments are still matched every time.
func applyLambda(ctx context.Context, l *proc.Lambda, args *lazy.T) (cell.I, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	g := &errgroup.Group{}

	defer func() {
		cancel()

		_ = g.Wait()
	}()

	// The body's term is needed unless binding fails. Fetch it meanwhile.
	g.Go(func() error {
		_, _ = l.Body.Force(ctx)

		return nil
	})

	bs, err := Bind(ctx, l.Pattern, args)
	if err != nil {
		return nil, err
	}

	return enter(ctx, l, bs)
}

// enter evaluates the body of the lambda l once its pattern has produced
// the bindings bs.
func enter(ctx context.Context, l *proc.Lambda, bs []Binding) (cell.I, error) {
	if len(bs) > 0 {
		return body(ctx, l, env.NewChild(Bindings(bs), l.Scope))
	}

	err := l.Memo().Do(ctx, func(_ func()) error {
		v, err := body(ctx, l, l.Scope)
		if _, ok := fault.As(err); err != nil && !ok {
			return err
		}

		l.Memoize(v, err)

		return nil
	})
	if err != nil {
		return nil, err
	}

	v, err, _ := l.Memoized()

	return v, err
}

func body(ctx context.Context, l *proc.Lambda, s scope.I) (cell.I, error) {
	c, err := l.Body.Force(ctx)
	if err != nil {
		return nil, err
	}

	v, err := Eval(ctx, c, s)

	return v, fault.Unwind(err, l.Body.Pos())
}
