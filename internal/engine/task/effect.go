// Released under an MIT license. See LICENSE.

package task

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/kaguya-lang/kaguya/internal/common/interface/cell"
	"github.com/kaguya-lang/kaguya/internal/common/interface/world"
	"github.com/kaguya-lang/kaguya/internal/common/struct/fault"
	"github.com/kaguya-lang/kaguya/internal/common/struct/lazy"
	"github.com/kaguya-lang/kaguya/internal/common/type/effect"
	"github.com/kaguya-lang/kaguya/internal/common/type/env"
	"github.com/kaguya-lang/kaguya/internal/common/type/list"
	"github.com/kaguya-lang/kaguya/internal/common/type/pair"
	"github.com/kaguya-lang/kaguya/internal/engine/commands"
)

// Unwrap performs the effect e against the world w and returns its result.
func Unwrap(ctx context.Context, e cell.I, w world.I) (cell.I, error) {
	switch t := e.(type) {
	case *effect.Pure:
		return t.Value.Force(ctx)

	case *effect.Definition:
		w.Define(t.Label, t.Form)

		return pair.Null, nil

	case *effect.Import:
		path, err := text(ctx, t.Path)
		if err != nil {
			return nil, err
		}

		err = w.Import(ctx, path)
		if err != nil {
			return nil, fault.Unwind(err, t.Path.Pos())
		}

		return pair.Null, nil

	case *effect.Join:
		return join(ctx, t, w)

	case *effect.Then:
		return then(ctx, t, w)

	case *effect.Print:
		s, err := text(ctx, t.Text)
		if err != nil {
			return nil, err
		}

		// A failed sibling in a join cancels output that has not started.
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		return pair.Null, host(w.Print(s))

	case *effect.Println:
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		return pair.Null, host(w.Println())
	}

	return nil, fault.TypeError("io", e.Name())
}

// Effect forces b and checks that it denotes an effect.
func Effect(ctx context.Context, b *lazy.T) (cell.I, error) {
	c, err := b.Force(ctx)
	if err != nil {
		return nil, err
	}

	if !effect.Is(c) {
		return nil, fault.Unwind(fault.TypeError("io", c.Name()), b.Pos())
	}

	return c, nil
}

func host(err error) error {
	if err == nil {
		return nil
	}

	if _, ok := fault.As(err); ok {
		return err
	}

	return fault.HostError(err)
}

// join runs every effect in the list concurrently. The results are listed
// in the same order. The first failure cancels the others.
func join(ctx context.Context, j *effect.Join, w world.I) (cell.I, error) {
	c, err := j.Effects.Force(ctx)
	if err != nil {
		return nil, err
	}

	effects, tail, err := list.Slice(ctx, c)
	if err != nil {
		return nil, err
	}

	if tail != pair.Null {
		return nil, fault.Unwind(fault.TypeError("nil", tail.Name()), j.Effects.Pos())
	}

	results := make([]cell.I, len(effects))

	g, ctx := errgroup.WithContext(ctx)

	for i, b := range effects {
		i, b := i, b

		g.Go(func() error {
			e, err := Effect(ctx, b)
			if err != nil {
				return err
			}

			results[i], err = Unwrap(ctx, e, w)

			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return list.Of(results...), nil
}

// then runs the former effect and passes its result to the function,
// whose result is the effect to run next.
func then(ctx context.Context, t *effect.Then, w world.I) (cell.I, error) {
	e, err := Effect(ctx, t.Former)
	if err != nil {
		return nil, err
	}

	r, err := Unwrap(ctx, e, w)
	if err != nil {
		return nil, err
	}

	f, err := t.Func.Force(ctx)
	if err != nil {
		return nil, err
	}

	if !Applicable(f) {
		return nil, fault.Unwind(fault.TypeError("procedure", f.Name()), t.Func.Pos())
	}

	args := lazy.Value(t.Func.Pos(), list.Of(r))

	next, err := ApplyEvaluated(ctx, f, env.Empty{}, args)
	if err != nil {
		return nil, fault.Unwind(err, t.Func.Pos())
	}

	if !effect.Is(next) {
		return nil, fault.Unwind(fault.TypeError("io", next.Name()), t.Func.Pos())
	}

	return Unwrap(ctx, next, w)
}

func text(ctx context.Context, b *lazy.T) (string, error) {
	c, err := b.Force(ctx)
	if err != nil {
		return "", err
	}

	s, err := commands.Text(c)

	return s, fault.Unwind(err, b.Pos())
}
