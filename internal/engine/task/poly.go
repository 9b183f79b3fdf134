// Released under an MIT license. See LICENSE.

package task

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/kaguya-lang/kaguya/internal/common/interface/cell"
	"github.com/kaguya-lang/kaguya/internal/common/interface/scope"
	"github.com/kaguya-lang/kaguya/internal/common/struct/fault"
	"github.com/kaguya-lang/kaguya/internal/common/struct/lazy"
	"github.com/kaguya-lang/kaguya/internal/common/type/list"
	"github.com/kaguya-lang/kaguya/internal/common/type/pair"
	"github.com/kaguya-lang/kaguya/internal/common/type/proc"
)

// match is a candidate prepared for application: the procedure, the
// arguments its discipline expects and, for a lambda, what its pattern
// bound.
type match struct {
	f    cell.I
	args *lazy.T
	bs   []Binding
	err  error
}

// applyPoly applies the first candidate of p, in declaration order, that
// accepts the arguments. The patterns of lambda candidates are matched
// concurrently but only the chosen candidate's body is evaluated. Other
// candidates are applied one at a time. Candidates that evaluate their
// arguments share the evaluated list, so each argument is evaluated at
// most once. If every candidate fails to bind, their faults are
// aggregated in order.
func applyPoly(
	ctx context.Context, p *proc.Poly, s scope.I, raw, evaluated *lazy.T,
) (cell.I, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c, err := p.Definitions.Force(ctx)
	if err != nil {
		return nil, err
	}

	candidates, tail, err := list.Slice(ctx, c)
	if err != nil {
		return nil, err
	}

	if tail != pair.Null {
		return nil, fault.Unwind(fault.TypeError("nil", tail.Name()), p.Definitions.Pos())
	}

	mctx, cancel := context.WithCancel(ctx)
	g := &errgroup.Group{}

	defer func() {
		cancel()

		_ = g.Wait()
	}()

	matches := make([]chan match, len(candidates))

	for i, candidate := range candidates {
		i, candidate := i, candidate

		matches[i] = make(chan match, 1)

		g.Go(func() error {
			matches[i] <- prepare(mctx, candidate, raw, evaluated)

			return nil
		})
	}

	failures := make([]*fault.T, 0, len(candidates))
	matching := true

	for i, candidate := range candidates {
		var m match

		if matching {
			select {
			case m = <-matches[i]:
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		} else {
			m = prepare(ctx, candidate, raw, evaluated)
		}

		if m.err == nil {
			// Nothing the remaining matches do is needed unless this
			// candidate turns out not to apply.
			matching = false
			cancel()

			var v cell.I

			v, m.err = commit(ctx, m, s, raw, evaluated)
			if m.err == nil {
				return v, nil
			}
		}

		f, ok := fault.As(m.err)
		if !ok || f.Kind != fault.Bind {
			return nil, m.err
		}

		failures = append(failures, f)
	}

	return nil, fault.Unmatched(failures)
}

// commit applies a prepared candidate.
func commit(ctx context.Context, m match, s scope.I, raw, evaluated *lazy.T) (cell.I, error) {
	switch f := m.f.(type) {
	case *proc.Poly:
		return applyPoly(ctx, f, s, raw, evaluated)
	case *proc.Lambda:
		return after(ctx, f.Discipline, s)(enter(ctx, f, m.bs))
	}

	return after(ctx, Discipline(m.f), s)(call(ctx, m.f, s, m.args))
}

// prepare forces a candidate and, if it is a lambda, matches its pattern.
func prepare(ctx context.Context, candidate *lazy.T, raw, evaluated *lazy.T) match {
	f, err := candidate.Force(ctx)
	if err != nil {
		return match{err: err}
	}

	if !Applicable(f) {
		return match{err: fault.Unwind(fault.TypeError("procedure", f.Name()), candidate.Pos())}
	}

	d := Discipline(f)

	m := match{f: f, args: raw}
	if d.EvaluatesArguments() {
		m.args = evaluated
	}

	if l, ok := f.(*proc.Lambda); ok {
		m.bs, m.err = Bind(ctx, l.Pattern, m.args)
	}

	return m
}
