// Released under an MIT license. See LICENSE.

package task

import (
	"context"

	"github.com/kaguya-lang/kaguya/internal/common"
	"github.com/kaguya-lang/kaguya/internal/common/interface/cell"
	"github.com/kaguya-lang/kaguya/internal/common/interface/scope"
	"github.com/kaguya-lang/kaguya/internal/common/struct/fault"
	"github.com/kaguya-lang/kaguya/internal/common/struct/lazy"
	"github.com/kaguya-lang/kaguya/internal/common/type/effect"
	"github.com/kaguya-lang/kaguya/internal/common/type/proc"
	"github.com/kaguya-lang/kaguya/internal/common/type/str"
	"github.com/kaguya-lang/kaguya/internal/common/type/tag"
	"github.com/kaguya-lang/kaguya/internal/common/type/tagged"
	"github.com/kaguya-lang/kaguya/internal/common/validate"
)

// Apply applies f to the unevaluated arguments args in the caller's
// scope s. Arguments and result are handled according to f's discipline.
func Apply(ctx context.Context, f cell.I, s scope.I, args *lazy.T) (cell.I, error) {
	if p, ok := f.(*proc.Poly); ok {
		return applyPoly(ctx, p, s, args, MapEval(s, args))
	}

	d := Discipline(f)
	if d.EvaluatesArguments() {
		args = MapEval(s, args)
	}

	return after(ctx, d, s)(call(ctx, f, s, args))
}

// ApplyEvaluated applies f to arguments that have already been evaluated.
func ApplyEvaluated(ctx context.Context, f cell.I, s scope.I, args *lazy.T) (cell.I, error) {
	if p, ok := f.(*proc.Poly); ok {
		return applyPoly(ctx, p, s, args, args)
	}

	return after(ctx, Discipline(f), s)(call(ctx, f, s, args))
}

// Discipline returns the argument and result policy of the applicable
// term f. Tags behave like functions.
func Discipline(f cell.I) proc.Discipline {
	switch p := f.(type) {
	case *proc.Lambda:
		return p.Discipline
	case *proc.Native:
		return p.Discipline
	case *proc.Poly:
		return proc.Meta
	}

	return proc.Function
}

func after(ctx context.Context, d proc.Discipline, s scope.I) func(cell.I, error) (cell.I, error) {
	return func(c cell.I, err error) (cell.I, error) {
		if err != nil || !d.EvaluatesResult() {
			return c, err
		}

		return Eval(ctx, c, s)
	}
}

// call runs f on args that are already prepared for its discipline.
func call(ctx context.Context, f cell.I, s scope.I, args *lazy.T) (cell.I, error) {
	switch p := f.(type) {
	case *proc.Lambda:
		return applyLambda(ctx, p, args)
	case *proc.Native:
		return p.Fn(ctx, s, args)
	case *tag.T:
		return convert(ctx, p, args)
	}

	return nil, fault.TypeError("procedure", f.Name())
}

// convert applies the tag t to its single argument.
func convert(ctx context.Context, t *tag.T, args *lazy.T) (cell.I, error) {
	v, err := validate.Fixed(ctx, args, 1, 1)
	if err != nil {
		return nil, err
	}

	switch {
	case t.Generated():
		return tagged.New(lazy.Value(v[0].Pos(), t), v[0]), nil
	case t == tag.IO:
		return &effect.Pure{Value: v[0]}, nil
	}

	c, err := v[0].Force(ctx)
	if err != nil {
		return nil, err
	}

	if t == tag.Str {
		s, err := Text(ctx, c)
		if err != nil {
			return nil, err
		}

		return str.New(s), nil
	}

	found, err := TagOf(ctx, c)
	if err != nil {
		return nil, err
	}

	if found != t {
		return nil, fault.NoConversion(Name(found), t.String())
	}

	return c, nil
}

// Name returns the name of the tag t.
func Name(t cell.I) string {
	if l, ok := t.(common.Stringer); ok {
		return l.String()
	}

	return t.Name()
}
