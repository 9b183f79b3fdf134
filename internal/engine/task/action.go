// Released under an MIT license. See LICENSE.

package task

import (
	"context"
	"math/big"

	"golang.org/x/sync/errgroup"

	"github.com/kaguya-lang/kaguya/internal/common/interface/cell"
	"github.com/kaguya-lang/kaguya/internal/common/interface/scope"
	"github.com/kaguya-lang/kaguya/internal/common/struct/fault"
	"github.com/kaguya-lang/kaguya/internal/common/struct/lazy"
	"github.com/kaguya-lang/kaguya/internal/common/type/boolean"
	"github.com/kaguya-lang/kaguya/internal/common/type/effect"
	"github.com/kaguya-lang/kaguya/internal/common/type/env"
	"github.com/kaguya-lang/kaguya/internal/common/type/num"
	"github.com/kaguya-lang/kaguya/internal/common/type/pair"
	"github.com/kaguya-lang/kaguya/internal/common/type/proc"
	"github.com/kaguya-lang/kaguya/internal/common/type/str"
	"github.com/kaguya-lang/kaguya/internal/common/type/sym"
	"github.com/kaguya-lang/kaguya/internal/common/type/tag"
	"github.com/kaguya-lang/kaguya/internal/common/type/tagged"
	"github.com/kaguya-lang/kaguya/internal/common/validate"
	"github.com/kaguya-lang/kaguya/internal/engine/commands"
	"github.com/kaguya-lang/kaguya/internal/reader"
)

// Action is the Go implementation of a native procedure. It receives the
// caller's scope and the arguments prepared for its discipline.
type Action func(ctx context.Context, s scope.I, args *lazy.T) (cell.I, error)

type outcome struct {
	value cell.I
	err   error
}

// Actions associates the intrinsics with their names in the scope g.
func Actions(g *env.Global) {
	define := func(name string, d proc.Discipline, a Action) {
		g.Define(name, lazy.Builtin(proc.NewNative(name, d, a)))
	}

	// Base.
	define("if", proc.Function, evalIf)
	define("scope", proc.Meta, evalScope)

	for _, d := range []proc.Discipline{
		proc.Function, proc.Meta, proc.Macro, proc.MacroFunction,
	} {
		maker := proc.NewNative(d.String(), proc.Meta, lambda(d))
		g.Define(d.String(), lazy.Builtin(maker))

		name := "def"
		if d != proc.Function {
			name += "-" + d.String()
		}

		define(name, proc.Meta, def(maker))
	}

	define("poly", proc.Function, func(_ context.Context, _ scope.I, args *lazy.T) (cell.I, error) {
		return proc.NewPoly(args), nil
	})

	define("quote", proc.Meta, quote)
	define("quasiquote", proc.Meta, quasiquote)
	define("eval", proc.Function, eval)

	// Terms.
	define("cons", proc.Function, cons)
	define("eq", proc.Function, eq)
	define("hash", proc.Function, hashOf)
	define("and", proc.Function, and)
	define("concat-str", proc.Function, concat)
	define("parse", proc.Function, parse)
	define("@panic", proc.Function, panicWith)

	for k, v := range commands.Binary() {
		define(k, proc.Function, binary(v))
	}

	for k, v := range commands.Unary() {
		define(k, proc.Function, unary(v))
	}

	// Tags.
	define("tag-of", proc.Function, tagOf)
	define("tagged", proc.Function, wrap)
	define("unique-tag", proc.Function, uniqueTag)
	define("unwrap", proc.Function, unwrap)

	for _, t := range tag.Conversions {
		g.Define(t.String(), lazy.Builtin(t))
	}

	g.Define("nil", lazy.Builtin(pair.Null))
	g.Define("true", lazy.Builtin(boolean.True))
	g.Define("false", lazy.Builtin(boolean.False))

	// Effects.
	define("join", proc.Function, func(_ context.Context, _ scope.I, args *lazy.T) (cell.I, error) {
		return &effect.Join{Effects: args}, nil
	})
	define("then", proc.Function, then2)
	define("import", proc.Function, one(func(b *lazy.T) cell.I {
		return &effect.Import{Path: b}
	}))
	define("@print-str", proc.Function, one(func(b *lazy.T) cell.I {
		return &effect.Print{Text: b}
	}))
	define("@print", proc.Function, one(func(b *lazy.T) cell.I {
		return &effect.Print{Text: lazy.New(b.Pos(), func(ctx context.Context) (cell.I, error) {
			c, err := b.Force(ctx)
			if err != nil {
				return nil, err
			}

			s, err := Text(ctx, c)
			if err != nil {
				return nil, err
			}

			return str.New(s), nil
		})}
	}))

	g.Define("@println", lazy.Builtin(&effect.Println{}))
}

// Actions.

// and forces its arguments concurrently but considers them in order. The
// first false argument or fault, counting from the left, decides the
// result and the arguments after it are abandoned.
func and(ctx context.Context, _ scope.I, args *lazy.T) (cell.I, error) {
	v, err := validate.Fixed(ctx, args, 0, validate.Unlimited)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	g := &errgroup.Group{}

	defer func() {
		cancel()

		_ = g.Wait()
	}()

	outcomes := make([]chan outcome, len(v))

	for i, b := range v {
		i, b := i, b

		outcomes[i] = make(chan outcome, 1)

		g.Go(func() error {
			c, err := b.Force(ctx)
			outcomes[i] <- outcome{c, err}

			return nil
		})
	}

	for i, ch := range outcomes {
		var o outcome

		select {
		case o = <-ch:
		case <-ctx.Done():
			return nil, ctx.Err()
		}

		if o.err != nil {
			return nil, o.err
		}

		t, err := commands.Truth(o.value)
		if err != nil {
			return nil, fault.Unwind(err, v[i].Pos())
		}

		if !t {
			return boolean.False, nil
		}
	}

	return boolean.True, nil
}

func binary(op func(a, b *big.Rat) (cell.I, error)) Action {
	return func(ctx context.Context, _ scope.I, args *lazy.T) (cell.I, error) {
		v, err := validate.Fixed(ctx, args, 2, 2)
		if err != nil {
			return nil, err
		}

		var r [2]*big.Rat

		g, ctx := errgroup.WithContext(ctx)

		for i, b := range v {
			i, b := i, b

			g.Go(func() error {
				c, err := b.Force(ctx)
				if err != nil {
					return err
				}

				r[i], err = commands.Number(c)

				return fault.Unwind(err, b.Pos())
			})
		}

		if err := g.Wait(); err != nil {
			return nil, err
		}

		return op(r[0], r[1])
	}
}

func concat(ctx context.Context, _ scope.I, args *lazy.T) (cell.I, error) {
	v, err := validate.Fixed(ctx, args, 0, validate.Unlimited)
	if err != nil {
		return nil, err
	}

	parts, err := forceAll(ctx, v)
	if err != nil {
		return nil, err
	}

	return commands.Concat(parts)
}

func cons(ctx context.Context, _ scope.I, args *lazy.T) (cell.I, error) {
	v, err := validate.Fixed(ctx, args, 2, 2)
	if err != nil {
		return nil, err
	}

	return pair.Cons(v[0], v[1]), nil
}

// def creates a definition effect: (def NAME -> FORM). A head of the form
// (NAME . PATTERN) defines NAME as (maker PATTERN -> FORM), a lambda. Heads
// nest, so ((NAME . P1) . P2) defines a curried lambda whose inner lambda
// closes over the names P1 binds.
func def(maker *proc.Native) Action {
	return func(ctx context.Context, s scope.I, args *lazy.T) (cell.I, error) {
		head, form, err := halves(ctx, args)
		if err != nil {
			return nil, err
		}

		for {
			c, err := head.Force(ctx)
			if err != nil {
				return nil, err
			}

			switch t := c.(type) {
			case *sym.T:
				return &effect.Definition{Label: t.String(), Form: Reeval(form, s)}, nil

			case *pair.T:
				if c != pair.Null {
					pos := form.Pos()
					head, form = t.Car(), lazy.Value(pos, pair.Cons(
						lazy.Builtin(maker),
						lazy.Value(pos, pair.Cons(t.Cdr(), form)),
					))

					continue
				}
			}

			return nil, fault.Unwind(fault.TypeError("symbol", c.Name()), head.Pos())
		}
	}
}

func eq(ctx context.Context, _ scope.I, args *lazy.T) (cell.I, error) {
	v, err := validate.Fixed(ctx, args, 2, 2)
	if err != nil {
		return nil, err
	}

	c, err := forceAll(ctx, v)
	if err != nil {
		return nil, err
	}

	b, err := Equal(ctx, c[0], c[1])
	if err != nil {
		return nil, err
	}

	return boolean.Bool(b), nil
}

func hashOf(ctx context.Context, _ scope.I, args *lazy.T) (cell.I, error) {
	v, err := validate.Fixed(ctx, args, 1, 1)
	if err != nil {
		return nil, err
	}

	c, err := v[0].Force(ctx)
	if err != nil {
		return nil, err
	}

	h, err := Hash(ctx, c)
	if err != nil {
		return nil, err
	}

	return num.Rat(new(big.Rat).SetInt(new(big.Int).SetUint64(h))), nil
}

func eval(ctx context.Context, s scope.I, args *lazy.T) (cell.I, error) {
	v, err := validate.Fixed(ctx, args, 1, 1)
	if err != nil {
		return nil, err
	}

	c, err := v[0].Force(ctx)
	if err != nil {
		return nil, err
	}

	return Eval(ctx, c, s)
}

// evalIf forces the condition and then only the chosen branch.
func evalIf(ctx context.Context, _ scope.I, args *lazy.T) (cell.I, error) {
	v, err := validate.Fixed(ctx, args, 3, 3)
	if err != nil {
		return nil, err
	}

	c, err := v[0].Force(ctx)
	if err != nil {
		return nil, err
	}

	t, err := commands.Truth(c)
	if err != nil {
		return nil, fault.Unwind(err, v[0].Pos())
	}

	if t {
		return v[1].Force(ctx)
	}

	return v[2].Force(ctx)
}

// evalScope evaluates (scope D1 D2 ... FINAL) or (scope D1 D2 ... -> ATOM).
// Each D is evaluated in a new scope, where it must produce a definition.
// The definitions are installed in order and FINAL is evaluated in the new
// scope. Definitions can refer to each other.
func evalScope(ctx context.Context, s scope.I, args *lazy.T) (cell.I, error) {
	heads, final, err := validate.Variadic(ctx, args, 1, validate.Unlimited)
	if err != nil {
		return nil, err
	}

	if final == pair.Null {
		n := len(heads) - 1

		final, err = heads[n].Force(ctx)
		if err != nil {
			return nil, err
		}

		heads = heads[:n]
	}

	child := env.NewGlobal(s)
	definitions := make([]*effect.Definition, len(heads))

	g, gctx := errgroup.WithContext(ctx)

	for i, b := range heads {
		i, b := i, b

		g.Go(func() error {
			c, err := Reeval(b, child).Force(gctx)
			if err != nil {
				return err
			}

			d, ok := c.(*effect.Definition)
			if !ok {
				return fault.Unwind(fault.Panic("Non-definition passed to 'scope'."), b.Pos())
			}

			definitions[i] = d

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, d := range definitions {
		child.Define(d.Label, d.Form)
	}

	return Eval(ctx, final, child)
}

// lambda creates a lambda with discipline d: (fn PATTERN -> BODY).
func lambda(d proc.Discipline) Action {
	return func(ctx context.Context, s scope.I, args *lazy.T) (cell.I, error) {
		pattern, body, err := halves(ctx, args)
		if err != nil {
			return nil, err
		}

		return proc.NewLambda(d, pattern, body, s), nil
	}
}

func panicWith(ctx context.Context, _ scope.I, args *lazy.T) (cell.I, error) {
	v, err := validate.Fixed(ctx, args, 1, 1)
	if err != nil {
		return nil, err
	}

	s, err := text(ctx, v[0])
	if err != nil {
		return nil, err
	}

	return nil, fault.Panic(s)
}

// parse reads exactly one term from a str.
func parse(ctx context.Context, _ scope.I, args *lazy.T) (cell.I, error) {
	v, err := validate.Fixed(ctx, args, 1, 1)
	if err != nil {
		return nil, err
	}

	s, err := text(ctx, v[0])
	if err != nil {
		return nil, err
	}

	terms, err := reader.Parse("", s)
	if err != nil {
		if e, ok := err.(*reader.Error); ok {
			return nil, fault.ParseError(e.Message, e.Pos)
		}

		return nil, err
	}

	switch len(terms) {
	case 0:
		return nil, fault.New(fault.Parse, "Unexpected EOF.")
	case 1:
		return terms[0].Force(ctx)
	}

	return nil, fault.ParseError("Unexpected excessive token while parsing.", terms[1].Pos())
}

func quote(ctx context.Context, _ scope.I, args *lazy.T) (cell.I, error) {
	v, err := validate.Fixed(ctx, args, 1, 1)
	if err != nil {
		return nil, err
	}

	return v[0].Force(ctx)
}

func tagOf(ctx context.Context, _ scope.I, args *lazy.T) (cell.I, error) {
	v, err := validate.Fixed(ctx, args, 1, 1)
	if err != nil {
		return nil, err
	}

	c, err := v[0].Force(ctx)
	if err != nil {
		return nil, err
	}

	return TagOf(ctx, c)
}

func then2(ctx context.Context, _ scope.I, args *lazy.T) (cell.I, error) {
	v, err := validate.Fixed(ctx, args, 2, 2)
	if err != nil {
		return nil, err
	}

	return &effect.Then{Func: v[0], Former: v[1]}, nil
}

func unary(op func(cell.I) (cell.I, error)) Action {
	return func(ctx context.Context, _ scope.I, args *lazy.T) (cell.I, error) {
		v, err := validate.Fixed(ctx, args, 1, 1)
		if err != nil {
			return nil, err
		}

		c, err := v[0].Force(ctx)
		if err != nil {
			return nil, err
		}

		r, err := op(c)

		return r, fault.Unwind(err, v[0].Pos())
	}
}

func uniqueTag(ctx context.Context, _ scope.I, args *lazy.T) (cell.I, error) {
	v, err := validate.Fixed(ctx, args, 0, 1)
	if err != nil {
		return nil, err
	}

	if len(v) == 0 {
		return tag.New(""), nil
	}

	c, err := v[0].Force(ctx)
	if err != nil {
		return nil, err
	}

	if !sym.Is(c) {
		return nil, fault.Unwind(fault.TypeError("symbol", c.Name()), v[0].Pos())
	}

	return tag.New(sym.To(c).String()), nil
}

func unwrap(ctx context.Context, _ scope.I, args *lazy.T) (cell.I, error) {
	v, err := validate.Fixed(ctx, args, 1, 1)
	if err != nil {
		return nil, err
	}

	c, err := v[0].Force(ctx)
	if err != nil {
		return nil, err
	}

	if t, ok := c.(*tagged.T); ok {
		return t.Inner().Force(ctx)
	}

	return c, nil
}

func wrap(ctx context.Context, _ scope.I, args *lazy.T) (cell.I, error) {
	v, err := validate.Fixed(ctx, args, 2, 2)
	if err != nil {
		return nil, err
	}

	return tagged.New(v[0], v[1]), nil
}

// Helper functions.

// forceAll forces every binding in v concurrently.
func forceAll(ctx context.Context, v []*lazy.T) ([]cell.I, error) {
	cs := make([]cell.I, len(v))

	g, ctx := errgroup.WithContext(ctx)

	for i, b := range v {
		i, b := i, b

		g.Go(func() (err error) {
			cs[i], err = b.Force(ctx)

			return err
		})
	}

	return cs, g.Wait()
}

// halves returns the car and cdr of the list args denotes.
func halves(ctx context.Context, args *lazy.T) (*lazy.T, *lazy.T, error) {
	c, err := args.Force(ctx)
	if err != nil {
		return nil, nil, err
	}

	p, ok := c.(*pair.T)
	if !ok || c == pair.Null {
		return nil, nil, fault.Unwind(fault.TypeError("pair", c.Name()), args.Pos())
	}

	return p.Car(), p.Cdr(), nil
}

// one adapts a constructor that takes a single, unforced argument.
func one(f func(*lazy.T) cell.I) Action {
	return func(ctx context.Context, _ scope.I, args *lazy.T) (cell.I, error) {
		v, err := validate.Fixed(ctx, args, 1, 1)
		if err != nil {
			return nil, err
		}

		return f(v[0]), nil
	}
}
