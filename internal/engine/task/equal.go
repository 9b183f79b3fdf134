// Released under an MIT license. See LICENSE.

package task

import (
	"context"
	"errors"
	"hash/fnv"

	"golang.org/x/sync/errgroup"

	"github.com/kaguya-lang/kaguya/internal/common/interface/cell"
	"github.com/kaguya-lang/kaguya/internal/common/struct/lazy"
	"github.com/kaguya-lang/kaguya/internal/common/type/boolean"
	"github.com/kaguya-lang/kaguya/internal/common/type/num"
	"github.com/kaguya-lang/kaguya/internal/common/type/pair"
	"github.com/kaguya-lang/kaguya/internal/common/type/proc"
	"github.com/kaguya-lang/kaguya/internal/common/type/str"
	"github.com/kaguya-lang/kaguya/internal/common/type/sym"
	"github.com/kaguya-lang/kaguya/internal/common/type/tag"
	"github.com/kaguya-lang/kaguya/internal/common/type/tagged"
)

// Returned by a comparison to stop its siblings early.
var errDifferent = errors.New("different") //nolint:gochecknoglobals

// Equal returns true if a and b are structurally equal. Generated tags,
// natives and effects are equal only to themselves. Lambdas are equal if
// they have the same discipline, close over the same scope and have equal
// patterns and bodies.
func Equal(ctx context.Context, a, b cell.I) (bool, error) {
	if a == b {
		return true, nil
	}

	switch x := a.(type) {
	case *num.T:
		y, ok := b.(*num.T)

		return ok && x.Rat().Cmp(y.Rat()) == 0, nil

	case *str.T:
		y, ok := b.(*str.T)

		return ok && x.String() == y.String(), nil

	case *sym.T:
		y, ok := b.(*sym.T)

		return ok && x.String() == y.String(), nil

	case *pair.T:
		y, ok := b.(*pair.T)
		if !ok || a == pair.Null || b == pair.Null {
			return false, nil
		}

		return equalAll(ctx, [][2]*lazy.T{
			{x.Car(), y.Car()},
			{x.Cdr(), y.Cdr()},
		})

	case *tagged.T:
		y, ok := b.(*tagged.T)
		if !ok {
			return false, nil
		}

		return equalAll(ctx, [][2]*lazy.T{
			{x.Tag(), y.Tag()},
			{x.Inner(), y.Inner()},
		})

	case *proc.Lambda:
		y, ok := b.(*proc.Lambda)
		if !ok || x.Discipline != y.Discipline || x.Scope != y.Scope {
			return false, nil
		}

		return equalAll(ctx, [][2]*lazy.T{
			{x.Pattern, y.Pattern},
			{x.Body, y.Body},
		})

	case *proc.Poly:
		y, ok := b.(*proc.Poly)
		if !ok {
			return false, nil
		}

		return equalAll(ctx, [][2]*lazy.T{
			{x.Definitions, y.Definitions},
		})
	}

	return false, nil
}

// equalAll forces and compares each pair of bindings concurrently.
// The first difference stops the remaining comparisons.
func equalAll(ctx context.Context, pairs [][2]*lazy.T) (bool, error) {
	g, ctx := errgroup.WithContext(ctx)

	for _, p := range pairs {
		p := p

		g.Go(func() error {
			a, err := p[0].Force(ctx)
			if err != nil {
				return err
			}

			b, err := p[1].Force(ctx)
			if err != nil {
				return err
			}

			eq, err := Equal(ctx, a, b)
			if err == nil && !eq {
				err = errDifferent
			}

			return err
		})
	}

	err := g.Wait()
	if errors.Is(err, errDifferent) {
		return false, nil
	}

	return err == nil, err
}

// Hash returns a hash of c that is consistent with Equal.
func Hash(ctx context.Context, c cell.I) (uint64, error) {
	h := fnv.New64a()

	write := func(kind byte, s string) uint64 {
		_, _ = h.Write([]byte{kind})
		_, _ = h.Write([]byte(s))

		return h.Sum64()
	}

	switch t := c.(type) {
	case *boolean.T:
		return write('b', t.String()), nil
	case *num.T:
		return write('n', t.Rat().RatString()), nil
	case *str.T:
		return write('s', t.String()), nil
	case *sym.T:
		return write('y', t.String()), nil
	case *tag.T:
		return write('t', t.String()), nil
	case *proc.Native:
		return write('f', t.Label), nil

	case *pair.T:
		if c == pair.Null {
			return write('0', ""), nil
		}

		return hashAll(ctx, 'p', t.Car(), t.Cdr())

	case *tagged.T:
		return hashAll(ctx, 'g', t.Tag(), t.Inner())

	case *proc.Lambda:
		return hashAll(ctx, byte('l'+t.Discipline), t.Pattern, t.Body)

	case *proc.Poly:
		return hashAll(ctx, 'o', t.Definitions)
	}

	return write('e', c.Name()), nil
}

func hashAll(ctx context.Context, kind byte, bs ...*lazy.T) (uint64, error) {
	hashes := make([]uint64, len(bs))

	g, ctx := errgroup.WithContext(ctx)

	for i, b := range bs {
		i, b := i, b

		g.Go(func() error {
			c, err := b.Force(ctx)
			if err != nil {
				return err
			}

			hashes[i], err = Hash(ctx, c)

			return err
		})
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}

	h := fnv.New64a()

	_, _ = h.Write([]byte{kind})

	for _, v := range hashes {
		var buf [8]byte
		for i := range buf {
			buf[i] = byte(v >> (8 * i))
		}

		_, _ = h.Write(buf[:])
	}

	return h.Sum64(), nil
}
