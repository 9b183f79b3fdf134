// Released under an MIT license. See LICENSE.

// Package validate checks the shape of argument lists.
package validate

import (
	"context"

	"github.com/kaguya-lang/kaguya/internal/common/interface/cell"
	"github.com/kaguya-lang/kaguya/internal/common/struct/fault"
	"github.com/kaguya-lang/kaguya/internal/common/struct/lazy"
	"github.com/kaguya-lang/kaguya/internal/common/type/pair"
)

// Unlimited means there is no upper bound on the number of arguments.
const Unlimited = -1

// Variadic forces the spine of args and returns up to max elements. It
// fails if there are fewer than min. The remaining list is returned as is.
// The elements are not forced.
func Variadic(ctx context.Context, args *lazy.T, min, max int) ([]*lazy.T, cell.I, error) {
	expected := make([]*lazy.T, 0, min)

	c, err := args.Force(ctx)
	if err != nil {
		return nil, nil, err
	}

	for i := 0; max == Unlimited || i < max; i++ {
		if !pair.Is(c) {
			if i < min {
				return nil, nil, fault.TooFew(min, i)
			}

			break
		}

		p := pair.To(c)
		expected = append(expected, p.Car())

		c, err = p.Cdr().Force(ctx)
		if err != nil {
			return nil, nil, err
		}
	}

	return expected, c, nil
}

// Fixed returns between min and max arguments and fails on anything else.
func Fixed(ctx context.Context, args *lazy.T, min, max int) ([]*lazy.T, error) {
	expected, rest, err := Variadic(ctx, args, min, max)
	if err != nil {
		return nil, err
	}

	if pair.Is(rest) {
		return nil, fault.TooMany(max)
	}

	if rest != pair.Null {
		return nil, fault.TypeError("nil", rest.Name())
	}

	return expected, nil
}
