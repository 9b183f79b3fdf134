// Released under an MIT license. See LICENSE.

// Package list provides common list operations. A list is not a true type.
// Lists are more of a type by convention. They are composed of cons cells.
package list

import (
	"context"

	"github.com/kaguya-lang/kaguya/internal/common/interface/cell"
	"github.com/kaguya-lang/kaguya/internal/common/struct/lazy"
	"github.com/kaguya-lang/kaguya/internal/common/type/pair"
)

// New creates a proper list from elements.
func New(elements ...*lazy.T) cell.I {
	return Improper(lazy.Builtin(pair.Null), elements...)
}

// Of creates a proper list from terms that are already known.
func Of(terms ...cell.I) cell.I {
	elements := make([]*lazy.T, len(terms))
	for i, t := range terms {
		elements[i] = lazy.Builtin(t)
	}

	return New(elements...)
}

// Improper creates a list from elements that ends in tail.
// If there are no elements the term tail denotes must be known.
func Improper(tail *lazy.T, elements ...*lazy.T) cell.I {
	if len(elements) == 0 {
		c, _, ok := tail.Peek()
		if !ok {
			panic("improper list with no elements")
		}

		return c
	}

	for i := len(elements) - 1; i > 0; i-- {
		tail = lazy.Builtin(pair.Cons(elements[i], tail))
	}

	return pair.Cons(elements[0], tail)
}

// Slice forces the spine of the list c and returns its elements and the
// term that ends it. The elements themselves are not forced.
func Slice(ctx context.Context, c cell.I) ([]*lazy.T, cell.I, error) {
	var elements []*lazy.T

	for pair.Is(c) {
		p := pair.To(c)
		elements = append(elements, p.Car())

		next, err := p.Cdr().Force(ctx)
		if err != nil {
			return nil, nil, err
		}

		c = next
	}

	return elements, c, nil
}
