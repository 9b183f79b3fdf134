// Released under an MIT license. See LICENSE.

package task

import (
	"context"
	"strings"

	"github.com/kaguya-lang/kaguya/internal/common/interface/cell"
	"github.com/kaguya-lang/kaguya/internal/common/interface/literal"
	"github.com/kaguya-lang/kaguya/internal/common/struct/lazy"
	"github.com/kaguya-lang/kaguya/internal/common/type/effect"
	"github.com/kaguya-lang/kaguya/internal/common/type/pair"
	"github.com/kaguya-lang/kaguya/internal/common/type/proc"
	"github.com/kaguya-lang/kaguya/internal/common/type/str"
	"github.com/kaguya-lang/kaguya/internal/common/type/tagged"
)

// Literal renders c so that reading the result gives an equal term,
// where that is possible. Strings are quoted.
func Literal(ctx context.Context, c cell.I) (string, error) {
	var b strings.Builder

	err := render(ctx, &b, c, true)

	return b.String(), err
}

// Text renders c for display. Strings are written as they are.
func Text(ctx context.Context, c cell.I) (string, error) {
	var b strings.Builder

	err := render(ctx, &b, c, false)

	return b.String(), err
}

func render(ctx context.Context, b *strings.Builder, c cell.I, quoted bool) error {
	switch t := c.(type) {
	case *str.T:
		if !quoted {
			b.WriteString(t.String())

			return nil
		}

	case *pair.T:
		if c == pair.Null {
			b.WriteString("()")

			return nil
		}

		b.WriteString("(")

		err := renderList(ctx, b, t, quoted)
		if err != nil {
			return err
		}

		b.WriteString(")")

		return nil

	case *tagged.T:
		return renderAll(ctx, b, quoted, t.Inner(), ": ", t.Tag())

	case *proc.Lambda:
		return renderAll(ctx, b, quoted,
			"("+t.Discipline.String()+" ", t.Pattern, " -> ", t.Body, ")",
		)

	case *proc.Native:
		b.WriteString("<procedure " + t.Label + ">")

		return nil

	case *proc.Poly:
		return renderAll(ctx, b, quoted, "(poly . ", t.Definitions, ")")
	}

	if s, ok := literal.String(c); ok {
		b.WriteString(s)

		return nil
	}

	if effect.Is(c) {
		b.WriteString("<io>")

		return nil
	}

	b.WriteString("<" + c.Name() + ">")

	return nil
}

// renderAll renders each of parts, which are strings or bindings.
func renderAll(ctx context.Context, b *strings.Builder, quoted bool, parts ...interface{}) error {
	for _, p := range parts {
		switch p := p.(type) {
		case string:
			b.WriteString(p)
		case *lazy.T:
			c, err := p.Force(ctx)
			if err != nil {
				return err
			}

			err = render(ctx, b, c, quoted)
			if err != nil {
				return err
			}
		}
	}

	return nil
}

func renderList(ctx context.Context, b *strings.Builder, p *pair.T, quoted bool) error {
	for {
		err := renderAll(ctx, b, quoted, p.Car())
		if err != nil {
			return err
		}

		c, err := p.Cdr().Force(ctx)
		if err != nil {
			return err
		}

		if c == pair.Null {
			return nil
		}

		next, ok := c.(*pair.T)
		if !ok {
			return renderAll(ctx, b, quoted, " . ", lazy.Builtin(c))
		}

		b.WriteString(" ")

		p = next
	}
}
