// Released under an MIT license. See LICENSE.

package env_test

import (
	"context"
	"testing"

	"github.com/kaguya-lang/kaguya/internal/common/struct/lazy"
	"github.com/kaguya-lang/kaguya/internal/common/type/env"
	"github.com/kaguya-lang/kaguya/internal/common/type/list"
	"github.com/kaguya-lang/kaguya/internal/common/type/num"
	"github.com/kaguya-lang/kaguya/internal/common/type/proc"
)

func value(t *testing.T, b *lazy.T) interface{} {
	t.Helper()

	if b == nil {
		t.Fatalf("expected a binding")
	}

	c, err := b.Force(context.Background())
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	return c
}

func TestChildShadows(t *testing.T) {
	one, two := num.Int(1), num.Int(2)

	g := env.NewGlobal(nil)
	g.Define("x", lazy.Builtin(one))
	g.Define("y", lazy.Builtin(one))

	c := env.NewChild(map[string]*lazy.T{"x": lazy.Builtin(two)}, g)

	if value(t, c.Lookup("x")) != two {
		t.Fatalf("the child binding should shadow the global one")
	}

	if value(t, c.Lookup("y")) != one {
		t.Fatalf("lookup should continue in the enclosing scope")
	}

	if c.Enclosing() != g {
		t.Fatalf("unexpected enclosing scope")
	}
}

func TestEmpty(t *testing.T) {
	if (env.Empty{}).Lookup("x") != nil {
		t.Fatalf("nothing is bound in the empty scope")
	}

	if env.NewChild(nil, env.Empty{}).Lookup("x") != nil {
		t.Fatalf("expected lookup to fail")
	}
}

func TestGlobalOverloads(t *testing.T) {
	root := env.NewGlobal(nil)
	root.Define("f", lazy.Builtin(num.Int(0)))

	g := env.NewGlobal(root)

	if value(t, g.Lookup("f")) != value(t, root.Lookup("f")) {
		t.Fatalf("an undefined name should be found in the enclosing scope")
	}

	g.Define("f", lazy.Builtin(num.Int(1)))
	g.Define("f", lazy.Builtin(num.Int(2)))
	g.Define("_", lazy.Builtin(num.Int(3)))

	p, ok := value(t, g.Lookup("f")).(*proc.Poly)
	if !ok {
		t.Fatalf("two alternatives should look up as a poly")
	}

	c, err := p.Definitions.Force(context.Background())
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	alternatives, _, err := list.Slice(context.Background(), c)
	if err != nil || len(alternatives) != 2 {
		t.Fatalf("expected 2 alternatives, got %d, %v", len(alternatives), err)
	}

	if g.Lookup("_") != nil {
		t.Fatalf("the wildcard should never be defined")
	}

	if names := g.Names(); len(names) != 1 || names[0] != "f" || g.Size() != 1 {
		t.Fatalf("expected only f to be defined, got %v", names)
	}
}
