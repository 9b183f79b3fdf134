// Released under an MIT license. See LICENSE.

package fault_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/kaguya-lang/kaguya/internal/common/struct/fault"
	"github.com/kaguya-lang/kaguya/internal/common/struct/loc"
)

func TestContextPassesThrough(t *testing.T) {
	err := fault.Unwind(context.Canceled, loc.Anonymous(0, 1))
	if err != context.Canceled {
		t.Fatalf("expected %v, got %v", context.Canceled, err)
	}

	if r := fault.Recovered(fmt.Errorf("wrapped: %w", context.Canceled)); !errors.Is(r, context.Canceled) {
		t.Fatalf("a recovered context error should not become a fault")
	}
}

func TestUnwind(t *testing.T) {
	a := loc.T{Name: "a", Offset: 0, Length: 1}
	b := loc.T{Name: "a", Offset: 4, Length: 2}

	f := fault.Panic("oops")

	g := f.Unwind(a).Unwind(a).Unwind(loc.Builtin).Unwind(b)

	if len(f.Stack) != 0 {
		t.Fatalf("unwinding should not modify the original fault")
	}

	if len(g.Stack) != 2 || g.Stack[0] != a || g.Stack[1] != b {
		t.Fatalf("expected [%v %v], got %v", a, b, g.Stack)
	}
}

func TestWrapped(t *testing.T) {
	err := fmt.Errorf("loading: %w", fault.UndefinedSymbol("x"))

	if !fault.Is(err, fault.Undefined) {
		t.Fatalf("expected an undefined symbol fault")
	}

	if fault.IsBind(err) {
		t.Fatalf("an undefined symbol is not a bind fault")
	}

	f, _ := fault.As(err)
	if f.Message != "Undefined symbol: 'x'." {
		t.Fatalf("unexpected message %q", f.Message)
	}
}
