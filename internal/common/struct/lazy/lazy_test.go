// Released under an MIT license. See LICENSE.

package lazy_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/kaguya-lang/kaguya/internal/common/interface/cell"
	"github.com/kaguya-lang/kaguya/internal/common/struct/fault"
	"github.com/kaguya-lang/kaguya/internal/common/struct/lazy"
	"github.com/kaguya-lang/kaguya/internal/common/struct/loc"
	"github.com/kaguya-lang/kaguya/internal/common/type/num"
)

func counting(runs *int32, c cell.I, err error) lazy.Thunk {
	return func(ctx context.Context) (cell.I, error) {
		atomic.AddInt32(runs, 1)

		return c, err
	}
}

func TestCancelledRetries(t *testing.T) {
	var runs int32

	b := lazy.New(loc.Builtin, func(ctx context.Context) (cell.I, error) {
		if atomic.AddInt32(&runs, 1) == 1 {
			return nil, context.Canceled
		}

		return num.Int(7), nil
	})

	_, err := b.Force(context.Background())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected %v, got %v", context.Canceled, err)
	}

	if _, _, ok := b.Peek(); ok {
		t.Fatalf("a cancelled binding should not be forced")
	}

	c, err := b.Force(context.Background())
	if err != nil || c.(interface{ String() string }).String() != "7" {
		t.Fatalf("expected 7, got %v, %v", c, err)
	}
}

func TestConcurrentForce(t *testing.T) {
	var (
		runs int32
		wg   sync.WaitGroup
	)

	n := num.Int(42)
	b := lazy.New(loc.Builtin, counting(&runs, n, nil))

	for i := 0; i < 32; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			c, err := b.Force(context.Background())
			if err != nil || c != n {
				t.Errorf("expected %v, got %v, %v", n, c, err)
			}
		}()
	}

	wg.Wait()

	if runs != 1 {
		t.Fatalf("expected 1 run, got %d", runs)
	}
}

func TestRecovered(t *testing.T) {
	b := lazy.New(loc.Builtin, func(ctx context.Context) (cell.I, error) {
		panic("boom")
	})

	_, err := b.Force(context.Background())
	if f, ok := fault.As(err); !ok || f.Message != "boom" {
		t.Fatalf("expected a fault with message boom, got %v", err)
	}
}

func TestSharedFault(t *testing.T) {
	var runs int32

	pos := loc.T{Name: "test", Offset: 3, Length: 4}
	b := lazy.New(pos, counting(&runs, nil, fault.Panic("oops")))

	_, first := b.Force(context.Background())
	_, second := b.Force(context.Background())

	if runs != 1 {
		t.Fatalf("expected 1 run, got %d", runs)
	}

	if first != second {
		t.Fatalf("every forcer should observe the same fault")
	}

	f, ok := fault.As(first)
	if !ok || len(f.Stack) != 1 || f.Stack[0] != pos {
		t.Fatalf("expected the binding's location on the stack, got %v", first)
	}
}

func TestValue(t *testing.T) {
	n := num.Int(1)
	b := lazy.Value(loc.Builtin, n)

	c, err, ok := b.Peek()
	if !ok || err != nil || c != n {
		t.Fatalf("a value binding should be born forced")
	}
}
