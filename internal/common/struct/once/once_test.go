// Released under an MIT license. See LICENSE.

package once_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kaguya-lang/kaguya/internal/common/struct/once"
)

var errFailed = errors.New("failed")

func TestConcurrent(t *testing.T) {
	o := &once.T{}

	var (
		runs int32
		wg   sync.WaitGroup
	)

	for i := 0; i < 16; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			err := o.Do(context.Background(), func(_ func()) error {
				atomic.AddInt32(&runs, 1)
				time.Sleep(10 * time.Millisecond)

				return nil
			})
			if err != nil {
				t.Errorf("unexpected error %v", err)
			}
		}()
	}

	wg.Wait()

	if runs != 1 {
		t.Fatalf("expected 1 run, got %d", runs)
	}

	if !o.Fused() {
		t.Fatalf("expected the lock to be fused")
	}
}

func TestFailureRetries(t *testing.T) {
	o := &once.T{}

	err := o.Do(context.Background(), func(_ func()) error {
		return errFailed
	})
	if !errors.Is(err, errFailed) {
		t.Fatalf("expected %v, got %v", errFailed, err)
	}

	if o.Fused() {
		t.Fatalf("a failed run should leave the lock unlocked")
	}

	ran := false

	err = o.Do(context.Background(), func(_ func()) error {
		ran = true

		return nil
	})
	if err != nil || !ran {
		t.Fatalf("expected a second run, got %v", err)
	}
}

func TestFused(t *testing.T) {
	err := once.Fused().Do(context.Background(), func(_ func()) error {
		t.Fatalf("a fused lock should not run its function")

		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestRelease(t *testing.T) {
	o := &once.T{}

	err := o.Do(context.Background(), func(release func()) error {
		release()

		return errFailed
	})
	if !errors.Is(err, errFailed) {
		t.Fatalf("expected %v, got %v", errFailed, err)
	}

	if !o.Fused() {
		t.Fatalf("a released lock should stay fused")
	}
}

func TestWaiterCancelled(t *testing.T) {
	o := &once.T{}

	started := make(chan struct{})
	finish := make(chan struct{})

	go func() {
		_ = o.Do(context.Background(), func(_ func()) error {
			close(started)
			<-finish

			return nil
		})
	}()

	<-started

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := o.Do(ctx, func(_ func()) error {
		t.Errorf("a waiter should not run while the lock is held")

		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected %v, got %v", context.Canceled, err)
	}

	close(finish)
}
