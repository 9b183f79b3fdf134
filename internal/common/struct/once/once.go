// Released under an MIT license. See LICENSE.

// Package once provides a single-acquire lock.
//
// A lock is unlocked, locked or fused. The first caller to acquire an
// unlocked lock runs its function. Other callers wait until the holder
// fuses the lock, in which case they return, or resets it, in which case
// they race to acquire it again.
package once

import (
	"context"
	"sync"
)

type status int

const (
	unlocked status = iota
	locked
	fused
)

// T (once) is a single-acquire lock. The zero value is unlocked.
type T struct {
	sync.Mutex
	done   chan struct{}
	status status
}

type once = T

// Fused creates a lock that has already been fused.
func Fused() *T {
	return &T{status: fused}
}

// Do runs fn if the lock is unlocked. The function fn is passed a release
// function that fuses the lock early, letting waiters proceed while fn
// continues to run.
//
// S -> S
// U    L run fn
// L    L wait for holder, then retry
// F    F return nil.
//
// When fn returns:
//
// released err -> S
// 0        nil    F
// 0        !nil   U return err; waiters retry
// 1        X      F return err.
//
// A waiter whose context is cancelled stops waiting and returns the
// context's error. The lock is unaffected.
func (o *once) Do(ctx context.Context, fn func(release func()) error) error {
	for {
		o.Lock()

		switch o.status {
		case fused:
			o.Unlock()

			return nil

		case locked:
			done := o.done
			o.Unlock()

			select {
			case <-done:
			case <-ctx.Done():
				return ctx.Err()
			}

			continue
		}

		o.status = locked
		o.done = make(chan struct{})
		o.Unlock()

		return o.run(fn)
	}
}

// Fused returns true if the lock has been fused.
func (o *once) Fused() bool {
	o.Lock()
	defer o.Unlock()

	return o.status == fused
}

func (o *once) finish(s status) {
	o.Lock()
	defer o.Unlock()

	if o.status != locked {
		return
	}

	o.status = s
	close(o.done)
}

func (o *once) run(fn func(release func()) error) (err error) {
	released := false
	release := func() {
		released = true

		o.finish(fused)
	}

	defer func() {
		if r := recover(); r != nil {
			o.finish(unlocked)
			panic(r)
		}
	}()

	err = fn(release)
	if err != nil && !released {
		o.finish(unlocked)
	} else {
		o.finish(fused)
	}

	return err
}
