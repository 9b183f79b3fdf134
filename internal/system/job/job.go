// Released under an MIT license. See LICENSE.

// Package job tracks the foreground evaluation so that an interrupt from
// the terminal cancels it instead of killing the interpreter.
package job

import (
	"context"
	"os"
	"os/signal"
	"sync"
)

// T (job) is a single top-level evaluation.
type T struct {
	cancel      context.CancelFunc
	interrupted bool
	lines       []string
}

type job = T

// New creates a job and makes it the foreground job. The returned context
// is cancelled when the job is interrupted or done.
func New(ctx context.Context) (*T, context.Context) {
	ctx, cancel := context.WithCancel(ctx)

	j := &job{cancel: cancel}

	request(func() {
		foreground = j
	})

	return j, ctx
}

// Append records a line of source that is part of the job.
func (j *job) Append(line string) {
	request(func() {
		j.lines = append(j.lines, line)
	})
}

// Done releases the job. It is no longer the foreground job.
func (j *job) Done() {
	request(func() {
		if foreground == j {
			foreground = nil
		}
	})

	j.cancel()
}

// Interrupted returns true if the job was cancelled by an interrupt.
func (j *job) Interrupted() (interrupted bool) {
	request(func() {
		interrupted = j.interrupted
	})

	return interrupted
}

// Lines returns the source lines recorded for the job.
func (j *job) Lines() (lines []string) {
	request(func() {
		lines = append(lines, j.lines...)
	})

	return lines
}

// Monitor starts handling interrupts. It is safe to call more than once.
func Monitor() {
	start.Do(func() {
		ignore()

		signal.Notify(signalq, interrupts()...)

		go monitor()
	})
}

//nolint:gochecknoglobals
var (
	foreground *T

	requestq = make(chan func(), 1)
	signalq  = make(chan os.Signal, 2)

	start sync.Once
)

func (j *job) interrupt() {
	j.interrupted = true
	j.cancel()
}

func monitor() {
	for {
		select {
		case f := <-requestq:
			f()

		// An interrupt only reaches this process when it is in the
		// foreground. Cancelling the current job is all that is needed.
		case <-signalq:
			if foreground != nil {
				foreground.interrupt()
			}
		}
	}
}

func request(f func()) {
	Monitor()

	r := make(chan struct{})

	requestq <- func() {
		f()
		close(r)
	}

	<-r
}
