// Released under an MIT license. See LICENSE.

package job

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestDone(t *testing.T) {
	j, ctx := New(context.Background())

	j.Append("(add 1 2)")
	j.Done()

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatalf("context should be cancelled when the job is done")
	}

	if j.Interrupted() {
		t.Fatalf("a finished job was not interrupted")
	}

	if lines := j.Lines(); len(lines) != 1 || lines[0] != "(add 1 2)" {
		t.Fatalf("expected one recorded line, got %v", lines)
	}
}

func TestInterrupt(t *testing.T) {
	j, ctx := New(context.Background())
	defer j.Done()

	signalq <- os.Interrupt

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatalf("context should be cancelled by an interrupt")
	}

	if !j.Interrupted() {
		t.Fatalf("expected the job to be marked as interrupted")
	}
}

func TestInterruptWithoutForeground(t *testing.T) {
	j, ctx := New(context.Background())
	j.Done()

	signalq <- os.Interrupt

	// Wait for the monitor to handle the signal.
	_ = j.Interrupted()

	if j.Interrupted() {
		t.Fatalf("an interrupt should only affect the foreground job")
	}

	<-ctx.Done()
}
