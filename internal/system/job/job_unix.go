// Released under an MIT license. See LICENSE.

//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

package job

import (
	"os"
	"os/signal"

	"golang.org/x/sys/unix"
)

func ignore() {
	signal.Ignore(unix.SIGQUIT, unix.SIGTTIN, unix.SIGTTOU)
}

func interrupts() []os.Signal {
	return []os.Signal{unix.SIGINT}
}
