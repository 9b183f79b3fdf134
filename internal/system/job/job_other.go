// Released under an MIT license. See LICENSE.

//go:build !(aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris)

package job

import "os"

func ignore() {}

func interrupts() []os.Signal {
	return []os.Signal{os.Interrupt}
}
