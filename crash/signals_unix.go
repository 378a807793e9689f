//go:build unix

package crash

import (
	"os"

	"golang.org/x/sys/unix"
)

// Signals are the failure signals the handler watches. Termination and
// interrupt signals are left to the application, and SIGABRT stays with
// the runtime so a fatal record's abort still dumps goroutines.
var Signals = []os.Signal{unix.SIGSEGV, unix.SIGBUS, unix.SIGFPE, unix.SIGILL}

func reraise(sig os.Signal) {
	s, ok := sig.(unix.Signal)
	if !ok {
		os.Exit(2)
	}
	_ = unix.Kill(unix.Getpid(), s)
}
