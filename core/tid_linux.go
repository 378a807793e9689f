//go:build linux

package core

import "golang.org/x/sys/unix"

// ThreadID returns the id of the OS thread running the caller.
func ThreadID() int {
	return unix.Gettid()
}
