//go:build !unix

package logger

import "os"

// abortProcess exits with the status abort() reports on Windows.
func abortProcess() {
	os.Exit(3)
}
