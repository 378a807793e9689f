//go:build unix

package logger

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"
	"testing"
	"time"
)

const childEnv = "STREAMLOG_TEST_CHILD"

// runChild re-executes the test binary running only the named test with
// childEnv set, and returns its output and exit error.
func runChild(t *testing.T, name string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := exec.Command(os.Args[0], "-test.run=^"+name+"$", "-test.count=1")
	cmd.Env = append(os.Environ(), childEnv+"=1", "GOTRACEBACK=single")
	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf
	err = cmd.Run()
	return outBuf.String(), errBuf.String(), err
}

func assertAborted(t *testing.T, err error) {
	t.Helper()
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("Expected the child to fail, got %v", err)
	}
	if exitErr.Success() {
		t.Fatal("Expected a failing exit status")
	}
	if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() && ws.Signal() != syscall.SIGABRT {
		t.Errorf("Expected SIGABRT, got %v", ws.Signal())
	}
}

func TestFatal_TerminatesProcess(t *testing.T) {
	if os.Getenv(childEnv) == "1" {
		opts := NewOptions()
		opts.Backend = BackendStd
		opts.Stacktrace = false
		opts.VerbosityEnv = ""
		if err := Initialize(opts); err != nil {
			os.Exit(10)
		}
		Fatal().Msg("unrecoverable state")
		fmt.Println("code after fatal ran")
		os.Exit(0)
	}

	stdout, stderr, err := runChild(t, "TestFatal_TerminatesProcess")
	assertAborted(t, err)

	if !strings.Contains(stderr, "process_test.go:") || !strings.Contains(stderr, "] unrecoverable state") {
		t.Errorf("Expected the fatal record on stderr, got %q", stderr)
	}
	if !strings.HasPrefix(stderr, "F") {
		t.Errorf("Expected the fatal line first, got %q", stderr)
	}
	if strings.Contains(stdout, "code after fatal ran") {
		t.Error("Code after Fatal executed")
	}
}

func TestUninitialized_TerminatesProcess(t *testing.T) {
	if os.Getenv(childEnv) == "1" {
		Info().Msg("too early")
		fmt.Println("code after uninitialized send ran")
		os.Exit(0)
	}

	stdout, stderr, err := runChild(t, "TestUninitialized_TerminatesProcess")
	assertAborted(t, err)

	if !strings.Contains(stderr, "logging: record sent while uninitialized: process_test.go:") {
		t.Errorf("Expected the diagnostic on stderr, got %q", stderr)
	}
	if strings.Contains(stdout, "code after uninitialized send ran") {
		t.Error("Code after the uninitialized send executed")
	}
}

func TestInitialize_LeavesAppSignalHandling(t *testing.T) {
	if os.Getenv(childEnv) == "1" {
		opts := NewOptions()
		opts.Backend = BackendStd
		opts.VerbosityEnv = ""
		if err := Initialize(opts); err != nil {
			os.Exit(10)
		}

		app := make(chan os.Signal, 1)
		signal.Notify(app, syscall.SIGTERM)
		if err := syscall.Kill(os.Getpid(), syscall.SIGTERM); err != nil {
			os.Exit(11)
		}
		select {
		case <-app:
		case <-time.After(5 * time.Second):
			os.Exit(12)
		}
		fmt.Println("graceful shutdown ran")
		if err := Shutdown(); err != nil {
			os.Exit(13)
		}
		fmt.Println("app exited cleanly")
		os.Exit(0)
	}

	stdout, stderr, err := runChild(t, "TestInitialize_LeavesAppSignalHandling")
	if err != nil {
		t.Fatalf("Expected a clean exit, got %v (stderr %q)", err, stderr)
	}
	if !strings.Contains(stdout, "graceful shutdown ran") || !strings.Contains(stdout, "app exited cleanly") {
		t.Errorf("Expected the application's shutdown path to run, got %q", stdout)
	}
}
