package stdsink

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"os"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/philipp01105/streamlog/core"
	"github.com/philipp01105/streamlog/sink"
)

var lineRE = regexp.MustCompile(`^[IWEF]\d{4} \d{2}:\d{2}:\d{2}\.\d{6} \d+ main\.go:7\] hello\n$`)

func TestSink_Routing(t *testing.T) {
	var stdout, stderr bytes.Buffer
	s := New(Config{Stdout: &stdout, Stderr: &stderr})
	defer s.Close()

	if err := s.Write(core.InfoSeverity, []byte("main.go:7] hello\n")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if !lineRE.MatchString(stdout.String()) || stdout.String()[0] != 'I' {
		t.Errorf("Unexpected stdout line: %q", stdout.String())
	}
	if stderr.Len() != 0 {
		t.Errorf("Expected nothing on stderr, got %q", stderr.String())
	}

	for _, sev := range []core.Severity{core.WarningSeverity, core.ErrorSeverity, core.FatalSeverity} {
		stderr.Reset()
		s.Write(sev, []byte("main.go:7] hello\n"))
		if !lineRE.MatchString(stderr.String()) || stderr.String()[0] != sev.Letter() {
			t.Errorf("%v: unexpected stderr line: %q", sev, stderr.String())
		}
	}

	snap := s.Stats()
	if snap.ProcessedTotal != 4 {
		t.Errorf("Expected 4 processed, got %d", snap.ProcessedTotal)
	}
}

func TestSink_SharedWriter(t *testing.T) {
	var out bytes.Buffer
	s := New(Config{Stdout: &out, Stderr: &out})
	defer s.Close()

	if s.stdout != s.stderr {
		t.Fatal("Expected one output when stdout and stderr are the same writer")
	}

	const goroutines = 8
	const msgs = 50
	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			sev := core.InfoSeverity
			if g%2 == 1 {
				sev = core.ErrorSeverity
			}
			for i := 0; i < msgs; i++ {
				s.Write(sev, []byte("main.go:7] hello\n"))
			}
		}(g)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if len(lines) != goroutines*msgs {
		t.Fatalf("Expected %d lines, got %d", goroutines*msgs, len(lines))
	}
	for _, l := range lines {
		if !lineRE.MatchString(l + "\n") {
			t.Fatalf("Interleaved or malformed line: %q", l)
		}
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestSink_WriteFailure(t *testing.T) {
	s := New(Config{Stdout: failingWriter{}, Stderr: failingWriter{}})
	if err := s.Write(core.InfoSeverity, []byte("x.go:1] y\n")); err == nil {
		t.Error("Expected write error")
	}
	if s.Stats().FailedTotal != 1 {
		t.Errorf("Expected 1 failed write, got %d", s.Stats().FailedTotal)
	}
}

func TestSink_FlushBuffered(t *testing.T) {
	var out bytes.Buffer
	bw := bufio.NewWriter(&out)
	s := New(Config{Stdout: bw, Stderr: io.Discard})

	s.Write(core.InfoSeverity, []byte("x.go:1] buffered\n"))
	if out.Len() != 0 {
		t.Fatal("Expected output to stay buffered before Flush")
	}
	if err := s.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	if !strings.Contains(out.String(), "buffered") {
		t.Errorf("Expected flushed output, got %q", out.String())
	}
}

func TestSink_WriteAfterClose(t *testing.T) {
	s := New(Config{Stdout: io.Discard, Stderr: io.Discard})
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}
	if err := s.Write(core.InfoSeverity, []byte("x")); !errors.Is(err, sink.ErrClosed) {
		t.Errorf("Expected ErrClosed, got %v", err)
	}
}

func TestIsConcurrentSafeWriter(t *testing.T) {
	tests := []struct {
		name     string
		writer   io.Writer
		expected bool
	}{
		{"io.Discard", io.Discard, true},
		{"os.Stdout", os.Stdout, true},
		{"os.Stderr", os.Stderr, true},
		{"bytes.Buffer", &bytes.Buffer{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isConcurrentSafeWriter(tt.writer); got != tt.expected {
				t.Errorf("isConcurrentSafeWriter(%T) = %v, want %v", tt.writer, got, tt.expected)
			}
		})
	}
}

func BenchmarkSink_Write(b *testing.B) {
	s := New(Config{Stdout: io.Discard, Stderr: io.Discard})
	msg := []byte("main.go:7] benchmark message\n")

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Write(core.InfoSeverity, msg)
	}
}
