package zapsink

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"syscall"
	"testing"

	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"

	"github.com/philipp01105/streamlog/core"
)

func newTestSink(t *testing.T) (*Sink, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	s, err := New(Config{WriteSyncer: zapcore.AddSync(&buf)})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return s, &buf
}

func TestSink_Layout(t *testing.T) {
	s, buf := newTestSink(t)
	defer s.Close()

	line := regexp.MustCompile(`^\d{4} \d{2}:\d{2}:\d{2}\.\d{6} ([IWEF]) \d+ main\.go:5\] hello\n$`)
	tests := []struct {
		sev    core.Severity
		letter string
	}{
		{core.InfoSeverity, "I"},
		{core.WarningSeverity, "W"},
		{core.ErrorSeverity, "E"},
		{core.FatalSeverity, "F"},
	}
	for _, tt := range tests {
		buf.Reset()
		if err := s.Write(tt.sev, []byte("main.go:5] hello\n")); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
		m := line.FindStringSubmatch(buf.String())
		if m == nil {
			t.Fatalf("Unexpected line for %v: %q", tt.sev, buf.String())
		}
		if m[1] != tt.letter {
			t.Errorf("Expected letter %s, got %s", tt.letter, m[1])
		}
	}
}

func TestSink_JSON(t *testing.T) {
	var buf bytes.Buffer
	s, err := New(Config{WriteSyncer: zapcore.AddSync(&buf), JSON: true})
	if err != nil {
		t.Fatal(err)
	}
	s.Write(core.ErrorSeverity, []byte("db.go:8] query failed"))

	out := buf.String()
	if !strings.Contains(out, `"level":"E"`) || !strings.Contains(out, `db.go:8] query failed"`) {
		t.Errorf("Unexpected JSON output: %s", out)
	}
}

func TestSink_FileDestination(t *testing.T) {
	name := filepath.Join(t.TempDir(), "zap.log")
	s, err := New(Config{Filename: name})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	s.Write(core.InfoSeverity, []byte("f.go:1] to file\n"))
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
}

func TestSink_Logger(t *testing.T) {
	s, buf := newTestSink(t)
	s.Logger().Warn("from zap")
	if !strings.Contains(buf.String(), " W ") || !strings.Contains(buf.String(), "from zap") {
		t.Errorf("Expected zap logger to share the sink core, got %q", buf.String())
	}
}

func TestIgnoreUnsyncable(t *testing.T) {
	if err := ignoreUnsyncable(fmt.Errorf("sync /dev/stdout: %w", syscall.EINVAL)); err != nil {
		t.Errorf("Expected EINVAL to be ignored, got %v", err)
	}
	real := errors.New("disk gone")
	err := ignoreUnsyncable(multierr.Combine(syscall.ENOTTY, real))
	if !errors.Is(err, real) {
		t.Errorf("Expected real error to be kept, got %v", err)
	}
}
