package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/multierr"

	"github.com/philipp01105/streamlog/core"
	"github.com/philipp01105/streamlog/sink"
	"github.com/philipp01105/streamlog/sink/asyncsink"
	"github.com/philipp01105/streamlog/sink/stdsink"
	"github.com/philipp01105/streamlog/sink/zapsink"
)

// newSink builds the backend named by o.Backend. o must be validated.
func newSink(o *Options) (sink.Sink, error) {
	if o.Sink != nil {
		return o.Sink, nil
	}

	switch o.Backend {
	case BackendStd:
		return newStdSink(o)
	case BackendZap:
		s, err := zapsink.New(zapsink.Config{
			Filename:    o.Filename,
			CoarseClock: o.CoarseClock,
		})
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendAsync:
		return asyncsink.New(asyncConfig(o))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, o.Backend)
	}
}

func asyncConfig(o *Options) asyncsink.Config {
	cfg := asyncsink.DefaultConfig()
	cfg.Filename = o.Filename
	cfg.QueueSize = o.QueueSize
	cfg.CoarseClock = o.CoarseClock
	if o.DrainTimeout > 0 {
		cfg.DrainTimeout = o.DrainTimeout
	}
	if sev, ok := core.ParseSeverity(o.FlushOn); ok {
		cfg.FlushOn = sev
	}

	// Fatal records always block; the chosen policy covers the rest.
	if policy, err := sink.ParseOverflowPolicy(o.Overflow); err == nil {
		for sev := core.InfoSeverity; sev < core.FatalSeverity; sev++ {
			cfg.OverflowPolicy[sev] = policy
		}
	}
	return cfg
}

// fileStdSink is a std sink writing both streams to a file it owns.
type fileStdSink struct {
	*stdsink.Sink
	file *os.File
}

func (s *fileStdSink) Close() error {
	return multierr.Combine(s.Sink.Close(), s.file.Sync(), s.file.Close())
}

func newStdSink(o *Options) (sink.Sink, error) {
	if o.Filename == "" {
		return stdsink.New(stdsink.Config{CoarseClock: o.CoarseClock}), nil
	}

	if err := os.MkdirAll(filepath.Dir(o.Filename), 0755); err != nil {
		return nil, err
	}
	file, err := os.OpenFile(o.Filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	return &fileStdSink{
		Sink: stdsink.New(stdsink.Config{
			Stdout:      file,
			Stderr:      file,
			CoarseClock: o.CoarseClock,
		}),
		file: file,
	}, nil
}
