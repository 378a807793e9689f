package benchmark

import (
	"io"
	"path/filepath"
	"strings"
	"syscall"
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/philipp01105/streamlog/logger"
	"github.com/philipp01105/streamlog/sink"
	"github.com/philipp01105/streamlog/sink/asyncsink"
	"github.com/philipp01105/streamlog/sink/stdsink"
	"github.com/philipp01105/streamlog/sink/zapsink"
)

// withSink initializes the facade on s for the duration of the benchmark.
func withSink(b *testing.B, s sink.Sink) {
	b.Helper()
	opts := logger.NewOptions()
	opts.Sink = s
	opts.Stacktrace = false
	opts.VerbosityEnv = ""
	if err := logger.Initialize(opts); err != nil {
		b.Fatalf("Initialize() error = %v", err)
	}
	b.Cleanup(func() { _ = logger.Shutdown() })
}

func discardStd(coarse bool) sink.Sink {
	return stdsink.New(stdsink.Config{
		Stdout:      io.Discard,
		Stderr:      io.Discard,
		CoarseClock: coarse,
	})
}

func BenchmarkNoopSink(b *testing.B) {
	withSink(b, noopSink{})

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		logger.Info().Msg("info message")
	}
}

func BenchmarkBackends(b *testing.B) {
	b.Run("std", func(b *testing.B) {
		withSink(b, discardStd(false))
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			logger.Info().Str("request ").Int(i).Msg(" done")
		}
	})

	b.Run("async-file", func(b *testing.B) {
		cfg := asyncsink.DefaultConfig()
		cfg.Filename = filepath.Join(b.TempDir(), "bench.log")
		s, err := asyncsink.NewFileSink(cfg)
		if err != nil {
			b.Fatal(err)
		}
		withSink(b, s)
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			logger.Info().Str("request ").Int(i).Msg(" done")
		}
		b.StopTimer()
		snap := s.Stats()
		b.ReportMetric(float64(snap.DroppedTotal[logger.InfoSeverity]), "dropped")
	})

	b.Run("zap", func(b *testing.B) {
		s, err := zapsink.New(zapsink.Config{WriteSyncer: zapcore.AddSync(io.Discard)})
		if err != nil {
			b.Fatal(err)
		}
		withSink(b, s)
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			logger.Info().Str("request ").Int(i).Msg(" done")
		}
	})
}

func BenchmarkCoarseClock(b *testing.B) {
	for _, coarse := range []bool{false, true} {
		name := "time.Now"
		if coarse {
			name = "coarse"
		}
		b.Run(name, func(b *testing.B) {
			withSink(b, discardStd(coarse))
			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				logger.Info().Msg("info message")
			}
		})
	}
}

func BenchmarkDisabled(b *testing.B) {
	withSink(b, noopSink{})

	b.Run("V", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			logger.V(3).Str("hidden ").Int(i).Send()
		}
	})

	b.Run("If", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			logger.If(false, logger.WarningSeverity).Str("hidden ").Int(i).Send()
		}
	})
}

func BenchmarkErrno(b *testing.B) {
	withSink(b, noopSink{})
	err := &wrapped{syscall.ECONNREFUSED}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		logger.PError(err).Msg("connect upstream")
	}
}

type wrapped struct{ err error }

func (w *wrapped) Error() string { return "dial: " + w.err.Error() }
func (w *wrapped) Unwrap() error { return w.err }

func BenchmarkTruncatedMessage(b *testing.B) {
	withSink(b, noopSink{})
	big := strings.Repeat("x", 8192)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		logger.Info().Str(big).Send()
	}
}

func BenchmarkParallel(b *testing.B) {
	withSink(b, discardStd(true))

	b.ResetTimer()
	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			logger.Info().Str("worker message ").Int(i).Send()
			i++
		}
	})
}
