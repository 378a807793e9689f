// Package zapsink hands facade records to a go.uber.org/zap core.
//
// The encoder is zap's console encoder configured to stay close to the
// glog layout. zap always encodes the time before the level, so lines read
// "0102 15:04:05.000000 I <tid> file:line] text" with single spaces.
// Caller annotation is disabled because the facade embeds the location
// itself. Fatal records are written at zap's FatalLevel
// through zapcore.Core.Write, which encodes without exiting; terminating
// the process is the facade's job.
package zapsink

import (
	"bytes"
	"errors"
	"strconv"
	"syscall"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/philipp01105/streamlog/core"
	"github.com/philipp01105/streamlog/formatter"
)

// Config holds configuration for the zap sink
type Config struct {
	// Filename is the output path; empty means stdout. Any path zap.Open
	// accepts ("stderr", "file:///...") works.
	Filename string
	// WriteSyncer overrides Filename as the destination (used by tests)
	WriteSyncer zapcore.WriteSyncer
	// JSON switches to zap's JSON encoder
	JSON bool
	// CoarseClock stamps records from the cached coarse clock
	CoarseClock bool
}

// Sink writes records through a zapcore.Core.
type Sink struct {
	core  zapcore.Core
	clock core.Clock
	close func()
}

// EncodeLevelLetter encodes a zap level as the single glog letter.
func EncodeLevelLetter(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	switch {
	case l >= zapcore.FatalLevel:
		enc.AppendString("F")
	case l >= zapcore.ErrorLevel:
		enc.AppendString("E")
	case l == zapcore.WarnLevel:
		enc.AppendString("W")
	default:
		enc.AppendString("I")
	}
}

func newEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:          "ts",
		LevelKey:         "level",
		MessageKey:       "msg",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeLevel:      EncodeLevelLetter,
		EncodeTime:       zapcore.TimeEncoderOfLayout(formatter.DefaultTimestampFormat),
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " ",
	}
}

// New builds the zap core and opens its destination.
func New(cfg Config) (*Sink, error) {
	ws := cfg.WriteSyncer
	closeFn := func() {}
	if ws == nil {
		path := cfg.Filename
		if path == "" {
			path = "stdout"
		}
		var err error
		ws, closeFn, err = zap.Open(path)
		if err != nil {
			return nil, err
		}
	}

	var enc zapcore.Encoder
	if cfg.JSON {
		enc = zapcore.NewJSONEncoder(newEncoderConfig())
	} else {
		enc = zapcore.NewConsoleEncoder(newEncoderConfig())
	}

	return &Sink{
		core:  zapcore.NewCore(enc, zapcore.Lock(ws), zap.NewAtomicLevelAt(zapcore.InfoLevel)),
		clock: core.NewClock(cfg.CoarseClock),
		close: closeFn,
	}, nil
}

func zapLevel(sev core.Severity) zapcore.Level {
	switch sev {
	case core.WarningSeverity:
		return zapcore.WarnLevel
	case core.ErrorSeverity:
		return zapcore.ErrorLevel
	case core.FatalSeverity:
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

// Write encodes msg prefixed with the thread id. A trailing newline is
// dropped since the encoder ends every line itself.
func (s *Sink) Write(sev core.Severity, msg []byte) error {
	lvl := zapLevel(sev)
	if !s.core.Enabled(lvl) {
		return nil
	}
	msg = bytes.TrimSuffix(msg, []byte{'\n'})

	buf := formatter.GetBuffer()
	buf.Write(strconv.AppendInt(buf.AvailableBuffer(), int64(core.ThreadID()), 10))
	buf.WriteByte(' ')
	buf.Write(msg)
	ent := zapcore.Entry{
		Level:   lvl,
		Time:    s.clock(),
		Message: buf.String(),
	}
	formatter.PutBuffer(buf)

	return s.core.Write(ent, nil)
}

// Flush syncs the underlying writer. Sync errors from terminals and
// pipes, which cannot be synced, are ignored.
func (s *Sink) Flush() error {
	return ignoreUnsyncable(s.core.Sync())
}

// Close syncs and releases the destination.
func (s *Sink) Close() error {
	err := s.Flush()
	s.close()
	return err
}

// Logger returns a zap.Logger sharing this sink's core, so code that
// already speaks zap writes to the same destination.
func (s *Sink) Logger() *zap.Logger {
	return zap.New(s.core)
}

func ignoreUnsyncable(err error) error {
	var kept error
	for _, e := range multierr.Errors(err) {
		if errors.Is(e, syscall.EINVAL) || errors.Is(e, syscall.ENOTTY) || errors.Is(e, syscall.EBADF) {
			continue
		}
		kept = multierr.Append(kept, e)
	}
	return kept
}

