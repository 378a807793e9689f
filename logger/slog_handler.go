package logger

import (
	"context"
	"log/slog"
	"path/filepath"
	"runtime"

	"github.com/philipp01105/streamlog/core"
)

// SlogHandler is an adapter that implements slog.Handler on top of the
// facade, so packages logging through log/slog share the active sink.
//
// Attributes are rendered after the message as " key=value"; groups
// prefix their keys with "group.".
type SlogHandler struct {
	level slog.Leveler
	attrs []slog.Attr
	group string
}

// NewSlogHandler creates a new slog.Handler that forwards records at or
// above level. A nil level means slog.LevelInfo.
func NewSlogHandler(level slog.Leveler) *SlogHandler {
	if level == nil {
		level = slog.LevelInfo
	}
	return &SlogHandler{level: level}
}

// Enabled reports whether the handler handles records at the given level.
func (h *SlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle composes the record and sends it. Records above slog's error
// level stay at error severity; only Fatal aborts.
func (h *SlogHandler) Handle(_ context.Context, r slog.Record) error {
	s := openAt(slogLevelToSeverity(r.Level), recordLocation(r.PC))
	s.Str(r.Message)
	for _, a := range h.attrs {
		appendAttr(s, "", a)
	}
	r.Attrs(func(a slog.Attr) bool {
		appendAttr(s, h.group, a)
		return true
	})
	s.Send()
	return nil
}

// WithAttrs returns a new SlogHandler with additional attributes.
func (h *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	newAttrs := make([]slog.Attr, len(h.attrs), len(h.attrs)+len(attrs))
	copy(newAttrs, h.attrs)
	for _, a := range attrs {
		if h.group != "" {
			a.Key = h.group + "." + a.Key
		}
		newAttrs = append(newAttrs, a)
	}
	return &SlogHandler{level: h.level, attrs: newAttrs, group: h.group}
}

// WithGroup returns a new SlogHandler with the given group name.
func (h *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	group := name
	if h.group != "" {
		group = h.group + "." + name
	}
	// attrs already carry their group prefix
	return &SlogHandler{level: h.level, attrs: h.attrs, group: group}
}

func recordLocation(pc uintptr) core.Location {
	if pc == 0 {
		return core.Location{File: "???", Line: 1}
	}
	frame, _ := runtime.CallersFrames([]uintptr{pc}).Next()
	if frame.File == "" {
		return core.Location{File: "???", Line: 1}
	}
	return core.Location{File: filepath.Base(frame.File), Line: frame.Line}
}

// slogLevelToSeverity converts a slog.Level to a Severity. Debug records
// map to info.
func slogLevelToSeverity(level slog.Level) core.Severity {
	switch {
	case level >= slog.LevelError:
		return core.ErrorSeverity
	case level >= slog.LevelWarn:
		return core.WarningSeverity
	default:
		return core.InfoSeverity
	}
}

func appendAttr(s *Stream, group string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	key := a.Key
	if group != "" && key != "" {
		key = group + "." + key
	}

	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			appendAttr(s, key, ga)
		}
		return
	}

	s.Byte(' ').Str(key).Byte('=')
	switch a.Value.Kind() {
	case slog.KindString:
		s.Str(a.Value.String())
	case slog.KindInt64:
		s.Int64(a.Value.Int64())
	case slog.KindUint64:
		s.Uint64(a.Value.Uint64())
	case slog.KindFloat64:
		s.Float64(a.Value.Float64())
	case slog.KindBool:
		s.Bool(a.Value.Bool())
	case slog.KindDuration:
		s.Dur(a.Value.Duration())
	case slog.KindTime:
		s.Time(a.Value.Time())
	default:
		s.Any(a.Value.Any())
	}
}
