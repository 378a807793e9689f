package logger

import "github.com/philipp01105/streamlog/core"

// Severity Re-export type and constants for convenience
type Severity = core.Severity

const (
	InfoSeverity    = core.InfoSeverity
	WarningSeverity = core.WarningSeverity
	ErrorSeverity   = core.ErrorSeverity
	FatalSeverity   = core.FatalSeverity
)

// ParseSeverity converts a name or letter to a Severity
func ParseSeverity(s string) (Severity, bool) {
	return core.ParseSeverity(s)
}
