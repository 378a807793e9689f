package core

import "strings"

// Severity classifies a log record and decides which sink entry point it
// targets and what happens after it is written.
type Severity int8

const (
	// InfoSeverity for informational records
	InfoSeverity Severity = iota
	// WarningSeverity for warnings
	WarningSeverity
	// ErrorSeverity for errors
	ErrorSeverity
	// FatalSeverity for fatal records. The facade flushes the sink and
	// aborts the process after writing one.
	FatalSeverity
)

// NumSeverities is the number of defined severities.
const NumSeverities = 4

var severityNames = [NumSeverities]string{
	InfoSeverity:    "INFO",
	WarningSeverity: "WARNING",
	ErrorSeverity:   "ERROR",
	FatalSeverity:   "FATAL",
}

var severityLetters = [NumSeverities]byte{'I', 'W', 'E', 'F'}

// String returns the upper-case name of the severity
func (s Severity) String() string {
	if s.Valid() {
		return severityNames[s]
	}
	return "UNKNOWN"
}

// Letter returns the single character used in the line header.
func (s Severity) Letter() byte {
	if s.Valid() {
		return severityLetters[s]
	}
	return '?'
}

// Valid reports whether s is one of the defined severities
func (s Severity) Valid() bool {
	return s >= InfoSeverity && s <= FatalSeverity
}

// ParseSeverity converts a name or letter to a Severity. Unknown input
// yields InfoSeverity and false.
func ParseSeverity(s string) (Severity, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "I", "INFO":
		return InfoSeverity, true
	case "W", "WARN", "WARNING":
		return WarningSeverity, true
	case "E", "ERROR":
		return ErrorSeverity, true
	case "F", "FATAL", "CRITICAL":
		return FatalSeverity, true
	default:
		return InfoSeverity, false
	}
}
