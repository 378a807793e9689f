// Package formatter defines how a finished record is rendered into a
// line for the console and file sinks.
//
// TextFormatter produces the glog-compatible layout
//
//	I0115 12:00:00.000123 4242 main.go:42] connection from 10.0.0.1:80
//
// with field order and separators fixed so existing log-scraping tooling
// keeps working. The formatter only prepends the header; the "file:line] "
// prefix and the trailing newline are part of the message composed by the
// facade.
//
// Formatting uses Append-style functions (time.AppendFormat,
// strconv.AppendInt) into pooled bytes.Buffers. Buffers larger than
// 64 KiB are not returned to the pool to prevent a single large line from
// permanently inflating memory usage.
package formatter
