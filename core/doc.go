// Package core defines the shared types used across streamlog.
//
// Severity tags a record (info, warning, error, fatal) and knows the
// single letter that starts every formatted line. Location captures the
// short file name and line of a call site; the facade writes it into the
// message as "file:line] " when a record is opened.
//
// The coarse clock caches time.Now every 500µs in a background goroutine.
// Sinks configured with CoarseClock stamp records from the cache instead
// of calling time.Now on every write.
package core
