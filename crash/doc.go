// Package crash installs a failure-signal handler.
//
// When SIGSEGV, SIGBUS, SIGFPE or SIGILL is sent to the process, the
// handler runs a callback (the logging facade uses it to write an error
// record and flush its sink), drops its own signal.Notify registration
// and re-raises the signal so the process still dies the way it would
// have without the handler. SIGTERM, SIGINT and SIGHUP are not watched;
// an application's own shutdown handling for them is never disturbed.
// Goroutine tracebacks are switched to "all" while the handler is
// installed.
package crash
