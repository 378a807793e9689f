// Package logger is the public API of streamlog. Most users only need to
// import this package.
//
// A record is opened with one of the severity functions, composed with
// chained append methods and handed to the sink with Send, Msg or Msgf:
//
//	logger.Info().Str("connection from ").Str(ip).Byte(':').Int(port).Send()
//	logger.Warning().Msgf("slow request: %v", d)
//	logger.PError(err).Str("open ").Str(path).Send()
//	logger.V(2).Msg("cache miss")
//
// Every record starts with the "file:line] " of its call site and is
// built in a fixed 4096-byte buffer taken from a pool; longer messages
// are truncated. Send is the single point where the finished message is
// dispatched, and a Stream must not be touched after it.
//
// Disabled records are nil streams. V above the current verbosity, If
// with a false condition and Debug in builds tagged ndebug return nil,
// and every method on a nil *Stream returns immediately without
// converting its argument.
//
// The facade has two states. Initialize selects the sink, the newline
// policy and the starting verbosity; Shutdown flushes and closes the sink.
// Sending a record while uninitialized prints a diagnostic to stderr and
// aborts the process. A Fatal record is written, the sink is flushed and
// the process aborts; Send does not return.
package logger
