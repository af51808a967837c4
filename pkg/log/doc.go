// Package log provides a logging abstraction for simtrace components.
//
// The Logger interface keeps the trace reader and the playback driver free of
// any particular logging library. A zerolog adapter is provided for the CLI,
// and a no-op logger is the default for embedders and tests.
//
// # Usage
//
//	logger := log.NewZerologAdapter(os.Stderr, zerolog.InfoLevel)
//	r, err := trace.Open(path, trace.WithLogger(logger))
//
// Or discard everything:
//
//	logger := log.NewNoopLogger()
package log
