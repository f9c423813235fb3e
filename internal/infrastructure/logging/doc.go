// Package logging provides structured diagnostics using uber/zap.
//
// tccm prints one result line per command on stdout or stderr; everything
// else (request ids, URLs, archive sizes, timings) is a log entry written to
// stderr by this package's logger, quiet at the default "warn" level.
//
// Two encodings:
//   - Development: colored console output for people at a terminal (default)
//   - Production: JSON output for CI log collection
//
// Example Usage:
//
//	logger, err := logging.New(logging.Config{Level: "debug", Development: true})
//	logger.Debug("uploading archive", zap.String("path", path))
//	client.SetLogger(logger.Sugar())
package logging
