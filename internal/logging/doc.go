// Package logging builds the slog loggers used by the xcsdk CLI.
//
// Text output goes through [Handler], a compact single-line format that is
// colorized when the destination is a terminal. JSON output uses the standard
// library handler. A log file can mirror every record as JSON.
//
//	logger := logging.New(logging.Config{
//		Level:  logging.LevelFromVerbosity(2),
//		Format: logging.FormatText,
//		Output: os.Stderr,
//	})
//	logger.Debug("searching SDKs directory", "path", dir)
//
// Commands recover the logger from their context with [FromContext]; library
// code receives it explicitly (see applesdk.SdkSearch.WithLogger).
//
// Tests use [ForTest] so output is attached to the running test.
package logging
