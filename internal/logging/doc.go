// Package logging provides structured logging for the tigen CLI using slog.
//
// Text output goes through [Handler], which colorizes levels and keys when
// the writer is a terminal. JSON output uses the standard library handler.
// Verbosity flags map to levels with [LevelFromVerbosity]; [LevelTrace]
// sits below debug and is used for per-entry compiler detail.
//
//	logger := logging.New(logging.Config{
//		Level:  slog.LevelInfo,
//		Format: logging.FormatText,
//		Output: os.Stderr,
//	})
//	ctx = logging.NewContext(ctx, logger)
//
// Commands retrieve the logger with [FromContext]. Tests use [ForTest] so
// log output shows up with the failing test.
package logging
