// Package logging builds the slog loggers hsv writes diagnostics with.
//
// Text output goes through [Handler], a one-line-per-record format with
// dotted group keys, colored when the destination is a terminal (see
// [ColorMode]). JSON output uses slog's own handler. [Tee] fans records
// out to several handlers, e.g. the terminal and a --log-file.
//
// Verbosity flags map to levels with [LevelFromVerbosity]; the log_level
// setting is parsed with [ParseLevel]. Both know [LevelTrace], which sits
// below Debug and carries per-document detail.
//
// Commands pass their logger down through the context:
//
//	ctx = logging.NewContext(ctx, logger)
//	logging.FromContext(ctx).Debug("selected configuration", "name", name)
//
// Tests use [ForTest] so output lands in the test log.
package logging
