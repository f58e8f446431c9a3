// Package logging provides structured logging for panicreport.
//
// It wraps a package-level zap logger. Logging is silent by default so that
// the crash dialog owns the terminal; set PANICREPORT_LOG_LEVEL (or pass
// --log-level) to "debug", "info", "warn" or "error" to enable it.
//
// Log output goes to stderr in console format:
//
//	2026-10-16T10:30:45.123+0200  INFO  guard decision  interactive=false  ci=true
//
// Domain helpers keep field names consistent across packages:
//
//	logging.LogFailure(failure)
//	logging.LogGuardDecision(interactive, terminal, ci, vendor)
//	logging.LogSubmission(reportID, duration, err)
//
// All functions are safe for concurrent use.
package logging
