// Package logging provides structured logging utilities for dsgekit components.
//
// # Overview
//
// This package wraps the standard library slog package with toolkit-wide
// defaults and conventions for consistent logging across all components. It
// supports environment-based log level configuration, module/version context
// injection, and automatic source location tracking for debug logs.
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: Detailed diagnostic information with source location
//   - INFO: General informational messages (default)
//   - WARN/WARNING: Warning messages for potentially problematic situations
//   - ERROR: Error messages for failures requiring attention
//
// # Usage
//
// Setting the default logger (recommended):
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("dsgekit", "v1.0.0")
//
//	    slog.Info("solving steady state", "model", "bond_labor")
//	    slog.Debug("iteration state", "diff", maxDiff)
//	    slog.Error("solve failed", "error", err)
//	}
//
// Setting explicit log level:
//
//	logging.SetDefaultStructuredLoggerWithLevel("cli", "v1.0.0", "warn")
//
// # Environment Configuration
//
// The LOG_LEVEL environment variable controls logging verbosity when no
// explicit level is provided. If LOG_LEVEL is not set, defaults to INFO.
//
// # Output Format
//
// All logs are written to stderr in JSON format with module and version
// attributes attached to every record. Debug level enables source location.
package logging
