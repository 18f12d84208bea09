// Package logging provides structured logging for the Kredit CLI.
//
// This package wraps zap with convenience functions for the logging patterns
// used across the gateway and wizard packages. Logging is silent by default
// so that interactive wizard output stays clean; set KREDIT_LOG_LEVEL to
// enable it.
//
// # Log Levels
//
//   - Debug: request/response payload sizes, polling ticks
//   - Info: backend calls, step transitions, application status changes
//   - Warn: masked failures under the optimistic advancement policy
//   - Error: normalized gateway errors surfaced to the user
//
// # Structured Logging
//
// All log functions use structured fields for queryability:
//
//	logging.Info("application created",
//	    zap.String("application_id", id),
//	    zap.String("status", string(status)),
//	)
//
// # Specialized Logging
//
// Backend call logging:
//
//	logging.LogAPIRequest(method, path, requestID)
//	logging.LogAPIResponse(path, requestID, statusCode, elapsed)
//
// Wizard step logging:
//
//	logging.LogStepTransition(from, to)
//
// Access tokens and OTP codes are never logged, at any level.
//
// # Configuration
//
// Initialize at startup:
//
//	if err := logging.InitializeFromEnv(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Thread Safety
//
// All logging functions are safe for concurrent use.
package logging
