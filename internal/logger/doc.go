// Package logger wraps zap with a global sugared logger and context helpers.
//
// Commands attach a named logger to their context (WithName, WithKV) and the
// rest of the code logs through that context. Output goes to stderr so that
// stdout stays reserved for the human-readable report.
package logger
