// Package logging assembles the structured slog loggers used across
// jobindex.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes the component field helper so every subsystem tags
// its lines the same way. A no-op logger is available for tests and wiring
// code that cannot fail.
package logging
