// Package logging assembles the structured slog loggers shared by the cache
// engine and the CLI.
//
// It centralizes level and format plumbing and exposes small attribute
// helpers so components emit data with a consistent shape. The package also
// provides a no-op logger for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so new components
// tag their output the same way as the rest of the system.
package logging
