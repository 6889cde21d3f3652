// Package logging constructs the slog loggers used across caption.
//
// Handlers come in two formats: "console" for human-readable output during
// interactive use (colorized only when writing to a terminal) and "json" for
// machine-ingestible daemon logs. Attribute helpers keep field names
// consistent between the HTTP layer and the orchestrators.
package logging
