// Package logging builds the structured slog logger used across confedit.
// Output is JSON by default, or logfmt-style text for local editing sessions.
package logging
