// Package logging wraps log/slog with the project's handler setup, shared
// attribute helpers, and standardized field keys so every component logs
// recording IDs, steps, and correlation IDs the same way.
package logging
