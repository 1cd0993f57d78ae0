// Package store manages durable per-recording metadata backed by SQLite.
//
// The recording record is the single source of truth for processing state:
// status, step progress, error history, artifact paths, and sync state all
// live here. The append-only sync log and captured frames are kept in
// sibling tables keyed by recording ID.
//
// Mutations flow through Mutate, which serializes read-modify-write cycles
// per recording ID so the single-in-flight-pipeline assumption holds even
// when metadata writers (sync client, translation wrapper, screenshot
// capture) run concurrently with a pipeline run.
package store
