package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// AppendSyncLog records one delivery outcome for a recording. Entries are
// append-only; the history is never rewritten.
func (s *Store) AppendSyncLog(ctx context.Context, id string, entry SyncLogEntry) error {
	at := entry.CreatedAt
	if at.IsZero() {
		at = time.Now().UTC()
	}
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO sync_log (recording_id, status, message, error, solar_core_id, attempts, created_at)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id,
		entry.Status,
		nullableString(entry.Message),
		nullableString(entry.Error),
		nullableString(entry.SolarCoreID),
		entry.Attempts,
		at.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("append sync log: %w", err)
	}
	return nil
}

// SyncLog returns delivery history for a recording, oldest first.
func (s *Store) SyncLog(ctx context.Context, id string) ([]SyncLogEntry, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT status, message, error, solar_core_id, attempts, created_at
         FROM sync_log WHERE recording_id = ? ORDER BY id ASC`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("load sync log: %w", err)
	}
	defer rows.Close()

	var entries []SyncLogEntry
	for rows.Next() {
		var (
			status     string
			message    sql.NullString
			errMsg     sql.NullString
			solarID    sql.NullString
			attempts   sql.NullInt64
			createdRaw sql.NullString
		)
		if err := rows.Scan(&status, &message, &errMsg, &solarID, &attempts, &createdRaw); err != nil {
			return nil, err
		}
		entry := SyncLogEntry{
			Status:      SyncStatus(status),
			Message:     message.String,
			Error:       errMsg.String,
			SolarCoreID: solarID.String,
			Attempts:    int(attempts.Int64),
		}
		if at, err := parseTimeString(createdRaw.String); err == nil {
			entry.CreatedAt = at
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// AddScreenshot registers a captured frame for a recording.
func (s *Store) AddScreenshot(ctx context.Context, id string, shot Screenshot) error {
	at := shot.CapturedAt
	if at.IsZero() {
		at = time.Now().UTC()
	}
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO screenshots (recording_id, filename, ts_offset, path, captured_at, size_bytes)
         VALUES (?, ?, ?, ?, ?, ?)`,
		id,
		shot.Filename,
		shot.Timestamp,
		shot.Path,
		at.UTC().Format(time.RFC3339Nano),
		shot.SizeBytes,
	)
	if err != nil {
		return fmt.Errorf("add screenshot: %w", err)
	}
	return nil
}

// Screenshots returns captured frames for a recording ordered by offset.
func (s *Store) Screenshots(ctx context.Context, id string) ([]Screenshot, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT filename, ts_offset, path, captured_at, size_bytes
         FROM screenshots WHERE recording_id = ? ORDER BY ts_offset ASC`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("load screenshots: %w", err)
	}
	defer rows.Close()

	var shots []Screenshot
	for rows.Next() {
		var (
			filename   string
			tsOffset   float64
			path       sql.NullString
			capturedAt sql.NullString
			sizeBytes  sql.NullInt64
		)
		if err := rows.Scan(&filename, &tsOffset, &path, &capturedAt, &sizeBytes); err != nil {
			return nil, err
		}
		shot := Screenshot{
			Filename:  filename,
			Timestamp: tsOffset,
			Path:      path.String,
			SizeBytes: sizeBytes.Int64,
		}
		if at, err := parseTimeString(capturedAt.String); err == nil {
			shot.CapturedAt = at
		}
		shots = append(shots, shot)
	}
	return shots, rows.Err()
}
