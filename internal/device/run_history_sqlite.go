package device

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

const (
	defaultRunLimit = 50
	maxRunLimit     = 200
)

// SQLiteRunHistoryRepository implements RunHistoryRepository using SQLite.
type SQLiteRunHistoryRepository struct {
	db *sql.DB
}

// NewSQLiteRunHistoryRepository creates a new SQLite run history repository.
func NewSQLiteRunHistoryRepository(db *sql.DB) *SQLiteRunHistoryRepository {
	return &SQLiteRunHistoryRepository{db: db}
}

// RecordRun inserts a new run record.
func (r *SQLiteRunHistoryRepository) RecordRun(ctx context.Context, record RunRecord) error {
	if record.DeviceID == "" {
		return fmt.Errorf("device id is required")
	}
	if record.EndedAt.IsZero() {
		record.EndedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO run_history (device_id, duration_seconds, error_code, error_label, ended_at)
		 VALUES (?, ?, ?, ?, ?)`,
		record.DeviceID,
		record.DurationSeconds,
		record.ErrorCode,
		record.ErrorLabel,
		record.EndedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting run record: %w", err)
	}

	return nil
}

// GetRuns returns recent runs for a device, ordered newest first.
// limit defaults to 50 and is clamped to 200.
func (r *SQLiteRunHistoryRepository) GetRuns(ctx context.Context, deviceID string, limit int) ([]RunRecord, error) {
	if deviceID == "" {
		return nil, fmt.Errorf("device id is required")
	}
	if limit <= 0 {
		limit = defaultRunLimit
	}
	if limit > maxRunLimit {
		limit = maxRunLimit
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, device_id, duration_seconds, error_code, error_label, ended_at
		 FROM run_history
		 WHERE device_id = ?
		 ORDER BY ended_at DESC
		 LIMIT ?`,
		deviceID,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying run history: %w", err)
	}
	defer rows.Close()

	records := make([]RunRecord, 0, limit)
	for rows.Next() {
		var record RunRecord
		var endedAt string

		if err := rows.Scan(&record.ID, &record.DeviceID, &record.DurationSeconds,
			&record.ErrorCode, &record.ErrorLabel, &endedAt); err != nil {
			return nil, fmt.Errorf("scanning run record: %w", err)
		}

		record.EndedAt, err = parseTimestamp(endedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing ended_at: %w", err)
		}

		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating run history: %w", err)
	}

	return records, nil
}

// PruneRuns deletes run records older than the given duration.
// Returns the number of rows deleted.
func (r *SQLiteRunHistoryRepository) PruneRuns(ctx context.Context, olderThan time.Duration) (int64, error) {
	if olderThan <= 0 {
		return 0, fmt.Errorf("olderThan must be positive")
	}

	cutoff := time.Now().UTC().Add(-olderThan).Format(time.RFC3339)
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM run_history WHERE ended_at < ?",
		cutoff,
	)
	if err != nil {
		return 0, fmt.Errorf("deleting run history: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("checking rows affected: %w", err)
	}

	return rowsAffected, nil
}
