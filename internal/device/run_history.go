package device

import (
	"context"
	"time"
)

// RunRecord represents one completed cleaning run.
//
// Records are written when a run-completion event fires, so the duration
// is the detector's measured elapsed time, not a vendor-reported figure.
type RunRecord struct {
	// ID is the auto-incremented primary key for the history row.
	ID int64 `json:"id"`

	// DeviceID is the unique identifier of the vacuum.
	DeviceID string `json:"device_id"`

	// DurationSeconds is the measured run time in whole seconds.
	DurationSeconds uint32 `json:"duration_seconds"`

	// ErrorCode is the operational error identifier the run ended with;
	// zero means the run completed cleanly.
	ErrorCode uint8 `json:"error_code"`

	// ErrorLabel is the human-readable fault name, empty for clean runs.
	ErrorLabel string `json:"error_label"`

	// EndedAt is the timestamp of the completion event (UTC).
	EndedAt time.Time `json:"ended_at"`
}

// RunHistoryRepository stores and retrieves completed cleaning runs.
//
// Implementations must be thread-safe and use UTC timestamps.
type RunHistoryRepository interface {
	// RecordRun records a completed cleaning run.
	RecordRun(ctx context.Context, record RunRecord) error

	// GetRuns returns recent runs for the device, ordered newest first.
	// limit is clamped by the implementation.
	GetRuns(ctx context.Context, deviceID string, limit int) ([]RunRecord, error)
}
