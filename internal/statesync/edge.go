package statesync

import (
	"time"

	"github.com/nerrad567/vacbridge/internal/cluster"
)

// Snapshot is one point-in-time composite reading of a device's
// operational state. Snapshots are self-contained; the detector only
// compares successive snapshots of the same device.
type Snapshot struct {
	// OperationalState is the current state code (cluster.OpState*).
	OperationalState uint8

	// Active reports whether the device is currently performing a run.
	Active bool

	// Error is the current fault descriptor; cluster.NoError when healthy.
	Error cluster.ErrorState
}

// Event is a discrete occurrence derived from a detected edge, addressed
// to one cluster in the target model.
type Event struct {
	Cluster cluster.ID
	Name    string
	Payload any
}

// CompletionPayload is carried by the operationCompletion event emitted
// when an active period ends.
type CompletionPayload struct {
	// CompletionErrorCode is the error identifier associated with the run
	// that just ended, taken from the snapshot that ended it.
	CompletionErrorCode uint8 `json:"completionErrorCode"`

	// TotalOperationalTime is the elapsed run time in whole seconds.
	TotalOperationalTime uint32 `json:"totalOperationalTime"`
}

// ErrorPayload is carried by the operationalError event emitted when a new
// fault condition appears.
type ErrorPayload struct {
	ErrorState cluster.ErrorState `json:"errorState"`
}

// EdgeDetector tracks two independent conditions across successive
// snapshots, "is currently active" and "current error identity", and
// emits an event exactly once per transition.
//
// Initial state is inactive with no error. A detector constructed while a
// run is already in progress has no recorded start instant; the first
// completion it sees then reports a duration measured against the zero
// time, which is unrealistically large. That cold-start artifact is left
// visible rather than guessed away: suppressing it could also hide a
// genuine rapid start/stop cycle.
type EdgeDetector struct {
	active    bool
	startedAt time.Time
	lastError cluster.ErrorState

	now func() time.Time
}

// NewEdgeDetector creates a detector in the initial (inactive, no error)
// state.
func NewEdgeDetector() *EdgeDetector {
	return &EdgeDetector{
		lastError: cluster.NoError,
		now:       time.Now,
	}
}

// Process runs both transition checks against the snapshot and returns the
// events to emit, in order. A single call yields zero, one, or two events;
// when both edges fire at once the completion event always precedes the
// error event: the finished run is closed out before the new condition is
// reported.
//
// Feeding the same snapshot repeatedly emits nothing after the first call
// and leaves the detector state untouched.
func (d *EdgeDetector) Process(snap Snapshot) []Event {
	var events []Event

	if ev, ok := d.checkActivity(snap); ok {
		events = append(events, ev)
	}
	if ev, ok := d.checkError(snap); ok {
		events = append(events, ev)
	}

	return events
}

// checkActivity handles the activity edge. Activation only records the
// start instant; the externally visible event is the completion emitted
// when the run ends.
func (d *EdgeDetector) checkActivity(snap Snapshot) (Event, bool) {
	if snap.Active == d.active {
		return Event{}, false
	}

	if snap.Active {
		d.startedAt = d.now()
		d.active = true
		return Event{}, false
	}

	elapsed := d.now().Sub(d.startedAt).Round(time.Second)
	d.active = false

	return Event{
		Cluster: cluster.RVCOperationalState,
		Name:    cluster.EventOperationCompletion,
		Payload: CompletionPayload{
			CompletionErrorCode:  snap.Error.ID,
			TotalOperationalTime: uint32(elapsed / time.Second), //nolint:gosec // run durations fit uint32
		},
	}, true
}

// checkError handles the error edge. The stored descriptor is updated on
// every change, including clearance, so a later re-occurrence of the same
// fault is detected as a fresh edge. Clearance itself emits nothing.
func (d *EdgeDetector) checkError(snap Snapshot) (Event, bool) {
	if snap.Error.Equal(d.lastError) {
		return Event{}, false
	}

	d.lastError = snap.Error

	if !snap.Error.IsError() {
		return Event{}, false
	}

	return Event{
		Cluster: cluster.RVCOperationalState,
		Name:    cluster.EventOperationalError,
		Payload: ErrorPayload{ErrorState: snap.Error},
	}, true
}

// Active reports whether the detector currently considers the device to be
// in an active period.
func (d *EdgeDetector) Active() bool {
	return d.active
}
