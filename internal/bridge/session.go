package bridge

import (
	"context"

	"github.com/nerrad567/vacbridge/internal/cloud"
	"github.com/nerrad567/vacbridge/internal/cluster"
	"github.com/nerrad567/vacbridge/internal/statesync"
)

// Session is the per-vacuum translation unit. It owns the device's
// fingerprint cache and edge detector, both scoped to the session's
// lifetime: a new session starts with an empty cache and a detector in
// the initial state.
//
// Sessions are driven serially: the poller delivers one status document
// at a time per device, so HandleStatus never runs concurrently for the
// same session.
type Session struct {
	deviceID string
	cache    *statesync.Cache
	edges    *statesync.EdgeDetector
	pub      *FrameworkPublisher
	logger   Logger
}

// NewSession creates a session for one vacuum.
func NewSession(deviceID string, pub *FrameworkPublisher, logger Logger) *Session {
	if logger == nil {
		logger = noopLogger{}
	}
	return &Session{
		deviceID: deviceID,
		cache:    statesync.NewCache(deviceWriter{pub: pub, deviceID: deviceID}),
		edges:    statesync.NewEdgeDetector(),
		pub:      pub,
		logger:   logger,
	}
}

// DeviceID returns the vendor cloud identifier this session serves.
func (s *Session) DeviceID() string {
	return s.deviceID
}

// HandleStatus translates one polled status document into attribute
// writes and edge events.
//
// Attribute writes go through the fingerprint cache, so a document in
// which nothing changed produces no publications at all. Write failures
// are logged and the remaining attributes still processed: a transient
// publish error on one slot should not starve the others, and the
// cache's optimistic commit means the slot recovers on the next value
// change.
//
// The returned events have already been published; they are returned so
// the caller can record run history and metrics.
func (s *Session) HandleStatus(ctx context.Context, st cloud.Status) []statesync.Event {
	opState := OperationalStateCode(st.State)
	errState := ErrorStateFromVendor(st.Error)

	batPercent := uint8(max(0, min(st.Battery.Level, 100))) //nolint:gosec // clamped to 0-100
	s.writeAttr(ctx, cluster.PowerSource, cluster.AttrBatPercentRemaining, batPercent)
	s.writeAttr(ctx, cluster.PowerSource, cluster.AttrBatChargeState, ChargeStateCode(st.Battery))
	s.writeAttr(ctx, cluster.PowerSource, cluster.AttrBatChargeLevel, ChargeLevelCode(st.Battery.Level))

	s.writeAttr(ctx, cluster.RVCRunMode, cluster.AttrCurrentMode, RunModeCode(st))
	s.writeAttr(ctx, cluster.RVCCleanMode, cluster.AttrCurrentMode, CleanModeCode(st.CleanMode))

	s.writeAttr(ctx, cluster.RVCOperationalState, cluster.AttrOperationalState, opState)
	s.writeAttr(ctx, cluster.RVCOperationalState, cluster.AttrOperationalError, errState)

	s.writeAttr(ctx, cluster.ServiceArea, cluster.AttrSelectedAreas, st.SelectedRooms)
	s.writeAttr(ctx, cluster.ServiceArea, cluster.AttrCurrentArea, st.CurrentRoom)

	events := s.edges.Process(statesync.Snapshot{
		OperationalState: opState,
		Active:           st.Active(),
		Error:            errState,
	})

	for _, ev := range events {
		if err := s.pub.EmitEvent(ctx, s.deviceID, ev); err != nil {
			s.logger.Error("event publish failed",
				"device_id", s.deviceID,
				"event", ev.Name,
				"error", err,
			)
		}
	}

	return events
}

// Active reports whether the session's detector currently considers the
// vacuum to be in a run.
func (s *Session) Active() bool {
	return s.edges.Active()
}

func (s *Session) writeAttr(ctx context.Context, id cluster.ID, attribute string, value any) {
	if _, err := s.cache.Write(ctx, id, attribute, value); err != nil {
		s.logger.Warn("attribute write failed",
			"device_id", s.deviceID,
			"cluster", id.String(),
			"attribute", attribute,
			"error", err,
		)
	}
}
