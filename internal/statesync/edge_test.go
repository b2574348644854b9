package statesync

import (
	"testing"
	"time"

	"github.com/nerrad567/vacbridge/internal/cluster"
)

// fakeClock steps time manually for deterministic duration checks.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestDetector(clock *fakeClock) *EdgeDetector {
	d := NewEdgeDetector()
	d.now = clock.now
	return d
}

func TestActivationThenCompletion(t *testing.T) {
	clock := newFakeClock()
	d := newTestDetector(clock)

	// Idle baseline: nothing happens.
	events := d.Process(Snapshot{OperationalState: cluster.OpStateDocked, Active: false, Error: cluster.NoError})
	if len(events) != 0 {
		t.Fatalf("idle snapshot emitted %d events", len(events))
	}

	// Run starts: no event, start instant recorded.
	events = d.Process(Snapshot{OperationalState: cluster.OpStateRunning, Active: true, Error: cluster.NoError})
	if len(events) != 0 {
		t.Fatalf("activation emitted %d events, want 0", len(events))
	}
	if !d.Active() {
		t.Fatal("detector not active after activation")
	}

	clock.advance(125 * time.Second)

	// Run ends: exactly one completion with the elapsed whole seconds.
	events = d.Process(Snapshot{OperationalState: cluster.OpStateDocked, Active: false, Error: cluster.NoError})
	if len(events) != 1 {
		t.Fatalf("completion emitted %d events, want 1", len(events))
	}

	ev := events[0]
	if ev.Cluster != cluster.RVCOperationalState || ev.Name != cluster.EventOperationCompletion {
		t.Fatalf("unexpected event %s/%s", ev.Cluster, ev.Name)
	}
	payload, ok := ev.Payload.(CompletionPayload)
	if !ok {
		t.Fatalf("payload type %T", ev.Payload)
	}
	if payload.TotalOperationalTime != 125 {
		t.Errorf("TotalOperationalTime = %d, want 125", payload.TotalOperationalTime)
	}
	if payload.CompletionErrorCode != cluster.ErrorStateNoError {
		t.Errorf("CompletionErrorCode = %#x, want no-error", payload.CompletionErrorCode)
	}
}

func TestErrorOnsetClearanceAndRecurrence(t *testing.T) {
	clock := newFakeClock()
	d := newTestDetector(clock)

	stuck := cluster.ErrorState{ID: cluster.ErrorStateStuck, Label: "Stuck", Details: "wedged under sofa"}

	active := func(e cluster.ErrorState) Snapshot {
		return Snapshot{OperationalState: cluster.OpStateRunning, Active: true, Error: e}
	}

	// Activation (no error yet).
	if events := d.Process(active(cluster.NoError)); len(events) != 0 {
		t.Fatalf("activation emitted %d events", len(events))
	}

	// Error onset: one operational-error event.
	events := d.Process(active(stuck))
	if len(events) != 1 {
		t.Fatalf("onset emitted %d events, want 1", len(events))
	}
	if events[0].Name != cluster.EventOperationalError {
		t.Fatalf("onset emitted %s", events[0].Name)
	}
	payload := events[0].Payload.(ErrorPayload)
	if !payload.ErrorState.Equal(stuck) {
		t.Errorf("event payload %+v, want %+v", payload.ErrorState, stuck)
	}

	// Same error again: silence.
	if events := d.Process(active(stuck)); len(events) != 0 {
		t.Fatalf("repeated error emitted %d events", len(events))
	}

	// Clearance: no event, but state must update.
	if events := d.Process(active(cluster.NoError)); len(events) != 0 {
		t.Fatalf("clearance emitted %d events", len(events))
	}

	// Recurrence of the identical error is a fresh edge.
	events = d.Process(active(stuck))
	if len(events) != 1 || events[0].Name != cluster.EventOperationalError {
		t.Fatalf("recurrence emitted %v, want one operational-error event", events)
	}
}

func TestCombinedEdgeOrdering(t *testing.T) {
	clock := newFakeClock()
	d := newTestDetector(clock)

	d.Process(Snapshot{OperationalState: cluster.OpStateRunning, Active: true, Error: cluster.NoError})
	clock.advance(90 * time.Second)

	// One snapshot ends the run and reports a new fault: completion first,
	// then the error report.
	binFull := cluster.ErrorState{ID: cluster.ErrorStateDustBinFull, Label: "DustBinFull"}
	events := d.Process(Snapshot{OperationalState: cluster.OpStateError, Active: false, Error: binFull})

	if len(events) != 2 {
		t.Fatalf("combined edge emitted %d events, want 2", len(events))
	}
	if events[0].Name != cluster.EventOperationCompletion {
		t.Errorf("first event = %s, want completion", events[0].Name)
	}
	if events[1].Name != cluster.EventOperationalError {
		t.Errorf("second event = %s, want operational error", events[1].Name)
	}

	// The completion carries the error of the run that just ended.
	completion := events[0].Payload.(CompletionPayload)
	if completion.CompletionErrorCode != cluster.ErrorStateDustBinFull {
		t.Errorf("CompletionErrorCode = %#x, want dust bin full", completion.CompletionErrorCode)
	}
	if completion.TotalOperationalTime != 90 {
		t.Errorf("TotalOperationalTime = %d, want 90", completion.TotalOperationalTime)
	}
}

func TestProcessIsIdempotentForUnchangedSnapshots(t *testing.T) {
	clock := newFakeClock()
	d := newTestDetector(clock)

	snap := Snapshot{OperationalState: cluster.OpStateRunning, Active: true, Error: cluster.NoError}
	d.Process(snap)

	for i := 0; i < 5; i++ {
		clock.advance(time.Second)
		if events := d.Process(snap); len(events) != 0 {
			t.Fatalf("repeat %d emitted %d events", i, len(events))
		}
	}

	// The start instant must not have been touched by the repeats.
	clock.advance(4 * time.Second) // 5 + 4 = 9 seconds after activation
	events := d.Process(Snapshot{OperationalState: cluster.OpStateDocked, Active: false, Error: cluster.NoError})
	if len(events) != 1 {
		t.Fatalf("completion emitted %d events", len(events))
	}
	if got := events[0].Payload.(CompletionPayload).TotalOperationalTime; got != 9 {
		t.Errorf("TotalOperationalTime = %d, want 9", got)
	}
}

func TestErrorEdgeDistinguishesLabelAndDetails(t *testing.T) {
	clock := newFakeClock()
	d := newTestDetector(clock)

	base := cluster.ErrorState{ID: cluster.ErrorStateStuck, Label: "Stuck"}
	detailed := cluster.ErrorState{ID: cluster.ErrorStateStuck, Label: "Stuck", Details: "left wheel"}

	d.Process(Snapshot{Active: true, Error: base})

	// Same identifier but new details is a new edge by structural equality.
	events := d.Process(Snapshot{Active: true, Error: detailed})
	if len(events) != 1 {
		t.Fatalf("detail change emitted %d events, want 1", len(events))
	}
}
