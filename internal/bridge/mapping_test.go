package bridge

import (
	"testing"

	"github.com/nerrad567/vacbridge/internal/cloud"
	"github.com/nerrad567/vacbridge/internal/cluster"
)

func TestOperationalStateCode(t *testing.T) {
	tests := []struct {
		state string
		want  uint8
	}{
		{cloud.StateIdle, cluster.OpStateStopped},
		{cloud.StateDocked, cluster.OpStateDocked},
		{cloud.StateCharging, cluster.OpStateCharging},
		{cloud.StateCleaning, cluster.OpStateRunning},
		{cloud.StatePaused, cluster.OpStatePaused},
		{cloud.StateReturning, cluster.OpStateSeekingCharger},
		{cloud.StateError, cluster.OpStateError},
		{"firmware_update", cluster.OpStateStopped},
		{"", cluster.OpStateStopped},
	}

	for _, tt := range tests {
		t.Run(tt.state, func(t *testing.T) {
			if got := OperationalStateCode(tt.state); got != tt.want {
				t.Errorf("OperationalStateCode(%q) = 0x%02X, want 0x%02X", tt.state, got, tt.want)
			}
		})
	}
}

func TestRunModeCode(t *testing.T) {
	active := cloud.Status{State: cloud.StateCleaning}
	if got := RunModeCode(active); got != RunModeCleaning {
		t.Errorf("RunModeCode(cleaning) = %d, want %d", got, RunModeCleaning)
	}

	paused := cloud.Status{State: cloud.StatePaused}
	if got := RunModeCode(paused); got != RunModeCleaning {
		t.Errorf("RunModeCode(paused) = %d, want %d", got, RunModeCleaning)
	}

	docked := cloud.Status{State: cloud.StateDocked}
	if got := RunModeCode(docked); got != RunModeIdle {
		t.Errorf("RunModeCode(docked) = %d, want %d", got, RunModeIdle)
	}
}

func TestCleanModeCode(t *testing.T) {
	tests := []struct {
		mode string
		want uint8
	}{
		{cloud.CleanModeVacuum, CleanModeVacuum},
		{cloud.CleanModeMop, CleanModeMop},
		{cloud.CleanModeVacuumMop, CleanModeVacuumMop},
		{"turbo", CleanModeVacuum},
	}

	for _, tt := range tests {
		if got := CleanModeCode(tt.mode); got != tt.want {
			t.Errorf("CleanModeCode(%q) = %d, want %d", tt.mode, got, tt.want)
		}
	}
}

func TestChargeStateCode(t *testing.T) {
	tests := []struct {
		name    string
		battery cloud.Battery
		want    uint8
	}{
		{"charging", cloud.Battery{Level: 50, Charging: true}, ChargeStateCharging},
		{"full", cloud.Battery{Level: 100, Charging: false}, ChargeStateAtFullCharge},
		{"not charging", cloud.Battery{Level: 80, Charging: false}, ChargeStateNotCharging},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ChargeStateCode(tt.battery); got != tt.want {
				t.Errorf("ChargeStateCode(%+v) = %d, want %d", tt.battery, got, tt.want)
			}
		})
	}
}

func TestChargeLevelCode(t *testing.T) {
	tests := []struct {
		level int
		want  uint8
	}{
		{100, ChargeLevelOK},
		{20, ChargeLevelOK},
		{19, ChargeLevelWarning},
		{10, ChargeLevelWarning},
		{9, ChargeLevelCritical},
		{0, ChargeLevelCritical},
	}

	for _, tt := range tests {
		if got := ChargeLevelCode(tt.level); got != tt.want {
			t.Errorf("ChargeLevelCode(%d) = %d, want %d", tt.level, got, tt.want)
		}
	}
}

func TestErrorStateFromVendor(t *testing.T) {
	noErr := ErrorStateFromVendor(cloud.DeviceError{})
	if !noErr.Equal(cluster.NoError) {
		t.Errorf("ErrorStateFromVendor(no fault) = %+v, want NoError", noErr)
	}

	stuck := ErrorStateFromVendor(cloud.DeviceError{Code: 1, Message: "wheel jammed near sofa"})
	if stuck.ID != cluster.ErrorStateStuck {
		t.Errorf("ID = 0x%02X, want 0x%02X", stuck.ID, cluster.ErrorStateStuck)
	}
	if stuck.Label != "Stuck" {
		t.Errorf("Label = %q, want %q", stuck.Label, "Stuck")
	}
	if stuck.Details != "wheel jammed near sofa" {
		t.Errorf("Details = %q, want vendor message", stuck.Details)
	}

	unknown := ErrorStateFromVendor(cloud.DeviceError{Code: 999, Message: "mystery"})
	if unknown.ID != cluster.ErrorStateUnableToCompleteOp {
		t.Errorf("unknown vendor code mapped to 0x%02X, want 0x%02X",
			unknown.ID, cluster.ErrorStateUnableToCompleteOp)
	}

	// Same code, different message counts as a distinct condition.
	other := ErrorStateFromVendor(cloud.DeviceError{Code: 1, Message: "wheel jammed near table"})
	if stuck.Equal(other) {
		t.Error("descriptors with different details should not be equal")
	}
}
