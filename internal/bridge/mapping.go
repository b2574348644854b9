package bridge

import (
	"github.com/nerrad567/vacbridge/internal/cloud"
	"github.com/nerrad567/vacbridge/internal/cluster"
)

// Translation between the vendor's status vocabulary and the cluster
// model. The vendor reports free-form strings and small integer codes;
// the framework side expects the discrete codes defined in the cluster
// package.

// Run mode identifiers for the RvcRunMode cluster.
const (
	RunModeIdle     uint8 = 0
	RunModeCleaning uint8 = 1
)

// Clean mode identifiers for the RvcCleanMode cluster.
const (
	CleanModeVacuum    uint8 = 0
	CleanModeMop       uint8 = 1
	CleanModeVacuumMop uint8 = 2
)

// Battery charge state codes for the PowerSource cluster.
const (
	ChargeStateUnknown      uint8 = 0
	ChargeStateCharging     uint8 = 1
	ChargeStateAtFullCharge uint8 = 2
	ChargeStateNotCharging  uint8 = 3
)

// Battery charge level codes for the PowerSource cluster.
const (
	ChargeLevelOK       uint8 = 0
	ChargeLevelWarning  uint8 = 1
	ChargeLevelCritical uint8 = 2
)

// Battery level thresholds for the charge level code.
const (
	chargeLevelWarningBelow  = 20
	chargeLevelCriticalBelow = 10
	fullChargeLevel          = 100
)

// OperationalStateCode maps a vendor activity state onto the
// RvcOperationalState state code. Unrecognised states map to Stopped;
// the vendor occasionally grows new states and an unknown one is closer
// to "not running" than to any specific code.
func OperationalStateCode(state string) uint8 {
	switch state {
	case cloud.StateIdle:
		return cluster.OpStateStopped
	case cloud.StateDocked:
		return cluster.OpStateDocked
	case cloud.StateCharging:
		return cluster.OpStateCharging
	case cloud.StateCleaning:
		return cluster.OpStateRunning
	case cloud.StatePaused:
		return cluster.OpStatePaused
	case cloud.StateReturning:
		return cluster.OpStateSeekingCharger
	case cloud.StateError:
		return cluster.OpStateError
	default:
		return cluster.OpStateStopped
	}
}

// RunModeCode maps a status document onto the RvcRunMode current mode.
func RunModeCode(st cloud.Status) uint8 {
	if st.Active() {
		return RunModeCleaning
	}
	return RunModeIdle
}

// CleanModeCode maps the vendor clean mode onto the RvcCleanMode current
// mode. Unknown modes map to plain vacuuming.
func CleanModeCode(mode string) uint8 {
	switch mode {
	case cloud.CleanModeVacuum:
		return CleanModeVacuum
	case cloud.CleanModeMop:
		return CleanModeMop
	case cloud.CleanModeVacuumMop:
		return CleanModeVacuumMop
	default:
		return CleanModeVacuum
	}
}

// ChargeStateCode maps the battery section onto the PowerSource charge
// state code.
func ChargeStateCode(b cloud.Battery) uint8 {
	switch {
	case b.Charging:
		return ChargeStateCharging
	case b.Level >= fullChargeLevel:
		return ChargeStateAtFullCharge
	default:
		return ChargeStateNotCharging
	}
}

// ChargeLevelCode maps the battery percentage onto the coarse charge
// level code.
func ChargeLevelCode(level int) uint8 {
	switch {
	case level < chargeLevelCriticalBelow:
		return ChargeLevelCritical
	case level < chargeLevelWarningBelow:
		return ChargeLevelWarning
	default:
		return ChargeLevelOK
	}
}

// vendorErrorIDs maps the vendor's numeric fault codes onto cluster
// error identifiers. Codes outside the table map to the generic
// "unable to complete operation".
var vendorErrorIDs = map[int]uint8{
	1: cluster.ErrorStateStuck,
	2: cluster.ErrorStateDustBinMissing,
	3: cluster.ErrorStateDustBinFull,
	4: cluster.ErrorStateWaterTankEmpty,
	5: cluster.ErrorStateWaterTankMissing,
	6: cluster.ErrorStateWaterTankLidOpen,
	7: cluster.ErrorStateMopCleaningPadMissing,
	8: cluster.ErrorStateFailedToFindChargingDock,
	9: cluster.ErrorStateUnableToStartOrResume,
}

// errorLabels gives the canonical short label for each cluster error id.
var errorLabels = map[uint8]string{
	cluster.ErrorStateUnableToStartOrResume:    "UnableToStartOrResume",
	cluster.ErrorStateUnableToCompleteOp:       "UnableToCompleteOperation",
	cluster.ErrorStateCommandInvalidInState:    "CommandInvalidInState",
	cluster.ErrorStateFailedToFindChargingDock: "FailedToFindChargingDock",
	cluster.ErrorStateStuck:                    "Stuck",
	cluster.ErrorStateDustBinMissing:           "DustBinMissing",
	cluster.ErrorStateDustBinFull:              "DustBinFull",
	cluster.ErrorStateWaterTankEmpty:           "WaterTankEmpty",
	cluster.ErrorStateWaterTankMissing:         "WaterTankMissing",
	cluster.ErrorStateWaterTankLidOpen:         "WaterTankLidOpen",
	cluster.ErrorStateMopCleaningPadMissing:    "MopCleaningPadMissing",
}

// ErrorStateFromVendor translates the vendor fault report into a cluster
// error descriptor. The vendor message is preserved verbatim in Details
// so two reports differing only in message text count as distinct
// conditions.
func ErrorStateFromVendor(e cloud.DeviceError) cluster.ErrorState {
	if !e.IsError() {
		return cluster.NoError
	}

	id, ok := vendorErrorIDs[e.Code]
	if !ok {
		id = cluster.ErrorStateUnableToCompleteOp
	}

	return cluster.ErrorState{
		ID:      id,
		Label:   errorLabels[id],
		Details: e.Message,
	}
}

// ErrorLabel returns the canonical label for a cluster error id, or ""
// for unknown ids.
func ErrorLabel(id uint8) string {
	return errorLabels[id]
}
