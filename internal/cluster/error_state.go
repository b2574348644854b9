package cluster

// Operational error identifiers for the RvcOperationalState cluster.
// ErrorStateNoError is the designated "no fault condition" value.
const (
	ErrorStateNoError                  uint8 = 0x00
	ErrorStateUnableToStartOrResume    uint8 = 0x01
	ErrorStateUnableToCompleteOp       uint8 = 0x02
	ErrorStateCommandInvalidInState    uint8 = 0x03
	ErrorStateFailedToFindChargingDock uint8 = 0x40
	ErrorStateStuck                    uint8 = 0x41
	ErrorStateDustBinMissing           uint8 = 0x42
	ErrorStateDustBinFull              uint8 = 0x43
	ErrorStateWaterTankEmpty           uint8 = 0x44
	ErrorStateWaterTankMissing         uint8 = 0x45
	ErrorStateWaterTankLidOpen         uint8 = 0x46
	ErrorStateMopCleaningPadMissing    uint8 = 0x47
)

// ErrorState describes one operational fault condition. Label and Details
// are optional vendor-supplied text; ID alone decides whether a fault is
// present. Equality is structural: two descriptors are the same condition
// only when all three fields match.
type ErrorState struct {
	ID      uint8  `json:"errorStateID"`
	Label   string `json:"errorStateLabel,omitempty"`
	Details string `json:"errorStateDetails,omitempty"`
}

// NoError is the descriptor meaning "no fault condition".
var NoError = ErrorState{ID: ErrorStateNoError}

// IsError reports whether the descriptor represents an actual fault.
func (e ErrorState) IsError() bool {
	return e.ID != ErrorStateNoError
}

// Equal reports full structural equality (identifier, label and detail).
func (e ErrorState) Equal(other ErrorState) bool {
	return e.ID == other.ID && e.Label == other.Label && e.Details == other.Details
}

// Operational state codes for the RvcOperationalState cluster.
const (
	OpStateStopped          uint8 = 0x00
	OpStateRunning          uint8 = 0x01
	OpStatePaused           uint8 = 0x02
	OpStateError            uint8 = 0x03
	OpStateSeekingCharger   uint8 = 0x40
	OpStateCharging         uint8 = 0x41
	OpStateDocked           uint8 = 0x42
	OpStateEmptyingDustBin  uint8 = 0x43
	OpStateCleaningMop      uint8 = 0x44
	OpStateFillingWaterTank uint8 = 0x45
)
