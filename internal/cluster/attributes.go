package cluster

// Attribute names per cluster. These are the slots the fingerprint cache
// keys on; names follow the target model's attribute naming.
const (
	// PowerSource attributes.
	AttrBatPercentRemaining = "batPercentRemaining"
	AttrBatChargeLevel      = "batChargeLevel"
	AttrBatChargeState      = "batChargeState"

	// RvcRunMode / RvcCleanMode attributes.
	AttrCurrentMode = "currentMode"

	// RvcOperationalState attributes.
	AttrOperationalState = "operationalState"
	AttrOperationalError = "operationalError"

	// ServiceArea attributes.
	AttrSelectedAreas = "selectedAreas"
	AttrCurrentArea   = "currentArea"
)

// Event names emitted on detected edges.
const (
	EventOperationCompletion = "operationCompletion"
	EventOperationalError    = "operationalError"
)
