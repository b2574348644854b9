package cloud

// Device describes one robot known to the vendor account.
type Device struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Model    string `json:"model"`
	Firmware string `json:"firmware"`
}

// Device activity states as reported by the vendor.
const (
	StateIdle      = "idle"
	StateDocked    = "docked"
	StateCharging  = "charging"
	StateCleaning  = "cleaning"
	StatePaused    = "paused"
	StateReturning = "returning"
	StateError     = "error"
)

// Clean modes as reported by the vendor.
const (
	CleanModeVacuum    = "vacuum"
	CleanModeMop       = "mop"
	CleanModeVacuumMop = "vacuum_mop"
)

// Status is one full state document for a device, as returned by the
// status endpoint. Every poll returns the whole document regardless of
// what changed.
type Status struct {
	State         string      `json:"state"`
	Battery       Battery     `json:"battery"`
	CleanMode     string      `json:"clean_mode"`
	FanPower      string      `json:"fan_power"`
	SelectedRooms []int       `json:"selected_rooms"`
	CurrentRoom   int         `json:"current_room"`
	Error         DeviceError `json:"error"`
}

// Battery is the battery section of a status document.
type Battery struct {
	// Level is the charge percentage, 0-100.
	Level int `json:"level"`

	// Charging reports whether the device is currently drawing charge.
	Charging bool `json:"charging"`
}

// DeviceError is the vendor's fault report. Code 0 means no fault.
type DeviceError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// IsError reports whether the device is reporting an actual fault.
func (e DeviceError) IsError() bool {
	return e.Code != 0
}

// Active reports whether this status represents an in-progress run.
// Paused runs still count as active: the run has not ended.
func (s Status) Active() bool {
	switch s.State {
	case StateCleaning, StatePaused, StateReturning:
		return true
	default:
		return false
	}
}

// Command names accepted by the command endpoint.
const (
	CommandStart  = "start"
	CommandPause  = "pause"
	CommandHome   = "home"
	CommandLocate = "locate"
)

// Command is an instruction sent to a device.
type Command struct {
	Name   string         `json:"command"`
	Params map[string]any `json:"params,omitempty"`
}
