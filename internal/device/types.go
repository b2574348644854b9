package device

import "time"

// Vacuum represents one bridged robot vacuum.
// This matches the database schema in migrations/20260815_100000_initial_schema.up.sql.
type Vacuum struct {
	// Identity. ID is the vendor cloud identifier; it doubles as the
	// primary key so rediscovery is naturally idempotent.
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`

	// Metadata reported by the vendor.
	Model    string `json:"model"`
	Firmware string `json:"firmware"`

	// Current state
	State          State      `json:"state"`
	StateUpdatedAt *time.Time `json:"state_updated_at,omitempty"`

	// Health monitoring
	HealthStatus   HealthStatus `json:"health_status"`
	HealthLastSeen *time.Time   `json:"health_last_seen,omitempty"`

	// Timestamps
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DeepCopy creates a complete independent copy of the Vacuum.
// The state map is cloned so modifications to the copy do not affect the
// original. This is essential for cache isolation.
func (v *Vacuum) DeepCopy() *Vacuum {
	if v == nil {
		return nil
	}

	cpy := *v // Shallow copy of value fields

	cpy.State = deepCopyMap(v.State)

	// Pointer fields (*time.Time) don't need deep copy because time.Time
	// is immutable in Go

	return &cpy
}

// deepCopyMap creates a deep copy of a map[string]any.
// Nested maps and slices are recursively copied.
func deepCopyMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	cpy := make(map[string]any, len(m))
	for k, v := range m {
		cpy[k] = deepCopyValue(v)
	}
	return cpy
}

// deepCopyValue recursively copies a value, handling nested maps and slices.
func deepCopyValue(v any) any {
	if v == nil {
		return nil
	}
	switch val := v.(type) {
	case map[string]any:
		return deepCopyMap(val)
	case []any:
		cpy := make([]any, len(val))
		for i, elem := range val {
			cpy[i] = deepCopyValue(elem)
		}
		return cpy
	default:
		// Primitives (string, bool, int, float64, etc.) are safe to copy by value
		return v
	}
}

// State holds the current device state as a JSON map.
//
// Example:
//
//	{"battery": 87, "charging": false, "mode": "vacuum", "operational_state": "running"}
type State map[string]any

// HealthStatus represents the device health state.
type HealthStatus string

// HealthStatus constants.
const (
	HealthStatusOnline  HealthStatus = "online"
	HealthStatusOffline HealthStatus = "offline"
	HealthStatusUnknown HealthStatus = "unknown"
)

// AllHealthStatuses returns all valid health status values.
func AllHealthStatuses() []HealthStatus {
	return []HealthStatus{
		HealthStatusOnline, HealthStatusOffline, HealthStatusUnknown,
	}
}
