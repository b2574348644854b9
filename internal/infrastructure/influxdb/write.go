package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// WriteBatteryMetric records a vacuum's battery level and charging state.
//
// The write is non-blocking; data is batched and sent asynchronously.
//
// Parameters:
//   - deviceID: Vendor cloud device identifier
//   - level: Battery percentage (0-100)
//   - charging: Whether the vacuum is currently charging
//
// Example:
//
//	client.WriteBatteryMetric("vac-1", 87, true)
func (c *Client) WriteBatteryMetric(deviceID string, level float64, charging bool) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"battery",
		map[string]string{
			"device_id": deviceID,
		},
		map[string]interface{}{
			"level":    level,
			"charging": charging,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WriteRunMetric records a completed cleaning run.
//
// Written once per operation completion edge, alongside the SQLite
// run history record.
//
// Parameters:
//   - deviceID: Vendor cloud device identifier
//   - durationSeconds: Total operational time of the run
//   - errorCode: Terminal error code (0 for a clean finish)
func (c *Client) WriteRunMetric(deviceID string, durationSeconds float64, errorCode uint8) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"cleaning_run",
		map[string]string{
			"device_id": deviceID,
		},
		map[string]interface{}{
			"duration_seconds": durationSeconds,
			"error_code":       int64(errorCode),
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WriteErrorEvent records an operational error onset.
//
// Parameters:
//   - deviceID: Vendor cloud device identifier
//   - errorCode: Device error code
//   - errorLabel: Short machine-readable error label (e.g., "Stuck")
func (c *Client) WriteErrorEvent(deviceID string, errorCode uint8, errorLabel string) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"operational_error",
		map[string]string{
			"device_id": deviceID,
			"label":     errorLabel,
		},
		map[string]interface{}{
			"error_code": int64(errorCode),
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WritePoint writes a custom point with full control over tags and fields.
//
// Use this for custom measurements that don't fit the helper methods.
//
// Parameters:
//   - measurement: The measurement name (table)
//   - tags: Key-value pairs for indexing (low cardinality)
//   - fields: Key-value pairs for the actual data
//
// Example:
//
//	client.WritePoint("poll_stats",
//	    map[string]string{"device_id": "vac-1"},
//	    map[string]interface{}{"latency_ms": 45.2})
func (c *Client) WritePoint(measurement string, tags map[string]string, fields map[string]interface{}) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(measurement, tags, fields, time.Now())
	c.writeAPI.WritePoint(point)
}

// WritePointWithTime writes a custom point with a specific timestamp.
//
// Use this when the timestamp is not "now" (e.g., delayed data).
//
// Parameters:
//   - measurement: The measurement name
//   - tags: Key-value pairs for indexing
//   - fields: Key-value pairs for the data
//   - timestamp: The exact time for this data point
func (c *Client) WritePointWithTime(measurement string, tags map[string]string, fields map[string]interface{}, timestamp time.Time) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(measurement, tags, fields, timestamp)
	c.writeAPI.WritePoint(point)
}
