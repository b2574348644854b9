package mqtt

import (
	"fmt"
	"strings"
)

// Topic prefixes for the vacuum bridge MQTT hierarchy.
//
// Device topics use the scheme: vacbridge/device/{device_id}/{category}/...
// Attribute and event topics carry the canonical cluster key (e.g. "0x0061")
// as a path segment so framework subscribers can filter per cluster.
const (
	// TopicPrefix is the base for all bridge topics.
	TopicPrefix = "vacbridge"

	// TopicPrefixDevice is the base for per-device topics.
	TopicPrefixDevice = "vacbridge/device"

	// TopicPrefixSystem is the base for system topics.
	TopicPrefixSystem = "vacbridge/system"
)

// Topics provides builders for vacuum bridge MQTT topics.
// Using these helpers ensures consistent topic naming across the codebase.
//
//	topics := mqtt.Topics{}
//	attrTopic := topics.DeviceAttribute("vac-1", "0x002F", "batPercentRemaining")
//	// Returns: "vacbridge/device/vac-1/attr/0x002F/batPercentRemaining"
type Topics struct{}

// =============================================================================
// Device Topics
// =============================================================================

// DeviceAttribute returns the topic for one cluster attribute of a device.
//
// Example: vacbridge/device/vac-1/attr/0x002F/batPercentRemaining
func (Topics) DeviceAttribute(deviceID, clusterKey, attribute string) string {
	return fmt.Sprintf("%s/%s/attr/%s/%s", TopicPrefixDevice, deviceID, clusterKey, attribute)
}

// DeviceEvent returns the topic for a cluster event of a device.
//
// Example: vacbridge/device/vac-1/event/0x0061/operationCompletion
func (Topics) DeviceEvent(deviceID, clusterKey, event string) string {
	return fmt.Sprintf("%s/%s/event/%s/%s", TopicPrefixDevice, deviceID, clusterKey, event)
}

// DeviceCommand returns the topic the bridge listens on for commands to a device.
//
// Example: vacbridge/device/vac-1/command
func (Topics) DeviceCommand(deviceID string) string {
	return fmt.Sprintf("%s/%s/command", TopicPrefixDevice, deviceID)
}

// DeviceAck returns the topic for command acknowledgements for a device.
//
// Example: vacbridge/device/vac-1/ack
func (Topics) DeviceAck(deviceID string) string {
	return fmt.Sprintf("%s/%s/ack", TopicPrefixDevice, deviceID)
}

// DeviceHealth returns the topic for per-device health status.
//
// Example: vacbridge/device/vac-1/health
func (Topics) DeviceHealth(deviceID string) string {
	return fmt.Sprintf("%s/%s/health", TopicPrefixDevice, deviceID)
}

// =============================================================================
// System Topics
// =============================================================================

// SystemStatus returns the bridge status topic (online/offline, also LWT).
//
// Example: vacbridge/system/status
func (Topics) SystemStatus() string {
	return fmt.Sprintf("%s/status", TopicPrefixSystem)
}

// =============================================================================
// Wildcard Patterns for Subscriptions
// =============================================================================

// AllDeviceCommands returns a pattern matching commands for every device.
//
// Pattern: vacbridge/device/+/command
func (Topics) AllDeviceCommands() string {
	return fmt.Sprintf("%s/+/command", TopicPrefixDevice)
}

// AllDeviceAttributes returns a pattern matching all attribute publications.
//
// Pattern: vacbridge/device/+/attr/#
func (Topics) AllDeviceAttributes() string {
	return fmt.Sprintf("%s/+/attr/#", TopicPrefixDevice)
}

// AllDeviceEvents returns a pattern matching all event publications.
//
// Pattern: vacbridge/device/+/event/#
func (Topics) AllDeviceEvents() string {
	return fmt.Sprintf("%s/+/event/#", TopicPrefixDevice)
}

// AllTopics returns a pattern matching all bridge topics.
// Use with caution - this receives ALL traffic.
//
// Pattern: vacbridge/#
func (Topics) AllTopics() string {
	return "vacbridge/#"
}

// DeviceIDFromCommandTopic extracts the device ID from a command topic.
// Returns "" if the topic does not match the command scheme.
func DeviceIDFromCommandTopic(topic string) string {
	rest, ok := strings.CutPrefix(topic, TopicPrefixDevice+"/")
	if !ok {
		return ""
	}
	id, ok := strings.CutSuffix(rest, "/command")
	if !ok || id == "" || strings.Contains(id, "/") {
		return ""
	}
	return id
}
