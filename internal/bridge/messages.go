package bridge

import (
	"time"

	"github.com/google/uuid"
)

// MQTT message types exchanged with the smart-home framework.

// AttributeMessage is published (retained) on every accepted attribute
// write.
// Topic: vacbridge/device/{id}/attr/{cluster}/{attribute}
type AttributeMessage struct {
	// Value is the attribute value in its cluster representation.
	Value any `json:"value"`

	// Timestamp is when the value was written (UTC, ISO8601).
	Timestamp time.Time `json:"timestamp"`
}

// EventMessage is published (not retained) for each detected edge.
// Topic: vacbridge/device/{id}/event/{cluster}/{event}
type EventMessage struct {
	// ID uniquely identifies this event occurrence.
	ID string `json:"id"`

	// Cluster is the canonical cluster key (e.g. "0x0061").
	Cluster string `json:"cluster"`

	// Event is the event name (e.g. "operationCompletion").
	Event string `json:"event"`

	// Payload carries the event-specific data.
	Payload any `json:"payload"`

	// Timestamp is when the edge was detected (UTC, ISO8601).
	Timestamp time.Time `json:"timestamp"`
}

// CommandMessage is received from the framework to drive a vacuum.
// Topic: vacbridge/device/{id}/command
type CommandMessage struct {
	// ID identifies this command for correlation with acknowledgements.
	// Generated by the bridge when the sender omits it.
	ID string `json:"id"`

	// Timestamp is when the command was issued (UTC, ISO8601).
	Timestamp time.Time `json:"timestamp"`

	// Command is the command name ("start", "pause", "home", "locate").
	Command string `json:"command"`

	// Params contains command-specific values.
	Params map[string]any `json:"params,omitempty"`

	// Source indicates where the command originated.
	Source string `json:"source,omitempty"`
}

// AckStatus represents the acknowledgement status of a command.
type AckStatus string

const (
	// AckAccepted indicates the command was accepted by the cloud API.
	AckAccepted AckStatus = "accepted"

	// AckFailed indicates the command could not be executed.
	AckFailed AckStatus = "failed"
)

// AckMessage is published in response to every received command.
// Topic: vacbridge/device/{id}/ack
type AckMessage struct {
	// CommandID is the ID from the original command.
	CommandID string `json:"command_id"`

	// Timestamp is when the acknowledgement was sent (UTC, ISO8601).
	Timestamp time.Time `json:"timestamp"`

	// DeviceID is the vendor cloud device identifier.
	DeviceID string `json:"device_id"`

	// Status indicates the acknowledgement status.
	Status AckStatus `json:"status"`

	// Error contains details when status is "failed".
	Error *AckError `json:"error,omitempty"`
}

// AckError contains error details for failed commands.
type AckError struct {
	// Code is the error code (e.g. "INVALID_COMMAND").
	Code string `json:"code"`

	// Message is a human-readable error description.
	Message string `json:"message"`
}

// Error codes for command failures.
const (
	ErrCodeInvalidCommand   = "INVALID_COMMAND"
	ErrCodeInvalidPayload   = "INVALID_PAYLOAD"
	ErrCodeUnknownDevice    = "UNKNOWN_DEVICE"
	ErrCodeCloudRejected    = "CLOUD_REJECTED"
	ErrCodeCloudUnreachable = "CLOUD_UNREACHABLE"
	ErrCodeUnauthorized     = "CLOUD_UNAUTHORIZED"
)

// HealthStatus is the bridge-level health state.
type HealthStatus string

const (
	// HealthStarting is published once during startup.
	HealthStarting HealthStatus = "starting"

	// HealthOnline indicates normal operation.
	HealthOnline HealthStatus = "online"

	// HealthDegraded indicates the bridge is up but a dependency is not.
	HealthDegraded HealthStatus = "degraded"

	// HealthStopping is published during graceful shutdown.
	HealthStopping HealthStatus = "stopping"
)

// HealthMessage is published periodically to the system status topic.
// Topic: vacbridge/system/status
type HealthMessage struct {
	BridgeID      string       `json:"bridge_id"`
	Version       string       `json:"version"`
	Status        HealthStatus `json:"status"`
	Reason        string       `json:"reason,omitempty"`
	UptimeSeconds int64        `json:"uptime_seconds"`
	DeviceCount   int          `json:"device_count"`
	Timestamp     time.Time    `json:"timestamp"`
}

// NewAckMessage creates a success acknowledgement for a command.
func NewAckMessage(cmd CommandMessage, deviceID string) AckMessage {
	return AckMessage{
		CommandID: cmd.ID,
		Timestamp: time.Now().UTC(),
		DeviceID:  deviceID,
		Status:    AckAccepted,
	}
}

// NewAckError creates a failure acknowledgement for a command.
func NewAckError(cmd CommandMessage, deviceID, code, message string) AckMessage {
	return AckMessage{
		CommandID: cmd.ID,
		Timestamp: time.Now().UTC(),
		DeviceID:  deviceID,
		Status:    AckFailed,
		Error: &AckError{
			Code:    code,
			Message: message,
		},
	}
}

// newEventID returns a unique identifier for an event occurrence.
func newEventID() string {
	return uuid.New().String()
}
