package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nerrad567/vacbridge/internal/cloud"
	"github.com/nerrad567/vacbridge/internal/infrastructure/mqtt"
)

// handleCommandMessage processes one command received on a device
// command topic. Malformed or unknown commands are acknowledged as
// failed rather than retried: the framework side owns retry policy.
func (b *Bridge) handleCommandMessage(topic string, payload []byte) error {
	deviceID := mqtt.DeviceIDFromCommandTopic(topic)
	if deviceID == "" {
		b.logger.Error("invalid command topic", "topic", topic)
		return fmt.Errorf("invalid command topic: %s", topic)
	}

	var cmd CommandMessage
	if err := json.Unmarshal(payload, &cmd); err != nil {
		b.logger.Warn("failed to parse command",
			"device_id", deviceID,
			"error", err,
		)
		b.publishAck(deviceID, NewAckError(CommandMessage{}, deviceID, ErrCodeInvalidPayload, err.Error()))
		return nil
	}

	if cmd.ID == "" {
		cmd.ID = newEventID()
	}

	b.logger.Info("received command",
		"command_id", cmd.ID,
		"device_id", deviceID,
		"command", cmd.Command,
	)

	cloudCmd, ok := translateCommand(cmd)
	if !ok {
		b.publishAck(deviceID, NewAckError(cmd, deviceID, ErrCodeInvalidCommand,
			fmt.Sprintf("unknown command: %s", cmd.Command)))
		return nil
	}

	// Derive timeout from bridge context so commands are cancelled on shutdown
	ctx, cancel := context.WithTimeout(b.ctx, commandTimeout)
	defer cancel()

	if err := b.opts.Cloud.Send(ctx, deviceID, cloudCmd); err != nil {
		b.logger.Error("command forwarding failed",
			"command_id", cmd.ID,
			"device_id", deviceID,
			"error", err,
		)
		b.publishAck(deviceID, NewAckError(cmd, deviceID, cloudErrorCode(err), err.Error()))
		return nil
	}

	b.publishAck(deviceID, NewAckMessage(cmd, deviceID))
	return nil
}

// translateCommand maps a framework command onto the cloud command
// vocabulary. Parameters pass through untouched; the cloud API owns
// their validation.
func translateCommand(cmd CommandMessage) (cloud.Command, bool) {
	switch cmd.Command {
	case cloud.CommandStart, cloud.CommandPause, cloud.CommandHome, cloud.CommandLocate:
		return cloud.Command{
			Name:   cmd.Command,
			Params: cmd.Params,
		}, true
	default:
		return cloud.Command{}, false
	}
}

// cloudErrorCode maps a cloud client error onto an ack error code.
func cloudErrorCode(err error) string {
	switch {
	case errors.Is(err, cloud.ErrCommandRejected):
		return ErrCodeCloudRejected
	case errors.Is(err, cloud.ErrDeviceNotFound):
		return ErrCodeUnknownDevice
	case errors.Is(err, cloud.ErrUnauthorized):
		return ErrCodeUnauthorized
	default:
		return ErrCodeCloudUnreachable
	}
}

// publishAck publishes a command acknowledgement for a device.
func (b *Bridge) publishAck(deviceID string, ack AckMessage) {
	payload, err := json.Marshal(ack)
	if err != nil {
		b.logger.Error("failed to marshal ack", "error", err)
		return
	}

	topic := mqtt.Topics{}.DeviceAck(deviceID)
	if err := b.opts.MQTT.Publish(topic, payload, b.opts.QoS, false); err != nil {
		b.logger.Error("failed to publish ack",
			"device_id", deviceID,
			"command_id", ack.CommandID,
			"error", err,
		)
	}
}
