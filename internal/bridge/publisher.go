package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nerrad567/vacbridge/internal/cluster"
	"github.com/nerrad567/vacbridge/internal/infrastructure/mqtt"
	"github.com/nerrad567/vacbridge/internal/statesync"
)

// MQTTClient is the subset of the MQTT client the bridge needs.
// Satisfied by *mqtt.Client (via adapter in main for Subscribe's
// handler type).
type MQTTClient interface {
	// Publish sends a message to a topic.
	Publish(topic string, payload []byte, qos byte, retained bool) error

	// Subscribe registers a handler for a topic pattern.
	Subscribe(topic string, qos byte, handler func(topic string, payload []byte) error) error

	// IsConnected returns true if connected to the broker.
	IsConnected() bool
}

// FrameworkPublisher publishes attribute values and events to the
// framework-facing MQTT topics.
//
// Attribute messages are retained so late subscribers see current state;
// event messages are not retained because they describe moments.
type FrameworkPublisher struct {
	mqtt MQTTClient
	qos  byte
}

// NewFrameworkPublisher creates a publisher using the given QoS for all
// publications.
func NewFrameworkPublisher(client MQTTClient, qos byte) *FrameworkPublisher {
	return &FrameworkPublisher{
		mqtt: client,
		qos:  qos,
	}
}

// WriteAttribute publishes one attribute value for a device.
func (p *FrameworkPublisher) WriteAttribute(_ context.Context, deviceID string, clusterRef any, attribute string, value any) error {
	msg := AttributeMessage{
		Value:     value,
		Timestamp: time.Now().UTC(),
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal attribute %s: %w", attribute, err)
	}

	topic := mqtt.Topics{}.DeviceAttribute(deviceID, cluster.Key(clusterRef), attribute)
	if err := p.mqtt.Publish(topic, payload, p.qos, true); err != nil {
		return fmt.Errorf("publish attribute %s: %w", attribute, err)
	}
	return nil
}

// EmitEvent publishes one detected edge event for a device.
func (p *FrameworkPublisher) EmitEvent(_ context.Context, deviceID string, ev statesync.Event) error {
	msg := EventMessage{
		ID:        newEventID(),
		Cluster:   ev.Cluster.String(),
		Event:     ev.Name,
		Payload:   ev.Payload,
		Timestamp: time.Now().UTC(),
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", ev.Name, err)
	}

	topic := mqtt.Topics{}.DeviceEvent(deviceID, ev.Cluster.String(), ev.Name)
	if err := p.mqtt.Publish(topic, payload, p.qos, false); err != nil {
		return fmt.Errorf("publish event %s: %w", ev.Name, err)
	}
	return nil
}

// PublishDeviceHealth publishes a retained per-device health status.
func (p *FrameworkPublisher) PublishDeviceHealth(deviceID, status string) error {
	payload, err := json.Marshal(map[string]any{
		"status":    status,
		"timestamp": time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal device health: %w", err)
	}

	topic := mqtt.Topics{}.DeviceHealth(deviceID)
	if err := p.mqtt.Publish(topic, payload, p.qos, true); err != nil {
		return fmt.Errorf("publish device health: %w", err)
	}
	return nil
}

// deviceWriter binds a FrameworkPublisher to one device so it can serve
// as the fingerprint cache's write delegate.
type deviceWriter struct {
	pub      *FrameworkPublisher
	deviceID string
}

func (w deviceWriter) Write(ctx context.Context, clusterRef any, attribute string, value any) error {
	return w.pub.WriteAttribute(ctx, w.deviceID, clusterRef, attribute, value)
}
