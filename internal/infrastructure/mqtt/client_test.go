package mqtt

import (
	"context"
	"errors"
	"testing"
)

// These tests exercise validation and state handling that does not require
// a broker. End-to-end broker behaviour is covered by the integration tests
// (go test -tags=integration) which expect Mosquitto at 127.0.0.1:1883.

func TestCloseNil(t *testing.T) {
	c := &Client{}
	if err := c.Close(); err != nil {
		t.Errorf("Close() on nil client error = %v, want nil", err)
	}
}

func TestHealthCheckCancelled(t *testing.T) {
	c := &Client{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.HealthCheck(ctx)
	if err == nil {
		t.Fatal("HealthCheck() with cancelled context = nil, want error")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("HealthCheck() error = %v, want context.Canceled", err)
	}
}

func TestPublishEmptyTopic(t *testing.T) {
	c := &Client{}

	err := c.Publish("", []byte("payload"), 1, false)
	if !errors.Is(err, ErrInvalidTopic) {
		t.Errorf("Publish(\"\") error = %v, want ErrInvalidTopic", err)
	}
}

func TestPublishInvalidQoS(t *testing.T) {
	c := &Client{}

	err := c.Publish(Topics{}.DeviceAck("vac-1"), []byte("payload"), 3, false)
	if !errors.Is(err, ErrInvalidQoS) {
		t.Errorf("Publish(qos=3) error = %v, want ErrInvalidQoS", err)
	}
}

func TestPublishOversizedPayload(t *testing.T) {
	c := &Client{}

	payload := make([]byte, maxPayloadSize+1)
	err := c.Publish(Topics{}.DeviceAck("vac-1"), payload, 1, false)
	if !errors.Is(err, ErrPublishFailed) {
		t.Errorf("Publish(oversized) error = %v, want ErrPublishFailed", err)
	}
}

func TestSubscribeEmptyTopic(t *testing.T) {
	c := &Client{}

	err := c.Subscribe("", 1, func(topic string, payload []byte) error { return nil })
	if !errors.Is(err, ErrInvalidTopic) {
		t.Errorf("Subscribe(\"\") error = %v, want ErrInvalidTopic", err)
	}
}

func TestSubscribeInvalidQoS(t *testing.T) {
	c := &Client{}

	err := c.Subscribe(Topics{}.AllDeviceCommands(), 3, func(topic string, payload []byte) error { return nil })
	if !errors.Is(err, ErrInvalidQoS) {
		t.Errorf("Subscribe(qos=3) error = %v, want ErrInvalidQoS", err)
	}
}

func TestSubscribeNilHandler(t *testing.T) {
	c := &Client{}

	err := c.Subscribe(Topics{}.AllDeviceCommands(), 1, nil)
	if !errors.Is(err, ErrSubscribeFailed) {
		t.Errorf("Subscribe(nil handler) error = %v, want ErrSubscribeFailed", err)
	}
}

func TestUnsubscribeEmptyTopic(t *testing.T) {
	c := &Client{}

	err := c.Unsubscribe("")
	if !errors.Is(err, ErrInvalidTopic) {
		t.Errorf("Unsubscribe(\"\") error = %v, want ErrInvalidTopic", err)
	}
}

func TestSubscriptionCountEmpty(t *testing.T) {
	c := &Client{subscriptions: make(map[string]subscription)}

	if got := c.SubscriptionCount(); got != 0 {
		t.Errorf("SubscriptionCount() = %d, want 0", got)
	}
	if c.HasSubscription(Topics{}.AllDeviceCommands()) {
		t.Error("HasSubscription() = true for untracked topic")
	}
}
