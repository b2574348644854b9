// Package mqtt provides MQTT client connectivity for the vacuum bridge.
//
// This package manages:
//   - Connection to the broker with auto-reconnect
//   - Message publishing with QoS guarantees
//   - Topic subscriptions with wildcard support
//   - Last Will and Testament (LWT) for offline detection
//   - Connection health monitoring
//
// # Architecture
//
// The bridge uses MQTT to expose vacuum state to the smart-home framework
// and to receive commands from it. The broker (typically Mosquitto)
// decouples the bridge from framework internals.
//
//	Vacuum Cloud API ↔ vacbridge ↔ MQTT Broker ↔ Smart-Home Framework
//
// Attribute and event topics are retained or fired per the cluster model:
// attributes publish retained so late subscribers see current state, events
// publish non-retained because they describe moments, not state.
//
// # Security Considerations
//
//   - TLS is required for production deployments (cfg.Broker.TLS=true)
//   - Credentials are validated against broker ACL
//   - Anonymous access is only for local development
//   - Message payloads are not encrypted beyond TLS transport
//
// # Performance Characteristics
//
//   - Connection: <1 second to local broker
//   - Publish latency: <10ms for QoS 1 to local broker
//   - Reconnect: Exponential backoff 1s-60s with jitter
//   - Message throughput: Broker-limited (typically 10K+ msg/sec)
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Subscribe to commands for every bridged vacuum
//	err = client.Subscribe(mqtt.Topics{}.AllDeviceCommands(), 1,
//	    func(topic string, payload []byte) error {
//	        log.Printf("Received: %s = %s", topic, payload)
//	        return nil
//	    })
//
//	// Publish an attribute update
//	topic := mqtt.Topics{}.DeviceAttribute("vac-1", "0x002F", "batPercentRemaining")
//	client.Publish(topic, []byte("87"), 1, true)
package mqtt
