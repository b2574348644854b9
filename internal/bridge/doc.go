// Package bridge glues the vendor cloud API to the framework-facing MQTT
// surface.
//
// One Session exists per bridged vacuum. Each status document polled from
// the cloud flows through the session, which:
//   - maps the vendor fields onto cluster attributes and writes them
//     through a fingerprint cache so only changed values reach MQTT
//   - feeds a composite snapshot to an edge detector and emits the
//     resulting completion/error events
//
// The Bridge orchestrates the whole lifecycle: device discovery and
// registry seeding, per-device polling, command handling (MQTT command
// topic -> cloud command endpoint with acknowledgements), health
// reporting, and run history / metrics recording on completion edges.
//
// Collaborators are consumed through narrow interfaces (MQTTClient,
// CloudAPI, VacuumRegistry, ...) so tests can substitute hand mocks.
package bridge
