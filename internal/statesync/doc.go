// Package statesync turns a continuously polled appliance feed into a
// minimal set of discrete attribute writes and events.
//
// Two components cooperate:
//
//   - Cache suppresses redundant downstream writes. Every incoming
//     (cluster, attribute, value) triple is fingerprinted; the delegated
//     write only happens when the fingerprint differs from the last one
//     issued for that slot.
//
//   - EdgeDetector watches successive operational snapshots of one device
//     and emits an event exactly once per transition: a completion event
//     when an active period ends (carrying the elapsed run time), and an
//     operational-error event when a new fault condition appears.
//
// Both components are purely reactive. They hold no timers, never poll,
// and only change state when fed a snapshot or value. One Cache and one
// EdgeDetector pair is owned by one device session and torn down with it.
//
// # Thread Safety
//
// Cache is safe for concurrent use across attribute groups; per-key
// ordering follows the external delivery order (the telemetry source must
// not deliver two updates for the same key concurrently). EdgeDetector is
// not internally synchronised: snapshots for one device must be processed
// one at a time, which the poller guarantees.
package statesync
