// Package cloud talks to the vendor's cloud API on behalf of the bridge.
//
// The vendor exposes a polled REST surface: there is no push channel, so the
// bridge learns about device state by fetching a full status document at a
// fixed interval. This package provides:
//   - Client: token-authenticated REST client (list devices, fetch status,
//     send commands)
//   - Poller: one polling loop per device, delivering each status snapshot
//     to a handler serially
//
// Serial delivery per device is a hard guarantee: the poller never fetches
// the next status for a device until the handler has returned for the
// previous one. Different devices poll independently.
//
// The client performs no retries of its own; transient failures surface as
// errors and the next poll tick tries again.
package cloud
