// Package api implements the HTTP REST API and WebSocket server for vacbridge.
//
// This package provides:
//   - REST endpoints for vacuum reads, run history, and commands
//   - WebSocket hub relaying attribute and event publications in real time
//   - JWT authentication with ticket-based WebSocket auth
//   - Middleware stack (request ID, logging, recovery, CORS)
//   - TLS support for production deployments
//
// # Architecture
//
// The API server sits between user interfaces and the vacuum registry + MQTT
// bus. Commands flow from the API to the bridge via the per-device command
// topic, and attribute/event publications flow back via MQTT subscriptions
// which are broadcast to WebSocket clients.
//
// # Security
//
// Authentication uses JWT tokens (HS256, signed with the configured secret).
// WebSocket connections use single-use tickets to prevent token leakage in URLs.
//
// # Graceful Degradation
//
// The server operates without MQTT: reads and WebSocket connections work,
// only vacuum commands fail. This enables testing and partial operation.
package api
