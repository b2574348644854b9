// Package device provides the vacuum registry for the bridge.
//
// The registry is the catalogue of all robot vacuums known to this bridge
// instance. Devices are discovered from the vendor cloud at startup and
// seeded here; the registry then serves lookups for the poller, the MQTT
// command handler, and the REST API.
//
// # Key Types
//
//   - Vacuum: one bridged robot, keyed by its vendor cloud ID
//   - Registry: thread-safe cached view over a Repository
//   - Repository: persistence interface (SQLite implementation provided)
//   - RunHistoryRepository: completed cleaning runs (duration, error)
//
// # Usage
//
//	repo := device.NewSQLiteRepository(db)
//	registry := device.NewRegistry(repo)
//	registry.SetLogger(log)
//
//	if err := registry.RefreshCache(ctx); err != nil {
//	    return err
//	}
//
//	created, err := registry.Seed(ctx, &device.Vacuum{
//	    ID:    "vac-1",
//	    Name:  "Upstairs",
//	    Model: "RV-900",
//	})
//
// # Thread Safety
//
// The Registry is safe for concurrent use. All operations are protected by
// a read-write mutex. The Repository implementation must also be thread-safe.
package device
