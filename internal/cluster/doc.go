// Package cluster defines the attribute-model vocabulary the bridge
// publishes into: cluster identifiers, attribute and event names, and the
// operational error descriptor shared between the cloud telemetry model and
// the state synchronization core.
//
// Cluster identifiers reach the bridge in several shapes depending on the
// caller: a raw numeric ID, one of the named constants below, or a
// descriptor struct carrying both ID and name. Key() canonicalises all of
// them to the same string so that cache lookups are representation
// independent:
//
//	cluster.Key(cluster.RVCOperationalState)          // "0x0061"
//	cluster.Key(uint32(0x61))                         // "0x0061"
//	cluster.Key(cluster.Descriptor{ID: 0x61, Name: "RvcOperationalState"})
//
// # Thread Safety
//
// All functions are pure; the package holds no mutable state.
package cluster
