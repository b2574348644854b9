package statesync

import (
	"context"
	"sync"

	"github.com/nerrad567/vacbridge/internal/cluster"
)

// AttributeWriter is the downstream collaborator that performs the actual
// attribute write. The cache decides whether a write is needed; the writer
// owns the mechanism (MQTT publish, framework call, test recorder).
type AttributeWriter interface {
	// Write stores one attribute value. clusterRef may be any representation
	// accepted by cluster.Key.
	Write(ctx context.Context, clusterRef any, attribute string, value any) error
}

// Cache remembers the fingerprint of the last value written for each
// cluster/attribute slot and suppresses writes whose value has not
// semantically changed.
//
// The cache is scoped to one device session: it starts empty, entries are
// created on first write and replaced on every accepted change, and the
// whole map is discarded with the session. Entries are never removed
// individually.
type Cache struct {
	writer AttributeWriter

	mu   sync.Mutex
	seen map[string]string // attribute key -> last issued fingerprint
}

// NewCache creates an empty cache writing through the given delegate.
func NewCache(writer AttributeWriter) *Cache {
	return &Cache{
		writer: writer,
		seen:   make(map[string]string),
	}
}

// Write issues the delegated write if the value differs from the last one
// written for this slot.
//
// Returns (false, nil) when the fingerprint is unchanged: no side effect.
// Otherwise the delegate is called exactly once and the new fingerprint is
// recorded after the call is issued. The fingerprint is recorded even when
// the delegate returns an error (optimistic commit): a transiently failing
// delegate can leave a slot stale until the value next changes. The error
// is returned to the caller either way.
//
// A key never seen and a key seen with a different value behave the same:
// both trigger the write.
//
// The mutex is held across the delegated call so that per-key fingerprint
// commit order always matches write order.
func (c *Cache) Write(ctx context.Context, clusterRef any, attribute string, value any) (bool, error) {
	key := cluster.AttributeKey(clusterRef, attribute)
	fp := Fingerprint(value)

	c.mu.Lock()
	defer c.mu.Unlock()

	if last, ok := c.seen[key]; ok && last == fp {
		return false, nil
	}

	err := c.writer.Write(ctx, clusterRef, attribute, value)
	c.seen[key] = fp
	if err != nil {
		return true, err
	}
	return true, nil
}

// Len returns the number of tracked attribute slots.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.seen)
}
