// Package ledger owns the durable transaction list. The store persists the
// whole ledger as one JSON array under a single key of an injected
// key-value port, so every backend shares the same persisted shape.
package ledger

import "context"

// KV is the storage port the store writes through. Implementations must
// guarantee that a Get issued strictly after a Put observes the new value.
type KV interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Put(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}
