package slab

import "context"

// Storage is a string-valued key-value store holding the persisted collections.
// Get returns repository.ErrNotFound when the key has never been written.
type Storage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// Metrics records inventory events. Implementations must tolerate a nil receiver.
type Metrics interface {
	SlabAdded()
	SlabsRemoved(n int)
	SlabsImported(n int)
	ValidationFailed(kind string)
	PersistFailed(key string)
	Inventory(slabs, blockNumbers int)
}
