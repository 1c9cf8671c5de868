package repository

import "context"

// KeyValueStore is durable client-side storage for small string blobs, used to
// persist carts and wishlists between sessions.
type KeyValueStore interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set replaces the value of key atomically: a reader never observes a partial write.
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
}
