// Package constants holds configuration values shared across layers.
package constants

const (
	// EnvDevelop is the env name used for local development.
	EnvDevelop = "develop"
)

// Store drivers.
const (
	StoreDriverMemory    = "memory"
	StoreDriverPostgres  = "postgres"
	StoreDriverFirestore = "firestore"
)

// Key-value drivers for client-local cart and wishlist state.
const (
	KVDriverMemory = "memory"
	KVDriverFile   = "file"
	KVDriverRedis  = "redis"
)

// Pub/Sub providers.
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)
