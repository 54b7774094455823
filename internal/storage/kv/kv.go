package kv

// Driver defines the durable key-value storage API.
// It is the process-local counterpart of a browser's persistent storage: a handful of
// string entries that survive a restart.
type Driver interface {
	// Get retrieves the value assigned to the given key.
	// It returns ("", nil) if the key is not present.
	Get(key string) (string, error)

	// Set assigns a value to the given key, replacing any existing one
	Set(key, value string) error

	// Delete removes the given key.
	// Deleting a non-existing key is a no-op.
	Delete(key string) error

	// Close closes the storage driver
	Close() error
}
