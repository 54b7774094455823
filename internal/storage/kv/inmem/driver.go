package inmem

import (
	"github.com/quantashield/console/internal/hashmap"
	"github.com/quantashield/console/internal/storage/kv"
)

// Driver represents the in-memory key-value storage driver.
// It is primarily used by tests; production deployments use the sqlite driver.
type Driver struct {
	values *hashmap.NormalMap[string, string]
}

var _ kv.Driver = (*Driver)(nil)

// New creates a new empty in-memory key-value storage driver
func New() *Driver {
	return &Driver{
		values: hashmap.NewNormal[string, string](),
	}
}

// Get retrieves the value assigned to the given key
func (driver *Driver) Get(key string) (string, error) {
	val, _ := driver.values.Lookup(key)
	return val, nil
}

// Set assigns a value to the given key
func (driver *Driver) Set(key, value string) error {
	driver.values.Set(key, value)
	return nil
}

// Delete removes the given key
func (driver *Driver) Delete(key string) error {
	driver.values.Unset(key)
	return nil
}

// Close closes the storage driver
func (driver *Driver) Close() error {
	driver.values.Clear()
	return nil
}
