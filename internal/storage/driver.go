package storage

import (
	"context"

	"github.com/quantashield/console/internal/asset"
	"github.com/quantashield/console/internal/threat"
)

// Driver represents a data storage driver
type Driver interface {
	// Initialize initializes the storage driver (i.e. builds indexes and seeds data)
	Initialize(ctx context.Context) error

	// Assets provides an asset repository implementation
	Assets() asset.Repository

	// Threats provides a threat intelligence repository implementation
	Threats() threat.Repository

	// Close closes the storage driver
	Close()
}
