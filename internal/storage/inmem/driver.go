package inmem

import (
	"context"

	"github.com/hashicorp/go-memdb"

	"github.com/quantashield/console/internal/asset"
	"github.com/quantashield/console/internal/storage"
	"github.com/quantashield/console/internal/threat"
)

const (
	tableAssets            = "assets"
	tableThreatIndicators  = "threat_indicators"
	tableLeakedCredentials = "leaked_credentials"
)

var dbSchema = &memdb.DBSchema{
	Tables: map[string]*memdb.TableSchema{
		tableAssets: {
			Name: tableAssets,
			Indexes: map[string]*memdb.IndexSchema{
				"id": {
					Name:    "id",
					Unique:  true,
					Indexer: &memdb.StringFieldIndex{Field: "ID"},
				},
				"name": {
					Name:    "name",
					Unique:  false,
					Indexer: &memdb.StringFieldIndex{Field: "Name"},
				},
			},
		},
		tableThreatIndicators: {
			Name: tableThreatIndicators,
			Indexes: map[string]*memdb.IndexSchema{
				"id": {
					Name:    "id",
					Unique:  true,
					Indexer: &memdb.StringFieldIndex{Field: "ID"},
				},
				"lastSeen": {
					Name:    "lastSeen",
					Unique:  false,
					Indexer: &memdb.IntFieldIndex{Field: "LastSeen"},
				},
			},
		},
		tableLeakedCredentials: {
			Name: tableLeakedCredentials,
			Indexes: map[string]*memdb.IndexSchema{
				"id": {
					Name:    "id",
					Unique:  true,
					Indexer: &memdb.StringFieldIndex{Field: "ID"},
				},
				"discoveredAt": {
					Name:    "discoveredAt",
					Unique:  false,
					Indexer: &memdb.IntFieldIndex{Field: "DiscoveredAt"},
				},
			},
		},
	},
}

// Driver represents the in-memory data storage driver built using hashicorp/go-memdb.
// It holds the sample asset inventory and threat intelligence the console serves; no
// external data backend is involved.
type Driver struct {
	db      *memdb.MemDB
	assets  *AssetRepository
	threats *ThreatRepository
}

var _ storage.Driver = (*Driver)(nil)

// New creates a new empty in-memory data storage driver
func New() (*Driver, error) {
	db, err := memdb.NewMemDB(dbSchema)
	if err != nil {
		return nil, err
	}
	return &Driver{db: db}, nil
}

// Initialize builds the repositories and seeds the sample data
func (driver *Driver) Initialize(_ context.Context) error {
	driver.assets = &AssetRepository{db: driver.db}
	driver.threats = &ThreatRepository{db: driver.db}
	return driver.seed()
}

// Assets provides the in-memory asset repository implementation
func (driver *Driver) Assets() asset.Repository {
	return driver.assets
}

// Threats provides the in-memory threat intelligence repository implementation
func (driver *Driver) Threats() threat.Repository {
	return driver.threats
}

// Close closes the storage driver
func (driver *Driver) Close() {
	driver.assets = nil
	driver.threats = nil
}

func (driver *Driver) seed() error {
	txn := driver.db.Txn(true)
	defer txn.Abort()
	for _, obj := range seedAssets() {
		if err := txn.Insert(tableAssets, obj); err != nil {
			return err
		}
	}
	for _, obj := range seedIndicators() {
		if err := txn.Insert(tableThreatIndicators, obj); err != nil {
			return err
		}
	}
	for _, obj := range seedCredentials() {
		if err := txn.Insert(tableLeakedCredentials, obj); err != nil {
			return err
		}
	}
	txn.Commit()
	return nil
}

// paginationWindow applies the offset/limit semantics shared by all repositories
func paginationWindow(offset, limit uint64) (uint64, uint64) {
	if limit <= 0 {
		limit = 10
	}
	return offset, limit
}
