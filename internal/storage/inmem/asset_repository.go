package inmem

import (
	"context"

	"github.com/hashicorp/go-memdb"

	"github.com/quantashield/console/internal/asset"
)

// AssetRepository implements the asset repository API using go-memdb
type AssetRepository struct {
	db *memdb.MemDB
}

var _ asset.Repository = (*AssetRepository)(nil)

// GetByFilter retrieves multiple assets following a filter, ordered by their name
func (repo *AssetRepository) GetByFilter(_ context.Context, filter *asset.Filter, offset, limit uint64) ([]*asset.Asset, uint64, error) {
	offset, limit = paginationWindow(offset, limit)

	txn := repo.db.Txn(false)
	it, err := txn.Get(tableAssets, "name")
	if err != nil {
		return nil, 0, err
	}

	var (
		matched uint64
		page    []*asset.Asset
	)
	for obj := it.Next(); obj != nil; obj = it.Next() {
		entry := obj.(*asset.Asset)
		if !matchesAssetFilter(entry, filter) {
			continue
		}
		if matched >= offset && uint64(len(page)) < limit {
			page = append(page, entry)
		}
		matched++
	}
	return page, matched, nil
}

// GetByID retrieves an asset by its ID
func (repo *AssetRepository) GetByID(_ context.Context, id string) (*asset.Asset, error) {
	txn := repo.db.Txn(false)
	obj, err := txn.First(tableAssets, "id", id)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, nil
	}
	return obj.(*asset.Asset), nil
}

// Count returns the total amount of inventoried assets
func (repo *AssetRepository) Count(_ context.Context) (uint64, error) {
	txn := repo.db.Txn(false)
	it, err := txn.Get(tableAssets, "id")
	if err != nil {
		return 0, err
	}
	var n uint64
	for obj := it.Next(); obj != nil; obj = it.Next() {
		n++
	}
	return n, nil
}

// CountByType returns the amount of inventoried assets grouped by their type
func (repo *AssetRepository) CountByType(_ context.Context) (map[string]uint64, error) {
	txn := repo.db.Txn(false)
	it, err := txn.Get(tableAssets, "id")
	if err != nil {
		return nil, err
	}
	counts := map[string]uint64{}
	for obj := it.Next(); obj != nil; obj = it.Next() {
		counts[obj.(*asset.Asset).Type]++
	}
	return counts, nil
}

func matchesAssetFilter(entry *asset.Asset, filter *asset.Filter) bool {
	if filter == nil {
		return true
	}
	if filter.Type != nil && entry.Type != *filter.Type {
		return false
	}
	if filter.Criticality != nil && entry.Criticality != *filter.Criticality {
		return false
	}
	if filter.Status != nil && entry.Status != *filter.Status {
		return false
	}
	return true
}
