package inmem

import (
	"context"

	"github.com/hashicorp/go-memdb"

	"github.com/quantashield/console/internal/threat"
)

// ThreatRepository implements the threat intelligence repository API using go-memdb
type ThreatRepository struct {
	db *memdb.MemDB
}

var _ threat.Repository = (*ThreatRepository)(nil)

// GetIndicators retrieves multiple indicators following a filter, ordered by their
// last-seen timestamp (descending)
func (repo *ThreatRepository) GetIndicators(_ context.Context, filter *threat.IndicatorFilter, offset, limit uint64) ([]*threat.Indicator, uint64, error) {
	offset, limit = paginationWindow(offset, limit)

	txn := repo.db.Txn(false)
	it, err := txn.GetReverse(tableThreatIndicators, "lastSeen")
	if err != nil {
		return nil, 0, err
	}

	var (
		matched uint64
		page    []*threat.Indicator
	)
	for obj := it.Next(); obj != nil; obj = it.Next() {
		entry := obj.(*threat.Indicator)
		if !matchesIndicatorFilter(entry, filter) {
			continue
		}
		if matched >= offset && uint64(len(page)) < limit {
			page = append(page, entry)
		}
		matched++
	}
	return page, matched, nil
}

// GetCredentials retrieves leaked credentials ordered by their discovery timestamp (descending)
func (repo *ThreatRepository) GetCredentials(_ context.Context, offset, limit uint64) ([]*threat.LeakedCredential, uint64, error) {
	offset, limit = paginationWindow(offset, limit)

	txn := repo.db.Txn(false)
	it, err := txn.GetReverse(tableLeakedCredentials, "discoveredAt")
	if err != nil {
		return nil, 0, err
	}

	var (
		total uint64
		page  []*threat.LeakedCredential
	)
	for obj := it.Next(); obj != nil; obj = it.Next() {
		if total >= offset && uint64(len(page)) < limit {
			page = append(page, obj.(*threat.LeakedCredential))
		}
		total++
	}
	return page, total, nil
}

// CountActiveIndicators returns the amount of indicators currently flagged active
func (repo *ThreatRepository) CountActiveIndicators(_ context.Context) (uint64, error) {
	txn := repo.db.Txn(false)
	it, err := txn.Get(tableThreatIndicators, "id")
	if err != nil {
		return 0, err
	}
	var n uint64
	for obj := it.Next(); obj != nil; obj = it.Next() {
		if obj.(*threat.Indicator).Active {
			n++
		}
	}
	return n, nil
}

// CountCredentialsSince returns the amount of credentials discovered at or after the given
// Unix timestamp
func (repo *ThreatRepository) CountCredentialsSince(_ context.Context, since int64) (uint64, error) {
	txn := repo.db.Txn(false)
	it, err := txn.Get(tableLeakedCredentials, "id")
	if err != nil {
		return 0, err
	}
	var n uint64
	for obj := it.Next(); obj != nil; obj = it.Next() {
		if obj.(*threat.LeakedCredential).DiscoveredAt >= since {
			n++
		}
	}
	return n, nil
}

func matchesIndicatorFilter(entry *threat.Indicator, filter *threat.IndicatorFilter) bool {
	if filter == nil {
		return true
	}
	if filter.Type != nil && entry.Type != *filter.Type {
		return false
	}
	if filter.ThreatType != nil && entry.ThreatType != *filter.ThreatType {
		return false
	}
	if filter.Active != nil && entry.Active != *filter.Active {
		return false
	}
	return true
}
