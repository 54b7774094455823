package asset

import "context"

// Repository defines the asset inventory repository API
type Repository interface {
	// GetByFilter retrieves multiple assets following a filter, ordered by their name.
	// If limit <= 0, a default limit value of 10 is used.
	GetByFilter(ctx context.Context, filter *Filter, offset, limit uint64) ([]*Asset, uint64, error)

	// GetByID retrieves an asset by its ID
	GetByID(ctx context.Context, id string) (*Asset, error)

	// Count returns the total amount of inventoried assets
	Count(ctx context.Context) (uint64, error)

	// CountByType returns the amount of inventoried assets grouped by their type
	CountByType(ctx context.Context) (map[string]uint64, error)
}

// Filter is used to query assets based on a filter
type Filter struct {
	Type        *string
	Criticality *string
	Status      *string
}
