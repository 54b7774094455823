package threat

import "context"

// Repository defines the threat intelligence repository API
type Repository interface {
	// GetIndicators retrieves multiple indicators following a filter, ordered by their
	// last-seen timestamp (descending). If limit <= 0, a default limit value of 10 is used.
	GetIndicators(ctx context.Context, filter *IndicatorFilter, offset, limit uint64) ([]*Indicator, uint64, error)

	// GetCredentials retrieves leaked credentials ordered by their discovery timestamp
	// (descending). If limit <= 0, a default limit value of 10 is used.
	GetCredentials(ctx context.Context, offset, limit uint64) ([]*LeakedCredential, uint64, error)

	// CountActiveIndicators returns the amount of indicators currently flagged active
	CountActiveIndicators(ctx context.Context) (uint64, error)

	// CountCredentialsSince returns the amount of credentials discovered at or after the
	// given Unix timestamp
	CountCredentialsSince(ctx context.Context, since int64) (uint64, error)
}

// IndicatorFilter is used to query indicators based on a filter
type IndicatorFilter struct {
	Type       *string
	ThreatType *string
	Active     *bool
}
