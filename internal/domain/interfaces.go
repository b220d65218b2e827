package domain

import "context"

// CatalogClient issues the three read operations against the remote
// catalog. Each call is exactly one network round trip; failures are
// surfaced as *FetchError. No retries at this layer.
type CatalogClient interface {
	// SearchMulti searches movies and TV shows (and other kinds,
	// which callers filter) by free text.
	SearchMulti(ctx context.Context, query string) ([]CatalogHit, error)

	// GetMovie fetches movie detail with the watch-providers block appended.
	GetMovie(ctx context.Context, id int) (*CatalogContent, error)

	// GetShow fetches show detail with the watch-providers block appended.
	GetShow(ctx context.Context, id int) (*CatalogContent, error)
}

// CacheStore is the persisted table set: content records plus
// region-scoped provider availability. No business logic.
type CacheStore interface {
	// GetContent looks up one record by (kind, id)
	GetContent(kind ContentKind, id int) (*ContentRecord, bool)

	// GetProviders returns all availability rows for (kind, id, region).
	// An unknown scope yields an empty slice, not an error.
	GetProviders(kind ContentKind, id int, region string) []ProviderRecord

	// UpsertContent writes the record and replaces the provider set for
	// (kind, id, region) as one atomic unit. Other regions' rows are
	// untouched. A concurrent reader never observes a partial set.
	UpsertContent(rec *ContentRecord, region string, providers []ProviderRecord) error

	Close() error
}

// ConfigSource exposes the user's settings. Implementations re-read
// live state on every call so region changes take effect immediately.
type ConfigSource interface {
	Region() string
	Subscriptions() []StreamingService
}
