package repository

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/mmcdole/streamscout/internal/domain"
)

// cacheTTL is how long a cached content record is trusted before it
// must be revalidated against the catalog.
const cacheTTL = 30 * 24 * time.Hour

// Repository mediates between the catalog client and the cache store.
// It decides per item whether to trust the cache, fetches live data
// when it cannot, and falls back to stale data when a fetch fails.
type Repository struct {
	client domain.CatalogClient
	store  domain.CacheStore
	cfg    domain.ConfigSource
	logger *slog.Logger

	// now is injectable for freshness-boundary tests
	now func() time.Time
}

// New creates a repository. The store's schema is created by its own
// constructor; nothing else is lazily initialized.
func New(client domain.CatalogClient, store domain.CacheStore, cfg domain.ConfigSource, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		client: client,
		store:  store,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// isFresh reports whether a record cached at cachedAt is still trusted.
// The inequality is strict: a record exactly cacheTTL old is stale.
func (r *Repository) isFresh(cachedAt time.Time) bool {
	return r.now().Before(cachedAt.Add(cacheTTL))
}

// Get returns full detail for (kind, id) in the user's region.
//
// Fresh cache hits return without any network call. A stale or missing
// record triggers a live fetch; on success the record and the region's
// provider set are replaced atomically. If the fetch fails and any
// cached record exists, even a stale one, it is returned instead of the
// error. With no cached record the failure propagates unchanged.
func (r *Repository) Get(ctx context.Context, kind domain.ContentKind, id int) (*domain.ContentDetail, error) {
	region := r.cfg.Region()

	if rec, ok := r.store.GetContent(kind, id); ok && r.isFresh(rec.CachedAt) {
		r.logger.Debug("cache hit", "kind", kind.String(), "id", id)
		return r.detailFromRecord(rec, region), nil
	}

	detail, err := r.fetchAndCache(ctx, kind, id, region)
	if err == nil {
		return detail, nil
	}

	// Stale fallback: any cached record beats a failed fetch.
	if rec, ok := r.store.GetContent(kind, id); ok {
		r.logger.Warn("fetch failed, serving stale cache", "kind", kind.String(), "id", id, "error", err)
		return r.detailFromRecord(rec, region), nil
	}

	return nil, err
}

// GetMovie returns full movie detail for the user's region
func (r *Repository) GetMovie(ctx context.Context, id int) (*domain.ContentDetail, error) {
	return r.Get(ctx, domain.KindMovie, id)
}

// GetShow returns full show detail for the user's region
func (r *Repository) GetShow(ctx context.Context, id int) (*domain.ContentDetail, error) {
	return r.Get(ctx, domain.KindShow, id)
}

// Refresh fetches live data unconditionally, bypassing the freshness
// check. A failed refresh propagates; there is no stale fallback here.
func (r *Repository) Refresh(ctx context.Context, kind domain.ContentKind, id int) (*domain.ContentDetail, error) {
	return r.fetchAndCache(ctx, kind, id, r.cfg.Region())
}

// fetchAndCache performs the live fetch + atomic upsert success path
func (r *Repository) fetchAndCache(ctx context.Context, kind domain.ContentKind, id int, region string) (*domain.ContentDetail, error) {
	var (
		content *domain.CatalogContent
		err     error
	)
	switch kind {
	case domain.KindMovie:
		content, err = r.client.GetMovie(ctx, id)
	default:
		content, err = r.client.GetShow(ctx, id)
	}
	if err != nil {
		return nil, err
	}

	now := r.now()
	providers := parseProviders(content.Providers, region)

	rec := &domain.ContentRecord{
		Kind:       kind,
		ID:         content.ID,
		Title:      content.DisplayTitle(),
		Year:       extractYear(content.ReleaseOrAirDate()),
		Overview:   content.Overview,
		Rating:     content.VoteAverage,
		PosterPath: content.PosterPath,
		CachedAt:   now,
	}

	provRecs := make([]domain.ProviderRecord, len(providers))
	for i, p := range providers {
		provRecs[i] = domain.ProviderRecord{
			Kind:         kind,
			ContentID:    content.ID,
			ProviderID:   p.ProviderID,
			ProviderName: p.ProviderName,
			Region:       region,
			Link:         p.Link,
			CachedAt:     now,
		}
	}

	if err := r.store.UpsertContent(rec, region, provRecs); err != nil {
		r.logger.Error("failed to cache content", "kind", kind.String(), "id", id, "error", err)
	}

	return &domain.ContentDetail{
		ID:         rec.ID,
		Kind:       kind,
		Title:      rec.Title,
		Year:       rec.Year,
		Overview:   rec.Overview,
		Rating:     rec.Rating,
		PosterPath: rec.PosterPath,
		Providers:  providers,
	}, nil
}

// detailFromRecord builds a ContentDetail purely from cached data
func (r *Repository) detailFromRecord(rec *domain.ContentRecord, region string) *domain.ContentDetail {
	cached := r.store.GetProviders(rec.Kind, rec.ID, region)
	providers := make([]domain.StreamingProvider, len(cached))
	for i, p := range cached {
		providers[i] = domain.StreamingProvider{
			ProviderID:   p.ProviderID,
			ProviderName: p.ProviderName,
			Link:         p.Link,
		}
	}
	return &domain.ContentDetail{
		ID:         rec.ID,
		Kind:       rec.Kind,
		Title:      rec.Title,
		Year:       rec.Year,
		Overview:   rec.Overview,
		Rating:     rec.Rating,
		PosterPath: rec.PosterPath,
		Providers:  providers,
	}
}

// Search runs a live multi-search. Search results are too volatile to
// cache, so this never touches the store. Hits that are neither movies
// nor TV shows (e.g. people) are dropped.
func (r *Repository) Search(ctx context.Context, query string) ([]domain.SearchHit, error) {
	raw, err := r.client.SearchMulti(ctx, query)
	if err != nil {
		return nil, err
	}

	hits := make([]domain.SearchHit, 0, len(raw))
	for _, item := range raw {
		switch item.MediaType {
		case "movie":
			hits = append(hits, domain.SearchHit{
				ID:         item.ID,
				Title:      item.Title,
				Year:       extractYear(item.ReleaseDate),
				Kind:       domain.KindMovie,
				PosterPath: item.PosterPath,
				Rating:     item.VoteAverage,
			})
		case "tv":
			hits = append(hits, domain.SearchHit{
				ID:         item.ID,
				Title:      item.Name,
				Year:       extractYear(item.FirstAirDate),
				Kind:       domain.KindShow,
				PosterPath: item.PosterPath,
				Rating:     item.VoteAverage,
			})
		}
	}
	return hits, nil
}

// parseProviders selects the subscription-tier providers for one region
// from the raw watch-providers block. Rental and purchase tiers are
// excluded. An absent region yields an empty result. Every provider in
// a region shares the region's single link.
func parseProviders(blocks map[string]domain.RegionOffers, region string) []domain.StreamingProvider {
	offers, ok := blocks[region]
	if !ok {
		return nil
	}

	providers := make([]domain.StreamingProvider, 0, len(offers.Flatrate))
	for _, p := range offers.Flatrate {
		providers = append(providers, domain.StreamingProvider{
			ProviderID:   p.ProviderID,
			ProviderName: p.ProviderName,
			Link:         offers.Link,
		})
	}
	return providers
}

// extractYear pulls the leading year out of a "YYYY-MM-DD" date string.
// Absent or malformed input yields 0, never an error.
func extractYear(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}
