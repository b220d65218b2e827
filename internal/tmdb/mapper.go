package tmdb

import "github.com/mmcdole/streamscout/internal/domain"

// mapHits converts search DTOs to domain catalog hits
func mapHits(hits []searchHit) []domain.CatalogHit {
	out := make([]domain.CatalogHit, 0, len(hits))
	for _, h := range hits {
		out = append(out, domain.CatalogHit{
			ID:           h.ID,
			MediaType:    h.MediaType,
			Title:        h.Title,
			Name:         h.Name,
			ReleaseDate:  h.ReleaseDate,
			FirstAirDate: h.FirstAirDate,
			Overview:     h.Overview,
			PosterPath:   h.PosterPath,
			VoteAverage:  h.VoteAverage,
		})
	}
	return out
}

// mapContent converts a content DTO to a domain catalog content value
func mapContent(resp *contentResponse) *domain.CatalogContent {
	content := &domain.CatalogContent{
		ID:           resp.ID,
		Title:        resp.Title,
		Name:         resp.Name,
		ReleaseDate:  resp.ReleaseDate,
		FirstAirDate: resp.FirstAirDate,
		Overview:     resp.Overview,
		PosterPath:   resp.PosterPath,
		VoteAverage:  resp.VoteAverage,
	}

	if resp.WatchProviders == nil {
		return content
	}

	content.Providers = make(map[string]domain.RegionOffers, len(resp.WatchProviders.Results))
	for region, offers := range resp.WatchProviders.Results {
		content.Providers[region] = domain.RegionOffers{
			Link:     offers.Link,
			Flatrate: mapOffers(offers.Flatrate),
			Rent:     mapOffers(offers.Rent),
			Buy:      mapOffers(offers.Buy),
		}
	}
	return content
}

func mapOffers(providers []provider) []domain.ProviderOffer {
	if len(providers) == 0 {
		return nil
	}
	out := make([]domain.ProviderOffer, len(providers))
	for i, p := range providers {
		out[i] = domain.ProviderOffer{ProviderID: p.ProviderID, ProviderName: p.ProviderName}
	}
	return out
}
