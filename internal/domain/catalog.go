package domain

// CatalogHit is one raw entry from a catalog multi-search response.
// media_type values other than "movie" and "tv" (e.g. "person") are
// carried through and dropped by the repository.
type CatalogHit struct {
	ID           int
	MediaType    string // "movie", "tv", "person", ...
	Title        string // Movies
	Name         string // TV shows
	ReleaseDate  string // Movies, "YYYY-MM-DD"
	FirstAirDate string // TV shows, "YYYY-MM-DD"
	Overview     string
	PosterPath   string
	VoteAverage  float64
}

// CatalogContent is a raw content-by-id response with the appended
// watch-providers block, before any region scoping.
type CatalogContent struct {
	ID           int
	Title        string // Movies
	Name         string // TV shows
	ReleaseDate  string
	FirstAirDate string
	Overview     string
	PosterPath   string
	VoteAverage  float64

	// Providers maps region code to that region's offer block.
	Providers map[string]RegionOffers
}

// DisplayTitle returns whichever of Title/Name the catalog populated
func (c *CatalogContent) DisplayTitle() string {
	if c.Title != "" {
		return c.Title
	}
	return c.Name
}

// ReleaseOrAirDate returns whichever date field the catalog populated
func (c *CatalogContent) ReleaseOrAirDate() string {
	if c.ReleaseDate != "" {
		return c.ReleaseDate
	}
	return c.FirstAirDate
}

// RegionOffers is one region's block of the watch-providers payload.
// All providers in a region share the single Link field, per the
// upstream API shape. Non-subscription tiers (rent, buy) are carried
// so the repository can exclude them explicitly.
type RegionOffers struct {
	Link     string
	Flatrate []ProviderOffer
	Rent     []ProviderOffer
	Buy      []ProviderOffer
}

// ProviderOffer identifies one provider inside a monetization tier
type ProviderOffer struct {
	ProviderID   int
	ProviderName string
}
