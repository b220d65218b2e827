package tmdb

// searchMultiResponse is the root of a /search/multi response
type searchMultiResponse struct {
	Page         int         `json:"page"`
	Results      []searchHit `json:"results"`
	TotalPages   int         `json:"total_pages"`
	TotalResults int         `json:"total_results"`
}

// searchHit is one multi-search result of any media type
type searchHit struct {
	ID           int     `json:"id"`
	MediaType    string  `json:"media_type"`
	Title        string  `json:"title,omitempty"`
	Name         string  `json:"name,omitempty"`
	ReleaseDate  string  `json:"release_date,omitempty"`
	FirstAirDate string  `json:"first_air_date,omitempty"`
	Overview     string  `json:"overview,omitempty"`
	PosterPath   string  `json:"poster_path,omitempty"`
	VoteAverage  float64 `json:"vote_average,omitempty"`
}

// contentResponse is a /movie/{id} or /tv/{id} response with
// append_to_response=watch/providers
type contentResponse struct {
	ID             int             `json:"id"`
	Title          string          `json:"title,omitempty"`
	Name           string          `json:"name,omitempty"`
	ReleaseDate    string          `json:"release_date,omitempty"`
	FirstAirDate   string          `json:"first_air_date,omitempty"`
	Overview       string          `json:"overview,omitempty"`
	PosterPath     string          `json:"poster_path,omitempty"`
	VoteAverage    float64         `json:"vote_average,omitempty"`
	WatchProviders *watchProviders `json:"watch/providers,omitempty"`
}

// watchProviders is the appended provider availability block, keyed by
// region code
type watchProviders struct {
	Results map[string]regionOffers `json:"results"`
}

// regionOffers is one region's offers. The link is shared by every
// provider in the region.
type regionOffers struct {
	Link     string     `json:"link,omitempty"`
	Flatrate []provider `json:"flatrate,omitempty"`
	Rent     []provider `json:"rent,omitempty"`
	Buy      []provider `json:"buy,omitempty"`
}

// provider is one entry in a monetization tier
type provider struct {
	ProviderID   int    `json:"provider_id"`
	ProviderName string `json:"provider_name"`
	LogoPath     string `json:"logo_path,omitempty"`
}
