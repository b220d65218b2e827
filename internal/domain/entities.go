package domain

import (
	"fmt"
	"time"
)

// ContentKind distinguishes content types
type ContentKind int

const (
	KindMovie ContentKind = iota
	KindShow
)

// String returns the canonical kind name used in cache keys and config
func (k ContentKind) String() string {
	switch k {
	case KindMovie:
		return "movie"
	case KindShow:
		return "show"
	default:
		return "unknown"
	}
}

// ParseKind converts a kind name back to a ContentKind
func ParseKind(s string) (ContentKind, bool) {
	switch s {
	case "movie":
		return KindMovie, true
	case "show":
		return KindShow, true
	default:
		return 0, false
	}
}

// SearchHit is a minimal search result from the catalog. Never persisted.
type SearchHit struct {
	ID         int         // Catalog-assigned identifier
	Title      string      // Display title
	Year       int         // Release/first-air year (0 = unknown)
	Kind       ContentKind // Movie or Show
	PosterPath string      // Relative poster path on the image CDN
	Rating     float64     // Community rating (0-10 scale)
}

// GetDescription returns secondary info for list display
func (h SearchHit) GetDescription() string {
	if h.Year > 0 {
		return fmt.Sprintf("%d", h.Year)
	}
	return h.Kind.String()
}

// StreamingProvider is one subscription provider carrying a piece of content
type StreamingProvider struct {
	ProviderID   int    // Catalog provider ID
	ProviderName string // e.g. "Netflix"
	Link         string // Region watch link (shared across the region block)
}

// ContentDetail is the full view of a movie or show plus its providers
// for one region. Built fresh on every repository read, never persisted.
type ContentDetail struct {
	ID         int
	Kind       ContentKind
	Title      string
	Year       int // 0 = unknown
	Overview   string
	Rating     float64
	PosterPath string
	Providers  []StreamingProvider
}

// ContentRecord is the persisted cache row for one (kind, id).
// Mutated only by repository upsert; lives until overwritten.
type ContentRecord struct {
	Kind       ContentKind `json:"kind"`
	ID         int         `json:"id"`
	Title      string      `json:"title"`
	Year       int         `json:"year,omitempty"`
	Overview   string      `json:"overview,omitempty"`
	Rating     float64     `json:"rating,omitempty"`
	PosterPath string      `json:"poster_path,omitempty"`
	CachedAt   time.Time   `json:"cached_at"`
}

// ProviderRecord is the persisted availability row for one provider of
// one piece of content in one region. The full set for a
// (kind, content_id, region) scope is replaced as a unit on refresh.
type ProviderRecord struct {
	Kind         ContentKind `json:"kind"`
	ContentID    int         `json:"content_id"`
	ProviderID   int         `json:"provider_id"`
	ProviderName string      `json:"provider_name"`
	Region       string      `json:"region"`
	Link         string      `json:"link"`
	CachedAt     time.Time   `json:"cached_at"`
}
