package search

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/mmcdole/streamscout/internal/domain"
)

// MinQueryLength is the shortest query worth a network round trip
const MinQueryLength = 2

// User-facing failure messages, one per failure class
const (
	msgTimeout = "Connection timed out. Check your network and try again."
	msgGeneric = "Search failed. Please try again."
)

// ContentSource resolves search hits into full details. Implemented by
// the content repository.
type ContentSource interface {
	Search(ctx context.Context, query string) ([]domain.SearchHit, error)
	Get(ctx context.Context, kind domain.ContentKind, id int) (*domain.ContentDetail, error)
}

// ContentItem is one search result with its resolved services
type ContentItem struct {
	ID         int
	Title      string
	Year       int
	Kind       domain.ContentKind
	PosterPath string
	Overview   string
	Rating     float64
	Services   []domain.StreamingService
	WatchURLs  map[domain.StreamingService]string
}

// Results is a search outcome partitioned by subscription availability.
// Err carries a user-facing message; search failures never surface as
// Go errors past this boundary.
type Results struct {
	Available []ContentItem
	Other     []ContentItem
	Err       string
}

// Aggregator turns a free-text query into partitioned results
type Aggregator struct {
	source ContentSource
	logger *slog.Logger
}

// NewAggregator creates a search aggregator
func NewAggregator(source ContentSource, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{source: source, logger: logger}
}

// Search fetches matches for the query, resolves each one's live
// providers, and splits the results by the user's subscriptions.
//
// Queries shorter than MinQueryLength return an empty result with no
// network call. A failed search comes back as a message in Results.Err.
// A failed per-item resolution skips that item and continues the batch.
func (a *Aggregator) Search(ctx context.Context, query string, subscribed []domain.StreamingService) Results {
	if len(query) < MinQueryLength {
		return Results{}
	}

	hits, err := a.source.Search(ctx, query)
	if err != nil {
		a.logger.Error("search failed", "query", query, "error", err)
		return Results{Err: classifyFailure(err)}
	}

	hits = rankHits(hits, query)

	var results Results
	subs := make(map[domain.StreamingService]bool, len(subscribed))
	for _, s := range subscribed {
		subs[s] = true
	}

	for _, hit := range hits {
		detail, err := a.source.Get(ctx, hit.Kind, hit.ID)
		if err != nil {
			// One bad item must not sink the whole search
			a.logger.Warn("skipping unresolvable item", "kind", hit.Kind.String(), "id", hit.ID, "error", err)
			continue
		}

		item := ContentItem{
			ID:         detail.ID,
			Title:      detail.Title,
			Year:       detail.Year,
			Kind:       detail.Kind,
			PosterPath: detail.PosterPath,
			Overview:   detail.Overview,
			Rating:     detail.Rating,
			WatchURLs:  make(map[domain.StreamingService]string),
		}

		matched := mapServices(detail.Providers, item.WatchURLs)

		subscribedMatches := make([]domain.StreamingService, 0, len(matched))
		for _, svc := range matched {
			if subs[svc] {
				subscribedMatches = append(subscribedMatches, svc)
			}
		}

		if len(subscribedMatches) > 0 {
			item.Services = subscribedMatches
			results.Available = append(results.Available, item)
		} else {
			item.Services = []domain.StreamingService{}
			results.Other = append(results.Other, item)
		}
	}

	return results
}

// mapServices converts provider names to services via the closed name
// table, dropping unmapped providers and deduplicating while keeping
// first-seen order. Watch links are recorded per mapped service.
func mapServices(providers []domain.StreamingProvider, watchURLs map[domain.StreamingService]string) []domain.StreamingService {
	seen := make(map[domain.StreamingService]bool, len(providers))
	matched := make([]domain.StreamingService, 0, len(providers))
	for _, p := range providers {
		svc, ok := domain.ServiceForProvider(p.ProviderName)
		if !ok || seen[svc] {
			continue
		}
		seen[svc] = true
		matched = append(matched, svc)
		if p.Link != "" {
			watchURLs[svc] = p.Link
		}
	}
	return matched
}

// classifyFailure maps a fetch failure to its user-facing message
func classifyFailure(err error) string {
	fe, ok := domain.AsFetchError(err)
	if !ok {
		return msgGeneric
	}
	switch fe.Kind {
	case domain.FailureTimeout:
		return msgTimeout
	case domain.FailureStatus:
		return fmt.Sprintf("Search failed (HTTP %d). Please try again later.", fe.StatusCode)
	default:
		return msgGeneric
	}
}

// rankHits orders hits by query relevance. Exact title matches first,
// then prefix, then substring, then by edit distance.
func rankHits(hits []domain.SearchHit, query string) []domain.SearchHit {
	if len(hits) < 2 {
		return hits
	}

	query = strings.ToLower(query)

	type rankedHit struct {
		hit   domain.SearchHit
		score int
	}

	ranked := make([]rankedHit, len(hits))
	for i, hit := range hits {
		ranked[i] = rankedHit{hit: hit, score: matchScore(strings.ToLower(hit.Title), query)}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score < ranked[j].score
	})

	out := make([]domain.SearchHit, len(ranked))
	for i, r := range ranked {
		out[i] = r.hit
	}
	return out
}

// matchScore scores a title against the query. Lower is better.
func matchScore(title, query string) int {
	if title == query {
		return 0
	}
	if strings.HasPrefix(title, query) {
		return 10
	}
	if strings.Contains(title, query) {
		return 50
	}
	return 100 + fuzzy.LevenshteinDistance(query, title)
}
