package tmdb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mmcdole/streamscout/internal/domain"
	"github.com/mmcdole/streamscout/internal/log"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(srv.URL, "test-token", log.NullLogger())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client, srv
}

func TestNewClientRequiresToken(t *testing.T) {
	_, err := NewClient("https://api.themoviedb.org/3", "", log.NullLogger())
	if !errors.Is(err, domain.ErrMissingToken) {
		t.Errorf("err: got %v, want ErrMissingToken", err)
	}
}

func TestSearchMulti(t *testing.T) {
	var gotAuth, gotQuery, gotPath string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.Query().Get("query")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"page": 1,
			"results": [
				{"id": 603, "media_type": "movie", "title": "The Matrix", "release_date": "1999-03-31", "vote_average": 8.2},
				{"id": 1396, "media_type": "tv", "name": "Breaking Bad", "first_air_date": "2008-01-20"}
			],
			"total_pages": 1,
			"total_results": 2
		}`))
	})

	hits, err := client.SearchMulti(context.Background(), "matrix")
	if err != nil {
		t.Fatalf("SearchMulti: %v", err)
	}

	if gotAuth != "Bearer test-token" {
		t.Errorf("Authorization: got %q", gotAuth)
	}
	if gotPath != "/search/multi" {
		t.Errorf("path: got %q", gotPath)
	}
	if gotQuery != "matrix" {
		t.Errorf("query param: got %q", gotQuery)
	}

	if len(hits) != 2 {
		t.Fatalf("got %d hits, want 2", len(hits))
	}
	if hits[0].ID != 603 || hits[0].MediaType != "movie" || hits[0].Title != "The Matrix" {
		t.Errorf("movie hit: %+v", hits[0])
	}
	if hits[1].MediaType != "tv" || hits[1].Name != "Breaking Bad" || hits[1].FirstAirDate != "2008-01-20" {
		t.Errorf("tv hit: %+v", hits[1])
	}
}

func TestGetMovieAppendsProviders(t *testing.T) {
	var gotAppend, gotPath string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAppend = r.URL.Query().Get("append_to_response")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": 603,
			"title": "The Matrix",
			"release_date": "1999-03-31",
			"overview": "A hacker learns the truth.",
			"vote_average": 8.2,
			"watch/providers": {
				"results": {
					"US": {
						"link": "https://www.themoviedb.org/movie/603/watch?locale=US",
						"flatrate": [{"provider_id": 8, "provider_name": "Netflix"}],
						"rent": [{"provider_id": 2, "provider_name": "Apple TV"}]
					}
				}
			}
		}`))
	})

	content, err := client.GetMovie(context.Background(), 603)
	if err != nil {
		t.Fatalf("GetMovie: %v", err)
	}

	if gotPath != "/movie/603" {
		t.Errorf("path: got %q", gotPath)
	}
	if gotAppend != "watch/providers" {
		t.Errorf("append_to_response: got %q", gotAppend)
	}

	if content.ID != 603 || content.Title != "The Matrix" {
		t.Errorf("content: %+v", content)
	}
	us, ok := content.Providers["US"]
	if !ok {
		t.Fatalf("missing US offers: %+v", content.Providers)
	}
	if len(us.Flatrate) != 1 || us.Flatrate[0].ProviderName != "Netflix" {
		t.Errorf("flatrate: %+v", us.Flatrate)
	}
	if len(us.Rent) != 1 {
		t.Errorf("rent: %+v", us.Rent)
	}
	if us.Link == "" {
		t.Error("region link missing")
	}
}

func TestGetShowPath(t *testing.T) {
	var gotPath string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"id": 1396, "name": "Breaking Bad", "first_air_date": "2008-01-20"}`))
	})

	content, err := client.GetShow(context.Background(), 1396)
	if err != nil {
		t.Fatalf("GetShow: %v", err)
	}
	if gotPath != "/tv/1396" {
		t.Errorf("path: got %q", gotPath)
	}
	if content.Name != "Breaking Bad" {
		t.Errorf("content: %+v", content)
	}
	if content.Providers != nil {
		t.Errorf("providers should be nil without the appended block: %+v", content.Providers)
	}
}

func TestStatusErrorClassification(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})

	_, err := client.GetMovie(context.Background(), 999)
	fe, ok := domain.AsFetchError(err)
	if !ok {
		t.Fatalf("expected *FetchError, got %v", err)
	}
	if fe.Kind != domain.FailureStatus || fe.StatusCode != 404 {
		t.Errorf("error: %+v, want status 404", fe)
	}
}

func TestTimeoutClassification(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{}`))
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := client.GetMovie(ctx, 603)
	fe, ok := domain.AsFetchError(err)
	if !ok {
		t.Fatalf("expected *FetchError, got %v", err)
	}
	if fe.Kind != domain.FailureTimeout {
		t.Errorf("Kind: got %v, want FailureTimeout", fe.Kind)
	}
}

func TestMalformedBodyIsFetchError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": "not a number"`))
	})

	_, err := client.SearchMulti(context.Background(), "matrix")
	fe, ok := domain.AsFetchError(err)
	if !ok {
		t.Fatalf("expected *FetchError, got %v", err)
	}
	if fe.Kind != domain.FailureOther {
		t.Errorf("Kind: got %v, want FailureOther", fe.Kind)
	}
}
