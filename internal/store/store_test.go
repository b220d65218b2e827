package store

import (
	"testing"
	"time"

	"github.com/mmcdole/streamscout/internal/domain"
)

func testRecord(id int, title string) *domain.ContentRecord {
	return &domain.ContentRecord{
		Kind:     domain.KindMovie,
		ID:       id,
		Title:    title,
		Year:     1999,
		Rating:   8.2,
		CachedAt: time.Now().UTC().Truncate(time.Second),
	}
}

func testProviders(id int, region string, names ...string) []domain.ProviderRecord {
	recs := make([]domain.ProviderRecord, len(names))
	for i, name := range names {
		recs[i] = domain.ProviderRecord{
			Kind:         domain.KindMovie,
			ContentID:    id,
			ProviderID:   i + 1,
			ProviderName: name,
			Region:       region,
			Link:         "https://tmdb/watch",
			CachedAt:     time.Now().UTC().Truncate(time.Second),
		}
	}
	return recs
}

func TestContentRoundTrip(t *testing.T) {
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	defer s.Close()

	rec := testRecord(603, "The Matrix")
	if err := s.UpsertContent(rec, "US", testProviders(603, "US", "Netflix")); err != nil {
		t.Fatalf("UpsertContent: %v", err)
	}

	got, ok := s.GetContent(domain.KindMovie, 603)
	if !ok {
		t.Fatal("GetContent: record not found")
	}
	if got.Title != "The Matrix" || got.Year != 1999 || got.Rating != 8.2 {
		t.Errorf("record: %+v", got)
	}
	if !got.CachedAt.Equal(rec.CachedAt) {
		t.Errorf("CachedAt: got %v, want %v", got.CachedAt, rec.CachedAt)
	}

	provs := s.GetProviders(domain.KindMovie, 603, "US")
	if len(provs) != 1 || provs[0].ProviderName != "Netflix" {
		t.Errorf("providers: %+v", provs)
	}
}

func TestMissingContent(t *testing.T) {
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	defer s.Close()

	if _, ok := s.GetContent(domain.KindMovie, 999); ok {
		t.Error("GetContent: expected miss")
	}
	if provs := s.GetProviders(domain.KindMovie, 999, "US"); len(provs) != 0 {
		t.Errorf("GetProviders: expected empty, got %+v", provs)
	}
}

func TestKindSeparatesKeys(t *testing.T) {
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	defer s.Close()

	movie := testRecord(100, "Some Movie")
	show := &domain.ContentRecord{Kind: domain.KindShow, ID: 100, Title: "Some Show", CachedAt: time.Now()}
	if err := s.UpsertContent(movie, "US", nil); err != nil {
		t.Fatalf("upsert movie: %v", err)
	}
	if err := s.UpsertContent(show, "US", nil); err != nil {
		t.Fatalf("upsert show: %v", err)
	}

	gotMovie, ok := s.GetContent(domain.KindMovie, 100)
	if !ok || gotMovie.Title != "Some Movie" {
		t.Errorf("movie: %+v", gotMovie)
	}
	gotShow, ok := s.GetContent(domain.KindShow, 100)
	if !ok || gotShow.Title != "Some Show" {
		t.Errorf("show: %+v", gotShow)
	}
}

func TestProviderSetReplaced(t *testing.T) {
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	defer s.Close()

	rec := testRecord(603, "The Matrix")
	if err := s.UpsertContent(rec, "US", testProviders(603, "US", "Netflix", "Max")); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if err := s.UpsertContent(rec, "US", testProviders(603, "US", "Disney Plus")); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	provs := s.GetProviders(domain.KindMovie, 603, "US")
	if len(provs) != 1 || provs[0].ProviderName != "Disney Plus" {
		t.Errorf("providers after replace: %+v", provs)
	}
}

func TestProviderSetReplacedToEmpty(t *testing.T) {
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	defer s.Close()

	rec := testRecord(603, "The Matrix")
	if err := s.UpsertContent(rec, "US", testProviders(603, "US", "Netflix")); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if err := s.UpsertContent(rec, "US", nil); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	if provs := s.GetProviders(domain.KindMovie, 603, "US"); len(provs) != 0 {
		t.Errorf("expected empty set after replace, got %+v", provs)
	}
}

func TestRegionKeysIndependent(t *testing.T) {
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	defer s.Close()

	rec := testRecord(603, "The Matrix")
	if err := s.UpsertContent(rec, "US", testProviders(603, "US", "Netflix")); err != nil {
		t.Fatalf("US upsert: %v", err)
	}
	if err := s.UpsertContent(rec, "DK", testProviders(603, "DK", "Viaplay")); err != nil {
		t.Fatalf("DK upsert: %v", err)
	}

	us := s.GetProviders(domain.KindMovie, 603, "US")
	if len(us) != 1 || us[0].ProviderName != "Netflix" {
		t.Errorf("US providers: %+v", us)
	}
	dk := s.GetProviders(domain.KindMovie, 603, "DK")
	if len(dk) != 1 || dk[0].ProviderName != "Viaplay" {
		t.Errorf("DK providers: %+v", dk)
	}
}

func TestPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if err := s.UpsertContent(testRecord(603, "The Matrix"), "US", testProviders(603, "US", "Netflix")); err != nil {
		t.Fatalf("UpsertContent: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s2, err := NewStore(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()

	got, ok := s2.GetContent(domain.KindMovie, 603)
	if !ok || got.Title != "The Matrix" {
		t.Errorf("after reopen: %+v", got)
	}
	if provs := s2.GetProviders(domain.KindMovie, 603, "US"); len(provs) != 1 {
		t.Errorf("providers after reopen: %+v", provs)
	}
}

func TestMemoryOnlyStore(t *testing.T) {
	s, err := NewStore("")
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	defer s.Close()

	if err := s.UpsertContent(testRecord(603, "The Matrix"), "US", testProviders(603, "US", "Netflix")); err != nil {
		t.Fatalf("UpsertContent: %v", err)
	}

	got, ok := s.GetContent(domain.KindMovie, 603)
	if !ok || got.Title != "The Matrix" {
		t.Errorf("memory store: %+v", got)
	}
}
