package app_test

import (
	"context"
	"testing"
	"time"

	"hotelbook/internal/app"
	"hotelbook/internal/domain"
)

// ---- fakes ----

type fakeRepo struct {
	hotels []domain.Hotel
}

func (f *fakeRepo) UpsertHotel(ctx context.Context, h domain.Hotel) error { return nil }
func (f *fakeRepo) GetHotel(ctx context.Context, id string) (domain.Hotel, error) {
	for _, h := range f.hotels {
		if h.ID == id {
			return h, nil
		}
	}
	return domain.Hotel{}, domain.ErrNotFound
}
func (f *fakeRepo) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	return f.hotels, nil
}

type fakeCache struct {
	store map[string]any
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	if c.store == nil {
		return false, nil
	}
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	switch d := dst.(type) {
	case *[]domain.Hotel:
		*d = v.([]domain.Hotel)
	case *domain.Hotel:
		*d = v.(domain.Hotel)
	}
	return true, nil
}
func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string]any{}
	}
	c.store[key] = v
	return nil
}
func (c *fakeCache) Del(ctx context.Context, key string) error {
	delete(c.store, key)
	return nil
}

// ---- tests ----

func TestListHotels_CacheMissThenHit(t *testing.T) {
	repo := &fakeRepo{hotels: []domain.Hotel{mkHotel("a", "A", "Pune", 1000, 4.0)}}
	cache := &fakeCache{}
	q := app.NewQueryService(repo, cache, 10*time.Minute)

	// Miss (first time, populates cache)
	hs, err := q.ListHotels(context.Background())
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(hs) != 1 || hs[0].Name != "A" {
		t.Fatalf("unexpected hotels: %+v", hs)
	}

	// Mutate repo to ensure second read indeed comes from cache
	repo.hotels[0].Name = "SHOULD NOT SEE THIS"

	hs2, err := q.ListHotels(context.Background())
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if hs2[0].Name != "A" {
		t.Fatalf("expected cached name, got %s", hs2[0].Name)
	}
}

func TestSearchHotels_AppliesDerivation(t *testing.T) {
	repo := &fakeRepo{hotels: []domain.Hotel{
		mkHotel("a", "A", "Pune", 1000, 4.0),
		mkHotel("b", "B", "Pune", 500, 4.8),
		mkHotel("c", "C", "Delhi", 300, 3.9),
	}}
	q := app.NewQueryService(repo, &fakeCache{}, time.Minute)

	got, err := q.SearchHotels(context.Background(), domain.FilterSpec{City: "pun"}, domain.SortPriceAsc)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if !sameIDs(got, "b", "a") {
		t.Fatalf("unexpected result: %v", ids(got))
	}
}

func TestGetHotel_NotFound(t *testing.T) {
	q := app.NewQueryService(&fakeRepo{}, &fakeCache{}, time.Minute)
	if _, err := q.GetHotel(context.Background(), "missing"); err == nil {
		t.Fatalf("expected error for missing hotel")
	}
}

func TestIngestDocument_EvictsHotelsCache(t *testing.T) {
	repo := &fakeRepo{hotels: []domain.Hotel{mkHotel("a", "A", "Pune", 1000, 4.0)}}
	cache := &fakeCache{}
	q := app.NewQueryService(repo, cache, time.Minute)
	if _, err := q.ListHotels(context.Background()); err != nil {
		t.Fatalf("warm cache: %v", err)
	}

	ing := app.NewIngestionService(nil, repo, cache)
	err := ing.IngestDocument(context.Background(), map[string]any{"_id": "a", "name": "A2", "city": "Pune", "price": 900.0})
	if err != nil {
		t.Fatalf("IngestDocument: %v", err)
	}
	if _, ok := cache.store["hotels:all"]; ok {
		t.Fatalf("hotels cache not evicted after ingest")
	}
}

func TestIngestDocument_RejectsDocumentWithoutID(t *testing.T) {
	ing := app.NewIngestionService(nil, &fakeRepo{}, nil)
	if err := ing.IngestDocument(context.Background(), map[string]any{"name": "nameless"}); err == nil {
		t.Fatalf("expected error for document without identifier")
	}
}

func pfloat(f float64) *float64 { return &f }
