package app

import (
	"context"
	"fmt"

	"hotelbook/internal/domain"
)

type IngestionService struct {
	catalog domain.CatalogClient
	repo    domain.HotelRepository
	cache   domain.Cache
}

func NewIngestionService(c domain.CatalogClient, r domain.HotelRepository, cache domain.Cache) *IngestionService {
	return &IngestionService{catalog: c, repo: r, cache: cache}
}

// FetchDocuments pulls the raw catalog listing. Kept separate from
// IngestDocument so callers can fan the documents out across workers.
func (s *IngestionService) FetchDocuments(ctx context.Context) ([]map[string]any, error) {
	return s.catalog.FetchHotels(ctx)
}

// IngestDocument normalizes one catalog document, upserts it, and evicts the
// caches that could now serve a stale snapshot.
func (s *IngestionService) IngestDocument(ctx context.Context, doc map[string]any) error {
	h := MapHotel(doc)
	if h.ID == "" {
		return fmt.Errorf("document has no usable identifier")
	}
	if err := s.repo.UpsertHotel(ctx, h); err != nil {
		return fmt.Errorf("upsert hotel %s: %w", h.ID, err)
	}
	if s.cache != nil {
		_ = s.cache.Del(ctx, hotelsCacheKey)
		_ = s.cache.Del(ctx, "hotel:"+h.ID)
	}
	return nil
}
