package app

import (
	"context"
	"encoding/json"
	"time"

	"hotelbook/internal/domain"
)

const hotelsCacheKey = "hotels:all"

type QueryService struct {
	repo     domain.HotelRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewQueryService(r domain.HotelRepository, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{repo: r, cache: c, cacheTTL: ttl}
}

// ListHotels returns the full normalized collection, served from cache when
// possible. Cache failures degrade to the repository, never to an error.
func (s *QueryService) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	var hs []domain.Hotel
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, hotelsCacheKey, &hs); ok {
			return hs, nil
		}
	}
	hs, err := s.repo.ListHotels(ctx)
	if err != nil {
		return nil, err
	}

	// copy slice to avoid aliasing the repo's backing array (prevents callers
	// from mutating the cached value)
	cp := make([]domain.Hotel, len(hs))
	copy(cp, hs)

	if s.cache != nil {
		// optional size guard
		if b, _ := json.Marshal(cp); len(b) < 1_000_000 {
			_ = s.cache.Set(ctx, hotelsCacheKey, cp, int(s.cacheTTL.Seconds()))
		}
	}
	return cp, nil
}

// SearchHotels applies the derivation engine to the full collection.
func (s *QueryService) SearchHotels(ctx context.Context, f domain.FilterSpec, key domain.SortKey) ([]domain.Hotel, error) {
	hs, err := s.ListHotels(ctx)
	if err != nil {
		return nil, err
	}
	return Derive(hs, f, key), nil
}

func (s *QueryService) GetHotel(ctx context.Context, id string) (domain.Hotel, error) {
	key := "hotel:" + id
	var h domain.Hotel
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &h); ok {
			return h, nil
		}
	}
	h, err := s.repo.GetHotel(ctx, id)
	if err != nil {
		return domain.Hotel{}, err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, h, int(s.cacheTTL.Seconds()))
	}
	return h, nil
}
