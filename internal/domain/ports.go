package domain

import "context"

type HotelRepository interface {
	// Write paths
	UpsertHotel(ctx context.Context, h Hotel) error

	// Read paths
	GetHotel(ctx context.Context, id string) (Hotel, error)
	ListHotels(ctx context.Context) ([]Hotel, error)
}

// CatalogClient fetches raw hotel documents from the upstream catalog. The
// documents are schema-less; mapping into Hotel happens in the app layer.
type CatalogClient interface {
	FetchHotels(ctx context.Context) ([]map[string]any, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// BlobStore is the durable client-local store: whole-value JSON blobs keyed by
// name, no partial updates. It backs the booking ledger, users, the current
// session and the theme preference.
type BlobStore interface {
	Get(key string, dst any) (bool, error)
	Set(key string, v any) error
	Del(key string) error
}
