package app

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"hotelbook/internal/domain"
)

/********** alias registry (single source of truth) **********/

// The backing store is schema-less, so field names drift between documents.
// Aliases are tried in order; the first non-empty hit wins.
var hotelAliases = map[string][]string{
	"name":           {"name", "hotel_name", "hotelName", "title"},
	"city":           {"city", "address.city", "location.city", "town", "locality"},
	"image":          {"image", "imageUrl", "image_url", "thumbnail"},
	"price":          {"price", "pricePerNight", "price_per_night", "rate", "cost"},
	"rating":         {"rating", "rating.value", "stars", "score"},
	"reviews":        {"reviews", "reviews_count", "reviewCount", "review_count"},
	"original_price": {"originalPrice", "original_price", "strikePrice", "strike_price"},
}

/********** tiny helpers **********/

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

// lookupStr returns string at path or "".
func lookupStr(m map[string]any, path string) string {
	if v := lookupAny(m, path); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// firstNonEmptyAlias: first non-empty string for a named alias set.
func firstNonEmptyAlias(m map[string]any, key string) string {
	for _, p := range hotelAliases[key] {
		if s := lookupStr(m, p); s != "" {
			return s
		}
	}
	return ""
}

// getFloatFlexible: number from several paths (float64/int/string like "8,0").
func getFloatFlexible(m map[string]any, paths ...string) *float64 {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case float64:
			f := v
			return &f
		case int:
			f := float64(v)
			return &f
		case string:
			s := strings.TrimSpace(strings.ReplaceAll(v, ",", "."))
			if s == "" {
				continue
			}
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return &f
			}
		}
	}
	return nil
}

// firstSliceStrings: accept []any with either strings or {url/src/name}.
func firstSliceStrings(m map[string]any, paths ...string) []string {
	for _, k := range paths {
		if raw, ok := lookupAny(m, k).([]any); ok {
			out := make([]string, 0, len(raw))
			for _, it := range raw {
				switch t := it.(type) {
				case string:
					if t != "" {
						out = append(out, t)
					}
				case map[string]any:
					if u, ok := t["url"].(string); ok && u != "" {
						out = append(out, u)
						continue
					}
					if u, ok := t["src"].(string); ok && u != "" {
						out = append(out, u)
						continue
					}
					if n, ok := t["name"].(string); ok && n != "" {
						out = append(out, n)
						continue
					}
				}
			}
			if len(out) > 0 {
				return out
			}
		}
	}
	return nil
}

// documentID extracts the opaque identifier: a plain string, a number, or a
// Mongo-style {"$oid": "..."} object.
func documentID(m map[string]any, paths ...string) string {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatInt(int64(v), 10)
		case map[string]any:
			if s, ok := v["$oid"].(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

/********** hotel mapper **********/

// MapHotel normalizes one schema-less catalog document into a Hotel. Some
// stores wrap the payload under a "data" key with the identifier alongside;
// field lookups descend into the wrapper while the id stays top-level.
func MapHotel(doc map[string]any) domain.Hotel {
	fields := doc
	if d, ok := doc["data"].(map[string]any); ok {
		fields = d
	}

	h := domain.Hotel{
		ID:   documentID(doc, "_id", "id", "hotel_id"),
		Name: firstNonEmptyAlias(fields, "name"),
		City: firstNonEmptyAlias(fields, "city"),
	}
	if h.ID == "" {
		h.ID = documentID(fields, "_id", "id", "hotel_id")
	}

	if f := getFloatFlexible(fields, hotelAliases["price"]...); f != nil {
		h.Price = *f
	}
	h.Rating = getFloatFlexible(fields, hotelAliases["rating"]...)
	if f := getFloatFlexible(fields, hotelAliases["reviews"]...); f != nil {
		n := int(*f)
		h.ReviewsCount = &n
	}
	h.OriginalPrice = getFloatFlexible(fields, hotelAliases["original_price"]...)

	h.Amenities = firstSliceStrings(fields, "amenities", "facilities")
	h.Images = firstSliceStrings(fields, "images", "photos")
	if len(h.Images) == 0 {
		if s := firstNonEmptyAlias(fields, "image"); s != "" {
			h.Images = []string{s}
		}
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		log.Error().Err(err).Str("context", "MapHotel").Msg("failed to marshal document to JSON")
	}
	h.RawJSON = raw
	return h
}
