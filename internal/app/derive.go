package app

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"hotelbook/internal/domain"
)

// Derive turns (hotels, filter, sort) into the displayable ordered list. It is
// a pure function: same inputs, same output, input never mutated. Filters are
// conjunctive; sorting is stable so equal keys keep collection order.
func Derive(hotels []domain.Hotel, f domain.FilterSpec, key domain.SortKey) []domain.Hotel {
	city := strings.ToLower(strings.TrimSpace(f.City))
	name := strings.ToLower(strings.TrimSpace(f.Name))
	ceiling, hasCeiling := parseCeiling(f.Price)

	out := make([]domain.Hotel, 0, len(hotels))
	for _, h := range hotels {
		if city != "" && !strings.Contains(strings.ToLower(h.City), city) {
			continue
		}
		if name != "" && !strings.Contains(strings.ToLower(h.Name), name) {
			continue
		}
		if hasCeiling && h.Price > ceiling {
			continue
		}
		out = append(out, h)
	}

	sort.SliceStable(out, lessFor(key, out))
	return out
}

// parseCeiling parses the raw price filter permissively: empty or non-numeric
// input disables the ceiling instead of failing.
func parseCeiling(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func lessFor(key domain.SortKey, hs []domain.Hotel) func(i, j int) bool {
	// Collators buffer internally, so build one per sort rather than sharing.
	col := collate.New(language.Und, collate.IgnoreCase)
	switch key {
	case domain.SortRatingAsc:
		return func(i, j int) bool { return ratingOf(hs[i]) < ratingOf(hs[j]) }
	case domain.SortPriceAsc:
		return func(i, j int) bool { return hs[i].Price < hs[j].Price }
	case domain.SortPriceDesc:
		return func(i, j int) bool { return hs[i].Price > hs[j].Price }
	case domain.SortNameAsc:
		return func(i, j int) bool { return col.CompareString(hs[i].Name, hs[j].Name) < 0 }
	case domain.SortNameDesc:
		return func(i, j int) bool { return col.CompareString(hs[i].Name, hs[j].Name) > 0 }
	default: // rating-desc
		return func(i, j int) bool { return ratingOf(hs[i]) > ratingOf(hs[j]) }
	}
}

// Missing ratings compare as zero; derivation never fails on sparse documents.
func ratingOf(h domain.Hotel) float64 {
	if h.Rating != nil {
		return *h.Rating
	}
	return 0
}
