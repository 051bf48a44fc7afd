package domain

// Hotel is a read-only record describing one bookable property. Documents in
// the backing store are schema-less; normalization happens at the repository
// boundary, so by the time a Hotel exists its optional fields are explicit.
type Hotel struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	City          string   `json:"city"`
	Price         float64  `json:"price"`
	Rating        *float64 `json:"rating,omitempty"`
	ReviewsCount  *int     `json:"reviews,omitempty"`
	OriginalPrice *float64 `json:"originalPrice,omitempty"`
	Amenities     []string `json:"amenities,omitempty"`
	Images        []string `json:"images,omitempty"`
	RawJSON       []byte   `json:"-"` // full source document
}

// FilterSpec holds the raw, user-supplied filter inputs. All filters are
// conjunctive; an empty field imposes no constraint. Price is kept as the raw
// string: a non-numeric value disables the ceiling rather than failing.
type FilterSpec struct {
	City  string
	Name  string
	Price string
}

type SortKey string

const (
	SortRatingAsc  SortKey = "rating-asc"
	SortRatingDesc SortKey = "rating-desc"
	SortPriceAsc   SortKey = "price-asc"
	SortPriceDesc  SortKey = "price-desc"
	SortNameAsc    SortKey = "name-asc"
	SortNameDesc   SortKey = "name-desc"
)

const DefaultSort = SortRatingDesc

// ParseSortKey maps a raw sort parameter to a SortKey, falling back to the
// default order for unknown values.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortRatingAsc, SortRatingDesc, SortPriceAsc, SortPriceDesc, SortNameAsc, SortNameDesc:
		return SortKey(s)
	}
	return DefaultSort
}
