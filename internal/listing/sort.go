package listing

// Supported sort keys. Anything else falls back to SortPopular.
const (
	SortNewest     = "newest"
	SortPriceAsc   = "price_asc"
	SortPriceDesc  = "price_desc"
	SortRatingDesc = "rating_desc"
	SortPopular    = "popular"
)

// orderBy maps a sort key to a deterministic, tie-broken ORDER BY body. When
// a radius search is active, distance leads regardless of the requested key.
func orderBy(sort string, withDistance bool) string {
	var order string
	switch sort {
	case SortNewest:
		order = "created_at DESC"
	case SortPriceAsc:
		order = "price_per_day ASC NULLS LAST, created_at DESC"
	case SortPriceDesc:
		order = "price_per_day DESC NULLS LAST, created_at DESC"
	case SortRatingDesc:
		order = "rating_avg DESC NULLS LAST, rating_count DESC, created_at DESC"
	default:
		order = "is_popular DESC, rating_avg DESC NULLS LAST, created_at DESC"
	}

	if withDistance {
		order = "distance_km ASC NULLS LAST, " + order
	}
	return order
}
