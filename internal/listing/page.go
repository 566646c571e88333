package listing

// PageBounds are the per-endpoint pagination limits.
type PageBounds struct {
	Default int
	Max     int
}

// Endpoint bounds: the general listing search pages small, the map viewport
// returns a denser set without offset paging.
var (
	ListPage = PageBounds{Default: 20, Max: 50}
	MapPage  = PageBounds{Default: 100, Max: 500}
)

// Clamp resolves requested limit/offset to safe values. An absent limit takes
// the endpoint default; an explicit zero or negative limit takes the minimum
// of one. Offsets never go below zero.
func (pb PageBounds) Clamp(limit, offset *int) (int, int) {
	l := pb.Default
	if limit != nil {
		l = clampInt(*limit, 1, pb.Max)
	}

	o := 0
	if offset != nil && *offset > 0 {
		o = *offset
	}

	return l, o
}

// Page describes the slice of results a search returned. Total comes from a
// separate count query sharing the row query's predicates; the two are not
// taken under one snapshot, so Total may drift from the page under
// concurrent writes.
type Page struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}
