package listing

import "strings"

// Listing status values. Only active listings are publicly visible unless a
// caller filters on status explicitly.
const (
	StatusDraft         = "draft"
	StatusPendingReview = "pending_review"
	StatusActive        = "active"
	StatusInactive      = "inactive"
	StatusUnlisted      = "unlisted"
	StatusSuspended     = "suspended"
	StatusArchived      = "archived"
)

var validStatuses = map[string]bool{
	StatusDraft:         true,
	StatusPendingReview: true,
	StatusActive:        true,
	StatusInactive:      true,
	StatusUnlisted:      true,
	StatusSuspended:     true,
	StatusArchived:      true,
}

// Params is the raw, untrusted query-parameter view of a search request.
type Params map[string]string

// Filter is the validated search intent parsed out of raw parameters. It is
// built once per request and discarded after the query runs.
type Filter struct {
	Country      string
	City         string
	Area         string
	VehicleType  string
	Transmission string
	Fuel         string
	Status       string
	Term         string

	Seats    *int
	YearMin  *int
	YearMax  *int
	MinPrice *int
	MaxPrice *int
	HasImage *bool

	Sort   string
	Limit  *int
	Offset *int
}

// ParseFilter builds a Filter from raw parameters. Parsing is best-effort by
// policy: a value that fails to parse degrades that one field to absent and
// never fails the request. Over-broad results beat a rejected search.
func ParseFilter(params Params) Filter {
	f := Filter{
		Country:      strings.ToUpper(strings.TrimSpace(params["country"])),
		City:         strings.TrimSpace(params["city"]),
		Area:         strings.TrimSpace(params["area"]),
		VehicleType:  strings.TrimSpace(params["type"]),
		Transmission: strings.TrimSpace(params["transmission"]),
		Fuel:         strings.TrimSpace(params["fuel"]),
		Status:       strings.TrimSpace(params["status"]),
		Term:         strings.TrimSpace(params["q"]),
		Sort:         strings.TrimSpace(params["sort"]),
	}

	if v, ok := parseInt(params["seats"]); ok {
		f.Seats = &v
	}
	if v, ok := parseInt(params["yearMin"]); ok {
		f.YearMin = &v
	}
	if v, ok := parseInt(params["yearMax"]); ok {
		f.YearMax = &v
	}
	if v, ok := parseInt(params["minPrice"]); ok {
		f.MinPrice = &v
	}
	if v, ok := parseInt(params["maxPrice"]); ok {
		f.MaxPrice = &v
	}
	if v, ok := parseBool(params["hasImage"]); ok {
		f.HasImage = &v
	}
	if v, ok := parseInt(params["limit"]); ok {
		f.Limit = &v
	}
	if v, ok := parseInt(params["offset"]); ok {
		f.Offset = &v
	}

	return f
}
