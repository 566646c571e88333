package listing

import (
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"wheelhouse/shared/go/models"
)

// Row is a stored listing as scanned from the database. Numeric aggregates
// are scanned loosely because NUMERIC columns can surface as strings or raw
// bytes depending on the driver path.
type Row struct {
	ID     int64
	HostID int64

	Title        sql.NullString
	VehicleType  sql.NullString
	Transmission sql.NullString
	FuelType     sql.NullString
	Make         sql.NullString
	Model        sql.NullString
	Trim         sql.NullString
	BodyType     sql.NullString
	Year         sql.NullInt64
	Seats        sql.NullInt64

	Currency    sql.NullString
	PricePerDay any

	IsFeatured sql.NullBool
	IsPopular  sql.NullBool
	Status     sql.NullString

	CountryCode sql.NullString
	City        sql.NullString
	Area        sql.NullString
	FullAddress sql.NullString

	PickupLat        sql.NullFloat64
	PickupLng        sql.NullFloat64
	PickupAddress    sql.NullString
	PickupCity       sql.NullString
	PickupState      sql.NullString
	PickupCountry    sql.NullString
	PickupPostalCode sql.NullString

	ImagePath    sql.NullString
	ImagePublic  sql.NullBool
	HasImage     sql.NullBool
	ImageGallery []byte

	Features     []byte
	Requirements []byte
	PricingRules []byte

	RatingAvg     any
	RatingCount   sql.NullInt64
	LegacyRating  any
	LegacyReviews sql.NullInt64

	CreatedAt time.Time
	UpdatedAt time.Time

	DistanceKm sql.NullFloat64
}

// Media configures how the projector resolves image URLs.
type Media struct {
	BaseURL        string
	PlaceholderURL string
}

// Project maps a stored row to its public representation. It is read-only:
// derived fields are computed on the way out and never written back.
func Project(r Row, m Media) models.Listing {
	l := models.Listing{
		ID:           r.ID,
		Title:        r.Title.String,
		VehicleType:  r.VehicleType.String,
		Transmission: r.Transmission.String,
		FuelType:     r.FuelType.String,
		Make:         r.Make.String,
		Model:        r.Model.String,
		Trim:         r.Trim.String,
		BodyType:     r.BodyType.String,
		Currency:     r.Currency.String,
		IsFeatured:   r.IsFeatured.Bool,
		IsPopular:    r.IsPopular.Bool,
		Status:       r.Status.String,
		CountryCode:  r.CountryCode.String,
		City:         r.City.String,
		Area:         r.Area.String,
		FullAddress:  r.FullAddress.String,

		PickupAddress:    r.PickupAddress.String,
		PickupCity:       r.PickupCity.String,
		PickupState:      r.PickupState.String,
		PickupCountry:    r.PickupCountry.String,
		PickupPostalCode: r.PickupPostalCode.String,

		HasImage:  r.HasImage.Bool,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}

	if r.Year.Valid {
		l.Year = int(r.Year.Int64)
	}
	if r.Seats.Valid {
		l.Seats = int(r.Seats.Int64)
	}
	if price, ok := toInt(r.PricePerDay); ok {
		l.PricePerDay = price
	}

	if r.PickupLat.Valid && r.PickupLng.Valid {
		lat, lng := r.PickupLat.Float64, r.PickupLng.Float64
		l.PickupLat = &lat
		l.PickupLng = &lng
	}

	l.Rating, l.Reviews = resolveRating(r)
	l.ImageURL = imageURL(r, m)

	if len(r.ImageGallery) > 0 {
		_ = json.Unmarshal(r.ImageGallery, &l.Gallery)
	}
	if len(r.Features) > 0 {
		_ = json.Unmarshal(r.Features, &l.Features)
	}
	if len(r.Requirements) > 0 {
		_ = json.Unmarshal(r.Requirements, &l.Requirements)
	}
	if len(r.PricingRules) > 0 {
		_ = json.Unmarshal(r.PricingRules, &l.PricingRules)
	}

	if r.DistanceKm.Valid {
		d := roundKm(r.DistanceKm.Float64)
		l.DistanceKm = &d
	}

	return l
}

// ProjectAll projects a page of rows.
func ProjectAll(rows []Row, m Media) []models.Listing {
	out := make([]models.Listing, 0, len(rows))
	for _, r := range rows {
		out = append(out, Project(r, m))
	}
	return out
}

// resolveRating prefers the aggregate rating columns and falls back to the
// legacy scalar pair only when no aggregate exists.
func resolveRating(r Row) (float64, int) {
	if rating, ok := toFloat(r.RatingAvg); ok {
		reviews := 0
		if r.RatingCount.Valid {
			reviews = int(r.RatingCount.Int64)
		}
		return rating, reviews
	}

	if rating, ok := toFloat(r.LegacyRating); ok {
		reviews := 0
		if r.LegacyReviews.Valid {
			reviews = int(r.LegacyReviews.Int64)
		}
		return rating, reviews
	}

	return 0, 0
}

// imageURL resolves the displayable image location. Rows without a public
// image never resolve to a media-base path; they get the placeholder, or
// nothing when none is configured.
func imageURL(r Row, m Media) string {
	if r.HasImage.Bool && r.ImagePublic.Bool {
		path := strings.TrimSpace(r.ImagePath.String)
		if path != "" {
			if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
				return path
			}
			if m.BaseURL != "" {
				return strings.TrimRight(m.BaseURL, "/") + "/" + strings.TrimLeft(path, "/")
			}
		}
	}
	return m.PlaceholderURL
}
