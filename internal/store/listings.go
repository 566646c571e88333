package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"wheelhouse/internal/listing"
)

// listingColumns is the canonical SELECT list; scanListing depends on its
// order.
const listingColumns = `id, host_id, title, vehicle_type, transmission, fuel_type, make, model, trim, body_type, year, seats, currency, price_per_day, is_featured, is_popular, status, country_code, city, area, full_address, pickup_lat, pickup_lng, pickup_address, pickup_city, pickup_state, pickup_country, pickup_postal_code, image_path, image_public, has_image, image_gallery, features, requirements, pricing_rules, rating_avg, rating_count, legacy_rating, legacy_reviews, created_at, updated_at`

// jsonbColumns carry document values and are bound with an explicit cast.
var jsonbColumns = map[string]bool{
	"image_gallery": true,
	"features":      true,
	"requirements":  true,
	"pricing_rules": true,
}

// SearchListings runs the count and row queries for a general search. The
// two statements share predicates and arguments but not a snapshot, so the
// reported total can drift from the page under concurrent writes.
func (s *Store) SearchListings(ctx context.Context, f listing.Filter) ([]listing.Row, listing.Page, error) {
	q := listing.CompileSearch(f)
	limit, offset := listing.ListPage.Clamp(f.Limit, f.Offset)

	var total int
	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM listings WHERE "+q.Where, q.Args...,
	).Scan(&total); err != nil {
		return nil, listing.Page{}, fmt.Errorf("count listings: %w", err)
	}

	query := fmt.Sprintf(
		"SELECT %s FROM listings WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d",
		listingColumns, q.Where, q.OrderBy, len(q.Args)+1, len(q.Args)+2,
	)
	args := append(q.Args, limit, offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, listing.Page{}, fmt.Errorf("select listings: %w", err)
	}
	defer rows.Close()

	out, err := scanListingRows(rows, false)
	if err != nil {
		return nil, listing.Page{}, err
	}

	return out, listing.Page{Limit: limit, Offset: offset, Total: total}, nil
}

// SearchListingsInBounds runs a map-viewport query, optionally refined by a
// radius, in which case each row carries its distance from the center.
func (s *Store) SearchListingsInBounds(ctx context.Context, f listing.Filter, g listing.GeoQuery) ([]listing.Row, error) {
	q := listing.CompileBounds(f, g)
	limit, offset := listing.MapPage.Clamp(f.Limit, f.Offset)

	cols := listingColumns
	withDistance := q.Distance != ""
	if withDistance {
		cols += ", " + q.Distance + " AS distance_km"
	}

	query := fmt.Sprintf(
		"SELECT %s FROM listings WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d",
		cols, q.Where, q.OrderBy, len(q.Args)+1, len(q.Args)+2,
	)
	args := append(q.Args, limit, offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select listings in bounds: %w", err)
	}
	defer rows.Close()

	return scanListingRows(rows, withDistance)
}

// ListingByID returns a publicly visible listing.
func (s *Store) ListingByID(ctx context.Context, id int64) (listing.Row, error) {
	row := s.db.QueryRowContext(ctx, fmt.Sprintf(`
		SELECT %s
		FROM listings
		WHERE id = $1 AND deleted_at IS NULL AND status = $2
	`, listingColumns), id, listing.StatusActive)

	r, err := scanListing(row, false)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return listing.Row{}, ErrListingNotFound
		}
		return listing.Row{}, err
	}
	return r, nil
}

// CreateListing inserts the reconciled column map for the given owner.
func (s *Store) CreateListing(ctx context.Context, hostID int64, cols listing.Columns) (listing.Row, error) {
	names := sortedColumns(cols)

	insertCols := make([]string, 0, len(names)+1)
	placeholders := make([]string, 0, len(names)+1)
	args := make([]any, 0, len(names)+1)

	insertCols = append(insertCols, "host_id")
	placeholders = append(placeholders, "$1")
	args = append(args, hostID)

	for _, name := range names {
		args = append(args, columnArg(name, cols[name]))
		p := fmt.Sprintf("$%d", len(args))
		if jsonbColumns[name] {
			p += "::jsonb"
		}
		insertCols = append(insertCols, name)
		placeholders = append(placeholders, p)
	}

	query := fmt.Sprintf(
		"INSERT INTO listings (%s, created_at, updated_at) VALUES (%s, NOW(), NOW()) RETURNING %s",
		strings.Join(insertCols, ", "), strings.Join(placeholders, ", "), listingColumns,
	)

	r, err := scanListing(s.db.QueryRowContext(ctx, query, args...), false)
	if err != nil {
		return listing.Row{}, fmt.Errorf("insert listing: %w", err)
	}
	return r, nil
}

// UpdateListing applies the reconciled column map to a listing the host
// owns. Soft-deleted rows are invisible to updates.
func (s *Store) UpdateListing(ctx context.Context, id, hostID int64, cols listing.Columns) (listing.Row, error) {
	names := sortedColumns(cols)

	assignments := make([]string, 0, len(names)+1)
	args := make([]any, 0, len(names)+2)
	for _, name := range names {
		args = append(args, columnArg(name, cols[name]))
		p := fmt.Sprintf("$%d", len(args))
		if jsonbColumns[name] {
			p += "::jsonb"
		}
		assignments = append(assignments, fmt.Sprintf("%s = %s", name, p))
	}
	assignments = append(assignments, "updated_at = NOW()")

	args = append(args, id, hostID)
	query := fmt.Sprintf(
		"UPDATE listings SET %s WHERE id = $%d AND host_id = $%d AND deleted_at IS NULL RETURNING %s",
		strings.Join(assignments, ", "), len(args)-1, len(args), listingColumns,
	)

	r, err := scanListing(s.db.QueryRowContext(ctx, query, args...), false)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return listing.Row{}, ErrListingNotFound
		}
		return listing.Row{}, fmt.Errorf("update listing: %w", err)
	}
	return r, nil
}

// PublishListing reads the stored features bag, reconciles the payload
// against the merged view, and writes the result as an active listing. The
// read and the write are separate statements; concurrent publishes to the
// same record resolve last-writer-wins on the merged bag.
func (s *Store) PublishListing(ctx context.Context, id, hostID int64, payload listing.Payload) (listing.Row, error) {
	var featuresJSON []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT features
		FROM listings
		WHERE id = $1 AND host_id = $2 AND deleted_at IS NULL
	`, id, hostID).Scan(&featuresJSON)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return listing.Row{}, ErrListingNotFound
		}
		return listing.Row{}, fmt.Errorf("lookup listing features: %w", err)
	}

	var existing map[string]any
	if len(featuresJSON) > 0 {
		if err := json.Unmarshal(featuresJSON, &existing); err != nil {
			return listing.Row{}, fmt.Errorf("decode features: %w", err)
		}
	}

	cols := listing.ReconcileForPublish(payload, existing)
	return s.UpdateListing(ctx, id, hostID, cols)
}

// SoftDeleteListing marks a listing invisible without removing the row.
func (s *Store) SoftDeleteListing(ctx context.Context, id, hostID int64) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE listings
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND host_id = $2 AND deleted_at IS NULL
	`, id, hostID)
	if err != nil {
		return fmt.Errorf("soft delete listing: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("soft delete listing: %w", err)
	}
	if affected == 0 {
		return ErrListingNotFound
	}
	return nil
}

func sortedColumns(cols listing.Columns) []string {
	names := make([]string, 0, len(cols))
	for name := range cols {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// columnArg prepares a reconciled value for binding. Document values are
// stored as JSON text.
func columnArg(name string, v any) any {
	if v == nil {
		return nil
	}
	if jsonbColumns[name] {
		b, err := json.Marshal(v)
		if err != nil {
			return nil
		}
		return string(b)
	}
	return v
}

type listingScanner interface {
	Scan(dest ...any) error
}

func scanListing(sc listingScanner, withDistance bool) (listing.Row, error) {
	var r listing.Row

	dest := []any{
		&r.ID, &r.HostID, &r.Title, &r.VehicleType, &r.Transmission, &r.FuelType,
		&r.Make, &r.Model, &r.Trim, &r.BodyType, &r.Year, &r.Seats,
		&r.Currency, &r.PricePerDay, &r.IsFeatured, &r.IsPopular, &r.Status,
		&r.CountryCode, &r.City, &r.Area, &r.FullAddress,
		&r.PickupLat, &r.PickupLng, &r.PickupAddress, &r.PickupCity,
		&r.PickupState, &r.PickupCountry, &r.PickupPostalCode,
		&r.ImagePath, &r.ImagePublic, &r.HasImage, &r.ImageGallery,
		&r.Features, &r.Requirements, &r.PricingRules,
		&r.RatingAvg, &r.RatingCount, &r.LegacyRating, &r.LegacyReviews,
		&r.CreatedAt, &r.UpdatedAt,
	}
	if withDistance {
		dest = append(dest, &r.DistanceKm)
	}

	if err := sc.Scan(dest...); err != nil {
		return listing.Row{}, fmt.Errorf("scan listing: %w", err)
	}
	return r, nil
}

func scanListingRows(rows *sql.Rows, withDistance bool) ([]listing.Row, error) {
	var out []listing.Row
	for rows.Next() {
		r, err := scanListing(rows, withDistance)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate listings: %w", err)
	}
	return out, nil
}
