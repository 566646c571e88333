package listing

import (
	"fmt"
	"math"
)

// Radius bounds in kilometres for map searches.
const (
	minRadiusKm = 1
	maxRadiusKm = 50
)

// GeoQuery scopes a search to a map viewport, optionally refined by a
// great-circle radius around a center point.
type GeoQuery struct {
	MinLat float64
	MaxLat float64
	MinLng float64
	MaxLng float64

	Center *GeoCenter
}

// GeoCenter activates radius filtering and distance-first ordering.
type GeoCenter struct {
	Lat      float64
	Lng      float64
	RadiusKm float64
}

// ParseBounds reads a bounding box, and optionally a center plus radius, out
// of raw parameters. Unlike ordinary filters the box is not best-effort: the
// map endpoint cannot answer without one, so missing or inverted bounds are a
// ValidationError.
func ParseBounds(params Params) (GeoQuery, error) {
	var g GeoQuery

	missing := &ValidationError{Fields: map[string]string{}}
	read := func(key string) float64 {
		v, ok := parseFloat(params[key])
		if !ok {
			missing.Fields[key] = "is required"
		}
		return v
	}

	g.MinLat = read("minLat")
	g.MaxLat = read("maxLat")
	g.MinLng = read("minLng")
	g.MaxLng = read("maxLng")
	if len(missing.Fields) > 0 {
		return GeoQuery{}, missing
	}

	if g.MinLat > g.MaxLat {
		return GeoQuery{}, newValidationError("minLat", "must not exceed maxLat")
	}
	if g.MinLng > g.MaxLng {
		return GeoQuery{}, newValidationError("minLng", "must not exceed maxLng")
	}

	// The radius refinement stays best-effort: a bad center degrades to a
	// plain viewport query.
	lat, latOK := parseFloat(params["lat"])
	lng, lngOK := parseFloat(params["lng"])
	radius, radiusOK := parseFloat(params["radiusKm"])
	if latOK && lngOK && radiusOK && validLat(lat) && validLng(lng) {
		if radius < minRadiusKm {
			radius = minRadiusKm
		}
		if radius > maxRadiusKm {
			radius = maxRadiusKm
		}
		g.Center = &GeoCenter{Lat: lat, Lng: lng, RadiusKm: radius}
	}

	return g, nil
}

// CompileBounds compiles the filter plus viewport predicates. Radius
// filtering layers on top of the box, it never replaces it.
func CompileBounds(f Filter, g GeoQuery) Query {
	b := &Builder{}
	compileFilter(b, f)

	b.Add("pickup_lat IS NOT NULL")
	b.Add("pickup_lng IS NOT NULL")
	b.Add(fmt.Sprintf("pickup_lat BETWEEN %s AND %s", b.Bind(g.MinLat), b.Bind(g.MaxLat)))
	b.Add(fmt.Sprintf("pickup_lng BETWEEN %s AND %s", b.Bind(g.MinLng), b.Bind(g.MaxLng)))

	var distance string
	if c := g.Center; c != nil {
		distance = distanceExpr(b, c.Lat, c.Lng)
		// Boundary inclusive: a row at exactly RadiusKm is kept.
		b.Add(fmt.Sprintf("%s <= %s", distance, b.Bind(c.RadiusKm)))
	}

	return Query{
		Where:    b.Where(),
		Args:     b.Args(),
		Distance: distance,
		OrderBy:  orderBy(f.Sort, distance != ""),
	}
}

// distanceExpr emits the great-circle distance in kilometres between the
// bound center and a row's pickup point. least() guards acos against
// floating-point drift past 1.
func distanceExpr(b *Builder, lat, lng float64) string {
	latP := b.Bind(lat)
	lngP := b.Bind(lng)
	return fmt.Sprintf(
		"(6371 * acos(least(1.0, cos(radians(%[1]s)) * cos(radians(pickup_lat)) * cos(radians(pickup_lng) - radians(%[2]s)) + sin(radians(%[1]s)) * sin(radians(pickup_lat)))))",
		latP, lngP)
}

// roundKm rounds a scanned distance to one decimal for the public shape.
func roundKm(v float64) float64 {
	return math.Round(v*10) / 10
}
