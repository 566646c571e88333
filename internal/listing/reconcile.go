package listing

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Payload is a decoded write body. The same logical field may arrive at the
// top level, nested inside a features sub-bag, or both, depending on the
// client version that produced it.
type Payload map[string]any

// Columns is the canonical column map produced by reconciliation: one
// type-checked, range-checked value per column the caller actually supplied.
type Columns map[string]any

type mode int

const (
	modeCreate mode = iota
	modeUpdate
)

// bags holds the recognized feature sub-bags of a payload.
type bags struct {
	vehicle map[string]any
	address map[string]any
	pickup  map[string]any
}

func extractBags(p Payload) bags {
	var b bags
	features, ok := p["features"].(map[string]any)
	if !ok {
		return b
	}
	b.vehicle, _ = features["vehicle"].(map[string]any)
	b.address, _ = features["address"].(map[string]any)
	b.pickup, _ = features["pickup"].(map[string]any)
	return b
}

// A source reads one candidate value for a logical field out of the payload.
// Sources are evaluated in precedence order and short-circuit on the first
// value that both exists and coerces cleanly.
type source func(p Payload, b bags) (any, bool)

func top(keys ...string) source {
	return func(p Payload, _ bags) (any, bool) {
		for _, k := range keys {
			if v, ok := p[k]; ok && v != nil {
				return v, true
			}
		}
		return nil, false
	}
}

func fromBag(pick func(bags) map[string]any, keys ...string) source {
	return func(_ Payload, b bags) (any, bool) {
		bag := pick(b)
		if bag == nil {
			return nil, false
		}
		for _, k := range keys {
			if v, ok := bag[k]; ok && v != nil {
				return v, true
			}
		}
		return nil, false
	}
}

func vehicleBag(keys ...string) source {
	return fromBag(func(b bags) map[string]any { return b.vehicle }, keys...)
}

func addressBag(keys ...string) source {
	return fromBag(func(b bags) map[string]any { return b.address }, keys...)
}

func pickupBag(keys ...string) source {
	return fromBag(func(b bags) map[string]any { return b.pickup }, keys...)
}

// Coercers. A false return means the value is unusable in this shape; the
// field then falls through to its next source rather than failing the write.

func coerceText(v any) (any, bool) {
	s, ok := toString(v)
	if !ok {
		return nil, false
	}
	return strings.TrimSpace(s), true
}

func coerceUpperText(v any) (any, bool) {
	s, ok := coerceText(v)
	if !ok {
		return nil, false
	}
	return strings.ToUpper(s.(string)), true
}

func coerceIntRange(lo, hi int) func(any) (any, bool) {
	return func(v any) (any, bool) {
		n, ok := toInt(v)
		if !ok {
			return nil, false
		}
		return clampInt(n, lo, hi), true
	}
}

func coerceYear(v any) (any, bool) {
	n, ok := toInt(v)
	if !ok {
		return nil, false
	}
	return clampInt(n, 1950, time.Now().Year()+1), true
}

func coerceBool(v any) (any, bool) {
	b, ok := toBool(v)
	if !ok {
		return nil, false
	}
	return b, true
}

// Out-of-range coordinates are treated as absent, never as a hard failure.
func coerceLat(v any) (any, bool) {
	f, ok := toFloat(v)
	if !ok || !validLat(f) {
		return nil, false
	}
	return f, true
}

func coerceLng(v any) (any, bool) {
	f, ok := toFloat(v)
	if !ok || !validLng(f) {
		return nil, false
	}
	return f, true
}

func coerceStatus(v any) (any, bool) {
	s, ok := toString(v)
	if !ok {
		return nil, false
	}
	s = strings.TrimSpace(s)
	if !validStatuses[s] {
		return nil, false
	}
	return s, true
}

func coerceBagMap(v any) (any, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	return m, true
}

// coerceGallery normalizes the photo list: entries need a URL, get an
// identity when the client omitted one, and are deduplicated by that
// identity with order preserved.
func coerceGallery(v any) (any, bool) {
	items, ok := v.([]any)
	if !ok {
		return nil, false
	}

	seen := make(map[string]bool, len(items))
	gallery := make([]map[string]any, 0, len(items))
	for _, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		url, _ := toString(entry["url"])
		if strings.TrimSpace(url) == "" {
			continue
		}
		id, _ := toString(entry["id"])
		id = strings.TrimSpace(id)
		if id == "" {
			id = uuid.NewString()
			entry["id"] = id
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		gallery = append(gallery, entry)
	}
	return gallery, true
}

// fieldSpec wires one canonical column to its ordered source chain. The
// chain keeps the precedence auditable: top-level scalar first, then the
// matching feature sub-bag, then (pickup fields only) the generic top-level
// location values.
type fieldSpec struct {
	column  string
	sources []source
	coerce  func(any) (any, bool)

	// keepEmpty marks fields a caller may intentionally blank on update;
	// everything else treats an empty string as null.
	keepEmpty bool
}

var listingFields = []fieldSpec{
	{column: "title", sources: []source{top("title")}, keepEmpty: true},
	{column: "vehicle_type", sources: []source{top("vehicleType", "vehicle_type"), vehicleBag("type", "vehicle_type")}, keepEmpty: true},
	{column: "transmission", sources: []source{top("transmission"), vehicleBag("transmission")}, keepEmpty: true},
	{column: "fuel_type", sources: []source{top("fuelType", "fuel_type"), vehicleBag("fuel_type", "fuel")}},
	{column: "make", sources: []source{top("make"), vehicleBag("make")}},
	{column: "model", sources: []source{top("model"), vehicleBag("model")}},
	{column: "trim", sources: []source{top("trim"), vehicleBag("trim")}},
	{column: "body_type", sources: []source{top("bodyType", "body_type"), vehicleBag("body_type")}},
	{column: "year", sources: []source{top("year"), vehicleBag("year")}, coerce: coerceYear},
	{column: "seats", sources: []source{top("seats"), vehicleBag("seats")}, coerce: coerceIntRange(1, 99)},
	{column: "currency", sources: []source{top("currency")}, coerce: coerceUpperText},
	{column: "price_per_day", sources: []source{top("pricePerDay", "price_per_day")}, coerce: coerceIntRange(0, 1_000_000)},
	{column: "status", sources: []source{top("status")}, coerce: coerceStatus},
	{column: "is_featured", sources: []source{top("isFeatured", "is_featured")}, coerce: coerceBool},
	{column: "is_popular", sources: []source{top("isPopular", "is_popular")}, coerce: coerceBool},

	{column: "country_code", sources: []source{top("countryCode", "country_code"), addressBag("country_code", "country")}, coerce: coerceUpperText, keepEmpty: true},
	{column: "city", sources: []source{top("city"), addressBag("city")}, keepEmpty: true},
	{column: "area", sources: []source{top("area"), addressBag("area")}},
	{column: "full_address", sources: []source{top("fullAddress", "full_address"), addressBag("full_address", "address")}},

	{column: "pickup_lat", sources: []source{top("pickupLat", "pickup_lat"), pickupBag("lat")}, coerce: coerceLat},
	{column: "pickup_lng", sources: []source{top("pickupLng", "pickup_lng"), pickupBag("lng")}, coerce: coerceLng},
	{column: "pickup_address", sources: []source{top("pickupAddress", "pickup_address"), pickupBag("address")}},
	{column: "pickup_city", sources: []source{top("pickupCity", "pickup_city"), pickupBag("city"), top("city")}},
	{column: "pickup_state", sources: []source{top("pickupState", "pickup_state"), pickupBag("state"), top("area")}},
	{column: "pickup_country", sources: []source{top("pickupCountry", "pickup_country"), pickupBag("country"), top("countryCode", "country_code")}, coerce: coerceUpperText},
	{column: "pickup_postal_code", sources: []source{top("pickupPostalCode", "pickup_postal_code"), pickupBag("postal_code", "zip")}},

	{column: "image_path", sources: []source{top("imagePath", "image_path")}},
	{column: "image_public", sources: []source{top("imagePublic", "image_public")}, coerce: coerceBool},
	{column: "image_gallery", sources: []source{top("imageGallery", "image_gallery")}, coerce: coerceGallery},

	{column: "features", sources: []source{top("features")}, coerce: coerceBagMap},
	{column: "requirements", sources: []source{top("requirements")}, coerce: coerceBagMap},
	{column: "pricing_rules", sources: []source{top("pricingRules", "pricing_rules")}, coerce: coerceBagMap},
}

// reconcile walks every logical field's source chain and emits the canonical
// column map. Fields absent in every shape are omitted entirely.
func reconcile(p Payload, m mode) Columns {
	b := extractBags(p)
	cols := Columns{}

	for _, f := range listingFields {
		coerce := f.coerce
		if coerce == nil {
			coerce = coerceText
		}

		for _, src := range f.sources {
			raw, ok := src(p, b)
			if !ok {
				continue
			}
			v, ok := coerce(raw)
			if !ok {
				continue
			}
			if s, isText := v.(string); isText && s == "" {
				if m == modeCreate {
					// Blank in this shape; a later shape may still supply it.
					continue
				}
				if f.keepEmpty {
					cols[f.column] = ""
				} else {
					cols[f.column] = nil
				}
				break
			}
			cols[f.column] = v
			break
		}
	}

	// has_image follows the resolved image path.
	if v, ok := cols["image_path"]; ok {
		s, _ := v.(string)
		cols["has_image"] = s != ""
	}

	return cols
}

type requiredField struct {
	column string
	name   string
}

var createRequired = []requiredField{
	{"title", "title"},
	{"vehicle_type", "vehicleType"},
	{"country_code", "countryCode"},
	{"city", "city"},
}

var hostCreateRequired = append(createRequired[:len(createRequired):len(createRequired)],
	requiredField{"transmission", "transmission"})

// ReconcileForCreate resolves a public create payload. The write is rejected
// with a ValidationError enumerating every missing required field.
func ReconcileForCreate(p Payload) (Columns, error) {
	return reconcileCreate(p, createRequired)
}

// ReconcileForHostCreate resolves the host-creation variant, which
// additionally requires a transmission.
func ReconcileForHostCreate(p Payload) (Columns, error) {
	return reconcileCreate(p, hostCreateRequired)
}

func reconcileCreate(p Payload, required []requiredField) (Columns, error) {
	cols := reconcile(p, modeCreate)

	var missing []string
	for _, r := range required {
		v, ok := cols[r.column]
		if !ok {
			missing = append(missing, r.name)
			continue
		}
		if s, isText := v.(string); isText && s == "" {
			missing = append(missing, r.name)
		}
	}
	if len(missing) > 0 {
		return nil, missingFieldsError(missing)
	}

	if _, ok := cols["image_public"]; !ok {
		cols["image_public"] = true
	}
	if _, ok := cols["status"]; !ok {
		cols["status"] = StatusDraft
	}

	return cols, nil
}

// ReconcileForUpdate resolves a partial update. A payload in which nothing
// is recognizable is itself invalid.
func ReconcileForUpdate(p Payload) (Columns, error) {
	cols := reconcile(p, modeUpdate)
	if len(cols) == 0 {
		return nil, newValidationError("payload", "no updates provided")
	}
	return cols, nil
}

// ReconcileForPublish re-runs reconciliation against the merged view of the
// incoming payload over the stored features bag, so a publish call carrying
// only a status change does not drop previously saved nested values. The
// status always lands on active.
func ReconcileForPublish(p Payload, existingFeatures map[string]any) Columns {
	merged := mergeFeatures(existingFeatures, featuresOf(p))

	view := make(Payload, len(p)+1)
	for k, v := range p {
		view[k] = v
	}
	view["features"] = merged

	cols := reconcile(view, modeUpdate)
	cols["status"] = StatusActive
	return cols
}

func featuresOf(p Payload) map[string]any {
	m, _ := p["features"].(map[string]any)
	return m
}

// mergeFeatures overlays incoming bag values on the stored bag. Sub-bags
// merge key-wise with incoming values winning; everything else replaces.
func mergeFeatures(existing, incoming map[string]any) map[string]any {
	merged := make(map[string]any, len(existing)+len(incoming))
	for k, v := range existing {
		merged[k] = v
	}
	for k, v := range incoming {
		inBag, inOK := v.(map[string]any)
		exBag, exOK := merged[k].(map[string]any)
		if inOK && exOK {
			sub := make(map[string]any, len(exBag)+len(inBag))
			for bk, bv := range exBag {
				sub[bk] = bv
			}
			for bk, bv := range inBag {
				sub[bk] = bv
			}
			merged[k] = sub
			continue
		}
		merged[k] = v
	}
	return merged
}
