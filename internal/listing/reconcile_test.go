package listing

import (
	"errors"
	"testing"
	"time"
)

func TestReconcilePrecedenceTopLevelWins(t *testing.T) {
	cols, err := ReconcileForUpdate(Payload{
		"make": "Honda",
		"features": map[string]any{
			"vehicle": map[string]any{"make": "Toyota"},
		},
	})
	if err != nil {
		t.Fatalf("ReconcileForUpdate: %v", err)
	}

	if cols["make"] != "Honda" {
		t.Fatalf("top-level make must win, got %v", cols["make"])
	}
}

func TestReconcileBagFillsMissingTopLevel(t *testing.T) {
	cols, err := ReconcileForUpdate(Payload{
		"features": map[string]any{
			"vehicle": map[string]any{"make": "Toyota", "seats": "5", "year": float64(2019)},
			"address": map[string]any{"city": "Toronto", "country_code": "ca"},
		},
	})
	if err != nil {
		t.Fatalf("ReconcileForUpdate: %v", err)
	}

	if cols["make"] != "Toyota" {
		t.Fatalf("make: %v", cols["make"])
	}
	if cols["seats"] != 5 {
		t.Fatalf("numeric-looking string should coerce, seats: %v", cols["seats"])
	}
	if cols["year"] != 2019 {
		t.Fatalf("year: %v", cols["year"])
	}
	if cols["city"] != "Toronto" {
		t.Fatalf("city: %v", cols["city"])
	}
	if cols["country_code"] != "CA" {
		t.Fatalf("country code must upper-case: %v", cols["country_code"])
	}
}

func TestReconcilePickupFallsBackToGenericLocation(t *testing.T) {
	cols, err := ReconcileForUpdate(Payload{
		"city":        "Toronto",
		"area":        "Downtown",
		"countryCode": "ca",
	})
	if err != nil {
		t.Fatalf("ReconcileForUpdate: %v", err)
	}

	if cols["pickup_city"] != "Toronto" {
		t.Fatalf("pickup_city fallback: %v", cols["pickup_city"])
	}
	if cols["pickup_state"] != "Downtown" {
		t.Fatalf("pickup_state fallback: %v", cols["pickup_state"])
	}
	if cols["pickup_country"] != "CA" {
		t.Fatalf("pickup_country fallback: %v", cols["pickup_country"])
	}
}

func TestReconcileRangesClampNotReject(t *testing.T) {
	cols, err := ReconcileForUpdate(Payload{
		"seats":       150,
		"year":        1800,
		"pricePerDay": 5_000_000,
	})
	if err != nil {
		t.Fatalf("ReconcileForUpdate: %v", err)
	}

	if cols["seats"] != 99 {
		t.Fatalf("seats clamp: %v", cols["seats"])
	}
	if cols["year"] != 1950 {
		t.Fatalf("year clamp: %v", cols["year"])
	}
	if cols["price_per_day"] != 1_000_000 {
		t.Fatalf("price clamp: %v", cols["price_per_day"])
	}

	cols, err = ReconcileForUpdate(Payload{"year": time.Now().Year() + 5})
	if err != nil {
		t.Fatalf("ReconcileForUpdate: %v", err)
	}
	if cols["year"] != time.Now().Year()+1 {
		t.Fatalf("future year clamp: %v", cols["year"])
	}
}

func TestReconcileOutOfRangeCoordinatesDropped(t *testing.T) {
	cols, err := ReconcileForUpdate(Payload{
		"pickupLat": 123.0,
		"pickupLng": -79.38,
	})
	if err != nil {
		t.Fatalf("ReconcileForUpdate: %v", err)
	}

	if _, ok := cols["pickup_lat"]; ok {
		t.Fatal("out-of-range latitude must be treated as absent")
	}
	if cols["pickup_lng"] != -79.38 {
		t.Fatalf("valid longitude kept: %v", cols["pickup_lng"])
	}
}

func TestReconcileBooleanStrings(t *testing.T) {
	cols, err := ReconcileForUpdate(Payload{
		"imagePublic": "FALSE",
		"isFeatured":  "true",
		"isPopular":   "sure",
	})
	if err != nil {
		t.Fatalf("ReconcileForUpdate: %v", err)
	}

	if cols["image_public"] != false {
		t.Fatalf("image_public: %v", cols["image_public"])
	}
	if cols["is_featured"] != true {
		t.Fatalf("is_featured: %v", cols["is_featured"])
	}
	if _, ok := cols["is_popular"]; ok {
		t.Fatal("unrecognized boolean literal drops the field")
	}
}

func TestReconcileUpdateBlanking(t *testing.T) {
	cols, err := ReconcileForUpdate(Payload{
		"title": "   ",
		"area":  "",
	})
	if err != nil {
		t.Fatalf("ReconcileForUpdate: %v", err)
	}

	// title may be intentionally blanked; optional area becomes null.
	if v, ok := cols["title"]; !ok || v != "" {
		t.Fatalf("title blank: %v present=%v", v, ok)
	}
	if v, ok := cols["area"]; !ok || v != nil {
		t.Fatalf("area should be nulled: %v present=%v", v, ok)
	}
}

func TestReconcileImagePathDrivesHasImage(t *testing.T) {
	cols, err := ReconcileForUpdate(Payload{"imagePath": "cars/1.jpg"})
	if err != nil {
		t.Fatalf("ReconcileForUpdate: %v", err)
	}
	if cols["has_image"] != true {
		t.Fatalf("has_image should follow image_path: %v", cols["has_image"])
	}

	cols, err = ReconcileForUpdate(Payload{"imagePath": ""})
	if err != nil {
		t.Fatalf("ReconcileForUpdate: %v", err)
	}
	if cols["has_image"] != false {
		t.Fatalf("blanked image_path clears has_image: %v", cols["has_image"])
	}
}

func TestReconcileGalleryDedupe(t *testing.T) {
	cols, err := ReconcileForUpdate(Payload{
		"imageGallery": []any{
			map[string]any{"id": "a", "url": "https://img/1.jpg"},
			map[string]any{"id": "a", "url": "https://img/1-dup.jpg"},
			map[string]any{"url": "https://img/2.jpg"},
			map[string]any{"id": "b", "url": " "},
			"not-a-photo",
		},
	})
	if err != nil {
		t.Fatalf("ReconcileForUpdate: %v", err)
	}

	gallery, ok := cols["image_gallery"].([]map[string]any)
	if !ok {
		t.Fatalf("gallery type: %T", cols["image_gallery"])
	}
	if len(gallery) != 2 {
		t.Fatalf("expected duplicate and blank entries dropped, got %d", len(gallery))
	}
	if gallery[0]["url"] != "https://img/1.jpg" {
		t.Fatalf("first entry wins on duplicate identity: %v", gallery[0])
	}
	if id, _ := gallery[1]["id"].(string); id == "" {
		t.Fatal("entries without an id get one assigned")
	}
}

func TestReconcileForCreateMissingFields(t *testing.T) {
	_, err := ReconcileForCreate(Payload{
		"title":       "Clean SUV",
		"vehicleType": "suv",
		"countryCode": "CA",
		// city omitted
	})

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Fields["city"] == "" {
		t.Fatalf("city must be named among missing fields: %v", verr.Fields)
	}
	if len(verr.Fields) != 1 {
		t.Fatalf("only city is missing: %v", verr.Fields)
	}
}

func TestReconcileForHostCreateRequiresTransmission(t *testing.T) {
	payload := Payload{
		"title":       "Clean SUV",
		"vehicleType": "suv",
		"countryCode": "ca",
		"city":        "Toronto",
	}

	if _, err := ReconcileForCreate(payload); err != nil {
		t.Fatalf("public create contract should pass: %v", err)
	}

	_, err := ReconcileForHostCreate(payload)
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Fields["transmission"] == "" {
		t.Fatalf("host create requires transmission: %v", err)
	}
}

func TestReconcileForCreateDefaults(t *testing.T) {
	cols, err := ReconcileForCreate(Payload{
		"title":       "Clean SUV",
		"vehicleType": "suv",
		"countryCode": "ca",
		"city":        "Toronto",
	})
	if err != nil {
		t.Fatalf("ReconcileForCreate: %v", err)
	}

	if cols["image_public"] != true {
		t.Fatalf("image_public defaults to true: %v", cols["image_public"])
	}
	if cols["status"] != StatusDraft {
		t.Fatalf("status defaults to draft: %v", cols["status"])
	}
	if cols["country_code"] != "CA" {
		t.Fatalf("country code upper-cased at write time: %v", cols["country_code"])
	}
}

func TestReconcileForUpdateEmptyPayload(t *testing.T) {
	_, err := ReconcileForUpdate(Payload{"unknown": "thing"})

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("unrecognized payload is a validation error, got %v", err)
	}
}

func TestReconcileForPublishKeepsStoredBagValues(t *testing.T) {
	existing := map[string]any{
		"vehicle": map[string]any{"make": "Toyota", "seats": float64(5)},
		"pickup":  map[string]any{"city": "Toronto"},
	}

	cols := ReconcileForPublish(Payload{"status": "active"}, existing)

	if cols["status"] != StatusActive {
		t.Fatalf("publish sets active status: %v", cols["status"])
	}
	if cols["make"] != "Toyota" {
		t.Fatalf("stored bag values survive a status-only publish: %v", cols["make"])
	}
	if cols["seats"] != 5 {
		t.Fatalf("seats from stored bag: %v", cols["seats"])
	}
	if cols["pickup_city"] != "Toronto" {
		t.Fatalf("pickup city from stored bag: %v", cols["pickup_city"])
	}
}

func TestReconcileForPublishIncomingOverridesStored(t *testing.T) {
	existing := map[string]any{
		"vehicle": map[string]any{"make": "Toyota", "model": "Corolla"},
	}

	cols := ReconcileForPublish(Payload{
		"status": "active",
		"features": map[string]any{
			"vehicle": map[string]any{"make": "Honda"},
		},
	}, existing)

	if cols["make"] != "Honda" {
		t.Fatalf("incoming bag value wins: %v", cols["make"])
	}
	if cols["model"] != "Corolla" {
		t.Fatalf("untouched stored value survives the merge: %v", cols["model"])
	}

	merged, ok := cols["features"].(map[string]any)
	if !ok {
		t.Fatalf("merged bag persists as the features column: %T", cols["features"])
	}
	vehicle := merged["vehicle"].(map[string]any)
	if vehicle["make"] != "Honda" || vehicle["model"] != "Corolla" {
		t.Fatalf("merged vehicle bag: %v", vehicle)
	}
}
