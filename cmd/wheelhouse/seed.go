package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"wheelhouse/internal/listing"
	"wheelhouse/internal/store"
)

func seedDemoData(ctx context.Context, db *sql.DB, dataStore *store.Store) error {
	hostID, err := ensureDemoHost(ctx, db, dataStore)
	if err != nil {
		return err
	}
	if hostID == 0 {
		return nil
	}
	return ensureDemoListings(ctx, db, dataStore, hostID)
}

const demoHostEmail = "demo@wheelhouse.local"

func ensureDemoHost(ctx context.Context, db *sql.DB, dataStore *store.Store) (int64, error) {
	hostsTableExists, err := tableExists(ctx, db, "hosts")
	if err != nil {
		return 0, fmt.Errorf("check hosts table: %w", err)
	}
	if !hostsTableExists {
		return 0, nil
	}

	hostID, err := dataStore.CreateHost(ctx, demoHostEmail, "demo-secret-123")
	if err == nil {
		return hostID, nil
	}
	if !errors.Is(err, store.ErrHostExists) {
		return 0, fmt.Errorf("seed demo host: %w", err)
	}

	if err := db.QueryRowContext(ctx, `
		SELECT id
		FROM hosts
		WHERE email = $1
	`, demoHostEmail).Scan(&hostID); err != nil {
		return 0, fmt.Errorf("lookup demo host: %w", err)
	}
	return hostID, nil
}

func ensureDemoListings(ctx context.Context, db *sql.DB, dataStore *store.Store, hostID int64) error {
	var count int
	if err := db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM listings
		WHERE host_id = $1
	`, hostID).Scan(&count); err != nil {
		return fmt.Errorf("count demo listings: %w", err)
	}
	if count > 0 {
		return nil
	}

	payloads := []listing.Payload{
		{
			"title":        "2021 Toyota Corolla LE",
			"vehicleType":  "sedan",
			"transmission": "automatic",
			"fuelType":     "gasoline",
			"make":         "Toyota",
			"model":        "Corolla",
			"year":         2021,
			"seats":        5,
			"pricePerDay":  54,
			"currency":     "CAD",
			"countryCode":  "ca",
			"city":         "Toronto",
			"area":         "Downtown",
			"pickupLat":    43.6532,
			"pickupLng":    -79.3832,
			"status":       "active",
		},
		{
			"title":        "2019 Honda CR-V Touring",
			"vehicleType":  "suv",
			"transmission": "automatic",
			"fuelType":     "gasoline",
			"make":         "Honda",
			"model":        "CR-V",
			"year":         2019,
			"seats":        5,
			"pricePerDay":  78,
			"currency":     "CAD",
			"countryCode":  "ca",
			"city":         "Toronto",
			"area":         "North York",
			"pickupLat":    43.7615,
			"pickupLng":    -79.4111,
			"status":       "active",
		},
		{
			"title":        "2022 Tesla Model 3 Long Range",
			"vehicleType":  "sedan",
			"transmission": "automatic",
			"fuelType":     "electric",
			"make":         "Tesla",
			"model":        "Model 3",
			"year":         2022,
			"seats":        5,
			"pricePerDay":  120,
			"currency":     "CAD",
			"countryCode":  "ca",
			"city":         "Vancouver",
			"area":         "Kitsilano",
			"pickupLat":    49.2684,
			"pickupLng":    -123.1565,
			"status":       "active",
		},
		{
			"title":        "2018 Ford Transit Cargo",
			"vehicleType":  "van",
			"transmission": "automatic",
			"fuelType":     "diesel",
			"make":         "Ford",
			"model":        "Transit",
			"year":         2018,
			"seats":        2,
			"pricePerDay":  95,
			"currency":     "CAD",
			"countryCode":  "ca",
			"city":         "Montreal",
			"area":         "Plateau",
			"pickupLat":    45.5231,
			"pickupLng":    -73.5817,
		},
	}

	for _, payload := range payloads {
		cols, err := listing.ReconcileForHostCreate(payload)
		if err != nil {
			return fmt.Errorf("reconcile demo listing %q: %w", payload["title"], err)
		}
		if _, err := dataStore.CreateListing(ctx, hostID, cols); err != nil {
			return fmt.Errorf("insert demo listing %q: %w", payload["title"], err)
		}
	}

	return nil
}

func tableExists(ctx context.Context, db *sql.DB, table string) (bool, error) {
	var name sql.NullString
	if err := db.QueryRowContext(ctx, `SELECT to_regclass($1)`, table).Scan(&name); err != nil {
		return false, err
	}
	return name.Valid, nil
}
