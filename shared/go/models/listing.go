package models

import "time"

// Photo is one entry of a listing's image gallery.
type Photo struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Listing is the externally visible shape of a stored listing row.
type Listing struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	VehicleType  string `json:"vehicleType,omitempty"`
	Transmission string `json:"transmission,omitempty"`
	FuelType     string `json:"fuelType,omitempty"`
	Make         string `json:"make,omitempty"`
	Model        string `json:"model,omitempty"`
	Trim         string `json:"trim,omitempty"`
	BodyType     string `json:"bodyType,omitempty"`
	Year         int    `json:"year,omitempty"`
	Seats        int    `json:"seats,omitempty"`

	Currency    string `json:"currency,omitempty"`
	PricePerDay int    `json:"pricePerDay"`

	IsFeatured bool   `json:"isFeatured"`
	IsPopular  bool   `json:"isPopular"`
	Status     string `json:"status"`

	CountryCode string `json:"countryCode,omitempty"`
	City        string `json:"city,omitempty"`
	Area        string `json:"area,omitempty"`
	FullAddress string `json:"fullAddress,omitempty"`

	PickupLat        *float64 `json:"pickupLat,omitempty"`
	PickupLng        *float64 `json:"pickupLng,omitempty"`
	PickupAddress    string   `json:"pickupAddress,omitempty"`
	PickupCity       string   `json:"pickupCity,omitempty"`
	PickupState      string   `json:"pickupState,omitempty"`
	PickupCountry    string   `json:"pickupCountry,omitempty"`
	PickupPostalCode string   `json:"pickupPostalCode,omitempty"`

	HasImage bool    `json:"hasImage"`
	ImageURL string  `json:"imageUrl,omitempty"`
	Gallery  []Photo `json:"imageGallery,omitempty"`

	Features     map[string]any `json:"features,omitempty"`
	Requirements map[string]any `json:"requirements,omitempty"`
	PricingRules map[string]any `json:"pricingRules,omitempty"`

	Rating  float64 `json:"rating"`
	Reviews int     `json:"reviews"`

	DistanceKm *float64 `json:"distanceKm,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
