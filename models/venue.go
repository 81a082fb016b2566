package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Venue represents a bookable physical location.
type Venue struct {
	ID             int             `json:"id"`
	Name           string          `json:"name"`
	Location       string          `json:"location"`
	Capacity       int             `json:"capacity"`
	BasePrice      decimal.Decimal `json:"basePrice"`
	ExtraCharges   *string         `json:"extraCharges"`
	Notes          *string         `json:"notes"`
	GoogleMapsLink *string         `json:"googleMapsLink"`
	MainImage      *string         `json:"mainImage"`
	BookingPhone   *string         `json:"bookingPhone"`
	BookingEmail   *string         `json:"bookingEmail"`
	VenueType      *string         `json:"venueType"` // Indoor / Outdoor / Both
	CreatedAt      time.Time       `json:"createdAt"`
	// Eager-loaded on single-venue fetch
	Options []BookingOption `json:"options,omitempty"`
	Images  []VenueImage    `json:"images,omitempty"`
}

// BookingOption is a rental package offered by a venue.
type BookingOption struct {
	ID          int             `json:"id"`
	VenueID     int             `json:"venueId"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency"`
	Description *string         `json:"description"`
}

// VenueImage is a gallery image belonging to a venue.
type VenueImage struct {
	ID       int    `json:"id"`
	VenueID  int    `json:"venueId"`
	ImageURL string `json:"imageUrl"`
}

// VenueInput is used for creating venues.
type VenueInput struct {
	Name           string          `json:"name"`
	Location       string          `json:"location"`
	Capacity       int             `json:"capacity"`
	BasePrice      decimal.Decimal `json:"basePrice"`
	ExtraCharges   *string         `json:"extraCharges"`
	Notes          *string         `json:"notes"`
	GoogleMapsLink *string         `json:"googleMapsLink"`
	MainImage      *string         `json:"mainImage"`
	BookingPhone   *string         `json:"bookingPhone"`
	BookingEmail   *string         `json:"bookingEmail"`
	VenueType      *string         `json:"venueType"`
}

func (v *VenueInput) Validate() string {
	if v.Name == "" {
		return "name is required"
	}
	if v.Location == "" {
		return "location is required"
	}
	if v.Capacity < 0 {
		return "capacity must be non-negative"
	}
	if v.BasePrice.IsNegative() {
		return "basePrice must be non-negative"
	}
	return ""
}

// VenueUpdate is used for partial updates; nil fields are left untouched.
type VenueUpdate struct {
	Name           *string          `json:"name"`
	Location       *string          `json:"location"`
	Capacity       *int             `json:"capacity"`
	BasePrice      *decimal.Decimal `json:"basePrice"`
	ExtraCharges   *string          `json:"extraCharges"`
	Notes          *string          `json:"notes"`
	GoogleMapsLink *string          `json:"googleMapsLink"`
	MainImage      *string          `json:"mainImage"`
	BookingPhone   *string          `json:"bookingPhone"`
	BookingEmail   *string          `json:"bookingEmail"`
	VenueType      *string          `json:"venueType"`
}

func (v *VenueUpdate) Validate() string {
	if v.Name != nil && *v.Name == "" {
		return "name must not be empty"
	}
	if v.Location != nil && *v.Location == "" {
		return "location must not be empty"
	}
	if v.Capacity != nil && *v.Capacity < 0 {
		return "capacity must be non-negative"
	}
	if v.BasePrice != nil && v.BasePrice.IsNegative() {
		return "basePrice must be non-negative"
	}
	return ""
}

// BookingOptionInput is used for creating booking options.
type BookingOptionInput struct {
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency"`
	Description *string         `json:"description"`
}

func (b *BookingOptionInput) Validate() string {
	if b.Name == "" {
		return "name is required"
	}
	if b.Price.IsNegative() {
		return "price must be non-negative"
	}
	if b.Currency == "" {
		b.Currency = "USD"
	}
	return ""
}

// VenueImagesInput is used for bulk-adding gallery images.
type VenueImagesInput struct {
	Images []string `json:"images"`
}

func (v *VenueImagesInput) Validate() string {
	if len(v.Images) == 0 {
		return "images must not be empty"
	}
	for _, url := range v.Images {
		if url == "" {
			return "image urls must not be empty"
		}
	}
	return ""
}
