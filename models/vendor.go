package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Vendor represents a third-party service provider (catering, AV, etc.).
type Vendor struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Phone     *string   `json:"phone"`
	Email     *string   `json:"email"`
	Notes     *string   `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
	// Eager-loaded on single-vendor fetch
	Products []VendorProduct `json:"products,omitempty"`
}

// VendorProduct is a priced offering owned by a vendor.
type VendorProduct struct {
	ID          int             `json:"id"`
	VendorID    int             `json:"vendorId"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency"`
	Description *string         `json:"description"`
}

// VendorInput is used for creating/updating vendors.
type VendorInput struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email"`
	Notes    *string `json:"notes"`
}

func (v *VendorInput) Validate() string {
	if v.Name == "" {
		return "name is required"
	}
	if v.Category == "" {
		return "category is required"
	}
	return ""
}

// VendorUpdate is used for partial updates; nil fields are left untouched.
type VendorUpdate struct {
	Name     *string `json:"name"`
	Category *string `json:"category"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email"`
	Notes    *string `json:"notes"`
}

func (v *VendorUpdate) Validate() string {
	if v.Name != nil && *v.Name == "" {
		return "name must not be empty"
	}
	if v.Category != nil && *v.Category == "" {
		return "category must not be empty"
	}
	return ""
}

// VendorProductInput is used for creating vendor products.
type VendorProductInput struct {
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency"`
	Description *string         `json:"description"`
}

func (p *VendorProductInput) Validate() string {
	if p.Name == "" {
		return "name is required"
	}
	if p.Price.IsNegative() {
		return "price must be non-negative"
	}
	if p.Currency == "" {
		p.Currency = "USD"
	}
	return ""
}

// ParseLegacyContact splits the historical single-field contact encoding
// ("Phone: 555-0123 | Email: a@b.com") into structured phone and email
// values. It exists only for importing legacy records; the API never accepts
// or returns the combined form.
func ParseLegacyContact(contact string) (phone, email string) {
	for _, part := range strings.Split(contact, "|") {
		part = strings.TrimSpace(part)
		lower := strings.ToLower(part)
		switch {
		case strings.HasPrefix(lower, "phone:"):
			phone = strings.TrimSpace(part[len("phone:"):])
		case strings.HasPrefix(lower, "email:"):
			email = strings.TrimSpace(part[len("email:"):])
		case strings.Contains(part, "@") && email == "":
			// Bare address with no label
			email = part
		case phone == "":
			phone = part
		}
	}
	return phone, email
}
