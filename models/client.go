package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Client statuses, lead-to-completion.
const (
	StatusLead      = "Lead"
	StatusPending   = "Pending"
	StatusConfirmed = "Confirmed"
	StatusCompleted = "Completed"
)

func validStatus(s string) bool {
	switch s {
	case StatusLead, StatusPending, StatusConfirmed, StatusCompleted:
		return true
	}
	return false
}

// Client represents a customer event tracked through lead-to-completion
// stages. Budget is optional; aggregation treats an absent budget as zero.
type Client struct {
	ID         int                 `json:"id"`
	Name       string              `json:"name"`
	Email      string              `json:"email"`
	Phone      string              `json:"phone"`
	EventDate  time.Time           `json:"eventDate"`
	EventType  string              `json:"eventType"`
	Budget     decimal.NullDecimal `json:"budget"`
	Status     string              `json:"status"`
	GuestCount *int                `json:"guestCount"`
	VenueID    *int                `json:"venueId"`
	Notes      *string             `json:"notes"`
	CreatedAt  time.Time           `json:"createdAt"`
	// Eager-loaded on single-client fetch
	Services []PlannedService `json:"services,omitempty"`
	Expenses []Expense        `json:"expenses,omitempty"`
}

// PlannedService is a vendor service committed to a client's event.
// Planned services are created and deleted, never edited in place.
type PlannedService struct {
	ID          int             `json:"id"`
	ClientID    int             `json:"clientId"`
	VendorID    *int            `json:"vendorId"`
	ServiceName string          `json:"serviceName"`
	Cost        decimal.Decimal `json:"cost"`
	Notes       *string         `json:"notes"`
}

// ClientInput is used for creating clients.
type ClientInput struct {
	Name       string              `json:"name"`
	Email      string              `json:"email"`
	Phone      string              `json:"phone"`
	EventDate  time.Time           `json:"eventDate"`
	EventType  string              `json:"eventType"`
	Budget     decimal.NullDecimal `json:"budget"`
	Status     string              `json:"status"`
	GuestCount *int                `json:"guestCount"`
	VenueID    *int                `json:"venueId"`
	Notes      *string             `json:"notes"`
}

func (c *ClientInput) Validate() string {
	if c.Name == "" {
		return "name is required"
	}
	if c.Email == "" {
		return "email is required"
	}
	if c.Phone == "" {
		return "phone is required"
	}
	if c.EventDate.IsZero() {
		return "eventDate is required"
	}
	if c.EventType == "" {
		return "eventType is required"
	}
	if c.Status == "" {
		c.Status = StatusLead
	}
	if !validStatus(c.Status) {
		return "status must be one of: Lead, Pending, Confirmed, Completed"
	}
	if c.Budget.Valid && c.Budget.Decimal.IsNegative() {
		return "budget must be non-negative"
	}
	if c.GuestCount != nil && *c.GuestCount < 0 {
		return "guestCount must be non-negative"
	}
	return ""
}

// ClientUpdate is used for partial updates; nil fields are left untouched.
type ClientUpdate struct {
	Name       *string              `json:"name"`
	Email      *string              `json:"email"`
	Phone      *string              `json:"phone"`
	EventDate  *time.Time           `json:"eventDate"`
	EventType  *string              `json:"eventType"`
	Budget     *decimal.NullDecimal `json:"budget"`
	Status     *string              `json:"status"`
	GuestCount *int                 `json:"guestCount"`
	VenueID    *int                 `json:"venueId"`
	Notes      *string              `json:"notes"`
}

func (c *ClientUpdate) Validate() string {
	if c.Name != nil && *c.Name == "" {
		return "name must not be empty"
	}
	if c.Email != nil && *c.Email == "" {
		return "email must not be empty"
	}
	if c.Phone != nil && *c.Phone == "" {
		return "phone must not be empty"
	}
	if c.EventDate != nil && c.EventDate.IsZero() {
		return "eventDate must not be empty"
	}
	if c.EventType != nil && *c.EventType == "" {
		return "eventType must not be empty"
	}
	if c.Status != nil && !validStatus(*c.Status) {
		return "status must be one of: Lead, Pending, Confirmed, Completed"
	}
	if c.Budget != nil && c.Budget.Valid && c.Budget.Decimal.IsNegative() {
		return "budget must be non-negative"
	}
	if c.GuestCount != nil && *c.GuestCount < 0 {
		return "guestCount must be non-negative"
	}
	return ""
}

// PlannedServiceInput is used for creating planned services.
type PlannedServiceInput struct {
	VendorID    *int            `json:"vendorId"`
	ServiceName string          `json:"serviceName"`
	Cost        decimal.Decimal `json:"cost"`
	Notes       *string         `json:"notes"`
}

func (p *PlannedServiceInput) Validate() string {
	if p.ServiceName == "" {
		return "serviceName is required"
	}
	if p.Cost.IsNegative() {
		return "cost must be non-negative"
	}
	return ""
}
