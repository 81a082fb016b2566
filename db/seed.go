package db

import (
	"database/sql"
	"log/slog"

	"github.com/eventdesk/eventdesk/models"
)

// Seed loads a small demo dataset. It is a no-op when the database already
// holds any vendors, so restarting with SEED_DEMO=1 never duplicates rows.
func Seed(database *sql.DB) error {
	var count int
	if err := database.QueryRow("SELECT COUNT(*) FROM vendors").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		slog.Debug("seed skipped, data already present")
		return nil
	}

	tx, err := database.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	vendors := []struct {
		name, category, phone, email, notes string
	}{
		{"Gourmet Catering Co.", "Catering", "555-0101", "events@gourmetcatering.example", "Full-service catering, dietary menus available"},
		{"Sound & Vision", "Entertainment", "555-0102", "book@soundandvision.example", "DJ, live sound, and lighting rigs"},
		{"Bloom & Petal", "Florist", "555-0103", "hello@bloompetal.example", ""},
	}
	vendorIDs := make([]int64, 0, len(vendors))
	for _, v := range vendors {
		res, err := tx.Exec(`INSERT INTO vendors (name, category, phone, email, notes)
			VALUES (?, ?, ?, ?, NULLIF(?, ''))`, v.name, v.category, v.phone, v.email, v.notes)
		if err != nil {
			return err
		}
		id, _ := res.LastInsertId()
		vendorIDs = append(vendorIDs, id)
	}

	// One record arrives in the old free-text contact shape and goes
	// through the same split the import path uses.
	phone, email := models.ParseLegacyContact("Phone: 555-0110 | Email: shots@lensandlight.example")
	res, err := tx.Exec(`INSERT INTO vendors (name, category, phone, email, notes)
		VALUES (?, ?, NULLIF(?, ''), NULLIF(?, ''), ?)`,
		"Lens & Light Photography", "Photography", phone, email, "Migrated from the legacy vendor sheet")
	if err != nil {
		return err
	}
	photographerID, _ := res.LastInsertId()

	products := []struct {
		vendorID    int64
		name, price string
	}{
		{vendorIDs[0], "Buffet Package (per 50 guests)", "2500.00"},
		{vendorIDs[0], "Plated Dinner (per 50 guests)", "3750.00"},
		{vendorIDs[1], "DJ Evening Set", "800.00"},
		{vendorIDs[1], "Full AV Production", "2200.00"},
		{photographerID, "Wedding Day Coverage", "1800.00"},
	}
	for _, p := range products {
		if _, err := tx.Exec(`INSERT INTO vendor_products (vendor_id, name, price, currency)
			VALUES (?, ?, ?, 'USD')`, p.vendorID, p.name, p.price); err != nil {
			return err
		}
	}

	venues := []struct {
		name, location, basePrice string
		capacity                  int
		venueType                 string
	}{
		{"The Grand Ballroom", "12 Harbor St, Portside", "5000.00", 300, "Ballroom"},
		{"Sunset Garden", "88 Meadow Ln, Hillcrest", "3200.00", 150, "Outdoor"},
	}
	venueIDs := make([]int64, 0, len(venues))
	for _, v := range venues {
		res, err := tx.Exec(`INSERT INTO venues (name, location, base_price, capacity, venue_type)
			VALUES (?, ?, ?, ?, ?)`, v.name, v.location, v.basePrice, v.capacity, v.venueType)
		if err != nil {
			return err
		}
		id, _ := res.LastInsertId()
		venueIDs = append(venueIDs, id)
	}

	options := []struct {
		venueID     int64
		name, price string
	}{
		{venueIDs[0], "Weekend Evening", "6500.00"},
		{venueIDs[0], "Weekday Daytime", "4200.00"},
		{venueIDs[1], "Garden Ceremony + Reception", "3900.00"},
	}
	for _, o := range options {
		if _, err := tx.Exec(`INSERT INTO booking_options (venue_id, name, price, currency)
			VALUES (?, ?, ?, 'USD')`, o.venueID, o.name, o.price); err != nil {
			return err
		}
	}

	clients := []struct {
		name, email, phone string
		eventDate          string
		eventType, budget  string
		status             string
		guestCount         int
		venueID            int64
	}{
		{"Acme Corp", "events@acme.example", "555-0201", "2026-10-15 18:00:00", "Corporate Gala", "25000.00", models.StatusConfirmed, 200, venueIDs[0]},
		{"Jordan & Sam", "jordansam@mail.example", "555-0202", "2026-09-05 16:00:00", "Wedding", "18000.00", models.StatusPending, 120, venueIDs[1]},
		{"Riverside High Reunion", "reunion@riverside.example", "555-0203", "2027-03-20 19:00:00", "Reunion", "8000.00", models.StatusLead, 90, 0},
	}
	clientIDs := make([]int64, 0, len(clients))
	for _, c := range clients {
		var venueID any
		if c.venueID != 0 {
			venueID = c.venueID
		}
		res, err := tx.Exec(`INSERT INTO clients (name, email, phone, event_date, event_type, budget, status, guest_count, venue_id)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			c.name, c.email, c.phone, c.eventDate, c.eventType, c.budget, c.status, c.guestCount, venueID)
		if err != nil {
			return err
		}
		id, _ := res.LastInsertId()
		clientIDs = append(clientIDs, id)
	}

	services := []struct {
		clientID, vendorID int64
		name, cost         string
	}{
		{clientIDs[0], vendorIDs[0], "Plated dinner for 200", "15000.00"},
		{clientIDs[0], vendorIDs[1], "Full AV production", "2200.00"},
		{clientIDs[1], photographerID, "Wedding day coverage", "1800.00"},
	}
	for _, s := range services {
		if _, err := tx.Exec(`INSERT INTO planned_services (client_id, vendor_id, service_name, cost)
			VALUES (?, ?, ?, ?)`, s.clientID, s.vendorID, s.name, s.cost); err != nil {
			return err
		}
	}

	expenses := []struct {
		clientID   int64
		category   string
		item, cost string
		paid       bool
	}{
		{clientIDs[0], "Decor", "Stage backdrop", "650.00", true},
		{clientIDs[0], "Printing", "Invitations and badges", "320.00", false},
		{clientIDs[1], "Decor", "Floral arch deposit", "400.00", true},
	}
	for _, e := range expenses {
		if _, err := tx.Exec(`INSERT INTO expenses (client_id, category, item, cost, is_paid)
			VALUES (?, ?, ?, ?, ?)`, e.clientID, e.category, e.item, e.cost, e.paid); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	slog.Info("seeded demo data",
		"vendors", len(vendors)+1, "venues", len(venues), "clients", len(clients))
	return nil
}
