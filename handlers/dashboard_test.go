package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestDashboardStats(t *testing.T) {
	r := newTestRouter(t)
	createVendor(t, r, `{"name": "Gourmet Catering Co.", "category": "Catering"}`)
	createVenue(t, r, `{"name": "Hall", "location": "Main St", "basePrice": "1000.00", "capacity": 50}`)

	now := time.Now()
	createClient(t, r, clientBody("Upcoming Lead", now.AddDate(0, 1, 0), ""))
	createClient(t, r, clientBody("Confirmed", now.AddDate(0, 2, 0), `"status": "Confirmed", "budget": "12000.00"`))
	createClient(t, r, clientBody("Done", now.AddDate(0, 0, -30), `"status": "Completed", "budget": "8000.00"`))

	rec := doRequest(t, r, http.MethodGet, "/api/dashboard", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, body %s", rec.Code, rec.Body.String())
	}
	var stats struct {
		TotalVendors   int             `json:"totalVendors"`
		TotalVenues    int             `json:"totalVenues"`
		TotalClients   int             `json:"totalClients"`
		ActiveClients  int             `json:"activeClients"`
		UpcomingEvents int             `json:"upcomingEvents"`
		BookedBudget   decimal.Decimal `json:"bookedBudget"`
		RecentClients  []struct {
			Name string `json:"name"`
		} `json:"recentClients"`
	}
	decodeData(t, rec, &stats)

	if stats.TotalVendors != 1 || stats.TotalVenues != 1 || stats.TotalClients != 3 {
		t.Errorf("counts: %d vendors, %d venues, %d clients", stats.TotalVendors, stats.TotalVenues, stats.TotalClients)
	}
	if stats.ActiveClients != 2 {
		t.Errorf("activeClients: got %d, want 2 (Lead + Confirmed)", stats.ActiveClients)
	}
	if stats.UpcomingEvents != 2 {
		t.Errorf("upcomingEvents: got %d, want 2", stats.UpcomingEvents)
	}
	// Booked budget covers Confirmed and Completed clients.
	if !stats.BookedBudget.Equal(decimal.RequireFromString("20000.00")) {
		t.Errorf("bookedBudget: got %s, want 20000.00", stats.BookedBudget)
	}
	if len(stats.RecentClients) != 3 {
		t.Errorf("recentClients: got %d, want 3", len(stats.RecentClients))
	}
}

func TestRevenueEndpoint(t *testing.T) {
	r := newTestRouter(t)
	now := time.Now()
	createClient(t, r, clientBody("This Month", now, `"budget": "5000.00"`))
	createClient(t, r, clientBody("Also This Month", now, `"budget": "2500.00"`))
	createClient(t, r, clientBody("Long Ago", now.AddDate(0, -8, 0), `"budget": "9000.00"`))

	rec := doRequest(t, r, http.MethodGet, "/api/dashboard/revenue?range=6months", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, body %s", rec.Code, rec.Body.String())
	}
	var series []struct {
		Period string          `json:"period"`
		Total  decimal.Decimal `json:"total"`
	}
	decodeData(t, rec, &series)

	if len(series) != 1 {
		t.Fatalf("got %d buckets, want 1: %+v", len(series), series)
	}
	if series[0].Period != now.Format("Jan 2006") {
		t.Errorf("period: got %q, want %q", series[0].Period, now.Format("Jan 2006"))
	}
	if !series[0].Total.Equal(decimal.RequireFromString("7500.00")) {
		t.Errorf("total: got %s, want 7500.00", series[0].Total)
	}
}

func TestRevenueInvalidRange(t *testing.T) {
	r := newTestRouter(t)
	rec := doRequest(t, r, http.MethodGet, "/api/dashboard/revenue?range=decade", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("got status %d, want 400", rec.Code)
	}
}

func TestRevenueDefaultsToSixMonths(t *testing.T) {
	r := newTestRouter(t)
	rec := doRequest(t, r, http.MethodGet, "/api/dashboard/revenue", "")
	if rec.Code != http.StatusOK {
		t.Errorf("got status %d, want 200", rec.Code)
	}
}
