package handlers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/eventdesk/eventdesk/models"
	"github.com/shopspring/decimal"
)

func createClient(t *testing.T, r http.Handler, body string) models.Client {
	t.Helper()
	rec := doRequest(t, r, http.MethodPost, "/api/clients", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create client: got status %d, body %s", rec.Code, rec.Body.String())
	}
	var c models.Client
	decodeData(t, rec, &c)
	return c
}

func clientBody(name string, eventDate time.Time, extra string) string {
	body := fmt.Sprintf(`{"name": %q, "email": "a@b.example", "phone": "555-0100", "eventDate": %q, "eventType": "Wedding"`,
		name, eventDate.Format(time.RFC3339))
	if extra != "" {
		body += ", " + extra
	}
	return body + "}"
}

func TestCreateClientDefaultsStatus(t *testing.T) {
	r := newTestRouter(t)
	c := createClient(t, r, clientBody("Acme", time.Now().AddDate(0, 1, 0), ""))
	if c.Status != models.StatusLead {
		t.Errorf("got status %q, want %q", c.Status, models.StatusLead)
	}
	if c.ID == 0 {
		t.Error("expected a non-zero id")
	}
}

func TestCreateClientValidation(t *testing.T) {
	r := newTestRouter(t)
	tests := []struct {
		name string
		body string
	}{
		{"missing name", `{"email": "a@b.example", "eventDate": "2026-10-01T00:00:00Z", "eventType": "Gala"}`},
		{"missing event date", `{"name": "Acme", "email": "a@b.example", "eventType": "Gala"}`},
		{"unknown status", clientBody("Acme", time.Now(), `"status": "Archived"`)},
		{"unknown venue", clientBody("Acme", time.Now(), `"venueId": 999`)},
		{"malformed json", `{"name": `},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, r, http.MethodPost, "/api/clients", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("got status %d, want 400 (body %s)", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestGetClientNotFound(t *testing.T) {
	r := newTestRouter(t)
	rec := doRequest(t, r, http.MethodGet, "/api/clients/42", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("got status %d, want 404", rec.Code)
	}
}

func TestUpdateClientPartial(t *testing.T) {
	r := newTestRouter(t)
	c := createClient(t, r, clientBody("Acme", time.Now().AddDate(0, 2, 0), `"budget": "10000.00"`))

	rec := doRequest(t, r, http.MethodPatch, fmt.Sprintf("/api/clients/%d", c.ID), `{"status": "Confirmed"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, body %s", rec.Code, rec.Body.String())
	}
	var updated models.Client
	decodeData(t, rec, &updated)
	if updated.Status != models.StatusConfirmed {
		t.Errorf("got status %q, want Confirmed", updated.Status)
	}
	if updated.Name != "Acme" {
		t.Errorf("untouched field changed: name = %q", updated.Name)
	}
	if !updated.Budget.Valid || !updated.Budget.Decimal.Equal(decimal.RequireFromString("10000.00")) {
		t.Errorf("untouched field changed: budget = %v", updated.Budget)
	}
}

func TestUpdateClientClearsVenue(t *testing.T) {
	r := newTestRouter(t)
	rec := doRequest(t, r, http.MethodPost, "/api/venues",
		`{"name": "Hall", "location": "Main St", "basePrice": "1000.00", "capacity": 50}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create venue: got status %d, body %s", rec.Code, rec.Body.String())
	}
	var v models.Venue
	decodeData(t, rec, &v)

	c := createClient(t, r, clientBody("Acme", time.Now().AddDate(0, 1, 0), fmt.Sprintf(`"venueId": %d`, v.ID)))
	if c.VenueID == nil || *c.VenueID != v.ID {
		t.Fatalf("venue not assigned: %v", c.VenueID)
	}

	rec = doRequest(t, r, http.MethodPatch, fmt.Sprintf("/api/clients/%d", c.ID), `{"venueId": 0}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, body %s", rec.Code, rec.Body.String())
	}
	var updated models.Client
	decodeData(t, rec, &updated)
	if updated.VenueID != nil {
		t.Errorf("venueId 0 should clear the venue, got %d", *updated.VenueID)
	}
}

func TestDeleteClientCascades(t *testing.T) {
	r := newTestRouter(t)
	c := createClient(t, r, clientBody("Acme", time.Now().AddDate(0, 3, 0), ""))

	for i := 0; i < 2; i++ {
		body := fmt.Sprintf(`{"serviceName": "Service %d", "cost": "100.00"}`, i)
		rec := doRequest(t, r, http.MethodPost, fmt.Sprintf("/api/clients/%d/services", c.ID), body)
		if rec.Code != http.StatusCreated {
			t.Fatalf("create service: got status %d, body %s", rec.Code, rec.Body.String())
		}
	}
	for i := 0; i < 3; i++ {
		body := fmt.Sprintf(`{"category": "Decor", "item": "Item %d", "cost": "50.00"}`, i)
		rec := doRequest(t, r, http.MethodPost, fmt.Sprintf("/api/clients/%d/expenses", c.ID), body)
		if rec.Code != http.StatusCreated {
			t.Fatalf("create expense: got status %d, body %s", rec.Code, rec.Body.String())
		}
	}

	rec := doRequest(t, r, http.MethodDelete, fmt.Sprintf("/api/clients/%d", c.ID), "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete: got status %d, body %s", rec.Code, rec.Body.String())
	}
	if rec.Body.Len() != 0 {
		t.Errorf("delete should have an empty body, got %q", rec.Body.String())
	}

	var services, expenses int
	if err := DB.QueryRow("SELECT COUNT(*) FROM planned_services WHERE client_id = ?", c.ID).Scan(&services); err != nil {
		t.Fatal(err)
	}
	if err := DB.QueryRow("SELECT COUNT(*) FROM expenses WHERE client_id = ?", c.ID).Scan(&expenses); err != nil {
		t.Fatal(err)
	}
	if services != 0 || expenses != 0 {
		t.Errorf("children survived the delete: %d services, %d expenses", services, expenses)
	}

	rec = doRequest(t, r, http.MethodGet, fmt.Sprintf("/api/clients/%d", c.ID), "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("deleted client still readable: status %d", rec.Code)
	}
}

func TestDeleteClientNotFound(t *testing.T) {
	r := newTestRouter(t)
	rec := doRequest(t, r, http.MethodDelete, "/api/clients/42", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("got status %d, want 404", rec.Code)
	}
}

func TestListClientsPrioritySort(t *testing.T) {
	r := newTestRouter(t)
	now := time.Now()
	createClient(t, r, clientBody("Far Out", now.AddDate(0, 0, 60), ""))
	createClient(t, r, clientBody("Past Due", now.AddDate(0, 0, -2), ""))
	createClient(t, r, clientBody("This Week", now.AddDate(0, 0, 3), ""))

	rec := doRequest(t, r, http.MethodGet, "/api/clients?sort=priority", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, body %s", rec.Code, rec.Body.String())
	}
	var clients []struct {
		Name     string `json:"name"`
		Priority struct {
			Level    string `json:"level"`
			Text     string `json:"text"`
			DaysLeft int    `json:"daysLeft"`
		} `json:"priority"`
	}
	decodeData(t, rec, &clients)

	wantOrder := []string{"Past Due", "This Week", "Far Out"}
	wantLevels := []string{"Overdue", "High", "Low"}
	if len(clients) != len(wantOrder) {
		t.Fatalf("got %d clients, want %d", len(clients), len(wantOrder))
	}
	for i := range wantOrder {
		if clients[i].Name != wantOrder[i] {
			t.Errorf("position %d: got %q, want %q", i, clients[i].Name, wantOrder[i])
		}
		if clients[i].Priority.Level != wantLevels[i] {
			t.Errorf("%s: got level %q, want %q", clients[i].Name, clients[i].Priority.Level, wantLevels[i])
		}
	}
}

func TestListClientsStatusFilter(t *testing.T) {
	r := newTestRouter(t)
	createClient(t, r, clientBody("Lead One", time.Now().AddDate(0, 1, 0), ""))
	createClient(t, r, clientBody("Booked", time.Now().AddDate(0, 1, 0), `"status": "Confirmed"`))

	rec := doRequest(t, r, http.MethodGet, "/api/clients?status=Confirmed", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d", rec.Code)
	}
	var clients []models.Client
	decodeData(t, rec, &clients)
	if len(clients) != 1 || clients[0].Name != "Booked" {
		t.Errorf("status filter returned %d clients", len(clients))
	}
}

func TestClientBudgetSummary(t *testing.T) {
	r := newTestRouter(t)
	rec := doRequest(t, r, http.MethodPost, "/api/venues",
		`{"name": "Hall", "location": "Main St", "basePrice": "5000.00", "capacity": 200}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create venue: got status %d, body %s", rec.Code, rec.Body.String())
	}
	var v models.Venue
	decodeData(t, rec, &v)

	c := createClient(t, r, clientBody("Acme", time.Now().AddDate(0, 2, 0),
		fmt.Sprintf(`"budget": "10000.00", "venueId": %d`, v.ID)))

	rec = doRequest(t, r, http.MethodPost, fmt.Sprintf("/api/clients/%d/services", c.ID),
		`{"serviceName": "Catering", "cost": "3000.00"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create service: got status %d", rec.Code)
	}
	// One paid and one unpaid expense; both count toward the total.
	for _, body := range []string{
		`{"category": "Decor", "item": "Backdrop", "cost": "600.00", "isPaid": true}`,
		`{"category": "Decor", "item": "Lighting", "cost": "400.00"}`,
	} {
		rec = doRequest(t, r, http.MethodPost, fmt.Sprintf("/api/clients/%d/expenses", c.ID), body)
		if rec.Code != http.StatusCreated {
			t.Fatalf("create expense: got status %d", rec.Code)
		}
	}

	rec = doRequest(t, r, http.MethodGet, fmt.Sprintf("/api/clients/%d/budget", c.ID), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, body %s", rec.Code, rec.Body.String())
	}
	var summary struct {
		Budget       decimal.Decimal `json:"budget"`
		VenueCost    decimal.Decimal `json:"venueCost"`
		PlannedTotal decimal.Decimal `json:"plannedTotal"`
		ExpenseTotal decimal.Decimal `json:"expenseTotal"`
		Total        decimal.Decimal `json:"total"`
		Remaining    decimal.Decimal `json:"remaining"`
		OverBudget   bool            `json:"overBudget"`
		ByCategory   []struct {
			Name  string          `json:"name"`
			Value decimal.Decimal `json:"value"`
		} `json:"byCategory"`
	}
	decodeData(t, rec, &summary)

	checks := []struct {
		name string
		got  decimal.Decimal
		want string
	}{
		{"venueCost", summary.VenueCost, "5000.00"},
		{"plannedTotal", summary.PlannedTotal, "3000.00"},
		{"expenseTotal", summary.ExpenseTotal, "1000.00"},
		{"total", summary.Total, "9000.00"},
		{"remaining", summary.Remaining, "1000.00"},
	}
	for _, ch := range checks {
		if !ch.got.Equal(decimal.RequireFromString(ch.want)) {
			t.Errorf("%s: got %s, want %s", ch.name, ch.got, ch.want)
		}
	}
	if summary.OverBudget {
		t.Error("within budget, overBudget should be false")
	}
	if len(summary.ByCategory) != 1 || summary.ByCategory[0].Name != "Decor" ||
		!summary.ByCategory[0].Value.Equal(decimal.RequireFromString("1000.00")) {
		t.Errorf("unexpected category breakdown: %+v", summary.ByCategory)
	}
}

func TestClientBudgetNotFound(t *testing.T) {
	r := newTestRouter(t)
	rec := doRequest(t, r, http.MethodGet, "/api/clients/42/budget", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("got status %d, want 404", rec.Code)
	}
}
