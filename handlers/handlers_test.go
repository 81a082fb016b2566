package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/eventdesk/eventdesk/db"
	"github.com/go-chi/chi/v5"
)

// newTestRouter wires the handlers against a fresh in-memory database.
func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()

	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	if err := db.Migrate(database); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	DB = database

	r := chi.NewRouter()
	r.Get("/api/vendors", ListVendors)
	r.Post("/api/vendors", CreateVendor)
	r.Get("/api/vendors/{id}", GetVendor)
	r.Patch("/api/vendors/{id}", UpdateVendor)
	r.Delete("/api/vendors/{id}", DeleteVendor)
	r.Post("/api/vendors/{id}/products", CreateVendorProduct)
	r.Delete("/api/vendor-products/{id}", DeleteVendorProduct)

	r.Get("/api/venues", ListVenues)
	r.Post("/api/venues", CreateVenue)
	r.Get("/api/venues/{id}", GetVenue)
	r.Patch("/api/venues/{id}", UpdateVenue)
	r.Delete("/api/venues/{id}", DeleteVenue)
	r.Post("/api/venues/{id}/booking-options", CreateBookingOption)
	r.Delete("/api/booking-options/{id}", DeleteBookingOption)
	r.Post("/api/venues/{id}/images", AddVenueImages)
	r.Delete("/api/venue-images/{id}", DeleteVenueImage)

	r.Get("/api/clients", ListClients)
	r.Post("/api/clients", CreateClient)
	r.Get("/api/clients/{id}", GetClient)
	r.Patch("/api/clients/{id}", UpdateClient)
	r.Delete("/api/clients/{id}", DeleteClient)
	r.Get("/api/clients/{id}/budget", GetClientBudget)
	r.Post("/api/clients/{id}/services", CreatePlannedService)
	r.Delete("/api/services/{id}", DeletePlannedService)
	r.Get("/api/clients/{id}/expenses", ListClientExpenses)
	r.Post("/api/clients/{id}/expenses", CreateExpense)
	r.Patch("/api/expenses/{id}", UpdateExpense)
	r.Delete("/api/expenses/{id}", DeleteExpense)

	r.Get("/api/dashboard", GetDashboard)
	r.Get("/api/dashboard/revenue", GetRevenue)
	return r
}

func doRequest(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

// decodeData unmarshals the data half of the response envelope into out.
func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	var envelope struct {
		Data  json.RawMessage `json:"data"`
		Error string          `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v (body %q)", err, rec.Body.String())
	}
	if envelope.Error != "" {
		t.Fatalf("unexpected error in response: %q", envelope.Error)
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		t.Fatalf("decode data: %v (data %q)", err, string(envelope.Data))
	}
}
