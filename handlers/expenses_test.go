package handlers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/eventdesk/eventdesk/models"
	"github.com/shopspring/decimal"
)

func TestExpensePaidToggle(t *testing.T) {
	r := newTestRouter(t)
	c := createClient(t, r, clientBody("Acme", time.Now().AddDate(0, 1, 0), ""))

	rec := doRequest(t, r, http.MethodPost, fmt.Sprintf("/api/clients/%d/expenses", c.ID),
		`{"category": "Decor", "item": "Backdrop", "cost": "600.00"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: got status %d, body %s", rec.Code, rec.Body.String())
	}
	var e models.Expense
	decodeData(t, rec, &e)
	if e.IsPaid {
		t.Fatal("new expense should default to unpaid")
	}

	rec = doRequest(t, r, http.MethodPatch, fmt.Sprintf("/api/expenses/%d", e.ID), `{"isPaid": true}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("patch: got status %d, body %s", rec.Code, rec.Body.String())
	}
	var updated models.Expense
	decodeData(t, rec, &updated)
	if !updated.IsPaid {
		t.Error("isPaid not updated")
	}
	if updated.Item != "Backdrop" || !updated.Cost.Equal(decimal.RequireFromString("600.00")) {
		t.Errorf("untouched fields changed: %+v", updated)
	}

	rec = doRequest(t, r, http.MethodPatch, fmt.Sprintf("/api/expenses/%d", e.ID), `{"isPaid": false}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("patch back: got status %d", rec.Code)
	}
	decodeData(t, rec, &updated)
	if updated.IsPaid {
		t.Error("isPaid not toggled back")
	}
}

func TestExpenseValidation(t *testing.T) {
	r := newTestRouter(t)
	c := createClient(t, r, clientBody("Acme", time.Now().AddDate(0, 1, 0), ""))
	path := fmt.Sprintf("/api/clients/%d/expenses", c.ID)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"missing category", `{"item": "Backdrop", "cost": "10.00"}`, http.StatusBadRequest},
		{"missing item", `{"category": "Decor", "cost": "10.00"}`, http.StatusBadRequest},
		{"negative cost", `{"category": "Decor", "item": "Backdrop", "cost": "-10.00"}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, r, http.MethodPost, path, tt.body)
			if rec.Code != tt.want {
				t.Errorf("got status %d, want %d (body %s)", rec.Code, tt.want, rec.Body.String())
			}
		})
	}

	rec := doRequest(t, r, http.MethodPost, "/api/clients/999/expenses",
		`{"category": "Decor", "item": "Backdrop", "cost": "10.00"}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown client: got status %d, want 404", rec.Code)
	}
}

func TestDeleteExpense(t *testing.T) {
	r := newTestRouter(t)
	c := createClient(t, r, clientBody("Acme", time.Now().AddDate(0, 1, 0), ""))

	rec := doRequest(t, r, http.MethodPost, fmt.Sprintf("/api/clients/%d/expenses", c.ID),
		`{"category": "Decor", "item": "Backdrop", "cost": "600.00"}`)
	var e models.Expense
	decodeData(t, rec, &e)

	rec = doRequest(t, r, http.MethodDelete, fmt.Sprintf("/api/expenses/%d", e.ID), "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("got status %d", rec.Code)
	}
	rec = doRequest(t, r, http.MethodDelete, fmt.Sprintf("/api/expenses/%d", e.ID), "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete: got status %d, want 404", rec.Code)
	}

	rec = doRequest(t, r, http.MethodGet, fmt.Sprintf("/api/clients/%d/expenses", c.ID), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list: got status %d", rec.Code)
	}
	var expenses []models.Expense
	decodeData(t, rec, &expenses)
	if len(expenses) != 0 {
		t.Errorf("expected no expenses after delete, got %d", len(expenses))
	}
}
