package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/eventdesk/eventdesk/insights"
	"github.com/eventdesk/eventdesk/models"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

const clientSelectQuery = `SELECT id, name, email, phone, event_date, event_type, budget, status,
	guest_count, venue_id, notes, created_at FROM clients`

func scanClient(scanner interface{ Scan(...any) error }) (models.Client, error) {
	var c models.Client
	err := scanner.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.EventDate, &c.EventType,
		&c.Budget, &c.Status, &c.GuestCount, &c.VenueID, &c.Notes, &c.CreatedAt)
	return c, err
}

// clientView decorates a client with its urgency classification.
type clientView struct {
	models.Client
	Priority insights.Priority `json:"priority"`
}

// ListClients lists all clients with priority badges
// @Summary      List clients
// @Description  Get all clients, each with its urgency classification. Sorted newest-first, or most-urgent-first with sort=priority.
// @Tags         clients
// @Produce      json
// @Param        status  query     string  false  "Filter by status (Lead/Pending/Confirmed/Completed)"
// @Param        search  query     string  false  "Search by name, email, or event type"
// @Param        sort    query     string  false  "Sort order (priority)"
// @Success      200     {object}  Response{data=[]clientView}
// @Router       /clients [get]
func ListClients(w http.ResponseWriter, r *http.Request) {
	query := clientSelectQuery
	var conditions []string
	var args []any

	if s := r.URL.Query().Get("status"); s != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, s)
	}
	if search := r.URL.Query().Get("search"); search != "" {
		conditions = append(conditions, "(name LIKE ? OR email LIKE ? OR event_type LIKE ?)")
		s := "%" + search + "%"
		args = append(args, s, s, s)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := DB.Query(query, args...)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer rows.Close()

	now := time.Now()
	clients := []clientView{}
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		clients = append(clients, clientView{Client: c, Priority: insights.Classify(c.EventDate, now)})
	}

	if r.URL.Query().Get("sort") == "priority" {
		// Most urgent first; ties break by event date ascending.
		sort.SliceStable(clients, func(i, j int) bool {
			if clients[i].Priority.Level != clients[j].Priority.Level {
				return clients[i].Priority.Level < clients[j].Priority.Level
			}
			return clients[i].EventDate.Before(clients[j].EventDate)
		})
	}

	writeJSON(w, http.StatusOK, clients)
}

// GetClient retrieves a single client with services and expenses
// @Summary      Get client
// @Description  Get a client with its planned services, expenses, and urgency classification.
// @Tags         clients
// @Produce      json
// @Param        id   path      int  true  "Client ID"
// @Success      200  {object}  Response{data=clientView}
// @Failure      404  {object}  Response{error=string}
// @Router       /clients/{id} [get]
func GetClient(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	c, err := scanClient(DB.QueryRow(clientSelectQuery+" WHERE id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "client not found")
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	if c.Services, err = clientServices(id); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if c.Expenses, err = clientExpenses(id); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, clientView{Client: c, Priority: insights.Classify(c.EventDate, time.Now())})
}

func clientServices(clientID int) ([]models.PlannedService, error) {
	rows, err := DB.Query(`SELECT id, client_id, vendor_id, service_name, cost, notes
		FROM planned_services WHERE client_id = ?`, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	services := []models.PlannedService{}
	for rows.Next() {
		var s models.PlannedService
		if err := rows.Scan(&s.ID, &s.ClientID, &s.VendorID, &s.ServiceName, &s.Cost, &s.Notes); err != nil {
			return nil, err
		}
		services = append(services, s)
	}
	return services, rows.Err()
}

func clientExpenses(clientID int) ([]models.Expense, error) {
	rows, err := DB.Query(`SELECT id, client_id, category, item, cost, is_paid, created_at
		FROM expenses WHERE client_id = ? ORDER BY created_at DESC`, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expenses := []models.Expense{}
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.ClientID, &e.Category, &e.Item, &e.Cost, &e.IsPaid, &e.CreatedAt); err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

// CreateClient creates a new client
// @Summary      Create client
// @Description  Register a new client event.
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        client  body      models.ClientInput  true  "Client contents"
// @Success      201     {object}  Response{data=models.Client}
// @Failure      400     {object}  Response{error=string}
// @Router       /clients [post]
func CreateClient(w http.ResponseWriter, r *http.Request) {
	var input models.ClientInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if input.VenueID != nil {
		var exists int
		if err := DB.QueryRow("SELECT COUNT(*) FROM venues WHERE id = ?", *input.VenueID).Scan(&exists); err != nil || exists == 0 {
			writeError(w, http.StatusBadRequest, "venueId references an unknown venue")
			return
		}
	}

	result, err := DB.Exec(`INSERT INTO clients (name, email, phone, event_date, event_type, budget, status, guest_count, venue_id, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		input.Name, input.Email, input.Phone, input.EventDate.UTC(), input.EventType,
		input.Budget, input.Status, input.GuestCount, input.VenueID, input.Notes)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	id, _ := result.LastInsertId()
	c, err := scanClient(DB.QueryRow(clientSelectQuery+" WHERE id = ?", id))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to re-fetch created client: "+err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// UpdateClient partially updates a client
// @Summary      Update client
// @Description  Partially update a client; omitted fields are left untouched. venueId 0 clears the venue assignment.
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        id      path      int                  true  "Client ID"
// @Param        client  body      models.ClientUpdate  true  "Fields to update"
// @Success      200     {object}  Response{data=models.Client}
// @Failure      400     {object}  Response{error=string}
// @Failure      404     {object}  Response{error=string}
// @Router       /clients/{id} [patch]
func UpdateClient(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	var input models.ClientUpdate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	var sets []string
	var args []any
	if input.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *input.Name)
	}
	if input.Email != nil {
		sets = append(sets, "email = ?")
		args = append(args, *input.Email)
	}
	if input.Phone != nil {
		sets = append(sets, "phone = ?")
		args = append(args, *input.Phone)
	}
	if input.EventDate != nil {
		sets = append(sets, "event_date = ?")
		args = append(args, input.EventDate.UTC())
	}
	if input.EventType != nil {
		sets = append(sets, "event_type = ?")
		args = append(args, *input.EventType)
	}
	if input.Budget != nil {
		sets = append(sets, "budget = ?")
		args = append(args, *input.Budget)
	}
	if input.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *input.Status)
	}
	if input.GuestCount != nil {
		sets = append(sets, "guest_count = ?")
		args = append(args, *input.GuestCount)
	}
	if input.VenueID != nil {
		if *input.VenueID == 0 {
			sets = append(sets, "venue_id = NULL")
		} else {
			var exists int
			if err := DB.QueryRow("SELECT COUNT(*) FROM venues WHERE id = ?", *input.VenueID).Scan(&exists); err != nil || exists == 0 {
				writeError(w, http.StatusBadRequest, "venueId references an unknown venue")
				return
			}
			sets = append(sets, "venue_id = ?")
			args = append(args, *input.VenueID)
		}
	}
	if input.Notes != nil {
		sets = append(sets, "notes = ?")
		args = append(args, *input.Notes)
	}
	if len(sets) == 0 {
		writeError(w, http.StatusBadRequest, "no fields to update")
		return
	}

	args = append(args, id)
	res, err := DB.Exec("UPDATE clients SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeError(w, http.StatusNotFound, "client not found")
		return
	}

	c, err := scanClient(DB.QueryRow(clientSelectQuery+" WHERE id = ?", id))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to re-fetch updated client: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// DeleteClient deletes a client and all its child records
// @Summary      Delete client
// @Description  Remove a client along with its planned services and expenses.
// @Tags         clients
// @Param        id   path  int  true  "Client ID"
// @Success      204
// @Failure      404  {object}  Response{error=string}
// @Router       /clients/{id} [delete]
func DeleteClient(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	tx, err := DB.Begin()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer tx.Rollback()

	// Children first: the schema declares no DB-level cascade.
	if _, err := tx.Exec("DELETE FROM planned_services WHERE client_id = ?", id); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if _, err := tx.Exec("DELETE FROM expenses WHERE client_id = ?", id); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	res, err := tx.Exec("DELETE FROM clients WHERE id = ?", id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeError(w, http.StatusNotFound, "client not found")
		return
	}
	if err := tx.Commit(); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetClientBudget returns the budget summary for a client
// @Summary      Get client budget
// @Description  Get the budget/spend summary and per-category expense breakdown for a client.
// @Tags         clients
// @Produce      json
// @Param        id   path      int  true  "Client ID"
// @Success      200  {object}  Response{data=budgetView}
// @Failure      404  {object}  Response{error=string}
// @Router       /clients/{id}/budget [get]
func GetClientBudget(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))

	var budget decimal.NullDecimal
	var venueCost decimal.Decimal
	err := DB.QueryRow(`SELECT c.budget, COALESCE(v.base_price, '0')
		FROM clients c LEFT JOIN venues v ON c.venue_id = v.id
		WHERE c.id = ?`, id).Scan(&budget, &venueCost)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "client not found")
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	services, err := clientServices(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	expenses, err := clientExpenses(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	serviceCosts := make([]decimal.Decimal, 0, len(services))
	for _, s := range services {
		serviceCosts = append(serviceCosts, s.Cost)
	}
	lines := make([]insights.ExpenseLine, 0, len(expenses))
	for _, e := range expenses {
		lines = append(lines, insights.ExpenseLine{Category: e.Category, Cost: e.Cost, Paid: e.IsPaid})
	}

	allocated := decimal.Zero
	if budget.Valid {
		allocated = budget.Decimal
	}
	summary := insights.Summarize(allocated, venueCost, serviceCosts, lines)
	byCategory := insights.CategoryTotals(lines)
	if byCategory == nil {
		byCategory = []insights.CategoryTotal{}
	}

	writeJSON(w, http.StatusOK, budgetView{BudgetSummary: summary, ByCategory: byCategory})
}

// budgetView is the budget summary plus the pie-chart category breakdown.
type budgetView struct {
	insights.BudgetSummary
	ByCategory []insights.CategoryTotal `json:"byCategory"`
}
