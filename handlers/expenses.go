package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/eventdesk/eventdesk/models"
	"github.com/go-chi/chi/v5"
)

const expenseSelectQuery = `SELECT id, client_id, category, item, cost, is_paid, created_at FROM expenses`

func scanExpense(scanner interface{ Scan(...any) error }) (models.Expense, error) {
	var e models.Expense
	err := scanner.Scan(&e.ID, &e.ClientID, &e.Category, &e.Item, &e.Cost, &e.IsPaid, &e.CreatedAt)
	return e, err
}

// ListClientExpenses lists a client's expenses
// @Summary      List expenses
// @Description  Get all expenses recorded against a client, newest first.
// @Tags         clients
// @Produce      json
// @Param        id   path      int  true  "Client ID"
// @Success      200  {object}  Response{data=[]models.Expense}
// @Failure      404  {object}  Response{error=string}
// @Router       /clients/{id}/expenses [get]
func ListClientExpenses(w http.ResponseWriter, r *http.Request) {
	clientID, _ := strconv.Atoi(chi.URLParam(r, "id"))

	var exists int
	if err := DB.QueryRow("SELECT COUNT(*) FROM clients WHERE id = ?", clientID).Scan(&exists); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if exists == 0 {
		writeError(w, http.StatusNotFound, "client not found")
		return
	}

	expenses, err := clientExpenses(clientID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, expenses)
}

// CreateExpense records an expense against a client
// @Summary      Create expense
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        id       path      int                  true  "Client ID"
// @Param        expense  body      models.ExpenseInput  true  "Expense contents"
// @Success      201      {object}  Response{data=models.Expense}
// @Failure      400      {object}  Response{error=string}
// @Failure      404      {object}  Response{error=string}
// @Router       /clients/{id}/expenses [post]
func CreateExpense(w http.ResponseWriter, r *http.Request) {
	clientID, _ := strconv.Atoi(chi.URLParam(r, "id"))
	var input models.ExpenseInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	var exists int
	if err := DB.QueryRow("SELECT COUNT(*) FROM clients WHERE id = ?", clientID).Scan(&exists); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if exists == 0 {
		writeError(w, http.StatusNotFound, "client not found")
		return
	}

	result, err := DB.Exec(`INSERT INTO expenses (client_id, category, item, cost, is_paid)
		VALUES (?, ?, ?, ?, ?)`,
		clientID, input.Category, input.Item, input.Cost, input.IsPaid)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	id, _ := result.LastInsertId()
	e, err := scanExpense(DB.QueryRow(expenseSelectQuery+" WHERE id = ?", id))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to re-fetch created expense: "+err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

// UpdateExpense partially updates an expense
// @Summary      Update expense
// @Description  Partially update an expense; typically used to toggle isPaid.
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        id       path      int                   true  "Expense ID"
// @Param        expense  body      models.ExpenseUpdate  true  "Fields to update"
// @Success      200      {object}  Response{data=models.Expense}
// @Failure      400      {object}  Response{error=string}
// @Failure      404      {object}  Response{error=string}
// @Router       /expenses/{id} [patch]
func UpdateExpense(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	var input models.ExpenseUpdate
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
	if input.Category != nil {
		sets = append(sets, "category = ?")
		args = append(args, *input.Category)
	}
	if input.Item != nil {
		sets = append(sets, "item = ?")
		args = append(args, *input.Item)
	}
	if input.Cost != nil {
		sets = append(sets, "cost = ?")
		args = append(args, *input.Cost)
	}
	if input.IsPaid != nil {
		sets = append(sets, "is_paid = ?")
		args = append(args, *input.IsPaid)
	}
	if len(sets) == 0 {
		writeError(w, http.StatusBadRequest, "no fields to update")
		return
	}

	args = append(args, id)
	res, err := DB.Exec("UPDATE expenses SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeError(w, http.StatusNotFound, "expense not found")
		return
	}

	e, err := scanExpense(DB.QueryRow(expenseSelectQuery+" WHERE id = ?", id))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to re-fetch updated expense: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// DeleteExpense deletes an expense
// @Summary      Delete expense
// @Tags         clients
// @Param        id   path  int  true  "Expense ID"
// @Success      204
// @Failure      404  {object}  Response{error=string}
// @Router       /expenses/{id} [delete]
func DeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	res, err := DB.Exec("DELETE FROM expenses WHERE id = ?", id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeError(w, http.StatusNotFound, "expense not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
