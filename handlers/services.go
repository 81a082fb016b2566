package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/eventdesk/eventdesk/models"
	"github.com/go-chi/chi/v5"
)

// CreatePlannedService adds a planned service to a client
// @Summary      Create planned service
// @Description  Attach a planned service line to a client's event.
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        id       path      int                          true  "Client ID"
// @Param        service  body      models.PlannedServiceInput  true  "Service contents"
// @Success      201      {object}  Response{data=models.PlannedService}
// @Failure      400      {object}  Response{error=string}
// @Failure      404      {object}  Response{error=string}
// @Router       /clients/{id}/services [post]
func CreatePlannedService(w http.ResponseWriter, r *http.Request) {
	clientID, _ := strconv.Atoi(chi.URLParam(r, "id"))
	var input models.PlannedServiceInput
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
	if input.VendorID != nil {
		if err := DB.QueryRow("SELECT COUNT(*) FROM vendors WHERE id = ?", *input.VendorID).Scan(&exists); err != nil || exists == 0 {
			writeError(w, http.StatusBadRequest, "vendorId references an unknown vendor")
			return
		}
	}

	result, err := DB.Exec(`INSERT INTO planned_services (client_id, vendor_id, service_name, cost, notes)
		VALUES (?, ?, ?, ?, ?)`,
		clientID, input.VendorID, input.ServiceName, input.Cost, input.Notes)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	id, _ := result.LastInsertId()
	var s models.PlannedService
	err = DB.QueryRow(`SELECT id, client_id, vendor_id, service_name, cost, notes
		FROM planned_services WHERE id = ?`, id).
		Scan(&s.ID, &s.ClientID, &s.VendorID, &s.ServiceName, &s.Cost, &s.Notes)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to re-fetch created service: "+err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, s)
}

// DeletePlannedService deletes a planned service
// @Summary      Delete planned service
// @Tags         clients
// @Param        id   path  int  true  "Service ID"
// @Success      204
// @Failure      404  {object}  Response{error=string}
// @Router       /services/{id} [delete]
func DeletePlannedService(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	res, err := DB.Exec("DELETE FROM planned_services WHERE id = ?", id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeError(w, http.StatusNotFound, "service not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
