package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/eventdesk/eventdesk/models"
	"github.com/go-chi/chi/v5"
)

const vendorSelectQuery = `SELECT id, name, category, phone, email, notes, created_at FROM vendors`

func scanVendor(scanner interface{ Scan(...any) error }) (models.Vendor, error) {
	var v models.Vendor
	err := scanner.Scan(&v.ID, &v.Name, &v.Category, &v.Phone, &v.Email, &v.Notes, &v.CreatedAt)
	return v, err
}

func vendorProducts(vendorID int) ([]models.VendorProduct, error) {
	rows, err := DB.Query(`SELECT id, vendor_id, name, price, currency, description
		FROM vendor_products WHERE vendor_id = ?`, vendorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []models.VendorProduct{}
	for rows.Next() {
		var p models.VendorProduct
		if err := rows.Scan(&p.ID, &p.VendorID, &p.Name, &p.Price, &p.Currency, &p.Description); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// ListVendors lists all vendors
// @Summary      List vendors
// @Description  Get all vendors, newest first.
// @Tags         vendors
// @Produce      json
// @Param        category  query     string  false  "Filter by category"
// @Param        search    query     string  false  "Search by name, category, or email"
// @Success      200       {object}  Response{data=[]models.Vendor}
// @Router       /vendors [get]
func ListVendors(w http.ResponseWriter, r *http.Request) {
	query := vendorSelectQuery
	var conditions []string
	var args []any

	if c := r.URL.Query().Get("category"); c != "" {
		conditions = append(conditions, "category = ?")
		args = append(args, c)
	}
	if search := r.URL.Query().Get("search"); search != "" {
		conditions = append(conditions, "(name LIKE ? OR category LIKE ? OR email LIKE ?)")
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

	vendors := []models.Vendor{}
	for rows.Next() {
		v, err := scanVendor(rows)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		vendors = append(vendors, v)
	}
	writeJSON(w, http.StatusOK, vendors)
}

// GetVendor retrieves a single vendor with its products
// @Summary      Get vendor
// @Description  Get a vendor and its product catalog.
// @Tags         vendors
// @Produce      json
// @Param        id   path      int  true  "Vendor ID"
// @Success      200  {object}  Response{data=models.Vendor}
// @Failure      404  {object}  Response{error=string}
// @Router       /vendors/{id} [get]
func GetVendor(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	v, err := scanVendor(DB.QueryRow(vendorSelectQuery+" WHERE id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "vendor not found")
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	if v.Products, err = vendorProducts(id); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// CreateVendor creates a new vendor
// @Summary      Create vendor
// @Description  Register a new service provider.
// @Tags         vendors
// @Accept       json
// @Produce      json
// @Param        vendor  body      models.VendorInput  true  "Vendor contents"
// @Success      201     {object}  Response{data=models.Vendor}
// @Failure      400     {object}  Response{error=string}
// @Router       /vendors [post]
func CreateVendor(w http.ResponseWriter, r *http.Request) {
	var input models.VendorInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	result, err := DB.Exec(`INSERT INTO vendors (name, category, phone, email, notes) VALUES (?, ?, ?, ?, ?)`,
		input.Name, input.Category, input.Phone, input.Email, input.Notes)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	id, _ := result.LastInsertId()
	v, err := scanVendor(DB.QueryRow(vendorSelectQuery+" WHERE id = ?", id))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to re-fetch created vendor: "+err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

// UpdateVendor partially updates a vendor
// @Summary      Update vendor
// @Description  Partially update a vendor; omitted fields are left untouched.
// @Tags         vendors
// @Accept       json
// @Produce      json
// @Param        id      path      int                  true  "Vendor ID"
// @Param        vendor  body      models.VendorUpdate  true  "Fields to update"
// @Success      200     {object}  Response{data=models.Vendor}
// @Failure      400     {object}  Response{error=string}
// @Failure      404     {object}  Response{error=string}
// @Router       /vendors/{id} [patch]
func UpdateVendor(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	var input models.VendorUpdate
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
	if input.Category != nil {
		sets = append(sets, "category = ?")
		args = append(args, *input.Category)
	}
	if input.Phone != nil {
		sets = append(sets, "phone = ?")
		args = append(args, *input.Phone)
	}
	if input.Email != nil {
		sets = append(sets, "email = ?")
		args = append(args, *input.Email)
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
	res, err := DB.Exec("UPDATE vendors SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeError(w, http.StatusNotFound, "vendor not found")
		return
	}

	v, err := scanVendor(DB.QueryRow(vendorSelectQuery+" WHERE id = ?", id))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to re-fetch updated vendor: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// DeleteVendor deletes a vendor and its products
// @Summary      Delete vendor
// @Description  Remove a vendor along with its product catalog.
// @Tags         vendors
// @Param        id   path  int  true  "Vendor ID"
// @Success      204
// @Failure      404  {object}  Response{error=string}
// @Router       /vendors/{id} [delete]
func DeleteVendor(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	tx, err := DB.Begin()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM vendor_products WHERE vendor_id = ?", id); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	res, err := tx.Exec("DELETE FROM vendors WHERE id = ?", id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeError(w, http.StatusNotFound, "vendor not found")
		return
	}
	if err := tx.Commit(); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreateVendorProduct adds a product to a vendor's catalog
// @Summary      Create vendor product
// @Description  Add a priced offering to a vendor.
// @Tags         vendors
// @Accept       json
// @Produce      json
// @Param        id       path      int                        true  "Vendor ID"
// @Param        product  body      models.VendorProductInput  true  "Product contents"
// @Success      201      {object}  Response{data=models.VendorProduct}
// @Failure      400      {object}  Response{error=string}
// @Failure      404      {object}  Response{error=string}
// @Router       /vendors/{id}/products [post]
func CreateVendorProduct(w http.ResponseWriter, r *http.Request) {
	vendorID, _ := strconv.Atoi(chi.URLParam(r, "id"))
	var input models.VendorProductInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	var exists int
	if err := DB.QueryRow("SELECT COUNT(*) FROM vendors WHERE id = ?", vendorID).Scan(&exists); err != nil || exists == 0 {
		writeError(w, http.StatusNotFound, "vendor not found")
		return
	}

	result, err := DB.Exec(`INSERT INTO vendor_products (vendor_id, name, price, currency, description) VALUES (?, ?, ?, ?, ?)`,
		vendorID, input.Name, input.Price, input.Currency, input.Description)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	id, _ := result.LastInsertId()
	var p models.VendorProduct
	err = DB.QueryRow(`SELECT id, vendor_id, name, price, currency, description FROM vendor_products WHERE id = ?`, id).
		Scan(&p.ID, &p.VendorID, &p.Name, &p.Price, &p.Currency, &p.Description)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to re-fetch created product: "+err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// DeleteVendorProduct removes a product
// @Summary      Delete vendor product
// @Description  Remove an offering from a vendor's catalog.
// @Tags         vendors
// @Param        id   path  int  true  "Product ID"
// @Success      204
// @Failure      404  {object}  Response{error=string}
// @Router       /vendor-products/{id} [delete]
func DeleteVendorProduct(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	res, err := DB.Exec("DELETE FROM vendor_products WHERE id = ?", id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
