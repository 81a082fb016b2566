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

const venueSelectQuery = `SELECT id, name, location, capacity, base_price, extra_charges, notes,
	google_maps_link, main_image, booking_phone, booking_email, venue_type, created_at FROM venues`

func scanVenue(scanner interface{ Scan(...any) error }) (models.Venue, error) {
	var v models.Venue
	err := scanner.Scan(&v.ID, &v.Name, &v.Location, &v.Capacity, &v.BasePrice, &v.ExtraCharges,
		&v.Notes, &v.GoogleMapsLink, &v.MainImage, &v.BookingPhone, &v.BookingEmail, &v.VenueType, &v.CreatedAt)
	return v, err
}

// ListVenues lists all venues
// @Summary      List venues
// @Description  Get all venues, newest first.
// @Tags         venues
// @Produce      json
// @Param        search  query     string  false  "Search by name or location"
// @Success      200     {object}  Response{data=[]models.Venue}
// @Router       /venues [get]
func ListVenues(w http.ResponseWriter, r *http.Request) {
	query := venueSelectQuery
	var conditions []string
	var args []any

	if search := r.URL.Query().Get("search"); search != "" {
		conditions = append(conditions, "(name LIKE ? OR location LIKE ?)")
		s := "%" + search + "%"
		args = append(args, s, s)
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

	venues := []models.Venue{}
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		venues = append(venues, v)
	}
	writeJSON(w, http.StatusOK, venues)
}

// GetVenue retrieves a single venue with options and gallery
// @Summary      Get venue
// @Description  Get a venue with its booking options and gallery images.
// @Tags         venues
// @Produce      json
// @Param        id   path      int  true  "Venue ID"
// @Success      200  {object}  Response{data=models.Venue}
// @Failure      404  {object}  Response{error=string}
// @Router       /venues/{id} [get]
func GetVenue(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	v, err := scanVenue(DB.QueryRow(venueSelectQuery+" WHERE id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "venue not found")
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	optRows, err := DB.Query(`SELECT id, venue_id, name, price, currency, description
		FROM booking_options WHERE venue_id = ?`, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer optRows.Close()
	v.Options = []models.BookingOption{}
	for optRows.Next() {
		var o models.BookingOption
		if err := optRows.Scan(&o.ID, &o.VenueID, &o.Name, &o.Price, &o.Currency, &o.Description); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		v.Options = append(v.Options, o)
	}

	imgRows, err := DB.Query(`SELECT id, venue_id, image_url FROM venue_images WHERE venue_id = ?`, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer imgRows.Close()
	v.Images = []models.VenueImage{}
	for imgRows.Next() {
		var img models.VenueImage
		if err := imgRows.Scan(&img.ID, &img.VenueID, &img.ImageURL); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		v.Images = append(v.Images, img)
	}

	writeJSON(w, http.StatusOK, v)
}

// CreateVenue creates a new venue
// @Summary      Create venue
// @Description  Register a new bookable venue.
// @Tags         venues
// @Accept       json
// @Produce      json
// @Param        venue  body      models.VenueInput  true  "Venue contents"
// @Success      201    {object}  Response{data=models.Venue}
// @Failure      400    {object}  Response{error=string}
// @Router       /venues [post]
func CreateVenue(w http.ResponseWriter, r *http.Request) {
	var input models.VenueInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	result, err := DB.Exec(`INSERT INTO venues (name, location, capacity, base_price, extra_charges, notes,
		google_maps_link, main_image, booking_phone, booking_email, venue_type)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		input.Name, input.Location, input.Capacity, input.BasePrice, input.ExtraCharges, input.Notes,
		input.GoogleMapsLink, input.MainImage, input.BookingPhone, input.BookingEmail, input.VenueType)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	id, _ := result.LastInsertId()
	v, err := scanVenue(DB.QueryRow(venueSelectQuery+" WHERE id = ?", id))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to re-fetch created venue: "+err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

// UpdateVenue partially updates a venue
// @Summary      Update venue
// @Description  Partially update a venue; omitted fields are left untouched.
// @Tags         venues
// @Accept       json
// @Produce      json
// @Param        id     path      int                 true  "Venue ID"
// @Param        venue  body      models.VenueUpdate  true  "Fields to update"
// @Success      200    {object}  Response{data=models.Venue}
// @Failure      400    {object}  Response{error=string}
// @Failure      404    {object}  Response{error=string}
// @Router       /venues/{id} [patch]
func UpdateVenue(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	var input models.VenueUpdate
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
	if input.Location != nil {
		sets = append(sets, "location = ?")
		args = append(args, *input.Location)
	}
	if input.Capacity != nil {
		sets = append(sets, "capacity = ?")
		args = append(args, *input.Capacity)
	}
	if input.BasePrice != nil {
		sets = append(sets, "base_price = ?")
		args = append(args, *input.BasePrice)
	}
	if input.ExtraCharges != nil {
		sets = append(sets, "extra_charges = ?")
		args = append(args, *input.ExtraCharges)
	}
	if input.Notes != nil {
		sets = append(sets, "notes = ?")
		args = append(args, *input.Notes)
	}
	if input.GoogleMapsLink != nil {
		sets = append(sets, "google_maps_link = ?")
		args = append(args, *input.GoogleMapsLink)
	}
	if input.MainImage != nil {
		sets = append(sets, "main_image = ?")
		args = append(args, *input.MainImage)
	}
	if input.BookingPhone != nil {
		sets = append(sets, "booking_phone = ?")
		args = append(args, *input.BookingPhone)
	}
	if input.BookingEmail != nil {
		sets = append(sets, "booking_email = ?")
		args = append(args, *input.BookingEmail)
	}
	if input.VenueType != nil {
		sets = append(sets, "venue_type = ?")
		args = append(args, *input.VenueType)
	}
	if len(sets) == 0 {
		writeError(w, http.StatusBadRequest, "no fields to update")
		return
	}

	args = append(args, id)
	res, err := DB.Exec("UPDATE venues SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeError(w, http.StatusNotFound, "venue not found")
		return
	}

	v, err := scanVenue(DB.QueryRow(venueSelectQuery+" WHERE id = ?", id))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to re-fetch updated venue: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// DeleteVenue deletes a venue with its options and images
// @Summary      Delete venue
// @Description  Remove a venue along with its booking options and gallery.
// @Tags         venues
// @Param        id   path  int  true  "Venue ID"
// @Success      204
// @Failure      404  {object}  Response{error=string}
// @Router       /venues/{id} [delete]
func DeleteVenue(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	tx, err := DB.Begin()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM venue_images WHERE venue_id = ?", id); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if _, err := tx.Exec("DELETE FROM booking_options WHERE venue_id = ?", id); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	// Clients keep their row but lose the venue assignment (FK SET NULL).
	res, err := tx.Exec("DELETE FROM venues WHERE id = ?", id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeError(w, http.StatusNotFound, "venue not found")
		return
	}
	if err := tx.Commit(); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreateBookingOption adds a rental package to a venue
// @Summary      Create booking option
// @Description  Add a rental package to a venue.
// @Tags         venues
// @Accept       json
// @Produce      json
// @Param        id      path      int                        true  "Venue ID"
// @Param        option  body      models.BookingOptionInput  true  "Option contents"
// @Success      201     {object}  Response{data=models.BookingOption}
// @Failure      400     {object}  Response{error=string}
// @Failure      404     {object}  Response{error=string}
// @Router       /venues/{id}/booking-options [post]
func CreateBookingOption(w http.ResponseWriter, r *http.Request) {
	venueID, _ := strconv.Atoi(chi.URLParam(r, "id"))
	var input models.BookingOptionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	var exists int
	if err := DB.QueryRow("SELECT COUNT(*) FROM venues WHERE id = ?", venueID).Scan(&exists); err != nil || exists == 0 {
		writeError(w, http.StatusNotFound, "venue not found")
		return
	}

	result, err := DB.Exec(`INSERT INTO booking_options (venue_id, name, price, currency, description) VALUES (?, ?, ?, ?, ?)`,
		venueID, input.Name, input.Price, input.Currency, input.Description)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	id, _ := result.LastInsertId()
	var o models.BookingOption
	err = DB.QueryRow(`SELECT id, venue_id, name, price, currency, description FROM booking_options WHERE id = ?`, id).
		Scan(&o.ID, &o.VenueID, &o.Name, &o.Price, &o.Currency, &o.Description)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to re-fetch created option: "+err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, o)
}

// DeleteBookingOption removes a booking option
// @Summary      Delete booking option
// @Description  Remove a rental package.
// @Tags         venues
// @Param        id   path  int  true  "Option ID"
// @Success      204
// @Failure      404  {object}  Response{error=string}
// @Router       /booking-options/{id} [delete]
func DeleteBookingOption(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	res, err := DB.Exec("DELETE FROM booking_options WHERE id = ?", id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeError(w, http.StatusNotFound, "booking option not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddVenueImages bulk-adds gallery images to a venue
// @Summary      Add venue images
// @Description  Append one or more gallery image URLs to a venue.
// @Tags         venues
// @Accept       json
// @Produce      json
// @Param        id      path      int                      true  "Venue ID"
// @Param        images  body      models.VenueImagesInput  true  "Image URLs"
// @Success      201     {object}  Response{data=[]models.VenueImage}
// @Failure      400     {object}  Response{error=string}
// @Failure      404     {object}  Response{error=string}
// @Router       /venues/{id}/images [post]
func AddVenueImages(w http.ResponseWriter, r *http.Request) {
	venueID, _ := strconv.Atoi(chi.URLParam(r, "id"))
	var input models.VenueImagesInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	var exists int
	if err := DB.QueryRow("SELECT COUNT(*) FROM venues WHERE id = ?", venueID).Scan(&exists); err != nil || exists == 0 {
		writeError(w, http.StatusNotFound, "venue not found")
		return
	}

	tx, err := DB.Begin()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer tx.Rollback()

	created := []models.VenueImage{}
	for _, url := range input.Images {
		result, err := tx.Exec(`INSERT INTO venue_images (venue_id, image_url) VALUES (?, ?)`, venueID, url)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		id, _ := result.LastInsertId()
		created = append(created, models.VenueImage{ID: int(id), VenueID: venueID, ImageURL: url})
	}
	if err := tx.Commit(); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// DeleteVenueImage removes a gallery image
// @Summary      Delete venue image
// @Description  Remove a gallery image.
// @Tags         venues
// @Param        id   path  int  true  "Image ID"
// @Success      204
// @Failure      404  {object}  Response{error=string}
// @Router       /venue-images/{id} [delete]
func DeleteVenueImage(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	res, err := DB.Exec("DELETE FROM venue_images WHERE id = ?", id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeError(w, http.StatusNotFound, "venue image not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
