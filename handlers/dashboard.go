package handlers

import (
	"net/http"
	"time"

	"github.com/eventdesk/eventdesk/insights"
	"github.com/eventdesk/eventdesk/models"
	"github.com/shopspring/decimal"
)

// dashboardView is the landing-page summary block.
type dashboardView struct {
	TotalVendors   int             `json:"totalVendors"`
	TotalVenues    int             `json:"totalVenues"`
	TotalClients   int             `json:"totalClients"`
	ActiveClients  int             `json:"activeClients"`
	UpcomingEvents int             `json:"upcomingEvents"`
	BookedBudget   decimal.Decimal `json:"bookedBudget"`
	RecentClients  []models.Client `json:"recentClients"`
}

// GetDashboard returns the landing-page counters
// @Summary      Dashboard stats
// @Description  Get entity counts, active-client and upcoming-event tallies, total booked budget, and the five most recent clients.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  Response{data=dashboardView}
// @Router       /dashboard [get]
func GetDashboard(w http.ResponseWriter, r *http.Request) {
	var view dashboardView
	counts := []struct {
		query string
		dest  *int
	}{
		{"SELECT COUNT(*) FROM vendors", &view.TotalVendors},
		{"SELECT COUNT(*) FROM venues", &view.TotalVenues},
		{"SELECT COUNT(*) FROM clients", &view.TotalClients},
		{"SELECT COUNT(*) FROM clients WHERE status IN ('Lead', 'Confirmed')", &view.ActiveClients},
		{"SELECT COUNT(*) FROM clients WHERE event_date > CURRENT_TIMESTAMP", &view.UpcomingEvents},
	}
	for _, c := range counts {
		if err := DB.QueryRow(c.query).Scan(c.dest); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}

	// Budgets are stored as decimal text, so the sum happens here rather
	// than in SQL.
	rows, err := DB.Query("SELECT budget FROM clients WHERE budget IS NOT NULL AND status IN ('Confirmed', 'Completed')")
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer rows.Close()
	view.BookedBudget = decimal.Zero
	for rows.Next() {
		var b decimal.Decimal
		if err := rows.Scan(&b); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		view.BookedBudget = view.BookedBudget.Add(b)
	}
	if err := rows.Err(); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	recent, err := DB.Query(clientSelectQuery + " ORDER BY created_at DESC LIMIT 5")
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer recent.Close()
	view.RecentClients = []models.Client{}
	for recent.Next() {
		c, err := scanClient(recent)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		view.RecentClients = append(view.RecentClients, c)
	}

	writeJSON(w, http.StatusOK, view)
}

// GetRevenue returns the monthly revenue series
// @Summary      Revenue series
// @Description  Get budgets bucketed by event month over a trailing window.
// @Tags         dashboard
// @Produce      json
// @Param        range  query     string  false  "Window (month, 6months, year)"  default(6months)
// @Success      200    {object}  Response{data=[]insights.RevenuePoint}
// @Failure      400    {object}  Response{error=string}
// @Router       /dashboard/revenue [get]
func GetRevenue(w http.ResponseWriter, r *http.Request) {
	window := insights.Window(r.URL.Query().Get("range"))
	if window == "" {
		window = insights.WindowSixMonths
	}
	if !window.Valid() {
		writeError(w, http.StatusBadRequest, "range must be one of: month, 6months, year")
		return
	}

	rows, err := DB.Query("SELECT event_date, COALESCE(budget, '0') FROM clients")
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer rows.Close()

	var events []insights.BudgetedEvent
	for rows.Next() {
		var ev insights.BudgetedEvent
		if err := rows.Scan(&ev.Date, &ev.Budget); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	series := insights.RevenueCapped(events, window, time.Now(), YearWindowCap)
	if series == nil {
		series = []insights.RevenuePoint{}
	}
	writeJSON(w, http.StatusOK, series)
}
