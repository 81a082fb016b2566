package main

//go:generate swag init

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"strconv"

	"github.com/eventdesk/eventdesk/db"
	_ "github.com/eventdesk/eventdesk/docs"
	"github.com/eventdesk/eventdesk/handlers"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"
)

//go:embed static/*
var staticFiles embed.FS

// @title           EventDesk API
// @version         1.0.0
// @description     Back-office API for an event planning agency: vendors, venues, clients, budgets, and expenses.
// @host            localhost:8080
// @BasePath        /api
// @securityDefinitions.basic  BasicAuth

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	// Configure structured logging
	level := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	// Open database
	database, err := db.Open()
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	// Run migrations
	if err := db.Migrate(database); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Optional demo dataset
	if os.Getenv("SEED_DEMO") == "1" {
		if err := db.Seed(database); err != nil {
			slog.Error("failed to seed demo data", "error", err)
			os.Exit(1)
		}
	}

	// Set shared DB for handlers
	handlers.DB = database

	if v := os.Getenv("REVENUE_WINDOW_MONTHS"); v != "" {
		months, err := strconv.Atoi(v)
		if err != nil || months < 1 {
			slog.Error("REVENUE_WINDOW_MONTHS must be a positive integer", "value", v)
			os.Exit(1)
		}
		handlers.YearWindowCap = months
	}

	// Router setup
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// API routes with basic auth
	r.Route("/api", func(r chi.Router) {
		r.Use(handlers.BasicAuth)

		// Vendors
		r.Get("/vendors", handlers.ListVendors)
		r.Post("/vendors", handlers.CreateVendor)
		r.Get("/vendors/{id}", handlers.GetVendor)
		r.Patch("/vendors/{id}", handlers.UpdateVendor)
		r.Delete("/vendors/{id}", handlers.DeleteVendor)
		r.Post("/vendors/{id}/products", handlers.CreateVendorProduct)
		r.Delete("/vendor-products/{id}", handlers.DeleteVendorProduct)

		// Venues
		r.Get("/venues", handlers.ListVenues)
		r.Post("/venues", handlers.CreateVenue)
		r.Get("/venues/{id}", handlers.GetVenue)
		r.Patch("/venues/{id}", handlers.UpdateVenue)
		r.Delete("/venues/{id}", handlers.DeleteVenue)
		r.Post("/venues/{id}/booking-options", handlers.CreateBookingOption)
		r.Delete("/booking-options/{id}", handlers.DeleteBookingOption)
		r.Post("/venues/{id}/images", handlers.AddVenueImages)
		r.Delete("/venue-images/{id}", handlers.DeleteVenueImage)

		// Clients
		r.Get("/clients", handlers.ListClients)
		r.Post("/clients", handlers.CreateClient)
		r.Get("/clients/{id}", handlers.GetClient)
		r.Patch("/clients/{id}", handlers.UpdateClient)
		r.Delete("/clients/{id}", handlers.DeleteClient)
		r.Get("/clients/{id}/budget", handlers.GetClientBudget)

		// Planned services
		r.Post("/clients/{id}/services", handlers.CreatePlannedService)
		r.Delete("/services/{id}", handlers.DeletePlannedService)

		// Expenses
		r.Get("/clients/{id}/expenses", handlers.ListClientExpenses)
		r.Post("/clients/{id}/expenses", handlers.CreateExpense)
		r.Patch("/expenses/{id}", handlers.UpdateExpense)
		r.Delete("/expenses/{id}", handlers.DeleteExpense)

		// Dashboard
		r.Get("/dashboard", handlers.GetDashboard)
		r.Get("/dashboard/revenue", handlers.GetRevenue)
	})

	// Serve static files (UI)
	staticFS, _ := fs.Sub(staticFiles, "static")
	r.Handle("/*", http.FileServer(http.FS(staticFS)))

	// Swagger UI
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := fmt.Sprintf(":%s", port)
	slog.Info("server starting", "address", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
