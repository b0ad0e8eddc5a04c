package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"smartparking/internal/api"
	"smartparking/internal/auth"
	"smartparking/internal/repository"
	"smartparking/internal/service"
	"smartparking/internal/ticket"
)

func main() {
	godotenv.Load()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	ticketDir := os.Getenv("TICKET_DIR")
	if ticketDir == "" {
		ticketDir = "qr_codes"
	}
	tickets, err := ticket.NewQRProducer(ticketDir)
	if err != nil {
		log.Fatalf("Failed to set up ticket producer: %v", err)
	}

	resRepo := repository.NewReservationRepository(db)
	userRepo := repository.NewUserRepository(db)
	jobRepo := repository.NewJobRepository(db)

	pricing := service.NewPricingTable(service.DefaultRates())
	ledger := service.NewCapacityLedger(resRepo, service.DefaultCapacities())
	notifier := service.NewNotifyService()

	resSvc := service.NewReservationService(resRepo, userRepo, pricing, ledger, tickets, notifier)
	authSvc := service.NewAuthService(userRepo)
	jobSvc := service.NewJobService(jobRepo)

	authHandler := api.NewAuthHandler(authSvc)
	resHandler := api.NewReservationHandler(resSvc)
	adminHandler := api.NewAdminHandler(resSvc)

	c := cron.New()
	if _, err := c.AddFunc("*/5 * * * *", func() {
		if err := jobSvc.EndExpiredReservations(context.Background()); err != nil {
			log.Printf("Cron Job failed: %v", err)
		}
	}); err != nil {
		log.Fatalf("Failed to schedule cron job: %v", err)
	}
	c.Start()

	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/api/login", authHandler.Login).Methods("POST")
	r.PathPrefix("/qr_codes/").Handler(
		http.StripPrefix("/qr_codes/", http.FileServer(http.Dir(ticketDir))))

	// User endpoints (authenticated)
	user := r.PathPrefix("/api").Subrouter()
	user.Use(auth.UserAuthMiddleware)
	user.HandleFunc("/users/vehicle", authHandler.UpdateVehicle).Methods("PUT")
	user.HandleFunc("/users/profile", authHandler.UpdateProfile).Methods("PUT")
	user.HandleFunc("/reservations", resHandler.CreateReservation).Methods("POST")
	user.HandleFunc("/reservations", resHandler.ListReservations).Methods("GET")
	user.HandleFunc("/reservations/{id}", resHandler.UpdateReservation).Methods("PUT")
	user.HandleFunc("/reservations/{id}/status", resHandler.UpdateStatus).Methods("PUT")
	user.HandleFunc("/reservations/{id}/cancel", resHandler.CancelReservation).Methods("POST")
	user.HandleFunc("/reservations/{id}/end", resHandler.EndReservation).Methods("POST")

	// Admin endpoints (protected)
	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(auth.AdminAuthMiddleware)
	admin.HandleFunc("/statistics", adminHandler.Statistics).Methods("GET")

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, cors(r)))
}
