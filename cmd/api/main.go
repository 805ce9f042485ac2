package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/daem0n707/Payman/docs"
	"github.com/daem0n707/Payman/internal/activity"
	"github.com/daem0n707/Payman/internal/bill"
	"github.com/daem0n707/Payman/internal/config"
	"github.com/daem0n707/Payman/internal/database"
	"github.com/daem0n707/Payman/internal/group"
	"github.com/daem0n707/Payman/internal/ledger"
	"github.com/daem0n707/Payman/internal/person"
	mw "github.com/daem0n707/Payman/pkg/middleware"
)

// @title           Payman API
// @version         1.0
// @description     Restaurant bill splitting and debt settlement service
// @BasePath        /api/v1
func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()

	// Initialize database connection
	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	log.Println("Connected to database successfully")

	// Activity feature (audit trail, injected into the bill feature)
	activityRepo := activity.NewRepository(db)
	activityService := activity.NewService(activityRepo)
	activityHandler := activity.NewHandler(activityService)

	// Person feature
	personRepo := person.NewRepository(db)
	personService := person.NewService(personRepo)
	personHandler := person.NewHandler(personService)

	// Group feature
	groupRepo := group.NewRepository(db)
	groupService := group.NewService(groupRepo, personRepo)
	groupHandler := group.NewHandler(groupService)

	// Bill feature (with the split engine behind it)
	billRepo := bill.NewRepository(db)
	billService := bill.NewService(billRepo, personRepo, activityService)
	billHandler := bill.NewHandler(billService)

	// Ledger feature (cross-bill settlements)
	ledgerService := ledger.NewService(billRepo, personRepo)
	ledgerHandler := ledger.NewHandler(ledgerService)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(mw.PersonMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Mount feature routers
		r.Mount("/people", personHandler.Routes())
		r.Mount("/groups", groupHandler.Routes())
		r.Mount("/bills", billHandler.Routes())
		r.Mount("/settlements", ledgerHandler.Routes())
		r.Mount("/activities", activityHandler.Routes())
	})

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
