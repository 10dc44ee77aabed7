package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	clerk "github.com/clerk/clerk-sdk-go/v2"
	gorilllaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"adstudioAPI/handlers"
	"adstudioAPI/internal/store"
	"adstudioAPI/middleware"
	"adstudioAPI/services"

	_ "net/http/pprof"
)

var (
	dbPool          *pgxpool.Pool
	dataStore       store.Store
	templateService *services.TemplateService
	designService   *services.DesignService
	copyService     *services.CopyService
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	clerkSecretKey := os.Getenv("CLERK_SECRET_KEY")
	if clerkSecretKey == "" {
		log.Fatal("CLERK_SECRET_KEY environment variable is not set")
	}
	clerk.SetKey(clerkSecretKey)
	log.Println("Clerk initialized successfully")

	// STORE_DRIVER=memory runs everything in-process, handy for local
	// frontend work without a database.
	if os.Getenv("STORE_DRIVER") == "memory" {
		dataStore = store.NewMemoryStore()
		log.Println("Using in-memory store")
	} else {
		dbURL := os.Getenv("DATABASE_URL")
		if dbURL == "" {
			log.Fatal("DATABASE_URL environment variable is not set")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		poolConfig, err := pgxpool.ParseConfig(dbURL)
		if err != nil {
			log.Fatal("Failed to parse database URL:", err)
		}

		poolConfig.MaxConns = 25
		poolConfig.MinConns = 5
		poolConfig.MaxConnLifetime = time.Hour
		poolConfig.MaxConnIdleTime = 30 * time.Minute
		poolConfig.HealthCheckPeriod = time.Minute

		dbPool, err = pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			log.Fatal("Failed to create connection pool:", err)
		}

		if err := dbPool.Ping(ctx); err != nil {
			log.Fatal("Failed to ping database:", err)
		}

		log.Println("Successfully connected to Postgres")
		dataStore = store.NewPostgresStore(dbPool)
	}

	templateService = services.NewTemplateService(dataStore)
	designService = services.NewDesignService(dataStore, dataStore)
	copyService = services.NewCopyService()

	middleware.InitPrometheus()
}

func main() {
	defer func() {
		if dbPool != nil {
			log.Println("Closing database connection pool...")
			dbPool.Close()
		}
	}()

	templateHandler := handlers.NewTemplateHandler(templateService)
	designHandler := handlers.NewDesignHandler(designService)
	copyHandler := handlers.NewCopyHandler(copyService)

	r := mux.NewRouter()

	go middleware.CleanupVisitors()

	r.Use(middleware.RateLimitMiddleware)
	r.Use(middleware.MonitorMiddleware)

	r.Handle("/metrics", middleware.BasicAuthMiddleware(promhttp.Handler()))
	r.PathPrefix("/debug/pprof/").Handler(middleware.PprofSecurityMiddleware(http.DefaultServeMux))

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if dbPool != nil {
			if err := dbPool.Ping(ctx); err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusServiceUnavailable)
				w.Write([]byte(`{"status": "unhealthy", "error": "database connection failed"}`))
				return
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy", "service": "adstudio-api"}`))
	}).Methods("GET")

	// -------------------------------------------------------------------------
	// API V1 — everything requires a Clerk session token
	// -------------------------------------------------------------------------
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.ClerkAuthMiddleware)

	api.HandleFunc("/templates", templateHandler.ListTemplates).Methods("GET")
	api.HandleFunc("/templates", templateHandler.CreateTemplate).Methods("POST")
	api.HandleFunc("/templates/{id}", templateHandler.GetTemplate).Methods("GET")
	api.HandleFunc("/templates/{id}", templateHandler.UpdateTemplate).Methods("PUT")
	api.HandleFunc("/templates/{id}", templateHandler.DeleteTemplate).Methods("DELETE")
	api.HandleFunc("/templates/{id}/designs", designHandler.CreateFromTemplate).Methods("POST")
	api.HandleFunc("/templates/{id}/thumbnail.png", templateHandler.GetTemplateThumbnail).Methods("GET")

	api.HandleFunc("/designs", designHandler.ListDesigns).Methods("GET")
	api.HandleFunc("/designs", designHandler.CreateDesign).Methods("POST")
	api.HandleFunc("/designs/{id}", designHandler.GetDesign).Methods("GET")
	api.HandleFunc("/designs/{id}", designHandler.UpdateDesign).Methods("PUT")
	api.HandleFunc("/designs/{id}", designHandler.DeleteDesign).Methods("DELETE")
	api.HandleFunc("/designs/{id}/template", designHandler.SaveAsTemplate).Methods("POST")
	api.HandleFunc("/designs/{id}/thumbnail.png", designHandler.GetDesignThumbnail).Methods("GET")

	api.HandleFunc("/copy/suggestions", copyHandler.GenerateSuggestions).Methods("POST")

	// CORS configuration
	corsHandler := gorilllaHandlers.CORS(
		gorilllaHandlers.AllowedOrigins([]string{"*"}),
		gorilllaHandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		gorilllaHandlers.AllowedHeaders([]string{"Content-Type", "Authorization", "X-Pprof-Secret"}),
		gorilllaHandlers.ExposedHeaders([]string{"Content-Length"}),
		gorilllaHandlers.AllowCredentials(),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3333"
	}
	port = ":" + port

	server := http.Server{
		Addr:         port,
		Handler:      corsHandler(r),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Error starting server:", err)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)

	sig := <-sigChan
	log.Println("Got signal:", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server shutdown complete")
}
