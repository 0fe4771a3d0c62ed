package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/fmartins/agendafoto/config"
	"github.com/fmartins/agendafoto/internal/handler"
	"github.com/fmartins/agendafoto/internal/metrics"
	"github.com/fmartins/agendafoto/internal/middleware"
	"github.com/fmartins/agendafoto/internal/repository"
	"github.com/fmartins/agendafoto/internal/service"
	"github.com/fmartins/agendafoto/pkg/cache"
	"github.com/fmartins/agendafoto/pkg/db"
)

func main() {
	// ── Load configuration ──────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx := context.Background()

	// ── Connect to PostgreSQL ───────────────────────────
	pgPool, err := db.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		log.Fatalf("failed to connect to PostgreSQL: %v", err)
	}
	defer pgPool.Close()
	log.Println("✓ PostgreSQL connected")

	// ── Connect to Redis ────────────────────────────────
	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		log.Fatalf("failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Println("✓ Redis connected")

	// ── Initialize layers ───────────────────────────────
	metrics.RegisterDefault()

	photographerRepo := repository.NewPhotographerRepository(pgPool, redisClient)
	commitmentRepo := repository.NewCommitmentRepository(pgPool)

	availabilitySvc := service.NewAvailabilityService(photographerRepo, commitmentRepo)
	opportunitySvc := service.NewOpportunityService(photographerRepo, commitmentRepo)
	insertionSvc := service.NewInsertionService(photographerRepo, commitmentRepo)

	availabilityHandler := handler.NewAvailabilityHandler(availabilitySvc)
	schedulingHandler := handler.NewSchedulingHandler(opportunitySvc, insertionSvc)

	// ── Setup router ────────────────────────────────────
	router := mux.NewRouter()

	// Health check endpoint.
	router.HandleFunc("/health", healthHandler(pgPool, redisClient)).Methods(http.MethodGet)

	if cfg.Metrics.Enabled {
		router.Handle(cfg.Metrics.Path,
			promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}

	// API v1 routes.
	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Metrics)
	api.Use(middleware.RateLimit(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst))
	// Availability
	api.HandleFunc("/availability", availabilityHandler.GetAvailability).Methods(http.MethodGet)
	api.HandleFunc("/availability/check", availabilityHandler.CheckAvailability).Methods(http.MethodGet)
	// Smart scheduling
	api.HandleFunc("/scheduling/opportunities", schedulingHandler.FindOpportunities).Methods(http.MethodGet)
	api.HandleFunc("/scheduling/orders-for-slot", schedulingHandler.OrdersForSlot).Methods(http.MethodGet)

	// Outermost first: recover from panics, tag requests, log, allow browsers.
	chain := middleware.Recoverer(
		middleware.RequestID(
			middleware.RequestLogger(
				middleware.CORS(router))))

	// ── Start HTTP server ───────────────────────────────
	srv := &http.Server{
		Addr:         cfg.Server.ServerAddr(),
		Handler:      chain,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start in a goroutine so we can listen for shutdown signals.
	go func() {
		log.Printf("🚀 Server listening on %s", cfg.Server.ServerAddr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// ── Graceful shutdown ───────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("⏳ Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("✅ Server gracefully stopped")
}

// HealthResponse represents the /health endpoint response.
type HealthResponse struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services"`
}

// healthHandler returns an HTTP handler that checks PG and Redis connectivity.
func healthHandler(pgPool *pgxpool.Pool, redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := HealthResponse{
			Status:   "ok",
			Services: make(map[string]string),
		}

		if err := db.HealthCheck(r.Context(), pgPool); err != nil {
			resp.Status = "degraded"
			resp.Services["postgres"] = "unhealthy: " + err.Error()
		} else {
			resp.Services["postgres"] = "healthy"
		}

		if err := cache.HealthCheck(r.Context(), redisClient); err != nil {
			resp.Status = "degraded"
			resp.Services["redis"] = "unhealthy: " + err.Error()
		} else {
			resp.Services["redis"] = "healthy"
		}

		w.Header().Set("Content-Type", "application/json")
		if resp.Status != "ok" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(resp)
	}
}
