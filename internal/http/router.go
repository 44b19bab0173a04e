package http

import (
	"net/http"

	"jobcard-backend/internal/handlers"
	"jobcard-backend/internal/logger"
	"jobcard-backend/internal/middleware"
	"jobcard-backend/internal/models"
	"jobcard-backend/internal/realtime"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(
	jobcardHandler *handlers.JobcardHandler,
	vehicleModelHandler *handlers.VehicleModelHandler,
	authHandler *handlers.AuthHandler,
	statsHandler *handlers.StatsHandler,
	backupHandler *handlers.BackupHandler,
	healthHandler *handlers.HealthHandler,
	hub *realtime.Hub,
	authMiddleware *middleware.AuthMiddleware,
	log *logger.Logger,
) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.MetricsMiddleware)

	adminOnly := authMiddleware.RequireRole(models.RoleAdmin)

	api := r.PathPrefix("/api").Subrouter()

	// Public API routes - Authentication
	authAPI := api.PathPrefix("/auth").Subrouter()
	authAPI.HandleFunc("/login", authHandler.Login).Methods("POST")
	authAPI.HandleFunc("/change-password", authHandler.ChangePassword).Methods("POST")
	authAPI.HandleFunc("/seed", authHandler.Seed).Methods("GET")

	// Protected API routes - Jobcards
	jobcardsAPI := api.PathPrefix("/jobcards").Subrouter()
	jobcardsAPI.Use(authMiddleware.Authenticate)
	jobcardsAPI.HandleFunc("", jobcardHandler.ListJobcards).Methods("GET")
	jobcardsAPI.HandleFunc("", jobcardHandler.CreateJobcard).Methods("POST")
	jobcardsAPI.HandleFunc("/search", jobcardHandler.SearchJobcards).Methods("POST")
	jobcardsAPI.HandleFunc("/{identifier}", jobcardHandler.GetJobcard).Methods("GET")
	jobcardsAPI.HandleFunc("/{id}", jobcardHandler.UpdateJobcard).Methods("PUT")
	jobcardsAPI.Handle("/{id}", adminOnly(http.HandlerFunc(jobcardHandler.DeleteJobcard))).Methods("DELETE")
	jobcardsAPI.HandleFunc("/{id}/pay", jobcardHandler.PayJobcard).Methods("POST")
	jobcardsAPI.HandleFunc("/{identifier}/print/worksheet", jobcardHandler.PrintWorksheet).Methods("GET")
	jobcardsAPI.HandleFunc("/{identifier}/print/receipt", jobcardHandler.PrintReceipt).Methods("GET")

	// Protected API routes - Vehicle models (Admin for changes)
	modelsAPI := api.PathPrefix("/models").Subrouter()
	modelsAPI.Use(authMiddleware.Authenticate)
	modelsAPI.HandleFunc("", vehicleModelHandler.ListModels).Methods("GET")
	modelsAPI.Handle("", adminOnly(http.HandlerFunc(vehicleModelHandler.CreateModel))).Methods("POST")
	modelsAPI.Handle("/{id}", adminOnly(http.HandlerFunc(vehicleModelHandler.DeleteModel))).Methods("DELETE")

	// Protected API routes - Stats
	statsAPI := api.PathPrefix("/stats").Subrouter()
	statsAPI.Use(authMiddleware.Authenticate)
	statsAPI.HandleFunc("/daily", statsHandler.Daily).Methods("GET")

	// Protected API routes - Admin
	adminAPI := api.PathPrefix("/admin").Subrouter()
	adminAPI.Use(authMiddleware.Authenticate)
	adminAPI.Use(adminOnly)
	adminAPI.HandleFunc("/backup", backupHandler.RunBackup).Methods("POST")

	// Realtime feed; browsers pass the token as ?token=
	api.Handle("/ws", authMiddleware.Authenticate(http.HandlerFunc(hub.ServeWS))).Methods("GET")

	// Health check endpoints (no auth required)
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")
	r.HandleFunc("/health/detailed", healthHandler.DetailedHealth).Methods("GET")

	// Prometheus metrics endpoint
	r.Handle("/metrics", promhttp.Handler())

	return r
}
