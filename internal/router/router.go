package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter creates the Chi router for the operational endpoints
// These are served alongside a listing run so that Prometheus can scrape
// progress counters; nothing here touches the Atlas API or the output file
//
// Returns:
//   - chi.Router: configured router ready to use
func SetupRouter() chi.Router {
	r := chi.NewRouter()

	// Apply global middleware - these run on every request
	r.Use(middleware.RequestID) // Add unique request ID to each request
	r.Use(middleware.Recoverer) // Recover from panics and return 500

	// Health check endpoint - used by monitoring
	r.Get("/health", healthCheckHandler)

	// Prometheus metrics endpoint
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// healthCheckHandler is a simple health check endpoint
// Returns 200 OK if the process is running
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
