package routes

import (
	"oppswipe_server/controllers"
	"oppswipe_server/services"

	"github.com/gorilla/mux"
)

// RegisterMetricsRoutes sets up routes for metrics under /api/metrics
func RegisterMetricsRoutes(r *mux.Router, metricsService *services.MetricsService) {
	controller := controllers.NewMetricsController(metricsService)

	metricsRouter := r.PathPrefix("/api/metrics").Subrouter()
	metricsRouter.HandleFunc("/event", controller.HandleEvent).Methods("POST")
	metricsRouter.HandleFunc("/{oppId}", controller.HandleGetMetrics).Methods("GET")
}
