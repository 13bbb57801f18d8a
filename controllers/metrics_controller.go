package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"oppswipe_server/services"

	"github.com/gorilla/mux"
)

// MetricsController handles engagement metric events and counter reads
type MetricsController struct {
	MetricsService *services.MetricsService
}

// NewMetricsController creates a new MetricsController instance
func NewMetricsController(metricsService *services.MetricsService) *MetricsController {
	return &MetricsController{MetricsService: metricsService}
}

// HandleEvent records one engagement action against an opportunity
func (mc *MetricsController) HandleEvent(w http.ResponseWriter, r *http.Request) {
	var request struct {
		OppID      string `json:"oppId"`
		ActionType string `json:"actionType"`
		ActorID    string `json:"actorId"`
		GuestID    string `json:"guestId"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Println("Invalid request payload:", err)
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	if request.OppID == "" || request.ActionType == "" {
		http.Error(w, "oppId and actionType are required", http.StatusBadRequest)
		return
	}

	err := mc.MetricsService.RecordEvent(r.Context(), request.OppID, request.ActionType, request.ActorID, request.GuestID)
	if err != nil {
		if services.IsValidationError(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Println("Error recording metrics event:", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Event recorded"})
}

// HandleGetMetrics returns the counter row for one opportunity
func (mc *MetricsController) HandleGetMetrics(w http.ResponseWriter, r *http.Request) {
	opportunityID := mux.Vars(r)["oppId"]

	metrics, err := mc.MetricsService.GetMetrics(r.Context(), opportunityID)
	if err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			http.Error(w, "No metrics for opportunity", http.StatusNotFound)
			return
		}
		log.Println("Error fetching metrics:", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(metrics)
}
