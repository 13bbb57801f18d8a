package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"oppswipe_server/models"
	"oppswipe_server/services"
)

// FeedController handles HTTP requests for the opportunity feed
type FeedController struct {
	FeedService *services.FeedService
}

// NewFeedController creates a new FeedController instance
func NewFeedController(feedService *services.FeedService) *FeedController {
	return &FeedController{FeedService: feedService}
}

// HandleGetFeed serves a personalized batch for authenticated actors and a
// capped randomized batch for guests. actorId arrives resolved by the
// upstream auth layer; empty means anonymous.
func (fc *FeedController) HandleGetFeed(w http.ResponseWriter, r *http.Request) {
	var request struct {
		ActorID    string   `json:"actorId"`
		GuestID    string   `json:"guestId"`
		Limit      int      `json:"limit"`
		SeenOppIDs []string `json:"seenOppIds"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Println("Invalid request payload:", err)
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	// First-time anonymous clients get a guest id minted for them
	if request.ActorID == "" && request.GuestID == "" {
		request.GuestID = fc.FeedService.MintGuestID()
	}

	response, err := fc.FeedService.GetFeed(r.Context(), request.ActorID, models.FeedRequest{
		Limit:      request.Limit,
		GuestID:    request.GuestID,
		SeenOppIDs: request.SeenOppIDs,
	})
	if err != nil {
		if services.IsValidationError(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Println("Error building feed:", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
