package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"oppswipe_server/services"

	"github.com/gorilla/mux"
)

// DeckController exposes the swipe-deck state machine to the rendering
// layer: open a deck, dispatch gesture/keyboard events, read snapshots.
type DeckController struct {
	DeckService *services.DeckService
}

// NewDeckController creates a new DeckController instance
func NewDeckController(deckService *services.DeckService) *DeckController {
	return &DeckController{DeckService: deckService}
}

// HandleOpenDeck creates a deck and returns its first snapshot
func (dc *DeckController) HandleOpenDeck(w http.ResponseWriter, r *http.Request) {
	var request struct {
		ActorID string `json:"actorId"`
		GuestID string `json:"guestId"`
		Limit   int    `json:"limit"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Println("Invalid request payload:", err)
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	snapshot, err := dc.DeckService.OpenDeck(r.Context(), request.ActorID, request.GuestID, request.Limit)
	if err != nil {
		if services.IsValidationError(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Println("Error opening deck:", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snapshot)
}

// HandleDispatch applies one event to a deck and returns the new state
func (dc *DeckController) HandleDispatch(w http.ResponseWriter, r *http.Request) {
	deckID := mux.Vars(r)["deckId"]

	var event services.DeckEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		log.Println("Invalid request payload:", err)
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	snapshot, err := dc.DeckService.Dispatch(deckID, event)
	if err != nil {
		if errors.Is(err, services.ErrDeckNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snapshot)
}

// HandleGetDeck returns a deck's current snapshot
func (dc *DeckController) HandleGetDeck(w http.ResponseWriter, r *http.Request) {
	deckID := mux.Vars(r)["deckId"]

	snapshot, err := dc.DeckService.Snapshot(deckID)
	if err != nil {
		if errors.Is(err, services.ErrDeckNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snapshot)
}
