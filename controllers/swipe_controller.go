package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"oppswipe_server/models"
	"oppswipe_server/services"
)

// SwipeController handles direct swipe writes from clients that run their
// own deck. The write is fire-and-forget: it is acknowledged as soon as it
// is enqueued.
type SwipeController struct {
	Queue *services.WriteQueueService
}

// NewSwipeController creates a new SwipeController instance
func NewSwipeController(queue *services.WriteQueueService) *SwipeController {
	return &SwipeController{Queue: queue}
}

// HandleSwipe enqueues an accept/reject decision
func (sc *SwipeController) HandleSwipe(w http.ResponseWriter, r *http.Request) {
	write, ok := sc.decodeWrite(w, r)
	if !ok {
		return
	}

	sc.Queue.Enqueue(write)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]string{"message": "Swipe recorded"})
}

// HandleUndo enqueues the compensating write for a previously recorded
// swipe
func (sc *SwipeController) HandleUndo(w http.ResponseWriter, r *http.Request) {
	write, ok := sc.decodeWrite(w, r)
	if !ok {
		return
	}

	sc.Queue.Compensate(write)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]string{"message": "Swipe undone"})
}

func (sc *SwipeController) decodeWrite(w http.ResponseWriter, r *http.Request) (models.PendingWrite, bool) {
	var request struct {
		OppID     string `json:"oppId"`
		Direction string `json:"direction"`
		ActorID   string `json:"actorId"`
		GuestID   string `json:"guestId"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Println("Invalid request payload:", err)
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return models.PendingWrite{}, false
	}

	if request.OppID == "" {
		http.Error(w, "oppId is required", http.StatusBadRequest)
		return models.PendingWrite{}, false
	}
	if request.Direction != models.SwipeDirectionAccept && request.Direction != models.SwipeDirectionReject {
		http.Error(w, services.ErrInvalidDirection.Error(), http.StatusBadRequest)
		return models.PendingWrite{}, false
	}
	if request.ActorID == "" && request.GuestID == "" {
		http.Error(w, services.ErrMissingActor.Error(), http.StatusBadRequest)
		return models.PendingWrite{}, false
	}

	return models.PendingWrite{
		OpportunityID: request.OppID,
		Direction:     request.Direction,
		ActorID:       request.ActorID,
		GuestID:       request.GuestID,
	}, true
}
