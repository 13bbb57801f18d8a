package models

import "time"

// Swipe directions
const (
	SwipeDirectionAccept = "accept"
	SwipeDirectionReject = "reject"
)

// SwipeEvent is one committed decision in a deck's append-only history.
// `Undone` is the only mutable field, and only on the most recent
// non-undone event.
type SwipeEvent struct {
	EventID       string    `json:"eventId"`
	OpportunityID string    `json:"opportunityId"`
	Direction     string    `json:"direction"`
	CreatedAt     time.Time `json:"createdAt"`
	Undone        bool      `json:"undone"`
}

// PendingWrite is the unit handed from the deck to the write queue.
// Compensation marks the inverse write issued by an undo.
type PendingWrite struct {
	OpportunityID string `json:"opportunityId"`
	Direction     string `json:"direction"`
	ActorID       string `json:"actorId,omitempty"`
	GuestID       string `json:"guestId,omitempty"`
	Compensation  bool   `json:"compensation,omitempty"`
}

// IsGuest reports whether the write belongs to an anonymous actor.
func (w PendingWrite) IsGuest() bool {
	return w.ActorID == ""
}
