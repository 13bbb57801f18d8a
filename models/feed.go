package models

// AffinityProfile holds the top tag sets derived from an actor's positive
// interaction history.
type AffinityProfile struct {
	TopTypes []string `json:"topTypes"`
	TopZones []string `json:"topZones"`
}

// TopTagCount is how many tags of each kind the profile keeps.
const TopTagCount = 5

// FeedRequest is the body of POST /api/feed.
type FeedRequest struct {
	Limit      int      `json:"limit"`
	GuestID    string   `json:"guestId,omitempty"`
	SeenOppIDs []string `json:"seenOppIds,omitempty"`
}

// FeedResponse is either a batch of opportunities or the terminal
// limit-reached payload carrying the cached batch.
type FeedResponse struct {
	Opportunities       []Opportunity `json:"opportunities,omitempty"`
	LimitReached        bool          `json:"limitReached,omitempty"`
	CachedOpportunities []Opportunity `json:"cachedOpportunities,omitempty"`
	GuestID             string        `json:"guestId,omitempty"`
}
