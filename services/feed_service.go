package services

import (
	"context"
	"log"

	"oppswipe_server/models"

	"github.com/google/uuid"
)

// FeedService unifies the guest and authenticated feed paths behind one
// call. Authenticated actors get the affinity-ranked selection; guests go
// through the capped session cache.
type FeedService struct {
	History    *HistoryService
	Candidates *CandidateService
	Guests     *GuestFeedService
}

// GetFeed validates the request and routes it by actor kind. actorID is
// empty for anonymous requests; those must carry a guestId, minted here
// when the client self-identifies as guest with an empty one.
func (fs *FeedService) GetFeed(ctx context.Context, actorID string, request models.FeedRequest) (*models.FeedResponse, error) {
	if request.Limit <= 0 {
		return nil, ErrInvalidLimit
	}

	if actorID == "" {
		guestID := request.GuestID
		if guestID == "" {
			return nil, ErrMissingGuestID
		}
		return fs.Guests.FetchFeed(ctx, guestID, request.SeenOppIDs, request.Limit)
	}

	profile, seen, err := fs.History.BuildAffinityProfile(ctx, actorID)
	if err != nil {
		return nil, err
	}
	for _, id := range request.SeenOppIDs {
		seen[id] = struct{}{}
	}

	batch, err := fs.Candidates.Select(ctx, request.Limit, seen, profile)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Feed for %s: %d cards (profile=%v)", actorID, len(batch), profile != nil)
	return &models.FeedResponse{Opportunities: batch}, nil
}

// MintGuestID issues a fresh guest identifier for first-time anonymous
// clients.
func (fs *FeedService) MintGuestID() string {
	return uuid.NewString()
}
