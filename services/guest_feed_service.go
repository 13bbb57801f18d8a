package services

import (
	"context"
	"log"

	"oppswipe_server/models"
)

// GuestFeedService serves anonymous visitors: at most GuestFetchCap real
// store fetches per session, with the last served batch cached as a
// fallback in between.
type GuestFeedService struct {
	Sessions   SessionStore
	Candidates *CandidateService
}

// FetchFeed evaluates the guest policy in order:
//  1. a cached batch filtered by the client's seen ids, when non-empty,
//     is returned without counting as a fetch;
//  2. at the fetch cap, the terminal limitReached payload is returned and
//     the store is not queried;
//  3. otherwise a real randomized fetch runs, is cached, and counts.
func (gs *GuestFeedService) FetchFeed(ctx context.Context, guestID string, seenOppIDs []string, limit int) (*models.FeedResponse, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}

	seen := make(map[string]struct{}, len(seenOppIDs))
	for _, id := range seenOppIDs {
		seen[id] = struct{}{}
	}

	session, ok := gs.Sessions.Get(guestID)
	if ok && len(session.CachedOpportunities) > 0 {
		var remaining []models.Opportunity
		for _, opp := range session.CachedOpportunities {
			if _, wasSeen := seen[opp.OpportunityID]; !wasSeen {
				remaining = append(remaining, opp)
			}
		}
		if len(remaining) > 0 {
			log.Printf("✅ Guest %s served %d cards from cache (fetchCount=%d)", guestID, len(remaining), session.FetchCount)
			return &models.FeedResponse{Opportunities: remaining, GuestID: guestID}, nil
		}
	}

	if session.FetchCount >= models.GuestFetchCap {
		log.Printf("⚠️ Guest %s hit the fetch cap (%d)", guestID, session.FetchCount)
		return &models.FeedResponse{
			LimitReached:        true,
			CachedOpportunities: session.CachedOpportunities,
			GuestID:             guestID,
		}, nil
	}

	batch, err := gs.Candidates.Select(ctx, limit, seen, nil)
	if err != nil {
		return nil, err
	}

	count := gs.Sessions.IncrementFetchCount(guestID)
	session, _ = gs.Sessions.Get(guestID)
	session.CachedOpportunities = batch
	gs.Sessions.Put(session)

	log.Printf("✅ Guest %s real fetch #%d returned %d cards", guestID, count, len(batch))
	return &models.FeedResponse{Opportunities: batch, GuestID: guestID}, nil
}
