package services

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"oppswipe_server/models"
)

// opportunityLister is the slice of OpportunityService the selector needs.
type opportunityLister interface {
	ListOpenOpportunities(ctx context.Context, now time.Time) ([]models.Opportunity, error)
}

// CandidateService produces a bounded, non-repeating list of open
// opportunities: affinity-ranked for known users, randomized for guests.
type CandidateService struct {
	Opportunities opportunityLister

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewCandidateService(opportunities opportunityLister) *CandidateService {
	return &CandidateService{
		Opportunities: opportunities,
		rnd:           rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Select returns at most limit open opportunities not present in the
// exclusion set. With a profile, tag-matching candidates come first,
// newest-first; the remainder is a randomized fill. Without a profile the
// whole draw is randomized.
func (cs *CandidateService) Select(
	ctx context.Context,
	limit int,
	exclusion map[string]struct{},
	profile *models.AffinityProfile,
) ([]models.Opportunity, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}

	open, err := cs.Opportunities.ListOpenOpportunities(ctx, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to list open opportunities: %w", err)
	}

	eligible := make([]models.Opportunity, 0, len(open))
	for _, opp := range open {
		if _, excluded := exclusion[opp.OpportunityID]; excluded {
			continue
		}
		eligible = append(eligible, opp)
	}

	if profile == nil {
		cs.shuffle(eligible)
		if len(eligible) > limit {
			eligible = eligible[:limit]
		}
		return eligible, nil
	}

	ranked := make([]models.Opportunity, 0, limit)
	var rest []models.Opportunity
	for _, opp := range eligible {
		if tagsIntersect(opp.TypeTags, profile.TopTypes) || tagsIntersect(opp.ZoneTags, profile.TopZones) {
			ranked = append(ranked, opp)
		} else {
			rest = append(rest, opp)
		}
	}

	// Newest first; postedAt is RFC3339 so string order is time order
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].PostedAt > ranked[j].PostedAt
	})

	if len(ranked) > limit {
		return ranked[:limit], nil
	}

	// Fallback: randomized fill from the remaining eligible pool
	cs.shuffle(rest)
	for _, opp := range rest {
		if len(ranked) == limit {
			break
		}
		ranked = append(ranked, opp)
	}

	return ranked, nil
}

func (cs *CandidateService) shuffle(opps []models.Opportunity) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.rnd.Shuffle(len(opps), func(i, j int) {
		opps[i], opps[j] = opps[j], opps[i]
	})
}

func tagsIntersect(tags, wanted []string) bool {
	for _, tag := range tags {
		for _, w := range wanted {
			if tag == w {
				return true
			}
		}
	}
	return false
}
