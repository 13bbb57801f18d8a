package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"

	"oppswipe_server/models"
)

// interactionReader is the slice of InteractionService the analyzer needs.
type interactionReader interface {
	ListByActor(ctx context.Context, actorID string) ([]models.UserInteraction, error)
}

// opportunityGetter is the slice of OpportunityService the analyzer needs.
type opportunityGetter interface {
	GetOpportunity(ctx context.Context, opportunityID string) (*models.Opportunity, error)
}

// HistoryService derives a tag-affinity profile from an actor's past
// positive interactions (liked, saved or applied).
type HistoryService struct {
	Interactions  interactionReader
	Opportunities opportunityGetter
}

// BuildAffinityProfile tallies type and zone tags across the actor's
// positively-interacted opportunities and keeps the top 5 of each. It also
// returns the actor's seen set: every opportunity the actor has a record
// for, positive or not, so the feed never repeats a shown card.
//
// An actor with no positive history gets a nil profile; the selector then
// falls back to the randomized draw. Tag order among equal frequencies is
// implementation-defined.
func (hs *HistoryService) BuildAffinityProfile(ctx context.Context, actorID string) (*models.AffinityProfile, map[string]struct{}, error) {
	records, err := hs.Interactions.ListByActor(ctx, actorID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load interaction history for %s: %w", actorID, err)
	}

	seen := make(map[string]struct{}, len(records))
	typeCounts := map[string]int{}
	zoneCounts := map[string]int{}
	positives := 0

	for _, record := range records {
		seen[record.OpportunityID] = struct{}{}
		if !record.Positive() {
			continue
		}

		opp, err := hs.Opportunities.GetOpportunity(ctx, record.OpportunityID)
		if err != nil {
			if errors.Is(err, ErrItemNotFound) {
				continue // opportunity was removed, its tags are gone with it
			}
			log.Printf("❌ Error loading opportunity %s for history tally: %v", record.OpportunityID, err)
			continue
		}

		positives++
		for _, tag := range opp.TypeTags {
			typeCounts[tag]++
		}
		for _, tag := range opp.ZoneTags {
			zoneCounts[tag]++
		}
	}

	if positives == 0 {
		return nil, seen, nil
	}

	profile := &models.AffinityProfile{
		TopTypes: topTags(typeCounts, models.TopTagCount),
		TopZones: topTags(zoneCounts, models.TopTagCount),
	}
	log.Printf("✅ Affinity profile for %s: %d types, %d zones from %d positive interactions",
		actorID, len(profile.TopTypes), len(profile.TopZones), positives)
	return profile, seen, nil
}

// topTags returns up to n tags by descending frequency. Ties keep map
// iteration order, which is deliberately unstable.
func topTags(counts map[string]int, n int) []string {
	tags := make([]string, 0, len(counts))
	for tag := range counts {
		tags = append(tags, tag)
	}
	sort.SliceStable(tags, func(i, j int) bool {
		return counts[tags[i]] > counts[tags[j]]
	})
	if len(tags) > n {
		tags = tags[:n]
	}
	return tags
}
