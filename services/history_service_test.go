package services

import (
	"context"
	"testing"

	"oppswipe_server/models"

	"github.com/stretchr/testify/require"
)

type fakeInteractionReader struct {
	records []models.UserInteraction
	err     error
}

func (f *fakeInteractionReader) ListByActor(ctx context.Context, actorID string) ([]models.UserInteraction, error) {
	return f.records, f.err
}

type fakeGetter struct {
	opps map[string]models.Opportunity
}

func (f *fakeGetter) GetOpportunity(ctx context.Context, opportunityID string) (*models.Opportunity, error) {
	opp, ok := f.opps[opportunityID]
	if !ok {
		return nil, ErrItemNotFound
	}
	return &opp, nil
}

func TestBuildAffinityProfileTalliesTopTags(t *testing.T) {
	reader := &fakeInteractionReader{records: []models.UserInteraction{
		{ActorID: "u1", OpportunityID: "o1", Liked: true},
		{ActorID: "u1", OpportunityID: "o2", Saved: true},
		{ActorID: "u1", OpportunityID: "o3", Applied: true},
		{ActorID: "u1", OpportunityID: "o4"}, // seen but not positive
	}}
	getter := &fakeGetter{opps: map[string]models.Opportunity{
		"o1": {OpportunityID: "o1", TypeTags: []string{"WORKSHOP"}, ZoneTags: []string{"MUSIC"}},
		"o2": {OpportunityID: "o2", TypeTags: []string{"WORKSHOP"}, ZoneTags: []string{"MUSIC"}},
		"o3": {OpportunityID: "o3", TypeTags: []string{"GRANT"}, ZoneTags: []string{"MUSIC"}},
		"o4": {OpportunityID: "o4", TypeTags: []string{"SCAM"}, ZoneTags: []string{"SCAM"}},
	}}
	hs := &HistoryService{Interactions: reader, Opportunities: getter}

	profile, seen, err := hs.BuildAffinityProfile(context.Background(), "u1")
	require.NoError(t, err)
	require.NotNil(t, profile)

	// Seen set covers every record, positive or not
	require.Len(t, seen, 4)
	require.Contains(t, seen, "o4")

	// Non-positive records contribute nothing to the tally
	require.NotContains(t, profile.TopTypes, "SCAM")
	require.ElementsMatch(t, []string{"WORKSHOP", "GRANT"}, profile.TopTypes)
	require.Equal(t, []string{"MUSIC"}, profile.TopZones)
	// WORKSHOP (2) outranks GRANT (1)
	require.Equal(t, "WORKSHOP", profile.TopTypes[0])
}

func TestBuildAffinityProfileKeepsFiveTags(t *testing.T) {
	records := []models.UserInteraction{}
	opps := map[string]models.Opportunity{}
	tags := []string{"A", "B", "C", "D", "E", "F"}
	for i, tag := range tags {
		// tag i appears len(tags)-i times, so "F" is least frequent
		for j := 0; j <= len(tags)-i; j++ {
			id := tag + string(rune('0'+j))
			records = append(records, models.UserInteraction{OpportunityID: id, Liked: true})
			opps[id] = models.Opportunity{OpportunityID: id, TypeTags: []string{tag}}
		}
	}
	hs := &HistoryService{Interactions: &fakeInteractionReader{records: records}, Opportunities: &fakeGetter{opps: opps}}

	profile, _, err := hs.BuildAffinityProfile(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, profile.TopTypes, models.TopTagCount)
	require.NotContains(t, profile.TopTypes, "F")
}

func TestBuildAffinityProfileNoPositives(t *testing.T) {
	reader := &fakeInteractionReader{records: []models.UserInteraction{
		{ActorID: "u1", OpportunityID: "o1"},
		{ActorID: "u1", OpportunityID: "o2", Clicked: true}, // clicked alone is not positive
	}}
	hs := &HistoryService{Interactions: reader, Opportunities: &fakeGetter{}}

	profile, seen, err := hs.BuildAffinityProfile(context.Background(), "u1")
	require.NoError(t, err)
	require.Nil(t, profile)
	require.Len(t, seen, 2)
}

func TestBuildAffinityProfileSkipsRemovedOpportunities(t *testing.T) {
	reader := &fakeInteractionReader{records: []models.UserInteraction{
		{ActorID: "u1", OpportunityID: "gone", Liked: true},
		{ActorID: "u1", OpportunityID: "o1", Liked: true},
	}}
	getter := &fakeGetter{opps: map[string]models.Opportunity{
		"o1": {OpportunityID: "o1", TypeTags: []string{"WORKSHOP"}},
	}}
	hs := &HistoryService{Interactions: reader, Opportunities: getter}

	profile, seen, err := hs.BuildAffinityProfile(context.Background(), "u1")
	require.NoError(t, err)
	require.Equal(t, []string{"WORKSHOP"}, profile.TopTypes)
	require.Contains(t, seen, "gone")
}
