package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"oppswipe_server/models"
	"oppswipe_server/services"

	"github.com/stretchr/testify/require"
)

type fakeLister struct {
	open []models.Opportunity
}

func (f *fakeLister) ListOpenOpportunities(ctx context.Context, now time.Time) ([]models.Opportunity, error) {
	return f.open, nil
}

type fakeReader struct{}

func (f *fakeReader) ListByActor(ctx context.Context, actorID string) ([]models.UserInteraction, error) {
	return nil, nil
}

type fakeGetter struct{}

func (f *fakeGetter) GetOpportunity(ctx context.Context, opportunityID string) (*models.Opportunity, error) {
	return nil, services.ErrItemNotFound
}

func newFeedController(supply int) *FeedController {
	open := make([]models.Opportunity, 0, supply)
	for i := 0; i < supply; i++ {
		open = append(open, models.Opportunity{
			OpportunityID: fmt.Sprintf("opp-%d", i),
			Status:        models.OpportunityStatusActive,
			PostedAt:      time.Now().UTC().Format(time.RFC3339),
		})
	}
	candidates := services.NewCandidateService(&fakeLister{open: open})
	return NewFeedController(&services.FeedService{
		History:    &services.HistoryService{Interactions: &fakeReader{}, Opportunities: &fakeGetter{}},
		Candidates: candidates,
		Guests: &services.GuestFeedService{
			Sessions:   services.NewInMemorySessionStore(),
			Candidates: candidates,
		},
	})
}

func postFeed(t *testing.T, controller *FeedController, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	request := httptest.NewRequest(http.MethodPost, "/api/feed", bytes.NewReader(payload))
	recorder := httptest.NewRecorder()
	controller.HandleGetFeed(recorder, request)
	return recorder
}

func TestHandleGetFeedRejectsZeroLimit(t *testing.T) {
	controller := newFeedController(5)

	recorder := postFeed(t, controller, map[string]any{"guestId": "g1"})
	require.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestHandleGetFeedServesGuestBatch(t *testing.T) {
	controller := newFeedController(20)

	recorder := postFeed(t, controller, map[string]any{"guestId": "g1", "limit": 8})
	require.Equal(t, http.StatusOK, recorder.Code)

	var response models.FeedResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	require.Len(t, response.Opportunities, 8)
	require.False(t, response.LimitReached)
}

func TestHandleGetFeedMintsGuestIDForAnonymousClients(t *testing.T) {
	controller := newFeedController(20)

	recorder := postFeed(t, controller, map[string]any{"limit": 8})
	require.Equal(t, http.StatusOK, recorder.Code)

	var response models.FeedResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	require.NotEmpty(t, response.GuestID)
}

func TestHandleGetFeedExcludesSeenIDs(t *testing.T) {
	controller := newFeedController(10)

	recorder := postFeed(t, controller, map[string]any{
		"actorId":    "u1",
		"limit":      10,
		"seenOppIds": []string{"opp-0", "opp-1"},
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	var response models.FeedResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	require.Len(t, response.Opportunities, 8)
	for _, opp := range response.Opportunities {
		require.NotContains(t, []string{"opp-0", "opp-1"}, opp.OpportunityID)
	}
}
