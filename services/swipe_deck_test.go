package services

import (
	"sync"
	"testing"
	"time"

	"oppswipe_server/models"

	"github.com/stretchr/testify/require"
)

type fakeSink struct {
	mu          sync.Mutex
	enqueued    []models.PendingWrite
	compensated []models.PendingWrite
}

func (f *fakeSink) Enqueue(write models.PendingWrite) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.enqueued = append(f.enqueued, write)
}

func (f *fakeSink) Compensate(write models.PendingWrite) {
	f.mu.Lock()
	defer f.mu.Unlock()
	write.Compensation = true
	f.compensated = append(f.compensated, write)
}

func newTestDeck(actorID, guestID string, cards int) (*SwipeDeck, *fakeSink) {
	sink := &fakeSink{}
	deck := NewSwipeDeck("d1", actorID, guestID, sink, nil)
	deck.Dispatch(DeckEvent{Type: EventCardsLoaded, Cards: makeOpportunities(cards, "WORKSHOP", "MUSIC")})
	return deck, sink
}

// commitTop drives a full keyboard commit: Idle -> Committing -> Exited.
func commitTopCard(deck *SwipeDeck, direction string) DeckSnapshot {
	deck.Dispatch(DeckEvent{Type: EventKeySwipe, Direction: direction})
	return deck.Dispatch(DeckEvent{Type: EventAnimationDone})
}

func visibleIDs(snapshot DeckSnapshot) []string {
	ids := make([]string, 0, len(snapshot.Visible))
	for _, card := range snapshot.Visible {
		ids = append(ids, card.OpportunityID)
	}
	return ids
}

func TestVisibleWindowNeverExceedsLookahead(t *testing.T) {
	deck, _ := newTestDeck("u1", "", 6)

	snapshot := deck.Snapshot()
	require.Len(t, snapshot.Visible, DeckLookahead)
	require.Equal(t, 6, snapshot.Remaining)
}

func TestSubThresholdReleaseSpringsBack(t *testing.T) {
	deck, sink := newTestDeck("u1", "", 3)

	deck.Dispatch(DeckEvent{Type: EventPointerDown})
	deck.Dispatch(DeckEvent{Type: EventPointerMove, DX: CommitDistanceThreshold - 1})
	snapshot := deck.Dispatch(DeckEvent{Type: EventPointerUp, Velocity: 0.1})

	require.Equal(t, StateIdle, snapshot.TopState)
	require.Equal(t, 3, snapshot.Remaining)
	require.Zero(t, snapshot.DragX)
	require.Empty(t, sink.enqueued)
}

func TestDistanceThresholdCommits(t *testing.T) {
	deck, sink := newTestDeck("u1", "", 3)

	deck.Dispatch(DeckEvent{Type: EventPointerDown})
	deck.Dispatch(DeckEvent{Type: EventPointerMove, DX: CommitDistanceThreshold + 30})
	snapshot := deck.Dispatch(DeckEvent{Type: EventPointerUp, Velocity: 0})
	require.Equal(t, StateCommitting, snapshot.TopState)
	require.Equal(t, models.SwipeDirectionAccept, snapshot.CommitDirection)

	snapshot = deck.Dispatch(DeckEvent{Type: EventAnimationDone})
	require.Equal(t, StateIdle, snapshot.TopState)
	require.Equal(t, 2, snapshot.Remaining)
	require.Len(t, sink.enqueued, 1)
	require.Equal(t, models.SwipeDirectionAccept, sink.enqueued[0].Direction)
}

func TestVelocityThresholdCommitsRegardlessOfDistance(t *testing.T) {
	deck, sink := newTestDeck("u1", "", 3)

	deck.Dispatch(DeckEvent{Type: EventPointerDown})
	deck.Dispatch(DeckEvent{Type: EventPointerMove, DX: -40})
	snapshot := deck.Dispatch(DeckEvent{Type: EventPointerUp, Velocity: -(CommitVelocityThreshold + 0.3)})

	require.Equal(t, StateCommitting, snapshot.TopState)
	require.Equal(t, models.SwipeDirectionReject, snapshot.CommitDirection)

	deck.Dispatch(DeckEvent{Type: EventAnimationDone})
	require.Len(t, sink.enqueued, 1)
	require.Equal(t, models.SwipeDirectionReject, sink.enqueued[0].Direction)
}

func TestKeyboardSwipeBypassesDragPhysics(t *testing.T) {
	deck, sink := newTestDeck("u1", "", 3)

	snapshot := deck.Dispatch(DeckEvent{Type: EventKeySwipe, Direction: models.SwipeDirectionReject})
	require.Equal(t, StateCommitting, snapshot.TopState)
	require.Equal(t, -ProgrammaticDisplacement, snapshot.DragX)

	deck.Dispatch(DeckEvent{Type: EventAnimationDone})
	require.Len(t, sink.enqueued, 1)
}

func TestOnlyFrontCardAcceptsInput(t *testing.T) {
	deck, _ := newTestDeck("u1", "", 3)

	deck.Dispatch(DeckEvent{Type: EventKeySwipe, Direction: models.SwipeDirectionAccept})
	// A pointer or second keyboard input while committing is ignored
	snapshot := deck.Dispatch(DeckEvent{Type: EventPointerDown})
	require.Equal(t, StateCommitting, snapshot.TopState)
	snapshot = deck.Dispatch(DeckEvent{Type: EventKeySwipe, Direction: models.SwipeDirectionReject})
	require.Equal(t, models.SwipeDirectionAccept, snapshot.CommitDirection)
}

func TestUndoRestoresDeckOrderAndLength(t *testing.T) {
	deck, sink := newTestDeck("u1", "", 4)
	before := deck.Snapshot()

	commitTopCard(deck, models.SwipeDirectionAccept)
	snapshot := deck.Dispatch(DeckEvent{Type: EventUndo})

	require.Equal(t, StateEntering, snapshot.TopState)
	require.Equal(t, before.Remaining, snapshot.Remaining)
	require.Equal(t, visibleIDs(before), visibleIDs(snapshot))
	require.Len(t, sink.compensated, 1)
	require.Equal(t, sink.enqueued[0].OpportunityID, sink.compensated[0].OpportunityID)
	require.True(t, sink.compensated[0].Compensation)

	// Entering settles back to Idle
	snapshot = deck.Dispatch(DeckEvent{Type: EventAnimationDone})
	require.Equal(t, StateIdle, snapshot.TopState)
}

func TestSecondConsecutiveUndoIsNoOp(t *testing.T) {
	deck, sink := newTestDeck("u1", "", 4)

	commitTopCard(deck, models.SwipeDirectionAccept)
	deck.Dispatch(DeckEvent{Type: EventUndo})
	deck.Dispatch(DeckEvent{Type: EventAnimationDone})

	snapshot := deck.Dispatch(DeckEvent{Type: EventUndo})
	require.Equal(t, StateIdle, snapshot.TopState)
	require.Len(t, sink.compensated, 1)

	// A fresh commit re-arms undo
	commitTopCard(deck, models.SwipeDirectionReject)
	snapshot = deck.Dispatch(DeckEvent{Type: EventUndo})
	require.Equal(t, StateEntering, snapshot.TopState)
	require.Len(t, sink.compensated, 2)
}

func TestUndoOnlyFlipsMostRecentEvent(t *testing.T) {
	deck, sink := newTestDeck("u1", "", 4)

	commitTopCard(deck, models.SwipeDirectionAccept)
	commitTopCard(deck, models.SwipeDirectionReject)
	deck.Dispatch(DeckEvent{Type: EventUndo})

	require.Len(t, sink.compensated, 1)
	require.Equal(t, sink.enqueued[1].OpportunityID, sink.compensated[0].OpportunityID)
	require.Equal(t, models.SwipeDirectionReject, sink.compensated[0].Direction)
}

func TestLoginPromptFiresOnceAtFifthGuestSwipe(t *testing.T) {
	deck, _ := newTestDeck("", "g1", 8)

	for i := 1; i <= 4; i++ {
		snapshot := commitTopCard(deck, models.SwipeDirectionAccept)
		require.False(t, snapshot.ShowLoginPrompt, "prompt fired early at swipe %d", i)
	}

	snapshot := commitTopCard(deck, models.SwipeDirectionAccept)
	require.True(t, snapshot.ShowLoginPrompt, "prompt must fire at swipe %d", LoginPromptSwipeCount)

	snapshot = commitTopCard(deck, models.SwipeDirectionAccept)
	require.False(t, snapshot.ShowLoginPrompt, "prompt must fire only once")
}

func TestLoginPromptNeverFiresForAuthenticatedActors(t *testing.T) {
	deck, _ := newTestDeck("u1", "", 8)

	for i := 0; i < 6; i++ {
		snapshot := commitTopCard(deck, models.SwipeDirectionAccept)
		require.False(t, snapshot.ShowLoginPrompt)
	}
}

func TestPrefetchFiresWhenStackRunsLow(t *testing.T) {
	type prefetchCall struct {
		limit   int
		exclude []string
	}
	calls := make(chan prefetchCall, 1)

	sink := &fakeSink{}
	deck := NewSwipeDeck("d1", "u1", "", sink, func(limit int, exclude []string) {
		calls <- prefetchCall{limit, exclude}
	})
	deck.Dispatch(DeckEvent{Type: EventCardsLoaded, Cards: makeOpportunities(4, "WORKSHOP", "MUSIC")})

	// 4 -> 3 remaining: still at the threshold, no prefetch
	commitTopCard(deck, models.SwipeDirectionAccept)
	select {
	case <-calls:
		t.Fatal("prefetch fired at threshold")
	case <-time.After(50 * time.Millisecond):
	}

	// 3 -> 2 remaining: below the threshold
	commitTopCard(deck, models.SwipeDirectionAccept)
	var call prefetchCall
	select {
	case call = <-calls:
	case <-time.After(time.Second):
		t.Fatal("prefetch did not fire")
	}
	require.Equal(t, PrefetchBatchSize, call.limit)
	// Everything on or off the stack is excluded from the refill
	require.Len(t, call.exclude, 4)

	// No second prefetch while one is in flight
	commitTopCard(deck, models.SwipeDirectionAccept)
	select {
	case <-calls:
		t.Fatal("second prefetch fired while one was pending")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestMergedCardsExcludePresentAndSwiped(t *testing.T) {
	deck, _ := newTestDeck("u1", "", 4)

	commitTopCard(deck, models.SwipeDirectionAccept)

	batch := makeOpportunities(6, "WORKSHOP", "MUSIC") // overlaps all 4 originals
	snapshot := deck.Dispatch(DeckEvent{Type: EventCardsLoaded, Cards: batch})

	// 3 still on the stack + 2 genuinely new; the swiped one stays out
	require.Equal(t, 5, snapshot.Remaining)
	for _, card := range snapshot.Visible {
		require.NotEqual(t, "WORKSHOP-MUSIC-0", card.OpportunityID)
	}
}

func TestSubscribersSeeEveryDispatch(t *testing.T) {
	deck, _ := newTestDeck("u1", "", 3)

	var snapshots []DeckSnapshot
	deck.Subscribe(func(snapshot DeckSnapshot) {
		snapshots = append(snapshots, snapshot)
	})

	commitTopCard(deck, models.SwipeDirectionAccept)
	require.Len(t, snapshots, 2) // keySwipe + animationDone
	require.Equal(t, StateCommitting, snapshots[0].TopState)
	require.Equal(t, StateIdle, snapshots[1].TopState)
}
