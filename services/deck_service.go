package services

import (
	"context"
	"errors"
	"log"
	"sync"

	"oppswipe_server/models"

	"github.com/google/uuid"
)

// ErrDeckNotFound is returned when a dispatch targets an unknown deck.
var ErrDeckNotFound = errors.New("deck not found")

// DeckService keys live swipe decks by deck id for the HTTP and socket
// surfaces. It wires each deck's prefetch to the feed service and its
// commits to the write queue.
type DeckService struct {
	Feed  *FeedService
	Queue *WriteQueueService

	// OnSnapshot, when set, is subscribed to every opened deck. The socket
	// layer uses it to push state to the deck's room.
	OnSnapshot func(DeckSnapshot)

	mu    sync.Mutex
	decks map[string]*SwipeDeck
}

func NewDeckService(feed *FeedService, queue *WriteQueueService) *DeckService {
	return &DeckService{
		Feed:  feed,
		Queue: queue,
		decks: make(map[string]*SwipeDeck),
	}
}

// OpenDeck creates a deck for an actor, loads the initial batch and returns
// the first snapshot. Anonymous callers without a guest id get one minted.
func (ds *DeckService) OpenDeck(ctx context.Context, actorID, guestID string, limit int) (DeckSnapshot, error) {
	if actorID == "" && guestID == "" {
		guestID = ds.Feed.MintGuestID()
	}
	if limit <= 0 {
		limit = PrefetchBatchSize
	}

	deckID := uuid.NewString()
	var deck *SwipeDeck
	deck = NewSwipeDeck(deckID, actorID, guestID, ds.Queue, func(prefetchLimit int, exclude []string) {
		response, err := ds.Feed.GetFeed(context.Background(), actorID, models.FeedRequest{
			Limit:      prefetchLimit,
			GuestID:    guestID,
			SeenOppIDs: exclude,
		})
		if err != nil {
			log.Printf("❌ Deck %s prefetch failed: %v", deckID, err)
			deck.Dispatch(DeckEvent{Type: EventCardsLoaded})
			return
		}
		deck.Dispatch(DeckEvent{Type: EventCardsLoaded, Cards: response.Opportunities})
	})

	if ds.OnSnapshot != nil {
		deck.Subscribe(ds.OnSnapshot)
	}

	response, err := ds.Feed.GetFeed(ctx, actorID, models.FeedRequest{Limit: limit, GuestID: guestID})
	if err != nil {
		return DeckSnapshot{}, err
	}

	snapshot := deck.Dispatch(DeckEvent{Type: EventCardsLoaded, Cards: response.Opportunities})

	ds.mu.Lock()
	ds.decks[deckID] = deck
	ds.mu.Unlock()

	log.Printf("✅ Opened deck %s with %d cards (actor=%q guest=%q)", deckID, snapshot.Remaining, actorID, guestID)
	return snapshot, nil
}

// Get returns a live deck by id.
func (ds *DeckService) Get(deckID string) (*SwipeDeck, bool) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	deck, ok := ds.decks[deckID]
	return deck, ok
}

// Dispatch routes one event to a deck.
func (ds *DeckService) Dispatch(deckID string, event DeckEvent) (DeckSnapshot, error) {
	deck, ok := ds.Get(deckID)
	if !ok {
		return DeckSnapshot{}, ErrDeckNotFound
	}
	return deck.Dispatch(event), nil
}

// Snapshot reads a deck's current state without dispatching.
func (ds *DeckService) Snapshot(deckID string) (DeckSnapshot, error) {
	deck, ok := ds.Get(deckID)
	if !ok {
		return DeckSnapshot{}, ErrDeckNotFound
	}
	return deck.Snapshot(), nil
}
