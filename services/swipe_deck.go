package services

import (
	"log"
	"sync"
	"time"

	"oppswipe_server/models"

	"github.com/google/uuid"
)

// CardState is the state of the frontmost card. Background cards are inert.
type CardState string

const (
	StateIdle       CardState = "idle"
	StateDragging   CardState = "dragging"
	StateCommitting CardState = "committing"
	StateEntering   CardState = "entering" // undo re-insertion only
)

// Deck tuning. The rendering layer animates these; the machine only cares
// about the decision boundaries.
const (
	CommitDistanceThreshold  = 120.0 // horizontal px to commit on release
	CommitVelocityThreshold  = 0.5   // px/ms to commit regardless of distance
	ProgrammaticDisplacement = 240.0 // keyboard/button swipes skip drag physics

	DeckLookahead         = 4 // visible card window
	PrefetchThreshold     = 3 // refill when fewer cards remain
	PrefetchBatchSize     = 8
	LoginPromptSwipeCount = 5 // guest prompt fires once at this cumulative count
)

// DeckEventType enumerates the inputs the deck reacts to.
type DeckEventType string

const (
	EventPointerDown   DeckEventType = "pointerDown"
	EventPointerMove   DeckEventType = "pointerMove"
	EventPointerUp     DeckEventType = "pointerUp"
	EventKeySwipe      DeckEventType = "keySwipe"
	EventAnimationDone DeckEventType = "animationDone"
	EventUndo          DeckEventType = "undo"
	EventCardsLoaded   DeckEventType = "cardsLoaded"
)

// DeckEvent is one input to Dispatch. Only the fields relevant to the type
// are read.
type DeckEvent struct {
	Type      DeckEventType        `json:"type"`
	DX        float64              `json:"dx,omitempty"`        // pointerMove
	Velocity  float64              `json:"velocity,omitempty"`  // pointerUp, px/ms
	Direction string               `json:"direction,omitempty"` // keySwipe
	Cards     []models.Opportunity `json:"cards,omitempty"`     // cardsLoaded
}

// DeckSnapshot is what subscribers and the HTTP surface see after every
// dispatch.
type DeckSnapshot struct {
	DeckID          string               `json:"deckId"`
	TopState        CardState            `json:"topState"`
	DragX           float64              `json:"dragX"`
	CommitDirection string               `json:"commitDirection,omitempty"`
	Visible         []models.Opportunity `json:"visible"`
	Remaining       int                  `json:"remaining"`
	SwipeCount      int                  `json:"swipeCount"`
	CanUndo         bool                 `json:"canUndo"`
	ShowLoginPrompt bool                 `json:"showLoginPrompt,omitempty"`
}

// commitSink receives committed decisions and their compensations.
type commitSink interface {
	Enqueue(write models.PendingWrite)
	Compensate(write models.PendingWrite)
}

// SwipeDeck is the interaction state machine for one card stack. All input
// goes through Dispatch, which serializes transitions the way the original
// single-threaded event loop interleaves them: never in parallel. Network
// work (prefetch, flush) happens off this path and feeds results back in as
// events, so a drag is never blocked on a round-trip.
type SwipeDeck struct {
	mu sync.Mutex

	deckID  string
	actorID string
	guestID string

	cards           []models.Opportunity
	topState        CardState
	dragX           float64
	commitDirection string

	history          []models.SwipeEvent
	swiped           map[string]struct{}
	removed          map[string]models.Opportunity
	swipeCount       int
	canUndo          bool
	loginPromptFired bool
	showLoginPrompt  bool

	prefetching bool
	prefetch    func(limit int, exclude []string)

	queue       commitSink
	subscribers []func(DeckSnapshot)
}

// NewSwipeDeck creates an empty deck. prefetch may be nil for decks whose
// client drives refills itself; when set it is invoked asynchronously and
// is expected to feed results back via an EventCardsLoaded dispatch.
func NewSwipeDeck(deckID, actorID, guestID string, queue commitSink, prefetch func(limit int, exclude []string)) *SwipeDeck {
	return &SwipeDeck{
		deckID:   deckID,
		actorID:  actorID,
		guestID:  guestID,
		topState: StateIdle,
		swiped:   make(map[string]struct{}),
		removed:  make(map[string]models.Opportunity),
		queue:    queue,
		prefetch: prefetch,
	}
}

// Subscribe registers a snapshot consumer, called after every dispatch.
func (d *SwipeDeck) Subscribe(fn func(DeckSnapshot)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.subscribers = append(d.subscribers, fn)
}

// Snapshot returns the current state without dispatching anything.
func (d *SwipeDeck) Snapshot() DeckSnapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.snapshotLocked()
}

// Dispatch applies one event and returns the resulting state. Unknown or
// out-of-state events are ignored, leaving the state unchanged.
func (d *SwipeDeck) Dispatch(event DeckEvent) DeckSnapshot {
	d.mu.Lock()
	d.showLoginPrompt = false

	switch event.Type {
	case EventPointerDown:
		if d.topState == StateIdle && len(d.cards) > 0 {
			d.topState = StateDragging
			d.dragX = 0
		}
	case EventPointerMove:
		if d.topState == StateDragging {
			d.dragX = event.DX
		}
	case EventPointerUp:
		if d.topState == StateDragging {
			d.release(event.Velocity)
		}
	case EventKeySwipe:
		if d.topState == StateIdle && len(d.cards) > 0 && validDirection(event.Direction) {
			d.commitDirection = event.Direction
			d.dragX = ProgrammaticDisplacement
			if event.Direction == models.SwipeDirectionReject {
				d.dragX = -ProgrammaticDisplacement
			}
			d.topState = StateCommitting
		}
	case EventAnimationDone:
		switch d.topState {
		case StateCommitting:
			d.commitTop()
		case StateEntering:
			d.topState = StateIdle
		}
	case EventUndo:
		d.undo()
	case EventCardsLoaded:
		d.mergeCards(event.Cards)
	}

	snapshot := d.snapshotLocked()
	subscribers := make([]func(DeckSnapshot), len(d.subscribers))
	copy(subscribers, d.subscribers)
	d.mu.Unlock()

	for _, fn := range subscribers {
		fn(snapshot)
	}
	return snapshot
}

// release decides between commit and spring-back when a drag ends.
func (d *SwipeDeck) release(velocity float64) {
	displacement := d.dragX
	if abs(displacement) <= CommitDistanceThreshold && abs(velocity) <= CommitVelocityThreshold {
		d.topState = StateIdle
		d.dragX = 0
		return
	}

	deciding := displacement
	if deciding == 0 {
		deciding = velocity
	}
	d.commitDirection = models.SwipeDirectionAccept
	if deciding < 0 {
		d.commitDirection = models.SwipeDirectionReject
	}
	d.topState = StateCommitting
}

// commitTop removes the exited card, records the swipe event and hands the
// decision to the write queue. The UI is not rolled back if the flush later
// fails.
func (d *SwipeDeck) commitTop() {
	if len(d.cards) == 0 {
		d.topState = StateIdle
		return
	}

	card := d.cards[0]
	d.cards = d.cards[1:]
	d.swiped[card.OpportunityID] = struct{}{}
	d.removed[card.OpportunityID] = card

	d.history = append(d.history, models.SwipeEvent{
		EventID:       uuid.NewString(),
		OpportunityID: card.OpportunityID,
		Direction:     d.commitDirection,
		CreatedAt:     time.Now().UTC(),
	})

	d.queue.Enqueue(models.PendingWrite{
		OpportunityID: card.OpportunityID,
		Direction:     d.commitDirection,
		ActorID:       d.actorID,
		GuestID:       d.guestID,
	})

	d.swipeCount++
	d.canUndo = true
	d.topState = StateIdle
	d.dragX = 0
	d.commitDirection = ""

	if d.actorID == "" && !d.loginPromptFired && d.swipeCount >= LoginPromptSwipeCount {
		d.loginPromptFired = true
		d.showLoginPrompt = true
	}

	d.maybePrefetch()
}

// undo reverses the single most recent non-undone commit. A second undo
// before a new swipe is a no-op.
func (d *SwipeDeck) undo() {
	if !d.canUndo || d.topState != StateIdle {
		return
	}

	var event *models.SwipeEvent
	for i := len(d.history) - 1; i >= 0; i-- {
		if !d.history[i].Undone {
			event = &d.history[i]
			break
		}
	}
	if event == nil {
		return
	}

	event.Undone = true
	d.canUndo = false
	delete(d.swiped, event.OpportunityID)

	restored, ok := d.removed[event.OpportunityID]
	if !ok {
		restored = models.Opportunity{OpportunityID: event.OpportunityID}
	}
	d.cards = append([]models.Opportunity{restored}, d.cards...)
	d.topState = StateEntering

	d.queue.Compensate(models.PendingWrite{
		OpportunityID: event.OpportunityID,
		Direction:     event.Direction,
		ActorID:       d.actorID,
		GuestID:       d.guestID,
	})
}

// mergeCards appends a prefetched batch, skipping anything already present
// or already swiped.
func (d *SwipeDeck) mergeCards(batch []models.Opportunity) {
	d.prefetching = false

	present := make(map[string]struct{}, len(d.cards))
	for _, card := range d.cards {
		present[card.OpportunityID] = struct{}{}
	}

	for _, card := range batch {
		if _, ok := present[card.OpportunityID]; ok {
			continue
		}
		if _, ok := d.swiped[card.OpportunityID]; ok {
			continue
		}
		d.cards = append(d.cards, card)
		present[card.OpportunityID] = struct{}{}
	}
}

// maybePrefetch fires the async refill when the stack runs low. Results
// come back as an EventCardsLoaded dispatch.
func (d *SwipeDeck) maybePrefetch() {
	if d.prefetch == nil || d.prefetching || len(d.cards) >= PrefetchThreshold {
		return
	}
	d.prefetching = true

	exclude := make([]string, 0, len(d.cards)+len(d.swiped))
	for _, card := range d.cards {
		exclude = append(exclude, card.OpportunityID)
	}
	for id := range d.swiped {
		exclude = append(exclude, id)
	}

	log.Printf("🔄 Deck %s below %d cards, prefetching", d.deckID, PrefetchThreshold)
	go d.prefetch(PrefetchBatchSize, exclude)
}

func (d *SwipeDeck) snapshotLocked() DeckSnapshot {
	visible := d.cards
	if len(visible) > DeckLookahead {
		visible = visible[:DeckLookahead]
	}
	visibleCopy := make([]models.Opportunity, len(visible))
	copy(visibleCopy, visible)

	return DeckSnapshot{
		DeckID:          d.deckID,
		TopState:        d.topState,
		DragX:           d.dragX,
		CommitDirection: d.commitDirection,
		Visible:         visibleCopy,
		Remaining:       len(d.cards),
		SwipeCount:      d.swipeCount,
		CanUndo:         d.canUndo,
		ShowLoginPrompt: d.showLoginPrompt,
	}
}

func validDirection(direction string) bool {
	return direction == models.SwipeDirectionAccept || direction == models.SwipeDirectionReject
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
