package services

import (
	"context"
	"log"

	"oppswipe_server/models"
)

// decisionWriter is the slice of InteractionService the queue needs.
type decisionWriter interface {
	UpsertDecision(ctx context.Context, actorID, opportunityID string, liked bool) error
}

// actionRecorder is the slice of MetricsService the queue needs.
type actionRecorder interface {
	RecordAction(ctx context.Context, opportunityID, actionType string, guest bool, actorRef string, compensation bool) error
}

// WriteQueueService decouples the deck's optimistic commit from the
// asynchronous persistence of the decision. A single worker drains a
// channel, so flushes run in commit order; the channel is also the seam
// where a batching window could be inserted without touching the deck.
//
// Known risk, carried over from the design: an undo whose compensation is
// enqueued while an external retry of the original write is still in
// flight can double- or under-apply a counter. Nothing here guards that.
type WriteQueueService struct {
	Interactions decisionWriter
	Metrics      actionRecorder

	writes chan models.PendingWrite
	done   chan struct{}
}

func NewWriteQueueService(interactions decisionWriter, metrics actionRecorder) *WriteQueueService {
	q := &WriteQueueService{
		Interactions: interactions,
		Metrics:      metrics,
		writes:       make(chan models.PendingWrite, 256),
		done:         make(chan struct{}),
	}
	go q.worker()
	return q
}

func (q *WriteQueueService) worker() {
	defer close(q.done)
	for write := range q.writes {
		q.flush(write)
	}
}

// Enqueue hands a committed decision to the flush worker. It never blocks
// gesture handling unless the buffer is full.
func (q *WriteQueueService) Enqueue(write models.PendingWrite) {
	q.writes <- write
}

// Compensate enqueues the inverse write for an undone commit. It travels
// through the same channel as the original, so in-process it always flushes
// after it.
func (q *WriteQueueService) Compensate(write models.PendingWrite) {
	write.Compensation = true
	q.writes <- write
}

// Close stops accepting writes and waits for the worker to drain.
func (q *WriteQueueService) Close() {
	close(q.writes)
	<-q.done
}

// flush persists one decision. Failures are logged and dropped: the card
// is already gone from the UI, which is not rolled back.
func (q *WriteQueueService) flush(write models.PendingWrite) {
	ctx := context.Background()

	if write.ActorID != "" {
		liked := write.Direction == models.SwipeDirectionAccept && !write.Compensation
		if err := q.Interactions.UpsertDecision(ctx, write.ActorID, write.OpportunityID, liked); err != nil {
			log.Printf("❌ Flush: decision write failed for %s/%s: %v", write.ActorID, write.OpportunityID, err)
		}
	}

	actionType := models.ActionPass
	if write.Direction == models.SwipeDirectionAccept {
		actionType = models.ActionLike
	}
	actorRef := write.ActorID
	if write.IsGuest() {
		actorRef = write.GuestID
	}
	if err := q.Metrics.RecordAction(ctx, write.OpportunityID, actionType, write.IsGuest(), actorRef, write.Compensation); err != nil {
		log.Printf("❌ Flush: metrics write failed for %s: %v", write.OpportunityID, err)
	}
}
