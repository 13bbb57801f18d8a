package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"oppswipe_server/models"
	"oppswipe_server/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// interactionFlagWriter lets authenticated metrics events flip the matching
// boolean on the actor's interaction record.
type interactionFlagWriter interface {
	UpsertFlag(ctx context.Context, actorID, opportunityID, flag string, value bool) error
}

// MetricsService appends action-log rows and keeps the per-opportunity
// counters, segregated by guest vs authenticated actor.
type MetricsService struct {
	Dynamo       *DynamoService
	Interactions interactionFlagWriter
}

// counterFor maps an action type to its counter attribute and delta.
func counterFor(actionType string) (string, int, error) {
	switch actionType {
	case models.ActionView:
		return "viewCount", 1, nil
	case models.ActionLike:
		return "likeCount", 1, nil
	case models.ActionUnlike:
		return "likeCount", -1, nil
	case models.ActionSave:
		return "saveCount", 1, nil
	case models.ActionUnsave:
		return "saveCount", -1, nil
	case models.ActionClick:
		return "clickCount", 1, nil
	case models.ActionClickExpand:
		return "expandCount", 1, nil
	case models.ActionApply:
		return "applyCount", 1, nil
	case models.ActionShareLink, models.ActionShareFB, models.ActionShareX, models.ActionShareWA:
		return "shareCount", 1, nil
	case models.ActionPass:
		return "passCount", 1, nil
	default:
		return "", 0, ErrUnknownAction
	}
}

// guestVariant turns e.g. "likeCount" into "guestLikeCount".
func guestVariant(attribute string) string {
	return "guest" + string(attribute[0]-'a'+'A') + attribute[1:]
}

// RecordAction appends an immutable action-log row and atomically adjusts
// the opportunity's counter for the action type. Compensation inverts the
// counter delta (an undone accept decrements the like counter it bumped).
// The first update on an opportunity creates its counter row.
func (ms *MetricsService) RecordAction(ctx context.Context, opportunityID, actionType string, guest bool, actorRef string, compensation bool) error {
	attribute, delta, err := counterFor(actionType)
	if err != nil {
		return err
	}
	if guest {
		attribute = guestVariant(attribute)
	}
	if compensation {
		delta = -delta
	}

	actorKind := models.ActorKindAuthenticated
	if guest {
		actorKind = models.ActorKindGuest
	}
	logRow := models.ActionLog{
		LogID:         uuid.NewString(),
		OpportunityID: opportunityID,
		ActionType:    actionType,
		ActorKind:     actorKind,
		ActorRef:      actorRef,
		Compensation:  compensation,
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
	}
	if err := ms.Dynamo.PutItem(ctx, models.ActionLogsTable, logRow); err != nil {
		return fmt.Errorf("failed to append action log: %w", err)
	}

	updateExpression := "ADD #counter :delta"
	updated, err := ms.Dynamo.UpdateItem(ctx, models.OpportunityMetricsTable, updateExpression,
		map[string]types.AttributeValue{
			"opportunityId": &types.AttributeValueMemberS{Value: opportunityID},
		},
		map[string]types.AttributeValue{
			":delta": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", delta)},
		},
		map[string]string{"#counter": attribute},
	)
	if err != nil {
		return fmt.Errorf("failed to update %s for %s: %w", attribute, opportunityID, err)
	}

	log.Printf("✅ Metrics: %s %s%+d on %s (now %d)", actionType, attribute, delta, opportunityID, utils.ExtractInt(updated, attribute))
	return nil
}

// RecordEvent serves the standalone metrics endpoint. For authenticated
// actors it also flips the interaction flag the action implies.
func (ms *MetricsService) RecordEvent(ctx context.Context, opportunityID, actionType, actorID, guestID string) error {
	if actorID == "" && guestID == "" {
		return ErrMissingActor
	}

	guest := actorID == ""
	actorRef := actorID
	if guest {
		actorRef = guestID
	}

	if err := ms.RecordAction(ctx, opportunityID, actionType, guest, actorRef, false); err != nil {
		return err
	}

	if guest || ms.Interactions == nil {
		return nil
	}

	flag, value := "", false
	switch actionType {
	case models.ActionLike:
		flag, value = models.InteractionFlagLiked, true
	case models.ActionUnlike:
		flag, value = models.InteractionFlagLiked, false
	case models.ActionSave:
		flag, value = models.InteractionFlagSaved, true
	case models.ActionUnsave:
		flag, value = models.InteractionFlagSaved, false
	case models.ActionClick, models.ActionClickExpand:
		flag, value = models.InteractionFlagClicked, true
	case models.ActionApply:
		flag, value = models.InteractionFlagApplied, true
	default:
		return nil // views and shares leave the record alone
	}

	if err := ms.Interactions.UpsertFlag(ctx, actorID, opportunityID, flag, value); err != nil {
		log.Printf("❌ Failed to update %s flag for %s/%s: %v", flag, actorID, opportunityID, err)
		return err
	}
	return nil
}

// GetMetrics reads the counter row back for one opportunity.
func (ms *MetricsService) GetMetrics(ctx context.Context, opportunityID string) (*models.OpportunityMetrics, error) {
	item, err := ms.Dynamo.GetItem(ctx, models.OpportunityMetricsTable, map[string]types.AttributeValue{
		"opportunityId": &types.AttributeValueMemberS{Value: opportunityID},
	})
	if err != nil {
		return nil, err
	}

	var metrics models.OpportunityMetrics
	if err := attributevalue.UnmarshalMap(item, &metrics); err != nil {
		return nil, fmt.Errorf("failed to unmarshal metrics for %s: %w", opportunityID, err)
	}
	return &metrics, nil
}
