package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"oppswipe_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type InteractionService struct {
	Dynamo *DynamoService
}

// UpsertDecision stores an actor's accept/reject decision on an
// opportunity. The row is keyed (actorId, opportunityId), so a later
// decision overwrites the liked flag instead of creating a second record.
func (s *InteractionService) UpsertDecision(ctx context.Context, actorID, opportunityID string, liked bool) error {
	return s.upsertFlag(ctx, actorID, opportunityID, models.InteractionFlagLiked, liked)
}

// UpsertFlag flips one of the saved/clicked/applied booleans on the pair's
// record, creating the record when it does not exist yet.
func (s *InteractionService) UpsertFlag(ctx context.Context, actorID, opportunityID, flag string, value bool) error {
	switch flag {
	case models.InteractionFlagLiked, models.InteractionFlagSaved,
		models.InteractionFlagClicked, models.InteractionFlagApplied:
	default:
		return fmt.Errorf("unknown interaction flag '%s'", flag)
	}
	return s.upsertFlag(ctx, actorID, opportunityID, flag, value)
}

func (s *InteractionService) upsertFlag(ctx context.Context, actorID, opportunityID, flag string, value bool) error {
	now := time.Now().UTC().Format(time.RFC3339)

	updateExpression := "SET #flag = :value, updatedAt = :now, createdAt = if_not_exists(createdAt, :now)"
	_, err := s.Dynamo.UpdateItem(ctx, models.UserInteractionsTable, updateExpression,
		map[string]types.AttributeValue{
			"actorId":       &types.AttributeValueMemberS{Value: actorID},
			"opportunityId": &types.AttributeValueMemberS{Value: opportunityID},
		},
		map[string]types.AttributeValue{
			":value": &types.AttributeValueMemberBOOL{Value: value},
			":now":   &types.AttributeValueMemberS{Value: now},
		},
		map[string]string{"#flag": flag},
	)
	if err != nil {
		return fmt.Errorf("failed to upsert %s for %s/%s: %w", flag, actorID, opportunityID, err)
	}

	log.Printf("✅ Interaction saved: %s -> %s (%s=%v)", actorID, opportunityID, flag, value)
	return nil
}

// ListByActor fetches every interaction record an actor has, which doubles
// as the actor's seen set.
func (s *InteractionService) ListByActor(ctx context.Context, actorID string) ([]models.UserInteraction, error) {
	keyCondition := "actorId = :actor"
	expressionValues := map[string]types.AttributeValue{
		":actor": &types.AttributeValueMemberS{Value: actorID},
	}

	items, err := s.Dynamo.QueryItems(ctx, models.UserInteractionsTable, keyCondition, expressionValues, nil, 1000)
	if err != nil {
		log.Printf("❌ Error fetching interactions for %s: %v", actorID, err)
		return nil, err
	}

	var interactions []models.UserInteraction
	if err := attributevalue.UnmarshalListOfMaps(items, &interactions); err != nil {
		log.Printf("❌ Error unmarshalling interactions: %v", err)
		return nil, err
	}

	return interactions, nil
}
