package services

import (
	"context"
	"log"
	"time"

	"oppswipe_server/models"
	"oppswipe_server/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// OpportunityService provides typed reads over the Opportunities table.
type OpportunityService struct {
	Dynamo *DynamoService
}

// GetOpportunity retrieves a single opportunity by ID
func (os *OpportunityService) GetOpportunity(ctx context.Context, opportunityID string) (*models.Opportunity, error) {
	key := map[string]types.AttributeValue{
		"opportunityId": &types.AttributeValueMemberS{Value: opportunityID},
	}
	item, err := os.Dynamo.GetItem(ctx, models.OpportunitiesTable, key)
	if err != nil {
		return nil, err
	}

	var opp models.Opportunity
	if err := attributevalue.UnmarshalMap(item, &opp); err != nil {
		log.Printf("❌ Error unmarshalling opportunity %s: %v", opportunityID, err)
		return nil, err
	}
	return &opp, nil
}

// ListOpenOpportunities scans for opportunities that are active and whose
// deadline has not passed. Status filtering happens in the scan callback so
// expired-but-active rows never leave the store layer.
func (os *OpportunityService) ListOpenOpportunities(ctx context.Context, now time.Time) ([]models.Opportunity, error) {
	var opportunities []models.Opportunity
	err := os.Dynamo.ScanWithFilter(ctx, models.OpportunitiesTable, func(item map[string]types.AttributeValue) bool {
		if utils.ExtractString(item, "status") != models.OpportunityStatusActive {
			return false
		}
		deadline := utils.ExtractString(item, "deadline")
		if deadline == "" {
			return true
		}
		t, err := time.Parse(time.RFC3339, deadline)
		if err != nil {
			return false
		}
		return t.After(now)
	}, &opportunities)
	if err != nil {
		log.Printf("❌ Error scanning open opportunities: %v", err)
		return nil, err
	}

	return opportunities, nil
}
