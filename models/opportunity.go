package models

import "time"

type Opportunity struct {
	OpportunityID string   `dynamodbav:"opportunityId" json:"opportunityId"` // ✅ Partition Key
	Title         string   `dynamodbav:"title" json:"title"`
	Description   string   `dynamodbav:"description,omitempty" json:"description,omitempty"`
	TypeTags      []string `dynamodbav:"typeTags" json:"typeTags"`
	ZoneTags      []string `dynamodbav:"zoneTags" json:"zoneTags"`
	BannerKey     string   `dynamodbav:"bannerKey,omitempty" json:"bannerKey,omitempty"`
	Deadline      string   `dynamodbav:"deadline,omitempty" json:"deadline,omitempty"` // RFC3339, empty = no deadline
	Status        string   `dynamodbav:"status" json:"status"`                         // active, inactive
	PostedAt      string   `dynamodbav:"postedAt" json:"postedAt"`                     // RFC3339
}

// ✅ Define table name for opportunities
const OpportunitiesTable = "Opportunities"

// Opportunity statuses
const (
	OpportunityStatusActive   = "active"
	OpportunityStatusInactive = "inactive"
)

// IsOpen reports whether the opportunity is active and its deadline has not
// passed. An empty deadline means the opportunity runs forever.
func (o Opportunity) IsOpen(now time.Time) bool {
	if o.Status != OpportunityStatusActive {
		return false
	}
	if o.Deadline == "" {
		return true
	}
	deadline, err := time.Parse(time.RFC3339, o.Deadline)
	if err != nil {
		return false
	}
	return deadline.After(now)
}
