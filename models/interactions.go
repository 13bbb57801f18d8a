package models

// UserInteraction is the single decision row per (actor, opportunity) pair.
// Later writes overwrite fields, never duplicate the row.
type UserInteraction struct {
	ActorID       string `dynamodbav:"actorId" json:"actorId"`             // ✅ Partition Key
	OpportunityID string `dynamodbav:"opportunityId" json:"opportunityId"` // ✅ Sort Key
	Liked         bool   `dynamodbav:"liked" json:"liked"`
	Saved         bool   `dynamodbav:"saved" json:"saved"`
	Clicked       bool   `dynamodbav:"clicked" json:"clicked"`
	Applied       bool   `dynamodbav:"applied" json:"applied"`
	CreatedAt     string `dynamodbav:"createdAt" json:"createdAt"`
	UpdatedAt     string `dynamodbav:"updatedAt" json:"updatedAt"`
}

// ✅ Define table name for interactions
const UserInteractionsTable = "UserInteractions"

// Interaction flag attribute names, shared by upserts and metrics events
const (
	InteractionFlagLiked   = "liked"
	InteractionFlagSaved   = "saved"
	InteractionFlagClicked = "clicked"
	InteractionFlagApplied = "applied"
)

// Positive reports whether the record counts toward the affinity profile.
func (i UserInteraction) Positive() bool {
	return i.Liked || i.Saved || i.Applied
}
