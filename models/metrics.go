package models

// ✅ Action types accepted by the metrics endpoint and emitted by swipe commits
const (
	ActionView        = "VIEW"
	ActionLike        = "LIKE"
	ActionUnlike      = "UNLIKE"
	ActionSave        = "SAVE"
	ActionUnsave      = "UNSAVE"
	ActionClick       = "CLICK"
	ActionClickExpand = "CLICK_EXPAND"
	ActionApply       = "APPLY"
	ActionShareLink   = "SHARE_LINK"
	ActionShareFB     = "SHARE_FACEBOOK"
	ActionShareX      = "SHARE_TWITTER"
	ActionShareWA     = "SHARE_WHATSAPP"
	ActionPass        = "PASS"
)

// OpportunityMetrics is one counter row per opportunity. Guest-attributed
// actions land in the guest* variants, authenticated actions in the plain
// ones. The row is created by the first counter update.
type OpportunityMetrics struct {
	OpportunityID   string `dynamodbav:"opportunityId" json:"opportunityId"` // ✅ Partition Key
	ViewCount       int    `dynamodbav:"viewCount" json:"viewCount"`
	GuestViewCount  int    `dynamodbav:"guestViewCount" json:"guestViewCount"`
	LikeCount       int    `dynamodbav:"likeCount" json:"likeCount"`
	GuestLikeCount  int    `dynamodbav:"guestLikeCount" json:"guestLikeCount"`
	SaveCount       int    `dynamodbav:"saveCount" json:"saveCount"`
	GuestSaveCount  int    `dynamodbav:"guestSaveCount" json:"guestSaveCount"`
	ClickCount      int    `dynamodbav:"clickCount" json:"clickCount"`
	GuestClickCount int    `dynamodbav:"guestClickCount" json:"guestClickCount"`
	ExpandCount     int    `dynamodbav:"expandCount" json:"expandCount"`
	GuestExpandCnt  int    `dynamodbav:"guestExpandCount" json:"guestExpandCount"`
	ApplyCount      int    `dynamodbav:"applyCount" json:"applyCount"`
	GuestApplyCount int    `dynamodbav:"guestApplyCount" json:"guestApplyCount"`
	ShareCount      int    `dynamodbav:"shareCount" json:"shareCount"`
	GuestShareCount int    `dynamodbav:"guestShareCount" json:"guestShareCount"`
	PassCount       int    `dynamodbav:"passCount" json:"passCount"`
	GuestPassCount  int    `dynamodbav:"guestPassCount" json:"guestPassCount"`
}

// ActionLog is the immutable row appended for every recorded action,
// compensations included.
type ActionLog struct {
	LogID         string `dynamodbav:"logId" json:"logId"` // ✅ Partition Key
	OpportunityID string `dynamodbav:"opportunityId" json:"opportunityId"`
	ActionType    string `dynamodbav:"actionType" json:"actionType"`
	ActorKind     string `dynamodbav:"actorKind" json:"actorKind"` // guest, authenticated
	ActorRef      string `dynamodbav:"actorRef" json:"actorRef"`
	Compensation  bool   `dynamodbav:"compensation" json:"compensation"`
	CreatedAt     string `dynamodbav:"createdAt" json:"createdAt"`
}

// ✅ Define table names for metrics and the action log
const (
	OpportunityMetricsTable = "OpportunityMetrics"
	ActionLogsTable         = "ActionLogs"
)

// Actor kinds
const (
	ActorKindGuest         = "guest"
	ActorKindAuthenticated = "authenticated"
)
