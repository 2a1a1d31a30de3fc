package models

import "time"

// AssistantTurnRequest is the payload for one conversation turn. The caller
// reconstructs the full session state on every call, so the engine itself
// holds nothing between turns.
type AssistantTurnRequest struct {
	SessionID         string         `json:"sessionId" binding:"required"`
	Slots             *TripSlots     `json:"slots" binding:"required"`
	ConversationState string         `json:"conversationState" binding:"required"`
	LatestMessage     string         `json:"latestMessage" binding:"required"`
	GeneratedTrip     *GeneratedTrip `json:"generatedTrip,omitempty"`
}

// AIMetrics reports the model usage incurred by a single turn.
type AIMetrics struct {
	Model            string  `json:"model"`
	Provider         string  `json:"provider"`
	TokensUsed       int     `json:"tokensUsed"`
	PromptTokens     int     `json:"promptTokens"`
	CompletionTokens int     `json:"completionTokens"`
	Cost             float64 `json:"cost"`
}

// AssistantTurnResponse is what the caller feeds back into the next turn.
// GeneratedTrip is present only when a trip exists, newly extracted or
// carried forward from the request.
type AssistantTurnResponse struct {
	Message       string         `json:"message"`
	UpdatedSlots  TripSlots      `json:"updatedSlots"`
	NewState      string         `json:"newState"`
	GeneratedTrip *GeneratedTrip `json:"generatedTrip,omitempty"`
	SlotProgress  SlotProgress   `json:"slotProgress"`
	AIMetrics     AIMetrics      `json:"aiMetrics"`
}

// UsageRecord is the analytics row persisted (asynchronously) per turn.
type UsageRecord struct {
	ID                string    `bson:"id" json:"id"`
	SessionID         string    `bson:"sessionId" json:"sessionId"`
	Model             string    `bson:"model" json:"model"`
	Provider          string    `bson:"provider" json:"provider"`
	PromptTokens      int       `bson:"promptTokens" json:"promptTokens"`
	CompletionTokens  int       `bson:"completionTokens" json:"completionTokens"`
	TotalTokens       int       `bson:"totalTokens" json:"totalTokens"`
	Cost              float64   `bson:"cost" json:"cost"`
	ConversationState string    `bson:"conversationState" json:"conversationState"`
	SlotsFilled       int       `bson:"slotsFilled" json:"slotsFilled"`
	SlotsTotal        int       `bson:"slotsTotal" json:"slotsTotal"`
	ResponseTimeMs    int64     `bson:"responseTimeMs" json:"responseTimeMs"`
	TripGenerated     bool      `bson:"tripGenerated" json:"tripGenerated"`
	CreatedAt         time.Time `bson:"createdAt" json:"createdAt"`
}

// TurnSnapshot is the last known turn for a session, kept in Redis for
// operator inspection. It is never read back into turn processing.
type TurnSnapshot struct {
	SessionID  string                `json:"sessionId"`
	Response   AssistantTurnResponse `json:"response"`
	RecordedAt time.Time             `json:"recordedAt"`
}
