package planner

import (
	"context"
	"time"

	"wayfarer/models"
)

// ModelClient is the single outbound call to the generative model. It is
// synchronous and fallible; retries, if any, belong to the caller.
type ModelClient interface {
	Generate(ctx context.Context, systemPrompt, userMessage string) (*ModelReply, error)
}

// ModelReply carries the raw model text plus usage accounting.
type ModelReply struct {
	Text             string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// UsageRecorder is the fire-and-forget metrics sink. Implementations must
// never block the turn and must swallow their own failures.
type UsageRecorder interface {
	Record(ctx context.Context, record models.UsageRecord)
}

// SnapshotStore keeps the last turn per session for operator inspection.
// It is write-mostly and never feeds back into turn processing.
type SnapshotStore interface {
	Save(ctx context.Context, snapshot models.TurnSnapshot) error
	Get(ctx context.Context, sessionID string) (*models.TurnSnapshot, error)
}

// PlannerService drives one conversation turn through the slot-filling
// pipeline: repair, prompt, model call, extraction, merge, state machine,
// response assembly.
type PlannerService interface {
	ProcessTurn(ctx context.Context, req models.AssistantTurnRequest) (*models.AssistantTurnResponse, error)
	SessionSnapshot(ctx context.Context, sessionID string) (*models.TurnSnapshot, error)
}

// Config is the explicit per-service configuration. It is passed in at
// construction; the hot path never reads ambient settings.
type Config struct {
	Enabled             bool
	Provider            string
	Model               string
	RequestTimeout      time.Duration
	PromptCostPer1K     float64
	CompletionCostPer1K float64
}

// DefaultPlannerService implements PlannerService.
type DefaultPlannerService struct {
	Cfg       Config
	Model     ModelClient
	Usage     UsageRecorder
	Snapshots SnapshotStore
}
