package planner

import (
	"context"
	"time"

	"wayfarer/models"
	"wayfarer/utils"

	"go.uber.org/zap"
)

// ProcessTurn runs one full conversation turn. The request carries the
// entire session state, so concurrent turns for the same session are the
// caller's problem, not ours; nothing here is shared or committed until
// the response is assembled.
func (s *DefaultPlannerService) ProcessTurn(ctx context.Context, req models.AssistantTurnRequest) (*models.AssistantTurnResponse, error) {
	logger := utils.GetLogger()

	if !s.Cfg.Enabled {
		return nil, NewConfigError("assistant is disabled")
	}
	if s.Model == nil {
		return nil, NewConfigError("no model client configured")
	}
	if err := validateTurnRequest(req); err != nil {
		return nil, err
	}

	started := time.Now()

	state := models.ConversationState(req.ConversationState)
	slots := *req.Slots
	priorTrip := req.GeneratedTrip

	// Corrupted-state repair: refining claims a trip that does not exist.
	// Silently re-enter generation instead of failing the request.
	if state == models.StateRefining && !priorTrip.HasItinerary() {
		logger.Warn("Repairing inconsistent conversation state",
			zap.String("sessionId", req.SessionID),
			zap.String("claimedState", req.ConversationState))
		state = models.StateGenerating
		priorTrip = nil
	}

	systemPrompt := BuildSystemPrompt(state, slots, priorTrip)

	callCtx, cancel := context.WithTimeout(ctx, s.Cfg.RequestTimeout)
	defer cancel()
	reply, err := s.Model.Generate(callCtx, systemPrompt, req.LatestMessage)
	if err != nil {
		logger.Error("Model call failed",
			zap.String("sessionId", req.SessionID),
			zap.String("provider", s.Cfg.Provider),
			zap.Error(err))
		return nil, NewUpstreamError(s.Cfg.Provider, err)
	}

	partial, slotStatus := ExtractSlots(reply.Text)
	if slotStatus == StatusMalformed {
		logger.Warn("Discarding unparseable SLOTS block",
			zap.String("sessionId", req.SessionID))
	}
	mergedSlots := Merge(slots, partial)

	// A trip is requested only while generating or refining. Whatever
	// happens, a previously valid trip is never dropped: if this turn
	// fails to re-emit one, the prior trip rides along unchanged.
	tripGenerated := false
	outTrip := priorTrip
	if state == models.StateGenerating || state == models.StateRefining {
		extracted, tripStatus := ExtractTrip(reply.Text)
		if tripStatus == StatusMalformed {
			logger.Warn("Discarding unparseable TRIP_JSON block",
				zap.String("sessionId", req.SessionID))
		}
		if extracted.HasItinerary() {
			outTrip = extracted
			tripGenerated = true
		}
	}
	if !outTrip.HasItinerary() {
		outTrip = nil
	}

	nextState := NextState(state, mergedSlots, req.LatestMessage)
	progress := Progress(mergedSlots)

	response := &models.AssistantTurnResponse{
		Message:       StripSentinels(reply.Text),
		UpdatedSlots:  mergedSlots,
		NewState:      string(nextState),
		GeneratedTrip: outTrip,
		SlotProgress:  progress,
		AIMetrics: models.AIMetrics{
			Model:            s.Cfg.Model,
			Provider:         s.Cfg.Provider,
			TokensUsed:       reply.TotalTokens,
			PromptTokens:     reply.PromptTokens,
			CompletionTokens: reply.CompletionTokens,
			Cost:             s.turnCost(reply),
		},
	}

	s.recordUsage(req.SessionID, response, reply, time.Since(started), tripGenerated)
	s.saveSnapshot(req.SessionID, response)

	return response, nil
}

// SessionSnapshot returns the last recorded turn for a session, if any.
func (s *DefaultPlannerService) SessionSnapshot(ctx context.Context, sessionID string) (*models.TurnSnapshot, error) {
	if s.Snapshots == nil {
		return nil, nil
	}
	return s.Snapshots.Get(ctx, sessionID)
}

func validateTurnRequest(req models.AssistantTurnRequest) error {
	if req.SessionID == "" {
		return NewValidationError("sessionId", "sessionId is required")
	}
	if req.Slots == nil {
		return NewValidationError("slots", "slots is required")
	}
	if req.ConversationState == "" {
		return NewValidationError("conversationState", "conversationState is required")
	}
	if req.LatestMessage == "" {
		return NewValidationError("latestMessage", "latestMessage is required")
	}
	return nil
}

func (s *DefaultPlannerService) turnCost(reply *ModelReply) float64 {
	prompt := float64(reply.PromptTokens) / 1000 * s.Cfg.PromptCostPer1K
	completion := float64(reply.CompletionTokens) / 1000 * s.Cfg.CompletionCostPer1K
	return prompt + completion
}

// recordUsage hands the turn's accounting to the metrics sink. The sink is
// fire-and-forget: it runs detached from the request context and its
// failure never touches the response path.
func (s *DefaultPlannerService) recordUsage(sessionID string, resp *models.AssistantTurnResponse, reply *ModelReply, elapsed time.Duration, tripGenerated bool) {
	if s.Usage == nil {
		return
	}
	record := models.UsageRecord{
		SessionID:         sessionID,
		Model:             s.Cfg.Model,
		Provider:          s.Cfg.Provider,
		PromptTokens:      reply.PromptTokens,
		CompletionTokens:  reply.CompletionTokens,
		TotalTokens:       reply.TotalTokens,
		Cost:              resp.AIMetrics.Cost,
		ConversationState: resp.NewState,
		SlotsFilled:       resp.SlotProgress.Filled,
		SlotsTotal:        resp.SlotProgress.Total,
		ResponseTimeMs:    elapsed.Milliseconds(),
		TripGenerated:     tripGenerated,
		CreatedAt:         time.Now(),
	}
	go s.Usage.Record(context.Background(), record)
}

func (s *DefaultPlannerService) saveSnapshot(sessionID string, resp *models.AssistantTurnResponse) {
	if s.Snapshots == nil {
		return
	}
	snapshot := models.TurnSnapshot{
		SessionID:  sessionID,
		Response:   *resp,
		RecordedAt: time.Now(),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := s.Snapshots.Save(ctx, snapshot); err != nil {
			utils.GetLogger().Warn("Failed to save turn snapshot",
				zap.String("sessionId", sessionID),
				zap.Error(err))
		}
	}()
}
