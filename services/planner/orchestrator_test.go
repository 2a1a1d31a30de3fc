package planner

import (
	"context"
	"errors"
	"testing"
	"time"

	"wayfarer/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockModel struct {
	reply *ModelReply
	err   error

	gotSystemPrompt string
	gotUserMessage  string
}

func (m *mockModel) Generate(_ context.Context, systemPrompt, userMessage string) (*ModelReply, error) {
	m.gotSystemPrompt = systemPrompt
	m.gotUserMessage = userMessage
	if m.err != nil {
		return nil, m.err
	}
	return m.reply, nil
}

type mockRecorder struct {
	records chan models.UsageRecord
}

func (m *mockRecorder) Record(_ context.Context, record models.UsageRecord) {
	m.records <- record
}

type mockSnapshots struct {
	saved chan models.TurnSnapshot
}

func (m *mockSnapshots) Save(_ context.Context, snapshot models.TurnSnapshot) error {
	m.saved <- snapshot
	return nil
}

func (m *mockSnapshots) Get(_ context.Context, _ string) (*models.TurnSnapshot, error) {
	return nil, nil
}

func testConfig() Config {
	return Config{
		Enabled:             true,
		Provider:            "gemini",
		Model:               "models/gemini-1.5-pro",
		RequestTimeout:      5 * time.Second,
		PromptCostPer1K:     0.001,
		CompletionCostPer1K: 0.002,
	}
}

func newTestService(model ModelClient) *DefaultPlannerService {
	return &DefaultPlannerService{
		Cfg:   testConfig(),
		Model: model,
	}
}

func turnRequest(state models.ConversationState, slots models.TripSlots, message string) models.AssistantTurnRequest {
	return models.AssistantTurnRequest{
		SessionID:         "session-1",
		Slots:             &slots,
		ConversationState: string(state),
		LatestMessage:     message,
	}
}

func validTrip() *models.GeneratedTrip {
	return &models.GeneratedTrip{
		Metadata: &models.TripMetadata{Destination: "Paris"},
		Itinerary: []models.ItineraryDay{
			{DayNumber: 1, Items: []models.ItineraryItem{{Title: "Check in", Category: models.ItemAccommodation}}},
		},
	}
}

func TestProcessTurnDisabled(t *testing.T) {
	svc := newTestService(&mockModel{})
	svc.Cfg.Enabled = false

	_, err := svc.ProcessTurn(context.Background(), turnRequest(models.StateGathering, models.TripSlots{}, "hi"))

	var configErr *ConfigError
	require.ErrorAs(t, err, &configErr)
}

func TestProcessTurnWithoutModelClient(t *testing.T) {
	svc := &DefaultPlannerService{Cfg: testConfig()}

	_, err := svc.ProcessTurn(context.Background(), turnRequest(models.StateGathering, models.TripSlots{}, "hi"))

	var configErr *ConfigError
	require.ErrorAs(t, err, &configErr)
}

func TestProcessTurnValidation(t *testing.T) {
	slots := models.TripSlots{}
	tests := []struct {
		name      string
		req       models.AssistantTurnRequest
		wantField string
	}{
		{
			name:      "missing session id",
			req:       models.AssistantTurnRequest{Slots: &slots, ConversationState: "gathering", LatestMessage: "hi"},
			wantField: "sessionId",
		},
		{
			name:      "missing slots",
			req:       models.AssistantTurnRequest{SessionID: "s", ConversationState: "gathering", LatestMessage: "hi"},
			wantField: "slots",
		},
		{
			name:      "missing state",
			req:       models.AssistantTurnRequest{SessionID: "s", Slots: &slots, LatestMessage: "hi"},
			wantField: "conversationState",
		},
		{
			name:      "missing message",
			req:       models.AssistantTurnRequest{SessionID: "s", Slots: &slots, ConversationState: "gathering"},
			wantField: "latestMessage",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(&mockModel{reply: &ModelReply{Text: "hi"}})
			_, err := svc.ProcessTurn(context.Background(), tt.req)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.wantField, validationErr.Field)
		})
	}
}

func TestProcessTurnUpstreamFailure(t *testing.T) {
	svc := newTestService(&mockModel{err: errors.New("quota exceeded")})

	_, err := svc.ProcessTurn(context.Background(), turnRequest(models.StateGathering, models.TripSlots{}, "hi"))

	var upstreamErr *UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, "gemini", upstreamErr.Provider)
}

func TestProcessTurnMergesExtractedSlots(t *testing.T) {
	model := &mockModel{reply: &ModelReply{
		Text:             `Tokyo it is! <!--SLOTS{"destination":"Tokyo"}SLOTS-->`,
		PromptTokens:     100,
		CompletionTokens: 50,
		TotalTokens:      150,
	}}
	svc := newTestService(model)

	resp, err := svc.ProcessTurn(context.Background(), turnRequest(models.StateGathering, fullSlots(), "make it Tokyo instead of Paris"))
	require.NoError(t, err)

	assert.Equal(t, "Tokyo it is!", resp.Message)
	assert.Equal(t, "Tokyo", resp.UpdatedSlots.Destination)
	assert.Equal(t, "cultural", resp.UpdatedSlots.TravelStyle)
	assert.Equal(t, 7, resp.SlotProgress.Filled)
	// All slots filled, so gathering advances no matter the message.
	assert.Equal(t, string(models.StateReady), resp.NewState)

	assert.Equal(t, 150, resp.AIMetrics.TokensUsed)
	assert.Equal(t, 100, resp.AIMetrics.PromptTokens)
	assert.Equal(t, 50, resp.AIMetrics.CompletionTokens)
	assert.InDelta(t, 0.0002, resp.AIMetrics.Cost, 1e-9)
	assert.Equal(t, "gemini", resp.AIMetrics.Provider)
}

func TestProcessTurnMalformedSlotsBlockIsIgnored(t *testing.T) {
	model := &mockModel{reply: &ModelReply{Text: `Noted! <!--SLOTS{oops}SLOTS-->`}}
	svc := newTestService(model)

	base := fullSlots()
	resp, err := svc.ProcessTurn(context.Background(), turnRequest(models.StateGathering, base, "hello"))
	require.NoError(t, err)

	assert.Equal(t, base, resp.UpdatedSlots)
	assert.Equal(t, "Noted!", resp.Message)
}

func TestProcessTurnReadyProceeds(t *testing.T) {
	model := &mockModel{reply: &ModelReply{Text: "Great, generating now!"}}
	svc := newTestService(model)

	resp, err := svc.ProcessTurn(context.Background(), turnRequest(models.StateReady, fullSlots(), "yes let's do it"))
	require.NoError(t, err)

	assert.Equal(t, string(models.StateGenerating), resp.NewState)
	assert.Nil(t, resp.GeneratedTrip)
}

func TestProcessTurnGeneratingExtractsTrip(t *testing.T) {
	model := &mockModel{reply: &ModelReply{
		Text: `Your itinerary is ready! <!--TRIP_JSON{"metadata":{"destination":"Paris"},"itinerary":[{"dayNumber":1,"items":[{"title":"Louvre","category":"activity"}]}]}TRIP_JSON-->`,
	}}
	svc := newTestService(model)

	resp, err := svc.ProcessTurn(context.Background(), turnRequest(models.StateGenerating, fullSlots(), "can't wait"))
	require.NoError(t, err)

	require.NotNil(t, resp.GeneratedTrip)
	assert.Equal(t, "Paris", resp.GeneratedTrip.Metadata.Destination)
	assert.Equal(t, string(models.StateRefining), resp.NewState)
	assert.Equal(t, "Your itinerary is ready!", resp.Message)
}

func TestProcessTurnPreservesPriorTrip(t *testing.T) {
	model := &mockModel{reply: &ModelReply{Text: "Sure, what would you like to tweak?"}}
	svc := newTestService(model)

	prior := validTrip()
	req := turnRequest(models.StateRefining, fullSlots(), "what about day two?")
	req.GeneratedTrip = prior

	resp, err := svc.ProcessTurn(context.Background(), req)
	require.NoError(t, err)

	// No TRIP_JSON this turn: the previously generated trip rides along.
	assert.Equal(t, prior, resp.GeneratedTrip)
	assert.Equal(t, string(models.StateRefining), resp.NewState)
}

func TestProcessTurnEmptyItineraryDoesNotReplacePriorTrip(t *testing.T) {
	model := &mockModel{reply: &ModelReply{
		Text: `Hmm. <!--TRIP_JSON{"metadata":{},"itinerary":[]}TRIP_JSON-->`,
	}}
	svc := newTestService(model)

	prior := validTrip()
	req := turnRequest(models.StateRefining, fullSlots(), "looks nice")
	req.GeneratedTrip = prior

	resp, err := svc.ProcessTurn(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, prior, resp.GeneratedTrip)
}

func TestProcessTurnRepairsRefiningWithoutTrip(t *testing.T) {
	model := &mockModel{reply: &ModelReply{Text: "Rebuilding your itinerary."}}
	svc := newTestService(model)

	req := turnRequest(models.StateRefining, fullSlots(), "hello again")
	req.GeneratedTrip = nil

	resp, err := svc.ProcessTurn(context.Background(), req)
	require.NoError(t, err)

	// The turn ran as a generating turn: prompt, extraction, transition.
	assert.Equal(t, BuildSystemPrompt(models.StateGenerating, fullSlots(), nil), model.gotSystemPrompt)
	assert.Equal(t, string(models.StateRefining), resp.NewState)
	assert.Nil(t, resp.GeneratedTrip)
}

func TestProcessTurnRepairsRefiningWithEmptyItinerary(t *testing.T) {
	model := &mockModel{reply: &ModelReply{Text: "Rebuilding."}}
	svc := newTestService(model)

	req := turnRequest(models.StateRefining, fullSlots(), "hello")
	req.GeneratedTrip = &models.GeneratedTrip{Metadata: &models.TripMetadata{}, Itinerary: []models.ItineraryDay{}}

	resp, err := svc.ProcessTurn(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, BuildSystemPrompt(models.StateGenerating, fullSlots(), nil), model.gotSystemPrompt)
	assert.Nil(t, resp.GeneratedTrip)
}

func TestProcessTurnStripsAllSentinels(t *testing.T) {
	model := &mockModel{reply: &ModelReply{
		Text: `Done! <!--SLOTS{"destination":"Paris"}SLOTS--> Here it is. <!--TRIP_JSON{"metadata":{"destination":"Paris"},"itinerary":[{"dayNumber":1,"items":[{"title":"Arrive","category":"transport"}]}]}TRIP_JSON-->`,
	}}
	svc := newTestService(model)

	resp, err := svc.ProcessTurn(context.Background(), turnRequest(models.StateGenerating, fullSlots(), "go"))
	require.NoError(t, err)

	assert.NotContains(t, resp.Message, "SLOTS")
	assert.NotContains(t, resp.Message, "TRIP_JSON")
	assert.NotContains(t, resp.Message, "<!--")
}

func TestProcessTurnRecordsUsageAndSnapshot(t *testing.T) {
	model := &mockModel{reply: &ModelReply{
		Text:             `All set. <!--TRIP_JSON{"metadata":{"destination":"Paris"},"itinerary":[{"dayNumber":1,"items":[{"title":"Arrive","category":"transport"}]}]}TRIP_JSON-->`,
		PromptTokens:     200,
		CompletionTokens: 100,
		TotalTokens:      300,
	}}
	recorder := &mockRecorder{records: make(chan models.UsageRecord, 1)}
	snapshots := &mockSnapshots{saved: make(chan models.TurnSnapshot, 1)}
	svc := newTestService(model)
	svc.Usage = recorder
	svc.Snapshots = snapshots

	resp, err := svc.ProcessTurn(context.Background(), turnRequest(models.StateGenerating, fullSlots(), "go"))
	require.NoError(t, err)

	select {
	case record := <-recorder.records:
		assert.Equal(t, "session-1", record.SessionID)
		assert.Equal(t, "gemini", record.Provider)
		assert.Equal(t, 300, record.TotalTokens)
		assert.Equal(t, string(models.StateRefining), record.ConversationState)
		assert.Equal(t, 7, record.SlotsFilled)
		assert.Equal(t, 7, record.SlotsTotal)
		assert.True(t, record.TripGenerated)
		assert.GreaterOrEqual(t, record.ResponseTimeMs, int64(0))
	case <-time.After(time.Second):
		t.Fatal("usage record never arrived")
	}

	select {
	case snapshot := <-snapshots.saved:
		assert.Equal(t, "session-1", snapshot.SessionID)
		assert.Equal(t, *resp, snapshot.Response)
	case <-time.After(time.Second):
		t.Fatal("snapshot never arrived")
	}
}
