package planner

import (
	"testing"

	"wayfarer/models"

	"github.com/stretchr/testify/assert"
)

func TestClassifyIntent(t *testing.T) {
	tests := []struct {
		message string
		want    Intent
	}{
		{"yes let's do it", IntentProceed},
		{"Sounds GOOD to me", IntentProceed},
		{"ok", IntentProceed},
		{"sure thing", IntentProceed},
		{"please change the dates", IntentChange},
		{"Actually, make it a week", IntentChange},
		{"I'd like something different", IntentChange},
		{"tell me about the weather", IntentNeither},
		{"", IntentNeither},
		// Change wins when both keyword sets match.
		{"yes but change the hotel", IntentChange},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyIntent(tt.message))
		})
	}
}

func TestNextState(t *testing.T) {
	full := fullSlots()
	empty := models.TripSlots{}

	tests := []struct {
		name    string
		current models.ConversationState
		slots   models.TripSlots
		message string
		want    models.ConversationState
	}{
		{"gathering stays until complete", models.StateGathering, empty, "I want to visit Japan", models.StateGathering},
		{"gathering advances when complete", models.StateGathering, full, "anything", models.StateReady},
		{"gathering advances regardless of message", models.StateGathering, full, "change everything", models.StateReady},

		{"ready proceeds on confirmation", models.StateReady, full, "yes let's do it", models.StateGenerating},
		{"ready goes back on change request", models.StateReady, full, "I want to modify the budget", models.StateGathering},
		{"ready change beats proceed", models.StateReady, full, "yes, actually change the dates", models.StateGathering},
		{"ready holds otherwise", models.StateReady, full, "what's the weather like?", models.StateReady},

		{"generating always advances", models.StateGenerating, full, "", models.StateRefining},
		{"generating advances on any message", models.StateGenerating, empty, "change it all", models.StateRefining},

		{"refining goes back on change with unfilled slots", models.StateRefining, empty, "change the destination", models.StateGathering},
		{"refining holds on change with full slots", models.StateRefining, full, "change the hotel", models.StateRefining},
		{"refining holds without change intent", models.StateRefining, empty, "looks nice", models.StateRefining},

		{"unknown state passes through", models.ConversationState("bogus"), full, "yes", models.ConversationState("bogus")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextState(tt.current, tt.slots, tt.message))
		})
	}
}
