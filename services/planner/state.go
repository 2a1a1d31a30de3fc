package planner

import (
	"strings"

	"wayfarer/models"
)

// Intent is the coarse classification of a user message at a decision
// point: asking to change something, asking to proceed, or neither.
type Intent int

const (
	IntentNeither Intent = iota
	IntentChange
	IntentProceed
)

func (i Intent) String() string {
	switch i {
	case IntentChange:
		return "change"
	case IntentProceed:
		return "proceed"
	}
	return "neither"
}

// Keyword sets for intent matching. Matching is case-insensitive substring
// matching; change is always checked before proceed.
var (
	changeKeywords = []string{
		"change", "modify", "different", "instead", "actually",
	}
	proceedKeywords = []string{
		"yes", "go ahead", "create", "generate", "let's do it",
		"sounds good", "perfect", "ready", "let's go", "do it",
		"sure", "ok", "okay",
	}
)

// ClassifyIntent is the single source of truth for keyword intent
// detection. Deliberately broad terms like "ok" stay in; the state machine
// only consults intent at points where they are plausible answers.
func ClassifyIntent(message string) Intent {
	lower := strings.ToLower(message)
	for _, keyword := range changeKeywords {
		if strings.Contains(lower, keyword) {
			return IntentChange
		}
	}
	for _, keyword := range proceedKeywords {
		if strings.Contains(lower, keyword) {
			return IntentProceed
		}
	}
	return IntentNeither
}

// NextState advances the conversation lifecycle:
//
//	gathering -> ready       once every slot is filled
//	ready     -> gathering   on a change request
//	ready     -> generating  on a proceed request
//	generating-> refining    always
//	refining  -> gathering   on a change request with unfilled slots
//
// It is pure: the next state derives only from the three inputs, never
// from anything ambient.
func NextState(current models.ConversationState, slots models.TripSlots, message string) models.ConversationState {
	switch current {
	case models.StateGathering:
		if Progress(slots).Complete() {
			return models.StateReady
		}
		return models.StateGathering

	case models.StateReady:
		switch ClassifyIntent(message) {
		case IntentChange:
			return models.StateGathering
		case IntentProceed:
			return models.StateGenerating
		}
		return models.StateReady

	case models.StateGenerating:
		return models.StateRefining

	case models.StateRefining:
		if ClassifyIntent(message) == IntentChange && !Progress(slots).Complete() {
			return models.StateGathering
		}
		return models.StateRefining
	}

	// Unrecognized states pass through untouched; the only repair the
	// engine performs is the refining-without-a-trip rule upstream.
	return current
}
