package planner

import (
	"encoding/json"
	"fmt"
	"strings"

	"wayfarer/models"
)

const slotProtocolInstructions = `After your reply, append a machine-readable block with every trip requirement you can infer from the conversation so far, in this exact form:
<!--SLOTS{"destination":"...","dates":{"startDate":"YYYY-MM-DD","duration":5},"budget":{"amount":2000,"currency":"USD","perPerson":false},"travelers":{"adults":2,"children":0},"travelStyle":"...","interests":["..."],"accommodationType":"..."}SLOTS-->
Include only the fields you are confident about. Always re-emit the full interests list, not just additions. Emit the block at most once and never mention it in your reply.`

const tripProtocolInstructions = `Also append the complete itinerary as a machine-readable block, exactly once, in this form:
<!--TRIP_JSON{"metadata":{...},"itinerary":[{"dayNumber":1,"items":[{"title":"...","category":"accommodation|food|activity|transport|nightlife","startTime":"09:00","endTime":"11:00","estimatedCost":40,"location":{"name":"...","address":"...","lat":0,"lng":0},"description":"...","tips":"..."}]}],"recommendations":{"doAndDont":["..."],"packingList":["..."],"localPhrases":["..."],"emergencyContacts":["..."]}}TRIP_JSON-->
The metadata object mirrors the trip requirements. Every day needs at least one item. Never mention this block in your reply.`

// BuildSystemPrompt produces the instruction text for the generative model
// given the effective state of the turn. The prompt carries the current
// slot snapshot so the model can re-emit and extend it, and, while
// refining, the previously generated trip.
func BuildSystemPrompt(state models.ConversationState, slots models.TripSlots, trip *models.GeneratedTrip) string {
	var sb strings.Builder

	sb.WriteString("You are Wayfarer, a travel planning assistant that designs personalized trip itineraries through conversation. Be warm, concise, and concrete.\n\n")

	slotsJSON, _ := json.Marshal(slots)
	progress := Progress(slots)
	sb.WriteString(fmt.Sprintf("Requirements gathered so far (%d of %d): %s\n", progress.Filled, progress.Total, slotsJSON))
	if len(progress.Missing) > 0 {
		sb.WriteString(fmt.Sprintf("Still missing: %s\n", strings.Join(progress.Missing, ", ")))
	}
	sb.WriteString("\n")

	switch state {
	case models.StateGathering:
		sb.WriteString("The trip is not fully specified yet. Answer the user's message, then ask naturally about one or two of the missing requirements. Do not invent values the user has not given.\n\n")
		sb.WriteString(slotProtocolInstructions)

	case models.StateReady:
		sb.WriteString("Every requirement is gathered. Summarize the trip plan in a few lines and ask the user to confirm before you generate the full itinerary, or to tell you what to change.\n\n")
		sb.WriteString(slotProtocolInstructions)

	case models.StateGenerating:
		sb.WriteString("Generate the complete day-by-day itinerary for the requirements above. In your reply, present a readable summary of the plan.\n\n")
		sb.WriteString(slotProtocolInstructions)
		sb.WriteString("\n\n")
		sb.WriteString(tripProtocolInstructions)

	case models.StateRefining:
		sb.WriteString("The user already has a generated itinerary and wants to refine it. Apply the requested adjustments and keep everything else intact.\n")
		if trip.HasItinerary() {
			tripJSON, _ := json.Marshal(trip)
			sb.WriteString(fmt.Sprintf("Current itinerary: %s\n", tripJSON))
		}
		sb.WriteString("\n")
		sb.WriteString(slotProtocolInstructions)
		sb.WriteString("\n\n")
		sb.WriteString(tripProtocolInstructions)
	}

	return sb.String()
}
