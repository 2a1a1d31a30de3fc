package planner

import (
	"encoding/json"
	"strings"

	"wayfarer/models"
)

// Sentinel markers the model wraps its structured payloads in. They are an
// internal protocol between the prompt and the extractors and must never
// reach the caller-facing message.
const (
	slotsOpen  = "<!--SLOTS"
	slotsClose = "SLOTS-->"
	tripOpen   = "<!--TRIP_JSON"
	tripClose  = "TRIP_JSON-->"
)

// ExtractStatus tags the outcome of a block extraction. Absent and
// Malformed both collapse to "nothing extracted" on the response path, but
// stay distinguishable for logging and tests.
type ExtractStatus int

const (
	StatusFound ExtractStatus = iota
	StatusAbsent
	StatusMalformed
)

func (s ExtractStatus) String() string {
	switch s {
	case StatusFound:
		return "found"
	case StatusAbsent:
		return "absent"
	case StatusMalformed:
		return "malformed"
	}
	return "unknown"
}

// extractBlock returns the payload between the first open/close marker
// pair. An opening marker without a closing one counts as malformed.
func extractBlock(text, open, close string) (string, ExtractStatus) {
	start := strings.Index(text, open)
	if start < 0 {
		return "", StatusAbsent
	}
	rest := text[start+len(open):]
	end := strings.Index(rest, close)
	if end < 0 {
		return "", StatusMalformed
	}
	return strings.TrimSpace(rest[:end]), StatusFound
}

// ExtractSlots pulls the SLOTS block out of assistant text and decodes the
// partial slot object it carries. A missing block or unparseable payload is
// not an error; the model is free to omit slots or to garble them, and the
// merge simply sees no update.
func ExtractSlots(text string) (*models.PartialTripSlots, ExtractStatus) {
	payload, status := extractBlock(text, slotsOpen, slotsClose)
	if status != StatusFound {
		return nil, status
	}
	var partial models.PartialTripSlots
	if err := json.Unmarshal([]byte(payload), &partial); err != nil {
		return nil, StatusMalformed
	}
	return &partial, StatusFound
}

// ExtractTrip pulls the TRIP_JSON block out of assistant text and decodes
// the itinerary document. The shape check requires a non-null metadata
// object and an itinerary array (possibly empty); anything else counts as
// malformed. Whether an empty itinerary is worth surfacing is the
// orchestrator's call, via GeneratedTrip.HasItinerary.
func ExtractTrip(text string) (*models.GeneratedTrip, ExtractStatus) {
	payload, status := extractBlock(text, tripOpen, tripClose)
	if status != StatusFound {
		return nil, status
	}
	var trip models.GeneratedTrip
	if err := json.Unmarshal([]byte(payload), &trip); err != nil {
		return nil, StatusMalformed
	}
	if trip.Metadata == nil || trip.Itinerary == nil {
		return nil, StatusMalformed
	}
	return &trip, StatusFound
}

// StripSentinels removes both sentinel blocks, and any orphaned markers,
// from assistant text. The result is the only text a caller ever sees.
func StripSentinels(text string) string {
	text = stripBlock(text, slotsOpen, slotsClose)
	text = stripBlock(text, tripOpen, tripClose)
	for _, marker := range []string{slotsOpen, slotsClose, tripOpen, tripClose} {
		text = strings.ReplaceAll(text, marker, "")
	}
	return strings.TrimSpace(text)
}

func stripBlock(text, open, close string) string {
	for {
		start := strings.Index(text, open)
		if start < 0 {
			return text
		}
		rest := text[start+len(open):]
		end := strings.Index(rest, close)
		if end < 0 {
			// Dangling open marker; drop everything from it onward so the
			// partial payload never leaks.
			return text[:start]
		}
		text = text[:start] + rest[end+len(close):]
	}
}
