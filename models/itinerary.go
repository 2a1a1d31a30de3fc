package models

// GeneratedTrip is the structured itinerary document the model emits inside
// a TRIP_JSON block once generation starts.
type GeneratedTrip struct {
	Metadata        *TripMetadata       `json:"metadata"`
	Itinerary       []ItineraryDay      `json:"itinerary"`
	Recommendations TripRecommendations `json:"recommendations,omitempty"`
}

// HasItinerary reports whether the trip carries at least one planned day.
// A trip without days is treated as "no trip yet" everywhere, regardless of
// whatever else is populated.
func (t *GeneratedTrip) HasItinerary() bool {
	return t != nil && len(t.Itinerary) > 0
}

type TripMetadata struct {
	Destination       string        `json:"destination"`
	Country           string        `json:"country,omitempty"`
	Dates             TripDates     `json:"dates"`
	Budget            TripBudget    `json:"budget"`
	Travelers         TripTravelers `json:"travelers"`
	TravelStyle       string        `json:"travelStyle,omitempty"`
	Interests         []string      `json:"interests,omitempty"`
	AccommodationType string        `json:"accommodationType,omitempty"`
}

type ItineraryDay struct {
	DayNumber int             `json:"dayNumber"`
	Items     []ItineraryItem `json:"items"`
}

// Item categories the model is instructed to use.
const (
	ItemAccommodation = "accommodation"
	ItemFood          = "food"
	ItemActivity      = "activity"
	ItemTransport     = "transport"
	ItemNightlife     = "nightlife"
)

type ItineraryItem struct {
	Title         string       `json:"title"`
	Category      string       `json:"category"`
	StartTime     string       `json:"startTime,omitempty"`
	EndTime       string       `json:"endTime,omitempty"`
	EstimatedCost float64      `json:"estimatedCost,omitempty"`
	Location      ItemLocation `json:"location,omitempty"`
	Description   string       `json:"description,omitempty"`
	Tips          string       `json:"tips,omitempty"`
}

type ItemLocation struct {
	Name    string   `json:"name,omitempty"`
	Address string   `json:"address,omitempty"`
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
}

type TripRecommendations struct {
	DoAndDont         []string `json:"doAndDont,omitempty"`
	PackingList       []string `json:"packingList,omitempty"`
	LocalPhrases      []string `json:"localPhrases,omitempty"`
	EmergencyContacts []string `json:"emergencyContacts,omitempty"`
}
