package models

// ConversationState tracks where a planning session is in its lifecycle.
type ConversationState string

const (
	StateGathering  ConversationState = "gathering"
	StateReady      ConversationState = "ready"
	StateGenerating ConversationState = "generating"
	StateRefining   ConversationState = "refining"
)

// SlotCategoryCount is the fixed number of requirement categories the
// assistant gathers before a trip can be generated.
const SlotCategoryCount = 7

// Slot category names, in declaration order. Progress reporting and the
// "missing" list follow this order.
const (
	SlotDestination       = "destination"
	SlotDates             = "dates"
	SlotBudget            = "budget"
	SlotTravelers         = "travelers"
	SlotTravelStyle       = "travelStyle"
	SlotInterests         = "interests"
	SlotAccommodationType = "accommodationType"
)

// TripSlots is the accumulated trip requirement for one session. The caller
// supplies it on every turn; the engine never stores it.
type TripSlots struct {
	Destination       string        `json:"destination"`
	Dates             TripDates     `json:"dates"`
	Budget            TripBudget    `json:"budget"`
	Travelers         TripTravelers `json:"travelers"`
	TravelStyle       string        `json:"travelStyle"`
	Interests         []string      `json:"interests"`
	AccommodationType string        `json:"accommodationType"`
}

type TripDates struct {
	StartDate string `json:"startDate,omitempty"`
	Duration  int    `json:"duration,omitempty"` // whole days
}

type TripBudget struct {
	Amount    float64 `json:"amount,omitempty"`
	Currency  string  `json:"currency,omitempty"`
	PerPerson bool    `json:"perPerson,omitempty"`
}

type TripTravelers struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
}

// PartialTripSlots is what the model emits inside a SLOTS block: any subset
// of fields it inferred this turn. Pointers distinguish "not mentioned"
// from an explicit zero value.
type PartialTripSlots struct {
	Destination       *string           `json:"destination,omitempty"`
	Dates             *PartialDates     `json:"dates,omitempty"`
	Budget            *PartialBudget    `json:"budget,omitempty"`
	Travelers         *PartialTravelers `json:"travelers,omitempty"`
	TravelStyle       *string           `json:"travelStyle,omitempty"`
	Interests         []string          `json:"interests,omitempty"`
	AccommodationType *string           `json:"accommodationType,omitempty"`
}

type PartialDates struct {
	StartDate *string `json:"startDate,omitempty"`
	Duration  *int    `json:"duration,omitempty"`
}

type PartialBudget struct {
	Amount    *float64 `json:"amount,omitempty"`
	Currency  *string  `json:"currency,omitempty"`
	PerPerson *bool    `json:"perPerson,omitempty"`
}

type PartialTravelers struct {
	Adults   *int `json:"adults,omitempty"`
	Children *int `json:"children,omitempty"`
}

// IsEmpty reports whether the partial carries no update at all.
func (p *PartialTripSlots) IsEmpty() bool {
	if p == nil {
		return true
	}
	return p.Destination == nil &&
		p.Dates == nil &&
		p.Budget == nil &&
		p.Travelers == nil &&
		p.TravelStyle == nil &&
		p.Interests == nil &&
		p.AccommodationType == nil
}

// SlotProgress is a derived view over a TripSlots snapshot. It is computed
// fresh for every decision and never stored.
type SlotProgress struct {
	Filled     int      `json:"filled"`
	Total      int      `json:"total"`
	Missing    []string `json:"missing"`
	Percentage int      `json:"percentage"`
}

// Complete reports whether every slot category is filled.
func (p SlotProgress) Complete() bool {
	return p.Filled == p.Total
}
