package planner

import "wayfarer/models"

// slotCategories lists every requirement category in declaration order.
// Progress reporting follows this order exactly.
var slotCategories = []string{
	models.SlotDestination,
	models.SlotDates,
	models.SlotBudget,
	models.SlotTravelers,
	models.SlotTravelStyle,
	models.SlotInterests,
	models.SlotAccommodationType,
}

// slotFilled reports whether the named category carries a usable value.
// Travelers only counts once at least one headcount is positive; the zero
// value is never treated as an explicit answer.
func slotFilled(slots models.TripSlots, category string) bool {
	switch category {
	case models.SlotDestination:
		return slots.Destination != ""
	case models.SlotDates:
		return slots.Dates.StartDate != "" || slots.Dates.Duration > 0
	case models.SlotBudget:
		return slots.Budget.Amount > 0
	case models.SlotTravelers:
		return slots.Travelers.Adults > 0 || slots.Travelers.Children > 0
	case models.SlotTravelStyle:
		return slots.TravelStyle != ""
	case models.SlotInterests:
		return len(slots.Interests) > 0
	case models.SlotAccommodationType:
		return slots.AccommodationType != ""
	}
	return false
}

// Progress computes the fill state of a slot snapshot. It is pure and must
// be recomputed for every decision; slot content may have just changed.
func Progress(slots models.TripSlots) models.SlotProgress {
	progress := models.SlotProgress{
		Total:   models.SlotCategoryCount,
		Missing: []string{},
	}
	for _, category := range slotCategories {
		if slotFilled(slots, category) {
			progress.Filled++
		} else {
			progress.Missing = append(progress.Missing, category)
		}
	}
	progress.Percentage = progress.Filled * 100 / progress.Total
	return progress
}

// Merge folds a partial update into accumulated slots. A field the partial
// supplies replaces the base value; everything else is retained. Interests
// replace wholesale rather than union: the model sees the full conversation
// history and re-emits the complete set each turn.
func Merge(base models.TripSlots, partial *models.PartialTripSlots) models.TripSlots {
	merged := base
	if partial == nil {
		return merged
	}

	if partial.Destination != nil && *partial.Destination != "" {
		merged.Destination = *partial.Destination
	}
	if partial.Dates != nil {
		if partial.Dates.StartDate != nil && *partial.Dates.StartDate != "" {
			merged.Dates.StartDate = *partial.Dates.StartDate
		}
		if partial.Dates.Duration != nil && *partial.Dates.Duration > 0 {
			merged.Dates.Duration = *partial.Dates.Duration
		}
	}
	if partial.Budget != nil {
		if partial.Budget.Amount != nil && *partial.Budget.Amount > 0 {
			merged.Budget.Amount = *partial.Budget.Amount
		}
		if partial.Budget.Currency != nil && *partial.Budget.Currency != "" {
			merged.Budget.Currency = *partial.Budget.Currency
		}
		if partial.Budget.PerPerson != nil {
			merged.Budget.PerPerson = *partial.Budget.PerPerson
		}
	}
	if partial.Travelers != nil {
		if partial.Travelers.Adults != nil && *partial.Travelers.Adults >= 0 {
			merged.Travelers.Adults = *partial.Travelers.Adults
		}
		if partial.Travelers.Children != nil && *partial.Travelers.Children >= 0 {
			merged.Travelers.Children = *partial.Travelers.Children
		}
	}
	if partial.TravelStyle != nil && *partial.TravelStyle != "" {
		merged.TravelStyle = *partial.TravelStyle
	}
	if partial.Interests != nil {
		merged.Interests = dedupeInterests(partial.Interests)
	}
	if partial.AccommodationType != nil && *partial.AccommodationType != "" {
		merged.AccommodationType = *partial.AccommodationType
	}

	return merged
}

func dedupeInterests(interests []string) []string {
	seen := make(map[string]struct{}, len(interests))
	out := make([]string, 0, len(interests))
	for _, interest := range interests {
		if interest == "" {
			continue
		}
		if _, ok := seen[interest]; ok {
			continue
		}
		seen[interest] = struct{}{}
		out = append(out, interest)
	}
	return out
}
