// README: Readiness gate; per-intent required-slot checks, one question per
// turn, fixed priority order.
package dialogue

// GateResult is the verdict on whether a search can be invoked. Exactly one
// missing or ambiguous condition is reported per call so the user is never
// asked two questions in one turn.
type GateResult struct {
	Kind          OutcomeKind
	Clarification *Clarification
}

func ready() GateResult {
	return GateResult{Kind: OutcomeReady}
}

func missing(field string) GateResult {
	return GateResult{
		Kind:          OutcomeMissingSlot,
		Clarification: &Clarification{Field: field},
	}
}

func disambiguate(kind DisambiguationKind, p Place) GateResult {
	return GateResult{
		Kind: OutcomeNeedsDisambiguation,
		Clarification: &Clarification{
			Field:          FieldDestination,
			Disambiguation: kind,
			Subject:        p.Name,
			Candidates:     candidateCities(p),
		},
	}
}

// CheckReady walks the required-slot checklist for the intent in fixed
// priority order: origin before destination, destination before dates.
// Region/country ambiguity on the destination is reported before any missing
// date. Pure and deterministic: the same inputs always report the same
// condition.
func CheckReady(intent Intent, slots ResolvedSlotSet) GateResult {
	switch intent.Type {
	case IntentFlightSearch:
		return checkFlight(slots)
	case IntentHotelSearch:
		return checkHotel(slots)
	case IntentTripPlanning:
		return checkTrip(slots)
	default:
		// Intents without a slot checklist never invoke a provider search.
		return GateResult{Kind: OutcomeConversational}
	}
}

func checkFlight(slots ResolvedSlotSet) GateResult {
	if slots.Origin == nil {
		return missing(FieldOrigin)
	}
	dest := slots.PrimaryDestination()
	if dest == nil {
		return missing(FieldDestination)
	}
	if r, blocked := destinationBlocked(*dest); blocked {
		return r
	}
	if slots.DepartureDate == nil {
		return missing(FieldDepartureDate)
	}
	return ready()
}

func checkHotel(slots ResolvedSlotSet) GateResult {
	dest := slots.PrimaryDestination()
	if dest == nil {
		return missing(FieldDestination)
	}
	if r, blocked := destinationBlocked(*dest); blocked {
		return r
	}
	if slots.CheckIn == nil {
		return missing(FieldCheckIn)
	}
	if slots.CheckOut == nil {
		return missing(FieldCheckOut)
	}
	return ready()
}

func checkTrip(slots ResolvedSlotSet) GateResult {
	if slots.PrimaryDestination() == nil {
		return missing(FieldDestination)
	}
	// Regions and countries pass here untouched: an itinerary can span
	// several cities, so no disambiguation is forced.
	// An itinerary needs an anchor: either a trip length or a start date.
	if slots.DurationDays == nil && slots.DepartureDate == nil {
		return missing(FieldDepartureDate)
	}
	return ready()
}

// destinationBlocked reports whether the destination needs disambiguation
// before any search. Regions (continents, multi-country areas) and bare
// countries cannot be searched; the user must pick a concrete city.
func destinationBlocked(p Place) (GateResult, bool) {
	if p.IsRegion {
		return disambiguate(RegionNotCity, p), true
	}
	if p.IsCountry {
		return disambiguate(CountryNotCity, p), true
	}
	return GateResult{}, false
}
