// README: Slot set, intent taxonomy, and per-turn outcome types.
package dialogue

import (
	"fmt"

	"atlas/internal/types"
)

// IntentType is the fixed taxonomy of user goals.
type IntentType string

const (
	IntentFlightSearch    IntentType = "flight_search"
	IntentHotelSearch     IntentType = "hotel_search"
	IntentTripPlanning    IntentType = "trip_planning"
	IntentDestinationRec  IntentType = "destination_recommendation"
	IntentBudgetInquiry   IntentType = "budget_inquiry"
	IntentPublicTransport IntentType = "public_transport"
	IntentGeneral         IntentType = "general"
)

// searchIntents are the intents whose slots survive across turns mid-flow.
func isSearchIntent(t IntentType) bool {
	switch t {
	case IntentFlightSearch, IntentHotelSearch, IntentTripPlanning:
		return true
	}
	return false
}

// Place is an extracted origin or destination mention. Region and country
// aliases are carried as provisional destinations so the readiness gate can
// force disambiguation instead of searching on them.
type Place struct {
	Name      string
	IsRegion  bool
	IsCountry bool
}

func (p Place) Concrete() bool {
	return !p.IsRegion && !p.IsCountry
}

// DateValue is a calendar date plus how firmly it was stated. Explicit dates
// (ISO strings, spelled-out ranges) outrank heuristic guesses (holiday names,
// bare month mentions) when layers are merged.
type DateValue struct {
	Date     types.Date
	Explicit bool
}

type PriceFilters struct {
	MaxPrice *float64
	MaxStops *int
}

// SlotSet holds the trip entities known at some layer of the resolution.
// Absent fields are nil; extraction never fills defaults.
type SlotSet struct {
	Origin        *string
	Destinations  []Place // insertion order = mention order
	DepartureDate *DateValue
	ReturnDate    *DateValue
	Passengers    *types.Passengers
	CheckIn       *DateValue
	CheckOut      *DateValue
	DurationDays  *int
	Price         PriceFilters
}

// Slot field names used in sources, gate outcomes, and clarification payloads.
const (
	FieldOrigin        = "origin"
	FieldDestination   = "destination"
	FieldDepartureDate = "departureDate"
	FieldReturnDate    = "returnDate"
	FieldPassengers    = "passengers"
	FieldCheckIn       = "checkIn"
	FieldCheckOut      = "checkOut"
	FieldDuration      = "duration"
	FieldMaxPrice      = "maxPrice"
	FieldMaxStops      = "maxStops"
)

// Source identifies which layer supplied a resolved field.
type Source string

const (
	SourceUtterance  Source = "current-utterance"
	SourceFollowUp   Source = "follow-up-recovery"
	SourcePriorTurn  Source = "prior-turn"
	SourcePreference Source = "stored-preference"
	SourceDefault    Source = "default"
)

// ResolvedSlotSet is the post-merge slot set with per-field provenance.
type ResolvedSlotSet struct {
	SlotSet
	Sources map[string]Source
}

// PrimaryDestination returns the first concrete destination, or the first
// destination of any kind when no concrete one exists.
func (s *SlotSet) PrimaryDestination() *Place {
	for i := range s.Destinations {
		if s.Destinations[i].Concrete() {
			return &s.Destinations[i]
		}
	}
	if len(s.Destinations) > 0 {
		return &s.Destinations[0]
	}
	return nil
}

// Intent is the classified goal for a turn plus the slots relevant to it.
type Intent struct {
	Type             IntentType
	MultiDestination bool
	ExtractedInfo    SlotSet
}

// DisambiguationKind names why a destination cannot be searched as-is.
type DisambiguationKind string

const (
	RegionNotCity  DisambiguationKind = "region-not-city"
	CountryNotCity DisambiguationKind = "country-not-city"
)

type OutcomeKind string

const (
	OutcomeReady               OutcomeKind = "ready"
	OutcomeMissingSlot         OutcomeKind = "missing_slot"
	OutcomeNeedsDisambiguation OutcomeKind = "needs_disambiguation"
	// OutcomeConversational covers intents that never invoke a slot-driven
	// search (recommendations, budget questions, small talk).
	OutcomeConversational OutcomeKind = "conversational"
)

// Clarification is the structured prompt payload handed to the text-generation
// collaborator when a turn cannot proceed. This package decides what must be
// asked, never how it is worded.
type Clarification struct {
	Field          string
	Disambiguation DisambiguationKind
	// Subject is the ambiguous value (the region or country name).
	Subject string
	// Candidates are concrete cities the user could pick from.
	Candidates []string
}

// CollaboratorError is surfaced when an external collaborator (search
// provider, text generation, persistence) fails mid-turn. It carries the
// intent and the partially resolved slots so the caller can retry, fall back,
// or degrade without re-resolving.
type CollaboratorError struct {
	Op     string
	Intent IntentType
	Slots  ResolvedSlotSet
	Err    error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("collaborator %s failed for intent %s: %v", e.Op, e.Intent, e.Err)
}

func (e *CollaboratorError) Unwrap() error {
	return e.Err
}
