// README: Readiness gate tests: priority order, disambiguation, idempotence.
package dialogue

import (
	"reflect"
	"testing"
	"time"

	"atlas/internal/types"
)

func resolved(s SlotSet) ResolvedSlotSet {
	return ResolvedSlotSet{SlotSet: s, Sources: map[string]Source{}}
}

func flightIntent() Intent { return Intent{Type: IntentFlightSearch} }

func TestGateFlightOriginFirst(t *testing.T) {
	// Everything else may be missing too; origin is always asked first.
	slots := resolved(SlotSet{Destinations: []Place{{Name: "Tokyo"}}})
	got := CheckReady(flightIntent(), slots)
	if got.Kind != OutcomeMissingSlot || got.Clarification.Field != FieldOrigin {
		t.Fatalf("got %+v, want missing origin", got)
	}
}

func TestGateFlightDestinationBeforeDate(t *testing.T) {
	slots := resolved(SlotSet{Origin: strp("Delhi")})
	got := CheckReady(flightIntent(), slots)
	if got.Kind != OutcomeMissingSlot || got.Clarification.Field != FieldDestination {
		t.Fatalf("got %+v, want missing destination", got)
	}
}

func TestGateFlightDateLast(t *testing.T) {
	slots := resolved(SlotSet{
		Origin:       strp("Delhi"),
		Destinations: []Place{{Name: "Tokyo"}},
	})
	got := CheckReady(flightIntent(), slots)
	if got.Kind != OutcomeMissingSlot || got.Clarification.Field != FieldDepartureDate {
		t.Fatalf("got %+v, want missing departure date", got)
	}
}

func TestGateFlightReady(t *testing.T) {
	slots := resolved(SlotSet{
		Origin:        strp("Delhi"),
		Destinations:  []Place{{Name: "Tokyo"}},
		DepartureDate: &DateValue{Date: types.NewDate(2026, time.December, 13), Explicit: true},
	})
	got := CheckReady(flightIntent(), slots)
	if got.Kind != OutcomeReady {
		t.Fatalf("got %+v, want ready", got)
	}
}

func TestGateRegionNotCity(t *testing.T) {
	slots := resolved(SlotSet{
		Origin:       strp("Delhi"),
		Destinations: []Place{{Name: "Europe", IsRegion: true}},
	})
	got := CheckReady(flightIntent(), slots)
	if got.Kind != OutcomeNeedsDisambiguation {
		t.Fatalf("got %+v, want disambiguation", got)
	}
	c := got.Clarification
	if c.Disambiguation != RegionNotCity || c.Subject != "Europe" {
		t.Errorf("clarification = %+v", c)
	}
	if len(c.Candidates) == 0 {
		t.Error("region disambiguation must offer candidate cities")
	}
}

func TestGateCountryBeforeMissingDate(t *testing.T) {
	// Destination "Japan" with no date: the ambiguity is reported first,
	// because the answer may change what dates make sense.
	slots := resolved(SlotSet{
		Origin:       strp("Delhi"),
		Destinations: []Place{{Name: "Japan", IsCountry: true}},
	})
	got := CheckReady(flightIntent(), slots)
	if got.Kind != OutcomeNeedsDisambiguation {
		t.Fatalf("got %+v, want country disambiguation before missing date", got)
	}
	if got.Clarification.Disambiguation != CountryNotCity {
		t.Errorf("kind = %s", got.Clarification.Disambiguation)
	}
	if len(got.Clarification.Candidates) != 3 {
		t.Errorf("candidates = %v", got.Clarification.Candidates)
	}
}

func TestGateConcreteCityBypassesRegionInList(t *testing.T) {
	// "Paris or somewhere in Europe": the concrete city is the primary
	// destination, so no disambiguation is needed.
	slots := resolved(SlotSet{
		Origin: strp("Delhi"),
		Destinations: []Place{
			{Name: "Europe", IsRegion: true},
			{Name: "Paris"},
		},
		DepartureDate: &DateValue{Date: types.NewDate(2026, time.June, 2), Explicit: true},
	})
	got := CheckReady(flightIntent(), slots)
	if got.Kind != OutcomeReady {
		t.Fatalf("got %+v, want ready via the concrete city", got)
	}
}

func TestGateHotelChecklist(t *testing.T) {
	base := SlotSet{Destinations: []Place{{Name: "Bali"}}}
	intent := Intent{Type: IntentHotelSearch}

	got := CheckReady(intent, resolved(SlotSet{}))
	if got.Kind != OutcomeMissingSlot || got.Clarification.Field != FieldDestination {
		t.Fatalf("got %+v, want missing destination", got)
	}

	got = CheckReady(intent, resolved(base))
	if got.Kind != OutcomeMissingSlot || got.Clarification.Field != FieldCheckIn {
		t.Fatalf("got %+v, want missing check-in", got)
	}

	withCheckIn := base
	withCheckIn.CheckIn = &DateValue{Date: types.NewDate(2026, time.June, 2), Explicit: true}
	got = CheckReady(intent, resolved(withCheckIn))
	if got.Kind != OutcomeMissingSlot || got.Clarification.Field != FieldCheckOut {
		t.Fatalf("got %+v, want missing check-out", got)
	}

	full := withCheckIn
	full.CheckOut = &DateValue{Date: types.NewDate(2026, time.June, 6), Explicit: true}
	if got = CheckReady(intent, resolved(full)); got.Kind != OutcomeReady {
		t.Fatalf("got %+v, want ready", got)
	}
}

func TestGateTripNeedsAnchor(t *testing.T) {
	intent := Intent{Type: IntentTripPlanning}
	slots := resolved(SlotSet{Destinations: []Place{{Name: "Rome"}}})
	got := CheckReady(intent, slots)
	if got.Kind != OutcomeMissingSlot || got.Clarification.Field != FieldDepartureDate {
		t.Fatalf("got %+v, want missing date anchor", got)
	}

	withDuration := slots
	withDuration.DurationDays = intp(5)
	if got = CheckReady(intent, withDuration); got.Kind != OutcomeReady {
		t.Fatalf("got %+v, duration alone should anchor a trip", got)
	}
}

func TestGateTripRegionNeedsNoDisambiguation(t *testing.T) {
	// A multi-city itinerary across a region or country is a valid trip
	// answer, unlike a flight or hotel search which needs one concrete city.
	intent := Intent{Type: IntentTripPlanning}
	slots := resolved(SlotSet{
		Destinations: []Place{{Name: "Europe", IsRegion: true}},
		DurationDays: intp(10),
	})
	if got := CheckReady(intent, slots); got.Kind != OutcomeReady {
		t.Fatalf("got %+v, want ready", got)
	}
}

func TestGateConversationalIntents(t *testing.T) {
	for _, typ := range []IntentType{IntentDestinationRec, IntentBudgetInquiry, IntentPublicTransport, IntentGeneral} {
		got := CheckReady(Intent{Type: typ}, resolved(SlotSet{}))
		if got.Kind != OutcomeConversational {
			t.Errorf("%s: kind = %s, want conversational", typ, got.Kind)
		}
	}
}

func TestGateIdempotent(t *testing.T) {
	slots := resolved(SlotSet{Origin: strp("Delhi"), Destinations: []Place{{Name: "Japan", IsCountry: true}}})
	first := CheckReady(flightIntent(), slots)
	second := CheckReady(flightIntent(), slots)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("gate not idempotent: %+v vs %+v", first, second)
	}
}
